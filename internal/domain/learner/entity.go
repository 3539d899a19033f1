// Package learner contains the learner entity and its persistence contract.
// A learner is registered once and never mutated thereafter.
package learner

import (
	"strings"

	"github.com/etap-learning/etap-backend/internal/domain/shared"
)

// Learner is an enrolled end-user tracked by progress.
type Learner struct {
	// ID is the store-generated identifier.
	ID int64 `json:"id"`

	// Name is the learner's display name.
	Name string `json:"name"`

	// Email is the learner's contact email. Uniqueness is expected but
	// not enforced by this design.
	Email string `json:"email"`
}

// Validate checks that all required learner fields are present.
func (l *Learner) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return shared.ErrNameRequired
	}
	if strings.TrimSpace(l.Email) == "" {
		return shared.ErrEmailRequired
	}
	return nil
}
