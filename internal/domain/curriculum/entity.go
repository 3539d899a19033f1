// Package curriculum contains the subject/topic entities and the contracts
// for persisting them. Subjects and topics are created by curriculum authors
// and are never deleted.
package curriculum

import (
	"strings"

	"github.com/etap-learning/etap-backend/internal/domain/shared"
)

// Subject is a top-level curriculum grouping containing topics.
// Immutable once referenced by topics: no update or delete operation exists.
type Subject struct {
	// ID is the store-generated identifier.
	ID int64 `json:"id"`

	// Title is the display title of the subject.
	Title string `json:"title"`

	// Description is the free-form subject description.
	Description string `json:"description"`
}

// Validate checks that all required subject fields are present.
func (s *Subject) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return shared.ErrTitleRequired
	}
	if strings.TrimSpace(s.Description) == "" {
		return shared.ErrDescriptionRequired
	}
	return nil
}

// Topic is a single lesson unit within a subject, optionally carrying an
// instructional video.
type Topic struct {
	// ID is the store-generated identifier.
	ID int64 `json:"id"`

	// SubjectID references the owning subject.
	SubjectID int64 `json:"subject_id"`

	// Title is the display title of the topic.
	Title string `json:"title"`

	// Description is the free-form topic description.
	Description string `json:"description"`

	// VideoURL is the durable retrieval URL of the instructional video,
	// nil when the topic has none. A topic row is never written with a
	// pending upload: the URL is resolved before persistence.
	VideoURL *string `json:"video_url"`
}

// Validate checks that all required topic fields are present.
func (t *Topic) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return shared.ErrTitleRequired
	}
	if strings.TrimSpace(t.Description) == "" {
		return shared.ErrDescriptionRequired
	}
	return nil
}
