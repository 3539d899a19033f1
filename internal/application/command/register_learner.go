package command

import (
	"context"
	"strings"

	"github.com/etap-learning/etap-backend/internal/domain/learner"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER LEARNER COMMAND
// Creates a learner record. Learner rows are created once and never mutated.
// Email uniqueness is expected but not enforced by this design.
// ══════════════════════════════════════════════════════════════════════════════

// RegisterLearnerCommand contains the data to register a learner.
type RegisterLearnerCommand struct {
	// Name is the learner's display name.
	Name string

	// Email is the learner's contact email.
	Email string
}

// Validate validates the command before any store access.
func (c RegisterLearnerCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return shared.ErrNameRequired
	}
	if strings.TrimSpace(c.Email) == "" {
		return shared.ErrEmailRequired
	}
	return nil
}

// RegisterLearnerHandler handles learner registration.
type RegisterLearnerHandler struct {
	repo learner.Repository
	log  *logger.Logger
}

// NewRegisterLearnerHandler creates a new RegisterLearnerHandler.
func NewRegisterLearnerHandler(repo learner.Repository, log *logger.Logger) *RegisterLearnerHandler {
	return &RegisterLearnerHandler{
		repo: repo,
		log:  log.With(logger.Component("register_learner")),
	}
}

// Handle executes the command and returns the persisted learner.
func (h *RegisterLearnerHandler) Handle(ctx context.Context, cmd RegisterLearnerCommand) (*learner.Learner, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	l := &learner.Learner{
		Name:  cmd.Name,
		Email: cmd.Email,
	}

	if err := h.repo.Create(ctx, l); err != nil {
		h.log.Error("failed to register learner", logger.Err(err))
		return nil, err
	}

	h.log.Info("learner registered", logger.LearnerID(l.ID))
	return l, nil
}
