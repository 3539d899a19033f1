// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"strings"

	"github.com/etap-learning/etap-backend/internal/domain/curriculum"
	"github.com/etap-learning/etap-backend/internal/domain/enrollment"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE SUBJECT COMMAND
// Curriculum authoring: creates a new top-level subject. Subjects are
// immutable once created; there is no update or delete counterpart.
// ══════════════════════════════════════════════════════════════════════════════

// CreateSubjectCommand contains the data to create a subject.
type CreateSubjectCommand struct {
	// Title is the display title of the subject.
	Title string

	// Description is the free-form subject description.
	Description string
}

// Validate validates the command before any store access.
func (c CreateSubjectCommand) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return shared.ErrTitleRequired
	}
	if strings.TrimSpace(c.Description) == "" {
		return shared.ErrDescriptionRequired
	}
	return nil
}

// CreateSubjectHandler handles subject creation.
type CreateSubjectHandler struct {
	repo  curriculum.Repository
	cache enrollment.ViewCache
	log   *logger.Logger
}

// NewCreateSubjectHandler creates a new CreateSubjectHandler. The cache may
// be nil when caching is disabled.
func NewCreateSubjectHandler(repo curriculum.Repository, cache enrollment.ViewCache, log *logger.Logger) *CreateSubjectHandler {
	return &CreateSubjectHandler{
		repo:  repo,
		cache: cache,
		log:   log.With(logger.Component("create_subject")),
	}
}

// Handle executes the command and returns the persisted subject including
// its generated id. A new subject appears in every learner's full view, so
// all cached curriculum views are dropped.
func (h *CreateSubjectHandler) Handle(ctx context.Context, cmd CreateSubjectCommand) (*curriculum.Subject, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	subject := &curriculum.Subject{
		Title:       cmd.Title,
		Description: cmd.Description,
	}

	if err := h.repo.CreateSubject(ctx, subject); err != nil {
		h.log.Error("failed to create subject", logger.Err(err))
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.InvalidateAllCurricula(ctx); err != nil {
			h.log.Warn("failed to invalidate curriculum caches", logger.Err(err), logger.SubjectID(subject.ID))
		}
	}

	h.log.Info("subject created", logger.SubjectID(subject.ID))
	return subject, nil
}
