package query

import (
	"context"

	"github.com/etap-learning/etap-backend/internal/domain/curriculum"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

// ListSubjectsHandler lists every subject in catalog order.
type ListSubjectsHandler struct {
	repo curriculum.Repository
	log  *logger.Logger
}

// NewListSubjectsHandler creates a new ListSubjectsHandler.
func NewListSubjectsHandler(repo curriculum.Repository, log *logger.Logger) *ListSubjectsHandler {
	return &ListSubjectsHandler{
		repo: repo,
		log:  log.With(logger.Component("list_subjects")),
	}
}

// Handle returns all subjects ordered by id.
func (h *ListSubjectsHandler) Handle(ctx context.Context) ([]curriculum.Subject, error) {
	subjects, err := h.repo.ListSubjects(ctx)
	if err != nil {
		h.log.Error("failed to list subjects", logger.Err(err))
		return nil, err
	}
	return subjects, nil
}
