package query

import (
	"context"

	"github.com/etap-learning/etap-backend/internal/domain/learner"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

// ListLearnersHandler lists every registered learner.
type ListLearnersHandler struct {
	repo learner.Repository
	log  *logger.Logger
}

// NewListLearnersHandler creates a new ListLearnersHandler.
func NewListLearnersHandler(repo learner.Repository, log *logger.Logger) *ListLearnersHandler {
	return &ListLearnersHandler{
		repo: repo,
		log:  log.With(logger.Component("list_learners")),
	}
}

// Handle returns all learners ordered by id.
func (h *ListLearnersHandler) Handle(ctx context.Context) ([]learner.Learner, error) {
	learners, err := h.repo.List(ctx)
	if err != nil {
		h.log.Error("failed to list learners", logger.Err(err))
		return nil, err
	}
	return learners, nil
}
