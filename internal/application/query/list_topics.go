package query

import (
	"context"

	"github.com/etap-learning/etap-backend/internal/domain/curriculum"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

// ListTopicsQuery identifies the subject whose topics are listed.
type ListTopicsQuery struct {
	SubjectID int64
}

// Validate validates the query parameters.
func (q ListTopicsQuery) Validate() error {
	if q.SubjectID == 0 {
		return shared.ErrSubjectRequired
	}
	return nil
}

// ListTopicsHandler lists the topics of one subject.
type ListTopicsHandler struct {
	repo curriculum.Repository
	log  *logger.Logger
}

// NewListTopicsHandler creates a new ListTopicsHandler.
func NewListTopicsHandler(repo curriculum.Repository, log *logger.Logger) *ListTopicsHandler {
	return &ListTopicsHandler{
		repo: repo,
		log:  log.With(logger.Component("list_topics")),
	}
}

// Handle returns the subject's topics ordered by id. A subject with no
// topics yields an empty list; the subject's existence is not checked.
func (h *ListTopicsHandler) Handle(ctx context.Context, q ListTopicsQuery) ([]curriculum.Topic, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	topics, err := h.repo.ListTopicsBySubject(ctx, q.SubjectID)
	if err != nil {
		h.log.Error("failed to list topics", logger.Err(err), logger.SubjectID(q.SubjectID))
		return nil, err
	}
	return topics, nil
}
