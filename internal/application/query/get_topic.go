package query

import (
	"context"

	"github.com/etap-learning/etap-backend/internal/domain/curriculum"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

// GetTopicQuery identifies one topic.
type GetTopicQuery struct {
	TopicID int64
}

// Validate validates the query parameters.
func (q GetTopicQuery) Validate() error {
	if q.TopicID == 0 {
		return shared.ErrTopicRequired
	}
	return nil
}

// GetTopicHandler fetches a single topic by id.
type GetTopicHandler struct {
	repo curriculum.Repository
	log  *logger.Logger
}

// NewGetTopicHandler creates a new GetTopicHandler.
func NewGetTopicHandler(repo curriculum.Repository, log *logger.Logger) *GetTopicHandler {
	return &GetTopicHandler{
		repo: repo,
		log:  log.With(logger.Component("get_topic")),
	}
}

// Handle returns the topic or shared.ErrTopicNotFound.
func (h *GetTopicHandler) Handle(ctx context.Context, q GetTopicQuery) (*curriculum.Topic, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	topic, err := h.repo.GetTopicByID(ctx, q.TopicID)
	if err != nil {
		if !shared.IsNotFound(err) {
			h.log.Error("failed to get topic", logger.Err(err), logger.TopicID(q.TopicID))
		}
		return nil, err
	}
	return topic, nil
}
