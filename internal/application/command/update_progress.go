package command

import (
	"context"

	"github.com/etap-learning/etap-backend/internal/domain/enrollment"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE PROGRESS COMMAND
// The progress half of the enrollment & progress engine. Progress is carried
// as a pointer so that an absent value is distinguishable from a legitimate
// zero. The value is not clamped into [0,100]; the completed flag is
// recomputed as progress == 100 in the same atomic statement. Progress can
// only be recorded for previously assigned topics.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateProgressCommand contains a single progress update.
type UpdateProgressCommand struct {
	// LearnerID identifies the learner.
	LearnerID int64

	// TopicID identifies the topic.
	TopicID int64

	// Progress is the new completion percentage. Nil means absent and
	// fails validation; zero is a valid value.
	Progress *int
}

// Validate validates the command before any store access.
func (c UpdateProgressCommand) Validate() error {
	if c.LearnerID == 0 {
		return shared.ErrLearnerRequired
	}
	if c.TopicID == 0 {
		return shared.ErrTopicRequired
	}
	if c.Progress == nil {
		return shared.ErrProgressRequired
	}
	return nil
}

// UpdateProgressHandler handles progress updates.
type UpdateProgressHandler struct {
	repo  enrollment.Repository
	cache enrollment.ViewCache
	log   *logger.Logger
}

// NewUpdateProgressHandler creates a new UpdateProgressHandler. The cache
// may be nil when caching is disabled.
func NewUpdateProgressHandler(repo enrollment.Repository, cache enrollment.ViewCache, log *logger.Logger) *UpdateProgressHandler {
	return &UpdateProgressHandler{
		repo:  repo,
		cache: cache,
		log:   log.With(logger.Component("update_progress")),
	}
}

// Handle executes the command and returns the updated completion row.
// Returns shared.ErrEnrollmentNotFound when the learner has no enrollment
// for this topic; an enrollment is never created as a side effect.
func (h *UpdateProgressHandler) Handle(ctx context.Context, cmd UpdateProgressCommand) (*enrollment.TopicCompletion, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	tc, err := h.repo.UpdateProgress(ctx, cmd.LearnerID, cmd.TopicID, *cmd.Progress)
	if err != nil {
		if !shared.IsNotFound(err) {
			h.log.Error("progress update failed",
				logger.Err(err),
				logger.LearnerID(cmd.LearnerID),
				logger.TopicID(cmd.TopicID),
			)
		}
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.InvalidateLearner(ctx, cmd.LearnerID); err != nil {
			h.log.Warn("failed to invalidate curriculum cache", logger.Err(err), logger.LearnerID(cmd.LearnerID))
		}
		if err := h.cache.InvalidateTopic(ctx, cmd.TopicID); err != nil {
			h.log.Warn("failed to invalidate offering cache", logger.Err(err), logger.TopicID(cmd.TopicID))
		}
	}

	h.log.Info("progress updated",
		logger.LearnerID(tc.LearnerID),
		logger.TopicID(tc.TopicID),
		logger.Progress(tc.Progress),
		logger.Bool("completed", tc.Completed),
	)

	return tc, nil
}
