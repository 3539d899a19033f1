package command

import (
	"context"

	"github.com/etap-learning/etap-backend/internal/domain/enrollment"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ASSIGN TOPICS COMMAND
// The assignment half of the enrollment & progress engine. One completion
// row is inserted per selection; pairs the learner already holds are
// skipped silently and keep their progress. The caller gets an overall
// success regardless of how many selections were already present.
// ══════════════════════════════════════════════════════════════════════════════

// AssignTopicsCommand contains a learner's topic selections.
type AssignTopicsCommand struct {
	// LearnerID identifies the learner receiving the assignment.
	LearnerID int64

	// Selections is the non-empty list of picked topics.
	Selections []enrollment.Selection
}

// Validate validates the command before any store access.
func (c AssignTopicsCommand) Validate() error {
	if c.LearnerID == 0 {
		return shared.ErrLearnerRequired
	}
	if len(c.Selections) == 0 {
		return shared.ErrSelectionsRequired
	}
	return nil
}

// AssignTopicsHandler handles batch topic assignment.
type AssignTopicsHandler struct {
	repo  enrollment.Repository
	cache enrollment.ViewCache
	log   *logger.Logger
}

// NewAssignTopicsHandler creates a new AssignTopicsHandler. The cache may
// be nil when caching is disabled.
func NewAssignTopicsHandler(repo enrollment.Repository, cache enrollment.ViewCache, log *logger.Logger) *AssignTopicsHandler {
	return &AssignTopicsHandler{
		repo:  repo,
		cache: cache,
		log:   log.With(logger.Component("assign_topics")),
	}
}

// Handle executes the command. Idempotent per (learner, topic) pair: the
// store's conflict detection guarantees at most one surviving row without
// application-level locking.
func (h *AssignTopicsHandler) Handle(ctx context.Context, cmd AssignTopicsCommand) (*enrollment.AssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.repo.Assign(ctx, cmd.LearnerID, cmd.Selections); err != nil {
		h.log.Error("assignment failed",
			logger.Err(err),
			logger.LearnerID(cmd.LearnerID),
			logger.Selections(len(cmd.Selections)),
		)
		return nil, err
	}

	h.invalidateViews(ctx, cmd)

	h.log.Info("topics assigned",
		logger.LearnerID(cmd.LearnerID),
		logger.Selections(len(cmd.Selections)),
	)

	return &enrollment.AssignmentResult{
		LearnerID: cmd.LearnerID,
		Requested: len(cmd.Selections),
	}, nil
}

// invalidateViews drops the cached read views touched by the assignment.
// Cache failures are logged and swallowed: the store remains authoritative.
func (h *AssignTopicsHandler) invalidateViews(ctx context.Context, cmd AssignTopicsCommand) {
	if h.cache == nil {
		return
	}
	if err := h.cache.InvalidateLearner(ctx, cmd.LearnerID); err != nil {
		h.log.Warn("failed to invalidate curriculum cache", logger.Err(err), logger.LearnerID(cmd.LearnerID))
	}
	for _, sel := range cmd.Selections {
		if err := h.cache.InvalidateTopic(ctx, sel.TopicID); err != nil {
			h.log.Warn("failed to invalidate offering cache", logger.Err(err), logger.TopicID(sel.TopicID))
		}
	}
}
