package query

import (
	"context"
	"time"

	"github.com/etap-learning/etap-backend/internal/domain/enrollment"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET FULL CURRICULUM QUERY
// The full-curriculum view: every subject and every topic, each topic
// flagged with isOffering for the requesting learner. The flat rows are
// cached per learner; assembly is always recomputed since the database
// round trip is the expensive part.
// ══════════════════════════════════════════════════════════════════════════════

// GetFullCurriculumQuery identifies the learner the view is built for.
type GetFullCurriculumQuery struct {
	LearnerID int64
}

// Validate validates the query parameters.
func (q GetFullCurriculumQuery) Validate() error {
	if q.LearnerID == 0 {
		return shared.ErrLearnerRequired
	}
	return nil
}

// GetFullCurriculumHandler handles the full-curriculum view.
type GetFullCurriculumHandler struct {
	repo     enrollment.Repository
	cache    enrollment.ViewCache
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewGetFullCurriculumHandler creates a new GetFullCurriculumHandler. The
// cache may be nil when caching is disabled.
func NewGetFullCurriculumHandler(repo enrollment.Repository, cache enrollment.ViewCache, cacheTTL time.Duration, log *logger.Logger) *GetFullCurriculumHandler {
	return &GetFullCurriculumHandler{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.With(logger.Component("get_full_curriculum")),
	}
}

// Handle builds the view. Any cache failure falls through to the store.
func (h *GetFullCurriculumHandler) Handle(ctx context.Context, q GetFullCurriculumQuery) ([]SubjectWithTopics, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if h.cache != nil {
		rows, err := h.cache.GetCurriculumRows(ctx, q.LearnerID)
		if err == nil {
			return AssembleFullCurriculum(rows), nil
		}
	}

	rows, err := h.repo.FullCurriculumRows(ctx, q.LearnerID)
	if err != nil {
		h.log.Error("failed to load curriculum rows", logger.Err(err), logger.LearnerID(q.LearnerID))
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.SetCurriculumRows(ctx, q.LearnerID, rows, h.cacheTTL); err != nil {
			h.log.Warn("failed to cache curriculum rows", logger.Err(err), logger.LearnerID(q.LearnerID))
		}
	}

	return AssembleFullCurriculum(rows), nil
}
