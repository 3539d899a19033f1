package query

import (
	"context"

	"github.com/etap-learning/etap-backend/internal/domain/enrollment"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET ENROLLED CURRICULUM QUERY
// The enrolled-only view: only topics the learner holds a completion row
// for, carrying numeric progress. Deliberately an inner join - subjects
// without an enrollment are absent, unlike the full-curriculum view.
// Not cached: progress writes would churn the entries faster than a TTL
// pays off.
// ══════════════════════════════════════════════════════════════════════════════

// GetEnrolledCurriculumQuery identifies the learner the view is built for.
type GetEnrolledCurriculumQuery struct {
	LearnerID int64
}

// Validate validates the query parameters.
func (q GetEnrolledCurriculumQuery) Validate() error {
	if q.LearnerID == 0 {
		return shared.ErrLearnerRequired
	}
	return nil
}

// GetEnrolledCurriculumHandler handles the enrolled-only view.
type GetEnrolledCurriculumHandler struct {
	repo enrollment.Repository
	log  *logger.Logger
}

// NewGetEnrolledCurriculumHandler creates a new GetEnrolledCurriculumHandler.
func NewGetEnrolledCurriculumHandler(repo enrollment.Repository, log *logger.Logger) *GetEnrolledCurriculumHandler {
	return &GetEnrolledCurriculumHandler{
		repo: repo,
		log:  log.With(logger.Component("get_enrolled_curriculum")),
	}
}

// Handle builds the view.
func (h *GetEnrolledCurriculumHandler) Handle(ctx context.Context, q GetEnrolledCurriculumQuery) ([]SubjectWithProgress, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.repo.EnrolledRows(ctx, q.LearnerID)
	if err != nil {
		h.log.Error("failed to load enrolled rows", logger.Err(err), logger.LearnerID(q.LearnerID))
		return nil, err
	}

	return AssembleEnrolledCurriculum(rows), nil
}
