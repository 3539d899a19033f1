package enrollment

import (
	"context"
	"time"
)

// Repository defines the store contract of the enrollment & progress engine.
// Implementations live in infrastructure/persistence.
type Repository interface {
	// Assign inserts one completion row per selection with completed=false
	// and progress=0, holding a single pooled connection for the whole
	// batch. Pairs that already exist are skipped silently and keep their
	// progress. The batch is sequential, not transactional: a connection
	// failure mid-batch leaves earlier selections applied.
	Assign(ctx context.Context, learnerID int64, selections []Selection) error

	// UpdateProgress sets progress and the recomputed completed flag of
	// the unique (learner, topic) row in a single atomic statement and
	// returns the updated row. Returns shared.ErrEnrollmentNotFound when
	// no such row exists; it never creates an enrollment.
	UpdateProgress(ctx context.Context, learnerID, topicID int64, progress int) (*TopicCompletion, error)

	// FullCurriculumRows returns the left-joined full-curriculum rows for
	// a learner, ordered by subject id then topic id.
	FullCurriculumRows(ctx context.Context, learnerID int64) ([]CurriculumRow, error)

	// EnrolledRows returns the inner-joined enrolled-only rows for a
	// learner, ordered by subject id then topic id.
	EnrolledRows(ctx context.Context, learnerID int64) ([]EnrolledRow, error)

	// OfferingRows returns every learner enrolled in a topic, ordered by
	// progress descending with learner id as the deterministic tie-break.
	OfferingRows(ctx context.Context, topicID int64) ([]OfferingRow, error)
}

// ViewCache caches the flat rows behind the hot read views. The cache is
// advisory: callers fall through to the store on any cache failure.
type ViewCache interface {
	// GetCurriculumRows returns the cached full-curriculum rows for a
	// learner, or an error on miss.
	GetCurriculumRows(ctx context.Context, learnerID int64) ([]CurriculumRow, error)

	// SetCurriculumRows caches the full-curriculum rows for a learner.
	SetCurriculumRows(ctx context.Context, learnerID int64, rows []CurriculumRow, ttl time.Duration) error

	// GetOfferingRows returns the cached offering rows for a topic, or an
	// error on miss.
	GetOfferingRows(ctx context.Context, topicID int64) ([]OfferingRow, error)

	// SetOfferingRows caches the offering rows for a topic.
	SetOfferingRows(ctx context.Context, topicID int64, rows []OfferingRow, ttl time.Duration) error

	// InvalidateLearner drops the cached curriculum view of a learner.
	InvalidateLearner(ctx context.Context, learnerID int64) error

	// InvalidateTopic drops the cached offering view of a topic.
	InvalidateTopic(ctx context.Context, topicID int64) error

	// InvalidateAllCurricula drops every cached curriculum view. Catalog
	// writes change the full view of every learner at once, so there is
	// no per-learner key to target.
	InvalidateAllCurricula(ctx context.Context) error
}
