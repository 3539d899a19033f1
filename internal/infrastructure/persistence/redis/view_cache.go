package redis

import (
	"context"
	"time"

	"github.com/etap-learning/etap-backend/internal/domain/enrollment"
)

// ViewCache implements enrollment.ViewCache on the generic Redis Cache.
// It stores the flat join rows, not the assembled trees, so assembly
// stays a pure function of whatever source the rows came from.
type ViewCache struct {
	cache *Cache
}

// NewViewCache creates a new ViewCache.
func NewViewCache(cache *Cache) *ViewCache {
	return &ViewCache{cache: cache}
}

// GetCurriculumRows returns the cached full-curriculum rows for a learner.
// Returns ErrCacheMiss when the view is not cached.
func (v *ViewCache) GetCurriculumRows(ctx context.Context, learnerID int64) ([]enrollment.CurriculumRow, error) {
	var rows []enrollment.CurriculumRow
	if err := v.cache.Get(ctx, CurriculumKey(learnerID), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SetCurriculumRows caches the full-curriculum rows for a learner.
func (v *ViewCache) SetCurriculumRows(ctx context.Context, learnerID int64, rows []enrollment.CurriculumRow, ttl time.Duration) error {
	return v.cache.Set(ctx, CurriculumKey(learnerID), rows, ttl)
}

// GetOfferingRows returns the cached offering rows for a topic.
// Returns ErrCacheMiss when the roster is not cached.
func (v *ViewCache) GetOfferingRows(ctx context.Context, topicID int64) ([]enrollment.OfferingRow, error) {
	var rows []enrollment.OfferingRow
	if err := v.cache.Get(ctx, OfferingKey(topicID), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SetOfferingRows caches the offering rows for a topic.
func (v *ViewCache) SetOfferingRows(ctx context.Context, topicID int64, rows []enrollment.OfferingRow, ttl time.Duration) error {
	return v.cache.Set(ctx, OfferingKey(topicID), rows, ttl)
}

// InvalidateLearner drops the cached curriculum view of a learner.
func (v *ViewCache) InvalidateLearner(ctx context.Context, learnerID int64) error {
	return v.cache.Delete(ctx, CurriculumKey(learnerID))
}

// InvalidateTopic drops the cached offering roster of a topic.
func (v *ViewCache) InvalidateTopic(ctx context.Context, topicID int64) error {
	return v.cache.Delete(ctx, OfferingKey(topicID))
}

// InvalidateAllCurricula drops every cached curriculum view. Used by
// catalog writes, which change the full view of every learner.
func (v *ViewCache) InvalidateAllCurricula(ctx context.Context) error {
	return v.cache.DeleteByPattern(ctx, PrefixCurriculum+"*")
}
