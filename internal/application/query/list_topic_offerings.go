package query

import (
	"context"
	"time"

	"github.com/etap-learning/etap-backend/internal/domain/enrollment"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST TOPIC OFFERINGS QUERY
// The per-topic roster: every learner enrolled in one topic with their
// progress, ordered by progress descending (learner id ascending breaks
// ties so the listing is deterministic). Cached per topic.
// ══════════════════════════════════════════════════════════════════════════════

// OfferingSubject is the subject context attached to each roster entry.
type OfferingSubject struct {
	SubjectID    int64  `json:"subject_id"`
	SubjectTitle string `json:"subject_title"`
}

// OfferingTopic is the topic context attached to each roster entry.
type OfferingTopic struct {
	TopicID    int64  `json:"topic_id"`
	TopicTitle string `json:"topic_title"`
}

// LearnerOffering is one learner's row in the per-topic roster.
type LearnerOffering struct {
	LearnerID    int64           `json:"learner_id"`
	LearnerName  string          `json:"learner_name"`
	LearnerEmail string          `json:"learner_email"`
	Progress     int             `json:"progress"`
	Completed    bool            `json:"completed"`
	Subject      OfferingSubject `json:"subject"`
	Topic        OfferingTopic   `json:"topic"`
}

// ListTopicOfferingsQuery identifies the topic the roster is built for.
type ListTopicOfferingsQuery struct {
	TopicID int64
}

// Validate validates the query parameters.
func (q ListTopicOfferingsQuery) Validate() error {
	if q.TopicID == 0 {
		return shared.ErrTopicRequired
	}
	return nil
}

// ListTopicOfferingsHandler handles the per-topic roster.
type ListTopicOfferingsHandler struct {
	repo     enrollment.Repository
	cache    enrollment.ViewCache
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewListTopicOfferingsHandler creates a new ListTopicOfferingsHandler. The
// cache may be nil when caching is disabled.
func NewListTopicOfferingsHandler(repo enrollment.Repository, cache enrollment.ViewCache, cacheTTL time.Duration, log *logger.Logger) *ListTopicOfferingsHandler {
	return &ListTopicOfferingsHandler{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.With(logger.Component("list_topic_offerings")),
	}
}

// Handle builds the roster. Any cache failure falls through to the store.
// An existing topic with no enrollments yields an empty, never null, list.
func (h *ListTopicOfferingsHandler) Handle(ctx context.Context, q ListTopicOfferingsQuery) ([]LearnerOffering, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if h.cache != nil {
		rows, err := h.cache.GetOfferingRows(ctx, q.TopicID)
		if err == nil {
			return assembleOfferings(rows), nil
		}
	}

	rows, err := h.repo.OfferingRows(ctx, q.TopicID)
	if err != nil {
		h.log.Error("failed to load offering rows", logger.Err(err), logger.TopicID(q.TopicID))
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.SetOfferingRows(ctx, q.TopicID, rows, h.cacheTTL); err != nil {
			h.log.Warn("failed to cache offering rows", logger.Err(err), logger.TopicID(q.TopicID))
		}
	}

	return assembleOfferings(rows), nil
}

func assembleOfferings(rows []enrollment.OfferingRow) []LearnerOffering {
	offerings := make([]LearnerOffering, 0, len(rows))
	for _, row := range rows {
		offerings = append(offerings, LearnerOffering{
			LearnerID:    row.LearnerID,
			LearnerName:  row.LearnerName,
			LearnerEmail: row.LearnerEmail,
			Progress:     row.Progress,
			Completed:    row.Completed,
			Subject: OfferingSubject{
				SubjectID:    row.SubjectID,
				SubjectTitle: row.SubjectTitle,
			},
			Topic: OfferingTopic{
				TopicID:    row.TopicID,
				TopicTitle: row.TopicTitle,
			},
		})
	}
	return offerings
}
