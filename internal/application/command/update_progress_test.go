package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etap-learning/etap-backend/internal/domain/enrollment"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

func intPtr(v int) *int { return &v }

func enrolled(t *testing.T, repo *fakeEnrollmentRepo, learnerID, topicID, subjectID int64) {
	t.Helper()
	err := repo.Assign(context.Background(), learnerID, []enrollment.Selection{{TopicID: topicID, SubjectID: subjectID}})
	require.NoError(t, err)
}

func TestUpdateProgress(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	enrolled(t, repo, 7, 1, 10)
	h := NewUpdateProgressHandler(repo, nil, logger.Default())

	tc, err := h.Handle(context.Background(), UpdateProgressCommand{LearnerID: 7, TopicID: 1, Progress: intPtr(40)})

	require.NoError(t, err)
	assert.Equal(t, 40, tc.Progress)
	assert.False(t, tc.Completed)
}

func TestUpdateProgressCompletesAtHundred(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	enrolled(t, repo, 7, 1, 10)
	h := NewUpdateProgressHandler(repo, nil, logger.Default())

	tc, err := h.Handle(context.Background(), UpdateProgressCommand{LearnerID: 7, TopicID: 1, Progress: intPtr(100)})
	require.NoError(t, err)
	assert.True(t, tc.Completed)

	// A later regression below 100 clears the flag again.
	tc, err = h.Handle(context.Background(), UpdateProgressCommand{LearnerID: 7, TopicID: 1, Progress: intPtr(40)})
	require.NoError(t, err)
	assert.False(t, tc.Completed)
	assert.Equal(t, 40, tc.Progress)
}

func TestUpdateProgressZeroIsValid(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	enrolled(t, repo, 7, 1, 10)
	h := NewUpdateProgressHandler(repo, nil, logger.Default())

	tc, err := h.Handle(context.Background(), UpdateProgressCommand{LearnerID: 7, TopicID: 1, Progress: intPtr(0)})

	require.NoError(t, err)
	assert.Zero(t, tc.Progress)
	assert.False(t, tc.Completed)
}

func TestUpdateProgressNotEnrolled(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	h := NewUpdateProgressHandler(repo, nil, logger.Default())

	_, err := h.Handle(context.Background(), UpdateProgressCommand{LearnerID: 7, TopicID: 1, Progress: intPtr(40)})

	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
	assert.Empty(t, repo.completions, "no enrollment may be created as a side effect")
}

func TestUpdateProgressValidation(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	h := NewUpdateProgressHandler(repo, nil, logger.Default())

	_, err := h.Handle(context.Background(), UpdateProgressCommand{TopicID: 1, Progress: intPtr(40)})
	assert.ErrorIs(t, err, shared.ErrLearnerRequired)

	_, err = h.Handle(context.Background(), UpdateProgressCommand{LearnerID: 7, Progress: intPtr(40)})
	assert.ErrorIs(t, err, shared.ErrTopicRequired)

	_, err = h.Handle(context.Background(), UpdateProgressCommand{LearnerID: 7, TopicID: 1})
	assert.ErrorIs(t, err, shared.ErrProgressRequired)
}

func TestUpdateProgressInvalidatesViews(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	enrolled(t, repo, 7, 1, 10)
	cache := &fakeViewCache{}
	h := NewUpdateProgressHandler(repo, cache, logger.Default())

	_, err := h.Handle(context.Background(), UpdateProgressCommand{LearnerID: 7, TopicID: 1, Progress: intPtr(40)})

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, cache.invalidatedLearners)
	assert.Equal(t, []int64{1}, cache.invalidatedTopics)
}
