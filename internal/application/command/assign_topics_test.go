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

func TestAssignTopics(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	cache := &fakeViewCache{}
	h := NewAssignTopicsHandler(repo, cache, logger.Default())

	result, err := h.Handle(context.Background(), AssignTopicsCommand{
		LearnerID: 7,
		Selections: []enrollment.Selection{
			{TopicID: 1, SubjectID: 10},
			{TopicID: 2, SubjectID: 10},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), result.LearnerID)
	assert.Equal(t, 2, result.Requested)
	assert.Len(t, repo.completions, 2)

	tc := repo.completions[completionKey{7, 1}]
	require.NotNil(t, tc)
	assert.False(t, tc.Completed)
	assert.Zero(t, tc.Progress)
}

func TestAssignTopicsIdempotent(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	h := NewAssignTopicsHandler(repo, nil, logger.Default())

	selections := []enrollment.Selection{{TopicID: 1, SubjectID: 10}}

	_, err := h.Handle(context.Background(), AssignTopicsCommand{LearnerID: 7, Selections: selections})
	require.NoError(t, err)

	// Make progress, then re-assign the same pair.
	_, err = repo.UpdateProgress(context.Background(), 7, 1, 60)
	require.NoError(t, err)

	result, err := h.Handle(context.Background(), AssignTopicsCommand{LearnerID: 7, Selections: selections})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Requested)

	tc := repo.completions[completionKey{7, 1}]
	require.NotNil(t, tc)
	assert.Equal(t, 60, tc.Progress, "re-assignment must not reset progress")
	assert.Len(t, repo.completions, 1)
}

func TestAssignTopicsInvalidatesViews(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	cache := &fakeViewCache{}
	h := NewAssignTopicsHandler(repo, cache, logger.Default())

	_, err := h.Handle(context.Background(), AssignTopicsCommand{
		LearnerID: 7,
		Selections: []enrollment.Selection{
			{TopicID: 1, SubjectID: 10},
			{TopicID: 2, SubjectID: 10},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, cache.invalidatedLearners)
	assert.Equal(t, []int64{1, 2}, cache.invalidatedTopics)
}

func TestAssignTopicsValidation(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	h := NewAssignTopicsHandler(repo, nil, logger.Default())

	_, err := h.Handle(context.Background(), AssignTopicsCommand{
		Selections: []enrollment.Selection{{TopicID: 1, SubjectID: 10}},
	})
	assert.ErrorIs(t, err, shared.ErrLearnerRequired)

	_, err = h.Handle(context.Background(), AssignTopicsCommand{LearnerID: 7})
	assert.ErrorIs(t, err, shared.ErrSelectionsRequired)

	assert.Zero(t, repo.assignCalls)
}
