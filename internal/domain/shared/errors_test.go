package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorMatchesKind(t *testing.T) {
	err := NewDomainError("enrollment", "AssignTopics", ErrValidation, "learner_id is required")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsValidation(err))
}

func TestDomainErrorMatchesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError("enrollment", "Assign", ErrStore, "insert failed", cause)

	assert.True(t, errors.Is(err, ErrStore))
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsStore(err))
}

func TestDomainErrorMessage(t *testing.T) {
	err := NewDomainError("curriculum", "GetTopic", ErrNotFound, "topic not found")
	assert.Equal(t, "curriculum.GetTopic: topic not found", err.Error())

	wrapped := WrapError("curriculum", "CreateTopic", ErrUpload, "video upload failed", errors.New("bucket unavailable"))
	assert.Equal(t, "curriculum.CreateTopic: video upload failed: bucket unavailable", wrapped.Error())
}

func TestSentinelErrorKinds(t *testing.T) {
	assert.True(t, IsNotFound(ErrSubjectNotFound))
	assert.True(t, IsNotFound(ErrTopicNotFound))
	assert.True(t, IsNotFound(ErrLearnerNotFound))
	assert.True(t, IsNotFound(ErrEnrollmentNotFound))

	assert.True(t, IsValidation(ErrTitleRequired))
	assert.True(t, IsValidation(ErrDescriptionRequired))
	assert.True(t, IsValidation(ErrSubjectRequired))
	assert.True(t, IsValidation(ErrNameRequired))
	assert.True(t, IsValidation(ErrEmailRequired))
	assert.True(t, IsValidation(ErrLearnerRequired))
	assert.True(t, IsValidation(ErrTopicRequired))
	assert.True(t, IsValidation(ErrSelectionsRequired))
	assert.True(t, IsValidation(ErrProgressRequired))

	assert.False(t, IsValidation(ErrEnrollmentNotFound))
	assert.False(t, IsNotFound(ErrProgressRequired))
}

func TestKindSurvivesFmtWrapping(t *testing.T) {
	err := fmt.Errorf("handling request: %w", ErrEnrollmentNotFound)

	assert.True(t, IsNotFound(err))

	var derr *DomainError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "learner is not enrolled in this topic", derr.Message)
}
