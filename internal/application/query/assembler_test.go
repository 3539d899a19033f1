package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etap-learning/etap-backend/internal/domain/enrollment"
)

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }

func TestAssembleFullCurriculum(t *testing.T) {
	rows := []enrollment.CurriculumRow{
		{
			SubjectID: 1, SubjectTitle: "Mathematics", SubjectDescription: "Numbers",
			TopicID: i64Ptr(10), TopicTitle: strPtr("Algebra"), TopicDescription: strPtr("Equations"),
			VideoURL: strPtr("https://cdn.example.com/videos/algebra"), IsOffering: 1,
		},
		{
			SubjectID: 1, SubjectTitle: "Mathematics", SubjectDescription: "Numbers",
			TopicID: i64Ptr(11), TopicTitle: strPtr("Geometry"), TopicDescription: strPtr("Shapes"),
			IsOffering: 0,
		},
		{
			SubjectID: 2, SubjectTitle: "Physics", SubjectDescription: "Matter",
			TopicID: i64Ptr(20), TopicTitle: strPtr("Mechanics"), TopicDescription: strPtr("Motion"),
			IsOffering: 0,
		},
	}

	subjects := AssembleFullCurriculum(rows)

	require.Len(t, subjects, 2)

	math := subjects[0]
	assert.Equal(t, int64(1), math.ID)
	assert.Equal(t, "Mathematics", math.Title)
	require.Len(t, math.Topics, 2)
	assert.Equal(t, int64(10), math.Topics[0].ID)
	assert.Equal(t, 1, math.Topics[0].IsOffering)
	require.NotNil(t, math.Topics[0].VideoURL)
	assert.Equal(t, int64(11), math.Topics[1].ID)
	assert.Equal(t, 0, math.Topics[1].IsOffering)
	assert.Nil(t, math.Topics[1].VideoURL)

	physics := subjects[1]
	assert.Equal(t, int64(2), physics.ID)
	require.Len(t, physics.Topics, 1)
	assert.Equal(t, "Mechanics", physics.Topics[0].Title)
}

func TestAssembleFullCurriculumSubjectWithoutTopics(t *testing.T) {
	rows := []enrollment.CurriculumRow{
		{SubjectID: 3, SubjectTitle: "Chemistry", SubjectDescription: "Reactions"},
	}

	subjects := AssembleFullCurriculum(rows)

	require.Len(t, subjects, 1)
	assert.Equal(t, "Chemistry", subjects[0].Title)
	assert.NotNil(t, subjects[0].Topics, "topic list must be empty, not null")
	assert.Empty(t, subjects[0].Topics)
}

func TestAssembleFullCurriculumPreservesRowOrder(t *testing.T) {
	rows := []enrollment.CurriculumRow{
		{SubjectID: 5, SubjectTitle: "B", TopicID: i64Ptr(50), TopicTitle: strPtr("b1"), TopicDescription: strPtr("d")},
		{SubjectID: 2, SubjectTitle: "A", TopicID: i64Ptr(20), TopicTitle: strPtr("a1"), TopicDescription: strPtr("d")},
		{SubjectID: 5, SubjectTitle: "B", TopicID: i64Ptr(51), TopicTitle: strPtr("b2"), TopicDescription: strPtr("d")},
	}

	subjects := AssembleFullCurriculum(rows)

	require.Len(t, subjects, 2)
	assert.Equal(t, int64(5), subjects[0].ID, "first-seen subject order must survive assembly")
	assert.Len(t, subjects[0].Topics, 2)
	assert.Equal(t, int64(2), subjects[1].ID)
}

func TestAssembleFullCurriculumEmpty(t *testing.T) {
	subjects := AssembleFullCurriculum(nil)
	assert.NotNil(t, subjects)
	assert.Empty(t, subjects)
}

func TestAssembleEnrolledCurriculum(t *testing.T) {
	rows := []enrollment.EnrolledRow{
		{
			SubjectID: 1, SubjectTitle: "Mathematics", SubjectDescription: "Numbers",
			TopicID: 10, TopicTitle: "Algebra", TopicDescription: "Equations", Progress: 60,
		},
		{
			SubjectID: 1, SubjectTitle: "Mathematics", SubjectDescription: "Numbers",
			TopicID: 11, TopicTitle: "Geometry", TopicDescription: "Shapes", Progress: 100,
		},
		{
			SubjectID: 2, SubjectTitle: "Physics", SubjectDescription: "Matter",
			TopicID: 20, TopicTitle: "Mechanics", TopicDescription: "Motion", Progress: 0,
		},
	}

	subjects := AssembleEnrolledCurriculum(rows)

	require.Len(t, subjects, 2)
	require.Len(t, subjects[0].Topics, 2)
	assert.Equal(t, 60, subjects[0].Topics[0].Progress)
	assert.Equal(t, 100, subjects[0].Topics[1].Progress)
	require.Len(t, subjects[1].Topics, 1)
	assert.Zero(t, subjects[1].Topics[0].Progress)
}

func TestAssembleOfferings(t *testing.T) {
	rows := []enrollment.OfferingRow{
		{
			LearnerID: 7, LearnerName: "Aruzhan", LearnerEmail: "aruzhan@example.com",
			Progress: 100, Completed: true,
			SubjectID: 1, SubjectTitle: "Mathematics", TopicID: 10, TopicTitle: "Algebra",
		},
		{
			LearnerID: 8, LearnerName: "Bekzat", LearnerEmail: "bekzat@example.com",
			Progress: 40, Completed: false,
			SubjectID: 1, SubjectTitle: "Mathematics", TopicID: 10, TopicTitle: "Algebra",
		},
	}

	offerings := assembleOfferings(rows)

	require.Len(t, offerings, 2)
	assert.Equal(t, int64(7), offerings[0].LearnerID)
	assert.True(t, offerings[0].Completed)
	assert.Equal(t, "Mathematics", offerings[0].Subject.SubjectTitle)
	assert.Equal(t, int64(10), offerings[0].Topic.TopicID)
	assert.Equal(t, 40, offerings[1].Progress)
}

func TestAssembleOfferingsEmpty(t *testing.T) {
	offerings := assembleOfferings(nil)
	assert.NotNil(t, offerings, "roster must serialize as [], never null")
	assert.Empty(t, offerings)
}
