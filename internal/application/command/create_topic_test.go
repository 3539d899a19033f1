package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etap-learning/etap-backend/internal/domain/shared"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

func TestCreateTopicWithVideoURL(t *testing.T) {
	repo := &fakeCurriculumRepo{}
	h := NewCreateTopicHandler(repo, nil, nil, logger.Default())

	url := "https://cdn.example.com/videos/intro"
	topic, err := h.Handle(context.Background(), CreateTopicCommand{
		SubjectID:   1,
		Title:       "Algebra",
		Description: "Linear equations",
		VideoURL:    &url,
	})

	require.NoError(t, err)
	require.NotNil(t, topic.VideoURL)
	assert.Equal(t, url, *topic.VideoURL)
	assert.Len(t, repo.topics, 1)
}

func TestCreateTopicUploadsVideoStream(t *testing.T) {
	repo := &fakeCurriculumRepo{}
	uploader := &fakeUploader{url: "https://storage.googleapis.com/etap-media/videos/abc"}
	h := NewCreateTopicHandler(repo, uploader, nil, logger.Default())

	topic, err := h.Handle(context.Background(), CreateTopicCommand{
		SubjectID:   1,
		Title:       "Algebra",
		Description: "Linear equations",
		Video:       strings.NewReader("binary video bytes"),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, uploader.calls)
	require.NotNil(t, topic.VideoURL)
	assert.Equal(t, uploader.url, *topic.VideoURL)
}

func TestCreateTopicUploadFailureLeavesNoRow(t *testing.T) {
	repo := &fakeCurriculumRepo{}
	uploader := &fakeUploader{err: errors.New("bucket unavailable")}
	h := NewCreateTopicHandler(repo, uploader, nil, logger.Default())

	_, err := h.Handle(context.Background(), CreateTopicCommand{
		SubjectID:   1,
		Title:       "Algebra",
		Description: "Linear equations",
		Video:       strings.NewReader("binary video bytes"),
	})

	require.Error(t, err)
	assert.True(t, shared.IsUpload(err))
	assert.Zero(t, repo.createCalls, "topic row must not exist after a failed upload")
}

func TestCreateTopicNoGatewayConfigured(t *testing.T) {
	repo := &fakeCurriculumRepo{}
	h := NewCreateTopicHandler(repo, nil, nil, logger.Default())

	_, err := h.Handle(context.Background(), CreateTopicCommand{
		SubjectID:   1,
		Title:       "Algebra",
		Description: "Linear equations",
		Video:       strings.NewReader("binary video bytes"),
	})

	require.Error(t, err)
	assert.True(t, shared.IsUpload(err))
	assert.Zero(t, repo.createCalls)
}

func TestCreateTopicInvalidatesCurriculumViews(t *testing.T) {
	repo := &fakeCurriculumRepo{}
	cache := &fakeViewCache{}
	h := NewCreateTopicHandler(repo, nil, cache, logger.Default())

	_, err := h.Handle(context.Background(), CreateTopicCommand{
		SubjectID:   1,
		Title:       "Algebra",
		Description: "Linear equations",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidatedAll, "a new topic must drop every cached full view")
}

func TestCreateTopicFailureLeavesCacheUntouched(t *testing.T) {
	repo := &fakeCurriculumRepo{err: shared.ErrSubjectNotFound}
	cache := &fakeViewCache{}
	h := NewCreateTopicHandler(repo, nil, cache, logger.Default())

	_, err := h.Handle(context.Background(), CreateTopicCommand{
		SubjectID:   99,
		Title:       "Algebra",
		Description: "Linear equations",
	})

	require.Error(t, err)
	assert.Zero(t, cache.invalidatedAll)
}

func TestCreateTopicValidation(t *testing.T) {
	repo := &fakeCurriculumRepo{}
	h := NewCreateTopicHandler(repo, nil, nil, logger.Default())

	_, err := h.Handle(context.Background(), CreateTopicCommand{Title: "Algebra", Description: "d"})
	assert.ErrorIs(t, err, shared.ErrSubjectRequired)

	_, err = h.Handle(context.Background(), CreateTopicCommand{SubjectID: 1, Description: "d"})
	assert.ErrorIs(t, err, shared.ErrTitleRequired)

	_, err = h.Handle(context.Background(), CreateTopicCommand{SubjectID: 1, Title: "Algebra"})
	assert.ErrorIs(t, err, shared.ErrDescriptionRequired)

	assert.Zero(t, repo.createCalls)
}

func TestCreateTopicMissingSubject(t *testing.T) {
	repo := &fakeCurriculumRepo{err: shared.ErrSubjectNotFound}
	h := NewCreateTopicHandler(repo, nil, nil, logger.Default())

	_, err := h.Handle(context.Background(), CreateTopicCommand{
		SubjectID:   99,
		Title:       "Algebra",
		Description: "Linear equations",
	})

	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}
