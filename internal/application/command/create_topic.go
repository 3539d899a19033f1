package command

import (
	"context"
	"io"
	"strings"

	"github.com/etap-learning/etap-backend/internal/domain/curriculum"
	"github.com/etap-learning/etap-backend/internal/domain/enrollment"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE TOPIC COMMAND
// Curriculum authoring: creates a topic under a subject. When a binary video
// stream is supplied it is resolved to a durable URL through the media
// gateway FIRST; the topic row is only written after the URL is known.
// A gateway failure aborts the whole operation with no partial write.
// ══════════════════════════════════════════════════════════════════════════════

// CreateTopicCommand contains the data to create a topic.
type CreateTopicCommand struct {
	// SubjectID references the owning subject.
	SubjectID int64

	// Title is the display title of the topic.
	Title string

	// Description is the free-form topic description.
	Description string

	// VideoURL is an already-resolved video URL (optional).
	VideoURL *string

	// Video is a binary video stream to upload (optional). When set it
	// takes precedence over VideoURL.
	Video io.Reader
}

// Validate validates the command before any store or gateway access.
func (c CreateTopicCommand) Validate() error {
	if c.SubjectID == 0 {
		return shared.ErrSubjectRequired
	}
	if strings.TrimSpace(c.Title) == "" {
		return shared.ErrTitleRequired
	}
	if strings.TrimSpace(c.Description) == "" {
		return shared.ErrDescriptionRequired
	}
	return nil
}

// CreateTopicHandler handles topic creation.
type CreateTopicHandler struct {
	repo     curriculum.Repository
	uploader curriculum.VideoUploader
	cache    enrollment.ViewCache
	log      *logger.Logger
}

// NewCreateTopicHandler creates a new CreateTopicHandler. The uploader may
// be nil when the deployment has no media gateway configured; binary upload
// requests then fail with the upload kind. The cache may be nil when
// caching is disabled.
func NewCreateTopicHandler(repo curriculum.Repository, uploader curriculum.VideoUploader, cache enrollment.ViewCache, log *logger.Logger) *CreateTopicHandler {
	return &CreateTopicHandler{
		repo:     repo,
		uploader: uploader,
		cache:    cache,
		log:      log.With(logger.Component("create_topic")),
	}
}

// Handle executes the command and returns the persisted topic.
func (h *CreateTopicHandler) Handle(ctx context.Context, cmd CreateTopicCommand) (*curriculum.Topic, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	videoURL := cmd.VideoURL
	if cmd.Video != nil {
		if h.uploader == nil {
			return nil, shared.NewDomainError("curriculum", "CreateTopic", shared.ErrUpload, "no media gateway configured")
		}
		url, err := h.uploader.UploadVideo(ctx, cmd.Video)
		if err != nil {
			h.log.Error("video upload failed", logger.Err(err), logger.SubjectID(cmd.SubjectID))
			return nil, shared.WrapError("curriculum", "CreateTopic", shared.ErrUpload, "video upload failed", err)
		}
		videoURL = &url
	}

	topic := &curriculum.Topic{
		SubjectID:   cmd.SubjectID,
		Title:       cmd.Title,
		Description: cmd.Description,
		VideoURL:    videoURL,
	}

	if err := h.repo.CreateTopic(ctx, topic); err != nil {
		h.log.Error("failed to create topic", logger.Err(err), logger.SubjectID(cmd.SubjectID))
		return nil, err
	}

	// A new topic appears in every learner's full view.
	if h.cache != nil {
		if err := h.cache.InvalidateAllCurricula(ctx); err != nil {
			h.log.Warn("failed to invalidate curriculum caches", logger.Err(err), logger.TopicID(topic.ID))
		}
	}

	h.log.Info("topic created", logger.TopicID(topic.ID), logger.SubjectID(topic.SubjectID))
	return topic, nil
}
