package curriculum

import (
	"context"
	"io"
)

// Repository defines the persistence contract for subjects and topics.
// Implementations live in infrastructure/persistence.
type Repository interface {
	// CreateSubject persists a new subject and fills in its generated ID.
	CreateSubject(ctx context.Context, subject *Subject) error

	// ListSubjects returns all subjects ordered ascending by id.
	ListSubjects(ctx context.Context) ([]Subject, error)

	// CreateTopic persists a new topic and fills in its generated ID.
	// Returns shared.ErrSubjectNotFound if the referenced subject does
	// not exist.
	CreateTopic(ctx context.Context, topic *Topic) error

	// ListTopicsBySubject returns all topics of a subject ordered
	// ascending by id.
	ListTopicsBySubject(ctx context.Context, subjectID int64) ([]Topic, error)

	// GetTopicByID returns a topic by id.
	// Returns shared.ErrTopicNotFound if no such topic exists.
	GetTopicByID(ctx context.Context, topicID int64) (*Topic, error)
}

// VideoUploader is the media-upload gateway contract. Given a binary video
// stream it returns a durable HTTPS URL, synchronously from the caller's
// point of view. Failures are surfaced with the shared.ErrUpload kind.
type VideoUploader interface {
	UploadVideo(ctx context.Context, video io.Reader) (string, error)
}
