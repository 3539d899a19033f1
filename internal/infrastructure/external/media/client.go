// Package media implements the video upload gateway on Google Cloud
// Storage. Topic videos are streamed into a bucket and exposed through a
// durable public HTTPS URL; the catalog stores only that URL.
package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/etap-learning/etap-backend/internal/domain/shared"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// MEDIA UPLOAD GATEWAY
// ══════════════════════════════════════════════════════════════════════════════

// objectPrefix namespaces topic videos inside the bucket.
const objectPrefix = "videos/"

// Config holds media gateway configuration.
type Config struct {
	// Bucket is the GCS bucket topic videos are written to.
	Bucket string

	// CDNDomain optionally fronts the bucket. When set, public URLs use
	// this domain instead of storage.googleapis.com.
	CDNDomain string

	// CredentialsFile is the path to a service account key file. Empty
	// means ambient application default credentials.
	CredentialsFile string
}

// Client is the GCS-backed implementation of curriculum.VideoUploader.
type Client struct {
	storage *storage.Client
	bucket  string
	cdn     string
	log     *logger.Logger
}

// NewClient creates a new media Client.
func NewClient(ctx context.Context, cfg Config, log *logger.Logger) (*Client, error) {
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	st, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("media: failed to create storage client: %w", err)
	}

	return &Client{
		storage: st,
		bucket:  cfg.Bucket,
		cdn:     strings.TrimRight(cfg.CDNDomain, "/"),
		log:     log.With(logger.Component("media_gateway")),
	}, nil
}

// UploadVideo streams the video into the bucket under a fresh object key
// and returns the public URL. Synchronous: the URL is durable by the time
// this returns. Failures carry the upload error kind so callers can avoid
// persisting a topic that points at nothing.
func (c *Client) UploadVideo(ctx context.Context, video io.Reader) (string, error) {
	key := VideoKey(uuid.NewString())

	w := c.storage.Bucket(c.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "video/mp4"

	if _, err := io.Copy(w, video); err != nil {
		_ = w.Close()
		return "", shared.WrapError("curriculum", "UploadVideo", shared.ErrUpload, "failed to stream video to bucket", err)
	}
	if err := w.Close(); err != nil {
		return "", shared.WrapError("curriculum", "UploadVideo", shared.ErrUpload, "failed to finalize video object", err)
	}

	url := PublicURL(c.bucket, c.cdn, key)
	c.log.Info("video uploaded",
		logger.Operation("UploadVideo"),
		logger.String("object_key", key),
		logger.String("url", url),
	)

	return url, nil
}

// Close releases the underlying storage client.
func (c *Client) Close() error {
	return c.storage.Close()
}

// VideoKey builds the bucket object key for a video id.
func VideoKey(id string) string {
	return objectPrefix + id
}

// PublicURL builds the durable HTTPS URL for an object key. A CDN domain
// takes precedence over the default storage.googleapis.com form.
func PublicURL(bucket, cdnDomain, key string) string {
	key = strings.TrimLeft(key, "/")
	if cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, key)
}
