package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureEntry(t *testing.T, buf *bytes.Buffer) LogEntry {
	t.Helper()

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelWarn})

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelInfo}).WithRequestID("req-123")

	log.Info("hello")

	entry := captureEntry(t, &buf)
	assert.Equal(t, "req-123", entry.Fields[RequestIDKey])
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelInfo}).WithRequestID("req-456")

	ctx := WithContext(context.Background(), log)
	FromContext(ctx).Info("from context")

	entry := captureEntry(t, &buf)
	assert.Equal(t, "req-456", entry.Fields[RequestIDKey])
}

func TestFromContextWithoutLogger(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestDomainFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelInfo})

	log.Info("fields",
		LearnerID(7),
		TopicID(10),
		Progress(60),
		Latency(250*time.Millisecond),
	)

	entry := captureEntry(t, &buf)
	assert.EqualValues(t, 7, entry.Fields["learner_id"])
	assert.EqualValues(t, 10, entry.Fields["topic_id"])
	assert.EqualValues(t, 60, entry.Fields["progress"])
	assert.Equal(t, "250ms", entry.Fields["latency"])
}
