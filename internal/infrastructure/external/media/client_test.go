package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideoKey(t *testing.T) {
	key := VideoKey("abc-123")
	assert.Equal(t, "videos/abc-123", key)
}

func TestPublicURLDefault(t *testing.T) {
	url := PublicURL("etap-media", "", "videos/abc-123")
	assert.Equal(t, "https://storage.googleapis.com/etap-media/videos/abc-123", url)
}

func TestPublicURLUsesCDNDomain(t *testing.T) {
	url := PublicURL("etap-media", "cdn.example.com", "videos/abc-123")
	assert.Equal(t, "https://cdn.example.com/videos/abc-123", url)
}

func TestPublicURLStripsLeadingSlash(t *testing.T) {
	url := PublicURL("etap-media", "", "/videos/abc-123")
	assert.False(t, strings.Contains(url, "//videos"))
	assert.Equal(t, "https://storage.googleapis.com/etap-media/videos/abc-123", url)
}
