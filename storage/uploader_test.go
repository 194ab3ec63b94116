package storage

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionForContentType(t *testing.T) {
	ext, err := ExtensionForContentType("image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)

	ext, err = ExtensionForContentType("Video/MP4; codecs=avc1")
	require.NoError(t, err)
	assert.Equal(t, ".mp4", ext)

	_, err = ExtensionForContentType("application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedContentType)
}

func TestNewObjectKey(t *testing.T) {
	key := NewObjectKey("media", "t1", ".png")
	assert.True(t, strings.HasPrefix(key, "media/t1/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	assert.True(t, strings.HasPrefix(NewObjectKey("media", "", ".png"), "media/general/"))
	assert.NotEqual(t, NewObjectKey("media", "t1", ".png"), NewObjectKey("media", "t1", ".png"))
}

func TestPublicURL(t *testing.T) {
	base, err := url.Parse("https://cdn.example.com/league/")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/league/media/t1/a.png", PublicURL(base, "media/t1/a.png"))
	assert.Equal(t, "https://cdn.example.com/league/media/t1/a.png", PublicURL(base, "/media/t1/a.png"))
	assert.Empty(t, PublicURL(base, ""))
	assert.Empty(t, PublicURL(nil, "media/a.png"))
}

func TestIsVideo(t *testing.T) {
	assert.True(t, IsVideo("video/mp4"))
	assert.False(t, IsVideo("image/png"))
}
