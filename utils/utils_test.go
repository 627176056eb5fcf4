package utils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Run("returns default when unset", func(t *testing.T) {
		os.Unsetenv("FEED_LANGUAGE")
		assert.Equal(t, "fr", GetEnv("FEED_LANGUAGE"))
	})

	t.Run("returns value when set", func(t *testing.T) {
		os.Setenv("FEED_LANGUAGE", "en")
		defer os.Unsetenv("FEED_LANGUAGE")
		assert.Equal(t, "en", GetEnv("FEED_LANGUAGE"))
	})

	t.Run("unknown variable defaults to empty", func(t *testing.T) {
		assert.Equal(t, "", GetEnv("NOT_A_KNOWN_VARIABLE"))
	})
}

func TestIsPlaylistFile(t *testing.T) {
	assert.True(t, IsPlaylistFile("http://example.com/list.m3u"))
	assert.True(t, IsPlaylistFile("  stations.M3U8 "))
	assert.False(t, IsPlaylistFile("http://example.com/feed.xml"))
}

func TestIsWellFormedURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"http url", "http://stream.example.com/one", true},
		{"https url", "https://stream.example.com:8000/live", true},
		{"missing scheme", "stream.example.com/one", false},
		{"unsupported scheme", "rtsp://stream.example.com/one", false},
		{"missing host", "http://", false},
		{"garbage", "http://exa mple.com/%zz", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWellFormedURL(tt.url))
		})
	}
}

func TestGetFileExtensionFromUrl(t *testing.T) {
	ext, err := GetFileExtensionFromUrl("http://example.com/stream/radio.mp3")
	assert.NoError(t, err)
	assert.Equal(t, "mp3", ext)

	_, err = GetFileExtensionFromUrl("http://example.com/stream/radio")
	assert.Error(t, err)
}

func TestCalculateChecksum(t *testing.T) {
	first := CalculateChecksum("hello")
	second := CalculateChecksum("hello")
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, CalculateChecksum("world"))
}
