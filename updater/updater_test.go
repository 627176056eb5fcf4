package updater

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbesclapez/RadioFluxRSS/config"
	"github.com/jbesclapez/RadioFluxRSS/playlist"
)

func setupTestEnvironment(t *testing.T, playlistContent string) {
	t.Helper()

	tempDir := t.TempDir()

	originalConfig := config.GetConfig()
	config.SetConfig(&config.Config{DataPath: filepath.Join(tempDir, "data")})
	t.Cleanup(func() { config.SetConfig(originalConfig) })

	playlistPath := filepath.Join(tempDir, "stations.m3u")
	require.NoError(t, os.WriteFile(playlistPath, []byte(playlistContent), 0644))

	os.Setenv("PLAYLIST_PATH", playlistPath)
	t.Cleanup(func() { os.Unsetenv("PLAYLIST_PATH") })
}

func TestRebuild(t *testing.T) {
	setupTestEnvironment(t, `#EXTM3U
#EXTINF:-1 group-title="News",Radio One
http://stream.example.com/one
#EXTINF:-1 group-title="Eclectic",FIP
http://stream.example.com/fip.mp3
http://stream.example.com/orphan
`)

	instance, err := Initialize(context.Background())
	require.NoError(t, err)
	defer instance.Close()

	require.NoError(t, instance.Rebuild())

	data, err := os.ReadFile(config.GetFeedPath())
	require.NoError(t, err)

	parsed, err := gofeed.NewParser().ParseString(string(data))
	require.NoError(t, err)
	require.Len(t, parsed.Items, 3)
	assert.Equal(t, "Radio One", parsed.Items[0].Title)
	assert.Equal(t, "FIP", parsed.Items[1].Title)
	assert.Equal(t, "orphan", parsed.Items[2].Title)

	// catalog persisted alongside the feed
	latest, err := instance.db.LatestFeed()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 3, latest.StationCount)
	assert.Equal(t, string(data), latest.Document)
}

func TestRebuildIsIdempotentAtEntryLevel(t *testing.T) {
	setupTestEnvironment(t, "#EXTINF:-1,Radio One\nhttp://stream.example.com/one\n")

	instance, err := Initialize(context.Background())
	require.NoError(t, err)
	defer instance.Close()

	require.NoError(t, instance.Rebuild())
	first, err := os.ReadFile(config.GetFeedPath())
	require.NoError(t, err)

	require.NoError(t, instance.Rebuild())
	second, err := os.ReadFile(config.GetFeedPath())
	require.NoError(t, err)

	firstParsed, err := gofeed.NewParser().ParseString(string(first))
	require.NoError(t, err)
	secondParsed, err := gofeed.NewParser().ParseString(string(second))
	require.NoError(t, err)

	// timestamps differ across runs, entry identity does not
	require.Len(t, secondParsed.Items, 1)
	assert.Equal(t, firstParsed.Items[0].GUID, secondParsed.Items[0].GUID)
}

func TestRebuildRejectsEmptyPlaylist(t *testing.T) {
	setupTestEnvironment(t, "#EXTM3U\n# nothing else\n")

	instance, err := Initialize(context.Background())
	require.NoError(t, err)
	defer instance.Close()

	err = instance.Rebuild()
	require.ErrorIs(t, err, playlist.ErrNoStations)

	_, statErr := os.Stat(config.GetFeedPath())
	assert.True(t, os.IsNotExist(statErr), "no feed file should be written")
}

func TestRebuildMissingPlaylist(t *testing.T) {
	setupTestEnvironment(t, "#EXTM3U\n")
	os.Setenv("PLAYLIST_PATH", filepath.Join(t.TempDir(), "missing.m3u"))

	instance, err := Initialize(context.Background())
	require.NoError(t, err)
	defer instance.Close()

	err = instance.Rebuild()
	require.Error(t, err)

	_, statErr := os.Stat(config.GetFeedPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestRebuildCancelledContext(t *testing.T) {
	setupTestEnvironment(t, "#EXTINF:-1,Radio One\nhttp://stream.example.com/one\n")

	ctx, cancel := context.WithCancel(context.Background())
	instance, err := Initialize(ctx)
	require.NoError(t, err)
	defer instance.Close()

	cancel()
	assert.ErrorIs(t, instance.Rebuild(), context.Canceled)
}
