package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbesclapez/RadioFluxRSS/playlist"
)

var testMeta = Metadata{
	Title:       "French Radio Stations",
	Description: "Collection of French radio stations for continuous streaming",
	Link:        "https://example.com/radio",
	Language:    "fr",
	Generator:   "RadioFluxRSS",
	BuiltAt:     time.Date(2025, time.May, 29, 12, 0, 0, 0, time.UTC),
}

func testStations() []*playlist.StationInfo {
	return []*playlist.StationInfo{
		{Title: "Radio One", Group: "News", URL: "http://stream.example.com/one"},
		{Title: "FIP", Group: "Eclectic", URL: "http://stream.example.com/fip.mp3"},
		{Title: "France Info", URL: "https://stream.example.com/info.aac"},
	}
}

func TestGenerateRoundRead(t *testing.T) {
	out, err := Generate(testStations(), testMeta)
	require.NoError(t, err)

	parsed, err := gofeed.NewParser().ParseString(out)
	require.NoError(t, err)

	assert.Equal(t, "French Radio Stations", parsed.Title)
	assert.Equal(t, "fr", parsed.Language)
	require.Len(t, parsed.Items, 3)

	assert.Equal(t, "Radio One", parsed.Items[0].Title)
	assert.Equal(t, "FIP", parsed.Items[1].Title)
	assert.Equal(t, "France Info", parsed.Items[2].Title)

	first := parsed.Items[0]
	require.Len(t, first.Enclosures, 1)
	assert.Equal(t, "http://stream.example.com/one", first.Enclosures[0].URL)
	assert.Equal(t, "audio/mpeg", first.Enclosures[0].Type)
	assert.Equal(t, "0", first.Enclosures[0].Length)
	assert.Equal(t, []string{"News"}, first.Categories)
	assert.Equal(t, EntryGUID("Radio One", "http://stream.example.com/one"), first.GUID)

	require.NotNil(t, first.ITunesExt)
	assert.Equal(t, "00:00:00", first.ITunesExt.Duration)

	// aac station gets the matching MIME type, missing group omits category
	third := parsed.Items[2]
	require.Len(t, third.Enclosures, 1)
	assert.Equal(t, "audio/aac", third.Enclosures[0].Type)
	assert.Empty(t, third.Categories)
}

func TestGenerateDeterminism(t *testing.T) {
	first, err := Generate(testStations(), testMeta)
	require.NoError(t, err)

	second, err := Generate(testStations(), testMeta)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateOrderPreserved(t *testing.T) {
	out, err := Generate(testStations(), testMeta)
	require.NoError(t, err)

	one := strings.Index(out, "Radio One")
	fip := strings.Index(out, "FIP")
	info := strings.Index(out, "France Info")
	assert.True(t, one < fip && fip < info, "entries out of order")
}

func TestGenerateRejectsEmpty(t *testing.T) {
	_, err := Generate(nil, testMeta)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "no stations")
}

func TestGenerateSkipsMalformedURLs(t *testing.T) {
	stations := []*playlist.StationInfo{
		{Title: "Good", URL: "http://stream.example.com/good"},
		{Title: "Bad", URL: "not-a-stream"},
	}

	out, err := Generate(stations, testMeta)
	require.NoError(t, err)

	parsed, err := gofeed.NewParser().ParseString(out)
	require.NoError(t, err)
	require.Len(t, parsed.Items, 1)
	assert.Equal(t, "Good", parsed.Items[0].Title)
}

func TestGenerateRejectsAllMalformed(t *testing.T) {
	stations := []*playlist.StationInfo{
		{Title: "Bad", URL: "not-a-stream"},
		{Title: "Worse", URL: "rtsp://example.com/nope"},
	}

	_, err := Generate(stations, testMeta)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "malformed")
}

func TestEntryGUID(t *testing.T) {
	a := EntryGUID("Radio One", "http://stream.example.com/one")
	b := EntryGUID("Radio One", "http://stream.example.com/one")
	assert.Equal(t, a, b)
	assert.Len(t, a, 56)

	assert.NotEqual(t, a, EntryGUID("Radio Two", "http://stream.example.com/one"))
	assert.NotEqual(t, a, EntryGUID("Radio One", "http://stream.example.com/two"))
}

func TestGenerateXMLEscaping(t *testing.T) {
	stations := []*playlist.StationInfo{
		{Title: "Rock & Roll <FM>", URL: "http://stream.example.com/rock?a=1&b=2"},
	}

	out, err := Generate(stations, testMeta)
	require.NoError(t, err)

	parsed, err := gofeed.NewParser().ParseString(out)
	require.NoError(t, err)
	require.Len(t, parsed.Items, 1)
	assert.Equal(t, "Rock & Roll <FM>", parsed.Items[0].Title)
	require.Len(t, parsed.Items[0].Enclosures, 1)
	assert.Equal(t, "http://stream.example.com/rock?a=1&b=2", parsed.Items[0].Enclosures[0].URL)
}
