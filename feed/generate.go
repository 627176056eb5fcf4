package feed

import (
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/jbesclapez/RadioFluxRSS/logger"
	"github.com/jbesclapez/RadioFluxRSS/playlist"
	"github.com/jbesclapez/RadioFluxRSS/utils"
)

// continuousDuration marks an entry as an unbounded live stream rather
// than a finite episode.
const continuousDuration = "00:00:00"

// Generate serializes stations into a complete RSS document, in input
// order. Stations with a malformed stream URL are skipped with a
// warning; the feed is rejected outright when nothing playable remains.
func Generate(stations []*playlist.StationInfo, meta Metadata) (string, error) {
	if len(stations) == 0 {
		return "", &ValidationError{Reason: "playlist produced no stations"}
	}

	channel := &Channel{
		Title:         meta.Title,
		Description:   meta.Description,
		Link:          meta.Link,
		Language:      meta.Language,
		Generator:     meta.Generator,
		LastBuildDate: meta.BuiltAt.Format(time.RFC1123Z),
	}

	skipped := 0
	for _, station := range stations {
		if !utils.IsWellFormedURL(station.URL) {
			logger.Default.Warnf("Skipping station %q: malformed stream URL %q", station.Title, station.URL)
			skipped++
			continue
		}

		channel.Items = append(channel.Items, &Item{
			Title:       station.Title,
			Description: fmt.Sprintf("Live stream for %s", station.Title),
			GUID:        GUID{IsPermaLink: "false", Value: EntryGUID(station.Title, station.URL)},
			PubDate:     meta.BuiltAt.Format(time.RFC1123Z),
			Category:    station.Group,
			Duration:    continuousDuration,
			Explicit:    "no",
			Enclosure: Enclosure{
				URL:    station.URL,
				Type:   enclosureType(station.URL),
				Length: "0",
			},
		})
	}

	if len(channel.Items) == 0 {
		return "", &ValidationError{
			Reason: fmt.Sprintf("all %d stations had malformed stream URLs", skipped),
		}
	}

	rss := &RSS{
		Version:  "2.0",
		ItunesNS: ItunesNS,
		Channel:  channel,
	}

	out, err := xml.MarshalIndent(rss, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshalling feed: %v", err)
	}

	return xml.Header + string(out) + "\n", nil
}

// EntryGUID derives a stable identifier from the station title and
// stream URL, so regenerating from an unchanged playlist is idempotent.
func EntryGUID(title, url string) string {
	h := sha3.Sum224([]byte(title + "|" + url))
	return hex.EncodeToString(h[:])
}

func enclosureType(rawUrl string) string {
	ext, err := utils.GetFileExtensionFromUrl(rawUrl)
	if err != nil {
		return "audio/mpeg"
	}

	switch strings.ToLower(ext) {
	case "aac":
		return "audio/aac"
	case "ogg", "oga":
		return "audio/ogg"
	case "flac":
		return "audio/flac"
	default:
		return "audio/mpeg"
	}
}
