package utils

import (
	"os"
)

// GetEnv looks up a configuration variable and falls back to the
// documented default when it is unset or blank.
func GetEnv(env string) string {
	value, exists := os.LookupEnv(env)
	if exists && len(value) > 0 {
		return value
	}

	switch env {
	case "USER_AGENT":
		return "RadioFluxRSS/1.0 (+https://github.com/jbesclapez/RadioFluxRSS)"
	case "PLAYLIST_PATH":
		return "playlist.m3u"
	case "FEED_TITLE":
		return "French Radio Stations"
	case "FEED_DESCRIPTION":
		return "Collection of French radio stations for continuous streaming"
	case "FEED_LINK":
		return "https://example.com/radio"
	case "FEED_LANGUAGE":
		return "fr"
	case "GENERATOR":
		return "RadioFluxRSS"
	case "SYNC_CRON":
		return "0 0 * * *"
	case "PORT":
		return "8080"
	default:
		return ""
	}
}
