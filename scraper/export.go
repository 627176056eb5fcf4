package scraper

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/jbesclapez/RadioFluxRSS/playlist"
)

// ToStations bridges scraped radios into the playlist pipeline.
func ToStations(radios []*Radio) []*playlist.StationInfo {
	var stations []*playlist.StationInfo
	for _, radio := range radios {
		if radio.StreamURL == "" {
			continue
		}
		stations = append(stations, &playlist.StationInfo{
			Title:   radio.Title,
			URL:     radio.StreamURL,
			LogoURL: radio.LogoURL,
		})
	}
	return stations
}

func SaveJSON(radios []*Radio, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating export folder: %v", err)
	}

	data, err := json.MarshalIndent(radios, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling radios to JSON: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing JSON file: %v", err)
	}

	return nil
}

func SaveCSV(radios []*Radio, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating export folder: %v", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"name", "title", "page_url", "logo_url", "stream_url", "stream_quality"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("error writing CSV header: %v", err)
	}

	for _, radio := range radios {
		row := []string{radio.Name, radio.Title, radio.PageURL, radio.LogoURL, radio.StreamURL, radio.Quality}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing CSV row for %s: %v", radio.Name, err)
		}
	}

	return nil
}

// WritePlaylist emits the scraped radios as an extended M3U playlist,
// so the scraper output can be fed straight into the parser.
func WritePlaylist(radios []*Radio, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating playlist folder: %v", err)
	}

	var out strings.Builder
	out.WriteString("#EXTM3U\n")
	for _, radio := range radios {
		if radio.StreamURL == "" {
			continue
		}

		extInfTags := []string{"#EXTINF:-1"}
		if radio.LogoURL != "" {
			extInfTags = append(extInfTags, fmt.Sprintf("tvg-logo=%q", radio.LogoURL))
		}
		out.WriteString(fmt.Sprintf("%s,%s\n", strings.Join(extInfTags, " "), radio.Title))
		out.WriteString(radio.StreamURL)
		out.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(out.String()), 0644); err != nil {
		return fmt.Errorf("error writing playlist file: %v", err)
	}

	return nil
}
