package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jbesclapez/RadioFluxRSS/config"
	"github.com/jbesclapez/RadioFluxRSS/handlers"
	"github.com/jbesclapez/RadioFluxRSS/logger"
	"github.com/jbesclapez/RadioFluxRSS/scraper"
	"github.com/jbesclapez/RadioFluxRSS/updater"
	"github.com/jbesclapez/RadioFluxRSS/utils"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// manually set time zone
	if tz := os.Getenv("TZ"); tz != "" {
		var err error
		time.Local, err = time.LoadLocation(tz)
		if err != nil {
			logger.Default.Errorf("error loading location '%s': %v", tz, err)
		}
	}

	if dataPath := os.Getenv("DATA_PATH"); dataPath != "" {
		config.SetConfig(&config.Config{DataPath: dataPath})
	}

	// Optional pre-step: scrape a radio directory into a playlist that
	// the normal pipeline then consumes.
	if scrapeURL := os.Getenv("SCRAPE_URL"); scrapeURL != "" {
		logger.Default.Logf("SCRAPE_URL set. Scraping radio directory: %s", scrapeURL)

		radios, err := scraper.New(scrapeURL).ScrapeAll()
		if err != nil {
			logger.Default.Fatalf("Error scraping radio directory: %v", err)
		}

		exportDir := config.GetScraperExportDir()
		if err := scraper.SaveJSON(radios, filepath.Join(exportDir, "radios.json")); err != nil {
			logger.Default.Errorf("Error exporting JSON: %v", err)
		}
		if err := scraper.SaveCSV(radios, filepath.Join(exportDir, "radios.csv")); err != nil {
			logger.Default.Errorf("Error exporting CSV: %v", err)
		}

		playlistPath := filepath.Join(exportDir, "radios.m3u")
		if err := scraper.WritePlaylist(radios, playlistPath); err != nil {
			logger.Default.Fatalf("Error writing scraped playlist: %v", err)
		}
		os.Setenv("PLAYLIST_PATH", playlistPath)
	}

	instance, err := updater.Initialize(ctx)
	if err != nil {
		logger.Default.Fatalf("Error initializing updater: %v", err)
	}
	defer instance.Close()

	if os.Getenv("SERVE_FEED") != "true" {
		if err := instance.Rebuild(); err != nil {
			logger.Default.Fatalf("Error generating feed: %v", err)
		}
		return
	}

	if err := instance.StartCron(); err != nil {
		logger.Default.Fatalf("Error initializing background processes: %v", err)
	}

	feedHandler := handlers.NewFeedHTTPHandler(logger.Default, config.GetFeedPath())
	http.Handle("/feed.xml", feedHandler)

	port := utils.GetEnv("PORT")
	logger.Default.Logf("Server is running on port %s...", port)
	logger.Default.Log("Feed Endpoint is running (`/feed.xml`)")
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Default.Fatalf("HTTP server error: %v", err)
	}
}
