package updater

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jbesclapez/RadioFluxRSS/config"
	"github.com/jbesclapez/RadioFluxRSS/database"
	"github.com/jbesclapez/RadioFluxRSS/feed"
	"github.com/jbesclapez/RadioFluxRSS/logger"
	"github.com/jbesclapez/RadioFluxRSS/playlist"
	"github.com/jbesclapez/RadioFluxRSS/store"
	"github.com/jbesclapez/RadioFluxRSS/utils"
)

// Updater runs the playlist-to-feed pipeline: fetch, parse, store,
// persist, serialize, write. The mutex keeps concurrent cron fires from
// overlapping.
type Updater struct {
	sync.Mutex
	ctx    context.Context
	store  *store.Store
	db     *database.Instance
	Cron   *cron.Cron
	source string
	meta   feed.Metadata
}

func Initialize(ctx context.Context) (*Updater, error) {
	stationStore, err := store.New()
	if err != nil {
		return nil, err
	}

	db, err := database.Initialize(config.GetCatalogPath())
	if err != nil {
		return nil, fmt.Errorf("error initializing station catalog: %v", err)
	}

	instance := &Updater{
		ctx:    ctx,
		store:  stationStore,
		db:     db,
		source: utils.GetEnv("PLAYLIST_PATH"),
		meta: feed.Metadata{
			Title:       utils.GetEnv("FEED_TITLE"),
			Description: utils.GetEnv("FEED_DESCRIPTION"),
			Link:        utils.GetEnv("FEED_LINK"),
			Language:    utils.GetEnv("FEED_LANGUAGE"),
			Generator:   utils.GetEnv("GENERATOR"),
		},
	}

	return instance, nil
}

// Rebuild runs the whole pipeline once. No output file is touched
// unless a complete feed was generated.
func (instance *Updater) Rebuild() error {
	instance.Lock()
	defer instance.Unlock()

	select {
	case <-instance.ctx.Done():
		return instance.ctx.Err()
	default:
	}

	logger.Default.Logf("Updating feed from playlist: %s", instance.source)

	raw, err := playlist.Fetch(instance.source)
	if err != nil {
		return err
	}

	stations, err := playlist.Parse(raw)
	if err != nil {
		return err
	}
	if len(stations) == 0 {
		return fmt.Errorf("%w: %s", playlist.ErrNoStations, instance.source)
	}

	if err := instance.store.Replace(stations); err != nil {
		return err
	}
	if err := instance.db.SaveStations(stations); err != nil {
		return err
	}

	ordered, err := instance.store.Stations()
	if err != nil {
		return err
	}

	meta := instance.meta
	meta.BuiltAt = time.Now()

	document, err := feed.Generate(ordered, meta)
	if err != nil {
		return err
	}

	feedPath := config.GetFeedPath()
	if err := writeAtomic(feedPath, document); err != nil {
		return err
	}

	if err := instance.db.ArchiveFeed(document, meta.BuiltAt, len(ordered)); err != nil {
		logger.Default.Warnf("Error archiving feed: %v", err)
	}

	logger.Default.Logf("Generated feed with %d stations: %s", len(ordered), feedPath)
	return nil
}

// StartCron schedules periodic rebuilds per SYNC_CRON, and kicks off an
// initial rebuild unless SYNC_ON_BOOT is disabled.
func (instance *Updater) StartCron() error {
	cronSched := utils.GetEnv("SYNC_CRON")

	c := cron.New()
	_, err := c.AddFunc(cronSched, func() {
		go instance.rebuildLogged()
	})
	if err != nil {
		return fmt.Errorf("error initializing background processes: %v", err)
	}
	c.Start()
	instance.Cron = c

	if os.Getenv("SYNC_ON_BOOT") != "false" {
		logger.Default.Log("SYNC_ON_BOOT enabled. Starting initial feed update.")
		go instance.rebuildLogged()
	}

	return nil
}

func (instance *Updater) rebuildLogged() {
	if err := instance.Rebuild(); err != nil {
		logger.Default.Errorf("Background process: Error updating feed: %v", err)
	} else {
		logger.Default.Log("Background process: Updated feed.")
	}
}

func (instance *Updater) Close() error {
	if instance.Cron != nil {
		instance.Cron.Stop()
	}
	return instance.db.Close()
}

// writeAtomic writes to a temp file and renames so readers never see a
// partial feed.
func writeAtomic(path string, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output folder: %v", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("error writing feed file: %v", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("error moving feed file into place: %v", err)
	}

	return nil
}
