package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jbesclapez/RadioFluxRSS/playlist"
)

type Instance struct {
	db *sql.DB
}

// Initialize opens (creating if needed) the station catalog database.
func Initialize(path string) (*Instance, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating data folder: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening SQLite database: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS stations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			position INTEGER,
			title TEXT,
			group_name TEXT,
			logo_url TEXT,
			url TEXT
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("error creating stations table: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS feeds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			checksum TEXT,
			built_at TEXT,
			station_count INTEGER,
			document BLOB
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("error creating feeds table: %v", err)
	}

	return &Instance{db: db}, nil
}

// SaveStations replaces the persisted catalog with the given stations.
func (i *Instance) SaveStations(stations []*playlist.StationInfo) (err error) {
	tx, err := i.db.Begin()
	if err != nil {
		return fmt.Errorf("error beginning transaction: %v", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec("DELETE FROM stations"); err != nil {
		return fmt.Errorf("error clearing stations: %v", err)
	}

	stmt, err := tx.Prepare("INSERT INTO stations(position, title, group_name, logo_url, url) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("error preparing statement: %v", err)
	}
	defer stmt.Close()

	for pos, s := range stations {
		if _, err = stmt.Exec(pos, s.Title, s.Group, s.LogoURL, s.URL); err != nil {
			return fmt.Errorf("error inserting station %q: %v", s.Title, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %v", err)
	}

	return nil
}

// GetStations reads the persisted catalog back in playlist order.
func (i *Instance) GetStations() ([]*playlist.StationInfo, error) {
	rows, err := i.db.Query("SELECT title, group_name, logo_url, url FROM stations ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("error querying stations: %v", err)
	}
	defer rows.Close()

	var stations []*playlist.StationInfo
	for rows.Next() {
		var s playlist.StationInfo
		if err := rows.Scan(&s.Title, &s.Group, &s.LogoURL, &s.URL); err != nil {
			return nil, fmt.Errorf("error scanning station: %v", err)
		}
		stations = append(stations, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %v", err)
	}

	return stations, nil
}

func (i *Instance) Close() error {
	return i.db.Close()
}

func formatBuiltAt(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
