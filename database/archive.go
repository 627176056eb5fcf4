package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DataDog/zstd"

	"github.com/jbesclapez/RadioFluxRSS/utils"
)

// FeedRecord is one archived feed generation run.
type FeedRecord struct {
	Checksum     string
	BuiltAt      string
	StationCount int
	Document     string
}

// ArchiveFeed stores a generated feed document compressed, with its
// checksum, so past runs can be audited or restored.
func (i *Instance) ArchiveFeed(document string, builtAt time.Time, stationCount int) error {
	compressed, err := zstd.CompressLevel(nil, []byte(document), zstd.BestCompression)
	if err != nil {
		return fmt.Errorf("error compressing feed document: %v", err)
	}

	_, err = i.db.Exec(
		"INSERT INTO feeds(checksum, built_at, station_count, document) VALUES(?, ?, ?, ?)",
		utils.CalculateChecksum(document), formatBuiltAt(builtAt), stationCount, compressed,
	)
	if err != nil {
		return fmt.Errorf("error archiving feed: %v", err)
	}

	return nil
}

// LatestFeed returns the most recently archived feed, or nil when the
// archive is empty.
func (i *Instance) LatestFeed() (*FeedRecord, error) {
	row := i.db.QueryRow("SELECT checksum, built_at, station_count, document FROM feeds ORDER BY id DESC LIMIT 1")

	var record FeedRecord
	var compressed []byte
	err := row.Scan(&record.Checksum, &record.BuiltAt, &record.StationCount, &compressed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying feed archive: %v", err)
	}

	document, err := zstd.Decompress(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("error decompressing feed document: %v", err)
	}
	record.Document = string(document)

	return &record, nil
}
