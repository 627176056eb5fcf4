package store

import (
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/jbesclapez/RadioFluxRSS/feed"
	"github.com/jbesclapez/RadioFluxRSS/playlist"
)

// Entry is a station held in the in-memory database, keyed by its
// playlist position so read-back preserves first-occurrence order.
type Entry struct {
	Position int
	GUID     string
	Station  *playlist.StationInfo
}

type Store struct {
	db *memdb.MemDB
}

func New() (*Store, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			"stations": {
				Name: "stations",
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "Position"},
					},
					"guid": {
						Name:    "guid",
						Unique:  false,
						Indexer: &memdb.StringFieldIndex{Field: "GUID"},
					},
				},
			},
		},
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("error creating station store: %v", err)
	}

	return &Store{db: db}, nil
}

// Replace swaps the stored catalog for the given stations in one
// transaction, keeping input order.
func (s *Store) Replace(stations []*playlist.StationInfo) error {
	txn := s.db.Txn(true)

	if _, err := txn.DeleteAll("stations", "id"); err != nil {
		txn.Abort()
		return fmt.Errorf("error clearing station store: %v", err)
	}

	for i, station := range stations {
		entry := &Entry{
			Position: i,
			GUID:     feed.EntryGUID(station.Title, station.URL),
			Station:  station,
		}
		if err := txn.Insert("stations", entry); err != nil {
			txn.Abort()
			return fmt.Errorf("error inserting station %q: %v", station.Title, err)
		}
	}

	txn.Commit()
	return nil
}

// Stations returns the stored catalog in playlist order.
func (s *Store) Stations() ([]*playlist.StationInfo, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get("stations", "id")
	if err != nil {
		return nil, fmt.Errorf("error reading station store: %v", err)
	}

	var stations []*playlist.StationInfo
	for raw := it.Next(); raw != nil; raw = it.Next() {
		stations = append(stations, raw.(*Entry).Station)
	}

	return stations, nil
}

// GetByGUID retrieves one station by its feed entry identifier.
func (s *Store) GetByGUID(guid string) (*playlist.StationInfo, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First("stations", "guid", guid)
	if err != nil {
		return nil, fmt.Errorf("error querying station store: %v", err)
	}
	if raw == nil {
		return nil, nil
	}

	return raw.(*Entry).Station, nil
}

func (s *Store) Count() (int, error) {
	stations, err := s.Stations()
	if err != nil {
		return 0, err
	}
	return len(stations), nil
}
