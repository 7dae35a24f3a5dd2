package archive

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"
)

const sessionsBucket = "sessions"

// Entry is the archived metadata for one downloaded session. Entries are
// keyed by session name, so re-downloading the same flight overwrites its
// record rather than duplicating it.
type Entry struct {
	Name            string    `yaml:"name"`
	SerialNumber    uint      `yaml:"serial_number"`
	RecordedAt      time.Time `yaml:"recorded_at"`
	TakeoffLocation string    `yaml:"takeoff_location"`
	Points          int       `yaml:"points"`
	Path            string    `yaml:"path"`
}

// Store is a small bbolt-backed index of downloaded sessions.
type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", path, err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionsBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("archive: init %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Put(e Entry) error {
	if e.Name == "" {
		return fmt.Errorf("archive: entry name is empty")
	}
	b, err := yaml.Marshal(e)
	if err != nil {
		return fmt.Errorf("archive: encode %s: %w", e.Name, err)
	}
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(sessionsBucket)).Put([]byte(e.Name), b)
	}); err != nil {
		return fmt.Errorf("archive: put %s: %w", e.Name, err)
	}
	return nil
}

// List returns all entries in key order, which for the session naming scheme
// is chronological.
func (s *Store) List() ([]Entry, error) {
	var out []Entry
	if err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(sessionsBucket)).ForEach(func(k, v []byte) error {
			var e Entry
			if err := yaml.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("entry %s: %w", k, err)
			}
			out = append(out, e)
			return nil
		})
	}); err != nil {
		return nil, fmt.Errorf("archive: list: %w", err)
	}
	return out, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
