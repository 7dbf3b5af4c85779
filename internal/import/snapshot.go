// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package playimport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/soundtrail/internal/models"
)

const (
	// snapshotPrefix namespaces every snapshot key in BadgerDB.
	snapshotPrefix = "snapshot:"

	// snapshotChunkSize is the number of records stored per Badger value.
	snapshotChunkSize = 2000
)

// Snapshotter caches parsed datasets keyed by SnapshotKey.
type Snapshotter interface {
	// Load returns nil, nil when nothing is stored under key.
	Load(ctx context.Context, key string) (*Dataset, error)
	Save(ctx context.Context, key string, ds *Dataset) error
	Clear(ctx context.Context) error
}

// SnapshotKey identifies a parse of given content in a given zone.
func SnapshotKey(contentHash, timezone string) string {
	return contentHash + "@" + timezone
}

type snapshotMeta struct {
	Key          string                   `json:"key"`
	Chunks       int                      `json:"chunks"`
	Records      int                      `json:"records"`
	Availability models.FieldAvailability `json:"availability"`
}

// BadgerSnapshot implements Snapshotter using BadgerDB. Only the most
// recent dataset is kept.
type BadgerSnapshot struct {
	db     *badger.DB
	ownsDB bool
}

// NewBadgerSnapshot creates a snapshot store on an open BadgerDB instance.
func NewBadgerSnapshot(db *badger.DB) *BadgerSnapshot {
	return &BadgerSnapshot{db: db}
}

// OpenBadgerSnapshot opens (or creates) a BadgerDB directory at path.
func OpenBadgerSnapshot(path string) (*BadgerSnapshot, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for snapshot: %w", err)
	}
	return &BadgerSnapshot{db: db, ownsDB: true}, nil
}

// Close closes the database if it was opened by OpenBadgerSnapshot.
func (s *BadgerSnapshot) Close() error {
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}

func metaKey() []byte { return []byte(snapshotPrefix + "meta") }

func chunkKey(i int) []byte { return []byte(fmt.Sprintf("%schunk:%06d", snapshotPrefix, i)) }

// Save replaces any stored snapshot with ds.
func (s *BadgerSnapshot) Save(ctx context.Context, key string, ds *Dataset) error {
	if ds == nil {
		return errors.New("nil dataset")
	}
	if err := s.Clear(ctx); err != nil {
		return err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	chunks := 0
	for start := 0; start < len(ds.Records); start += snapshotChunkSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+snapshotChunkSize, len(ds.Records))
		data, err := json.Marshal(ds.Records[start:end])
		if err != nil {
			return fmt.Errorf("marshal snapshot chunk: %w", err)
		}
		if err := wb.Set(chunkKey(chunks), data); err != nil {
			return fmt.Errorf("write snapshot chunk: %w", err)
		}
		chunks++
	}

	meta, err := json.Marshal(snapshotMeta{
		Key:          key,
		Chunks:       chunks,
		Records:      len(ds.Records),
		Availability: ds.Availability,
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot meta: %w", err)
	}
	// Meta goes last so a partial write never looks complete.
	if err := wb.Set(metaKey(), meta); err != nil {
		return fmt.Errorf("write snapshot meta: %w", err)
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}

// Load retrieves the snapshot stored under key.
// Returns nil, nil if no snapshot exists or it belongs to another key.
func (s *BadgerSnapshot) Load(ctx context.Context, key string) (*Dataset, error) {
	var ds *Dataset

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey())
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var meta snapshotMeta
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		}); err != nil {
			return err
		}
		if meta.Key != key {
			return nil
		}

		records := make([]models.PlayRecord, 0, meta.Records)
		for i := 0; i < meta.Chunks; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunk, err := txn.Get(chunkKey(i))
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			if err := chunk.Value(func(val []byte) error {
				var part []models.PlayRecord
				if err := json.Unmarshal(val, &part); err != nil {
					return err
				}
				records = append(records, part...)
				return nil
			}); err != nil {
				return err
			}
		}
		if meta.Availability == nil {
			meta.Availability = models.FieldAvailability{}
		}
		ds = &Dataset{Records: records, Availability: meta.Availability}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return ds, nil
}

// Clear removes any stored snapshot.
func (s *BadgerSnapshot) Clear(ctx context.Context) error {
	if err := s.db.DropPrefix([]byte(snapshotPrefix)); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

// InMemorySnapshot implements Snapshotter in memory, for tests and for
// runs without a snapshot directory.
type InMemorySnapshot struct {
	mu  sync.Mutex
	key string
	ds  *Dataset
}

// NewInMemorySnapshot creates an empty in-memory snapshot store.
func NewInMemorySnapshot() *InMemorySnapshot {
	return &InMemorySnapshot{}
}

// Save stores ds under key, replacing any previous snapshot.
func (s *InMemorySnapshot) Save(_ context.Context, key string, ds *Dataset) error {
	if ds == nil {
		return errors.New("nil dataset")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
	s.ds = ds
	return nil
}

// Load returns the stored dataset if it was saved under key.
func (s *InMemorySnapshot) Load(_ context.Context, key string) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ds == nil || s.key != key {
		return nil, nil
	}
	return s.ds, nil
}

// Clear removes the stored snapshot.
func (s *InMemorySnapshot) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = ""
	s.ds = nil
	return nil
}
