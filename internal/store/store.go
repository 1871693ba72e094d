// internal/store/store.go

// Package store persists the four entity tables and the shared id sequence.
// Every backend keeps one ordered map per entity kind plus a single durable
// counter, so the catalog survives process restarts regardless of which
// backend is configured.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/tunegrid/licensing-backend/internal/models"
)

// MaxRecordSize bounds the encoded size of a single entity record. Callers
// are expected to keep string fields within bound; an oversized record is a
// programming error, not an API condition.
const MaxRecordSize = 1024

// Entry pairs an id with its decoded record, as produced by Scan.
type Entry[T any] struct {
	ID     uint64
	Record T
}

// Table is one ordered map from id to entity record.
//
// Insert has upsert semantics and silently overwrites an existing id.
// Scan returns all entries in ascending id order.
type Table[T any] interface {
	Get(id uint64) (T, bool, error)
	Insert(id uint64, record T) error
	Remove(id uint64) (T, bool, error)
	Scan() ([]Entry[T], error)
}

// Store bundles the four entity tables with the id sequence. Ids are unique
// across all entity kinds: NextID returns the pre-increment value of a
// counter that starts at 0 and never reuses retired ids.
type Store interface {
	Songs() Table[models.Song]
	Owners() Table[models.Owner]
	Licensees() Table[models.Licensee]
	Licenses() Table[models.License]
	NextID() (uint64, error)
	Close() error
}

// Table names shared by all backends.
const (
	tableSongs     = "songs"
	tableOwners    = "owners"
	tableLicensees = "licensees"
	tableLicenses  = "licenses"
)

func encode(record interface{}) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	if len(data) > MaxRecordSize {
		return nil, fmt.Errorf("encoded record is %d bytes, exceeds the %d byte bound", len(data), MaxRecordSize)
	}
	return data, nil
}

func decode(data []byte, record interface{}) error {
	if err := json.Unmarshal(data, record); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}
