// internal/store/badger.go
package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"github.com/tunegrid/licensing-backend/internal/models"
)

// BadgerConfig configures the embedded BadgerDB backend.
type BadgerConfig struct {
	// Path is the directory for the database files. Required unless
	// InMemory is set.
	Path string

	// InMemory disables disk persistence. Used by tests.
	InMemory bool

	// SyncWrites forces every write to disk before returning.
	SyncWrites bool

	// Logger receives BadgerDB's internal log output. Badger logging is
	// disabled when nil.
	Logger *logrus.Logger
}

// BadgerStore keeps each entity table under its own key prefix. Ids are
// encoded big-endian so badger's key iteration order is ascending id order.
type BadgerStore struct {
	db *badger.DB
}

var sequenceKey = []byte("seq/next")

// OpenBadger opens (and if needed creates) the catalog database.
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("store: path is required for a persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(cfg.Logger)
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Songs() Table[models.Song] {
	return &badgerTable[models.Song]{db: s.db, prefix: []byte(tableSongs + "/")}
}

func (s *BadgerStore) Owners() Table[models.Owner] {
	return &badgerTable[models.Owner]{db: s.db, prefix: []byte(tableOwners + "/")}
}

func (s *BadgerStore) Licensees() Table[models.Licensee] {
	return &badgerTable[models.Licensee]{db: s.db, prefix: []byte(tableLicensees + "/")}
}

func (s *BadgerStore) Licenses() Table[models.License] {
	return &badgerTable[models.License]{db: s.db, prefix: []byte(tableLicenses + "/")}
}

// NextID returns the current counter value and durably advances it by one.
func (s *BadgerStore) NextID() (uint64, error) {
	var id uint64
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(sequenceKey)
		switch {
		case err == nil:
			if err := item.Value(func(val []byte) error {
				if len(val) != 8 {
					return fmt.Errorf("sequence value has %d bytes, want 8", len(val))
				}
				id = binary.BigEndian.Uint64(val)
				return nil
			}); err != nil {
				return err
			}
		case errors.Is(err, badger.ErrKeyNotFound):
			id = 0
		default:
			return err
		}

		next := make([]byte, 8)
		binary.BigEndian.PutUint64(next, id+1)
		return txn.Set(sequenceKey, next)
	})
	if err != nil {
		return 0, fmt.Errorf("advance id sequence: %w", err)
	}
	return id, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

type badgerTable[T any] struct {
	db     *badger.DB
	prefix []byte
}

func (t *badgerTable[T]) key(id uint64) []byte {
	key := make([]byte, len(t.prefix)+8)
	copy(key, t.prefix)
	binary.BigEndian.PutUint64(key[len(t.prefix):], id)
	return key
}

func (t *badgerTable[T]) Get(id uint64) (T, bool, error) {
	var record T
	var found bool
	err := t.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(t.key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return decode(val, &record)
		})
	})
	if err != nil {
		return record, false, fmt.Errorf("get %s id %d: %w", t.prefix, id, err)
	}
	return record, found, nil
}

func (t *badgerTable[T]) Insert(id uint64, record T) error {
	data, err := encode(record)
	if err != nil {
		return err
	}
	err = t.db.Update(func(txn *badger.Txn) error {
		return txn.Set(t.key(id), data)
	})
	if err != nil {
		return fmt.Errorf("insert %s id %d: %w", t.prefix, id, err)
	}
	return nil
}

func (t *badgerTable[T]) Remove(id uint64) (T, bool, error) {
	var record T
	var found bool
	err := t.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(t.key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			return decode(val, &record)
		}); err != nil {
			return err
		}
		found = true
		return txn.Delete(t.key(id))
	})
	if err != nil {
		return record, false, fmt.Errorf("remove %s id %d: %w", t.prefix, id, err)
	}
	return record, found, nil
}

func (t *badgerTable[T]) Scan() ([]Entry[T], error) {
	var entries []Entry[T]
	err := t.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = t.prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(t.prefix); it.ValidForPrefix(t.prefix); it.Next() {
			item := it.Item()
			id := binary.BigEndian.Uint64(item.Key()[len(t.prefix):])
			var record T
			if err := item.Value(func(val []byte) error {
				return decode(val, &record)
			}); err != nil {
				return err
			}
			entries = append(entries, Entry[T]{ID: id, Record: record})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", t.prefix, err)
	}
	return entries, nil
}
