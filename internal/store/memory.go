// internal/store/memory.go
package store

import (
	"sort"
	"sync"

	"github.com/tunegrid/licensing-backend/internal/models"
)

// MemoryStore is the in-process backend used by tests. Records pass through
// the same codec as the persistent backends, so size bounding and copy
// semantics match.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]map[uint64][]byte
	next   uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: map[string]map[uint64][]byte{
			tableSongs:     {},
			tableOwners:    {},
			tableLicensees: {},
			tableLicenses:  {},
		},
	}
}

func (s *MemoryStore) Songs() Table[models.Song] {
	return &memTable[models.Song]{store: s, name: tableSongs}
}

func (s *MemoryStore) Owners() Table[models.Owner] {
	return &memTable[models.Owner]{store: s, name: tableOwners}
}

func (s *MemoryStore) Licensees() Table[models.Licensee] {
	return &memTable[models.Licensee]{store: s, name: tableLicensees}
}

func (s *MemoryStore) Licenses() Table[models.License] {
	return &memTable[models.License]{store: s, name: tableLicenses}
}

func (s *MemoryStore) NextID() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	return id, nil
}

func (s *MemoryStore) Close() error { return nil }

type memTable[T any] struct {
	store *MemoryStore
	name  string
}

func (t *memTable[T]) Get(id uint64) (T, bool, error) {
	var record T
	t.store.mu.RLock()
	data, ok := t.store.tables[t.name][id]
	t.store.mu.RUnlock()
	if !ok {
		return record, false, nil
	}
	if err := decode(data, &record); err != nil {
		return record, false, err
	}
	return record, true, nil
}

func (t *memTable[T]) Insert(id uint64, record T) error {
	data, err := encode(record)
	if err != nil {
		return err
	}
	t.store.mu.Lock()
	t.store.tables[t.name][id] = data
	t.store.mu.Unlock()
	return nil
}

func (t *memTable[T]) Remove(id uint64) (T, bool, error) {
	var record T
	t.store.mu.Lock()
	data, ok := t.store.tables[t.name][id]
	if ok {
		delete(t.store.tables[t.name], id)
	}
	t.store.mu.Unlock()
	if !ok {
		return record, false, nil
	}
	if err := decode(data, &record); err != nil {
		return record, false, err
	}
	return record, true, nil
}

func (t *memTable[T]) Scan() ([]Entry[T], error) {
	t.store.mu.RLock()
	ids := make([]uint64, 0, len(t.store.tables[t.name]))
	for id := range t.store.tables[t.name] {
		ids = append(ids, id)
	}
	encoded := make(map[uint64][]byte, len(ids))
	for _, id := range ids {
		encoded[id] = t.store.tables[t.name][id]
	}
	t.store.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var entries []Entry[T]
	for _, id := range ids {
		var record T
		if err := decode(encoded[id], &record); err != nil {
			return nil, err
		}
		entries = append(entries, Entry[T]{ID: id, Record: record})
	}
	return entries, nil
}
