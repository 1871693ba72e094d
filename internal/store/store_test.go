// internal/store/store_test.go
package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunegrid/licensing-backend/internal/models"
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()

	badgerStore, err := OpenBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { badgerStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"badger": badgerStore,
	}
}

func TestNextIDStartsAtZeroAndIncreases(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			for want := uint64(0); want < 5; want++ {
				id, err := st.NextID()
				require.NoError(t, err)
				assert.Equal(t, want, id)
			}
		})
	}
}

func TestInsertGetRemove(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			song := models.Song{ID: 7, Title: "Holding Pattern", Artist: "The Layovers", OwnerID: 1, Year: 2019, Genre: "indie", Price: 120}
			require.NoError(t, st.Songs().Insert(7, song))

			got, found, err := st.Songs().Get(7)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, song, got)

			_, found, err = st.Songs().Get(8)
			require.NoError(t, err)
			assert.False(t, found)

			removed, found, err := st.Songs().Remove(7)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, song, removed)

			_, found, err = st.Songs().Get(7)
			require.NoError(t, err)
			assert.False(t, found)

			_, found, err = st.Songs().Remove(7)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestInsertOverwritesSilently(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.Songs().Insert(1, models.Song{ID: 1, Title: "First"}))
			require.NoError(t, st.Songs().Insert(1, models.Song{ID: 1, Title: "Second"}))

			got, found, err := st.Songs().Get(1)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, "Second", got.Title)
		})
	}
}

func TestScanReturnsAscendingIDOrder(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []uint64{42, 3, 17, 9} {
				require.NoError(t, st.Owners().Insert(id, models.Owner{ID: id, Name: "o"}))
			}

			entries, err := st.Owners().Scan()
			require.NoError(t, err)
			require.Len(t, entries, 4)

			ids := make([]uint64, 0, len(entries))
			for _, entry := range entries {
				assert.Equal(t, entry.ID, entry.Record.ID)
				ids = append(ids, entry.ID)
			}
			assert.Equal(t, []uint64{3, 9, 17, 42}, ids)
		})
	}
}

func TestTablesAreIndependent(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.Licenses().Insert(1, models.License{ID: 1, SongID: 2}))
			require.NoError(t, st.Licensees().Insert(1, models.Licensee{ID: 1, Name: "venue"}))

			licenses, err := st.Licenses().Scan()
			require.NoError(t, err)
			assert.Len(t, licenses, 1)

			licensees, err := st.Licensees().Scan()
			require.NoError(t, err)
			assert.Len(t, licensees, 1)

			_, found, err := st.Songs().Get(1)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestInsertRejectsOversizedRecord(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			song := models.Song{ID: 1, Title: strings.Repeat("x", MaxRecordSize+1)}
			err := st.Songs().Insert(1, song)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "exceeds")

			_, found, getErr := st.Songs().Get(1)
			require.NoError(t, getErr)
			assert.False(t, found)
		})
	}
}

func TestBadgerSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	st, err := OpenBadger(BadgerConfig{Path: dir, SyncWrites: true})
	require.NoError(t, err)

	id, err := st.NextID()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)
	require.NoError(t, st.Songs().Insert(id, models.Song{ID: id, Title: "Persisted"}))
	require.NoError(t, st.Close())

	st, err = OpenBadger(BadgerConfig{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	defer st.Close()

	got, found, err := st.Songs().Get(0)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Persisted", got.Title)

	// The counter is durable too: no id reuse after restart.
	id, err = st.NextID()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)
}
