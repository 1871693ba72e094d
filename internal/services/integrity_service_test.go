// internal/services/integrity_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunegrid/licensing-backend/internal/models"
)

func TestAttachSongToOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")

	require.NoError(t, env.integrity.AttachSongToOwner(owner.ID, 100))
	require.NoError(t, env.integrity.AttachSongToOwner(owner.ID, 101))

	stored, found, err := env.store.Owners().Get(owner.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []uint64{100, 101}, stored.SongIDs)
}

func TestAttachIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")

	require.NoError(t, env.integrity.AttachSongToOwner(owner.ID, 100))
	require.NoError(t, env.integrity.AttachSongToOwner(owner.ID, 100))

	stored, _, err := env.store.Owners().Get(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{100}, stored.SongIDs)

	require.NoError(t, env.integrity.AttachLicenseToOwner(owner.ID, 200))
	require.NoError(t, env.integrity.AttachLicenseToOwner(owner.ID, 200))

	stored, _, err = env.store.Owners().Get(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{200}, stored.LicenseIDs)
}

func TestAttachToMissingTargetFails(t *testing.T) {
	env := newTestEnv(t)

	requireErrorCode(t, env.integrity.AttachSongToOwner(99, 1), models.ErrCodeNotFound)
	requireErrorCode(t, env.integrity.AttachLicenseToOwner(99, 1), models.ErrCodeNotFound)
	requireErrorCode(t, env.integrity.AttachLicenseToLicensee(99, 1), models.ErrCodeNotFound)
}

func TestDetachLicensePairs(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")
	licensee := env.createLicensee(t, "venue")

	require.NoError(t, env.integrity.AttachLicenseToOwner(owner.ID, 5))
	require.NoError(t, env.integrity.AttachLicenseToLicensee(licensee.ID, 5))

	require.NoError(t, env.integrity.DetachLicenseFromOwner(owner.ID, 5))
	require.NoError(t, env.integrity.DetachLicenseFromLicensee(licensee.ID, 5))

	storedOwner, _, err := env.store.Owners().Get(owner.ID)
	require.NoError(t, err)
	assert.Empty(t, storedOwner.LicenseIDs)

	storedLicensee, _, err := env.store.Licensees().Get(licensee.ID)
	require.NoError(t, err)
	assert.Empty(t, storedLicensee.Licenses)
}

func TestDetachAbsentEntryIsDesync(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")
	licensee := env.createLicensee(t, "venue")

	requireErrorCode(t, env.integrity.DetachLicenseFromOwner(owner.ID, 5), models.ErrCodeNotFound)
	requireErrorCode(t, env.integrity.DetachLicenseFromLicensee(licensee.ID, 5), models.ErrCodeNotFound)
}

func TestDetachPreservesOrderOfRemaining(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")

	for _, id := range []uint64{10, 11, 12} {
		require.NoError(t, env.integrity.AttachLicenseToOwner(owner.ID, id))
	}
	require.NoError(t, env.integrity.DetachLicenseFromOwner(owner.ID, 11))

	stored, _, err := env.store.Owners().Get(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{10, 12}, stored.LicenseIDs)
}

func TestDetachSongFromOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")
	song := env.createSong(t, owner.ID, "Song A")

	require.NoError(t, env.integrity.DetachSongFromOwner(song.ID))

	stored, _, err := env.store.Owners().Get(owner.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.SongIDs)

	requireErrorCode(t, env.integrity.DetachSongFromOwner(999), models.ErrCodeNotFound)
}

func TestCascadeDeleteSongSkipsUnapprovedLicenses(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")
	song := env.createSong(t, owner.ID, "Song A")
	licensee := env.createLicensee(t, "venue")

	approved := env.createLicense(t, song.ID, licensee.ID)
	_, err := env.licenses.ApproveLicense(approved.ID, 100, "k1")
	require.NoError(t, err)

	// A pending request is listed nowhere and must not break the cascade.
	env.createLicense(t, song.ID, licensee.ID)

	require.NoError(t, env.integrity.CascadeDeleteSong(song.ID))

	storedLicensee, _, err := env.store.Licensees().Get(licensee.ID)
	require.NoError(t, err)
	assert.Empty(t, storedLicensee.Licenses)
}
