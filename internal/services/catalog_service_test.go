// internal/services/catalog_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunegrid/licensing-backend/internal/models"
)

func TestCreateOwnerStartsWithEmptyLists(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")

	assert.Equal(t, "alice", owner.Name)
	assert.Equal(t, "k1", owner.AuthKey)
	assert.Empty(t, owner.SongIDs)
	assert.Empty(t, owner.LicenseIDs)
}

func TestCreateOwnerMintsCredentialForAnonymousCaller(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "")

	assert.NotEmpty(t, owner.AuthKey)
}

func TestCreateOwnerRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.catalog.CreateOwner(&CreateOwnerRequest{Name: "alice", Email: "not-an-email"}, "k1")
	requireErrorCode(t, err, models.ErrCodeInvalidPayload)
}

func TestCreateSongAttachesToOwnerInOrder(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")
	first := env.createSong(t, owner.ID, "Song A")
	second := env.createSong(t, owner.ID, "Song B")

	stored, _, err := env.store.Owners().Get(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{first.ID, second.ID}, stored.SongIDs)
}

func TestCreateSongRequiresExistingOwner(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.catalog.CreateSong(&CreateSongRequest{
		Title:   "Orphan",
		Artist:  "Nobody",
		OwnerID: 999,
		Year:    2020,
		Genre:   "rock",
	})
	requireErrorCode(t, err, models.ErrCodeNotFound)
}

func TestIDsAreUniqueAcrossEntityKinds(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")
	song := env.createSong(t, owner.ID, "Song A")
	licensee := env.createLicensee(t, "venue")
	license := env.createLicense(t, song.ID, licensee.ID)

	ids := []uint64{owner.ID, song.ID, licensee.ID, license.ID}
	seen := make(map[uint64]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
}

func TestUpdateSongReplacesMutableFields(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")
	song := env.createSong(t, owner.ID, "Song A")

	updated, err := env.catalog.UpdateSong(song.ID, &UpdateSongRequest{
		Title:  "Song A (Remaster)",
		Artist: "Test Artist",
		Year:   2024,
		Genre:  "indie",
		Price:  250,
	}, "k1")
	require.NoError(t, err)

	assert.Equal(t, "Song A (Remaster)", updated.Title)
	assert.Equal(t, uint32(250), updated.Price)
	assert.Equal(t, owner.ID, updated.OwnerID)
}

func TestUnauthorizedUpdateLeavesSongUnchanged(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")
	song := env.createSong(t, owner.ID, "Song A")

	_, err := env.catalog.UpdateSong(song.ID, &UpdateSongRequest{
		Title:  "Hijacked",
		Artist: "Mallory",
		Year:   1999,
		Genre:  "noise",
		Price:  1,
	}, "k2")
	requireErrorCode(t, err, models.ErrCodeUnauthorized)

	stored, _, err := env.store.Songs().Get(song.ID)
	require.NoError(t, err)
	assert.Equal(t, *song, stored)
}

func TestUnauthorizedDeleteLeavesEverythingUnchanged(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")
	song := env.createSong(t, owner.ID, "Song A")

	_, err := env.catalog.DeleteSong(song.ID, "k2")
	requireErrorCode(t, err, models.ErrCodeUnauthorized)

	storedSong, found, err := env.store.Songs().Get(song.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, *song, storedSong)

	storedOwner, _, err := env.store.Owners().Get(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{song.ID}, storedOwner.SongIDs)
}

func TestDeleteSongCascades(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")
	song := env.createSong(t, owner.ID, "Song A")
	keeper := env.createSong(t, owner.ID, "Song B")

	venueA := env.createLicensee(t, "venue-a")
	venueB := env.createLicensee(t, "venue-b")

	licenseA := env.createLicense(t, song.ID, venueA.ID)
	licenseB := env.createLicense(t, song.ID, venueB.ID)
	_, err := env.licenses.ApproveLicense(licenseA.ID, 100, "k1")
	require.NoError(t, err)
	_, err = env.licenses.ApproveLicense(licenseB.ID, 200, "k1")
	require.NoError(t, err)

	removed, err := env.catalog.DeleteSong(song.ID, "k1")
	require.NoError(t, err)
	assert.Equal(t, song.ID, removed.ID)

	_, err = env.catalog.GetSong(song.ID)
	requireErrorCode(t, err, models.ErrCodeNotFound)

	storedOwner, _, err := env.store.Owners().Get(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{keeper.ID}, storedOwner.SongIDs)

	storedA, _, err := env.store.Licensees().Get(venueA.ID)
	require.NoError(t, err)
	assert.Empty(t, storedA.Licenses)

	storedB, _, err := env.store.Licensees().Get(venueB.ID)
	require.NoError(t, err)
	assert.Empty(t, storedB.Licenses)
}

func TestGetAllSongs(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.catalog.GetAllSongs()
	requireErrorCode(t, err, models.ErrCodeNotFound)

	owner := env.createOwner(t, "alice", "k1")
	env.createSong(t, owner.ID, "Song A")
	env.createSong(t, owner.ID, "Song B")

	songs, err := env.catalog.GetAllSongs()
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Less(t, songs[0].ID, songs[1].ID)
}

func TestGetSongOwnerHidesCredential(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")
	song := env.createSong(t, owner.ID, "Song A")

	profile, err := env.catalog.GetSongOwner(song.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OwnerProfile{ID: owner.ID, Name: "alice", Email: "alice@example.com"}, *profile)

	_, err = env.catalog.GetSongOwner(999)
	requireErrorCode(t, err, models.ErrCodeNotFound)
}

func TestCreateLicensee(t *testing.T) {
	env := newTestEnv(t)
	licensee := env.createLicensee(t, "venue")

	assert.Empty(t, licensee.Licenses)

	got, err := env.catalog.GetLicensee(licensee.ID)
	require.NoError(t, err)
	assert.Equal(t, *licensee, *got)

	_, err = env.catalog.GetLicensee(999)
	requireErrorCode(t, err, models.ErrCodeNotFound)
}
