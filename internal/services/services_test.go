// internal/services/services_test.go
package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tunegrid/licensing-backend/internal/models"
	"github.com/tunegrid/licensing-backend/internal/store"
)

type testEnv struct {
	store     *store.MemoryStore
	integrity *IntegrityService
	auth      *AuthService
	catalog   *CatalogService
	licenses  *LicenseService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewMemoryStore()
	integrity := NewIntegrityService(st)
	auth := NewAuthService(st)
	var mu sync.Mutex

	return &testEnv{
		store:     st,
		integrity: integrity,
		auth:      auth,
		catalog:   NewCatalogService(st, integrity, auth, &mu),
		licenses:  NewLicenseService(st, integrity, auth, &mu),
	}
}

func (env *testEnv) createOwner(t *testing.T, name, key string) *models.Owner {
	t.Helper()
	owner, err := env.catalog.CreateOwner(&CreateOwnerRequest{Name: name, Email: name + "@example.com"}, key)
	require.NoError(t, err)
	return owner
}

func (env *testEnv) createSong(t *testing.T, ownerID uint64, title string) *models.Song {
	t.Helper()
	song, err := env.catalog.CreateSong(&CreateSongRequest{
		Title:   title,
		Artist:  "Test Artist",
		OwnerID: ownerID,
		Year:    2020,
		Genre:   "rock",
		Price:   100,
	})
	require.NoError(t, err)
	return song
}

func (env *testEnv) createLicensee(t *testing.T, name string) *models.Licensee {
	t.Helper()
	licensee, err := env.catalog.CreateLicensee(&CreateLicenseeRequest{Name: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return licensee
}

func (env *testEnv) createLicense(t *testing.T, songID, licenseeID uint64) *models.License {
	t.Helper()
	license, err := env.licenses.CreateLicenseRequest(&CreateLicenseRequest{
		SongID:     songID,
		LicenseeID: licenseeID,
		StartDate:  "2024-01-01",
		EndDate:    "2024-12-31",
	})
	require.NoError(t, err)
	return license
}

func requireErrorCode(t *testing.T, err error, code models.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	var apiErr *models.Error
	require.True(t, errors.As(err, &apiErr), "expected *models.Error, got %T: %v", err, err)
	require.Equal(t, code, apiErr.Code, "unexpected error code, message: %s", apiErr.Message)
}
