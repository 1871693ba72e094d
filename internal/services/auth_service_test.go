// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunegrid/licensing-backend/internal/models"
)

func TestRequireOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")

	require.NoError(t, env.auth.RequireOwner(owner.ID, "k1"))
	requireErrorCode(t, env.auth.RequireOwner(owner.ID, "wrong"), models.ErrCodeUnauthorized)
	requireErrorCode(t, env.auth.RequireOwner(owner.ID, ""), models.ErrCodeUnauthorized)
	requireErrorCode(t, env.auth.RequireOwner(999, "k1"), models.ErrCodeNotFound)
}

func TestBindCredentialKeepsCallerKey(t *testing.T) {
	env := newTestEnv(t)

	key, err := env.auth.BindCredential("caller-key", "alice")
	require.NoError(t, err)
	assert.Equal(t, "caller-key", key)
}

func TestBindCredentialMintsWhenCallerHasNone(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.auth.BindCredential("", "alice")
	require.NoError(t, err)
	second, err := env.auth.BindCredential("", "alice")
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}

func TestCredentialIsNeverReassigned(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createOwner(t, "alice", "k1")
	song := env.createSong(t, owner.ID, "Song A")

	// Mutations through the owner never touch the stored credential.
	_, err := env.catalog.UpdateSong(song.ID, &UpdateSongRequest{
		Title:  "Song A",
		Artist: "Test Artist",
		Year:   2021,
		Genre:  "rock",
		Price:  150,
	}, "k1")
	require.NoError(t, err)

	stored, _, err := env.store.Owners().Get(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "k1", stored.AuthKey)
}
