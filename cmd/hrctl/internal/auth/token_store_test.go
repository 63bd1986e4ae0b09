package auth

import (
	"os"
	"testing"
	"time"

	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTempStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStoreAt(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestFileStore_MissingFileIsNotLoggedIn(t *testing.T) {
	store := newTempStore(t)
	_, err := store.LoadToken()
	assert.ErrorIs(t, err, sdk.ErrNotLoggedIn)
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	store := newTempStore(t)
	tok := sdk.NewToken("jwt", time.Now())
	tok.EmployeeID = "1001"
	require.NoError(t, store.SaveToken(tok))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := store.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "jwt", got.Value)
	assert.Equal(t, "1001", got.EmployeeID)
	assert.WithinDuration(t, tok.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestFileStore_ExpiredTokenIsRemoved(t *testing.T) {
	store := newTempStore(t)
	require.NoError(t, store.SaveToken(sdk.NewToken("old", time.Now().Add(-sdk.SessionTTL-time.Hour))))

	_, err := store.LoadToken()
	assert.ErrorIs(t, err, sdk.ErrNotLoggedIn)

	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_CorruptFile(t *testing.T) {
	store := newTempStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0600))

	_, err := store.LoadToken()
	require.Error(t, err)
	assert.NotErrorIs(t, err, sdk.ErrNotLoggedIn)
}

func TestFileStore_DeleteIsIdempotent(t *testing.T) {
	store := newTempStore(t)
	require.NoError(t, store.SaveToken(sdk.NewToken("jwt", time.Now())))
	require.NoError(t, store.DeleteToken())
	require.NoError(t, store.DeleteToken())

	_, err := store.LoadToken()
	assert.ErrorIs(t, err, sdk.ErrNotLoggedIn)
}

func TestFileStore_RejectsEmptyToken(t *testing.T) {
	store := newTempStore(t)
	assert.Error(t, store.SaveToken(&sdk.Token{}))
	assert.Error(t, store.SaveToken(nil))
}
