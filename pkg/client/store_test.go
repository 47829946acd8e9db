package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	store := NewFileStore(path)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded, "missing file reads as no credentials")

	creds := &Credentials{
		Token: "tok-123",
		User:  User{ID: "u1", Email: "a@x.com", Role: RoleUser, Status: StatusActive},
	}
	require.NoError(t, store.Save(creds))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, creds, loaded)

	require.NoError(t, store.Clear())
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing an already-empty store is fine.
	require.NoError(t, store.Clear())
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileStore(path)
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded, "a corrupt file reads as no credentials")
}

func TestMemoryStoreIsolatesCopies(t *testing.T) {
	store := NewMemoryStore()

	creds := &Credentials{Token: "tok", User: User{ID: "u1"}}
	require.NoError(t, store.Save(creds))

	creds.Token = "mutated"

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok", loaded.Token)
}
