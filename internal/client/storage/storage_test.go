package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store TokenStore) {
	t.Helper()
	_, ok := store.Load()
	assert.False(t, ok)

	issued := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(Credentials{Token: "abc.def.ghi", IssuedAt: issued}))

	creds, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "abc.def.ghi", creds.Token)
	assert.True(t, issued.Equal(creds.IssuedAt))

	require.NoError(t, store.Clear())
	creds, ok = store.Load()
	assert.False(t, ok)
	assert.Empty(t, creds.Token)
	assert.True(t, creds.IssuedAt.IsZero())

	require.NoError(t, store.Clear())
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	exerciseStore(t, NewFileStore(path))
}

func TestFileStore_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(Credentials{Token: "t", IssuedAt: time.Now()}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, ok := NewFileStore(path).Load()
	assert.False(t, ok)
}
