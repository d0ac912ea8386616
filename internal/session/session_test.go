package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielolaszy/boardctl/pkg/models"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json")),
	}
}

func TestSessionLoginLogout(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s := New(store)
			assert.Equal(t, "", s.Token())
			assert.Nil(t, s.CurrentUser())

			user := &models.TeamMember{ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
			require.NoError(t, s.Login("secret-token", user))

			assert.Equal(t, "secret-token", s.Token())
			got := s.CurrentUser()
			require.NotNil(t, got)
			assert.Equal(t, *user, *got)

			require.NoError(t, s.Logout())
			assert.Equal(t, "", s.Token())
			assert.Nil(t, s.CurrentUser())
		})
	}
}

func TestCorruptCurrentUserIsPurged(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(KeyToken, "tok"))
			require.NoError(t, store.Set(KeyCurrentUser, "{not json"))

			s := New(store)
			assert.Nil(t, s.CurrentUser())

			_, ok, err := store.Get(KeyCurrentUser)
			require.NoError(t, err)
			assert.False(t, ok, "corrupt entry should be removed")
			assert.Equal(t, "tok", s.Token(), "token is left alone")
		})
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	require.NoError(t, New(NewFileStore(path)).Login("abc123", &models.TeamMember{ID: 1}))

	reopened := New(NewFileStore(path))
	assert.Equal(t, "abc123", reopened.Token())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreUnreadableFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	store := NewFileStore(path)
	_, ok, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(KeyToken, "fresh"))
	v, ok, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fresh", v)
}

func TestNewWithNilStore(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Login("t", nil))
	assert.Equal(t, "t", s.Token())
	assert.Nil(t, s.CurrentUser())
}
