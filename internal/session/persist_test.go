package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStateStoreAt(t.TempDir())
	require.NoError(t, store.SaveToken("eyJhbGciOiJIUzI1NiJ9.secret-token"))

	token, err := store.LoadToken()
	require.NoError(t, err)
	require.Equal(t, "eyJhbGciOiJIUzI1NiJ9.secret-token", token)
}

func TestTokenFileIsNotPlainText(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStateStoreAt(dir)
	require.NoError(t, store.SaveToken("super-secret-token"))

	raw, err := os.ReadFile(filepath.Join(dir, "auth.json"))
	require.NoError(t, err)
	require.False(t, strings.Contains(string(raw), "super-secret-token"))
}

func TestUserRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStateStoreAt(t.TempDir())
	want := testUser()
	require.NoError(t, store.SaveUser(want))

	got, err := store.LoadUser()
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, want.Email, got.Email)
	require.Equal(t, want.AccountNumber, got.AccountNumber)
	require.True(t, want.Balance.Equal(got.Balance))
}

func TestLoadWithNothingStored(t *testing.T) {
	t.Parallel()

	store := NewStateStoreAt(t.TempDir())
	token, err := store.LoadToken()
	require.NoError(t, err)
	require.Empty(t, token)

	user, err := store.LoadUser()
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestClearRemovesBothFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStateStoreAt(dir)
	require.NoError(t, store.SaveToken("tok"))
	require.NoError(t, store.SaveUser(testUser()))

	require.NoError(t, store.Clear())
	// clearing again is fine
	require.NoError(t, store.Clear())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
