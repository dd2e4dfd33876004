package jsonfile_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"autoban/pkg/store/jsonfile"

	"github.com/stretchr/testify/require"
)

func TestSessionStore_missingFileYieldsNoSession(t *testing.T) {
	s := jsonfile.NewSessionStore(filepath.Join(t.TempDir(), "session.json"))

	cookies, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, cookies)
}

func TestSessionStore_malformedFileYieldsNoSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	s := jsonfile.NewSessionStore(path)
	cookies, err := s.Load(context.Background())
	require.NoError(t, err, "a broken session file should not abort the run")
	require.Nil(t, cookies)
}

func TestSessionStore_roundTrip(t *testing.T) {
	ctx := context.Background()
	s := jsonfile.NewSessionStore(filepath.Join(t.TempDir(), "session.json"))

	expires := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	saved := []*http.Cookie{
		{Name: "twoFactorAuth", Value: "2fa_xyz", Domain: "api.vrchat.cloud", Path: "/", Expires: expires},
		{Name: "auth", Value: "authcookie_abc", Domain: "api.vrchat.cloud", Path: "/", Expires: expires},
	}
	require.NoError(t, s.Save(ctx, saved))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Load returns cookies sorted by name.
	require.Equal(t, "auth", got[0].Name)
	require.Equal(t, "authcookie_abc", got[0].Value)
	require.Equal(t, "api.vrchat.cloud", got[0].Domain)
	require.Equal(t, "/", got[0].Path)
	require.True(t, got[0].Expires.Equal(expires))

	require.Equal(t, "twoFactorAuth", got[1].Name)
	require.Equal(t, "2fa_xyz", got[1].Value)
}

func TestSessionStore_sessionlessCookieWithoutExpiry(t *testing.T) {
	ctx := context.Background()
	s := jsonfile.NewSessionStore(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, s.Save(ctx, []*http.Cookie{{Name: "auth", Value: "v"}}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.True(t, got[0].Expires.IsZero())
}

func TestSessionStore_saveReplacesStoredSession(t *testing.T) {
	ctx := context.Background()
	s := jsonfile.NewSessionStore(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, s.Save(ctx, []*http.Cookie{{Name: "auth", Value: "old"}, {Name: "twoFactorAuth", Value: "old2"}}))
	require.NoError(t, s.Save(ctx, []*http.Cookie{{Name: "auth", Value: "new"}}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "new", got[0].Value)
}

func TestSessionStore_clear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	s := jsonfile.NewSessionStore(path)

	require.NoError(t, s.Clear(ctx), "clearing a missing session is fine")

	require.NoError(t, s.Save(ctx, []*http.Cookie{{Name: "auth", Value: "v"}}))
	require.NoError(t, s.Clear(ctx))
	require.NoFileExists(t, path)
}
