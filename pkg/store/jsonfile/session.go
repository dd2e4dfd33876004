package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"sort"
	"time"

	"autoban/pkg/logger"
	"autoban/pkg/store"

	"go.uber.org/zap"
)

// storedCookie is the on-disk shape of one session cookie. The file maps
// cookie name to this record, e.g.:
//
//	{"auth": {"value": "...", "expires": 1767225600, "domain": "api.vrchat.cloud", "path": "/"}}
type storedCookie struct {
	Value   string `json:"value"`
	Expires int64  `json:"expires"`
	Domain  string `json:"domain"`
	Path    string `json:"path"`
}

// SessionStore is a store.SessionStore backed by a JSON file holding the
// authentication cookies by name.
type SessionStore struct {
	path string
}

// NewSessionStore constructs a SessionStore backed by the file at path.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Load returns the persisted session cookies. A missing file or a file that
// does not parse both yield (nil, nil): a broken session file is not worth
// aborting over, the authenticator simply logs in fresh and overwrites it.
func (s *SessionStore) Load(ctx context.Context) ([]*http.Cookie, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info(ctx, "no stored session found", zap.String("path", s.path))

		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read session file: %w", err)
	}

	var stored map[string]storedCookie
	if err := json.Unmarshal(b, &stored); err != nil {
		logger.Warn(ctx, "could not parse session file, starting with a fresh session",
			zap.String("path", s.path), zap.Error(err))

		return nil, nil
	}

	names := make([]string, 0, len(stored))
	for name := range stored {
		names = append(names, name)
	}
	sort.Strings(names)

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, name := range names {
		sc := stored[name]
		cookie := &http.Cookie{
			Name:   name,
			Value:  sc.Value,
			Domain: sc.Domain,
			Path:   sc.Path,
		}
		if sc.Expires != 0 {
			cookie.Expires = time.Unix(sc.Expires, 0).UTC()
		}
		cookies = append(cookies, cookie)
	}

	return cookies, nil
}

// Save persists the given session cookies, replacing any stored session.
func (s *SessionStore) Save(ctx context.Context, cookies []*http.Cookie) error {
	stored := make(map[string]storedCookie, len(cookies))
	for _, cookie := range cookies {
		sc := storedCookie{
			Value:  cookie.Value,
			Domain: cookie.Domain,
			Path:   cookie.Path,
		}
		if !cookie.Expires.IsZero() {
			sc.Expires = cookie.Expires.Unix()
		}
		stored[cookie.Name] = sc
	}

	b, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	if err := writeFileAtomic(s.path, b); err != nil {
		return fmt.Errorf("could not save session: %w", err)
	}

	logger.Debug(ctx, "session saved", zap.String("path", s.path), zap.Int("cookies", len(cookies)))

	return nil
}

// Clear removes the stored session. A missing file is not an error.
func (s *SessionStore) Clear(ctx context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not remove session file: %w", err)
	}

	logger.Debug(ctx, "session cleared", zap.String("path", s.path))

	return nil
}

// Ensure SessionStore conforms to the store.SessionStore interface at compile time.
var _ store.SessionStore = (*SessionStore)(nil)
