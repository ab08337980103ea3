// Package session is the single read/write gateway for the persisted
// login session (bearer token plus user payload). Every component that
// authorizes a request or gates a UI action reads through a Store;
// only the login and logout flows write.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/stembase/mading/pkg/api"
)

// Store holds the current session. Implementations must be safe for
// concurrent use; reads are synchronous. No expiry handling exists:
// a stale token surfaces only as request failures.
type Store interface {
	// Token returns the bearer token, or "" when logged out.
	Token() string
	// User returns the logged-in user and whether one is present.
	User() (api.User, bool)
	// Role returns the logged-in user's role, or "" when logged out.
	Role() string
	// Save replaces the session with the given token and user.
	Save(token string, user api.User) error
	// Clear removes the session.
	Clear() error
}

// payload is the on-disk shape. The keys mirror the browser storage the
// site originally used: token, user, role.
type payload struct {
	Token string   `json:"token"`
	User  api.User `json:"user"`
	Role  string   `json:"role"`
}

// FileStore persists the session as a JSON file.
type FileStore struct {
	mu   sync.RWMutex
	path string
	cur  payload
	ok   bool
}

// DefaultPath returns the session file location under the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "mading", "session.json"), nil
}

// NewFileStore opens a file-backed store at path, loading any existing
// session. A missing file is not an error; it just means logged out.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		// A corrupt session file is treated as logged out rather than
		// blocking the whole application.
		return s, nil
	}
	s.cur = p
	s.ok = p.Token != ""
	return s, nil
}

// Token implements Store.
func (s *FileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

// User implements Store.
func (s *FileStore) User() (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.User, s.ok
}

// Role implements Store.
func (s *FileStore) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Role
}

// Save implements Store.
func (s *FileStore) Save(token string, user api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := payload{Token: token, User: user, Role: user.Role}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	s.cur = p
	s.ok = true
	return nil
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	s.cur = payload{}
	s.ok = false
	return nil
}

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore struct {
	mu  sync.RWMutex
	cur payload
	ok  bool
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore { return &MemStore{} }

// Token implements Store.
func (s *MemStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

// User implements Store.
func (s *MemStore) User() (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.User, s.ok
}

// Role implements Store.
func (s *MemStore) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Role
}

// Save implements Store.
func (s *MemStore) Save(token string, user api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = payload{Token: token, User: user, Role: user.Role}
	s.ok = true
	return nil
}

// Clear implements Store.
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = payload{}
	s.ok = false
	return nil
}
