// Package session persists the admin's bearer token and profile across runs.
// The file is the sole source of truth: an existing token is trusted until a
// later API call rejects it.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	keyToken = "adminToken"
	keyAdmin = "adminData"
)

// Admin is the authenticated admin profile as returned by the login endpoint.
type Admin struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Store is a file-backed key-value session store. Construct one at process
// start with Open and pass the reference around; there is no package-level
// instance.
type Store struct {
	path string

	mu    sync.RWMutex
	token string
	admin *Admin
}

// Open loads any persisted session synchronously. A missing or unreadable
// file yields an unauthenticated store, not an error; only a malformed
// existing file is reported.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	var raw struct {
		Token string `json:"adminToken"`
		Admin *Admin `json:"adminData"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	s.token = raw.Token
	s.admin = raw.Admin
	return s, nil
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the stored bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Admin() (Admin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.admin == nil {
		return Admin{}, false
	}
	return *s.admin, true
}

// Set persists token and admin profile together. Both keys are written in one
// atomic rename so a failed login can never leave a partial session behind.
func (s *Store) Set(token string, admin Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(token, &admin); err != nil {
		return err
	}
	s.token = token
	a := admin
	s.admin = &a
	return nil
}

// Clear drops both persisted keys unconditionally. Removing an already-absent
// file is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.admin = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) write(token string, admin *Admin) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(map[string]any{
		keyToken: token,
		keyAdmin: admin,
	}, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
