// Package credstore persists the backend auth token across runs.
//
// The token is opaque: no expiry metadata is kept client-side. Expiry is
// detected reactively from backend responses and handled by the session
// manager.
package credstore

import (
	"os"
	"path/filepath"
	"strings"
)

// Store reads and writes the token file.
type Store struct {
	path string
}

// New creates a Store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the token file path.
func (s *Store) Path() string {
	return s.path
}

// Save persists the token. The parent directory is created with mode 0700
// and the token file with mode 0600.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token+"\n"), 0600)
}

// Load returns the persisted token. The second return value is false if no
// token is stored. A missing file is not an error.
func (s *Store) Load() (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Clear removes the stored token. Clearing an absent token succeeds.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
