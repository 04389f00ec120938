// Package session persists the authenticated session between CLI runs.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/eventhub/internal/client/models"
)

// Session is the state written to disk after a successful login.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Store reads and writes a Session at a fixed file path. The file is kept
// private to the owner because it carries a bearer token.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the saved session, or nil when no session file exists.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	sess := &Session{}
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Store) Save(sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the session file. A missing file is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
