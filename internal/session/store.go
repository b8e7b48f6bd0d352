package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Credentials is what survives between invocations: the opaque token and
// the username it was issued for. The user object itself is never
// persisted.
type Credentials struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Store reads and writes the credential cache file.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the credential cache location.
func (s *Store) Path() string { return s.path }

// Save writes the credentials, creating parent directories as needed.
// The file is user-only: it holds a bearer token.
func (s *Store) Save(creds Credentials) error {
	if creds.Token == "" || creds.Username == "" {
		return errors.New("refusing to save incomplete credentials")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Load reads the cached credentials. A missing file is not an error; it
// just means nobody is logged in.
func (s *Store) Load() (Credentials, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, false, nil
		}
		return Credentials{}, false, fmt.Errorf("reading session file: %w", err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, false, fmt.Errorf("decoding session file: %w", err)
	}
	if creds.Token == "" || creds.Username == "" {
		return Credentials{}, false, nil
	}
	return creds, true, nil
}

// Clear removes the credential cache. Clearing an absent file is a
// no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
