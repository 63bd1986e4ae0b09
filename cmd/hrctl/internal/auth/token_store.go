package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
)

const (
	// DirName is the per-user directory hrctl keeps its state in.
	DirName   = ".hrctl"
	tokenFile = "session.json"
)

// FileStore implements sdk.TokenStore using a JSON file.
// It is the CLI's stand-in for the browser's token cookie.
type FileStore struct {
	path string
}

var _ sdk.TokenStore = (*FileStore)(nil)

// NewFileStore returns a FileStore under ~/.hrctl.
func NewFileStore() (*FileStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewFileStoreAt(filepath.Join(home, DirName))
}

// NewFileStoreAt returns a FileStore keeping its file in dir.
func NewFileStoreAt(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return &FileStore{path: filepath.Join(dir, tokenFile)}, nil
}

// Path returns the session file location.
func (s *FileStore) Path() string {
	return s.path
}

// SaveToken writes the token, readable only by the current user.
func (s *FileStore) SaveToken(token *sdk.Token) error {
	if token == nil || token.Value == "" {
		return errors.New("refusing to save an empty token")
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	return os.WriteFile(s.path, data, 0600)
}

// LoadToken reads the token. A missing or expired session yields
// sdk.ErrNotLoggedIn; an expired file is removed on the way.
func (s *FileStore) LoadToken() (*sdk.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sdk.ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	var token sdk.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session file: %w", err)
	}
	if token.Value == "" {
		return nil, sdk.ErrNotLoggedIn
	}
	if token.IsExpired() {
		_ = s.DeleteToken()
		return nil, sdk.ErrNotLoggedIn
	}
	return &token, nil
}

// DeleteToken removes the session file. Removing a missing file is not an error.
func (s *FileStore) DeleteToken() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
