// Package file provides the TOML-backed credentials store for county
// subscriber logins.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
	"github.com/custodia-labs/courtcheck/internal/core/ports/driven"
)

// Ensure CredentialsStore implements the interface.
var _ driven.CredentialsStore = (*CredentialsStore)(nil)

const credentialsFile = "credentials.toml"

// credentialsEntry is the on-disk shape for one county's login.
type credentialsEntry struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// CredentialsStore keeps county subscriber logins in a TOML file with
// restricted permissions inside the courtcheck config directory.
type CredentialsStore struct {
	mu       sync.Mutex
	filePath string
}

// NewCredentialsStore creates a credentials store under configDir.
// If configDir is empty, defaults to ~/.courtcheck.
func NewCredentialsStore(configDir string) (*CredentialsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".courtcheck")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &CredentialsStore{
		filePath: filepath.Join(configDir, credentialsFile),
	}, nil
}

// Get returns the credentials for a county, or domain.ErrNotFound.
func (s *CredentialsStore) Get(_ context.Context, county string) (*domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}

	entry, ok := entries[county]
	if !ok {
		return nil, fmt.Errorf("credentials for %q: %w", county, domain.ErrNotFound)
	}

	return &domain.Credentials{
		County:   county,
		Username: entry.Username,
		Password: entry.Password,
	}, nil
}

// Save stores or replaces the credentials for a county.
func (s *CredentialsStore) Save(_ context.Context, creds domain.Credentials) error {
	if !creds.Valid() {
		return fmt.Errorf("save credentials: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	entries[creds.County] = credentialsEntry{
		Username: creds.Username,
		Password: creds.Password,
	}
	return s.save(entries)
}

// Delete removes the credentials for a county. Deleting credentials that
// were never stored is not an error.
func (s *CredentialsStore) Delete(_ context.Context, county string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	delete(entries, county)
	return s.save(entries)
}

// Path returns the credentials file path.
func (s *CredentialsStore) Path() string {
	return s.filePath
}

// load reads the credentials file (caller must hold lock).
func (s *CredentialsStore) load() (map[string]credentialsEntry, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]credentialsEntry), nil
		}
		return nil, err
	}

	entries := make(map[string]credentialsEntry)
	if err := toml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}
	return entries, nil
}

// save writes the credentials file (caller must hold lock).
func (s *CredentialsStore) save(entries map[string]credentialsEntry) error {
	data, err := toml.Marshal(entries)
	if err != nil {
		return err
	}

	// Logins only: keep the file readable by the owner alone.
	return os.WriteFile(s.filePath, data, 0600)
}
