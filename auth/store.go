// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// CredentialsFilename is the token file name under the config directory.
const CredentialsFilename = "credentials.json"

// Credentials is the persisted registry credential.
type Credentials struct {
	Token string `json:"token"`
	// ExpiresAt is zero for tokens without a known expiry.
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
	Handle    string    `json:"handle,omitempty"`
}

// Store persists credentials to a single file, independent of install scope.
type Store struct {
	path string
	now  func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithPath overrides the credential file location.
func WithPath(path string) StoreOption {
	return func(s *Store) { s.path = path }
}

// WithStoreClock injects the clock used for expiry checks.
func WithStoreClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates a credential store at the default config location.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		path: filepath.Join(xdg.ConfigHome, "personify", CredentialsFilename),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the stored bearer token. It fails with ErrNoToken when no
// credential is stored and ErrTokenExpired when it is past its expiry, so
// callers can refuse authenticated calls before touching the network.
func (s *Store) Token() (string, error) {
	creds, err := s.Load()
	if err != nil {
		return "", err
	}
	if !creds.ExpiresAt.IsZero() && !s.now().Before(creds.ExpiresAt) {
		return "", ErrTokenExpired
	}
	return creds.Token, nil
}

// Load reads the stored credentials.
func (s *Store) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing credentials %s: %w", s.path, err)
	}
	if creds.Token == "" {
		return nil, ErrNoToken
	}
	return &creds, nil
}

// Save persists credentials with owner-only permissions.
func (s *Store) Save(creds *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing credentials: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}

// Clear removes the stored credentials. Clearing an empty store is not an
// error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing credentials: %w", err)
	}
	return nil
}
