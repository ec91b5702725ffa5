// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-social-graph/internal/adapter"
)

const (
	sessionDirName  = "go-social-graph"
	sessionFileName = "session.json"
)

// SessionFile persists [adapter.Credentials] between invocations.
type SessionFile struct {
	path string
}

// NewSessionFile returns a session stored at path.
func NewSessionFile(path string) *SessionFile {
	return &SessionFile{path: path}
}

// DefaultSessionPath is <user config dir>/go-social-graph/session.json.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, sessionDirName, sessionFileName)
}

// Load returns the stored credentials. A missing file is an empty session.
func (s *SessionFile) Load() (adapter.Credentials, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return adapter.Credentials{}, nil
	}
	if err != nil {
		return adapter.Credentials{}, fmt.Errorf("read session: %w", err)
	}

	var creds adapter.Credentials
	if err = json.Unmarshal(data, &creds); err != nil {
		return adapter.Credentials{}, fmt.Errorf("decode session %s: %w", s.path, err)
	}
	return creds, nil
}

// Save writes creds readable by the owner only. An empty session removes
// the file.
func (s *SessionFile) Save(creds adapter.Credentials) error {
	if creds == (adapter.Credentials{}) {
		return s.Clear()
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err = os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the session file.
func (s *SessionFile) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
