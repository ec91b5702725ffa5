// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-social-graph/internal/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFile_LoadMissing(t *testing.T) {
	s := NewSessionFile(filepath.Join(t.TempDir(), "none.json"))

	creds, err := s.Load()

	require.NoError(t, err)
	assert.Equal(t, adapter.Credentials{}, creds)
}

func TestSessionFile_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := NewSessionFile(path)
	want := adapter.Credentials{AccessToken: "jwt", UserID: 7, RememberToken: "tok"}

	require.NoError(t, s.Save(want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSessionFile_SaveEmptyRemoves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewSessionFile(path)
	require.NoError(t, s.Save(adapter.Credentials{UserID: 1, AccessToken: "jwt"}))

	require.NoError(t, s.Save(adapter.Credentials{}))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSessionFile_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewSessionFile(path).Load()

	assert.Error(t, err)
}

func TestSessionFile_ClearMissing(t *testing.T) {
	s := NewSessionFile(filepath.Join(t.TempDir(), "session.json"))

	assert.NoError(t, s.Clear())
}

func TestDefaultSessionPath(t *testing.T) {
	path := DefaultSessionPath()

	assert.Equal(t, sessionFileName, filepath.Base(path))
	assert.Equal(t, sessionDirName, filepath.Base(filepath.Dir(path)))
}
