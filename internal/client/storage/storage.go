// Package storage persists the single client-side credential slot: the token and
// the moment it was issued. Both fields are always written and cleared together.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Credentials is the only session data that survives a restart.
type Credentials struct {
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"token_init_date"`
}

// TokenStore is the persisted token slot. The session is its only writer.
type TokenStore interface {
	Load() (Credentials, bool)
	Save(Credentials) error
	Clear() error
}

// MemoryStore keeps credentials in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	creds Credentials
	set   bool
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (Credentials, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds, m.set && m.creds.Token != ""
}

func (m *MemoryStore) Save(creds Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = creds
	m.set = true
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = Credentials{}
	m.set = false
	return nil
}

// FileStore keeps credentials as JSON in a single file readable only by the owner.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (f *FileStore) Path() string {
	return f.path
}

// Load reports false when the file is missing, unreadable or holds no token.
func (f *FileStore) Load() (Credentials, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return Credentials{}, false
	}
	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil || creds.Token == "" {
		return Credentials{}, false
	}
	return creds, true
}

func (f *FileStore) Save(creds Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

var (
	_ TokenStore = (*MemoryStore)(nil)
	_ TokenStore = (*FileStore)(nil)
)
