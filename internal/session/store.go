package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	teacherIDKey = "teacherID"
	tokenKey     = "token"
)

// Store persists the acting teacher id between runs.
type Store interface {
	Load() (string, error)
	Save(id string) error
}

// FileStore keeps a small JSON object on disk, one entry per key. Each
// value is itself JSON-serialised, so the teacher id is stored as
// {"teacherID":"\"abc\""}.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore uses path; the file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the stored teacher id, "" when nothing is stored.
func (s *FileStore) Load() (string, error) {
	return s.get(teacherIDKey)
}

// Save stores the teacher id.
func (s *FileStore) Save(id string) error {
	return s.set(teacherIDKey, id)
}

// Token returns the stored bearer token.
func (s *FileStore) Token() (string, error) {
	return s.get(tokenKey)
}

// SaveToken stores the bearer token. Empty clears it.
func (s *FileStore) SaveToken(token string) error {
	return s.set(tokenKey, token)
}

func (s *FileStore) get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return "", err
	}
	raw, ok := entries[key]
	if !ok || raw == "" {
		return "", nil
	}
	var v string
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return "", fmt.Errorf("decode %s from %s: %w", key, s.path, err)
	}
	return v, nil
}

func (s *FileStore) set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entries[key] = string(encoded)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (s *FileStore) read() (map[string]string, error) {
	entries := make(map[string]string)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode session file %s: %w", s.path, err)
	}
	return entries, nil
}

// MemoryStore is a Store for tests and one-shot runs.
type MemoryStore struct {
	mu sync.Mutex
	id string
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id, nil
}

func (m *MemoryStore) Save(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id = id
	return nil
}
