// Package prefs keeps key-value entries in a single JSON file.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is a JSON object on disk mapping keys to raw JSON values.
// Every Put rewrites the file through a temp file and rename. A file that
// does not parse reads as empty; the first Put moves it aside to path+".bak".
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger sets where unreadable-file warnings go. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, _, err := s.read()
	if err != nil {
		return nil, false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, corrupt, err := s.read()
	if err != nil {
		return err
	}
	if corrupt {
		if err := os.Rename(s.path, s.path+".bak"); err != nil {
			return fmt.Errorf("back up unreadable %s: %w", s.path, err)
		}
	}
	if !json.Valid(value) {
		// Keep the file itself parseable; the value comes back as a JSON string.
		quoted, err := json.Marshal(string(value))
		if err != nil {
			return err
		}
		value = quoted
	}
	entries[key] = value
	return s.write(entries)
}

func (s *FileStore) read() (entries map[string]json.RawMessage, corrupt bool, err error) {
	entries = make(map[string]json.RawMessage)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, false, nil
		}
		return nil, false, err
	}
	if len(data) == 0 {
		return entries, false, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("unreadable store file, starting empty", "path", s.path, "err", err)
		return make(map[string]json.RawMessage), true, nil
	}
	return entries, false, nil
}

func (s *FileStore) write(entries map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
