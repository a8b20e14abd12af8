package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"kawan-server/internal/domain/usage"
)

// FileStore implements usage.Store on a single JSON-array file. Each append
// reads the whole history, adds the record and rewrites the file — O(n) per
// write, an accepted trade-off for low-volume local use. Writes are
// serialized with a mutex so concurrent appends cannot lose records.
type FileStore struct {
	path string
	log  zerolog.Logger
	mu   sync.Mutex
}

// NewFileStore creates a new FileStore
func NewFileStore(path string, log zerolog.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Append rewrites the full history with the new record included.
func (s *FileStore) Append(ctx context.Context, event *usage.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.load()
	events = append(events, *event)

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal usage history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write usage file: %w", err)
	}
	return nil
}

// ReadAll returns the unbounded full history, oldest first (append order).
func (s *FileStore) ReadAll(ctx context.Context) ([]usage.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// Initialize ensures the data directory exists; the file itself is created
// lazily on first append.
func (s *FileStore) Initialize(ctx context.Context) error {
	return os.MkdirAll(filepath.Dir(s.path), 0o755)
}

// Backend names the implementation for logs and metrics.
func (s *FileStore) Backend() string {
	return "file"
}

// load reads the history, treating a missing or corrupt file as empty so
// the query path never fails on bad local state. Corruption is logged.
func (s *FileStore) load() []usage.Event {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Error().Err(err).Str("backend", "file").Str("path", s.path).
				Msg("failed to read usage file, treating as empty")
		}
		return nil
	}

	var events []usage.Event
	if err := json.Unmarshal(data, &events); err != nil {
		s.log.Error().Err(err).Str("backend", "file").Str("path", s.path).
			Msg("corrupt usage file, treating as empty")
		return nil
	}
	return events
}
