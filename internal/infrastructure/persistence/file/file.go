// Package file implements the kv.Store contract on a single JSON file.
// This is the default backend: one school laptop, one session, no server.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/persistence/kv"
)

// Store keeps every logical record in one file as a key -> raw JSON map.
// Writes rewrite the whole file; the document is small (one class roster
// and its voucher log) so this stays well under a millisecond.
type Store struct {
	mu   sync.RWMutex
	file *os.File
	recs map[string]json.RawMessage
}

// Open opens or creates the store file at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}

	s := &Store{file: f}
	if err := s.load(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying file.
func (s *Store) Close() error {
	return s.file.Close()
}

// load reads the file into memory. An empty file starts fresh; an
// unreadable file also starts fresh rather than failing the session, since
// individual record corruption is already tolerated one level up.
func (s *Store) load() error {
	info, err := s.file.Stat()
	if err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	if info.Size() == 0 {
		s.recs = make(map[string]json.RawMessage)
		return nil
	}

	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	var recs map[string]json.RawMessage
	if err := json.NewDecoder(s.file).Decode(&recs); err != nil {
		recs = make(map[string]json.RawMessage)
	}
	if recs == nil {
		recs = make(map[string]json.RawMessage)
	}
	s.recs = recs
	return nil
}

// flushLocked rewrites the file from the in-memory map. Caller holds mu.
func (s *Store) flushLocked() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	enc := json.NewEncoder(s.file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.recs); err != nil {
		return err
	}
	// truncate in case new content is shorter
	pos, err := s.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if err := s.file.Truncate(pos); err != nil {
		return err
	}
	return s.file.Sync()
}

// Load implements kv.Store.
func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, kv.ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.recs[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// Save implements kv.Store.
func (s *Store) Save(_ context.Context, key string, data []byte) error {
	if key == "" {
		return kv.ErrEmptyKey
	}
	if !json.Valid(data) {
		// The map holds raw JSON; wrap anything else as a JSON string.
		wrapped, err := json.Marshal(string(data))
		if err != nil {
			return fmt.Errorf("file store: %w", err)
		}
		data = wrapped
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(json.RawMessage, len(data))
	copy(stored, data)
	s.recs[key] = stored

	if err := s.flushLocked(); err != nil {
		return fmt.Errorf("%w: %v", kv.ErrUnavailable, err)
	}
	return nil
}
