package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"portalseguranca/internal/repositories/store"
	"sync"
)

// Store keeps each collection in <dir>/<collection>.json
type Store struct {
	dir   string
	mu    sync.Mutex
	locks map[store.Collection]*sync.Mutex
}

// NewStore creates the data directory if needed and returns a file backed store
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("data directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{
		dir:   dir,
		locks: make(map[store.Collection]*sync.Mutex),
	}, nil
}

// Path returns the file used by a collection
func (s *Store) Path(collection store.Collection) string {
	return filepath.Join(s.dir, string(collection)+".json")
}

func (s *Store) lock(collection store.Collection) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

// Load reads the whole file. A missing or blank file decodes as an empty list.
func (s *Store) Load(ctx context.Context, collection store.Collection, dest any) error {
	if err := collection.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(s.Path(collection))
	if errors.Is(err, os.ErrNotExist) {
		data = []byte("[]")
	} else if err != nil {
		return fmt.Errorf("reading %s: %w", collection, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("[]")
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decoding %s: %w", collection, err)
	}
	return nil
}

// Replace writes the whole collection to a temp file and renames it over the old one
func (s *Store) Replace(ctx context.Context, collection store.Collection, items any) error {
	if err := collection.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", collection, err)
	}
	if bytes.Equal(data, []byte("null")) {
		data = []byte("[]")
	}

	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	tmp, err := os.CreateTemp(s.dir, string(collection)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", collection, err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file for %s: %w", collection, err)
	}

	if err := os.Rename(tmp.Name(), s.Path(collection)); err != nil {
		return fmt.Errorf("replacing %s: %w", collection, err)
	}
	return nil
}

// Close is a no-op for files
func (s *Store) Close(context.Context) error {
	return nil
}
