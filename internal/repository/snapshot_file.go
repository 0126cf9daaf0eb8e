package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"mindra_backend/internal/model"
)

// FileStore keeps the snapshot in a single JSON file. A process-wide mutex
// serialises read-modify-write cycles and writes replace the file atomically.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Read(ctx context.Context) (*model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *FileStore) Write(ctx context.Context, snap *model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(snap)
}

func (s *FileStore) Update(ctx context.Context, fn func(*model.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.readLocked()
	if err != nil {
		return err
	}
	if err := fn(snap); err != nil {
		return err
	}
	return s.writeLocked(snap)
}

func (s *FileStore) readLocked() (*model.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return decodeSnapshot(data)
}

func (s *FileStore) writeLocked(snap *model.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.path, err)
	}
	return os.Rename(tmpName, s.path)
}
