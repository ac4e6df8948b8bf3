package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// SlotKey is the name of the slot holding the bookmark list.
const SlotKey = "nav_bookmarks_v1"

// ErrSlotEmpty is returned by Slot.Get when nothing has been stored yet.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a single named location holding one serialized blob.
type Slot interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, data []byte) error
	Close() error
}

// FileSlot implements Slot using a file on disk.
type FileSlot struct {
	path string
}

// NewFileSlot creates a FileSlot for the given file path.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// Path returns the slot file path.
func (s *FileSlot) Path() string {
	return s.path
}

// Get reads the file. A missing file is ErrSlotEmpty.
func (s *FileSlot) Get(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}
	return data, nil
}

// Set overwrites the file, creating its directory if needed.
func (s *FileSlot) Set(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Close is a no-op for files.
func (s *FileSlot) Close() error { return nil }

// MemorySlot keeps the blob in memory. Used for tests and throwaway sessions.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
	set  bool
	// SetErr, when non-nil, is returned by every Set call.
	SetErr error
}

// NewMemorySlot creates an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Get(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Set(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.data = append([]byte(nil), data...)
	s.set = true
	return nil
}

func (s *MemorySlot) Close() error { return nil }
