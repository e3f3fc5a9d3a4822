package storage

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
)

// MemoryStorage keeps written files in memory
type MemoryStorage struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{files: make(map[string][]byte)}
}

// WriteFile implements Storage.WriteFile
func (s *MemoryStorage) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cleaned, err := CleanName(name)
	if err != nil {
		return err
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.files[cleaned] = buf
	s.mu.Unlock()
	return nil
}

// ReadFile implements Reader.ReadFile
func (s *MemoryStorage) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cleaned, err := CleanName(name)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.files[cleaned]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("file %s: %w", name, os.ErrNotExist)
	}
	return data, nil
}

// Names returns the stored names in sorted order
func (s *MemoryStorage) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Location implements Storage.Location
func (s *MemoryStorage) Location() string {
	return "memory"
}
