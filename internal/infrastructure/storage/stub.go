// Package storage provides object storage implementations for file operations.
package storage

import (
	"context"
	"errors"
	"sync"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// StubObjectStorage is an in-memory placeholder implementation of ObjectStorage.
// Use it for development when no real storage backend is configured.
type StubObjectStorage struct {
	// BaseURL is the base URL for generated object URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure StubObjectStorage implements ObjectStorage
var _ catalogapp.ObjectStorage = (*StubObjectStorage)(nil)

// Upload stores the object in memory and returns a fake public URL.
func (s *StubObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) (string, error) {
	if storageKey == "" {
		return "", errors.New("storage key is required")
	}

	s.mu.Lock()
	s.objects[storageKey] = data
	s.mu.Unlock()

	return s.BaseURL + "/" + storageKey, nil
}

// Delete removes the object from memory.
func (s *StubObjectStorage) Delete(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	delete(s.objects, storageKey)
	s.mu.Unlock()

	return nil
}

// ObjectExists reports whether the object was previously uploaded.
func (s *StubObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.RLock()
	_, ok := s.objects[storageKey]
	s.mu.RUnlock()

	return ok, nil
}
