package repository

import (
	"context"
	"sync"

	"marketplace/internal/domain/repository"
)

type memoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStorage returns a process-local Storage. Nothing survives a restart.
func NewMemoryStorage() repository.Storage {
	return &memoryStorage{
		data: make(map[string]string),
	}
}

func (s *memoryStorage) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memoryStorage) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *memoryStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}
