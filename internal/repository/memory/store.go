// Package memory keeps documents in a map. Nothing survives a restart.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dom/hero-draft-assistant/internal/repository"
)

type Store struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

func NewStore() *Store {
	return &Store{data: make(map[string]json.RawMessage)}
}

func (s *Store) Load(ctx context.Context, key string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append(json.RawMessage(nil), v...), nil
}

func (s *Store) Save(ctx context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return repository.ErrInvalidValue
	}

	s.mu.Lock()
	s.data[key] = append(json.RawMessage(nil), value...)
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error {
	return nil
}
