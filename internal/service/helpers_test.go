package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/dom/hero-draft-assistant/internal/config"
	"github.com/dom/hero-draft-assistant/internal/repository"
	"github.com/dom/hero-draft-assistant/internal/repository/memory"
	"github.com/dom/hero-draft-assistant/internal/service"
	"github.com/dom/hero-draft-assistant/internal/stats"
	"go.uber.org/zap/zaptest"
)

var errDiskFull = errors.New("disk full")

// flakyStore fails every Save while failing is set
type flakyStore struct {
	*memory.Store
	mu      sync.Mutex
	failing bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{Store: memory.NewStore()}
}

func (s *flakyStore) setFailing(v bool) {
	s.mu.Lock()
	s.failing = v
	s.mu.Unlock()
}

func (s *flakyStore) Save(ctx context.Context, key string, value json.RawMessage) error {
	s.mu.Lock()
	failing := s.failing
	s.mu.Unlock()
	if failing {
		return errDiskFull
	}
	return s.Store.Save(ctx, key, value)
}

func newServices(t *testing.T, store repository.Store) (*service.Services, *stats.Store) {
	t.Helper()
	log := zaptest.NewLogger(t)
	cfg := config.Default()
	cfg.StorageDriver = config.DriverMemory

	st := stats.NewStore(log, cfg.RecommendationLimit)
	svc := service.NewServices(store, st, cfg, log)
	if err := svc.Init(context.Background()); err != nil {
		t.Fatalf("failed to init services: %v", err)
	}
	return svc, st
}
