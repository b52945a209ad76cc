package service

import (
	"context"

	"github.com/dom/hero-draft-assistant/internal/config"
	"github.com/dom/hero-draft-assistant/internal/repository"
	"github.com/dom/hero-draft-assistant/internal/stats"
	"go.uber.org/zap"
)

type Services struct {
	Catalog *CatalogService
	Draft   *DraftService
	Stats   *StatsService
}

func NewServices(store repository.Store, st *stats.Store, cfg *config.Config, log *zap.Logger) *Services {
	catalog := repository.NewCatalog(store)
	return &Services{
		Catalog: NewCatalogService(catalog, st, log),
		Draft:   NewDraftService(catalog, st, cfg.DefaultFormat, log),
		Stats:   NewStatsService(st),
	}
}

// Init loads the catalog, recomputes statistics and restores the draft
func (s *Services) Init(ctx context.Context) error {
	if err := s.Catalog.Reload(ctx); err != nil {
		return err
	}
	return s.Draft.Restore(ctx)
}

// ExternalChange reloads whatever a key written by another process feeds
func (s *Services) ExternalChange(ctx context.Context, key string) error {
	switch key {
	case repository.KeyDraftState, repository.KeyDefaultFormat:
		return s.Draft.Restore(ctx)
	default:
		return s.Catalog.Reload(ctx)
	}
}
