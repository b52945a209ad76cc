// Package backend picks the store implementation named by the config.
package backend

import (
	"fmt"

	"github.com/dom/hero-draft-assistant/internal/config"
	"github.com/dom/hero-draft-assistant/internal/repository"
	"github.com/dom/hero-draft-assistant/internal/repository/file"
	"github.com/dom/hero-draft-assistant/internal/repository/memory"
	"github.com/dom/hero-draft-assistant/internal/repository/postgres"
	"github.com/dom/hero-draft-assistant/internal/repository/sqlite"
	"go.uber.org/zap"
)

// Open connects the configured store. The result also implements
// repository.Watcher for the file driver.
func Open(cfg *config.Config, log *zap.Logger) (repository.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return memory.NewStore(), nil

	case config.DriverFile:
		store, err := file.NewStore(cfg.DataDir, log)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.DriverPostgres:
		db, err := postgres.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return postgres.NewStore(db), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
