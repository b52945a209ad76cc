package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/hero-draft-assistant/internal/api"
	"github.com/dom/hero-draft-assistant/internal/config"
	"github.com/dom/hero-draft-assistant/internal/repository"
	"github.com/dom/hero-draft-assistant/internal/repository/memory"
	repoPostgres "github.com/dom/hero-draft-assistant/internal/repository/postgres"
	"github.com/dom/hero-draft-assistant/internal/service"
	"github.com/dom/hero-draft-assistant/internal/stats"
	"github.com/dom/hero-draft-assistant/internal/websocket"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_hero_draft"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := repoPostgres.AutoMigrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	for _, table := range []string{"kv_entries"} {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	cfg := config.Default()
	cfg.Port = "0"
	cfg.Environment = "test"
	cfg.StorageDriver = config.DriverMemory
	cfg.WatchDataDir = false
	return cfg
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	Store    repository.Store
	Stats    *stats.Store
	Services *service.Services
	Hub      *websocket.Hub
	Config   *config.Config
	Log      *zap.Logger
}

// NewTestServer creates a complete test server over an empty memory store
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return NewTestServerWithStore(t, memory.NewStore())
}

// NewTestServerWithStore boots the server over an existing store, the way
// the binary does after a restart
func NewTestServerWithStore(t *testing.T, store repository.Store) *TestServer {
	t.Helper()

	cfg := TestConfig()
	log := zaptest.NewLogger(t)

	st := stats.NewStore(log, cfg.RecommendationLimit)
	services := service.NewServices(store, st, cfg, log)
	if err := services.Init(context.Background()); err != nil {
		t.Fatalf("failed to init services: %v", err)
	}

	hub := websocket.NewHub(services.Draft, log)
	go hub.Run()
	hub.Attach(services)

	router := api.NewRouter(services, hub, log)
	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		Store:    store,
		Stats:    st,
		Services: services,
		Hub:      hub,
		Config:   cfg,
		Log:      log,
	}

	t.Cleanup(func() {
		hub.Stop()
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}

// WebSocketURL returns the draft feed URL
func (ts *TestServer) WebSocketURL() string {
	wsURL := "ws" + ts.Server.URL[4:] // Replace "http" with "ws"
	return fmt.Sprintf("%s/api/v1/ws", wsURL)
}
