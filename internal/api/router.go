package api

import (
	"net/http"

	"github.com/dom/hero-draft-assistant/internal/api/handlers"
	"github.com/dom/hero-draft-assistant/internal/api/middleware"
	"github.com/dom/hero-draft-assistant/internal/service"
	"github.com/dom/hero-draft-assistant/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, hub *websocket.Hub, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	draftHandler := handlers.NewDraftHandler(services.Draft, log)
	settingsHandler := handlers.NewSettingsHandler(services.Draft, log)
	heroHandler := handlers.NewHeroHandler(services.Catalog, log)
	matchHandler := handlers.NewMatchHandler(services.Catalog, log)
	statsHandler := handlers.NewStatsHandler(services.Stats, log)
	wsHandler := handlers.NewWebSocketHandler(hub, log)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/draft", func(r chi.Router) {
			r.Get("/", draftHandler.Get)
			r.Post("/bans", draftHandler.AddBan)
			r.Post("/picks", draftHandler.AddPick)
			r.Put("/format", draftHandler.SetFormat)
			r.Put("/team", draftHandler.SetTeam)
			r.Put("/position", draftHandler.SetPosition)
			r.Post("/reset", draftHandler.Reset)
			r.Get("/turn", draftHandler.Turn)
			r.Get("/next-pick", draftHandler.NextPick)
			r.Get("/recommendations", draftHandler.Recommendations)
			r.Get("/win-rate", draftHandler.WinRate)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/default-format", settingsHandler.GetDefaultFormat)
			r.Put("/default-format", settingsHandler.SetDefaultFormat)
		})

		r.Route("/heroes", func(r chi.Router) {
			r.Get("/", heroHandler.List)
			r.Post("/", heroHandler.Create)
			r.Get("/{name}", heroHandler.Get)
			r.Put("/{name}", heroHandler.Update)
			r.Delete("/{name}", heroHandler.Delete)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", matchHandler.List)
			r.Post("/", matchHandler.Create)
			r.Get("/{id}", matchHandler.Get)
			r.Put("/{id}", matchHandler.Update)
			r.Delete("/{id}", matchHandler.Delete)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/heroes", statsHandler.Heroes)
			r.Get("/heroes/{name}", statsHandler.Hero)
			r.Get("/roles/{role}/recommendations", statsHandler.RoleRecommendations)
			r.Get("/matchups", statsHandler.Matchup)
			r.Post("/win-rate", statsHandler.WinRate)
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
