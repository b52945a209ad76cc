package handlers

import (
	"net/http"
	"strings"

	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/dom/hero-draft-assistant/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type StatsHandler struct {
	stats *service.StatsService
	log   *zap.Logger
}

func NewStatsHandler(stats *service.StatsService, log *zap.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, log: log.With(zap.String("handler", "stats"))}
}

type HeroStatsResponse struct {
	Heroes  []domain.HeroStat    `json:"heroes"`
	Summary service.StatsSummary `json:"summary"`
}

type RecommendationsResponse struct {
	Role            domain.RoleTag          `json:"role"`
	Against         []string                `json:"against"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

type WinRateRequest struct {
	Team1 []string `json:"team1"`
	Team2 []string `json:"team2"`
}

func (h *StatsHandler) Heroes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HeroStatsResponse{
		Heroes:  h.stats.HeroStats(),
		Summary: h.stats.Summary(),
	})
}

func (h *StatsHandler) Hero(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	st, err := h.stats.HeroStat(name)
	if err != nil {
		writeError(w, h.log, "stats.Hero", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// RoleRecommendations reads opponents from ?against=a,b
func (h *StatsHandler) RoleRecommendations(w http.ResponseWriter, r *http.Request) {
	role := chi.URLParam(r, "role")
	against := splitList(r.URL.Query().Get("against"))

	recs, err := h.stats.RoleRecommendations(role, against)
	if err != nil {
		writeError(w, h.log, "stats.RoleRecommendations", err)
		return
	}
	writeJSON(w, http.StatusOK, RecommendationsResponse{
		Role:            domain.RoleTag(role),
		Against:         against,
		Recommendations: recs,
	})
}

func (h *StatsHandler) Matchup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	res, err := h.stats.Matchup(q.Get("a"), q.Get("b"))
	if err != nil {
		writeError(w, h.log, "stats.Matchup", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *StatsHandler) WinRate(w http.ResponseWriter, r *http.Request) {
	var req WinRateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.stats.CompositeWinRate(req.Team1, req.Team2))
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
