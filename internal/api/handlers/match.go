package handlers

import (
	"net/http"

	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/dom/hero-draft-assistant/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MatchHandler struct {
	catalog *service.CatalogService
	log     *zap.Logger
}

func NewMatchHandler(catalog *service.CatalogService, log *zap.Logger) *MatchHandler {
	return &MatchHandler{catalog: catalog, log: log.With(zap.String("handler", "match"))}
}

type MatchesResponse struct {
	Matches []domain.MatchRecord `json:"matches"`
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MatchesResponse{Matches: h.catalog.ListMatches()})
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var match domain.MatchRecord
	if !decodeJSON(w, r, &match) {
		return
	}

	stored, err := h.catalog.AddMatch(r.Context(), match)
	if err != nil {
		writeError(w, h.log, "match.Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := matchID(w, r)
	if !ok {
		return
	}

	match, err := h.catalog.GetMatch(id)
	if err != nil {
		writeError(w, h.log, "match.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (h *MatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := matchID(w, r)
	if !ok {
		return
	}

	var match domain.MatchRecord
	if !decodeJSON(w, r, &match) {
		return
	}

	stored, err := h.catalog.UpdateMatch(r.Context(), id, match)
	if err != nil {
		writeError(w, h.log, "match.Update", err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := matchID(w, r)
	if !ok {
		return
	}

	if err := h.catalog.DeleteMatch(r.Context(), id); err != nil {
		writeError(w, h.log, "match.Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func matchID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
