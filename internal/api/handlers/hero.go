package handlers

import (
	"net/http"

	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/dom/hero-draft-assistant/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HeroHandler struct {
	catalog *service.CatalogService
	log     *zap.Logger
}

func NewHeroHandler(catalog *service.CatalogService, log *zap.Logger) *HeroHandler {
	return &HeroHandler{catalog: catalog, log: log.With(zap.String("handler", "hero"))}
}

type CreateHeroRequest struct {
	Name    string           `json:"name"`
	Classes []string         `json:"classes"`
	Image   string           `json:"image"`
	Roles   []domain.RoleTag `json:"roles"`
}

type HeroesResponse struct {
	Heroes []service.HeroView `json:"heroes"`
	Roles  domain.RoleTable   `json:"roles"`
}

func (h *HeroHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HeroesResponse{
		Heroes: h.catalog.ListHeroes(),
		Roles:  h.catalog.Roles(),
	})
}

func (h *HeroHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateHeroRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hero := domain.Hero{Name: req.Name, Classes: req.Classes, Image: req.Image}
	view, err := h.catalog.AddHero(r.Context(), hero, req.Roles)
	if err != nil {
		writeError(w, h.log, "hero.Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *HeroHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	view, err := h.catalog.GetHero(name)
	if err != nil {
		writeError(w, h.log, "hero.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Update applies any of rename, classes, image and roles
func (h *HeroHandler) Update(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req service.HeroUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.catalog.UpdateHero(r.Context(), name, req)
	if err != nil {
		writeError(w, h.log, "hero.Update", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *HeroHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.catalog.RemoveHero(r.Context(), name); err != nil {
		writeError(w, h.log, "hero.Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
