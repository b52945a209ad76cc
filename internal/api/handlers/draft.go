package handlers

import (
	"net/http"

	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/dom/hero-draft-assistant/internal/service"
	"go.uber.org/zap"
)

type DraftHandler struct {
	draft *service.DraftService
	log   *zap.Logger
}

func NewDraftHandler(draft *service.DraftService, log *zap.Logger) *DraftHandler {
	return &DraftHandler{draft: draft, log: log.With(zap.String("handler", "draft"))}
}

// SlotRequest targets one ban or pick slot. Slot is required; a missing
// slot must not fall back to slot 0.
type SlotRequest struct {
	Team domain.TeamID `json:"team"`
	Hero string        `json:"hero"`
	Slot *int          `json:"slot"`
}

func NewSlotRequest(team domain.TeamID, hero string, slot int) SlotRequest {
	return SlotRequest{Team: team, Hero: hero, Slot: &slot}
}

type FormatRequest struct {
	Format domain.Format `json:"format"`
}

type TeamRequest struct {
	Team domain.TeamID `json:"team"`
}

type PositionRequest struct {
	Role domain.RoleTag `json:"role"`
}

type NextPickResponse struct {
	Suggestion *domain.Recommendation `json:"suggestion"`
}

func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.draft.Snapshot())
}

func (h *DraftHandler) AddBan(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSlot(w, r)
	if !ok {
		return
	}
	state, err := h.draft.AddBan(r.Context(), req.Team, req.Hero, *req.Slot)
	if err != nil {
		writeError(w, h.log, "draft.AddBan", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *DraftHandler) AddPick(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSlot(w, r)
	if !ok {
		return
	}
	state, err := h.draft.AddPick(r.Context(), req.Team, req.Hero, *req.Slot)
	if err != nil {
		writeError(w, h.log, "draft.AddPick", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func decodeSlot(w http.ResponseWriter, r *http.Request) (SlotRequest, bool) {
	var req SlotRequest
	if !decodeJSON(w, r, &req) {
		return req, false
	}
	if req.Slot == nil {
		http.Error(w, "slot is required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (h *DraftHandler) SetFormat(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	state, err := h.draft.SetFormat(r.Context(), req.Format)
	if err != nil {
		writeError(w, h.log, "draft.SetFormat", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *DraftHandler) SetTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	state, err := h.draft.SetSelectedTeam(r.Context(), req.Team)
	if err != nil {
		writeError(w, h.log, "draft.SetTeam", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *DraftHandler) SetPosition(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	state, err := h.draft.SetPosition(r.Context(), req.Role)
	if err != nil {
		writeError(w, h.log, "draft.SetPosition", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *DraftHandler) Reset(w http.ResponseWriter, r *http.Request) {
	state, err := h.draft.Reset(r.Context())
	if err != nil {
		writeError(w, h.log, "draft.Reset", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *DraftHandler) Turn(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.draft.CurrentTurn())
}

func (h *DraftHandler) NextPick(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NextPickResponse{Suggestion: h.draft.NextPick()})
}

func (h *DraftHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.draft.Recommendations())
}

func (h *DraftHandler) WinRate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.draft.WinRate())
}
