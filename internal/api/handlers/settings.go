package handlers

import (
	"net/http"

	"github.com/dom/hero-draft-assistant/internal/service"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	draft *service.DraftService
	log   *zap.Logger
}

func NewSettingsHandler(draft *service.DraftService, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{draft: draft, log: log.With(zap.String("handler", "settings"))}
}

func (h *SettingsHandler) GetDefaultFormat(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FormatRequest{Format: h.draft.DefaultFormat()})
}

func (h *SettingsHandler) SetDefaultFormat(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.draft.SetDefaultFormat(r.Context(), req.Format); err != nil {
		writeError(w, h.log, "settings.SetDefaultFormat", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
