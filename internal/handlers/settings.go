package handlers

import (
	"net/http"

	"weather-lookup/internal/logger"
	"weather-lookup/internal/settings"
)

type SettingsHandler struct {
	settings *settings.Store
}

func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{settings: store}
}

type apiKeyStatus struct {
	Configured bool            `json:"configured"`
	Source     settings.Source `json:"source"`
}

func (h *SettingsHandler) GetAPIKey(w http.ResponseWriter, r *http.Request) {
	ok, src := h.settings.Status(r.Context())
	writeJSON(w, http.StatusOK, apiKeyStatus{Configured: ok, Source: src})
}

func (h *SettingsHandler) PutAPIKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"apiKey"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, errBadRequest, "Cuerpo de la petición inválido")
		return
	}
	if err := h.settings.SaveAPIKey(r.Context(), req.APIKey); err != nil {
		logger.GetLogger().Errorw("Failed to save API key", "error", err)
		writeJSONError(w, http.StatusInternalServerError, errInternal, "No se pudo guardar la API key")
		return
	}
	h.GetAPIKey(w, r)
}

func (h *SettingsHandler) DeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	if err := h.settings.SaveAPIKey(r.Context(), ""); err != nil {
		logger.GetLogger().Errorw("Failed to remove API key", "error", err)
		writeJSONError(w, http.StatusInternalServerError, errInternal, "No se pudo eliminar la API key")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
