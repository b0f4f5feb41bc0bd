package handlers

import (
	"net/http"

	"weather-lookup/internal/history"
	"weather-lookup/internal/models"
)

type HistoryHandler struct {
	history *history.Store
}

func NewHistoryHandler(store *history.Store) *HistoryHandler {
	return &HistoryHandler{history: store}
}

func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recent":  h.history.Recent(r.Context()),
		"history": h.history.History(r.Context()),
	})
}

// RecordSelection stores a place picked on the client without a weather lookup.
func (h *HistoryHandler) RecordSelection(w http.ResponseWriter, r *http.Request) {
	var place models.Place
	if err := decodeJSON(r, &place); err != nil {
		writeJSONError(w, http.StatusBadRequest, errBadRequest, "Cuerpo de la petición inválido")
		return
	}
	if !h.history.RecordSelection(r.Context(), place) {
		writeJSONError(w, http.StatusBadRequest, errBadRequest, "El lugar necesita un nombre")
		return
	}
	h.GetHistory(w, r)
}

func (h *HistoryHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.history.ClearAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
