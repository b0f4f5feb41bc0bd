package handlers

import (
	"net/http"

	"weather-lookup/internal/models"

	"github.com/go-chi/chi/v5"
)

// Icon redirects to the OpenWeather image for a condition code.
func Icon(w http.ResponseWriter, r *http.Request) {
	size := r.URL.Query().Get("size")
	switch size {
	case "", "2x", "4x":
	default:
		writeJSONError(w, http.StatusBadRequest, errBadRequest, "Tamaño de icono inválido")
		return
	}
	http.Redirect(w, r, models.IconURL(chi.URLParam(r, "code"), size), http.StatusFound)
}
