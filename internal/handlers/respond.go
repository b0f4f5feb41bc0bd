package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"weather-lookup/internal/api"
	"weather-lookup/internal/logger"
	"weather-lookup/internal/services"
)

const (
	errBadRequest = "bad_request"
	errDuplicate  = "duplicate"
	errInternal   = "internal"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]string{"error": kind, "message": message})
}

// writeError maps lookup and service errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrAlreadyShown) {
		writeJSONError(w, http.StatusConflict, errDuplicate, "Esta ciudad ya está en la lista")
		return
	}

	var le *api.LookupError
	if errors.As(err, &le) {
		writeJSONError(w, statusFor(le.Kind), string(le.Kind), le.Message)
		return
	}

	logger.GetLogger().Errorw("Unhandled error", "error", err)
	writeJSONError(w, http.StatusInternalServerError, errInternal, "Error interno. Intenta de nuevo.")
}

func statusFor(kind api.ErrorKind) int {
	switch kind {
	case api.KindEmptyQuery:
		return http.StatusBadRequest
	case api.KindNotFound:
		return http.StatusNotFound
	case api.KindAuth:
		return http.StatusUnauthorized
	case api.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}

func parseIntQuery(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
