package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"weather-lookup/internal/api"
)

type contextKey string

const APIKeyKey contextKey = "openweather_api_key"

// APIKeyRequired rejects requests with 401 while no OpenWeather key is
// configured, pointing the caller at the settings endpoint.
func APIKeyRequired(keys api.KeySource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keys.APIKey(r.Context())
			if key == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":   string(api.KindAuth),
					"message": api.ErrNoKey.Message,
					"hint":    "PUT /settings/api-key",
				})
				return
			}

			ctx := context.WithValue(r.Context(), APIKeyKey, key)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// HasAPIKey reports whether APIKeyRequired admitted the request.
func HasAPIKey(r *http.Request) bool {
	key, ok := r.Context().Value(APIKeyKey).(string)
	return ok && key != ""
}
