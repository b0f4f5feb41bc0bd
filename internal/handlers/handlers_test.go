package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"weather-lookup/internal/api"
	"weather-lookup/internal/history"
	"weather-lookup/internal/models"
	"weather-lookup/internal/services"
	"weather-lookup/internal/settings"
	"weather-lookup/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWeather struct {
	records map[string]models.WeatherRecord
	err     error
}

func (f *fakeWeather) WeatherByName(_ context.Context, city string) (models.WeatherRecord, error) {
	if strings.TrimSpace(city) == "" {
		return models.WeatherRecord{}, api.ErrEmptyQuery
	}
	if f.err != nil {
		return models.WeatherRecord{}, f.err
	}
	rec, ok := f.records[city]
	if !ok {
		return models.WeatherRecord{}, api.ErrNotFound
	}
	return rec, nil
}

func (f *fakeWeather) WeatherByCoords(_ context.Context, lat, lon float64) (models.WeatherRecord, error) {
	for _, rec := range f.records {
		if rec.Lat == lat && rec.Lon == lon {
			return rec, nil
		}
	}
	return models.WeatherRecord{}, api.ErrNotFound
}

func (f *fakeWeather) Forecast(context.Context, float64, float64) []models.ForecastSample {
	return []models.ForecastSample{}
}

type fakeSuggester map[string][]models.Place

func (f fakeSuggester) Suggest(_ context.Context, text string, limit int) []models.Place {
	return f[text]
}

type testEnv struct {
	router  chi.Router
	history *history.Store
}

func newTestEnv(t *testing.T, client *fakeWeather) *testEnv {
	t.Helper()
	kv := storage.NewMemoryStore()
	hist := history.New(kv)
	svc := services.NewWeatherService(client, hist, nil, "test")

	wh := NewWeatherHandler(svc)
	hh := NewHistoryHandler(hist)
	sh := NewSettingsHandler(settings.New(kv, ""))
	search := NewSearchHandler(fakeSuggester{"par": {{Name: "Paris", Country: "FR"}}}, hist, 50*time.Millisecond)

	r := chi.NewRouter()
	r.Get("/cities", wh.ListCities)
	r.Post("/cities", wh.AddCity)
	r.Delete("/cities/{id}", wh.RemoveCity)
	r.Get("/suggestions", search.Suggestions)
	r.Get("/ws/search", search.LiveSearch)
	r.Get("/history", hh.GetHistory)
	r.Post("/history", hh.RecordSelection)
	r.Delete("/history", hh.ClearHistory)
	r.Get("/settings/api-key", sh.GetAPIKey)
	r.Put("/settings/api-key", sh.PutAPIKey)
	r.Delete("/settings/api-key", sh.DeleteAPIKey)
	r.Get("/icons/{code}", Icon)
	return &testEnv{router: r, history: hist}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

var madrid = models.WeatherRecord{ID: 3117735, Name: "Madrid", Country: "ES", Temp: 18, Lat: 40.42, Lon: -3.7}

func TestAddCity_ByQuery(t *testing.T) {
	env := newTestEnv(t, &fakeWeather{records: map[string]models.WeatherRecord{"Madrid": madrid}})

	rec := env.do(http.MethodPost, "/cities", `{"query":"Madrid"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var city models.City
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &city))
	assert.Equal(t, "Madrid", city.Name)
	assert.NotNil(t, city.Forecast)

	list := env.do(http.MethodGet, "/cities", "")
	assert.Contains(t, list.Body.String(), `"name":"Madrid"`)
	assert.Len(t, env.history.Recent(context.Background()), 1)
}

func TestAddCity_ByPlace(t *testing.T) {
	env := newTestEnv(t, &fakeWeather{records: map[string]models.WeatherRecord{"Madrid": madrid}})

	rec := env.do(http.MethodPost, "/cities", `{"name":"Madrid","country":"ES","lat":40.42,"lon":-3.7}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAddCity_ErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		client *fakeWeather
		body   string
		status int
		kind   string
	}{
		{"empty query", &fakeWeather{}, `{"query":"  "}`, http.StatusBadRequest, "empty_query"},
		{"not found", &fakeWeather{}, `{"query":"Atlantis"}`, http.StatusNotFound, "not_found"},
		{"invalid key", &fakeWeather{err: api.ErrAuth}, `{"query":"Madrid"}`, http.StatusUnauthorized, "invalid_key"},
		{"rate limited", &fakeWeather{err: api.ErrRateLimited}, `{"query":"Madrid"}`, http.StatusTooManyRequests, "rate_limited"},
		{"server", &fakeWeather{err: &api.LookupError{Kind: api.KindServer, Status: 503, Message: "Error del servidor"}}, `{"query":"Madrid"}`, http.StatusBadGateway, "server_error"},
		{"bad body", &fakeWeather{}, `{`, http.StatusBadRequest, "bad_request"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, tc.client)
			rec := env.do(http.MethodPost, "/cities", tc.body)

			assert.Equal(t, tc.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tc.kind, body["error"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestAddCity_DuplicateIsConflict(t *testing.T) {
	env := newTestEnv(t, &fakeWeather{records: map[string]models.WeatherRecord{"Madrid": madrid}})

	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/cities", `{"query":"Madrid"}`).Code)
	rec := env.do(http.MethodPost, "/cities", `{"query":"Madrid"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate", decodeError(t, rec)["error"])
}

func TestRemoveCity(t *testing.T) {
	env := newTestEnv(t, &fakeWeather{records: map[string]models.WeatherRecord{"Madrid": madrid}})
	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/cities", `{"query":"Madrid"}`).Code)

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodDelete, "/cities/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, "/cities/1", "").Code)
	assert.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, "/cities/3117735", "").Code)
	assert.Contains(t, env.do(http.MethodGet, "/cities", "").Body.String(), `"cities":[]`)
}

func TestSuggestions(t *testing.T) {
	env := newTestEnv(t, &fakeWeather{})
	env.history.RecordSelection(context.Background(), models.Place{Name: "Parma", Country: "IT"})

	rec := env.do(http.MethodGet, "/suggestions?q=par", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Places []models.Place `json:"places"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Places, 2)
	assert.Equal(t, "Parma", res.Places[0].Name)
	assert.Equal(t, "Paris", res.Places[1].Name)
}

func TestHistoryEndpoints(t *testing.T) {
	env := newTestEnv(t, &fakeWeather{})

	rec := env.do(http.MethodPost, "/history", `{"name":"Lima","country":"PE"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"recent":[{"name":"Lima","country":"PE"}]`)

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPost, "/history", `{"country":"PE"}`).Code)

	assert.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, "/history", "").Code)
	assert.JSONEq(t, `{"recent":[],"history":[]}`, env.do(http.MethodGet, "/history", "").Body.String())
}

func TestSettingsEndpoints(t *testing.T) {
	env := newTestEnv(t, &fakeWeather{})

	assert.JSONEq(t, `{"configured":false,"source":""}`, env.do(http.MethodGet, "/settings/api-key", "").Body.String())

	rec := env.do(http.MethodPut, "/settings/api-key", `{"apiKey":"  abc123  "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"configured":true,"source":"stored"}`, rec.Body.String())

	assert.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, "/settings/api-key", "").Code)
	assert.JSONEq(t, `{"configured":false,"source":""}`, env.do(http.MethodGet, "/settings/api-key", "").Body.String())
}

func TestIcon(t *testing.T) {
	env := newTestEnv(t, &fakeWeather{})

	rec := env.do(http.MethodGet, "/icons/10d", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://openweathermap.org/img/wn/10d@2x.png", rec.Header().Get("Location"))

	rec = env.do(http.MethodGet, "/icons/01n?size=4x", "")
	assert.Equal(t, "https://openweathermap.org/img/wn/01n@4x.png", rec.Header().Get("Location"))

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/icons/01n?size=9x", "").Code)
}

func TestLiveSearch(t *testing.T) {
	env := newTestEnv(t, &fakeWeather{})
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/search"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"text": "p"}))
	require.NoError(t, conn.WriteJSON(map[string]string{"text": "pa"}))
	require.NoError(t, conn.WriteJSON(map[string]string{"text": "par"}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg struct {
		Type   string         `json:"type"`
		Query  string         `json:"query"`
		Seq    uint64         `json:"seq"`
		Places []models.Place `json:"places"`
	}
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, "suggestions", msg.Type)
	assert.Equal(t, "par", msg.Query)
	assert.Equal(t, uint64(3), msg.Seq)
	require.Len(t, msg.Places, 1)
	assert.Equal(t, "Paris", msg.Places[0].Name)
}

func TestLiveSearch_InvalidMessage(t *testing.T) {
	env := newTestEnv(t, &fakeWeather{})
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/search"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg["type"])
}
