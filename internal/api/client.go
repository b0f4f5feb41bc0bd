// Package api talks to the OpenWeather current-weather, forecast and geocoding endpoints.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weather-lookup/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	weatherPath  = "/data/2.5/weather"
	forecastPath = "/data/2.5/forecast"
	geocodePath  = "/geo/1.0/direct"
)

// KeySource yields the API key for each request, so a key saved at runtime
// takes effect without restarting.
type KeySource interface {
	APIKey(ctx context.Context) string
}

// StaticKey is a fixed API key.
type StaticKey string

func (k StaticKey) APIKey(context.Context) string { return string(k) }

type Options struct {
	BaseURL           string
	Lang              string
	Units             string
	RequestsPerSecond float64
	Burst             int
	HTTPClient        *http.Client
}

type Client struct {
	baseURL string
	lang    string
	units   string
	keys    KeySource
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.SugaredLogger
}

func NewClient(keys KeySource, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.openweathermap.org"
	}
	if opts.Lang == "" {
		opts.Lang = "es"
	}
	if opts.Units == "" {
		opts.Units = "metric"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}

	return &Client{
		baseURL: opts.BaseURL,
		lang:    opts.Lang,
		units:   opts.Units,
		keys:    keys,
		http:    opts.HTTPClient,
		limiter: rate.NewLimiter(limit, opts.Burst),
		log:     logger.GetLogger(),
	}
}

// response is a fully read upstream reply.
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// get issues a GET with the API key appended. It fails with ErrNoKey before
// touching the network when no key is configured.
func (c *Client) get(ctx context.Context, path string, params url.Values) (response, error) {
	key := c.keys.APIKey(ctx)
	if key == "" {
		return response{}, ErrNoKey
	}
	params.Set("appid", key)

	if err := c.limiter.Wait(ctx); err != nil {
		return response{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return response{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, fmt.Errorf("failed to read response body: %w", err)
	}

	c.log.Debugw("OpenWeather response", "path", path, "status", resp.StatusCode, "bytes", len(body))
	return response{status: resp.StatusCode, body: body}, nil
}

// upstreamMessage extracts {"message": "..."} from an error body, if any.
func upstreamMessage(body []byte) string {
	var errResp struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &errResp)
	return errResp.Message
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
