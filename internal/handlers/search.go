package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"weather-lookup/internal/api"
	"weather-lookup/internal/logger"
	"weather-lookup/internal/search"

	"github.com/gorilla/websocket"
)

type SearchHandler struct {
	suggester search.Suggester
	history   search.HistorySource
	quiet     time.Duration
}

func NewSearchHandler(suggester search.Suggester, history search.HistorySource, quiet time.Duration) *SearchHandler {
	return &SearchHandler{suggester: suggester, history: history, quiet: quiet}
}

// Suggestions answers one query immediately, without debouncing.
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", api.MaxSuggestions)
	res := search.Lookup(r.Context(), h.suggester, h.history, r.URL.Query().Get("q"), limit)
	writeJSON(w, http.StatusOK, res)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// liveInput is one keystroke from the client.
type liveInput struct {
	Text string `json:"text"`
}

type liveMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	*search.Result
}

// LiveSearch streams debounced suggestions over a websocket. The client sends
// {"text": "..."} on every keystroke and receives the latest merged list.
func (h *SearchHandler) LiveSearch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.GetLogger().Warnw("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	s := &liveSession{conn: conn}
	ctrl := search.NewController(ctx, h.suggester, h.history, h.quiet, func(res search.Result) {
		s.send(liveMessage{Type: "suggestions", Result: &res})
	})
	defer ctrl.Close()

	s.run(ctrl)
}

type liveSession struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (s *liveSession) run(ctrl *search.Controller) {
	log := logger.GetLogger()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Infow("Live search connection closed", "error", err)
			}
			return
		}

		var in liveInput
		if err := json.Unmarshal(data, &in); err != nil {
			s.send(liveMessage{Type: "error", Message: "Formato de mensaje inválido"})
			continue
		}
		ctrl.Input(in.Text)
	}
}

func (s *liveSession) send(msg liveMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.WriteJSON(msg)
}
