// Package search turns keystrokes into debounced, merged place suggestions.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"weather-lookup/internal/api"
	"weather-lookup/internal/debounce"
	"weather-lookup/internal/logger"
	"weather-lookup/internal/models"

	"go.uber.org/zap"
)

const DefaultQuiet = 350 * time.Millisecond

// Suggester looks up place candidates; *api.Client satisfies it.
type Suggester interface {
	Suggest(ctx context.Context, text string, limit int) []models.Place
}

// HistorySource provides the recent selections; *history.Store satisfies it.
type HistorySource interface {
	Recent(ctx context.Context) []models.Place
}

// Result is one suggestion list for a query.
type Result struct {
	Query  string         `json:"query"`
	Seq    uint64         `json:"seq"`
	Recent []models.Place `json:"recent"`
	Places []models.Place `json:"places"`
}

// Lookup builds the merged suggestion list for text. A blank query returns
// the recent list only and makes no request.
func Lookup(ctx context.Context, suggester Suggester, hist HistorySource, text string, limit int) Result {
	q := strings.TrimSpace(text)
	recent := hist.Recent(ctx)
	if q == "" {
		return Result{Query: q, Recent: recent, Places: recent}
	}
	candidates := suggester.Suggest(ctx, q, limit)
	return Result{Query: q, Recent: recent, Places: Merge(q, recent, candidates)}
}

// Merge lists recent entries whose name contains q (case-insensitive) first,
// then candidates not already listed by name and country.
func Merge(q string, recent, candidates []models.Place) []models.Place {
	needle := strings.ToLower(strings.TrimSpace(q))
	out := make([]models.Place, 0, len(recent)+len(candidates))
	seen := make(map[string]bool, len(recent)+len(candidates))
	for _, p := range recent {
		if !strings.Contains(strings.ToLower(p.Name), needle) || seen[p.Key()] {
			continue
		}
		seen[p.Key()] = true
		out = append(out, p)
	}
	for _, p := range candidates {
		if seen[p.Key()] {
			continue
		}
		seen[p.Key()] = true
		out = append(out, p)
	}
	return out
}

type input struct {
	text string
	seq  uint64
}

// Controller debounces keystrokes and delivers results in request order.
// In-flight lookups are not cancelled; a result older than the last delivered
// one is dropped instead.
type Controller struct {
	ctx       context.Context
	suggester Suggester
	hist      HistorySource
	deliver   func(Result)
	debouncer *debounce.Debouncer[input]
	log       *zap.SugaredLogger

	mu        sync.Mutex
	seq       uint64
	delivered uint64
	closed    bool
	wg        sync.WaitGroup
}

func NewController(ctx context.Context, suggester Suggester, hist HistorySource, quiet time.Duration, deliver func(Result)) *Controller {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	c := &Controller{
		ctx:       ctx,
		suggester: suggester,
		hist:      hist,
		deliver:   deliver,
		log:       logger.GetLogger(),
	}
	c.debouncer = debounce.New(quiet, c.fire)
	return c
}

// Input records a keystroke. Only the text present after the quiet period is looked up.
func (c *Controller) Input(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.seq++
	in := input{text: text, seq: c.seq}
	c.mu.Unlock()
	c.debouncer.Trigger(in)
}

// Close stops pending lookups and waits for in-flight ones to finish.
// Nothing is delivered after Close returns.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.debouncer.Stop()
	c.wg.Wait()
}

func (c *Controller) fire(in input) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		res := Lookup(c.ctx, c.suggester, c.hist, in.text, api.MaxSuggestions)
		res.Seq = in.seq

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || in.seq <= c.delivered {
			c.log.Debugw("Dropping stale suggestions", "query", res.Query, "seq", in.seq, "delivered", c.delivered)
			return
		}
		c.delivered = in.seq
		c.deliver(res)
	}()
}
