package search

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"weather-lookup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSuggester struct {
	calls   atomic.Int32
	delays  map[string]time.Duration
	results map[string][]models.Place
}

func (f *fakeSuggester) Suggest(ctx context.Context, text string, limit int) []models.Place {
	f.calls.Add(1)
	if d := f.delays[text]; d > 0 {
		time.Sleep(d)
	}
	return f.results[text]
}

type fakeHistory []models.Place

func (h fakeHistory) Recent(context.Context) []models.Place { return h }

func place(name, country string) models.Place {
	return models.Place{Name: name, Country: country}
}

func TestMerge_RecentMatchesFirstThenNewCandidates(t *testing.T) {
	recent := []models.Place{place("Paris", "FR"), place("Lima", "PE"), place("Parma", "IT")}
	candidates := []models.Place{place("Paris", "FR"), place("Paris", "US"), place("Parana", "AR")}

	got := Merge("PAR", recent, candidates)

	keys := make([]string, 0, len(got))
	for _, p := range got {
		keys = append(keys, p.Key())
	}
	assert.Equal(t, []string{"Paris|FR", "Parma|IT", "Paris|US", "Parana|AR"}, keys)
}

func TestMerge_NoMatches(t *testing.T) {
	got := Merge("zz", []models.Place{place("Lima", "PE")}, nil)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestLookup_BlankQueryReturnsRecentWithoutRequest(t *testing.T) {
	s := &fakeSuggester{}
	hist := fakeHistory{place("Lima", "PE")}

	res := Lookup(context.Background(), s, hist, "   ", 5)

	assert.Equal(t, int32(0), s.calls.Load())
	assert.Equal(t, []models.Place(hist), res.Places)
	assert.Equal(t, "", res.Query)
}

func TestLookup_MergesCandidates(t *testing.T) {
	s := &fakeSuggester{results: map[string][]models.Place{"li": {place("Lille", "FR")}}}
	hist := fakeHistory{place("Lima", "PE"), place("Oslo", "NO")}

	res := Lookup(context.Background(), s, hist, " li ", 5)

	require.Len(t, res.Places, 2)
	assert.Equal(t, "Lima", res.Places[0].Name)
	assert.Equal(t, "Lille", res.Places[1].Name)
	assert.Len(t, res.Recent, 2)
}

type collector struct {
	mu      sync.Mutex
	results []Result
	got     chan struct{}
}

func newCollector() *collector {
	return &collector{got: make(chan struct{}, 16)}
}

func (c *collector) deliver(r Result) {
	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
	c.got <- struct{}{}
}

func (c *collector) all() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Result(nil), c.results...)
}

func waitFor(t *testing.T, c *collector) {
	t.Helper()
	select {
	case <-c.got:
	case <-time.After(2 * time.Second):
		t.Fatal("no suggestions delivered")
	}
}

func TestController_DebouncesKeystrokes(t *testing.T) {
	s := &fakeSuggester{results: map[string][]models.Place{"mad": {place("Madrid", "ES")}}}
	col := newCollector()
	c := NewController(context.Background(), s, fakeHistory{}, 20*time.Millisecond, col.deliver)
	defer c.Close()

	c.Input("m")
	c.Input("ma")
	c.Input("mad")
	waitFor(t, col)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(1), s.calls.Load())
	res := col.all()
	require.Len(t, res, 1)
	assert.Equal(t, "mad", res[0].Query)
	assert.Equal(t, uint64(3), res[0].Seq)
	assert.Equal(t, "Madrid", res[0].Places[0].Name)
}

func TestController_StaleResultIsDropped(t *testing.T) {
	s := &fakeSuggester{
		delays: map[string]time.Duration{"ma": 150 * time.Millisecond},
		results: map[string][]models.Place{
			"ma":  {place("Managua", "NI")},
			"mad": {place("Madrid", "ES")},
		},
	}
	col := newCollector()
	c := NewController(context.Background(), s, fakeHistory{}, 10*time.Millisecond, col.deliver)

	c.Input("ma")
	time.Sleep(40 * time.Millisecond) // first lookup is now in flight
	c.Input("mad")
	waitFor(t, col)
	time.Sleep(200 * time.Millisecond) // let the slow lookup finish

	c.Close()
	res := col.all()
	require.Len(t, res, 1)
	assert.Equal(t, "mad", res[0].Query)
	assert.Equal(t, int32(2), s.calls.Load())
}

func TestController_NothingDeliveredAfterClose(t *testing.T) {
	s := &fakeSuggester{}
	col := newCollector()
	c := NewController(context.Background(), s, fakeHistory{}, 20*time.Millisecond, col.deliver)

	c.Input("rome")
	c.Close()
	c.Input("roma")
	time.Sleep(60 * time.Millisecond)

	assert.Empty(t, col.all())
	assert.Equal(t, int32(0), s.calls.Load())
}

func TestNewController_DefaultQuiet(t *testing.T) {
	c := NewController(context.Background(), &fakeSuggester{}, fakeHistory{}, 0, func(Result) {})
	defer c.Close()
	assert.NotNil(t, c.debouncer)
}
