package filter

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/itsderek23/subtle/internal/logging"
)

// DefaultDebounce is the quiet period a query must survive before a lookup
// is issued.
const DefaultDebounce = 300 * time.Millisecond

// Searcher looks up the message indices matching a query. Implementations
// are external collaborators (HTTP search endpoint, in-process scan).
type Searcher func(ctx context.Context, query string) ([]int, error)

// Index debounces query issuance and holds the current match set. Each
// keystroke rearms a single timer slot; an empty query clears the filter
// immediately without issuing a lookup. Every issued lookup carries a
// generation number and commits its result only if it is still the latest,
// so a slow stale response can never overwrite a newer one.
type Index struct {
	search   Searcher
	debounce time.Duration
	logger   *logrus.Entry

	// OnUpdate, when set, is invoked after each match-set change.
	OnUpdate func()

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	matches MatchSet
}

// NewIndex creates a filter index around the given searcher. A non-positive
// debounce falls back to DefaultDebounce.
func NewIndex(search Searcher, debounce time.Duration) *Index {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Index{
		search:   search,
		debounce: debounce,
		logger:   logging.NewLogger("filter.index"),
	}
}

// SetQuery registers a keystroke: it cancels any pending lookup and
// reschedules after the quiet period. Blank queries clear the filter
// immediately.
func (ix *Index) SetQuery(query string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.gen++
	if ix.timer != nil {
		ix.timer.Stop()
		ix.timer = nil
	}

	if strings.TrimSpace(query) == "" {
		ix.matches = nil
		ix.notifyLocked()
		return
	}

	gen := ix.gen
	ix.timer = time.AfterFunc(ix.debounce, func() {
		ix.run(gen, query)
	})
}

// Clear drops the active filter and any pending lookup.
func (ix *Index) Clear() {
	ix.SetQuery("")
}

// Matches returns the current match set; nil means no active filter.
func (ix *Index) Matches() MatchSet {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.matches
}

func (ix *Index) run(gen uint64, query string) {
	indices, err := ix.search(context.Background(), query)
	if err != nil {
		ix.logger.WithError(err).WithField("query", query).Warn("Search lookup failed")
		indices = nil
	}
	set := NewMatchSet(indices)

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if gen != ix.gen {
		// A newer keystroke superseded this lookup while it was in flight.
		return
	}
	ix.matches = set
	ix.notifyLocked()
}

func (ix *Index) notifyLocked() {
	if ix.OnUpdate != nil {
		ix.OnUpdate()
	}
}
