// Package quoteCache keeps the last fetched quote per ticker for a fixed freshness window.
package quoteCache

import (
	"strings"
	"sync"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/jonboulle/clockwork"
)

const DefaultFreshness = 60 * time.Second

// Cache is unbounded: the symbol universe of a single user is small.
type Cache struct {
	mu        sync.RWMutex
	clock     clockwork.Clock
	freshness time.Duration
	quotes    map[string]model.Quote
}

func New(clock clockwork.Clock, freshness time.Duration) *Cache {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &Cache{
		clock:     clock,
		freshness: freshness,
		quotes:    make(map[string]model.Quote),
	}
}

// Get returns the cached quote only while it is younger than the freshness window.
// A stale entry is reported as a miss.
func (c *Cache) Get(ticker string) (model.Quote, bool) {
	c.mu.RLock()
	quote, ok := c.quotes[key(ticker)]
	c.mu.RUnlock()

	if !ok || c.clock.Since(quote.FetchedAt) >= c.freshness {
		return model.Quote{}, false
	}

	return quote, true
}

// Put overwrites the entry for ticker. Quotes without a usable price are ignored.
func (c *Cache) Put(ticker string, quote model.Quote) {
	if !quote.IsValid() {
		return
	}
	if quote.FetchedAt.IsZero() {
		quote.FetchedAt = c.clock.Now()
	}

	c.mu.Lock()
	c.quotes[key(ticker)] = quote
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.quotes)
}

func key(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
