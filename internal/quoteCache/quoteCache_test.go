package quoteCache

import (
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_FreshnessWindow(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := New(clock, time.Minute)

	quote := model.Quote{Symbol: "AAPL", Price: decimal.NewFromInt(190), FetchedAt: clock.Now()}
	cache.Put("AAPL", quote)

	got, ok := cache.Get("aapl")
	require.True(t, ok)
	assert.Equal(t, quote, got)

	clock.Advance(59 * time.Second)
	_, ok = cache.Get("AAPL")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = cache.Get("AAPL")
	assert.False(t, ok, "entry must expire once the window has elapsed")
}

func TestCache_IgnoresInvalidQuotes(t *testing.T) {
	cache := New(clockwork.NewFakeClock(), time.Minute)

	cache.Put("ZERO", model.Quote{Symbol: "ZERO", Price: decimal.Zero})
	cache.Put("NEG", model.Quote{Symbol: "NEG", Price: decimal.NewFromInt(-1)})

	_, ok := cache.Get("ZERO")
	assert.False(t, ok)
	_, ok = cache.Get("NEG")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestCache_LastWriteWins(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := New(clock, time.Minute)

	cache.Put("MC.PA", model.Quote{Symbol: "MC.PA", Price: decimal.NewFromInt(700)})
	cache.Put("MC.PA", model.Quote{Symbol: "MC.PA", Price: decimal.NewFromInt(710)})

	got, ok := cache.Get("MC.PA")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(710).Equal(got.Price))
	assert.Equal(t, clock.Now(), got.FetchedAt)
}

func TestCache_UnknownTickerIsMiss(t *testing.T) {
	cache := New(clockwork.NewFakeClock(), 0)
	_, ok := cache.Get("NOPE")
	assert.False(t, ok)
}
