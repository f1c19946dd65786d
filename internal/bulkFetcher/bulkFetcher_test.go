package bulkFetcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	failing  map[string]bool
	delay    time.Duration
	calls    atomic.Int64
	inflight atomic.Int64
	peak     atomic.Int64

	mu     sync.Mutex
	called []string
}

func (g *fakeGateway) FetchQuote(ctx context.Context, ticker string) (model.Quote, error) {
	g.calls.Add(1)
	cur := g.inflight.Add(1)
	defer g.inflight.Add(-1)
	for {
		peak := g.peak.Load()
		if cur <= peak || g.peak.CompareAndSwap(peak, cur) {
			break
		}
	}

	g.mu.Lock()
	g.called = append(g.called, ticker)
	g.mu.Unlock()

	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	if g.failing[ticker] {
		return model.Quote{}, errors.New("unavailable")
	}
	return model.Quote{Symbol: ticker, Price: decimal.NewFromInt(10)}, nil
}

func tickers(n int) []string {
	res := make([]string, 0, n)
	for i := range n {
		res = append(res, fmt.Sprintf("T%02d", i))
	}
	return res
}

func TestFetchMany_BatchesArePaced(t *testing.T) {
	clock := clockwork.NewFakeClock()
	gw := &fakeGateway{}
	f := New(gw, clock, 5, 200*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan map[string]model.Quote)
	go func() { done <- f.FetchMany(ctx, tickers(12)) }()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	assert.EqualValues(t, 5, gw.calls.Load())

	clock.Advance(200 * time.Millisecond)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	assert.EqualValues(t, 10, gw.calls.Load())

	clock.Advance(200 * time.Millisecond)
	res := <-done

	assert.Len(t, res, 12)
	assert.EqualValues(t, 12, gw.calls.Load())
}

func TestFetchMany_ConcurrencyBoundedByBatchSize(t *testing.T) {
	gw := &fakeGateway{delay: 20 * time.Millisecond}
	f := New(gw, clockwork.NewRealClock(), 5, 0)

	res := f.FetchMany(context.Background(), tickers(13))

	assert.Len(t, res, 13)
	assert.LessOrEqual(t, gw.peak.Load(), int64(5))
	assert.Greater(t, gw.peak.Load(), int64(1))
}

func TestFetchMany_FailuresAreIsolated(t *testing.T) {
	gw := &fakeGateway{failing: map[string]bool{"T01": true, "T03": true}}
	f := New(gw, clockwork.NewRealClock(), 5, 0)

	res := f.FetchMany(context.Background(), tickers(5))

	assert.Len(t, res, 3)
	assert.NotContains(t, res, "T01")
	assert.NotContains(t, res, "T03")
	assert.Equal(t, "T04", res["T04"].Symbol)
}

func TestFetchMany_DeduplicatesAndNormalizes(t *testing.T) {
	gw := &fakeGateway{}
	f := New(gw, clockwork.NewRealClock(), 5, 0)

	res := f.FetchMany(context.Background(), []string{"aapl", " AAPL ", "msft", ""})

	assert.Len(t, res, 2)
	assert.Contains(t, res, "AAPL")
	assert.Contains(t, res, "MSFT")
	assert.EqualValues(t, 2, gw.calls.Load())
}

func TestFetchMany_Empty(t *testing.T) {
	gw := &fakeGateway{}
	f := New(gw, clockwork.NewRealClock(), 5, 0)

	res := f.FetchMany(context.Background(), nil)

	assert.NotNil(t, res)
	assert.Empty(t, res)
	assert.Zero(t, gw.calls.Load())
}

func TestFetchMany_CancelledBetweenBatches(t *testing.T) {
	clock := clockwork.NewFakeClock()
	gw := &fakeGateway{}
	f := New(gw, clock, 5, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan map[string]model.Quote)
	go func() { done <- f.FetchMany(ctx, tickers(8)) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	require.NoError(t, clock.BlockUntilContext(waitCtx, 1))
	cancel()

	res := <-done
	assert.Len(t, res, 5)
}
