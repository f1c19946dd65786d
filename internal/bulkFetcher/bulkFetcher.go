// Package bulkFetcher resolves many tickers through the gateway in paced batches.
package bulkFetcher

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/utils"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize  = 5
	defaultBatchPause = 200 * time.Millisecond
)

type QuoteFetcher interface {
	FetchQuote(ctx context.Context, ticker string) (model.Quote, error)
}

type Fetcher struct {
	gateway   QuoteFetcher
	clock     clockwork.Clock
	batchSize int
	pause     time.Duration
}

func New(gateway QuoteFetcher, clock clockwork.Clock, batchSize int, pause time.Duration) *Fetcher {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if pause < 0 {
		pause = defaultBatchPause
	}
	return &Fetcher{gateway: gateway, clock: clock, batchSize: batchSize, pause: pause}
}

// FetchMany returns quotes keyed by normalized ticker. Tickers whose quote is
// unavailable are omitted. Batches run one after another with a pause between
// them; requests inside a batch run concurrently.
func (f *Fetcher) FetchMany(ctx context.Context, tickers []string) map[string]model.Quote {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "bulkFetcher.FetchMany"

	unique := normalize(tickers)
	res := make(map[string]model.Quote, len(unique))
	if len(unique) == 0 {
		return res
	}

	slog.Debug("FetchMany start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("tickers", len(unique)))

	var mu sync.Mutex
	for start := 0; start < len(unique); start += f.batchSize {
		if start > 0 && !f.sleep(ctx) {
			slog.Warn("FetchMany interrupted", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", ctx.Err().Error()))
			break
		}

		end := min(start+f.batchSize, len(unique))

		// errors never cancel siblings, so a plain group is enough
		var g errgroup.Group
		for _, ticker := range unique[start:end] {
			g.Go(func() error {
				quote, err := f.gateway.FetchQuote(ctx, ticker)
				if err != nil {
					slog.Debug("quote unavailable", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker), slog.String("err", err.Error()))
					return nil
				}
				mu.Lock()
				res[ticker] = quote
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}

	slog.Debug("FetchMany finished", slog.String("rqID", rqID), slog.String("op", op), slog.Int("resolved", len(res)))

	return res
}

func (f *Fetcher) sleep(ctx context.Context) bool {
	if f.pause == 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-f.clock.After(f.pause):
		return true
	}
}

func normalize(tickers []string) []string {
	seen := make(map[string]struct{}, len(tickers))
	res := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		res = append(res, t)
	}
	return res
}
