// Package quoteGateway resolves quotes through an ordered chain of providers backed by a cache.
package quoteGateway

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/utils"
	"github.com/jonboulle/clockwork"
)

// ErrUnavailable is returned when no provider could produce a usable price.
var ErrUnavailable = errors.New("quote unavailable")

const defaultTimeout = 5 * time.Second

type QuoteProvider interface {
	Name() string
	GetQuote(ctx context.Context, ticker string) (model.Quote, error)
}

type Cache interface {
	Get(ticker string) (model.Quote, bool)
	Put(ticker string, quote model.Quote)
}

type ProviderStats struct {
	Success int64 `json:"success"`
	Errors  int64 `json:"errors"`
}

type counters struct {
	success atomic.Int64
	errors  atomic.Int64
}

type Gateway struct {
	providers []QuoteProvider
	cache     Cache
	clock     clockwork.Clock
	timeout   time.Duration
	counters  map[string]*counters
}

// New builds a gateway that tries providers in the given order.
func New(cache Cache, clock clockwork.Clock, timeout time.Duration, providers ...QuoteProvider) *Gateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := make(map[string]*counters, len(providers))
	for _, p := range providers {
		c[p.Name()] = &counters{}
	}

	return &Gateway{
		providers: providers,
		cache:     cache,
		clock:     clock,
		timeout:   timeout,
		counters:  c,
	}
}

// FetchQuote returns a fresh cached quote or asks providers in order until one returns a usable price.
// Provider failures are not returned, the caller only sees ErrUnavailable when every provider failed.
func (g *Gateway) FetchQuote(ctx context.Context, ticker string) (model.Quote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Gateway.FetchQuote"

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return model.Quote{}, ErrUnavailable
	}

	if quote, ok := g.cache.Get(ticker); ok {
		slog.Debug("quote cache hit", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker))
		return quote, nil
	}

	for _, provider := range g.providers {
		quote, err := g.callProvider(ctx, provider, ticker)
		if err != nil {
			g.counters[provider.Name()].errors.Add(1)
			slog.Warn(
				"provider failed, trying next",
				slog.String("rqID", rqID),
				slog.String("op", op),
				slog.String("provider", provider.Name()),
				slog.String("ticker", ticker),
				slog.String("err", err.Error()),
			)
			continue
		}

		g.counters[provider.Name()].success.Add(1)
		g.cache.Put(ticker, quote)

		slog.Debug("quote fetched", slog.String("rqID", rqID), slog.String("op", op), slog.String("provider", provider.Name()), slog.String("ticker", ticker))
		return quote, nil
	}

	slog.Warn("all quote providers failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker))

	return model.Quote{}, ErrUnavailable
}

func (g *Gateway) callProvider(ctx context.Context, provider QuoteProvider, ticker string) (model.Quote, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	quote, err := provider.GetQuote(callCtx, ticker)
	if err != nil {
		return model.Quote{}, err
	}

	if !quote.IsValid() {
		return model.Quote{}, errors.New("no usable price in provider response")
	}

	return g.normalize(provider, ticker, quote), nil
}

func (g *Gateway) normalize(provider QuoteProvider, ticker string, quote model.Quote) model.Quote {
	quote.Symbol = ticker
	quote.Provider = provider.Name()
	quote.FetchedAt = g.clock.Now()
	if quote.Name == "" {
		quote.Name = ticker
	}
	if quote.Currency == "" {
		quote.Currency = "USD"
	}
	return quote
}

// Stats returns a snapshot of the per-provider success and error counters.
func (g *Gateway) Stats() map[string]ProviderStats {
	out := make(map[string]ProviderStats, len(g.counters))
	for name, c := range g.counters {
		out[name] = ProviderStats{Success: c.success.Load(), Errors: c.errors.Load()}
	}
	return out
}
