// Package searchResolver turns free text or an ISIN into ranked ticker candidates.
package searchResolver

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/KotFed0t/portfolio_dashboard/internal/isinResolver"
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/utils"
)

const MaxResults = 15

type SearchProvider interface {
	Name() string
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

type QuoteFetcher interface {
	FetchQuote(ctx context.Context, ticker string) (model.Quote, error)
}

type Resolver struct {
	quotes    QuoteFetcher
	providers []SearchProvider
	catalog   []model.SearchResult
}

// New builds a resolver asking providers in order until one returns results.
func New(quotes QuoteFetcher, providers ...SearchProvider) *Resolver {
	return &Resolver{quotes: quotes, providers: providers, catalog: catalog}
}

// Search never fails: provider errors degrade to the local catalog and an
// unknown ISIN yields an empty list.
func (r *Resolver) Search(ctx context.Context, query string) []model.SearchResult {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "searchResolver.Search"

	query = strings.TrimSpace(query)
	if query == "" {
		return []model.SearchResult{}
	}

	slog.Debug("Search start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))

	if isinResolver.IsValidISIN(query) {
		return r.searchISIN(ctx, query)
	}

	merged := merge(r.catalog, r.fromProviders(ctx, query))
	res := rank(merged, query)

	slog.Debug("Search finished", slog.String("rqID", rqID), slog.String("op", op), slog.Int("results", len(res)))

	return res
}

func (r *Resolver) searchISIN(ctx context.Context, isin string) []model.SearchResult {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "searchResolver.searchISIN"

	isin = strings.ToUpper(isin)
	symbol, ok := isinResolver.IsinToSymbol(isin)
	if !ok {
		slog.Debug("unknown isin", slog.String("rqID", rqID), slog.String("op", op), slog.String("isin", isin))
		return []model.SearchResult{}
	}

	res := model.SearchResult{
		Symbol:  symbol,
		Name:    symbol,
		ISIN:    isin,
		Country: isinResolver.CountryFromISIN(isin),
	}

	if r.quotes != nil {
		quote, err := r.quotes.FetchQuote(ctx, symbol)
		if err != nil {
			slog.Warn("isin enrichment failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol), slog.String("err", err.Error()))
		} else if quote.Name != "" {
			res.Name = quote.Name
		}
	}

	return []model.SearchResult{res}
}

func (r *Resolver) fromProviders(ctx context.Context, query string) []model.SearchResult {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "searchResolver.fromProviders"

	for _, p := range r.providers {
		res, err := p.Search(ctx, query)
		if err != nil {
			slog.Warn("search provider failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("provider", p.Name()), slog.String("err", err.Error()))
			continue
		}
		if len(res) == 0 {
			continue
		}
		return res
	}
	return nil
}

// merge appends provider results whose symbol is not in the catalog.
func merge(local, remote []model.SearchResult) []model.SearchResult {
	seen := make(map[string]struct{}, len(local)+len(remote))
	res := make([]model.SearchResult, 0, len(local)+len(remote))
	for _, list := range [][]model.SearchResult{local, remote} {
		for _, item := range list {
			if item.Symbol == "" {
				continue
			}
			if _, ok := seen[item.Symbol]; ok {
				continue
			}
			seen[item.Symbol] = struct{}{}
			res = append(res, item)
		}
	}
	return res
}

type candidate struct {
	item   model.SearchResult
	name   string
	symbol string
}

// rank keeps the entries matching query and orders them by, in turn: name
// prefix, word prefix inside the name, exact symbol, symbol prefix, then name.
func rank(items []model.SearchResult, query string) []model.SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))

	candidates := make([]candidate, 0, len(items))
	for _, item := range items {
		c := candidate{item: item, name: strings.ToLower(item.Name), symbol: strings.ToLower(item.Symbol)}
		if strings.Contains(c.symbol, q) || strings.Contains(c.name, q) {
			candidates = append(candidates, c)
		}
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if d := preferTrue(strings.HasPrefix(a.name, q), strings.HasPrefix(b.name, q)); d != 0 {
			return d
		}
		if d := preferTrue(hasWordPrefix(a.name, q), hasWordPrefix(b.name, q)); d != 0 {
			return d
		}
		if d := preferTrue(a.symbol == q, b.symbol == q); d != 0 {
			return d
		}
		if d := preferTrue(strings.HasPrefix(a.symbol, q), strings.HasPrefix(b.symbol, q)); d != 0 {
			return d
		}
		return cmp.Or(strings.Compare(a.name, b.name), strings.Compare(a.symbol, b.symbol))
	})

	res := make([]model.SearchResult, 0, min(len(candidates), MaxResults))
	for _, c := range candidates {
		if len(res) == MaxResults {
			break
		}
		res = append(res, c.item)
	}
	return res
}

func preferTrue(a, b bool) int {
	switch {
	case a && !b:
		return -1
	case !a && b:
		return 1
	default:
		return 0
	}
}

func hasWordPrefix(name, q string) bool {
	for _, word := range strings.Fields(name) {
		if strings.HasPrefix(word, q) {
			return true
		}
	}
	return false
}
