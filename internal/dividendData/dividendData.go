// Package dividendData resolves per-symbol dividend metadata from the cache,
// the market data provider and the owner's recorded dividends, in that order.
package dividendData

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/data/cache"
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/utils"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	SourceProvider = "provider"
	SourceRecords  = "records"

	maxConcurrentLookups = 5
)

type Cache interface {
	GetDividendMeta(ctx context.Context, symbol string) (model.DividendMeta, error)
	SetDividendMetas(ctx context.Context, metas []model.DividendMeta) error
}

type HistoryApi interface {
	GetDividendHistory(ctx context.Context, symbol string, from, to time.Time) ([]model.DividendPayment, error)
}

type RecordLister interface {
	ListDividends(ctx context.Context, ownerID string, from, to *time.Time) ([]model.DividendRecord, error)
}

type Source struct {
	cache   Cache
	api     HistoryApi
	records RecordLister
	clock   clockwork.Clock
}

func New(cache Cache, api HistoryApi, records RecordLister, clock clockwork.Clock) *Source {
	return &Source{cache: cache, api: api, records: records, clock: clock}
}

// GetDividendMeta returns metadata keyed by upper-cased symbol. Symbols
// without a positive annual amount are absent from the result.
func (s *Source) GetDividendMeta(ctx context.Context, ownerID string, symbols []string) map[string]model.DividendMeta {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "dividendData.GetDividendMeta"

	slog.Debug("GetDividendMeta start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("symbols", len(symbols)))

	today := truncateDay(s.clock.Now())
	res := make(map[string]model.DividendMeta, len(symbols))

	var (
		mu      sync.Mutex
		missing []string
		fetched []model.DividendMeta
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for _, symbol := range unique(symbols) {
		g.Go(func() error {
			meta, fromApi, ok := s.fromMarket(gCtx, symbol, today)

			mu.Lock()
			defer mu.Unlock()
			if fromApi {
				fetched = append(fetched, meta)
			}
			if ok && meta.AnnualPerShare.IsPositive() {
				res[symbol] = withNextDate(meta, today)
			} else {
				missing = append(missing, symbol)
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(fetched) > 0 && s.cache != nil {
		if err := s.cache.SetDividendMetas(ctx, fetched); err != nil {
			slog.Warn("can't cache dividend metas", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}

	if len(missing) > 0 {
		for symbol, meta := range s.fromRecords(ctx, ownerID, missing) {
			res[symbol] = withNextDate(meta, today)
		}
	}

	slog.Debug("GetDividendMeta finished", slog.String("rqID", rqID), slog.String("op", op), slog.Int("resolved", len(res)))

	return res
}

// fromMarket reports the meta, whether it was freshly fetched and should be
// cached, and whether any market data was found at all.
func (s *Source) fromMarket(ctx context.Context, symbol string, today time.Time) (meta model.DividendMeta, fetched bool, ok bool) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "dividendData.fromMarket"

	if s.cache != nil {
		cached, err := s.cache.GetDividendMeta(ctx, symbol)
		if err == nil {
			return cached, false, true
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("dividend cache read failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol), slog.String("err", err.Error()))
		}
	}

	if s.api == nil {
		return model.DividendMeta{}, false, false
	}

	payments, err := s.api.GetDividendHistory(ctx, symbol, today.AddDate(-1, 0, 0), today)
	if err != nil {
		slog.Warn("dividend history unavailable", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol), slog.String("err", err.Error()))
		return model.DividendMeta{}, false, false
	}

	// an empty history is cached too, so the provider is not asked again
	return FromPayments(symbol, payments), true, true
}

func (s *Source) fromRecords(ctx context.Context, ownerID string, symbols []string) map[string]model.DividendMeta {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "dividendData.fromRecords"

	res := make(map[string]model.DividendMeta)
	if s.records == nil || ownerID == "" {
		return res
	}

	records, err := s.records.ListDividends(ctx, ownerID, nil, nil)
	if err != nil {
		slog.Warn("can't list recorded dividends", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return res
	}

	wanted := make(map[string]struct{}, len(symbols))
	for _, symbol := range symbols {
		wanted[symbol] = struct{}{}
	}

	latest := make(map[string]model.DividendRecord)
	for _, r := range records {
		symbol := strings.ToUpper(r.StockSymbol)
		if _, ok := wanted[symbol]; !ok {
			continue
		}
		if cur, ok := latest[symbol]; !ok || r.ExDate.After(cur.ExDate) {
			latest[symbol] = r
		}
	}

	for symbol, r := range latest {
		if !r.Amount.IsPositive() {
			continue
		}
		last := r.ExDate
		res[symbol] = model.DividendMeta{
			Symbol:         symbol,
			AnnualPerShare: r.Amount.Mul(decimal.NewFromInt(r.Frequency.OccurrencesPerYear())),
			Frequency:      r.Frequency,
			Currency:       r.Currency,
			LastDate:       &last,
			Source:         SourceRecords,
		}
	}

	return res
}

// FromPayments summarizes a trailing year of payments. The frequency is
// inferred from the number of payments and the annual amount is the latest
// payment times the payments per year, so a window that catches one payment
// too many does not inflate it.
func FromPayments(symbol string, payments []model.DividendPayment) model.DividendMeta {
	meta := model.DividendMeta{
		Symbol:    strings.ToUpper(symbol),
		Frequency: InferFrequency(len(payments)),
		Source:    SourceProvider,
	}

	var latest *model.DividendPayment
	for i := range payments {
		if latest == nil || payments[i].ExDate.After(latest.ExDate) {
			latest = &payments[i]
		}
	}
	if latest == nil {
		return meta
	}

	last := latest.ExDate
	meta.LastDate = &last
	meta.Currency = latest.Currency
	meta.AnnualPerShare = latest.Amount.Mul(decimal.NewFromInt(meta.Frequency.OccurrencesPerYear()))

	return meta
}

func InferFrequency(payments int) model.Frequency {
	switch {
	case payments >= 10:
		return model.FrequencyMonthly
	case payments >= 3:
		return model.FrequencyQuarterly
	case payments == 2:
		return model.FrequencySemiAnnual
	default:
		return model.FrequencyAnnual
	}
}

func withNextDate(meta model.DividendMeta, today time.Time) model.DividendMeta {
	if meta.LastDate == nil {
		meta.NextDate = nil
		return meta
	}
	next := meta.Frequency.NextOccurrence(*meta.LastDate, today)
	meta.NextDate = &next
	return meta
}

// truncateDay returns the UTC calendar day of t, provider dates are UTC days.
func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func unique(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	res := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		res = append(res, s)
	}
	return res
}
