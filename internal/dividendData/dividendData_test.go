package dividendData

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/data/cache"
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)

type fakeCache struct {
	mu    sync.Mutex
	metas map[string]model.DividendMeta
	sets  int
}

func (c *fakeCache) GetDividendMeta(_ context.Context, symbol string) (model.DividendMeta, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.metas[symbol]
	if !ok {
		return model.DividendMeta{}, cache.ErrCacheMiss
	}
	return m, nil
}

func (c *fakeCache) SetDividendMetas(_ context.Context, metas []model.DividendMeta) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.metas == nil {
		c.metas = map[string]model.DividendMeta{}
	}
	for _, m := range metas {
		c.metas[m.Symbol] = m
	}
	return nil
}

type fakeHistory struct {
	mu       sync.Mutex
	payments map[string][]model.DividendPayment
	failing  map[string]bool
	calls    []string
}

func (h *fakeHistory) GetDividendHistory(_ context.Context, symbol string, from, to time.Time) ([]model.DividendPayment, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, symbol)
	if h.failing[symbol] {
		return nil, errors.New("rate limited")
	}
	return h.payments[symbol], nil
}

type fakeRecords struct {
	records []model.DividendRecord
	calls   int
}

func (r *fakeRecords) ListDividends(_ context.Context, _ string, _, _ *time.Time) ([]model.DividendRecord, error) {
	r.calls++
	return r.records, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func payment(amount string, exDate time.Time) model.DividendPayment {
	return model.DividendPayment{Amount: decimal.RequireFromString(amount), ExDate: exDate, PaymentDate: exDate, Currency: "USD"}
}

func TestGetDividendMeta_FromProvider(t *testing.T) {
	c := &fakeCache{}
	h := &fakeHistory{payments: map[string][]model.DividendPayment{
		"KO": {
			payment("0.51", day(2026, 9, 12)),
			payment("0.51", day(2026, 6, 13)),
			payment("0.51", day(2026, 3, 14)),
			payment("0.485", day(2025, 11, 29)),
		},
	}}
	s := New(c, h, &fakeRecords{}, clockwork.NewFakeClockAt(today))

	res := s.GetDividendMeta(context.Background(), "owner", []string{"ko"})

	require.Contains(t, res, "KO")
	meta := res["KO"]
	assert.True(t, decimal.RequireFromString("2.04").Equal(meta.AnnualPerShare), meta.AnnualPerShare.String())
	assert.Equal(t, model.FrequencyQuarterly, meta.Frequency)
	assert.Equal(t, day(2026, 9, 12), *meta.LastDate)
	assert.Equal(t, day(2026, 12, 12), *meta.NextDate)
	assert.Equal(t, SourceProvider, meta.Source)
	assert.Equal(t, 1, c.sets)
}

func TestGetDividendMeta_CacheHitSkipsProvider(t *testing.T) {
	last := day(2026, 4, 20)
	c := &fakeCache{metas: map[string]model.DividendMeta{
		"MSFT": {Symbol: "MSFT", AnnualPerShare: decimal.RequireFromString("3.32"), Frequency: model.FrequencyQuarterly, LastDate: &last},
	}}
	h := &fakeHistory{}
	s := New(c, h, &fakeRecords{}, clockwork.NewFakeClockAt(today))

	res := s.GetDividendMeta(context.Background(), "owner", []string{"MSFT"})

	assert.Empty(t, h.calls)
	assert.Zero(t, c.sets)
	require.Contains(t, res, "MSFT")
	assert.Equal(t, day(2026, 10, 20), *res["MSFT"].NextDate, "stale next date is advanced past today")
}

func TestGetDividendMeta_FallsBackToRecords(t *testing.T) {
	h := &fakeHistory{failing: map[string]bool{"TTE.PA": true}}
	records := &fakeRecords{records: []model.DividendRecord{
		{StockSymbol: "TTE.PA", Amount: decimal.RequireFromString("0.79"), ExDate: day(2026, 6, 20), Frequency: model.FrequencyQuarterly, Currency: "EUR"},
		{StockSymbol: "tte.pa", Amount: decimal.RequireFromString("0.75"), ExDate: day(2026, 3, 20), Frequency: model.FrequencyQuarterly, Currency: "EUR"},
		{StockSymbol: "OTHER", Amount: decimal.RequireFromString("9"), ExDate: day(2026, 3, 20), Frequency: model.FrequencyAnnual},
	}}
	s := New(&fakeCache{}, h, records, clockwork.NewFakeClockAt(today))

	res := s.GetDividendMeta(context.Background(), "owner", []string{"TTE.PA"})

	require.Len(t, res, 1)
	meta := res["TTE.PA"]
	assert.True(t, decimal.RequireFromString("3.16").Equal(meta.AnnualPerShare))
	assert.Equal(t, SourceRecords, meta.Source)
	assert.Equal(t, "EUR", meta.Currency)
	assert.Equal(t, day(2026, 12, 20), *meta.NextDate)
	assert.Equal(t, 1, records.calls)
}

func TestGetDividendMeta_NoDividendIsAbsentAndCached(t *testing.T) {
	c := &fakeCache{}
	h := &fakeHistory{}
	s := New(c, h, &fakeRecords{}, clockwork.NewFakeClockAt(today))

	res := s.GetDividendMeta(context.Background(), "owner", []string{"BRK.B"})
	assert.Empty(t, res)

	res = s.GetDividendMeta(context.Background(), "owner", []string{"BRK.B"})
	assert.Empty(t, res)
	assert.Len(t, h.calls, 1, "empty history is cached")
}

func TestInferFrequency(t *testing.T) {
	assert.Equal(t, model.FrequencyMonthly, InferFrequency(12))
	assert.Equal(t, model.FrequencyMonthly, InferFrequency(10))
	assert.Equal(t, model.FrequencyQuarterly, InferFrequency(4))
	assert.Equal(t, model.FrequencyQuarterly, InferFrequency(3))
	assert.Equal(t, model.FrequencySemiAnnual, InferFrequency(2))
	assert.Equal(t, model.FrequencyAnnual, InferFrequency(1))
	assert.Equal(t, model.FrequencyAnnual, InferFrequency(0))
}

func TestFromPayments_ExtraPaymentInWindowDoesNotInflateAnnual(t *testing.T) {
	payments := []model.DividendPayment{
		payment("1.0", day(2025, 10, 16)),
		payment("1.0", day(2026, 1, 15)),
		payment("1.0", day(2026, 10, 13)),
		payment("1.0", day(2026, 4, 14)),
		payment("1.0", day(2026, 7, 14)),
	}

	meta := FromPayments("t", payments)

	assert.Equal(t, "T", meta.Symbol)
	assert.Equal(t, model.FrequencyQuarterly, meta.Frequency)
	assert.True(t, decimal.NewFromInt(4).Equal(meta.AnnualPerShare), meta.AnnualPerShare.String())
	assert.Equal(t, day(2026, 10, 13), *meta.LastDate)
	assert.Equal(t, "USD", meta.Currency)
}

func TestFromPayments_UsesLatestAmount(t *testing.T) {
	meta := FromPayments("KO", []model.DividendPayment{
		payment("0.485", day(2025, 11, 29)),
		payment("0.51", day(2026, 3, 14)),
	})

	assert.Equal(t, model.FrequencySemiAnnual, meta.Frequency)
	assert.True(t, decimal.RequireFromString("1.02").Equal(meta.AnnualPerShare), meta.AnnualPerShare.String())
}

func TestFromPayments_Empty(t *testing.T) {
	meta := FromPayments("BRK.B", nil)

	assert.True(t, meta.AnnualPerShare.IsZero())
	assert.Nil(t, meta.LastDate)
	assert.Equal(t, SourceProvider, meta.Source)
}

func TestGetDividendMeta_TodayIsUTCDay(t *testing.T) {
	// 02:00 on Oct 13 at UTC+5 is still Oct 12 in UTC
	local := time.Date(2026, time.October, 13, 2, 0, 0, 0, time.FixedZone("UTC+5", 5*3600))
	h := &fakeHistory{payments: map[string][]model.DividendPayment{
		"T": {payment("1.0", day(2026, 10, 12))},
	}}
	s := New(&fakeCache{}, h, &fakeRecords{}, clockwork.NewFakeClockAt(local))

	res := s.GetDividendMeta(context.Background(), "owner", []string{"T"})

	require.Contains(t, res, "T")
	assert.Equal(t, day(2026, 10, 12), *res["T"].NextDate, "a payment dated today is not pushed a year ahead")
}
