package searchResolver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearch struct {
	name    string
	results []model.SearchResult
	err     error
	calls   int
}

func (f *fakeSearch) Name() string { return f.name }

func (f *fakeSearch) Search(_ context.Context, _ string) ([]model.SearchResult, error) {
	f.calls++
	return f.results, f.err
}

type fakeQuotes struct {
	quote model.Quote
	err   error
	calls int
}

func (f *fakeQuotes) FetchQuote(_ context.Context, ticker string) (model.Quote, error) {
	f.calls++
	if f.err != nil {
		return model.Quote{}, f.err
	}
	q := f.quote
	q.Symbol = ticker
	return q, nil
}

func symbols(items []model.SearchResult) []string {
	res := make([]string, 0, len(items))
	for _, it := range items {
		res = append(res, it.Symbol)
	}
	return res
}

func TestRank_NamePrefixBeatsWordPrefix(t *testing.T) {
	items := []model.SearchResult{
		{Symbol: "ORCL", Name: "Oracle (formerly Apple Computer)"},
		{Symbol: "AAPL", Name: "Apple Inc."},
	}

	res := rank(items, "apple")

	assert.Equal(t, []string{"AAPL", "ORCL"}, symbols(res))
}

func TestRank_Tiers(t *testing.T) {
	items := []model.SearchResult{
		{Symbol: "XKO", Name: "Something Else"},        // symbol contains only
		{Symbol: "KOF", Name: "Coca-Cola Femsa"},       // symbol prefix
		{Symbol: "KO", Name: "Coca-Cola Company"},      // exact symbol
		{Symbol: "BK", Name: "The Kodiak Bank"},        // word prefix
		{Symbol: "KDP", Name: "Kodak Products"},        // name prefix
		{Symbol: "ZZZ", Name: "Unrelated Corporation"}, // filtered out
	}

	res := rank(items, " KO ")

	assert.Equal(t, []string{"KDP", "BK", "KO", "KOF", "XKO"}, symbols(res))
}

func TestRank_AlphabeticalTieBreak(t *testing.T) {
	items := []model.SearchResult{
		{Symbol: "AAPL.MX", Name: "Apple Inc. Mexico"},
		{Symbol: "AAPL", Name: "Apple Inc."},
		{Symbol: "APC.DE", Name: "Apple Inc."},
	}

	res := rank(items, "apple")

	assert.Equal(t, []string{"AAPL", "APC.DE", "AAPL.MX"}, symbols(res))
}

func TestRank_CapsResults(t *testing.T) {
	items := make([]model.SearchResult, 0, 30)
	for i := range 30 {
		items = append(items, model.SearchResult{Symbol: fmt.Sprintf("BANK%02d", i), Name: fmt.Sprintf("Bank %02d", i)})
	}

	res := rank(items, "bank")

	require.Len(t, res, MaxResults)
	assert.Equal(t, "BANK00", res[0].Symbol)
}

func TestSearch_ISIN(t *testing.T) {
	quotes := &fakeQuotes{quote: model.Quote{Name: "Apple Inc", Price: decimal.NewFromInt(190)}}
	primary := &fakeSearch{name: "primary"}
	r := New(quotes, primary)

	res := r.Search(context.Background(), "us0378331005")

	require.Len(t, res, 1)
	assert.Equal(t, "AAPL", res[0].Symbol)
	assert.Equal(t, "Apple Inc", res[0].Name)
	assert.Equal(t, "US0378331005", res[0].ISIN)
	assert.Equal(t, "🇺🇸 United States", res[0].Country)
	assert.Zero(t, primary.calls, "isin branch short-circuits providers")
}

func TestSearch_ISINEnrichmentFails(t *testing.T) {
	r := New(&fakeQuotes{err: errors.New("down")})

	res := r.Search(context.Background(), "FR0000121014")

	require.Len(t, res, 1)
	assert.Equal(t, "MC.PA", res[0].Symbol)
	assert.Equal(t, "MC.PA", res[0].Name)
}

func TestSearch_UnknownISIN(t *testing.T) {
	quotes := &fakeQuotes{}
	r := New(quotes)

	res := r.Search(context.Background(), "XX0000000000")

	assert.Empty(t, res)
	assert.NotNil(t, res)
	assert.Zero(t, quotes.calls)
}

func TestSearch_FallsBackToSecondaryProvider(t *testing.T) {
	primary := &fakeSearch{name: "primary", err: errors.New("rate limited")}
	secondary := &fakeSearch{name: "secondary", results: []model.SearchResult{
		{Symbol: "ZBRA", Name: "Zebra Technologies"},
	}}
	r := New(nil, primary, secondary)
	r.catalog = nil

	res := r.Search(context.Background(), "zebra")

	assert.Equal(t, []string{"ZBRA"}, symbols(res))
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestSearch_EmptyPrimaryFallsThrough(t *testing.T) {
	primary := &fakeSearch{name: "primary"}
	secondary := &fakeSearch{name: "secondary", results: []model.SearchResult{{Symbol: "ZBRA", Name: "Zebra Technologies"}}}
	r := New(nil, primary, secondary)

	res := r.Search(context.Background(), "zebra")

	assert.Equal(t, []string{"ZBRA"}, symbols(res))
}

func TestSearch_CatalogWinsConflicts(t *testing.T) {
	primary := &fakeSearch{name: "primary", results: []model.SearchResult{
		{Symbol: "AAPL", Name: "APPLE INC", Type: "Common Stock"},
		{Symbol: "APLE", Name: "Apple Hospitality REIT"},
	}}
	r := New(nil, primary)

	res := r.Search(context.Background(), "apple")

	require.Len(t, res, 2)
	assert.Equal(t, "APLE", res[0].Symbol, "apple hospitality sorts before apple inc.")
	assert.Equal(t, "AAPL", res[1].Symbol)
	assert.Equal(t, "Apple Inc.", res[1].Name)
	assert.Empty(t, res[1].Type)
}

func TestSearch_AllProvidersFailUsesCatalog(t *testing.T) {
	primary := &fakeSearch{name: "primary", err: errors.New("down")}
	secondary := &fakeSearch{name: "secondary", err: errors.New("down")}
	r := New(nil, primary, secondary)

	res := r.Search(context.Background(), "lvmh")

	assert.Equal(t, []string{"MC.PA"}, symbols(res))
}

func TestSearch_EmptyQuery(t *testing.T) {
	primary := &fakeSearch{name: "primary"}
	r := New(nil, primary)

	assert.Empty(t, r.Search(context.Background(), "   "))
	assert.Zero(t, primary.calls)
}
