package finnhubApi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/config"
	"github.com/KotFed0t/portfolio_dashboard/internal/externalApi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApi(t *testing.T, mux *http.ServeMux) *FinnhubApi {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.API.Timeout = time.Second
	cfg.API.Finnhub.Url = server.URL
	cfg.API.Finnhub.ApiKey = "test-token"
	return New(cfg)
}

func TestGetQuote_WithProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))
		_, _ = w.Write([]byte(`{"c":189.5,"d":1.25,"dp":0.66,"h":190,"l":187,"o":188,"pc":188.25}`))
	})
	mux.HandleFunc("/stock/profile2", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Apple Inc","ticker":"AAPL","currency":"USD","marketCapitalization":2950000.5}`))
	})
	api := newTestApi(t, mux)

	quote, err := api.GetQuote(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, "Apple Inc", quote.Name)
	assert.True(t, decimal.NewFromFloat(189.5).Equal(quote.Price))
	assert.True(t, decimal.NewFromFloat(2950000.5).Mul(decimal.NewFromInt(1_000_000)).Equal(quote.MarketCap))
	assert.Equal(t, "USD", quote.Currency)
}

func TestGetQuote_ProfileFailureUsesStaticTable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"c":702.3,"d":-3.1,"dp":-0.44}`))
	})
	mux.HandleFunc("/stock/profile2", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	api := newTestApi(t, mux)

	quote, err := api.GetQuote(context.Background(), "MC.PA")
	require.NoError(t, err)
	assert.Equal(t, "LVMH", quote.Name)
	assert.Equal(t, "EUR", quote.Currency)
	assert.True(t, quote.MarketCap.IsZero())

	quote, err = api.GetQuote(context.Background(), "XYZ")
	require.NoError(t, err)
	assert.Equal(t, "XYZ", quote.Name)
	assert.Equal(t, "USD", quote.Currency)
}

func TestGetQuote_UnknownSymbol(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"c":0,"d":null,"dp":null,"h":0,"l":0,"o":0,"pc":0}`))
	})
	api := newTestApi(t, mux)

	_, err := api.GetQuote(context.Background(), "NOPE")
	assert.ErrorIs(t, err, externalApi.ErrNoPrice)
}

func TestSearch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "apple", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"count":2,"result":[
			{"description":"APPLE INC","displaySymbol":"AAPL","symbol":"AAPL","type":"Common Stock"},
			{"description":"","displaySymbol":"APC.DE","symbol":"","type":"Common Stock"}
		]}`))
	})
	api := newTestApi(t, mux)

	res, err := api.Search(context.Background(), "apple")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "AAPL", res[0].Symbol)
	assert.Equal(t, "APPLE INC", res[0].Name)
	assert.Equal(t, "APC.DE", res[1].Symbol)
	assert.Equal(t, "APC.DE", res[1].Name)
}

func TestGetDividendHistory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stock/dividend", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "KO", r.URL.Query().Get("symbol"))
		assert.Equal(t, "2025-10-14", r.URL.Query().Get("from"))
		assert.Equal(t, "2026-10-14", r.URL.Query().Get("to"))
		_, _ = w.Write([]byte(`[
			{"symbol":"KO","date":"2026-09-12","amount":0.51,"payDate":"2026-10-01","currency":"USD"},
			{"symbol":"KO","date":"2026-06-13","amount":0.51,"payDate":"","currency":"USD"},
			{"symbol":"KO","date":"bad","amount":0.51},
			{"symbol":"KO","date":"2026-03-14","amount":0}
		]`))
	})
	api := newTestApi(t, mux)

	from := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	payments, err := api.GetDividendHistory(context.Background(), "KO", from, to)
	require.NoError(t, err)
	require.Len(t, payments, 2)

	assert.Equal(t, "KO", payments[0].Symbol)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), payments[0].PaymentDate)
	assert.Equal(t, payments[1].ExDate, payments[1].PaymentDate, "missing pay date falls back to ex-date")
}

func TestGet_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	api := newTestApi(t, mux)

	_, err := api.Search(context.Background(), "x")
	assert.ErrorIs(t, err, externalApi.ErrNotFound)
}
