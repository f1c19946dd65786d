package finnhubApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/config"
	"github.com/KotFed0t/portfolio_dashboard/internal/externalApi"
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/utils"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	providerName = "finnhub"
	dateLayout   = "2006-01-02"
)

type FinnhubApi struct {
	client *resty.Client
	apiKey string
}

func New(cfg *config.Config) *FinnhubApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.Finnhub.Url)
	return &FinnhubApi{client: client, apiKey: cfg.API.Finnhub.ApiKey}
}

func (a *FinnhubApi) Name() string {
	return providerName
}

// GetQuote combines the price endpoint with the company profile.
// A failed profile lookup degrades the quote instead of failing it.
func (a *FinnhubApi) GetQuote(ctx context.Context, ticker string) (model.Quote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "FinnhubApi.GetQuote"

	slog.Debug("GetQuote start", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker))

	body, err := a.get(ctx, "/quote", map[string]string{"symbol": ticker})
	if err != nil {
		slog.Error("error while dialing FinnhubApi", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Quote{}, err
	}

	raw := quoteResponse{}
	if err = json.Unmarshal(body, &raw); err != nil {
		slog.Error("can't unmarshall response into quoteResponse", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Quote{}, err
	}

	if raw.Current <= 0 {
		return model.Quote{}, externalApi.ErrNoPrice
	}

	profile := a.profile(ctx, ticker)

	quote := model.Quote{
		Symbol:        strings.ToUpper(ticker),
		Name:          profile.Name,
		Price:         decimal.NewFromFloat(raw.Current),
		Change:        decimal.NewFromFloat(raw.Change),
		ChangePercent: decimal.NewFromFloat(raw.PercentChange),
		MarketCap:     decimal.NewFromFloat(profile.MarketCapitalization).Mul(decimal.NewFromInt(1_000_000)),
		Currency:      profile.Currency,
	}

	slog.Debug("GetQuote completed", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker))

	return quote, nil
}

func (a *FinnhubApi) profile(ctx context.Context, ticker string) profileResponse {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "FinnhubApi.profile"

	fallback := func() profileResponse {
		if p, ok := staticProfiles[strings.ToUpper(ticker)]; ok {
			return p
		}
		return profileResponse{Name: ticker, Currency: "USD"}
	}

	body, err := a.get(ctx, "/stock/profile2", map[string]string{"symbol": ticker})
	if err != nil {
		slog.Warn("profile lookup failed, using fallback", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return fallback()
	}

	p := profileResponse{}
	if err = json.Unmarshal(body, &p); err != nil || p.Name == "" {
		return fallback()
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	return p
}

// Search is the symbol lookup endpoint.
func (a *FinnhubApi) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "FinnhubApi.Search"

	slog.Debug("Search start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))

	body, err := a.get(ctx, "/search", map[string]string{"q": query})
	if err != nil {
		slog.Error("error while dialing FinnhubApi", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	raw := searchResponse{}
	if err = json.Unmarshal(body, &raw); err != nil {
		slog.Error("can't unmarshall response into searchResponse", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	res := make([]model.SearchResult, 0, len(raw.Result))
	for _, item := range raw.Result {
		symbol := item.Symbol
		if symbol == "" {
			symbol = item.DisplaySymbol
		}
		if symbol == "" {
			continue
		}
		name := item.Description
		if name == "" {
			name = symbol
		}
		res = append(res, model.SearchResult{
			Symbol: symbol,
			Name:   name,
			Type:   item.Type,
		})
	}

	slog.Debug("Search completed", slog.String("rqID", rqID), slog.String("op", op), slog.Int("results", len(res)))

	return res, nil
}

// GetDividendHistory returns the payments with an ex-date in [from, to].
func (a *FinnhubApi) GetDividendHistory(ctx context.Context, symbol string, from, to time.Time) ([]model.DividendPayment, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "FinnhubApi.GetDividendHistory"

	slog.Debug("GetDividendHistory start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))

	body, err := a.get(ctx, "/stock/dividend", map[string]string{
		"symbol": symbol,
		"from":   from.Format(dateLayout),
		"to":     to.Format(dateLayout),
	})
	if err != nil {
		slog.Error("error while dialing FinnhubApi", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	var raw []dividendItem
	if err = json.Unmarshal(body, &raw); err != nil {
		slog.Error("can't unmarshall response into dividendItem", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	res := make([]model.DividendPayment, 0, len(raw))
	for _, item := range raw {
		exDate, err := time.Parse(dateLayout, item.Date)
		if err != nil || item.Amount <= 0 {
			continue
		}
		payment := model.DividendPayment{
			Symbol:   strings.ToUpper(symbol),
			Amount:   decimal.NewFromFloat(item.Amount),
			ExDate:   exDate,
			Currency: item.Currency,
		}
		if payDate, err := time.Parse(dateLayout, item.PayDate); err == nil {
			payment.PaymentDate = payDate
		} else {
			payment.PaymentDate = exDate
		}
		res = append(res, payment)
	}

	slog.Debug("GetDividendHistory completed", slog.String("rqID", rqID), slog.String("op", op), slog.Int("payments", len(res)))

	return res, nil
}

func (a *FinnhubApi) get(ctx context.Context, url string, params map[string]string) ([]byte, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(params).
		SetQueryParam("token", a.apiKey).
		Get(url)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, externalApi.ErrNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("finnhub responded with status %d", resp.StatusCode())
	}

	return resp.Body(), nil
}
