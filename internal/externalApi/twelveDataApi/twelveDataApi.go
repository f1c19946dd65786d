package twelveDataApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/KotFed0t/portfolio_dashboard/config"
	"github.com/KotFed0t/portfolio_dashboard/internal/externalApi"
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/utils"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const providerName = "twelvedata"

type TwelveDataApi struct {
	client *resty.Client
	apiKey string
}

func New(cfg *config.Config) *TwelveDataApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.TwelveData.Url)
	return &TwelveDataApi{client: client, apiKey: cfg.API.TwelveData.ApiKey}
}

func (a *TwelveDataApi) Name() string {
	return providerName
}

// GetQuote requests the real-time quote of ticker.
func (a *TwelveDataApi) GetQuote(ctx context.Context, ticker string) (model.Quote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "TwelveDataApi.GetQuote"

	slog.Debug("GetQuote start", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker))

	body, err := a.get(ctx, "/quote", map[string]string{"symbol": ticker})
	if err != nil {
		slog.Error("error while dialing TwelveDataApi", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Quote{}, err
	}

	raw := quoteResponse{}
	if err = json.Unmarshal(body, &raw); err != nil {
		slog.Error("can't unmarshall response into quoteResponse", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Quote{}, err
	}

	if err = checkStatus(raw.errorResponse); err != nil {
		return model.Quote{}, err
	}

	quote, err := convertQuote(raw)
	if err != nil {
		slog.Error("can't parse raw quote", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Quote{}, err
	}

	slog.Debug("GetQuote completed", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker))

	return quote, nil
}

// Search looks instruments up by symbol or name fragment.
func (a *TwelveDataApi) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "TwelveDataApi.Search"

	slog.Debug("Search start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))

	body, err := a.get(ctx, "/symbol_search", map[string]string{"symbol": query})
	if err != nil {
		slog.Error("error while dialing TwelveDataApi", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	raw := symbolSearchResponse{}
	if err = json.Unmarshal(body, &raw); err != nil {
		slog.Error("can't unmarshall response into symbolSearchResponse", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	if err = checkStatus(raw.errorResponse); err != nil {
		return nil, err
	}

	res := make([]model.SearchResult, 0, len(raw.Data))
	for _, item := range raw.Data {
		if item.Symbol == "" {
			continue
		}
		name := item.InstrumentName
		if name == "" {
			name = item.Symbol
		}
		res = append(res, model.SearchResult{
			Symbol:   item.Symbol,
			Name:     name,
			Type:     item.InstrumentType,
			Exchange: item.Exchange,
		})
	}

	slog.Debug("Search completed", slog.String("rqID", rqID), slog.String("op", op), slog.Int("results", len(res)))

	return res, nil
}

func (a *TwelveDataApi) get(ctx context.Context, url string, params map[string]string) ([]byte, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(params).
		SetQueryParam("apikey", a.apiKey).
		Get(url)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, externalApi.ErrNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("twelvedata responded with status %d", resp.StatusCode())
	}

	return resp.Body(), nil
}

// checkStatus maps the error envelope TwelveData returns with a 200 status.
func checkStatus(e errorResponse) error {
	if e.Status != "error" {
		return nil
	}
	if e.Code == http.StatusNotFound || e.Code == http.StatusBadRequest {
		return fmt.Errorf("%w: %s", externalApi.ErrNotFound, e.Message)
	}
	return fmt.Errorf("twelvedata error %d: %s", e.Code, e.Message)
}

func convertQuote(raw quoteResponse) (model.Quote, error) {
	price, err := parseDecimal(raw.Close)
	if err != nil {
		return model.Quote{}, fmt.Errorf("invalid close %q: %w", raw.Close, err)
	}
	if !price.IsPositive() {
		return model.Quote{}, externalApi.ErrNoPrice
	}

	change, err := parseDecimal(raw.Change)
	if err != nil {
		return model.Quote{}, fmt.Errorf("invalid change %q: %w", raw.Change, err)
	}

	percent, err := parseDecimal(raw.PercentChange)
	if err != nil {
		return model.Quote{}, fmt.Errorf("invalid percent_change %q: %w", raw.PercentChange, err)
	}

	// volume is best-effort
	volume, _ := strconv.ParseInt(strings.TrimSpace(raw.Volume), 10, 64)

	return model.Quote{
		Symbol:        strings.ToUpper(raw.Symbol),
		Name:          raw.Name,
		Price:         price,
		Change:        change,
		ChangePercent: percent,
		Volume:        volume,
		Currency:      raw.Currency,
	}, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
