package rest

import (
	"net/http"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/shopspring/decimal"
)

type dividendRequest struct {
	StockSymbol string          `json:"stockSymbol"`
	StockName   string          `json:"stockName"`
	Amount      decimal.Decimal `json:"amount"`
	ExDate      string          `json:"exDate"`
	PaymentDate string          `json:"paymentDate"`
	Frequency   string          `json:"frequency"`
	Currency    string          `json:"currency"`
}

func (req dividendRequest) toRecord() (model.DividendRecord, error) {
	exDate, err := parseDate("exDate", req.ExDate)
	if err != nil {
		return model.DividendRecord{}, err
	}
	paymentDate, err := parseDate("paymentDate", req.PaymentDate)
	if err != nil {
		return model.DividendRecord{}, err
	}

	return model.DividendRecord{
		StockSymbol: req.StockSymbol,
		StockName:   req.StockName,
		Amount:      req.Amount,
		ExDate:      exDate,
		PaymentDate: paymentDate,
		Frequency:   model.Frequency(req.Frequency),
		Currency:    req.Currency,
	}, nil
}

func (ctrl *Controller) ListDividends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, err := ownerFromCtx(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	from, err := optionalDate("startDate", r.URL.Query().Get("startDate"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	to, err := optionalDate("endDate", r.URL.Query().Get("endDate"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dividends, err := ctrl.portfolio.ListDividends(ctx, ownerID, from, to)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if dividends == nil {
		dividends = []model.DividendRecord{}
	}

	writeJSON(w, http.StatusOK, dividends)
}

func (ctrl *Controller) AddDividend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, err := ownerFromCtx(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req dividendRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	record, err := req.toRecord()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := ctrl.portfolio.AddDividend(ctx, ownerID, record)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (ctrl *Controller) DeleteDividend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, err := ownerFromCtx(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err = ctrl.portfolio.DeleteDividend(ctx, ownerID, r.URL.Query().Get("id")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func optionalDate(field, value string) (*time.Time, error) {
	t, err := parseDate(field, value)
	if err != nil || t.IsZero() {
		return nil, err
	}
	return &t, nil
}
