package portfolioService

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/internal/service"
	"github.com/KotFed0t/portfolio_dashboard/utils"
)

// ListDividends returns recorded payments, from and to bound the payment date inclusively.
func (s *PortfolioService) ListDividends(ctx context.Context, ownerID string, from, to *time.Time) ([]model.DividendRecord, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.ListDividends"

	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: to is before from", service.ErrInvalidInput)
	}

	dividends, err := s.repo.ListDividends(ctx, ownerID, from, to)
	if err != nil {
		slog.Error("got error from repo.ListDividends", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	return dividends, nil
}

func (s *PortfolioService) AddDividend(ctx context.Context, ownerID string, dividend model.DividendRecord) (model.DividendRecord, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.AddDividend"

	slog.Debug("AddDividend start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", dividend.StockSymbol))
	defer func() {
		slog.Debug("AddDividend finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", dividend.StockSymbol))
	}()

	dividend.ID = s.idGen()
	dividend.OwnerID = ownerID
	dividend.StockSymbol = normalizeSymbol(dividend.StockSymbol)

	if dividend.StockSymbol == "" {
		return model.DividendRecord{}, fmt.Errorf("%w: stock symbol is required", service.ErrInvalidInput)
	}
	if !dividend.Amount.IsPositive() {
		return model.DividendRecord{}, fmt.Errorf("%w: amount must be positive", service.ErrInvalidInput)
	}
	if dividend.ExDate.IsZero() {
		return model.DividendRecord{}, fmt.Errorf("%w: ex date is required", service.ErrInvalidInput)
	}

	frequency, err := model.ParseFrequency(string(dividend.Frequency))
	if err != nil {
		return model.DividendRecord{}, fmt.Errorf("%w: %s", service.ErrInvalidInput, err.Error())
	}
	dividend.Frequency = frequency

	if dividend.PaymentDate.IsZero() {
		dividend.PaymentDate = dividend.ExDate
	}
	if dividend.StockName == "" {
		dividend.StockName = dividend.StockSymbol
	}
	if dividend.Currency == "" {
		dividend.Currency = defaultCurrency
	}

	if err = s.repo.InsertDividend(ctx, dividend); err != nil {
		slog.Error("got error from repo.InsertDividend", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.DividendRecord{}, mapRepoError(err)
	}

	return dividend, nil
}

func (s *PortfolioService) DeleteDividend(ctx context.Context, ownerID, id string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.DeleteDividend"

	if id == "" {
		return fmt.Errorf("%w: id is required", service.ErrInvalidInput)
	}

	if err := s.repo.DeleteDividend(ctx, ownerID, id); err != nil {
		slog.Warn("got error from repo.DeleteDividend", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return mapRepoError(err)
	}

	return nil
}
