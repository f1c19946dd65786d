package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/internal/converter/dbConverter"
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/internal/model/dbModel"
	"github.com/KotFed0t/portfolio_dashboard/utils"
	"github.com/shopspring/decimal"
)

const dividendColumns = `id, owner_id, stock_symbol, stock_name, amount, ex_date, payment_date, frequency, currency, dt_create`

// ListDividends returns the owner's dividends, optionally limited to payment
// dates within [from, to]. Newest payments come first.
func (r *Postgres) ListDividends(ctx context.Context, ownerID string, from, to *time.Time) (dividends []model.DividendRecord, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.ListDividends"

	sb := strings.Builder{}
	args := []any{ownerID}
	sb.WriteString(`SELECT ` + dividendColumns + ` FROM dividends WHERE owner_id = $1`)
	if from != nil {
		args = append(args, *from)
		sb.WriteString(fmt.Sprintf(" AND payment_date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		sb.WriteString(fmt.Sprintf(" AND payment_date <= $%d", len(args)))
	}
	sb.WriteString(" ORDER BY payment_date DESC, ex_date DESC")
	query := sb.String()

	slog.Debug("ListDividends start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", args))
	defer func() {
		if err != nil {
			slog.Error("ListDividends failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("ListDividends completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}

	defer rows.Close()

	dividends = make([]model.DividendRecord, 0)
	for rows.Next() {
		var dividend dbModel.Dividend
		err = rows.StructScan(&dividend)
		if err != nil {
			return nil, err
		}
		dividends = append(dividends, dbConverter.ConvertDividend(dividend))
	}

	return dividends, rows.Err()
}

func (r *Postgres) InsertDividend(ctx context.Context, dividend model.DividendRecord) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.InsertDividend"
	query := `
		INSERT INTO dividends (id, owner_id, stock_symbol, stock_name, amount, ex_date, payment_date, frequency, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`

	slog.Debug("InsertDividend start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("InsertDividend failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("InsertDividend completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	_, err = r.txOrDb(ctx).ExecContext(
		ctx,
		query,
		dividend.ID,
		dividend.OwnerID,
		dividend.StockSymbol,
		dividend.StockName,
		dividend.Amount,
		dividend.ExDate,
		dividend.PaymentDate,
		string(dividend.Frequency),
		dividend.Currency,
	)

	return mapError(err)
}

func (r *Postgres) DeleteDividend(ctx context.Context, ownerID, id string) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.DeleteDividend"
	query := `DELETE FROM dividends WHERE owner_id = $1 AND id = $2`

	slog.Debug("DeleteDividend start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("DeleteDividend failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("DeleteDividend completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	res, err := r.txOrDb(ctx).ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return mapError(err)
	}

	return affectedOrNotFound(res)
}

// SumDividends is the total amount of dividends the owner has recorded.
func (r *Postgres) SumDividends(ctx context.Context, ownerID string) (total decimal.Decimal, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.SumDividends"
	query := `SELECT COALESCE(SUM(amount), 0) FROM dividends WHERE owner_id = $1`

	slog.Debug("SumDividends start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("SumDividends failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("SumDividends completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	err = r.txOrDb(ctx).GetContext(ctx, &total, query, ownerID)
	if err != nil {
		return decimal.Zero, mapError(err)
	}

	return total, nil
}
