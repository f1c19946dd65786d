package postgres

import (
	"context"
	"log/slog"

	"github.com/KotFed0t/portfolio_dashboard/internal/converter/dbConverter"
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/internal/model/dbModel"
	"github.com/KotFed0t/portfolio_dashboard/utils"
)

const positionColumns = `id, owner_id, symbol, name, currency, quantity, purchase_price, purchase_date, dt_create`

func (r *Postgres) ListPositions(ctx context.Context, ownerID string) (positions []model.Position, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.ListPositions"
	query := `
		SELECT ` + positionColumns + `
		FROM positions
		WHERE owner_id = $1
		ORDER BY dt_create, symbol
		`

	slog.Debug("ListPositions start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("ListPositions failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("ListPositions completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query, ownerID)
	if err != nil {
		return nil, mapError(err)
	}

	defer rows.Close()

	positions = make([]model.Position, 0)
	for rows.Next() {
		var position dbModel.Position
		err = rows.StructScan(&position)
		if err != nil {
			return nil, err
		}
		positions = append(positions, dbConverter.ConvertPosition(position))
	}

	return positions, rows.Err()
}

func (r *Postgres) GetPosition(ctx context.Context, ownerID, id string) (position model.Position, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetPosition"
	query := `
		SELECT ` + positionColumns + `
		FROM positions
		WHERE owner_id = $1
		AND id = $2
		`

	slog.Debug("GetPosition start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("GetPosition failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetPosition completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	dbPosition := dbModel.Position{}
	err = r.txOrDb(ctx).QueryRowxContext(ctx, query, ownerID, id).StructScan(&dbPosition)
	if err != nil {
		return model.Position{}, mapError(err)
	}

	return dbConverter.ConvertPosition(dbPosition), nil
}

func (r *Postgres) InsertPosition(ctx context.Context, position model.Position) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.InsertPosition"
	query := `
		INSERT INTO positions (id, owner_id, symbol, name, currency, quantity, purchase_price, purchase_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`

	slog.Debug("InsertPosition start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("InsertPosition failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("InsertPosition completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	_, err = r.txOrDb(ctx).ExecContext(
		ctx,
		query,
		position.ID,
		position.OwnerID,
		position.Symbol,
		position.Name,
		position.Currency,
		position.Quantity,
		position.PurchasePrice,
		position.PurchaseDate,
	)

	return mapError(err)
}

func (r *Postgres) UpdatePosition(ctx context.Context, position model.Position) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.UpdatePosition"
	query := `
		UPDATE positions
		SET name = $3, currency = $4, quantity = $5, purchase_price = $6, purchase_date = $7
		WHERE owner_id = $1
		AND id = $2
		`

	slog.Debug("UpdatePosition start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("UpdatePosition failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("UpdatePosition completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	res, err := r.txOrDb(ctx).ExecContext(
		ctx,
		query,
		position.OwnerID,
		position.ID,
		position.Name,
		position.Currency,
		position.Quantity,
		position.PurchasePrice,
		position.PurchaseDate,
	)
	if err != nil {
		return mapError(err)
	}

	return affectedOrNotFound(res)
}

func (r *Postgres) DeletePosition(ctx context.Context, ownerID, id string) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.DeletePosition"
	query := `DELETE FROM positions WHERE owner_id = $1 AND id = $2`

	slog.Debug("DeletePosition start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("DeletePosition failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("DeletePosition completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	res, err := r.txOrDb(ctx).ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return mapError(err)
	}

	return affectedOrNotFound(res)
}

// ListAllSymbols returns the distinct symbols held across all owners.
func (r *Postgres) ListAllSymbols(ctx context.Context) (symbols []string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.ListAllSymbols"
	query := `SELECT DISTINCT upper(symbol) FROM positions ORDER BY 1`

	slog.Debug("ListAllSymbols start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("ListAllSymbols failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("ListAllSymbols completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	symbols = make([]string, 0)
	err = r.txOrDb(ctx).SelectContext(ctx, &symbols, query)
	if err != nil {
		return nil, mapError(err)
	}

	return symbols, nil
}
