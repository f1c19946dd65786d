package postgres

import (
	"context"
	"log/slog"

	"github.com/KotFed0t/portfolio_dashboard/internal/converter/dbConverter"
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/internal/model/dbModel"
	"github.com/KotFed0t/portfolio_dashboard/utils"
)

func (r *Postgres) InsertUser(ctx context.Context, user model.User) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.InsertUser"
	query := `INSERT INTO users (id, email, name, password_hash) VALUES ($1, $2, $3, $4)`

	slog.Debug("InsertUser start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("InsertUser failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("InsertUser completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	_, err = r.txOrDb(ctx).ExecContext(ctx, query, user.ID, user.Email, user.Name, user.PasswordHash)

	return mapError(err)
}

func (r *Postgres) GetUserByEmail(ctx context.Context, email string) (user model.User, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetUserByEmail"
	query := `SELECT id, email, name, password_hash, dt_create FROM users WHERE email = $1`

	slog.Debug("GetUserByEmail start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("GetUserByEmail failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetUserByEmail completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	dbUser := dbModel.User{}
	err = r.txOrDb(ctx).QueryRowxContext(ctx, query, email).StructScan(&dbUser)
	if err != nil {
		return model.User{}, mapError(err)
	}

	return dbConverter.ConvertUser(dbUser), nil
}

func (r *Postgres) GetUserByID(ctx context.Context, id string) (user model.User, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetUserByID"
	query := `SELECT id, email, name, password_hash, dt_create FROM users WHERE id = $1`

	slog.Debug("GetUserByID start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("GetUserByID failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetUserByID completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	dbUser := dbModel.User{}
	err = r.txOrDb(ctx).QueryRowxContext(ctx, query, id).StructScan(&dbUser)
	if err != nil {
		return model.User{}, mapError(err)
	}

	return dbConverter.ConvertUser(dbUser), nil
}
