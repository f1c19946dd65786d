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

func (s *PortfolioService) ListPositions(ctx context.Context, ownerID string) ([]model.Position, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.ListPositions"

	positions, err := s.repo.ListPositions(ctx, ownerID)
	if err != nil {
		slog.Error("got error from repo.ListPositions", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	return positions, nil
}

// AddPosition stores a new holding. A missing name or currency is taken from
// the current quote when one is available.
func (s *PortfolioService) AddPosition(ctx context.Context, ownerID string, position model.Position) (model.Position, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.AddPosition"

	slog.Debug("AddPosition start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", position.Symbol))
	defer func() {
		slog.Debug("AddPosition finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", position.Symbol))
	}()

	position.ID = s.idGen()
	position.OwnerID = ownerID
	position.Symbol = normalizeSymbol(position.Symbol)
	if position.PurchaseDate.IsZero() {
		position.PurchaseDate = s.clock.Now().UTC().Truncate(24 * time.Hour)
	}

	if err := validatePosition(position); err != nil {
		return model.Position{}, err
	}

	if position.Name == "" || position.Currency == "" {
		s.enrichPosition(ctx, &position)
	}

	if err := s.repo.InsertPosition(ctx, position); err != nil {
		slog.Error("got error from repo.InsertPosition", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Position{}, mapRepoError(err)
	}

	return position, nil
}

// UpdatePosition applies patch to the stored position inside one transaction.
func (s *PortfolioService) UpdatePosition(ctx context.Context, ownerID, id string, patch model.PositionPatch) (model.Position, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.UpdatePosition"

	slog.Debug("UpdatePosition start", slog.String("rqID", rqID), slog.String("op", op), slog.String("id", id))
	defer func() {
		slog.Debug("UpdatePosition finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("id", id))
	}()

	if id == "" {
		return model.Position{}, fmt.Errorf("%w: id is required", service.ErrInvalidInput)
	}

	var updated model.Position
	err := s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		position, err := s.repo.GetPosition(ctx, ownerID, id)
		if err != nil {
			return mapRepoError(err)
		}

		applyPatch(&position, patch)
		if err = validatePosition(position); err != nil {
			return err
		}

		if err = s.repo.UpdatePosition(ctx, position); err != nil {
			return mapRepoError(err)
		}

		updated = position
		return nil
	})
	if err != nil {
		slog.Warn("UpdatePosition failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Position{}, err
	}

	return updated, nil
}

func (s *PortfolioService) DeletePosition(ctx context.Context, ownerID, id string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.DeletePosition"

	if id == "" {
		return fmt.Errorf("%w: id is required", service.ErrInvalidInput)
	}

	if err := s.repo.DeletePosition(ctx, ownerID, id); err != nil {
		slog.Warn("got error from repo.DeletePosition", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return mapRepoError(err)
	}

	return nil
}

func (s *PortfolioService) enrichPosition(ctx context.Context, position *model.Position) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.enrichPosition"

	quote, err := s.gateway.FetchQuote(ctx, position.Symbol)
	if err != nil {
		slog.Warn("can't enrich position from quote", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", position.Symbol), slog.String("err", err.Error()))
	}

	if position.Name == "" {
		position.Name = quote.Name
	}
	if position.Name == "" {
		position.Name = position.Symbol
	}
	if position.Currency == "" {
		position.Currency = quote.Currency
	}
	if position.Currency == "" {
		position.Currency = defaultCurrency
	}
}

func applyPatch(position *model.Position, patch model.PositionPatch) {
	if patch.Name != nil {
		position.Name = *patch.Name
	}
	if patch.Currency != nil {
		position.Currency = *patch.Currency
	}
	if patch.Quantity != nil {
		position.Quantity = *patch.Quantity
	}
	if patch.PurchasePrice != nil {
		position.PurchasePrice = *patch.PurchasePrice
	}
	if patch.PurchaseDate != nil {
		position.PurchaseDate = *patch.PurchaseDate
	}
}

func validatePosition(p model.Position) error {
	switch {
	case p.Symbol == "":
		return fmt.Errorf("%w: symbol is required", service.ErrInvalidInput)
	case p.Quantity.IsNegative():
		return fmt.Errorf("%w: quantity must not be negative", service.ErrInvalidInput)
	case !p.PurchasePrice.IsPositive():
		return fmt.Errorf("%w: purchase price must be positive", service.ErrInvalidInput)
	}
	return nil
}
