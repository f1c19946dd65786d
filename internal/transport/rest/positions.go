package rest

import (
	"fmt"
	"net/http"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/internal/service"
	"github.com/shopspring/decimal"
)

type positionRequest struct {
	ID            string           `json:"id"`
	Symbol        string           `json:"symbol"`
	Name          *string          `json:"name"`
	Currency      *string          `json:"currency"`
	Quantity      *decimal.Decimal `json:"quantity"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	PurchaseDate  *string          `json:"purchaseDate"`
}

func (req positionRequest) toPosition() (model.Position, error) {
	p := model.Position{Symbol: req.Symbol}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Currency != nil {
		p.Currency = *req.Currency
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.PurchasePrice != nil {
		p.PurchasePrice = *req.PurchasePrice
	}
	if req.PurchaseDate != nil {
		date, err := parseDate("purchaseDate", *req.PurchaseDate)
		if err != nil {
			return model.Position{}, err
		}
		p.PurchaseDate = date
	}
	return p, nil
}

func (req positionRequest) toPatch() (model.PositionPatch, error) {
	patch := model.PositionPatch{
		Name:          req.Name,
		Currency:      req.Currency,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
	}
	if req.PurchaseDate != nil {
		date, err := parseDate("purchaseDate", *req.PurchaseDate)
		if err != nil {
			return model.PositionPatch{}, err
		}
		if !date.IsZero() {
			patch.PurchaseDate = &date
		}
	}
	return patch, nil
}

func (ctrl *Controller) ListPositions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, err := ownerFromCtx(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	positions, err := ctrl.portfolio.ListPositions(ctx, ownerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if positions == nil {
		positions = []model.Position{}
	}

	writeJSON(w, http.StatusOK, positions)
}

func (ctrl *Controller) AddPosition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, err := ownerFromCtx(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req positionRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	position, err := req.toPosition()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := ctrl.portfolio.AddPosition(ctx, ownerID, position)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (ctrl *Controller) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, err := ownerFromCtx(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req positionRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.ID == "" {
		writeError(ctx, w, fmt.Errorf("%w: id is required", service.ErrInvalidInput))
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := ctrl.portfolio.UpdatePosition(ctx, ownerID, req.ID, patch)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (ctrl *Controller) DeletePosition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, err := ownerFromCtx(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err = ctrl.portfolio.DeletePosition(ctx, ownerID, r.URL.Query().Get("id")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
