package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Position struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"-"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Currency      string          `json:"currency"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
}

// Invested is the cost basis of the position.
func (p Position) Invested() decimal.Decimal {
	return p.PurchasePrice.Mul(p.Quantity)
}

// PositionPatch holds the editable fields of a position, nil means unchanged.
type PositionPatch struct {
	Name          *string
	Currency      *string
	Quantity      *decimal.Decimal
	PurchasePrice *decimal.Decimal
	PurchaseDate  *time.Time
}
