package dbModel

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Position struct {
	ID            uuid.UUID       `db:"id"`
	OwnerID       uuid.UUID       `db:"owner_id"`
	Symbol        string          `db:"symbol"`
	Name          string          `db:"name"`
	Currency      string          `db:"currency"`
	Quantity      decimal.Decimal `db:"quantity"`
	PurchasePrice decimal.Decimal `db:"purchase_price"`
	PurchaseDate  time.Time       `db:"purchase_date"`
	CreatedAt     time.Time       `db:"dt_create"`
}
