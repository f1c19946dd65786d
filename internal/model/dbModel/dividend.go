package dbModel

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Dividend struct {
	ID          uuid.UUID       `db:"id"`
	OwnerID     uuid.UUID       `db:"owner_id"`
	StockSymbol string          `db:"stock_symbol"`
	StockName   string          `db:"stock_name"`
	Amount      decimal.Decimal `db:"amount"`
	ExDate      time.Time       `db:"ex_date"`
	PaymentDate time.Time       `db:"payment_date"`
	Frequency   string          `db:"frequency"`
	Currency    string          `db:"currency"`
	CreatedAt   time.Time       `db:"dt_create"`
}
