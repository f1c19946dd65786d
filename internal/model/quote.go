package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the normalized price snapshot produced by a quote provider.
// Values are never mutated after creation, a refresh produces a new Quote.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
	Volume        int64           `json:"volume"`
	MarketCap     decimal.Decimal `json:"marketCap"`
	Currency      string          `json:"currency"`
	Provider      string          `json:"provider"`
	FetchedAt     time.Time       `json:"fetchedAt"`
}

// IsValid reports whether the quote carries a usable price.
func (q Quote) IsValid() bool {
	return q.Price.IsPositive()
}
