package dbConverter

import (
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/internal/model/dbModel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConvertPosition(t *testing.T) {
	id, owner := uuid.New(), uuid.New()
	purchased := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	p := ConvertPosition(dbModel.Position{
		ID:            id,
		OwnerID:       owner,
		Symbol:        "AAPL",
		Name:          "Apple Inc.",
		Currency:      "USD",
		Quantity:      decimal.NewFromFloat(1.5),
		PurchasePrice: decimal.NewFromInt(170),
		PurchaseDate:  purchased,
	})

	assert.Equal(t, id.String(), p.ID)
	assert.Equal(t, owner.String(), p.OwnerID)
	assert.Equal(t, "AAPL", p.Symbol)
	assert.True(t, decimal.NewFromInt(255).Equal(p.Invested()))
	assert.Equal(t, purchased, p.PurchaseDate)
}

func TestConvertDividend(t *testing.T) {
	d := ConvertDividend(dbModel.Dividend{
		ID:          uuid.New(),
		StockSymbol: "KO",
		Amount:      decimal.NewFromFloat(0.51),
		Frequency:   "quarterly",
	})

	assert.Equal(t, model.FrequencyQuarterly, d.Frequency)
	assert.Equal(t, "KO", d.StockSymbol)
}
