// Package valuation computes portfolio aggregates from positions and quotes.
package valuation

import (
	"strings"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Valuate is a pure function of its inputs. Positions without a quote are
// valued at their purchase price. Quotes are looked up by upper-cased symbol.
func Valuate(positions []model.Position, quotes map[string]model.Quote) (model.PortfolioStats, []model.PositionValuation) {
	stats := model.PortfolioStats{}
	valuations := make([]model.PositionValuation, 0, len(positions))

	for _, p := range positions {
		v := model.PositionValuation{
			Position:     p,
			PriceSource:  model.PriceSourceCostBasis,
			CurrentPrice: p.PurchasePrice,
			Invested:     p.Invested(),
		}

		quote, ok := quotes[strings.ToUpper(p.Symbol)]
		if ok && quote.IsValid() {
			v.PriceSource = model.PriceSourceQuote
			v.CurrentPrice = quote.Price
			v.DayChange = quote.Change.Mul(p.Quantity)
			stats.TodayChange = stats.TodayChange.Add(v.DayChange)
			stats.PricedPositions++
		} else {
			stats.UnpricedPositions++
		}

		v.CurrentValue = v.CurrentPrice.Mul(p.Quantity)
		v.GainLoss = v.CurrentValue.Sub(v.Invested)
		v.GainLossPercent = percent(v.GainLoss, v.Invested)

		stats.TotalValue = stats.TotalValue.Add(v.CurrentValue)
		stats.TotalInvested = stats.TotalInvested.Add(v.Invested)

		valuations = append(valuations, v)
	}

	// weights need the final total
	for i := range valuations {
		valuations[i].Weight = percent(valuations[i].CurrentValue, stats.TotalValue)
	}

	stats.TotalGain = stats.TotalValue.Sub(stats.TotalInvested)
	stats.TotalGainPercent = percent(stats.TotalGain, stats.TotalInvested)
	stats.TodayChangePercent = percent(stats.TodayChange, stats.TotalValue)

	return stats, valuations
}

// percent returns part/whole*100, or zero when whole is not positive.
func percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
