// Package dividendProjection projects yearly and monthly dividend income of a portfolio.
package dividendProjection

import (
	"strings"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/shopspring/decimal"
)

const projectionMonths = 12

var hundred = decimal.NewFromInt(100)

// Project builds dividend stats for positions using meta keyed by upper-cased
// symbol. The monthly series starts with the UTC month of now. Each holding is
// credited once, in the month of its next dividend date.
func Project(positions []model.Position, meta map[string]model.DividendMeta, now time.Time) model.DividendStats {
	stats := model.DividendStats{
		MonthlyProjections: []model.MonthlyDividend{},
		StockDividends:     []model.StockDividend{},
	}
	if len(positions) == 0 {
		return stats
	}

	for _, p := range positions {
		stats.TotalInvested = stats.TotalInvested.Add(p.Invested())

		m, ok := meta[strings.ToUpper(p.Symbol)]
		if !ok || !m.AnnualPerShare.IsPositive() {
			continue
		}

		sd := model.StockDividend{
			Symbol:                 p.Symbol,
			Name:                   p.Name,
			Quantity:               p.Quantity,
			PurchasePrice:          p.PurchasePrice,
			AnnualDividendPerShare: m.AnnualPerShare,
			AnnualDividendTotal:    m.AnnualPerShare.Mul(p.Quantity),
			YieldOnCost:            percent(m.AnnualPerShare, p.PurchasePrice),
			Frequency:              m.Frequency,
			LastDividendDate:       m.LastDate,
			NextDividendDate:       m.NextDate,
		}
		stats.TotalAnnualDividends = stats.TotalAnnualDividends.Add(sd.AnnualDividendTotal)
		stats.StockDividends = append(stats.StockDividends, sd)
	}

	stats.OverallYieldOnCost = percent(stats.TotalAnnualDividends, stats.TotalInvested)
	stats.MonthlyProjections = monthly(stats.StockDividends, now)

	return stats
}

func monthly(dividends []model.StockDividend, now time.Time) []model.MonthlyDividend {
	// dividend dates are UTC days, so months are UTC months
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	res := make([]model.MonthlyDividend, 0, projectionMonths)
	for i := range projectionMonths {
		start := first.AddDate(0, i, 0)
		end := start.AddDate(0, 1, 0)

		amount := decimal.Zero
		for _, sd := range dividends {
			if sd.NextDividendDate == nil {
				continue
			}
			next := *sd.NextDividendDate
			if next.Before(start) || !next.Before(end) {
				continue
			}
			amount = amount.Add(sd.AnnualDividendTotal.Div(decimal.NewFromInt(sd.Frequency.OccurrencesPerYear())))
		}

		res = append(res, model.MonthlyDividend{
			Month:      start.Format("2006-01"),
			MonthLabel: start.Format("Jan"),
			Amount:     amount,
		})
	}
	return res
}

func percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
