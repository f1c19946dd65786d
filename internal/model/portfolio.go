package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PriceSource string

const (
	// PriceSourceQuote means the position is valued at a fetched market quote.
	PriceSourceQuote PriceSource = "quote"
	// PriceSourceCostBasis means no quote was resolved and the position is valued at cost.
	PriceSourceCostBasis PriceSource = "cost_basis"
)

type PositionValuation struct {
	Position        Position        `json:"stock"`
	PriceSource     PriceSource     `json:"priceSource"`
	CurrentPrice    decimal.Decimal `json:"currentPrice"`
	CurrentValue    decimal.Decimal `json:"currentValue"`
	Invested        decimal.Decimal `json:"invested"`
	GainLoss        decimal.Decimal `json:"gainLoss"`
	GainLossPercent decimal.Decimal `json:"gainLossPercent"`
	DayChange       decimal.Decimal `json:"dayChange"`
	Weight          decimal.Decimal `json:"weight"`
}

// IsPriced reports whether the valuation is backed by a real quote.
func (v PositionValuation) IsPriced() bool {
	return v.PriceSource == PriceSourceQuote
}

type PortfolioStats struct {
	TotalValue         decimal.Decimal `json:"totalValue"`
	TotalInvested      decimal.Decimal `json:"totalInvested"`
	TotalGain          decimal.Decimal `json:"totalGain"`
	TotalGainPercent   decimal.Decimal `json:"totalGainPercent"`
	TotalDividends     decimal.Decimal `json:"totalDividends"`
	TodayChange        decimal.Decimal `json:"todayChange"`
	TodayChangePercent decimal.Decimal `json:"todayChangePercent"`
	PricedPositions    int             `json:"pricedPositions"`
	UnpricedPositions  int             `json:"unpricedPositions"`
}

type PortfolioReport struct {
	Stats     PortfolioStats      `json:"stats"`
	Positions []PositionValuation `json:"positions"`
}

type StockDividend struct {
	Symbol                 string          `json:"symbol"`
	Name                   string          `json:"name"`
	Quantity               decimal.Decimal `json:"quantity"`
	PurchasePrice          decimal.Decimal `json:"purchasePrice"`
	AnnualDividendPerShare decimal.Decimal `json:"annualDividendPerShare"`
	AnnualDividendTotal    decimal.Decimal `json:"annualDividendTotal"`
	YieldOnCost            decimal.Decimal `json:"yieldOnCost"`
	Frequency              Frequency       `json:"frequency"`
	LastDividendDate       *time.Time      `json:"lastDividendDate,omitempty"`
	NextDividendDate       *time.Time      `json:"nextDividendDate,omitempty"`
}

type MonthlyDividend struct {
	Month      string          `json:"month"`
	MonthLabel string          `json:"monthLabel"`
	Amount     decimal.Decimal `json:"amount"`
}

type DividendStats struct {
	TotalAnnualDividends decimal.Decimal   `json:"totalAnnualDividends"`
	TotalInvested        decimal.Decimal   `json:"totalInvested"`
	OverallYieldOnCost   decimal.Decimal   `json:"overallYieldOnCost"`
	MonthlyProjections   []MonthlyDividend `json:"monthlyProjections"`
	StockDividends       []StockDividend   `json:"stockDividends"`
}

// PortfolioExport is everything the spreadsheet report renders.
type PortfolioExport struct {
	OwnerName   string
	GeneratedAt time.Time
	Stats       PortfolioStats
	Positions   []PositionValuation
	Dividends   DividendStats
}
