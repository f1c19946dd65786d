package xlsxGenerator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/utils"
	"github.com/xuri/excelize/v2"
)

const (
	PortfolioSheet = "Portfolio"
	DividendsSheet = "Dividends"

	dateLayout = "2006-01-02"
)

type XLSXGenerator struct{}

func New() *XLSXGenerator {
	return &XLSXGenerator{}
}

func (g *XLSXGenerator) Generate(ctx context.Context, report model.PortfolioExport) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "XLSXGenerator.Generate"

	slog.Debug("Generate start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("positions", len(report.Positions)))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}()

	// the default sheet becomes the portfolio sheet
	if err = f.SetSheetName("Sheet1", PortfolioSheet); err != nil {
		return nil, "", err
	}

	if err = g.fillPortfolioSheet(f, report); err != nil {
		slog.Error("got error while filling portfolio sheet", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	if _, err = f.NewSheet(DividendsSheet); err != nil {
		return nil, "", err
	}

	if err = g.fillDividendsSheet(f, report.Dividends); err != nil {
		slog.Error("got error while filling dividends sheet", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		slog.Error("got error while Saving file to bytes buffer", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	slog.Debug("Generate completed", slog.String("rqID", rqID), slog.String("op", op))

	return buf.Bytes(), ".xlsx", nil
}

func (g *XLSXGenerator) fillPortfolioSheet(f *excelize.File, report model.PortfolioExport) error {
	sheet := PortfolioSheet

	title := "Portfolio"
	if report.OwnerName != "" {
		title = fmt.Sprintf("Portfolio of %s", report.OwnerName)
	}
	if !report.GeneratedAt.IsZero() {
		title = fmt.Sprintf("%s, %s", title, report.GeneratedAt.Format(dateLayout))
	}
	if err := sectionHeader(f, sheet, "A1", "J1", title, "#cfe2f3"); err != nil {
		return err
	}

	headers := []string{"symbol", "name", "quantity", "purchase price", "current price", "value", "gain", "gain %", "weight %", "price source"}
	if err := f.SetSheetRow(sheet, "A2", &headers); err != nil {
		return err
	}

	row := 3
	for _, p := range report.Positions {
		values := []any{
			p.Position.Symbol,
			p.Position.Name,
			p.Position.Quantity.InexactFloat64(),
			p.Position.PurchasePrice.InexactFloat64(),
			p.CurrentPrice.InexactFloat64(),
			p.CurrentValue.InexactFloat64(),
			p.GainLoss.InexactFloat64(),
			p.GainLossPercent.Round(2).InexactFloat64(),
			p.Weight.Round(2).InexactFloat64(),
			string(p.PriceSource),
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
	}

	// totals
	row += 2
	if err := sectionHeader(f, sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), "Totals", "#d9ead3"); err != nil {
		return err
	}

	s := report.Stats
	totals := []struct {
		label string
		value float64
	}{
		{"total value", s.TotalValue.InexactFloat64()},
		{"total invested", s.TotalInvested.InexactFloat64()},
		{"total gain", s.TotalGain.InexactFloat64()},
		{"total gain %", s.TotalGainPercent.Round(2).InexactFloat64()},
		{"today change", s.TodayChange.InexactFloat64()},
		{"today change %", s.TodayChangePercent.Round(2).InexactFloat64()},
		{"dividends received", s.TotalDividends.InexactFloat64()},
	}
	for _, t := range totals {
		row++
		_ = f.SetCellStr(sheet, fmt.Sprintf("A%d", row), t.label)
		_ = f.SetCellFloat(sheet, fmt.Sprintf("B%d", row), t.value, -1, 64)
	}

	return nil
}

func (g *XLSXGenerator) fillDividendsSheet(f *excelize.File, stats model.DividendStats) error {
	sheet := DividendsSheet

	if err := sectionHeader(f, sheet, "A1", "C1", "Projected dividends, next 12 months", "#f9cb9c"); err != nil {
		return err
	}

	_ = f.SetCellStr(sheet, "A2", "month")
	_ = f.SetCellStr(sheet, "B2", "label")
	_ = f.SetCellStr(sheet, "C2", "amount")

	row := 3
	for _, m := range stats.MonthlyProjections {
		_ = f.SetCellStr(sheet, fmt.Sprintf("A%d", row), m.Month)
		_ = f.SetCellStr(sheet, fmt.Sprintf("B%d", row), m.MonthLabel)
		_ = f.SetCellFloat(sheet, fmt.Sprintf("C%d", row), m.Amount.InexactFloat64(), -1, 64)
		row++
	}

	row += 2
	if err := sectionHeader(f, sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), "Per holding", "#f4cccc"); err != nil {
		return err
	}

	row++
	headers := []string{"symbol", "name", "annual per share", "annual total", "yield on cost %", "next date"}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &headers); err != nil {
		return err
	}

	for _, sd := range stats.StockDividends {
		row++
		next := ""
		if sd.NextDividendDate != nil {
			next = sd.NextDividendDate.Format(dateLayout)
		}
		values := []any{
			sd.Symbol,
			sd.Name,
			sd.AnnualDividendPerShare.InexactFloat64(),
			sd.AnnualDividendTotal.InexactFloat64(),
			sd.YieldOnCost.Round(2).InexactFloat64(),
			next,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
	}

	row += 2
	_ = f.SetCellStr(sheet, fmt.Sprintf("A%d", row), "total annual")
	_ = f.SetCellFloat(sheet, fmt.Sprintf("B%d", row), stats.TotalAnnualDividends.InexactFloat64(), -1, 64)
	row++
	_ = f.SetCellStr(sheet, fmt.Sprintf("A%d", row), "yield on cost %")
	_ = f.SetCellFloat(sheet, fmt.Sprintf("B%d", row), stats.OverallYieldOnCost.Round(2).InexactFloat64(), -1, 64)

	return nil
}

// sectionHeader merges from..to, writes title into it and fills it with color.
func sectionHeader(f *excelize.File, sheet, from, to, title, color string) error {
	if err := f.MergeCell(sheet, from, to); err != nil {
		return err
	}

	if err := f.SetCellStr(sheet, from, title); err != nil {
		return err
	}

	styleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{color},
		},
	})
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(sheet, from, from, styleID); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	return nil
}
