package portfolioService

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/KotFed0t/portfolio_dashboard/internal/externalApi/cloudStorageApi/googleDriveApi"
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/internal/service"
	"github.com/KotFed0t/portfolio_dashboard/utils"
	"golang.org/x/sync/errgroup"
)

type ReportGenerator interface {
	Generate(ctx context.Context, report model.PortfolioExport) (fileBytes []byte, fileExtension string, err error)
}

type CloudStorage interface {
	UploadFile(ctx context.Context, reader io.Reader, filename string) (downloadLink string, err error)
}

// ExportReport renders the owner's portfolio and dividend projection into a spreadsheet.
func (s *PortfolioService) ExportReport(ctx context.Context, ownerID, ownerName string) (fileBytes []byte, filename string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.ExportReport"

	slog.Debug("ExportReport start", slog.String("rqID", rqID), slog.String("op", op), slog.String("ownerID", ownerID))
	defer func() {
		slog.Debug("ExportReport finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("ownerID", ownerID))
	}()

	var (
		report    model.PortfolioReport
		dividends model.DividendStats
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		report, err = s.GetStats(gCtx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		dividends, err = s.GetDividendStats(gCtx, ownerID)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, "", err
	}

	now := s.clock.Now()
	fileBytes, ext, err := s.reports.Generate(ctx, model.PortfolioExport{
		OwnerName:   ownerName,
		GeneratedAt: now,
		Stats:       report.Stats,
		Positions:   report.Positions,
		Dividends:   dividends,
	})
	if err != nil {
		slog.Error("got error from reports.Generate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	return fileBytes, googleDriveApi.ReportFilename(ownerID, now, ext), nil
}

// UploadReport exports the report and stores it in the cloud, returning a download link.
func (s *PortfolioService) UploadReport(ctx context.Context, ownerID, ownerName string) (string, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.UploadReport"

	if s.storage == nil {
		return "", service.ErrNotConfigured
	}

	fileBytes, filename, err := s.ExportReport(ctx, ownerID, ownerName)
	if err != nil {
		return "", err
	}

	link, err := s.storage.UploadFile(ctx, bytes.NewReader(fileBytes), filename)
	if err != nil {
		slog.Error("got error from storage.UploadFile", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return "", err
	}

	slog.Info("report uploaded", slog.String("rqID", rqID), slog.String("op", op), slog.String("filename", filename))

	return link, nil
}
