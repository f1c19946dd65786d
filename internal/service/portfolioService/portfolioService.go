package portfolioService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/data/repository"
	"github.com/KotFed0t/portfolio_dashboard/internal/calculator/dividendProjection"
	"github.com/KotFed0t/portfolio_dashboard/internal/calculator/valuation"
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/internal/quoteGateway"
	"github.com/KotFed0t/portfolio_dashboard/internal/service"
	"github.com/KotFed0t/portfolio_dashboard/utils"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

const defaultCurrency = "USD"

type Repository interface {
	ListPositions(ctx context.Context, ownerID string) ([]model.Position, error)
	GetPosition(ctx context.Context, ownerID, id string) (model.Position, error)
	InsertPosition(ctx context.Context, position model.Position) error
	UpdatePosition(ctx context.Context, position model.Position) error
	DeletePosition(ctx context.Context, ownerID, id string) error
	ListAllSymbols(ctx context.Context) ([]string, error)
	ListDividends(ctx context.Context, ownerID string, from, to *time.Time) ([]model.DividendRecord, error)
	InsertDividend(ctx context.Context, dividend model.DividendRecord) error
	DeleteDividend(ctx context.Context, ownerID, id string) error
	SumDividends(ctx context.Context, ownerID string) (decimal.Decimal, error)
	WithinTransaction(ctx context.Context, tFunc func(ctx context.Context) error) error
}

type QuoteGateway interface {
	FetchQuote(ctx context.Context, ticker string) (model.Quote, error)
	Stats() map[string]quoteGateway.ProviderStats
}

type BulkFetcher interface {
	FetchMany(ctx context.Context, tickers []string) map[string]model.Quote
}

type SearchResolver interface {
	Search(ctx context.Context, query string) []model.SearchResult
}

type DividendSource interface {
	GetDividendMeta(ctx context.Context, ownerID string, symbols []string) map[string]model.DividendMeta
}

type PortfolioService struct {
	repo      Repository
	gateway   QuoteGateway
	bulk      BulkFetcher
	search    SearchResolver
	dividends DividendSource
	reports   ReportGenerator
	storage   CloudStorage
	clock     clockwork.Clock
	idGen     func() string
}

type Option func(*PortfolioService)

// WithCloudStorage enables report upload.
func WithCloudStorage(storage CloudStorage) Option {
	return func(s *PortfolioService) { s.storage = storage }
}

// WithIDGenerator replaces the uuid generator of new records.
func WithIDGenerator(gen func() string) Option {
	return func(s *PortfolioService) { s.idGen = gen }
}

func New(
	repo Repository,
	gateway QuoteGateway,
	bulk BulkFetcher,
	search SearchResolver,
	dividends DividendSource,
	reports ReportGenerator,
	clock clockwork.Clock,
	opts ...Option,
) *PortfolioService {
	s := &PortfolioService{
		repo:      repo,
		gateway:   gateway,
		bulk:      bulk,
		search:    search,
		dividends: dividends,
		reports:   reports,
		clock:     clock,
		idGen:     utils.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetStats values the owner's portfolio at the best available prices.
func (s *PortfolioService) GetStats(ctx context.Context, ownerID string) (report model.PortfolioReport, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.GetStats"

	slog.Debug("GetStats start", slog.String("rqID", rqID), slog.String("op", op), slog.String("ownerID", ownerID))
	defer func() {
		slog.Debug("GetStats finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("ownerID", ownerID))
	}()

	positions, err := s.repo.ListPositions(ctx, ownerID)
	if err != nil {
		slog.Error("got error from repo.ListPositions", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.PortfolioReport{}, err
	}

	quotes := s.bulk.FetchMany(ctx, symbolsOf(positions))
	stats, valuations := valuation.Valuate(positions, quotes)

	total, err := s.repo.SumDividends(ctx, ownerID)
	if err != nil {
		slog.Warn("can't sum recorded dividends", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	} else {
		stats.TotalDividends = total
	}

	return model.PortfolioReport{Stats: stats, Positions: valuations}, nil
}

func (s *PortfolioService) GetDividendStats(ctx context.Context, ownerID string) (model.DividendStats, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.GetDividendStats"

	slog.Debug("GetDividendStats start", slog.String("rqID", rqID), slog.String("op", op), slog.String("ownerID", ownerID))
	defer func() {
		slog.Debug("GetDividendStats finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("ownerID", ownerID))
	}()

	positions, err := s.repo.ListPositions(ctx, ownerID)
	if err != nil {
		slog.Error("got error from repo.ListPositions", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.DividendStats{}, err
	}

	var meta map[string]model.DividendMeta
	if len(positions) > 0 {
		meta = s.dividends.GetDividendMeta(ctx, ownerID, symbolsOf(positions))
	}

	return dividendProjection.Project(positions, meta, s.clock.Now()), nil
}

func (s *PortfolioService) GetQuote(ctx context.Context, symbol string) (model.Quote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.GetQuote"

	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return model.Quote{}, fmt.Errorf("%w: symbol is required", service.ErrInvalidInput)
	}

	quote, err := s.gateway.FetchQuote(ctx, symbol)
	if err != nil {
		if errors.Is(err, quoteGateway.ErrUnavailable) {
			slog.Warn("quote unavailable", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))
			return model.Quote{}, service.ErrNotFound
		}
		return model.Quote{}, err
	}

	return quote, nil
}

func (s *PortfolioService) GetQuotes(ctx context.Context, symbols []string) (map[string]model.Quote, error) {
	cleaned := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		if sym = normalizeSymbol(sym); sym != "" {
			cleaned = append(cleaned, sym)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: symbols are required", service.ErrInvalidInput)
	}

	return s.bulk.FetchMany(ctx, cleaned), nil
}

func (s *PortfolioService) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", service.ErrInvalidInput)
	}
	return s.search.Search(ctx, query), nil
}

func (s *PortfolioService) ProviderStats() map[string]quoteGateway.ProviderStats {
	return s.gateway.Stats()
}

// WarmQuotes refreshes the quote cache for every symbol held by any owner.
func (s *PortfolioService) WarmQuotes(ctx context.Context) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.WarmQuotes"

	symbols, err := s.repo.ListAllSymbols(ctx)
	if err != nil {
		slog.Error("got error from repo.ListAllSymbols", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	quotes := s.bulk.FetchMany(ctx, symbols)

	slog.Info("quotes warmed", slog.String("rqID", rqID), slog.String("op", op), slog.Int("symbols", len(symbols)), slog.Int("resolved", len(quotes)))

	return nil
}

func symbolsOf(positions []model.Position) []string {
	res := make([]string, 0, len(positions))
	for _, p := range positions {
		res = append(res, p.Symbol)
	}
	return res
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return service.ErrNotFound
	}
	return err
}
