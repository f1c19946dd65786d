package rest

import (
	"context"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/config"
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/internal/quoteGateway"
)

type PortfolioService interface {
	GetStats(ctx context.Context, ownerID string) (model.PortfolioReport, error)
	GetDividendStats(ctx context.Context, ownerID string) (model.DividendStats, error)
	GetQuote(ctx context.Context, symbol string) (model.Quote, error)
	GetQuotes(ctx context.Context, symbols []string) (map[string]model.Quote, error)
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
	ProviderStats() map[string]quoteGateway.ProviderStats

	ListPositions(ctx context.Context, ownerID string) ([]model.Position, error)
	AddPosition(ctx context.Context, ownerID string, position model.Position) (model.Position, error)
	UpdatePosition(ctx context.Context, ownerID, id string, patch model.PositionPatch) (model.Position, error)
	DeletePosition(ctx context.Context, ownerID, id string) error

	ListDividends(ctx context.Context, ownerID string, from, to *time.Time) ([]model.DividendRecord, error)
	AddDividend(ctx context.Context, ownerID string, dividend model.DividendRecord) (model.DividendRecord, error)
	DeleteDividend(ctx context.Context, ownerID, id string) error

	ExportReport(ctx context.Context, ownerID, ownerName string) (fileBytes []byte, filename string, err error)
	UploadReport(ctx context.Context, ownerID, ownerName string) (string, error)
}

type AuthService interface {
	Signup(ctx context.Context, email, name, password string) (model.User, error)
	Login(ctx context.Context, email, password string) (token string, user model.User, err error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, token string) (model.User, error)
}

type Controller struct {
	cfg       *config.Config
	portfolio PortfolioService
	auth      AuthService
}

func NewController(cfg *config.Config, portfolio PortfolioService, auth AuthService) *Controller {
	return &Controller{
		cfg:       cfg,
		portfolio: portfolio,
		auth:      auth,
	}
}
