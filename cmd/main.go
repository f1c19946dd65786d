package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/config"
	"github.com/KotFed0t/portfolio_dashboard/data"
	"github.com/KotFed0t/portfolio_dashboard/data/cache"
	"github.com/KotFed0t/portfolio_dashboard/data/repository/postgres"
	"github.com/KotFed0t/portfolio_dashboard/data/session"
	"github.com/KotFed0t/portfolio_dashboard/internal/bulkFetcher"
	"github.com/KotFed0t/portfolio_dashboard/internal/dividendData"
	"github.com/KotFed0t/portfolio_dashboard/internal/externalApi/cloudStorageApi/googleDriveApi"
	"github.com/KotFed0t/portfolio_dashboard/internal/externalApi/finnhubApi"
	"github.com/KotFed0t/portfolio_dashboard/internal/externalApi/twelveDataApi"
	"github.com/KotFed0t/portfolio_dashboard/internal/httpserver"
	"github.com/KotFed0t/portfolio_dashboard/internal/quoteCache"
	"github.com/KotFed0t/portfolio_dashboard/internal/quoteGateway"
	"github.com/KotFed0t/portfolio_dashboard/internal/reportGenerator/xlsxGenerator"
	"github.com/KotFed0t/portfolio_dashboard/internal/scheduler"
	"github.com/KotFed0t/portfolio_dashboard/internal/searchResolver"
	"github.com/KotFed0t/portfolio_dashboard/internal/service/authService"
	"github.com/KotFed0t/portfolio_dashboard/internal/service/portfolioService"
	"github.com/KotFed0t/portfolio_dashboard/internal/transport/rest"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	slog.Debug("config", slog.Any("cfg", cfg))

	// money goes out as json numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()

	pgClient, err := data.NewPostgresClient(ctx, cfg)
	if err != nil {
		slog.Error("can't connect to postgres", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer pgClient.Close()

	pgRepo := postgres.NewPostgres(cfg, pgClient)

	redisClient, err := data.NewRedisClient(ctx, cfg)
	if err != nil {
		slog.Error("can't connect to redis", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()

	redisCache := cache.NewRedisCache(redisClient, cfg)
	redisSession := session.NewRedisSession(redisClient)

	twelveDataClient := twelveDataApi.New(cfg)
	finnhubClient := finnhubApi.New(cfg)

	quoteGw := quoteGateway.New(
		quoteCache.New(clock, cfg.Cache.QuoteFreshness),
		clock,
		cfg.API.Timeout,
		twelveDataClient,
		finnhubClient,
	)
	bulk := bulkFetcher.New(quoteGw, clock, cfg.Bulk.BatchSize, cfg.Bulk.BatchPause)
	search := searchResolver.New(quoteGw, finnhubClient, twelveDataClient)
	dividendSource := dividendData.New(redisCache, finnhubClient, pgRepo, clock)

	sched, err := scheduler.New(clock)
	if err != nil {
		slog.Error("can't create scheduler", slog.String("err", err.Error()))
		os.Exit(1)
	}

	var portfolioOpts []portfolioService.Option
	if cfg.GoogleDrive.CredentialsFile != "" {
		driveClient, err := googleDriveApi.New(ctx, cfg, clock)
		if err != nil {
			slog.Error("can't create google drive client", slog.String("err", err.Error()))
			os.Exit(1)
		}
		portfolioOpts = append(portfolioOpts, portfolioService.WithCloudStorage(driveClient))

		if err = sched.NewIntervalJob("delete expired drive reports", driveClient.DeleteOldFiles, cfg.GoogleDrive.CleanupInterval, false); err != nil {
			os.Exit(1)
		}
	} else {
		slog.Info("google drive credentials are not set, report upload disabled")
	}

	portfolioSrv := portfolioService.New(
		pgRepo,
		quoteGw,
		bulk,
		search,
		dividendSource,
		xlsxGenerator.New(),
		clock,
		portfolioOpts...,
	)
	authSrv := authService.New(cfg, pgRepo, redisSession, clock)

	if err = sched.NewIntervalJob("warm quote cache", portfolioSrv.WarmQuotes, cfg.Jobs.WarmQuotesInterval, true); err != nil {
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	ctrl := rest.NewController(cfg, portfolioSrv, authSrv)

	server := httpserver.New(cfg, rest.NewRouter(cfg, ctrl, authSrv))
	server.Start()
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stopCancel()
		server.Stop(stopCtx)
	}()

	// Waiting interruption signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-interrupt
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
