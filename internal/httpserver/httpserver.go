package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/KotFed0t/portfolio_dashboard/config"
)

type HTTPServer struct {
	srv *http.Server
}

func New(cfg *config.Config, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		srv: &http.Server{
			Addr:         cfg.HTTP.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		},
	}
}

func (s *HTTPServer) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped with error", slog.String("err", err.Error()))
		}
	}()
	slog.Info("http server started!", slog.String("addr", s.srv.Addr))
}

func (s *HTTPServer) Stop(ctx context.Context) {
	slog.Info("start stopping http server")
	if err := s.srv.Shutdown(ctx); err != nil {
		slog.Error("http server shutdown failed", slog.String("err", err.Error()))
	}
	slog.Info("http server stopped")
}
