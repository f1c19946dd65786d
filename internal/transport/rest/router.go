package rest

import (
	"net/http"

	"github.com/KotFed0t/portfolio_dashboard/config"
	customMW "github.com/KotFed0t/portfolio_dashboard/internal/transport/rest/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(cfg *config.Config, ctrl *Controller, sessions customMW.SessionResolver) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer, customMW.Logger())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", customMW.RequestIDHeader},
		ExposedHeaders:   []string{customMW.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", ctrl.Signup)
			r.Post("/login", ctrl.Login)
			r.Post("/logout", ctrl.Logout)
			r.Get("/me", ctrl.Me)
		})

		r.Get("/stocks/quote", ctrl.Quote)
		r.Get("/stocks/search", ctrl.Search)
		r.Get("/providers/stats", ctrl.ProviderStats)

		r.Group(func(r chi.Router) {
			r.Use(customMW.Auth(sessions, cfg.Session.CookieName))

			r.Get("/stocks", ctrl.ListPositions)
			r.Post("/stocks", ctrl.AddPosition)
			r.Put("/stocks", ctrl.UpdatePosition)
			r.Delete("/stocks", ctrl.DeletePosition)

			r.Get("/dividends", ctrl.ListDividends)
			r.Post("/dividends", ctrl.AddDividend)
			r.Delete("/dividends", ctrl.DeleteDividend)

			r.Route("/portfolio", func(r chi.Router) {
				r.Get("/stats", ctrl.Stats)
				r.Get("/dividends", ctrl.DividendStats)
				r.Get("/export", ctrl.Export)
				r.Post("/export/drive", ctrl.ExportToDrive)
			})
		})
	})

	return r
}
