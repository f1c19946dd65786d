package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/utils"
	chiMW "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (model.Session, error)
}

// Logger puts a request id into the context and logs every request.
func Logger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()

			rqID := r.Header.Get(RequestIDHeader)
			if rqID == "" {
				rqID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, rqID)

			slog.Info(
				"start request",
				slog.String("rqID", rqID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			ww := chiMW.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				slog.Info(
					"request finished",
					slog.String("rqID", rqID),
					slog.Int("status", ww.Status()),
					slog.String("request duration", fmt.Sprintf("%.2fs", time.Since(now).Seconds())),
				)
			}()

			next.ServeHTTP(ww, r.WithContext(utils.CtxWithRqID(r.Context(), rqID)))
		})
	}
}

// Auth rejects requests without a live session cookie and puts the owner into the context.
func Auth(resolver SessionResolver, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			rqID := utils.GetRequestIDFromCtx(ctx)

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			sess, err := resolver.ResolveSession(ctx, cookie.Value)
			if err != nil {
				slog.Info("session rejected", slog.String("rqID", rqID), slog.String("err", err.Error()))
				unauthorized(w)
				return
			}

			ctx = utils.CtxWithOwnerID(ctx, sess.UserID)
			ctx = utils.CtxWithOwnerName(ctx, sess.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}
