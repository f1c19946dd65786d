package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/internal/service"
	"github.com/KotFed0t/portfolio_dashboard/utils"
)

const dateLayout = "2006-01-02"

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("can't encode response", slog.String("err", err.Error()))
	}
}

// writeError maps service errors to http statuses, unknown errors are hidden behind 500.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)

	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, service.ErrEmailTaken):
		status, msg = http.StatusConflict, "email already registered"
	case errors.Is(err, service.ErrNotConfigured):
		status, msg = http.StatusNotImplemented, "feature not configured"
	default:
		slog.Error("request failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
	}

	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed body", service.ErrInvalidInput)
	}
	return nil
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp, empty yields the zero time.
func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", service.ErrInvalidInput, field)
	}
	return t.UTC(), nil
}

func ownerFromCtx(ctx context.Context) (string, error) {
	ownerID, ok := utils.GetOwnerIDFromCtx(ctx)
	if !ok {
		return "", service.ErrUnauthorized
	}
	return ownerID, nil
}
