package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/KotFed0t/portfolio_dashboard/internal/service"
	"github.com/KotFed0t/portfolio_dashboard/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type driveLinkResponse struct {
	Link string `json:"link"`
}

func (ctrl *Controller) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, err := ownerFromCtx(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := ctrl.portfolio.GetStats(ctx, ownerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (ctrl *Controller) DividendStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, err := ownerFromCtx(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := ctrl.portfolio.GetDividendStats(ctx, ownerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Quote serves ?symbol= with one quote or ?symbols=a,b with a map keyed by symbol.
func (ctrl *Controller) Quote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	if symbols := query.Get("symbols"); symbols != "" {
		quotes, err := ctrl.portfolio.GetQuotes(ctx, strings.Split(symbols, ","))
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		writeJSON(w, http.StatusOK, quotes)
		return
	}

	symbol := query.Get("symbol")
	if symbol == "" {
		writeError(ctx, w, fmt.Errorf("%w: symbol or symbols parameter required", service.ErrInvalidInput))
		return
	}

	quote, err := ctrl.portfolio.GetQuote(ctx, symbol)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

func (ctrl *Controller) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	results, err := ctrl.portfolio.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (ctrl *Controller) ProviderStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ctrl.portfolio.ProviderStats())
}

func (ctrl *Controller) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, err := ownerFromCtx(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fileBytes, filename, err := ctrl.portfolio.ExportReport(ctx, ownerID, utils.GetOwnerNameFromCtx(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(fileBytes)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(fileBytes)
}

func (ctrl *Controller) ExportToDrive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, err := ownerFromCtx(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	link, err := ctrl.portfolio.UploadReport(ctx, ownerID, utils.GetOwnerNameFromCtx(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, driveLinkResponse{Link: link})
}
