package googleDriveApi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/config"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestDeleteOldFiles(t *testing.T) {
	var (
		mu      sync.Mutex
		deleted []string
		query   string
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /files", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		query = r.URL.Query().Get("q")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"files":[
			{"id":"old","name":"portfolio_report_u1_20261012T000000.xlsx","createdTime":"2026-10-12T00:00:00Z"},
			{"id":"fresh","name":"portfolio_report_u1_20261014T080000.xlsx","createdTime":"2026-10-14T08:00:00Z"},
			{"id":"foreign","name":"notes.txt","createdTime":"2020-01-01T00:00:00Z"},
			{"id":"broken","name":"portfolio_report_u2.xlsx","createdTime":"yesterday"}
		]}`))
	})
	mux.HandleFunc("DELETE /files/{id}", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		deleted = append(deleted, r.PathValue("id"))
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.GoogleDrive.FileTTL = 24 * time.Hour
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))

	api, err := New(context.Background(), cfg, clock,
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)

	require.NoError(t, api.DeleteOldFiles(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, strings.Contains(query, ReportPrefix))
	assert.Equal(t, []string{"old", "trash"}, deleted)
}

func TestReportFilename(t *testing.T) {
	at := time.Date(2026, 10, 14, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, "portfolio_report_u1_20261014T093005.xlsx", ReportFilename("u1", at, ".xlsx"))
}
