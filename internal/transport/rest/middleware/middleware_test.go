package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/internal/service"
	"github.com/KotFed0t/portfolio_dashboard/utils"
	"github.com/stretchr/testify/assert"
)

type fakeResolver map[string]string

func (f fakeResolver) ResolveSession(_ context.Context, token string) (model.Session, error) {
	userID, ok := f[token]
	if !ok {
		return model.Session{}, service.ErrUnauthorized
	}
	return model.Session{UserID: userID}, nil
}

func TestLogger_SetsRequestID(t *testing.T) {
	var gotRqID string
	h := Logger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRqID = utils.GetRequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, gotRqID)
	assert.Equal(t, gotRqID, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "given")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "given", gotRqID)
}

func TestAuth(t *testing.T) {
	var gotOwner string
	h := Auth(fakeResolver{"good": "user-1"}, "session_token")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOwner, _ = utils.GetOwnerIDFromCtx(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "bad"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "good"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", gotOwner)
}
