package rest

import (
	"log/slog"
	"net/http"

	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/utils"
)

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type userResponse struct {
	Success bool     `json:"success,omitempty"`
	User    userView `json:"user"`
}

func toUserView(u model.User) userView {
	return userView{ID: u.ID, Email: u.Email, Name: u.Name}
}

func (ctrl *Controller) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if _, err := ctrl.auth.Signup(ctx, req.Email, req.Name, req.Password); err != nil {
		writeError(ctx, w, err)
		return
	}

	token, user, err := ctrl.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	ctrl.setSessionCookie(w, token)
	writeJSON(w, http.StatusCreated, userResponse{Success: true, User: toUserView(user)})
}

func (ctrl *Controller) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	token, user, err := ctrl.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	ctrl.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, userResponse{Success: true, User: toUserView(user)})
}

func (ctrl *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)

	if cookie, err := r.Cookie(ctrl.cfg.Session.CookieName); err == nil {
		if err = ctrl.auth.Logout(ctx, cookie.Value); err != nil {
			slog.Error("got error from auth.Logout", slog.String("rqID", rqID), slog.String("err", err.Error()))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     ctrl.cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ctrl.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (ctrl *Controller) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var token string
	if cookie, err := r.Cookie(ctrl.cfg.Session.CookieName); err == nil {
		token = cookie.Value
	}

	user, err := ctrl.auth.Me(ctx, token)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: toUserView(user)})
}

func (ctrl *Controller) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     ctrl.cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ctrl.cfg.Session.Expiration.Seconds()),
		HttpOnly: true,
		Secure:   ctrl.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
