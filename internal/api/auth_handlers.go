package api

import (
	"net/http"

	"github.com/unclebandit/campaignhub-backend/internal/httpx"
	"github.com/unclebandit/campaignhub-backend/internal/service"
	"github.com/unclebandit/campaignhub-backend/internal/session"
)

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.Auth.Register(service.RegisterParams{
		Email:    body.Email,
		Name:     body.Name,
		Password: body.Password,
	})
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, user)
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := a.Auth.Login(body.Email, body.Password)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.JSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if err := a.Auth.Logout(sess.ID); err != nil {
		a.writeServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func (a *API) currentSession(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	user, err := a.Auth.Current(sess)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"session": sess,
		"user":    user,
	})
}
