// Package api exposes the HTTP surface. Every route under /api uses
// POST with body-carried parameters — reads included — so request
// parameters stay typed end to end, and paths follow
// api/<resource>/<action> for legibility in browser network tools.
package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/unclebandit/campaignhub-backend/internal/apperrors"
	"github.com/unclebandit/campaignhub-backend/internal/httpx"
	"github.com/unclebandit/campaignhub-backend/internal/repository"
	"github.com/unclebandit/campaignhub-backend/internal/service"
	"github.com/unclebandit/campaignhub-backend/internal/session"
)

type API struct {
	Campaigns *service.CampaignService
	Senders   *service.SenderService
	Auth      *service.AuthService
	Customers repository.CustomerRepositoryInterface
	Sessions  *session.Manager
	Log       *zap.Logger
}

// Router builds the full route table.
func (a *API) Router(limiter *RateLimiter) chi.Router {
	r := chi.NewRouter()
	r.Use(Recoverer(a.Log))
	r.Use(RequestLogger(a.Log))
	r.Use(RateLimit(limiter))
	r.Use(session.Middleware(a.Sessions, a.Log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", a.register)
		r.Post("/auth/login", a.login)

		r.Group(func(r chi.Router) {
			r.Use(requireSession)

			r.Post("/auth/logout", a.logout)
			r.Post("/auth/session", a.currentSession)

			r.Post("/campaigns/list", a.listCampaigns)
			r.Post("/campaigns/get", a.getCampaign)
			r.Post("/campaigns/create", a.createCampaign)
			r.Post("/campaigns/update", a.updateCampaign)
			r.Post("/campaigns/delete", a.deleteCampaign)
			r.Post("/campaigns/preview", a.previewCampaign)
			r.Post("/campaigns/send", a.sendCampaign)
			r.Post("/campaigns/stats", a.campaignStats)

			r.Post("/senders/list", a.listSenders)
			r.Post("/senders/get", a.getSender)
			r.Post("/senders/create", a.createSender)
			r.Post("/senders/disable", a.disableSender)

			r.Post("/customers/list", a.listCustomers)
			r.Post("/customers/get", a.getCustomer)
		})
	})

	return r
}

// writeServiceError translates service errors into the conventional
// error payload. API routes catch errors here instead of letting them
// propagate.
func (a *API) writeServiceError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.AsValidation(err); ok {
		httpx.ValidationFailed(w, ve.Errors)
		return
	}
	if apperrors.IsNotFound(err) {
		httpx.Error(w, http.StatusNotFound, err.Error())
		return
	}
	if errors.Is(err, service.ErrInvalidCredentials) {
		httpx.Error(w, http.StatusUnauthorized, err.Error())
		return
	}
	a.Log.Error("unhandled service error", zap.Error(err))
	httpx.Error(w, http.StatusInternalServerError, "internal server error")
}
