package api

import (
	"net/http"

	"github.com/unclebandit/campaignhub-backend/internal/httpx"
	"github.com/unclebandit/campaignhub-backend/internal/service"
)

func (a *API) listSenders(w http.ResponseWriter, r *http.Request) {
	senders, err := a.Senders.List()
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": senders})
}

func (a *API) getSender(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID int `json:"id"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sender, err := a.Senders.Get(body.ID)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, sender)
}

func (a *API) createSender(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Label   string `json:"label"`
		Address string `json:"address"`
		Channel string `json:"channel"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sender, err := a.Senders.Create(service.CreateSenderParams{
		Label:   body.Label,
		Address: body.Address,
		Channel: body.Channel,
	})
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, sender)
}

func (a *API) disableSender(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID int `json:"id"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sender, err := a.Senders.Disable(body.ID)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, sender)
}
