package api

import (
	"net/http"

	"github.com/unclebandit/campaignhub-backend/internal/httpx"
	"github.com/unclebandit/campaignhub-backend/internal/service"
)

func (a *API) listCampaigns(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Page     int    `json:"page"`
		PageSize int    `json:"page_size"`
		Channel  string `json:"channel"`
		Status   string `json:"status"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	campaigns, pagination, err := a.Campaigns.List(body.Page, body.PageSize, body.Channel, body.Status)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"data":       campaigns,
		"pagination": pagination,
	})
}

func (a *API) getCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID int `json:"id"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	details, err := a.Campaigns.Details(body.ID)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, details)
}

func (a *API) createCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name         string  `json:"name"`
		Channel      string  `json:"channel"`
		BaseTemplate string  `json:"base_template"`
		SenderID     *int    `json:"sender_id"`
		ScheduledAt  *string `json:"scheduled_at"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	campaign, err := a.Campaigns.Create(service.CreateCampaignParams{
		Name:         body.Name,
		Channel:      body.Channel,
		BaseTemplate: body.BaseTemplate,
		SenderID:     body.SenderID,
		ScheduledAt:  body.ScheduledAt,
	})
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, campaign)
}

func (a *API) updateCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID           int     `json:"id"`
		Name         *string `json:"name"`
		BaseTemplate *string `json:"base_template"`
		SenderID     *int    `json:"sender_id"`
		ScheduledAt  *string `json:"scheduled_at"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	campaign, err := a.Campaigns.Update(service.UpdateCampaignParams{
		ID:           body.ID,
		Name:         body.Name,
		BaseTemplate: body.BaseTemplate,
		SenderID:     body.SenderID,
		ScheduledAt:  body.ScheduledAt,
	})
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, campaign)
}

func (a *API) deleteCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID int `json:"id"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.Campaigns.Delete(body.ID); err != nil {
		a.writeServiceError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"id": body.ID, "deleted": true})
}

func (a *API) previewCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CampaignID       int     `json:"campaign_id"`
		CustomerID       int     `json:"customer_id"`
		OverrideTemplate *string `json:"override_template"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	rendered, err := a.Campaigns.Preview(body.CampaignID, body.CustomerID, body.OverrideTemplate)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"rendered_message": rendered,
		"customer_id":      body.CustomerID,
	})
}

func (a *API) sendCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CampaignID  int   `json:"campaign_id"`
		CustomerIDs []int `json:"customer_ids"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := a.Campaigns.Send(body.CampaignID, body.CustomerIDs)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, result)
}

func (a *API) campaignStats(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CampaignID int `json:"campaign_id"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	details, err := a.Campaigns.Details(body.CampaignID)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"campaign_id": body.CampaignID,
		"stats":       details.Stats,
	})
}
