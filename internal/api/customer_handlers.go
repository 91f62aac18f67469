package api

import (
	"net/http"

	"github.com/unclebandit/campaignhub-backend/internal/httpx"
)

func (a *API) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := a.Customers.ListAll()
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": customers})
}

func (a *API) getCustomer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID int `json:"id"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := a.Customers.GetByID(body.ID)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, customer)
}
