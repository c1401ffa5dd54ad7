package handlers

import (
	"encoding/json"
	"net/http"

	"disperser/internal/service"
)

func (a *App) CollectERC20(w http.ResponseWriter, r *http.Request) {
	var req service.CollectERC20Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	if len(req.Spenders) == 0 {
		a.error(w, http.StatusBadRequest, "spenders must not be empty")
		return
	}
	resp, err := a.Service.CollectERC20(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, resp)
}
