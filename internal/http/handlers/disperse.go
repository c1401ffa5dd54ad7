package handlers

import (
	"encoding/json"
	"net/http"

	"disperser/internal/service"
)

func (a *App) DisperseETH(w http.ResponseWriter, r *http.Request) {
	var req service.DisperseETHRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	if len(req.Recipients) == 0 {
		a.error(w, http.StatusBadRequest, "recipients must not be empty")
		return
	}
	resp, err := a.Service.DisperseETH(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, resp)
}

func (a *App) DisperseERC20(w http.ResponseWriter, r *http.Request) {
	var req service.DisperseERC20Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	if len(req.Recipients) == 0 {
		a.error(w, http.StatusBadRequest, "recipients must not be empty")
		return
	}
	resp, err := a.Service.DisperseERC20(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, resp)
}
