package handlers

import (
	"encoding/json"
	"net/http"

	"disperser/internal/service"
)

func (a *App) Transfer(w http.ResponseWriter, r *http.Request) {
	var req service.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	resp, err := a.Service.Transfer(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, resp)
}

func (a *App) Approve(w http.ResponseWriter, r *http.Request) {
	var req service.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	resp, err := a.Service.Approve(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, resp)
}
