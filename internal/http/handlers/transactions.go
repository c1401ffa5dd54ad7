package handlers

import (
	"net/http"
	"strconv"
)

const defaultTransactionsLimit = 20

// Transactions lists recently submitted transactions from the journal.
func (a *App) Transactions(w http.ResponseWriter, r *http.Request) {
	limit := defaultTransactionsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			a.error(w, http.StatusBadRequest, "limit must be an integer between 1 and 500")
			return
		}
		limit = n
	}
	entries, err := a.Service.Transactions(r.Context(), limit)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, entries)
}
