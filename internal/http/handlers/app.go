package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"disperser/internal/domain"
	"disperser/internal/middleware"
	"disperser/internal/service"
)

// Operations is the service surface the handlers call. *service.Service
// implements it; handler tests substitute a fake.
type Operations interface {
	DisperseETH(ctx context.Context, req service.DisperseETHRequest) (*service.DisperseCollectResponse, error)
	DisperseERC20(ctx context.Context, req service.DisperseERC20Request) (*service.DisperseCollectResponse, error)
	CollectERC20(ctx context.Context, req service.CollectERC20Request) (*service.DisperseCollectResponse, error)
	Transfer(ctx context.Context, req service.TransferRequest) (*service.TransactionResponse, error)
	Approve(ctx context.Context, req service.ApproveRequest) (*service.TransactionResponse, error)
	Transactions(ctx context.Context, limit int) ([]domain.JournalEntry, error)
}

type App struct {
	Service Operations
	Log     zerolog.Logger
}

func NewApp(svc Operations, log zerolog.Logger) *App {
	return &App{Service: svc, Log: log}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes the {"error": ...} body the API contract promises.
func (a *App) error(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"error": msg})
}

// fail maps a service error onto the HTTP surface: caller-fixable taxonomy
// members return 400 with their message; transport and unexpected failures
// return an opaque 500 with the detail kept in the log.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	if domain.ClientFault(err) {
		a.error(w, http.StatusBadRequest, err.Error())
		return
	}
	a.Log.Error().
		Err(err).
		Str("path", r.URL.Path).
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Msg("operation failed")
	a.error(w, http.StatusInternalServerError, "internal server error")
}
