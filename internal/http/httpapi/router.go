package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"disperser/internal/http/handlers"
	"disperser/internal/infra/geoip"
	"disperser/internal/middleware"
)

// NewRouter wires the operation endpoints. geo may be nil; the access
// logger then skips country tagging. CORS is installed only when origins
// are configured.
func NewRouter(app *handlers.App, log zerolog.Logger, geo *geoip.Resolver, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(log, geo),
	)
	if len(allowedOrigins) > 0 {
		r.Use(middleware.CORS(allowedOrigins))
	}

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/disperse-eth", app.DisperseETH)
		r.Post("/disperse-erc20", app.DisperseERC20)
		r.Post("/collect-erc20", app.CollectERC20)
		r.Post("/transfer", app.Transfer)
		r.Post("/approve", app.Approve)
		r.Get("/transactions", app.Transactions)
	})

	return r
}
