package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/store-tracker/internal/handlers"
	"github.com/GregMSThompson/store-tracker/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	lh := handlers.NewLedgerHandlers(deps)
	ah := handlers.NewAdminHandlers(deps)

	r.Mount("/ledger", lh.LedgerRoutes())
	r.Mount("/admin", ah.AdminRoutes())
	return r
}
