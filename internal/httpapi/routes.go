package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xtding233/pachislo-backend/internal/game"
	"github.com/xtding233/pachislo-backend/internal/session"
)

// Deps bundles what the handlers need.
type Deps struct {
	Manager  *session.Manager
	Resolver game.Resolver
	Log      *zap.Logger
}

func SetupRoutes(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Post("/sessions", CreateSession(d))
	r.Get("/sessions/{code}", GetSession(d))
	r.Post("/sessions/{code}/step", StepSession(d))
	r.Delete("/sessions/{code}", RemoveSession(d))
	r.Get("/sessions/{code}/ws", StreamSession(d))
	r.Get("/simulate", Simulate(d))
	r.Post("/exchange", Exchange(d))

	return r
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
