package http

import (
	"net/http"

	"github.com/doodlemate-companion/internal/application/account"
	"github.com/doodlemate-companion/internal/application/push"
	"github.com/doodlemate-companion/internal/config"
	"github.com/doodlemate-companion/internal/infrastructure/apns"
	"github.com/doodlemate-companion/internal/infrastructure/backend"
	"github.com/doodlemate-companion/internal/transport/http/handler"
	appmiddleware "github.com/doodlemate-companion/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Backend *backend.Client
	Gateway *apns.Client // nil when push signing config is absent
	Logger  *zap.Logger
}

// NewRouter builds and returns the edge-function router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "apikey"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"error":"method not allowed"}`))
	})

	// 5 requests/second, burst of 10 — the push function fans out to the
	// gateway, so it gets the tightest limit.
	pushRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	pushSvc := newPushService(deps.Backend, deps.Gateway, deps.Logger)
	accountSvc := account.NewService(deps.Backend, deps.Logger)

	healthH := handler.NewHealthHandler()
	pushH := handler.NewPushHandler(pushSvc)
	accountH := handler.NewAccountHandler(accountSvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.With(pushRL.Limit).Post("/push", pushH.Dispatch)
		r.HandleFunc("/delete-user", accountH.Delete)
	})

	return r
}

// newPushService keeps the nil-gateway case a nil interface so the service's
// missing-config check fires instead of a typed-nil call.
func newPushService(b *backend.Client, gw *apns.Client, log *zap.Logger) push.Service {
	if gw == nil {
		return push.NewService(b, nil, log)
	}
	return push.NewService(b, gw, log)
}
