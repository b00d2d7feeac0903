package api

import (
	"net/http"

	"github.com/dom/zodiac-catalog/internal/api/handlers"
	"github.com/dom/zodiac-catalog/internal/api/middleware"
	"github.com/dom/zodiac-catalog/internal/config"
	"github.com/dom/zodiac-catalog/internal/service"
	"github.com/dom/zodiac-catalog/internal/telemetry"
	"github.com/dom/zodiac-catalog/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func NewRouter(services *service.Services, hub *websocket.Hub, metrics *telemetry.Metrics, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)
	if metrics != nil {
		r.Use(middleware.Metrics(metrics))
	}

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// Initialize handlers
	characterHandler := handlers.NewCharacterHandler(services.Character)
	healthHandler := handlers.NewHealthHandler(services.Character, cfg.StoreBackend, cfg.ServiceVersion)
	seedHandler := handlers.NewSeedHandler(services.Character, cfg.EnableSeed)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Get("/", healthHandler.Root)

	r.Route("/characters", func(r chi.Router) {
		r.Get("/", characterHandler.List)
		r.Post("/", characterHandler.Create)
		r.Get("/{id}", characterHandler.Get)
		r.Put("/{id}", characterHandler.Update)
		r.Delete("/{id}", characterHandler.Delete)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Post("/seed", seedHandler.Seed)
	})

	// Change notifications
	r.Get("/ws", wsHandler.Handle)

	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	return otelhttp.NewHandler(r, "catalog",
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/metrics" && r.URL.Path != "/ws"
		}),
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
