package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/FotoShop/internal/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Auth    *AuthHandler
	Catalog *CatalogHandler
	Orders  *OrderHandler
}

// NewRouter constructs the storefront API.
//
// Routes:
//
//	POST /auth/register  → Auth.Register
//	POST /auth/login     → Auth.Login
//	GET  /auth/me        → Auth.Me      (bearer token)
//	GET  /fotos          → Catalog.List
//	POST /orders         → Orders.Place (bearer token)
//	GET  /health
//	GET  /metrics        → metricsHandler
//
// Middleware chain: request id, panic recovery, metrics, request logging
// and JSON content-type enforcement for bodies.
func NewRouter(
	h Handlers,
	tokens middleware.TokenResolver,
	metrics *middleware.Metrics,
	metricsHandler http.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Handler)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.With(middleware.TokenAuth(tokens)).Get("/me", h.Auth.Me)
	})

	r.Get("/fotos", h.Catalog.List)

	r.Group(func(r chi.Router) {
		r.Use(middleware.TokenAuth(tokens))
		r.Post("/orders", h.Orders.Place)
	})

	return r
}
