package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/nhahub/NHA-046/internal/handlers"
	"github.com/nhahub/NHA-046/internal/middleware"
	"github.com/nhahub/NHA-046/internal/pipeline"
)

// Per-route quotas. The limiter stage always runs before auth: rejecting on
// quota must be cheaper than verifying a token.
func Setup(r *chi.Mux, h *handlers.Handlers) {
	auth := middleware.RequireAuth(h.Tokens())

	registerLimit := middleware.PerHour(5)
	loginLimit := middleware.PerMinute(10)
	recommendLimit := middleware.PerHour(30)
	predictLimit := middleware.PerHour(20)

	// Public routes (no quota on health/home).
	r.Get("/", h.Home)
	r.Get("/health", h.Health)

	r.With(registerLimit.Middleware).Post("/register", h.Register)
	r.With(loginLimit.Middleware).Post("/login", h.Login)

	// Protected inference routes share one pipeline; only the adapter and
	// persistence collection differ.
	r.With(recommendLimit.Middleware, auth).Post("/recommend", pipeline.Inference(h.Crop(), h.Predictions()))
	r.With(predictLimit.Middleware, auth).Post("/predict", pipeline.Inference(h.Disease(), h.Predictions()))

	r.With(auth).Get("/history", h.History)
}
