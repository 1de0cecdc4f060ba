package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-ticket-tracker/internal/config"
	"go-ticket-tracker/internal/handler"
	"go-ticket-tracker/internal/metrics"
	"go-ticket-tracker/internal/middleware"
	"go-ticket-tracker/internal/model"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	User   *handler.UserHandler
	Ticket *handler.TicketHandler
	Health *handler.HealthHandler
	Docs   *handler.DocsHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, m *metrics.Metrics, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Logging)
	r.Use(middleware.Recovery)
	if m != nil {
		r.Use(m.Instrument)
	}
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.Health.Health)
	r.Get("/openapi.yaml", h.Docs.OpenAPI)
	r.Get("/swagger", h.Docs.SwaggerUI)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	requireAuth := authMiddleware.RequireAuth
	adminOnly := authMiddleware.RequireRoles(model.RoleAdmin)
	anyRole := authMiddleware.RequireRoles(model.Roles...)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
			auth.Post("/refresh", h.Auth.Refresh)
			auth.With(requireAuth).Post("/logout", h.Auth.Logout)
			auth.With(requireAuth).Post("/logout-all", h.Auth.LogoutAll)
			auth.With(requireAuth).Get("/me", h.Auth.Me)
		})

		api.Route("/users", func(users chi.Router) {
			users.Use(requireAuth, adminOnly)
			users.Get("/", h.User.List)
			users.Put("/{id}/role", h.User.UpdateRole)
		})

		api.Route("/tickets", func(tickets chi.Router) {
			tickets.Use(requireAuth)
			tickets.Get("/", h.Ticket.List)
			tickets.Get("/{id}", h.Ticket.Get)
			tickets.With(anyRole).Post("/", h.Ticket.Create)
			tickets.Put("/{id}", h.Ticket.Update)
			tickets.Delete("/{id}", h.Ticket.Delete)
		})
	})

	return r
}
