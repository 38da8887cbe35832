package handlers

import (
	"net/http"

	"admindash/internal/middleware"
	"admindash/internal/model"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the API surface onto r under /api.
//
// Route-level guards compose explicitly: protected routes require a valid
// bearer token, admin routes additionally require the admin role.
func (h *API) Routes(r chi.Router) {
	requireAuth := middleware.RequireAuth(h.Tokens)
	requireAdmin := middleware.RequireRole(model.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
			r.With(requireAuth).Get("/me", h.Me)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Get("/", h.ListUsers)
			r.Get("/stats", h.UserStats)
			r.Get("/{id}", h.GetUser)
			r.Put("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.DeleteUser)
			r.Put("/{id}/ban", h.BanUser)
			r.Put("/{id}/unban", h.UnbanUser)
		})

		r.Route("/content", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h.ListContent)
			r.With(requireAdmin).Post("/", h.CreateContent)
			r.With(requireAdmin).Get("/stats/overview", h.ContentStats)
			r.Get("/{id}", h.GetContent)
			r.With(requireAdmin).Put("/{id}", h.UpdateContent)
			r.With(requireAdmin).Delete("/{id}", h.DeleteContent)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Get("/overview", h.AnalyticsOverview)
			r.Get("/signups-trend", h.SignupsTrend)
			r.Get("/activity-trend", h.ActivityTrend)
			r.Get("/sales", h.SalesTrend)
			r.Post("/", h.RecordEvent)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
