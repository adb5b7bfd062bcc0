package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures profile and user management routes
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, g *guards) {
	// ==================== PROTECTED USER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		r.Get("/api/users/me", userHandler.GetProfile)
		r.Put("/api/users/me", userHandler.UpdateProfile)
		r.Put("/api/users/me/password", userHandler.ChangePassword)
	})

	// ==================== ADMIN ROUTES ====================
	r.With(g.auth, g.admin).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.ListUsers)            // GET /api/admin/users?keyword=&role=&status_id=
		r.Get("/{id}", userHandler.GetUser)          // GET /api/admin/users/{id}
		r.Post("/{id}/ban", userHandler.BanUser)     // POST /api/admin/users/{id}/ban
		r.Post("/{id}/unban", userHandler.UnbanUser) // POST /api/admin/users/{id}/unban
		r.Delete("/{id}", userHandler.DeleteUser)    // DELETE /api/admin/users/{id}
	})
}
