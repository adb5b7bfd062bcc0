package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, g *guards) {
	// ==================== PUBLIC ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.authLimit)

		r.Post("/api/auth/register", authHandler.Register)
		r.Post("/api/auth/login", authHandler.Login)
		r.Post("/api/auth/send-otp", authHandler.SendOTP)
		r.Post("/api/auth/verify-email", authHandler.VerifyEmail)
		r.Post("/api/auth/forgot-password", authHandler.ForgotPassword)
		r.Post("/api/auth/reset-password", authHandler.ResetPassword)
	})

	// ==================== PROTECTED ROUTES ====================
	r.With(g.auth).Post("/api/auth/logout", authHandler.Logout)
}
