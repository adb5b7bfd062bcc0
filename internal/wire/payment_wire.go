package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wirePayment covers booking payments, owner commissions and owner merchant accounts
func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	commissionHandler *adaptor.CommissionHandler,
	merchantHandler *adaptor.MerchantHandler,
	g *guards,
) {
	// ==================== GATEWAY CALLBACKS ====================
	r.Group(func(r chi.Router) {
		r.Use(g.hookLimit)

		r.Get("/api/payments/vnpay/ipn", paymentHandler.VNPayIPN)
		r.Get("/api/payments/vnpay/return", paymentHandler.VNPayReturn)
		r.Post("/api/payments/zalopay/callback", paymentHandler.ZaloPayCallback)
	})

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		r.Post("/api/payments/vnpay", paymentHandler.CreateVNPayPayment)
		r.Post("/api/payments/zalopay", paymentHandler.CreateZaloPayPayment)
	})

	// ==================== OWNER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth, g.owner)

		r.Get("/api/owner/commissions", commissionHandler.ListMyCommissions)
		r.Post("/api/owner/commissions/{id}/pay", commissionHandler.PayCommission)

		r.Get("/api/owner/merchant", merchantHandler.GetMine)
		r.Put("/api/owner/merchant", merchantHandler.Upsert)
		r.Delete("/api/owner/merchant/{provider}", merchantHandler.Delete)
	})

	// ==================== ADMIN ROUTES ====================
	r.With(g.auth, g.admin).Route("/api/admin/commissions", func(r chi.Router) {
		r.Get("/", commissionHandler.ListCommissions)
		r.Post("/generate", commissionHandler.GenerateCommissions)
		r.Patch("/{id}/status", commissionHandler.UpdateCommissionStatus)
	})
	r.With(g.auth, g.admin).Get("/api/admin/payments/zalopay/{appTransID}", paymentHandler.QueryZaloPayOrder)
}
