package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, g *guards) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/facilities/{id}/availability?date=2024-03-02
	r.Get("/api/facilities/{id}/availability", bookingHandler.GetAvailability)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		r.Post("/api/bookings", bookingHandler.CreateBooking)
		r.Get("/api/bookings", bookingHandler.ListMyBookings)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)
		r.Post("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
		r.Get("/api/bookings/{id}/qr", bookingHandler.QRCode)
		r.Get("/api/bookings/{id}/receipt", bookingHandler.Receipt)
	})

	// ==================== OWNER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth, g.owner)

		r.Get("/api/owner/facilities/{id}/bookings", bookingHandler.ListFacilityBookings)
		r.Patch("/api/owner/bookings/{id}/status", bookingHandler.UpdateBookingStatus)
		r.Post("/api/owner/bookings/check-in", bookingHandler.CheckIn)
	})

	// ==================== ADMIN ROUTES ====================
	r.With(g.auth, g.admin).Get("/api/admin/bookings", bookingHandler.ListAllBookings)
}
