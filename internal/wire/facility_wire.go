package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireFacility covers facilities and what belongs to them: courts and time slots
func wireFacility(
	r chi.Router,
	facilityHandler *adaptor.FacilityHandler,
	courtHandler *adaptor.CourtHandler,
	slotHandler *adaptor.TimeSlotHandler,
	g *guards,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/facilities", facilityHandler.ListFacilities)
	r.Get("/api/facilities/{id}", facilityHandler.GetFacility)
	r.Get("/api/facilities/{id}/courts", courtHandler.ListCourts)
	r.Get("/api/facilities/{id}/time-slots", slotHandler.ListTimeSlots)

	// ==================== OWNER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth, g.owner)

		r.Get("/api/owner/facilities", facilityHandler.ListMyFacilities)
		r.Post("/api/owner/facilities", facilityHandler.CreateFacility)
		r.Put("/api/owner/facilities/{id}", facilityHandler.UpdateFacility)
		r.Delete("/api/owner/facilities/{id}", facilityHandler.DeleteFacility)
		r.Post("/api/owner/facilities/{id}/image", facilityHandler.UploadImage)

		r.Post("/api/owner/facilities/{id}/courts", courtHandler.CreateCourt)
		r.Put("/api/owner/courts/{id}", courtHandler.UpdateCourt)
		r.Delete("/api/owner/courts/{id}", courtHandler.DeleteCourt)

		r.Post("/api/owner/facilities/{id}/time-slots", slotHandler.CreateTimeSlot)
		r.Put("/api/owner/time-slots/{id}", slotHandler.UpdateTimeSlot)
		r.Delete("/api/owner/time-slots/{id}", slotHandler.DeleteTimeSlot)
	})

	// ==================== ADMIN ROUTES ====================
	r.With(g.auth, g.admin).Patch("/api/admin/facilities/{id}/status", facilityHandler.UpdateStatus)
}
