package adaptor

import (
	"net/http"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type TimeSlotHandler struct {
	service usecase.TimeSlotService
	log     *zap.Logger
}

func NewTimeSlotHandler(service usecase.TimeSlotService, log *zap.Logger) *TimeSlotHandler {
	return &TimeSlotHandler{
		service: service,
		log:     log.With(zap.String("handler", "timeslot")),
	}
}

// ListTimeSlots handles GET /api/facilities/{id}/time-slots
func (h *TimeSlotHandler) ListTimeSlots(w http.ResponseWriter, r *http.Request) {
	facilityID, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	slots, err := h.service.ListTimeSlots(r.Context(), facilityID)
	if err != nil {
		handleServiceError(w, h.log, err, "list time slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// CreateTimeSlot handles POST /api/owner/facilities/{id}/time-slots
func (h *TimeSlotHandler) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	facilityID, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	var req request.TimeSlotRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	slot, err := h.service.CreateTimeSlot(r.Context(), actor, facilityID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create time slot")
		return
	}

	utils.ResponseCreated(w, "Time slot created successfully", slot)
}

// UpdateTimeSlot handles PUT /api/owner/time-slots/{id}
func (h *TimeSlotHandler) UpdateTimeSlot(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Time slot")
	if !ok {
		return
	}

	var req request.TimeSlotRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	slot, err := h.service.UpdateTimeSlot(r.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update time slot")
		return
	}

	utils.ResponseSuccess(w, "Time slot updated successfully", slot)
}

// DeleteTimeSlot handles DELETE /api/owner/time-slots/{id}
func (h *TimeSlotHandler) DeleteTimeSlot(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Time slot")
	if !ok {
		return
	}

	if err := h.service.DeleteTimeSlot(r.Context(), actor, id); err != nil {
		handleServiceError(w, h.log, err, "delete time slot")
		return
	}

	utils.ResponseSuccess(w, "Time slot deleted successfully", nil)
}
