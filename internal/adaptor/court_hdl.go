package adaptor

import (
	"net/http"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type CourtHandler struct {
	service usecase.CourtService
	log     *zap.Logger
}

func NewCourtHandler(service usecase.CourtService, log *zap.Logger) *CourtHandler {
	return &CourtHandler{
		service: service,
		log:     log.With(zap.String("handler", "court")),
	}
}

// ListCourts handles GET /api/facilities/{id}/courts
func (h *CourtHandler) ListCourts(w http.ResponseWriter, r *http.Request) {
	facilityID, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	courts, err := h.service.ListCourts(r.Context(), facilityID)
	if err != nil {
		handleServiceError(w, h.log, err, "list courts")
		return
	}

	utils.ResponseSuccess(w, "success", courts)
}

// CreateCourt handles POST /api/owner/facilities/{id}/courts
func (h *CourtHandler) CreateCourt(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	facilityID, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	var req request.CourtRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	court, err := h.service.CreateCourt(r.Context(), actor, facilityID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create court")
		return
	}

	utils.ResponseCreated(w, "Court created successfully", court)
}

// UpdateCourt handles PUT /api/owner/courts/{id}
func (h *CourtHandler) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Court")
	if !ok {
		return
	}

	var req request.CourtRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	court, err := h.service.UpdateCourt(r.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update court")
		return
	}

	utils.ResponseSuccess(w, "Court updated successfully", court)
}

// DeleteCourt handles DELETE /api/owner/courts/{id}
func (h *CourtHandler) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Court")
	if !ok {
		return
	}

	if err := h.service.DeleteCourt(r.Context(), actor, id); err != nil {
		handleServiceError(w, h.log, err, "delete court")
		return
	}

	utils.ResponseSuccess(w, "Court deleted successfully", nil)
}
