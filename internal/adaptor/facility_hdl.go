package adaptor

import (
	"mime/multipart"
	"net/http"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/media"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type FacilityHandler struct {
	service usecase.FacilityService
	log     *zap.Logger
}

func NewFacilityHandler(service usecase.FacilityService, log *zap.Logger) *FacilityHandler {
	return &FacilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "facility")),
	}
}

// ListFacilities handles GET /api/facilities?keyword=&city=&district=&page=&per_page=
func (h *FacilityHandler) ListFacilities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.FacilityListRequest{
		PaginatedRequest: pageOf(r),
		Keyword:          query.Get("keyword"),
		City:             query.Get("city"),
		District:         query.Get("district"),
	}

	facilities, err := h.service.ListFacilities(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list facilities")
		return
	}

	utils.ResponseSuccess(w, "success", facilities)
}

// GetFacility handles GET /api/facilities/{id}
func (h *FacilityHandler) GetFacility(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	facility, err := h.service.GetFacility(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get facility")
		return
	}

	utils.ResponseSuccess(w, "success", facility)
}

// ==================== OWNER METHODS ====================

// ListMyFacilities handles GET /api/owner/facilities
func (h *FacilityHandler) ListMyFacilities(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	req := pageOf(r)
	facilities, err := h.service.ListMyFacilities(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list own facilities")
		return
	}

	utils.ResponseSuccess(w, "success", facilities)
}

// CreateFacility handles POST /api/owner/facilities
func (h *FacilityHandler) CreateFacility(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.FacilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	facility, err := h.service.CreateFacility(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create facility")
		return
	}

	utils.ResponseCreated(w, "Facility created successfully", facility)
}

// UpdateFacility handles PUT /api/owner/facilities/{id}
func (h *FacilityHandler) UpdateFacility(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	var req request.FacilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	facility, err := h.service.UpdateFacility(r.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update facility")
		return
	}

	utils.ResponseSuccess(w, "Facility updated successfully", facility)
}

// DeleteFacility handles DELETE /api/owner/facilities/{id}
func (h *FacilityHandler) DeleteFacility(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	if err := h.service.DeleteFacility(r.Context(), actor, id); err != nil {
		handleServiceError(w, h.log, err, "delete facility")
		return
	}

	utils.ResponseSuccess(w, "Facility deleted successfully", nil)
}

// UploadImage handles POST /api/owner/facilities/{id}/image (multipart, field "image")
func (h *FacilityHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	file, ok := formImage(w, r)
	if !ok {
		return
	}
	defer file.Close()

	upload, err := h.service.UploadImage(r.Context(), actor, id, file)
	if err != nil {
		handleServiceError(w, h.log, err, "upload facility image")
		return
	}

	utils.ResponseCreated(w, "Image uploaded successfully", upload)
}

// UpdateStatus handles PATCH /api/admin/facilities/{id}/status
func (h *FacilityHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	var req request.FacilityStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, &req); err != nil {
		handleServiceError(w, h.log, err, "update facility status")
		return
	}

	utils.ResponseSuccess(w, "Facility status updated successfully", nil)
}

// formImage reads the "image" part of a multipart body capped at media.MaxUploadSize
func formImage(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadSize+1<<10)
	if err := r.ParseMultipartForm(media.MaxUploadSize); err != nil {
		utils.ResponseBadRequest(w, "Image must be a multipart upload of at most 5MB", nil)
		return nil, false
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		utils.ResponseBadRequest(w, "Missing image file", nil)
		return nil, false
	}
	return file, true
}
