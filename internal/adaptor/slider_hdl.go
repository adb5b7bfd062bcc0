package adaptor

import (
	"net/http"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type SliderHandler struct {
	service usecase.SliderService
	log     *zap.Logger
}

func NewSliderHandler(service usecase.SliderService, log *zap.Logger) *SliderHandler {
	return &SliderHandler{
		service: service,
		log:     log.With(zap.String("handler", "slider")),
	}
}

// ListActive handles GET /api/sliders
func (h *SliderHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	sliders, err := h.service.ListActive(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list sliders")
		return
	}

	utils.ResponseSuccess(w, "success", sliders)
}

// ListAll handles GET /api/admin/sliders
func (h *SliderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	sliders, err := h.service.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list all sliders")
		return
	}

	utils.ResponseSuccess(w, "success", sliders)
}

// Create handles POST /api/admin/sliders
func (h *SliderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.SliderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	slider, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create slider")
		return
	}

	utils.ResponseCreated(w, "Slider created", slider)
}

// Update handles PUT /api/admin/sliders/{id}
func (h *SliderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "Slider")
	if !ok {
		return
	}

	var req request.SliderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	slider, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update slider")
		return
	}

	utils.ResponseSuccess(w, "Slider updated", slider)
}

// Delete handles DELETE /api/admin/sliders/{id}
func (h *SliderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "Slider")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete slider")
		return
	}

	utils.ResponseSuccess(w, "Slider deleted", nil)
}

// UploadImage handles POST /api/admin/sliders/image
func (h *SliderHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	file, ok := formImage(w, r)
	if !ok {
		return
	}
	defer file.Close()

	upload, err := h.service.UploadImage(r.Context(), file)
	if err != nil {
		handleServiceError(w, h.log, err, "upload slider image")
		return
	}

	utils.ResponseCreated(w, "Image uploaded successfully", upload)
}
