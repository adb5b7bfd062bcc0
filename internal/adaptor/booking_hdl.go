package adaptor

import (
	"net/http"
	"strconv"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created, please complete payment", booking)
}

// ListMyBookings handles GET /api/bookings?date=&status=&page=&per_page= (protected)
func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	req := listRequest(r)
	bookings, err := h.service.ListMyBookings(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list own bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBooking handles GET /api/bookings/{id} (protected)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Booking")
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(r.Context(), actor, id)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CancelBooking handles POST /api/bookings/{id}/cancel (protected)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Booking")
	if !ok {
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), actor, id)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", booking)
}

// QRCode handles GET /api/bookings/{id}/qr (protected)
func (h *BookingHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Booking")
	if !ok {
		return
	}

	png, err := h.service.QRCode(r.Context(), actor, id)
	if err != nil {
		handleServiceError(w, h.log, err, "render booking QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// Receipt handles GET /api/bookings/{id}/receipt (protected)
func (h *BookingHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Booking")
	if !ok {
		return
	}

	pdf, filename, err := h.service.Receipt(r.Context(), actor, id)
	if err != nil {
		handleServiceError(w, h.log, err, "render booking receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// GetAvailability handles GET /api/facilities/{id}/availability?date=2024-03-02 (public)
func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	facilityID, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}

	availability, err := h.service.GetAvailability(r.Context(), facilityID, date)
	if err != nil {
		handleServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// ==================== OWNER METHODS ====================

// ListFacilityBookings handles GET /api/owner/facilities/{id}/bookings
func (h *BookingHandler) ListFacilityBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	facilityID, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	req := listRequest(r)
	bookings, err := h.service.ListFacilityBookings(r.Context(), actor, facilityID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list facility bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// UpdateBookingStatus handles PATCH /api/owner/bookings/{id}/status
func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Booking")
	if !ok {
		return
	}

	var req request.UpdateBookingStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.UpdateBookingStatus(r.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "Booking updated", booking)
}

// CheckIn handles POST /api/owner/bookings/check-in
func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.CheckInRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.CheckIn(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "check in")
		return
	}

	utils.ResponseSuccess(w, "Checked in", booking)
}

// ==================== ADMIN METHODS ====================

// ListAllBookings handles GET /api/admin/bookings
func (h *BookingHandler) ListAllBookings(w http.ResponseWriter, r *http.Request) {
	req := listRequest(r)
	bookings, err := h.service.ListAllBookings(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

func listRequest(r *http.Request) request.BookingListRequest {
	query := r.URL.Query()
	return request.BookingListRequest{
		PaginatedRequest: pageOf(r),
		Date:             query.Get("date"),
		Status:           query.Get("status"),
	}
}
