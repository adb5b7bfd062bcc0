package adaptor

import (
	"net/http"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type RatingHandler struct {
	service usecase.RatingService
	log     *zap.Logger
}

func NewRatingHandler(service usecase.RatingService, log *zap.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log.With(zap.String("handler", "rating")),
	}
}

// ListRatings handles GET /api/facilities/{id}/ratings
func (h *RatingHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	facilityID, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	req := pageOf(r)
	ratings, err := h.service.ListRatings(r.Context(), facilityID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list ratings")
		return
	}

	utils.ResponseSuccess(w, "success", ratings)
}

// GetRatingStats handles GET /api/facilities/{id}/rating-stats
func (h *RatingHandler) GetRatingStats(w http.ResponseWriter, r *http.Request) {
	facilityID, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	stats, err := h.service.GetRatingStats(r.Context(), facilityID)
	if err != nil {
		handleServiceError(w, h.log, err, "get rating stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// CreateRating handles POST /api/facilities/{id}/ratings (customers with a paid booking)
func (h *RatingHandler) CreateRating(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	facilityID, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	var req request.RatingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rating, err := h.service.CreateRating(r.Context(), actor, facilityID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create rating")
		return
	}

	utils.ResponseCreated(w, "Thanks for your rating", rating)
}

// UpdateRating handles PUT /api/ratings/{id}
func (h *RatingHandler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Rating")
	if !ok {
		return
	}

	var req request.RatingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rating, err := h.service.UpdateRating(r.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update rating")
		return
	}

	utils.ResponseSuccess(w, "Rating updated", rating)
}

// DeleteRating handles DELETE /api/ratings/{id}
func (h *RatingHandler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Rating")
	if !ok {
		return
	}

	if err := h.service.DeleteRating(r.Context(), actor, id); err != nil {
		handleServiceError(w, h.log, err, "delete rating")
		return
	}

	utils.ResponseSuccess(w, "Rating deleted", nil)
}
