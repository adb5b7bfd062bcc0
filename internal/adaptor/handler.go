package adaptor

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/apperror"
	"court-booking/pkg/database"
	"court-booking/pkg/realtime"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Facility   *FacilityHandler
	Court      *CourtHandler
	TimeSlot   *TimeSlotHandler
	Booking    *BookingHandler
	Payment    *PaymentHandler
	Commission *CommissionHandler
	Merchant   *MerchantHandler
	Comment    *CommentHandler
	Rating     *RatingHandler
	Slider     *SliderHandler
	Blog       *BlogHandler
	Realtime   *RealtimeHandler
	Health     *HealthHandler
}

func NewHandler(service *usecase.Service, hub *realtime.Hub, db database.PgxIface, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		User:       NewUserHandler(service.User, log),
		Facility:   NewFacilityHandler(service.Facility, log),
		Court:      NewCourtHandler(service.Court, log),
		TimeSlot:   NewTimeSlotHandler(service.TimeSlot, log),
		Booking:    NewBookingHandler(service.Booking, log),
		Payment:    NewPaymentHandler(service.Payment, log),
		Commission: NewCommissionHandler(service.Commission, log),
		Merchant:   NewMerchantHandler(service.Merchant, log),
		Comment:    NewCommentHandler(service.Comment, log),
		Rating:     NewRatingHandler(service.Rating, log),
		Slider:     NewSliderHandler(service.Slider, log),
		Blog:       NewBlogHandler(service.Blog, log),
		Realtime:   NewRealtimeHandler(hub, log),
		Health:     NewHealthHandler(db, log),
	}
}

// handleServiceError writes the status carried by an *apperror.Error; anything else is a 500
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	switch {
	case appErr.Code >= http.StatusInternalServerError:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.Int("status", appErr.Code),
			zap.String("operation", operation))
		utils.ResponseJSON(w, appErr.Code, false, appErr.Message, nil, nil)

	case appErr.Code == http.StatusBadRequest:
		log.Warn(operation+" failed - bad request",
			zap.String("reason", appErr.Message),
			zap.String("operation", operation))
		if len(appErr.Fields) > 0 {
			utils.ResponseBadRequest(w, appErr.Message, appErr.Fields)
			return
		}
		utils.ResponseBadRequest(w, appErr.Message, nil)

	default:
		log.Warn(operation+" failed",
			zap.String("reason", appErr.Message),
			zap.Int("status", appErr.Code),
			zap.String("operation", operation))
		utils.ResponseJSON(w, appErr.Code, false, appErr.Message, nil, nil)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// requireActor reads the caller set by middleware.Auth
func requireActor(w http.ResponseWriter, r *http.Request) (utils.Actor, bool) {
	actor, ok := utils.ActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
	}
	return actor, ok
}

func urlID(w http.ResponseWriter, r *http.Request, param, label string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		utils.ResponseBadRequest(w, label+" ID is required", nil)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+strings.ToLower(label)+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func pageOf(r *http.Request) request.PaginatedRequest {
	return request.PageFromQuery(r.URL.Query())
}

// clientIP prefers the first X-Forwarded-For hop when running behind a proxy
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
