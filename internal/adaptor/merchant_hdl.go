package adaptor

import (
	"net/http"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MerchantHandler struct {
	service usecase.MerchantService
	log     *zap.Logger
}

func NewMerchantHandler(service usecase.MerchantService, log *zap.Logger) *MerchantHandler {
	return &MerchantHandler{
		service: service,
		log:     log.With(zap.String("handler", "merchant")),
	}
}

// Upsert handles PUT /api/owner/merchant
func (h *MerchantHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.MerchantPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	merchant, err := h.service.Upsert(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "save merchant payment")
		return
	}

	utils.ResponseSuccess(w, "Merchant account saved", merchant)
}

// GetMine handles GET /api/owner/merchant?provider=vnpay
func (h *MerchantHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	merchant, err := h.service.GetMine(r.Context(), actor, r.URL.Query().Get("provider"))
	if err != nil {
		handleServiceError(w, h.log, err, "get merchant payment")
		return
	}

	utils.ResponseSuccess(w, "success", merchant)
}

// Delete handles DELETE /api/owner/merchant/{provider}
func (h *MerchantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, chi.URLParam(r, "provider")); err != nil {
		handleServiceError(w, h.log, err, "delete merchant payment")
		return
	}

	utils.ResponseSuccess(w, "Merchant account removed", nil)
}
