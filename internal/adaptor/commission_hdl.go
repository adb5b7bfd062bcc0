package adaptor

import (
	"net/http"
	"strconv"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type CommissionHandler struct {
	service usecase.CommissionService
	log     *zap.Logger
}

func NewCommissionHandler(service usecase.CommissionService, log *zap.Logger) *CommissionHandler {
	return &CommissionHandler{
		service: service,
		log:     log.With(zap.String("handler", "commission")),
	}
}

// GenerateCommissions handles POST /api/admin/commissions/generate
func (h *CommissionHandler) GenerateCommissions(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateCommissionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.GenerateCommissions(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "generate commissions")
		return
	}

	utils.ResponseSuccess(w, "Commissions generated", result)
}

// ListCommissions handles GET /api/admin/commissions?status=&month=&year=
func (h *CommissionHandler) ListCommissions(w http.ResponseWriter, r *http.Request) {
	req, ok := commissionQuery(w, r)
	if !ok {
		return
	}

	commissions, err := h.service.ListCommissions(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list commissions")
		return
	}

	utils.ResponseSuccess(w, "success", commissions)
}

// UpdateCommissionStatus handles PATCH /api/admin/commissions/{id}/status
func (h *CommissionHandler) UpdateCommissionStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "Commission")
	if !ok {
		return
	}

	var req request.CommissionStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	commission, err := h.service.UpdateCommissionStatus(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update commission status")
		return
	}

	utils.ResponseSuccess(w, "Commission updated", commission)
}

// ListMyCommissions handles GET /api/owner/commissions
func (h *CommissionHandler) ListMyCommissions(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	req, ok := commissionQuery(w, r)
	if !ok {
		return
	}

	commissions, err := h.service.ListMyCommissions(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list own commissions")
		return
	}

	utils.ResponseSuccess(w, "success", commissions)
}

// PayCommission handles POST /api/owner/commissions/{id}/pay
func (h *CommissionHandler) PayCommission(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Commission")
	if !ok {
		return
	}

	payment, err := h.service.PayCommission(r.Context(), actor, id)
	if err != nil {
		handleServiceError(w, h.log, err, "pay commission")
		return
	}

	utils.ResponseCreated(w, "Redirect to payment_url to pay the commission", payment)
}

func commissionQuery(w http.ResponseWriter, r *http.Request) (request.CommissionListRequest, bool) {
	query := r.URL.Query()
	req := request.CommissionListRequest{
		PaginatedRequest: pageOf(r),
		Status:           query.Get("status"),
	}

	for name, dst := range map[string]*int{"month": &req.Month, "year": &req.Year} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.ResponseBadRequest(w, name+" must be a number", nil)
			return req, false
		}
		*dst = n
	}
	return req, true
}
