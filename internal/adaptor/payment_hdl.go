package adaptor

import (
	"io"
	"net/http"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/payment/zalopay"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// callbacks are small JSON documents
const maxCallbackBody = 64 << 10

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreateVNPayPayment handles POST /api/payments/vnpay (protected)
func (h *PaymentHandler) CreateVNPayPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.CreatePaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payment, err := h.service.CreateVNPayPayment(r.Context(), actor, &req, clientIP(r))
	if err != nil {
		handleServiceError(w, h.log, err, "create VNPay payment")
		return
	}

	utils.ResponseCreated(w, "Redirect the customer to payment_url", payment)
}

// VNPayIPN handles GET /api/payments/vnpay/ipn. VNPay expects a bare {RspCode, Message} body with 200.
func (h *PaymentHandler) VNPayIPN(w http.ResponseWriter, r *http.Request) {
	ack := h.service.HandleVNPayIPN(r.Context(), r.URL.Query())

	h.log.Info("VNPay IPN handled",
		zap.String("txn_ref", r.URL.Query().Get("vnp_TxnRef")),
		zap.String("rsp_code", ack.RspCode))

	utils.WriteRawJSON(w, http.StatusOK, ack)
}

// VNPayReturn handles GET /api/payments/vnpay/return
func (h *PaymentHandler) VNPayReturn(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.HandleVNPayReturn(r.Context(), r.URL.Query())
	if err != nil {
		handleServiceError(w, h.log, err, "handle VNPay return")
		return
	}

	message := "Payment successful"
	if !result.Success {
		message = "Payment was not completed"
	}
	utils.ResponseSuccess(w, message, result)
}

// CreateZaloPayPayment handles POST /api/payments/zalopay (protected)
func (h *PaymentHandler) CreateZaloPayPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.CreatePaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payment, err := h.service.CreateZaloPayPayment(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create ZaloPay payment")
		return
	}

	utils.ResponseCreated(w, "Redirect the customer to payment_url", payment)
}

// ZaloPayCallback handles POST /api/payments/zalopay/callback. The answer is always 200; return_code tells ZaloPay whether to retry.
func (h *PaymentHandler) ZaloPayCallback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxCallbackBody))
	if err != nil {
		h.log.Warn("Failed to read ZaloPay callback body", zap.Error(err))
		utils.WriteRawJSON(w, http.StatusOK, zalopay.CallbackAck{ReturnCode: -1, ReturnMessage: "invalid body"})
		return
	}

	ack := h.service.HandleZaloPayCallback(r.Context(), body)
	utils.WriteRawJSON(w, http.StatusOK, ack)
}

// QueryZaloPayOrder handles GET /api/admin/payments/zalopay/{appTransID}
func (h *PaymentHandler) QueryZaloPayOrder(w http.ResponseWriter, r *http.Request) {
	appTransID := chi.URLParam(r, "appTransID")

	status, err := h.service.QueryZaloPayOrder(r.Context(), appTransID)
	if err != nil {
		handleServiceError(w, h.log, err, "query ZaloPay order")
		return
	}

	utils.ResponseSuccess(w, "success", status)
}
