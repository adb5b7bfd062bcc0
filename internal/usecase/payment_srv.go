package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/pkg/apperror"
	"court-booking/pkg/database"
	"court-booking/pkg/events"
	"court-booking/pkg/payment/vnpay"
	"court-booking/pkg/payment/zalopay"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	CreateVNPayPayment(ctx context.Context, actor utils.Actor, req *request.CreatePaymentRequest, clientIP string) (*response.PaymentURLResponse, error)
	HandleVNPayIPN(ctx context.Context, params url.Values) vnpay.IPNResponse
	HandleVNPayReturn(ctx context.Context, params url.Values) (*response.PaymentReturnResponse, error)

	CreateZaloPayPayment(ctx context.Context, actor utils.Actor, req *request.CreatePaymentRequest) (*response.PaymentURLResponse, error)
	HandleZaloPayCallback(ctx context.Context, body []byte) zalopay.CallbackAck
	QueryZaloPayOrder(ctx context.Context, appTransID string) (*response.ZaloPayOrderStatusResponse, error)
}

type paymentService struct {
	repo      *repository.Repository
	vnpay     *vnpay.Client
	zalopay   *zalopay.Client
	events    events.Publisher
	vnpayConf utils.VNPayConfig
	now       func() time.Time
	log       *zap.Logger
}

func NewPaymentService(repo *repository.Repository, vnp *vnpay.Client, zlp *zalopay.Client, pub events.Publisher, config *utils.Config, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:      repo,
		vnpay:     vnp,
		zalopay:   zlp,
		events:    pub,
		vnpayConf: config.VNPay,
		now:       time.Now,
		log:       log.With(zap.String("service", "payment")),
	}
}

var errGatewayNotConfigured = apperror.New(http.StatusServiceUnavailable, "payment gateway is not configured")

// ==================== VNPAY ====================

func (s *paymentService) CreateVNPayPayment(ctx context.Context, actor utils.Actor, req *request.CreatePaymentRequest, clientIP string) (*response.PaymentURLResponse, error) {
	booking, facility, err := s.payableBooking(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	client := s.vnpay
	merchant, err := s.repo.MerchantPayment.FindByOwner(ctx, facility.OwnerID, entity.PaymentMethodVNPay)
	if err != nil {
		s.log.Error("Failed to load merchant", zap.Error(err), zap.String("owner_id", facility.OwnerID.String()))
		return nil, apperror.Internal(err, "failed to load merchant")
	}
	if merchant != nil && merchant.StatusID == entity.StatusActive {
		client = s.vnpay.WithMerchant(merchant.MerchantCode, merchant.SecretKey)
	}
	if !client.Configured() {
		return nil, errGatewayNotConfigured
	}

	payment, err := s.openPayment(ctx, booking, entity.PaymentMethodVNPay, utils.GenerateTxnRef())
	if err != nil {
		return nil, err
	}

	payURL, err := client.BuildPaymentURL(vnpay.PaymentRequest{
		TxnRef:    payment.TxnRef,
		Amount:    payment.Amount,
		OrderInfo: "Thanh toan dat san " + booking.Code,
		IPAddr:    clientIP,
		BankCode:  req.BankCode,
		Locale:    req.Locale,
	})
	if err != nil {
		s.log.Error("Failed to build VNPay URL", zap.Error(err), zap.String("txn_ref", payment.TxnRef))
		return nil, apperror.Internal(err, "failed to build payment url")
	}

	s.log.Info("VNPay payment created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("txn_ref", payment.TxnRef),
		zap.Int64("amount", payment.Amount))

	return &response.PaymentURLResponse{
		Provider:   entity.PaymentMethodVNPay,
		TxnRef:     payment.TxnRef,
		Amount:     payment.Amount,
		PaymentURL: payURL,
	}, nil
}

// HandleVNPayIPN never returns an error: VNPay only understands RspCode
func (s *paymentService) HandleVNPayIPN(ctx context.Context, params url.Values) vnpay.IPNResponse {
	log := s.log.With(zap.String("txn_ref", params.Get("vnp_TxnRef")))

	if !s.verifyVNPay(ctx, params) {
		log.Warn("VNPay IPN signature mismatch", zap.String("tmn_code", params.Get("vnp_TmnCode")))
		return vnpay.NewIPNResponse(vnpay.RspInvalidSignature)
	}

	result, err := vnpay.ParseResult(params)
	if err != nil {
		log.Warn("VNPay IPN malformed", zap.Error(err))
		return vnpay.NewIPNResponse(vnpay.RspUnknownError)
	}

	code := s.applyVNPay(ctx, result)
	log.Info("VNPay IPN processed",
		zap.String("response_code", result.ResponseCode),
		zap.String("rsp_code", code))
	return vnpay.NewIPNResponse(code)
}

// HandleVNPayReturn settles the same way as the IPN so a lost IPN does not leave the booking unpaid
func (s *paymentService) HandleVNPayReturn(ctx context.Context, params url.Values) (*response.PaymentReturnResponse, error) {
	if !s.verifyVNPay(ctx, params) {
		return nil, apperror.BadRequest("invalid payment signature")
	}

	result, err := vnpay.ParseResult(params)
	if err != nil {
		return nil, apperror.BadRequest("invalid payment result")
	}

	code := s.applyVNPay(ctx, result)
	if code == vnpay.RspUnknownError {
		return nil, apperror.Internal(errors.New("vnpay settlement failed"), "failed to process payment")
	}

	resp := &response.PaymentReturnResponse{
		TxnRef:       result.TxnRef,
		Success:      result.Succeeded() && (code == vnpay.RspSuccess || code == vnpay.RspAlreadyConfirmed),
		ResponseCode: result.ResponseCode,
		Amount:       result.Amount,
	}

	payment, err := s.repo.Payment.FindByTxnRef(ctx, result.TxnRef)
	if err != nil {
		s.log.Error("Failed to reload payment", zap.Error(err), zap.String("txn_ref", result.TxnRef))
		return nil, apperror.Internal(err, "failed to load payment")
	}
	if payment == nil {
		return nil, apperror.NotFound("payment not found")
	}
	resp.BookingID = payment.BookingID.String()
	resp.Status = payment.Status
	resp.Success = resp.Success && payment.Status == entity.PaymentStatusCompleted

	return resp, nil
}

// verifyVNPay picks the secret by vnp_TmnCode: the platform terminal or an owner's own merchant
func (s *paymentService) verifyVNPay(ctx context.Context, params url.Values) bool {
	tmnCode := params.Get("vnp_TmnCode")
	if tmnCode == "" {
		return false
	}

	secret := ""
	if tmnCode == s.vnpayConf.TmnCode {
		secret = s.vnpayConf.HashSecret
	} else {
		merchant, err := s.repo.MerchantPayment.FindByMerchantCode(ctx, entity.PaymentMethodVNPay, tmnCode)
		if err != nil {
			s.log.Error("Failed to resolve merchant", zap.Error(err), zap.String("tmn_code", tmnCode))
			return false
		}
		if merchant != nil {
			secret = merchant.SecretKey
		}
	}

	hashType := s.vnpayConf.HashType
	if t := params.Get(vnpay.ParamSecureHashType); t != "" {
		hashType = t
	}
	return vnpay.Verify(params, secret, hashType)
}

// applyVNPay runs a verified result against the payment and returns the IPN RspCode
func (s *paymentService) applyVNPay(ctx context.Context, result *vnpay.Result) string {
	payment, err := s.repo.Payment.FindByTxnRef(ctx, result.TxnRef)
	if err != nil {
		s.log.Error("Failed to find payment", zap.Error(err), zap.String("txn_ref", result.TxnRef))
		return vnpay.RspUnknownError
	}
	if payment == nil || payment.Provider != entity.PaymentMethodVNPay {
		return vnpay.RspOrderNotFound
	}
	if payment.Status != entity.PaymentStatusPending {
		return vnpay.RspAlreadyConfirmed
	}
	if payment.Amount != result.Amount {
		s.log.Warn("VNPay amount mismatch",
			zap.String("txn_ref", result.TxnRef),
			zap.Int64("expected", payment.Amount),
			zap.Int64("received", result.Amount))
		return vnpay.RspInvalidAmount
	}

	if !result.Succeeded() {
		if _, err := s.repo.Payment.MarkFailed(ctx, result.TxnRef, result.ResponseCode); err != nil {
			s.log.Error("Failed to mark payment failed", zap.Error(err), zap.String("txn_ref", result.TxnRef))
			return vnpay.RspUnknownError
		}
		return vnpay.RspSuccess
	}

	paidAt := result.PayDate
	if paidAt.IsZero() {
		paidAt = s.now()
	}

	applied, err := s.settle(ctx, payment, result.TransactionNo, result.ResponseCode, paidAt)
	if err != nil {
		return vnpay.RspUnknownError
	}
	if !applied {
		return vnpay.RspAlreadyConfirmed
	}
	return vnpay.RspSuccess
}

// ==================== ZALOPAY ====================

func (s *paymentService) CreateZaloPayPayment(ctx context.Context, actor utils.Actor, req *request.CreatePaymentRequest) (*response.PaymentURLResponse, error) {
	if !s.zalopay.Configured() {
		return nil, errGatewayNotConfigured
	}

	booking, _, err := s.payableBooking(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	payment, err := s.openPayment(ctx, booking, entity.PaymentMethodZaloPay, utils.GenerateAppTransID(s.now()))
	if err != nil {
		return nil, err
	}

	order, err := s.zalopay.CreateOrder(ctx, zalopay.OrderRequest{
		AppTransID:  payment.TxnRef,
		AppUser:     actor.UserID.String(),
		Amount:      payment.Amount,
		Description: "Thanh toan dat san " + booking.Code,
		BankCode:    req.BankCode,
		Embed:       zalopay.EmbedData{BookingID: booking.ID.String()},
		Items: []zalopay.Item{{
			ItemID:       booking.Code,
			ItemName:     "Court booking " + booking.BookingDate.Format(dateLayout),
			ItemPrice:    payment.Amount,
			ItemQuantity: 1,
		}},
	})
	if err != nil {
		s.abandon(ctx, payment.TxnRef, "create_error")
		s.log.Error("ZaloPay create order failed", zap.Error(err), zap.String("app_trans_id", payment.TxnRef))
		return nil, apperror.BadGateway(err, "payment gateway unavailable")
	}
	if !order.Succeeded() {
		s.abandon(ctx, payment.TxnRef, strconv.Itoa(order.ReturnCode))
		s.log.Warn("ZaloPay rejected order",
			zap.String("app_trans_id", payment.TxnRef),
			zap.Int("return_code", order.ReturnCode),
			zap.String("message", order.ReturnMessage),
			zap.String("sub_message", order.SubReturnMessage))
		return nil, apperror.BadGateway(errors.New(order.ReturnMessage), "payment gateway rejected the order: %s", order.SubReturnMessage)
	}

	s.log.Info("ZaloPay order created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("app_trans_id", payment.TxnRef))

	return &response.PaymentURLResponse{
		Provider:   entity.PaymentMethodZaloPay,
		TxnRef:     payment.TxnRef,
		Amount:     payment.Amount,
		PaymentURL: order.OrderURL,
	}, nil
}

// HandleZaloPayCallback answers -1 for requests that will never succeed and 0 to ask for a retry
func (s *paymentService) HandleZaloPayCallback(ctx context.Context, body []byte) zalopay.CallbackAck {
	cb, err := zalopay.ParseCallback(body)
	if err != nil {
		s.log.Warn("ZaloPay callback malformed", zap.Error(err))
		return zalopay.CallbackAck{ReturnCode: zalopay.AckInvalidRequest, ReturnMessage: "invalid callback body"}
	}

	if !s.zalopay.VerifyCallback(cb) {
		s.log.Warn("ZaloPay callback mac mismatch")
		return zalopay.CallbackAck{ReturnCode: zalopay.AckInvalidRequest, ReturnMessage: "mac not equal"}
	}

	data, err := cb.Decode()
	if err != nil {
		s.log.Warn("ZaloPay callback data malformed", zap.Error(err))
		return zalopay.CallbackAck{ReturnCode: zalopay.AckInvalidRequest, ReturnMessage: "invalid callback data"}
	}
	embed, err := data.Embed()
	if err != nil {
		s.log.Warn("ZaloPay embed_data malformed", zap.Error(err), zap.String("app_trans_id", data.AppTransID))
		return zalopay.CallbackAck{ReturnCode: zalopay.AckInvalidRequest, ReturnMessage: "invalid embed_data"}
	}

	paidAt := s.now()
	if data.ServerTime > 0 {
		paidAt = time.UnixMilli(data.ServerTime)
	}
	zpTransID := strconv.FormatInt(data.ZpTransID, 10)

	switch {
	case embed.CommissionID != "":
		return s.commissionCallback(ctx, embed.CommissionID, data, zpTransID, paidAt)
	case embed.BookingID != "":
		return s.bookingCallback(ctx, embed.BookingID, data, zpTransID, paidAt)
	}

	s.log.Warn("ZaloPay callback without target", zap.String("app_trans_id", data.AppTransID))
	return zalopay.CallbackAck{ReturnCode: zalopay.AckInvalidRequest, ReturnMessage: "embed_data has no bookingId or commissionId"}
}

func (s *paymentService) bookingCallback(ctx context.Context, rawBookingID string, data *zalopay.CallbackData, zpTransID string, paidAt time.Time) zalopay.CallbackAck {
	log := s.log.With(zap.String("app_trans_id", data.AppTransID), zap.String("booking_id", rawBookingID))

	payment, err := s.repo.Payment.FindByTxnRef(ctx, data.AppTransID)
	if err != nil {
		log.Error("Failed to find payment", zap.Error(err))
		return zalopay.CallbackAck{ReturnCode: zalopay.AckRetry, ReturnMessage: "temporary error"}
	}
	if payment == nil || payment.Provider != entity.PaymentMethodZaloPay || payment.BookingID.String() != rawBookingID {
		log.Warn("ZaloPay callback for unknown order")
		return zalopay.CallbackAck{ReturnCode: zalopay.AckInvalidRequest, ReturnMessage: "order not found"}
	}
	if payment.Status != entity.PaymentStatusPending {
		return zalopay.CallbackAck{ReturnCode: zalopay.AckSuccess, ReturnMessage: "already processed"}
	}
	if payment.Amount != data.Amount {
		log.Warn("ZaloPay amount mismatch", zap.Int64("expected", payment.Amount), zap.Int64("received", data.Amount))
		return zalopay.CallbackAck{ReturnCode: zalopay.AckInvalidRequest, ReturnMessage: "amount mismatch"}
	}

	applied, err := s.settle(ctx, payment, zpTransID, strconv.Itoa(zalopay.CodeSuccess), paidAt)
	if err != nil {
		return zalopay.CallbackAck{ReturnCode: zalopay.AckRetry, ReturnMessage: "temporary error"}
	}
	if !applied {
		return zalopay.CallbackAck{ReturnCode: zalopay.AckSuccess, ReturnMessage: "already processed"}
	}

	log.Info("ZaloPay booking payment completed", zap.String("zp_trans_id", zpTransID))
	return zalopay.CallbackAck{ReturnCode: zalopay.AckSuccess, ReturnMessage: "success"}
}

func (s *paymentService) commissionCallback(ctx context.Context, rawCommissionID string, data *zalopay.CallbackData, zpTransID string, paidAt time.Time) zalopay.CallbackAck {
	log := s.log.With(zap.String("app_trans_id", data.AppTransID), zap.String("commission_id", rawCommissionID))

	id, err := uuid.Parse(rawCommissionID)
	if err != nil {
		return zalopay.CallbackAck{ReturnCode: zalopay.AckInvalidRequest, ReturnMessage: "invalid commissionId"}
	}

	// any order issued for the commission counts, an owner may pay an older one after reopening
	commission, err := s.repo.Commission.FindByAppTransID(ctx, data.AppTransID)
	if err != nil {
		log.Error("Failed to find commission", zap.Error(err))
		return zalopay.CallbackAck{ReturnCode: zalopay.AckRetry, ReturnMessage: "temporary error"}
	}
	if commission == nil || commission.ID != id {
		log.Warn("ZaloPay callback for unknown commission order")
		return zalopay.CallbackAck{ReturnCode: zalopay.AckInvalidRequest, ReturnMessage: "order not found"}
	}
	if commission.Status == entity.CommissionPaid {
		return zalopay.CallbackAck{ReturnCode: zalopay.AckSuccess, ReturnMessage: "already processed"}
	}
	if commission.Amount != data.Amount {
		log.Warn("ZaloPay commission amount mismatch", zap.Int64("expected", commission.Amount), zap.Int64("received", data.Amount))
		return zalopay.CallbackAck{ReturnCode: zalopay.AckInvalidRequest, ReturnMessage: "amount mismatch"}
	}

	applied, err := markCommissionPaid(ctx, s.repo, s.events, commission, zpTransID, paidAt, s.log)
	if err != nil {
		return zalopay.CallbackAck{ReturnCode: zalopay.AckRetry, ReturnMessage: "temporary error"}
	}
	if !applied {
		return zalopay.CallbackAck{ReturnCode: zalopay.AckSuccess, ReturnMessage: "already processed"}
	}
	return zalopay.CallbackAck{ReturnCode: zalopay.AckSuccess, ReturnMessage: "success"}
}

// QueryZaloPayOrder asks ZaloPay for an order and applies a confirmed payment the callback missed
func (s *paymentService) QueryZaloPayOrder(ctx context.Context, appTransID string) (*response.ZaloPayOrderStatusResponse, error) {
	if !s.zalopay.Configured() {
		return nil, errGatewayNotConfigured
	}
	if appTransID == "" {
		return nil, apperror.BadRequest("app_trans_id is required")
	}

	status, err := s.zalopay.QueryOrder(ctx, appTransID)
	if err != nil {
		s.log.Error("ZaloPay query failed", zap.Error(err), zap.String("app_trans_id", appTransID))
		return nil, apperror.BadGateway(err, "payment gateway unavailable")
	}

	resp := &response.ZaloPayOrderStatusResponse{
		AppTransID:    appTransID,
		ReturnCode:    status.ReturnCode,
		ReturnMessage: status.ReturnMessage,
		IsProcessing:  status.IsProcessing,
		Amount:        status.Amount,
		ZpTransID:     status.ZpTransID,
	}
	if status.ReturnCode != zalopay.CodeSuccess {
		return resp, nil
	}

	zpTransID := strconv.FormatInt(status.ZpTransID, 10)
	paidAt := s.now()

	payment, err := s.repo.Payment.FindByTxnRef(ctx, appTransID)
	if err != nil {
		s.log.Error("Failed to find payment", zap.Error(err), zap.String("app_trans_id", appTransID))
		return nil, apperror.Internal(err, "failed to find payment")
	}
	if payment != nil {
		if payment.Status == entity.PaymentStatusPending && payment.Amount == status.Amount {
			applied, err := s.settle(ctx, payment, zpTransID, strconv.Itoa(status.ReturnCode), paidAt)
			if err != nil {
				return nil, apperror.Internal(err, "failed to apply payment")
			}
			resp.Applied = applied
		}
		return resp, nil
	}

	commission, err := s.repo.Commission.FindByAppTransID(ctx, appTransID)
	if err != nil {
		s.log.Error("Failed to find commission", zap.Error(err), zap.String("app_trans_id", appTransID))
		return nil, apperror.Internal(err, "failed to find commission")
	}
	if commission == nil {
		return nil, apperror.NotFound("no payment or commission uses app_trans_id %s", appTransID)
	}
	if commission.Status != entity.CommissionPaid && commission.Amount == status.Amount {
		applied, err := markCommissionPaid(ctx, s.repo, s.events, commission, zpTransID, paidAt, s.log)
		if err != nil {
			return nil, apperror.Internal(err, "failed to apply commission payment")
		}
		resp.Applied = applied
	}
	return resp, nil
}

// ==================== HELPERS ====================

func (s *paymentService) payableBooking(ctx context.Context, actor utils.Actor, req *request.CreatePaymentRequest) (*entity.Booking, *entity.Facility, error) {
	if err := validate(req); err != nil {
		return nil, nil, err
	}
	bookingID, err := parseID(req.BookingID, "booking")
	if err != nil {
		return nil, nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, nil, apperror.Internal(err, "failed to find booking")
	}
	if booking == nil {
		return nil, nil, apperror.NotFound("booking not found")
	}
	if booking.UserID != actor.UserID {
		return nil, nil, apperror.Forbidden("you can only pay for your own bookings")
	}
	if booking.PaymentStatus != entity.BookingUnpaid {
		return nil, nil, apperror.BadRequest("booking is already %s", booking.PaymentStatus)
	}
	if booking.Status != entity.BookingStatusPending && booking.Status != entity.BookingStatusConfirmed {
		return nil, nil, apperror.BadRequest("booking is %s and can no longer be paid", booking.Status)
	}

	facility, err := s.repo.Facility.FindByID(ctx, booking.FacilityID)
	if err != nil {
		s.log.Error("Failed to find facility", zap.Error(err), zap.String("facility_id", booking.FacilityID.String()))
		return nil, nil, apperror.Internal(err, "failed to find facility")
	}
	if facility == nil {
		return nil, nil, apperror.NotFound("facility not found")
	}
	return booking, facility, nil
}

func (s *paymentService) openPayment(ctx context.Context, booking *entity.Booking, provider entity.PaymentMethod, txnRef string) (*entity.Payment, error) {
	now := s.now()
	payment := &entity.Payment{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID: booking.ID,
		Provider:  provider,
		TxnRef:    txnRef,
		Amount:    booking.TotalPrice,
		Status:    entity.PaymentStatusPending,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to create payment", zap.Error(err), zap.String("booking_id", booking.ID.String()))
		return nil, apperror.Internal(err, "failed to create payment")
	}
	return payment, nil
}

func (s *paymentService) abandon(ctx context.Context, txnRef, code string) {
	if _, err := s.repo.Payment.MarkFailed(ctx, txnRef, code); err != nil {
		s.log.Warn("Failed to mark payment failed", zap.Error(err), zap.String("txn_ref", txnRef))
	}
}

// settle marks the booking paid before the payment completes so a retried callback can finish a half applied one.
// It reports false when another delivery already completed the payment.
func (s *paymentService) settle(ctx context.Context, payment *entity.Payment, providerTxnNo, responseCode string, paidAt time.Time) (bool, error) {
	booking, err := s.repo.Booking.FindByID(ctx, payment.BookingID)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", payment.BookingID.String()))
		return false, err
	}

	var old entity.BookingStatus
	bookingPaid := false
	if booking != nil {
		old = booking.Status
		if booking.PaymentStatus == entity.BookingUnpaid {
			bookingPaid, err = s.markBookingPaid(ctx, booking, payment.Provider, paidAt)
			if err != nil {
				return false, err
			}
		}
	}

	completed, err := s.repo.Payment.MarkCompleted(ctx, payment.TxnRef, providerTxnNo, responseCode, paidAt)
	if err != nil {
		s.log.Error("Failed to mark payment completed", zap.Error(err), zap.String("txn_ref", payment.TxnRef))
		return false, err
	}

	// an earlier delivery paid the booking but stopped before completing the payment
	resumed := completed && !bookingPaid && booking != nil && paidBy(booking, payment.Provider, paidAt)

	switch {
	case bookingPaid || resumed:
		ownerID := uuid.Nil
		if f, err := s.repo.Facility.FindByID(ctx, booking.FacilityID); err == nil && f != nil {
			ownerID = f.OwnerID
		}
		publishBookingStatus(s.events, booking, ownerID, old, paidAt, s.log)

		s.log.Info("Booking paid",
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", string(booking.Status)),
			zap.String("provider", string(payment.Provider)),
			zap.String("txn_ref", payment.TxnRef),
			zap.Bool("resumed", resumed))
	case completed && booking != nil:
		s.log.Warn("Payment completed for a booking that could not be marked paid",
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", string(booking.Status)),
			zap.String("payment_status", string(booking.PaymentStatus)))
	}

	return completed, nil
}

// markBookingPaid confirms the booking, reviving an expired one while its slot is still free.
// When the slot was booked again in the meantime the payment is recorded and the booking stays expired.
func (s *paymentService) markBookingPaid(ctx context.Context, booking *entity.Booking, method entity.PaymentMethod, paidAt time.Time) (bool, error) {
	status := entity.BookingStatusConfirmed

	ok, err := s.repo.Booking.MarkPaid(ctx, booking.ID, method, paidAt)
	if err != nil && database.IsUniqueViolation(err) {
		s.log.Warn("Slot was booked again before the payment arrived",
			zap.String("booking_id", booking.ID.String()),
			zap.String("provider", string(method)))
		status = booking.Status
		ok, err = s.repo.Booking.RecordLatePayment(ctx, booking.ID, method, paidAt)
	}
	if err != nil {
		s.log.Error("Failed to mark booking paid", zap.Error(err), zap.String("booking_id", booking.ID.String()))
		return false, err
	}
	if !ok {
		return false, nil
	}

	booking.Status = status
	booking.PaymentStatus = entity.BookingPaid
	booking.PaymentMethod = &method
	booking.PaidAt = &paidAt
	return true, nil
}

func paidBy(b *entity.Booking, method entity.PaymentMethod, paidAt time.Time) bool {
	return b.PaymentStatus == entity.BookingPaid &&
		b.PaymentMethod != nil && *b.PaymentMethod == method &&
		b.PaidAt != nil && b.PaidAt.Equal(paidAt)
}
