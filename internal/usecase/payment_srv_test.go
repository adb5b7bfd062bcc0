package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/pkg/events"
	"court-booking/pkg/payment"
	"court-booking/pkg/payment/vnpay"
	"court-booking/pkg/payment/zalopay"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testTmnCode    = "COURT001"
	testHashSecret = "vnpay-test-secret"
	testZaloKey2   = "zalo-key2"
)

type paymentFixture struct {
	svc      PaymentService
	m        *repoMocks
	events   *recordingPublisher
	booking  *entity.Booking
	facility *entity.Facility
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	repo, m := newRepoMocks()
	config := &utils.Config{
		VNPay: utils.VNPayConfig{TmnCode: testTmnCode, HashSecret: testHashSecret, HashType: vnpay.HashSHA512},
	}
	vnp := vnpay.NewClient(vnpay.Config{TmnCode: testTmnCode, HashSecret: testHashSecret, HashType: vnpay.HashSHA512})
	zlp := zalopay.NewClient(zalopay.Config{AppID: 2553, Key1: "zalo-key1", Key2: testZaloKey2}, nil)
	pub := &recordingPublisher{}

	facility := &entity.Facility{Base: entity.Base{ID: uuid.New()}, OwnerID: uuid.New()}
	booking := &entity.Booking{
		BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New()},
		Code:          "BK-20240301-ABC123",
		UserID:        uuid.New(),
		FacilityID:    facility.ID,
		TotalPrice:    150000,
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.BookingUnpaid,
	}
	m.Booking.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	m.Facility.On("FindByID", mock.Anything, facility.ID).Return(facility, nil)

	return &paymentFixture{
		svc:      NewPaymentService(repo, vnp, zlp, pub, config, zap.NewNop()),
		m:        m,
		events:   pub,
		booking:  booking,
		facility: facility,
	}
}

func (f *paymentFixture) pending(provider entity.PaymentMethod, txnRef string) *entity.Payment {
	return &entity.Payment{
		BookingID: f.booking.ID,
		Provider:  provider,
		TxnRef:    txnRef,
		Amount:    f.booking.TotalPrice,
		Status:    entity.PaymentStatusPending,
	}
}

func signedIPN(txnRef string, amount int64, responseCode string) url.Values {
	params := url.Values{}
	params.Set("vnp_TmnCode", testTmnCode)
	params.Set("vnp_TxnRef", txnRef)
	params.Set("vnp_Amount", strconv.FormatInt(amount*100, 10))
	params.Set("vnp_ResponseCode", responseCode)
	params.Set("vnp_TransactionStatus", responseCode)
	params.Set("vnp_TransactionNo", "14322011")
	params.Set("vnp_BankCode", "NCB")
	params.Set("vnp_PayDate", "20240301103000")
	params.Set("vnp_OrderInfo", "Thanh toan dat san")
	params.Set(vnpay.ParamSecureHash, vnpay.Sign(vnpay.CanonicalQuery(params), testHashSecret, vnpay.HashSHA512))
	return params
}

func TestVNPayIPNSignatureMismatch(t *testing.T) {
	f := newPaymentFixture(t)

	params := signedIPN("TXN1", 150000, "00")
	params.Set("vnp_Amount", "1500") // tampered after signing

	resp := f.svc.HandleVNPayIPN(context.Background(), params)

	assert.Equal(t, vnpay.RspInvalidSignature, resp.RspCode)
	f.m.Payment.AssertNotCalled(t, "FindByTxnRef", mock.Anything, mock.Anything)
	f.m.Payment.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.m.Booking.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVNPayIPNUppercaseHashAccepted(t *testing.T) {
	f := newPaymentFixture(t)
	f.m.Payment.On("FindByTxnRef", mock.Anything, "TXN1").Return(nil, nil)

	params := signedIPN("TXN1", 150000, "00")
	params.Set(vnpay.ParamSecureHash, strings.ToUpper(params.Get(vnpay.ParamSecureHash)))

	resp := f.svc.HandleVNPayIPN(context.Background(), params)
	assert.Equal(t, vnpay.RspOrderNotFound, resp.RspCode)
}

func TestVNPayIPNExactlyOnce(t *testing.T) {
	f := newPaymentFixture(t)

	pending := f.pending(entity.PaymentMethodVNPay, "TXN1")
	completed := *pending
	completed.Status = entity.PaymentStatusCompleted

	f.m.Payment.On("FindByTxnRef", mock.Anything, "TXN1").Return(pending, nil).Once()
	f.m.Payment.On("FindByTxnRef", mock.Anything, "TXN1").Return(&completed, nil).Once()
	f.m.Booking.On("MarkPaid", mock.Anything, f.booking.ID, entity.PaymentMethodVNPay, mock.AnythingOfType("time.Time")).Return(true, nil).Once()
	f.m.Payment.On("MarkCompleted", mock.Anything, "TXN1", "14322011", "00", mock.AnythingOfType("time.Time")).Return(true, nil).Once()

	params := signedIPN("TXN1", 150000, "00")

	first := f.svc.HandleVNPayIPN(context.Background(), params)
	assert.Equal(t, vnpay.RspSuccess, first.RspCode)

	second := f.svc.HandleVNPayIPN(context.Background(), params)
	assert.Equal(t, vnpay.RspAlreadyConfirmed, second.RspCode)

	f.m.Booking.AssertNumberOfCalls(t, "MarkPaid", 1)
	f.m.Payment.AssertNumberOfCalls(t, "MarkCompleted", 1)
	assert.Equal(t, []string{events.TopicBookingStatusChanged}, f.events.Topics())
}

func TestVNPayIPNResultCodes(t *testing.T) {
	t.Run("unknown order", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.m.Payment.On("FindByTxnRef", mock.Anything, "NOPE").Return(nil, nil)

		resp := f.svc.HandleVNPayIPN(context.Background(), signedIPN("NOPE", 150000, "00"))
		assert.Equal(t, vnpay.RspOrderNotFound, resp.RspCode)
	})

	t.Run("amount mismatch", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.m.Payment.On("FindByTxnRef", mock.Anything, "TXN1").Return(f.pending(entity.PaymentMethodVNPay, "TXN1"), nil)

		resp := f.svc.HandleVNPayIPN(context.Background(), signedIPN("TXN1", 99000, "00"))
		assert.Equal(t, vnpay.RspInvalidAmount, resp.RspCode)
		f.m.Payment.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("declined by customer", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.m.Payment.On("FindByTxnRef", mock.Anything, "TXN1").Return(f.pending(entity.PaymentMethodVNPay, "TXN1"), nil)
		f.m.Payment.On("MarkFailed", mock.Anything, "TXN1", "24").Return(true, nil)

		resp := f.svc.HandleVNPayIPN(context.Background(), signedIPN("TXN1", 150000, "24"))
		assert.Equal(t, vnpay.RspSuccess, resp.RspCode)
		f.m.Booking.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("owner merchant secret", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.m.MerchantPayment.On("FindByMerchantCode", mock.Anything, entity.PaymentMethodVNPay, "OWNER01").
			Return(&entity.MerchantPayment{MerchantCode: "OWNER01", SecretKey: "owner-secret", StatusID: entity.StatusActive}, nil)
		f.m.Payment.On("FindByTxnRef", mock.Anything, "TXN9").Return(nil, nil)

		params := url.Values{}
		params.Set("vnp_TmnCode", "OWNER01")
		params.Set("vnp_TxnRef", "TXN9")
		params.Set("vnp_Amount", "15000000")
		params.Set("vnp_ResponseCode", "00")
		params.Set(vnpay.ParamSecureHash, vnpay.Sign(vnpay.CanonicalQuery(params), "owner-secret", vnpay.HashSHA512))

		resp := f.svc.HandleVNPayIPN(context.Background(), params)
		assert.Equal(t, vnpay.RspOrderNotFound, resp.RspCode)
	})
}

func zaloCallbackBody(t *testing.T, key2 string, data map[string]any) []byte {
	t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	body, err := json.Marshal(zalopay.Callback{
		Data: string(raw),
		MAC:  payment.HMACSHA256Hex(key2, string(raw)),
		Type: 1,
	})
	require.NoError(t, err)
	return body
}

func bookingCallbackData(bookingID uuid.UUID, appTransID string, amount int64) map[string]any {
	embed, _ := json.Marshal(zalopay.EmbedData{BookingID: bookingID.String()})
	return map[string]any{
		"app_id":       2553,
		"app_trans_id": appTransID,
		"app_time":     time.Now().UnixMilli(),
		"amount":       amount,
		"embed_data":   string(embed),
		"item":         "[]",
		"zp_trans_id":  240301000012345,
		"server_time":  time.Now().UnixMilli(),
	}
}

func TestZaloPayCallbackMacMismatch(t *testing.T) {
	f := newPaymentFixture(t)

	body := zaloCallbackBody(t, "someone-else", bookingCallbackData(f.booking.ID, "240301_X1", 150000))
	ack := f.svc.HandleZaloPayCallback(context.Background(), body)

	assert.Equal(t, zalopay.AckInvalidRequest, ack.ReturnCode)
	assert.Equal(t, "mac not equal", ack.ReturnMessage)
	f.m.Payment.AssertNotCalled(t, "FindByTxnRef", mock.Anything, mock.Anything)
}

func TestZaloPayCallbackMalformed(t *testing.T) {
	f := newPaymentFixture(t)

	ack := f.svc.HandleZaloPayCallback(context.Background(), []byte(`{"data":`))
	assert.Equal(t, zalopay.AckInvalidRequest, ack.ReturnCode)
}

func TestZaloPayCallbackDoubleEscapedExactlyOnce(t *testing.T) {
	f := newPaymentFixture(t)

	pending := f.pending(entity.PaymentMethodZaloPay, "240301_X1")
	completed := *pending
	completed.Status = entity.PaymentStatusCompleted

	f.m.Payment.On("FindByTxnRef", mock.Anything, "240301_X1").Return(pending, nil).Once()
	f.m.Payment.On("FindByTxnRef", mock.Anything, "240301_X1").Return(&completed, nil).Once()
	f.m.Booking.On("MarkPaid", mock.Anything, f.booking.ID, entity.PaymentMethodZaloPay, mock.Anything).Return(true, nil).Once()
	f.m.Payment.On("MarkCompleted", mock.Anything, "240301_X1", "240301000012345", "1", mock.Anything).Return(true, nil).Once()

	body := zaloCallbackBody(t, testZaloKey2, bookingCallbackData(f.booking.ID, "240301_X1", 150000))
	wrapped, err := json.Marshal(string(body))
	require.NoError(t, err)

	first := f.svc.HandleZaloPayCallback(context.Background(), wrapped)
	assert.Equal(t, zalopay.AckSuccess, first.ReturnCode)

	second := f.svc.HandleZaloPayCallback(context.Background(), body)
	assert.Equal(t, zalopay.AckSuccess, second.ReturnCode)
	assert.Equal(t, "already processed", second.ReturnMessage)

	f.m.Booking.AssertNumberOfCalls(t, "MarkPaid", 1)
	assert.Len(t, f.events.Topics(), 1)
}

func TestZaloPayCallbackRetryOnStoreFailure(t *testing.T) {
	f := newPaymentFixture(t)
	f.m.Payment.On("FindByTxnRef", mock.Anything, "240301_X1").Return(nil, assert.AnError)

	body := zaloCallbackBody(t, testZaloKey2, bookingCallbackData(f.booking.ID, "240301_X1", 150000))
	ack := f.svc.HandleZaloPayCallback(context.Background(), body)

	assert.Equal(t, zalopay.AckRetry, ack.ReturnCode)
}

func TestZaloPayCallbackCommission(t *testing.T) {
	f := newPaymentFixture(t)

	appTransID := "240401_C1"
	commission := &entity.CommissionPayment{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		OwnerID:      f.facility.OwnerID,
		FacilityID:   f.facility.ID,
		Month:        3,
		Year:         2024,
		Amount:       75000,
		Status:       entity.CommissionPending,
		AppTransID:   &appTransID,
	}
	f.m.Commission.On("FindByAppTransID", mock.Anything, appTransID).Return(commission, nil)
	f.m.Commission.On("MarkPaid", mock.Anything, commission.ID, "240301000012345", mock.Anything).Return(true, nil).Once()
	f.m.Commission.On("MarkPaid", mock.Anything, commission.ID, "240301000012345", mock.Anything).Return(false, nil)

	embed, _ := json.Marshal(zalopay.EmbedData{CommissionID: commission.ID.String()})
	data := map[string]any{
		"app_trans_id": appTransID,
		"amount":       75000,
		"embed_data":   string(embed),
		"zp_trans_id":  240301000012345,
	}
	body := zaloCallbackBody(t, testZaloKey2, data)

	first := f.svc.HandleZaloPayCallback(context.Background(), body)
	assert.Equal(t, zalopay.AckSuccess, first.ReturnCode)
	assert.Equal(t, "success", first.ReturnMessage)

	second := f.svc.HandleZaloPayCallback(context.Background(), body)
	assert.Equal(t, zalopay.AckSuccess, second.ReturnCode)
	assert.Equal(t, "already processed", second.ReturnMessage)

	assert.Equal(t, []string{events.TopicCommissionPaid}, f.events.Topics())
}

func TestVNPayIPNRevivesExpiredBooking(t *testing.T) {
	f := newPaymentFixture(t)
	f.booking.Status = entity.BookingStatusExpired

	f.m.Payment.On("FindByTxnRef", mock.Anything, "TXN1").Return(f.pending(entity.PaymentMethodVNPay, "TXN1"), nil)
	f.m.Booking.On("MarkPaid", mock.Anything, f.booking.ID, entity.PaymentMethodVNPay, mock.Anything).Return(true, nil)
	f.m.Payment.On("MarkCompleted", mock.Anything, "TXN1", "14322011", "00", mock.Anything).Return(true, nil)

	resp := f.svc.HandleVNPayIPN(context.Background(), signedIPN("TXN1", 150000, "00"))

	assert.Equal(t, vnpay.RspSuccess, resp.RspCode)
	assert.Equal(t, entity.BookingStatusConfirmed, f.booking.Status)
	assert.Equal(t, entity.BookingPaid, f.booking.PaymentStatus)
	assert.Equal(t, []string{events.TopicBookingStatusChanged}, f.events.Topics())
}

func TestVNPayIPNSlotTakenRecordsLatePayment(t *testing.T) {
	f := newPaymentFixture(t)
	f.booking.Status = entity.BookingStatusExpired

	taken := fmt.Errorf("mark booking paid: %w", &pgconn.PgError{Code: "23505"})
	f.m.Payment.On("FindByTxnRef", mock.Anything, "TXN1").Return(f.pending(entity.PaymentMethodVNPay, "TXN1"), nil)
	f.m.Booking.On("MarkPaid", mock.Anything, f.booking.ID, entity.PaymentMethodVNPay, mock.Anything).Return(false, taken)
	f.m.Booking.On("RecordLatePayment", mock.Anything, f.booking.ID, entity.PaymentMethodVNPay, mock.Anything).Return(true, nil)
	f.m.Payment.On("MarkCompleted", mock.Anything, "TXN1", "14322011", "00", mock.Anything).Return(true, nil)

	resp := f.svc.HandleVNPayIPN(context.Background(), signedIPN("TXN1", 150000, "00"))

	assert.Equal(t, vnpay.RspSuccess, resp.RspCode)
	assert.Equal(t, entity.BookingStatusExpired, f.booking.Status)
	assert.Equal(t, entity.BookingPaid, f.booking.PaymentStatus)
	assert.Equal(t, []string{events.TopicBookingStatusChanged}, f.events.Topics())
}

func TestVNPayIPNRetryFinishesHalfAppliedPayment(t *testing.T) {
	f := newPaymentFixture(t)

	params := signedIPN("TXN1", 150000, "00")
	result, err := vnpay.ParseResult(params)
	require.NoError(t, err)

	// the first delivery paid the booking, then failed to complete the payment row
	method := entity.PaymentMethodVNPay
	f.booking.Status = entity.BookingStatusConfirmed
	f.booking.PaymentStatus = entity.BookingPaid
	f.booking.PaymentMethod = &method
	f.booking.PaidAt = &result.PayDate

	f.m.Payment.On("FindByTxnRef", mock.Anything, "TXN1").Return(f.pending(entity.PaymentMethodVNPay, "TXN1"), nil)
	f.m.Payment.On("MarkCompleted", mock.Anything, "TXN1", "14322011", "00", mock.Anything).Return(true, nil)

	resp := f.svc.HandleVNPayIPN(context.Background(), params)

	assert.Equal(t, vnpay.RspSuccess, resp.RspCode)
	f.m.Booking.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []string{events.TopicBookingStatusChanged}, f.events.Topics())
}

func TestVNPayIPNPaidByAnotherPaymentNoEvent(t *testing.T) {
	f := newPaymentFixture(t)

	method := entity.PaymentMethodZaloPay
	paidAt := time.Date(2024, 3, 1, 3, 0, 0, 0, time.UTC)
	f.booking.Status = entity.BookingStatusConfirmed
	f.booking.PaymentStatus = entity.BookingPaid
	f.booking.PaymentMethod = &method
	f.booking.PaidAt = &paidAt

	f.m.Payment.On("FindByTxnRef", mock.Anything, "TXN1").Return(f.pending(entity.PaymentMethodVNPay, "TXN1"), nil)
	f.m.Payment.On("MarkCompleted", mock.Anything, "TXN1", "14322011", "00", mock.Anything).Return(true, nil)

	resp := f.svc.HandleVNPayIPN(context.Background(), signedIPN("TXN1", 150000, "00"))

	assert.Equal(t, vnpay.RspSuccess, resp.RspCode)
	assert.Empty(t, f.events.Topics())
}

func TestZaloPayCallbackOlderCommissionOrder(t *testing.T) {
	f := newPaymentFixture(t)

	latest := "240301_B"
	commission := &entity.CommissionPayment{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		OwnerID:      f.facility.OwnerID,
		FacilityID:   f.facility.ID,
		Month:        2,
		Year:         2024,
		Amount:       75000,
		Status:       entity.CommissionPending,
		AppTransID:   &latest,
	}
	f.m.Commission.On("FindByAppTransID", mock.Anything, "240301_A").Return(commission, nil)
	f.m.Commission.On("MarkPaid", mock.Anything, commission.ID, "240301000012345", mock.Anything).Return(true, nil)

	embed, _ := json.Marshal(zalopay.EmbedData{CommissionID: commission.ID.String()})
	body := zaloCallbackBody(t, testZaloKey2, map[string]any{
		"app_trans_id": "240301_A",
		"amount":       75000,
		"embed_data":   string(embed),
		"zp_trans_id":  240301000012345,
	})

	ack := f.svc.HandleZaloPayCallback(context.Background(), body)

	assert.Equal(t, zalopay.AckSuccess, ack.ReturnCode)
	assert.Equal(t, "success", ack.ReturnMessage)
	f.m.Commission.AssertNumberOfCalls(t, "MarkPaid", 1)
	assert.Equal(t, []string{events.TopicCommissionPaid}, f.events.Topics())
}

func TestZaloPayCallbackCommissionOrderOfAnotherCommission(t *testing.T) {
	f := newPaymentFixture(t)

	other := &entity.CommissionPayment{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, Amount: 75000, Status: entity.CommissionPending}
	f.m.Commission.On("FindByAppTransID", mock.Anything, "240301_A").Return(other, nil)

	embed, _ := json.Marshal(zalopay.EmbedData{CommissionID: uuid.NewString()})
	body := zaloCallbackBody(t, testZaloKey2, map[string]any{
		"app_trans_id": "240301_A",
		"amount":       75000,
		"embed_data":   string(embed),
		"zp_trans_id":  240301000012345,
	})

	ack := f.svc.HandleZaloPayCallback(context.Background(), body)

	assert.Equal(t, zalopay.AckInvalidRequest, ack.ReturnCode)
	f.m.Commission.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
