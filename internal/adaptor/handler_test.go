package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/internal/usecase"
	"court-booking/pkg/apperror"
	"court-booking/pkg/payment/vnpay"
	"court-booking/pkg/payment/zalopay"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBookingService overrides only what the tests call; anything else panics on the nil interface
type fakeBookingService struct {
	usecase.BookingService
	createErr error
	created   *request.CreateBookingRequest
	actor     utils.Actor
}

func (f *fakeBookingService) CreateBooking(_ context.Context, actor utils.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	f.actor = actor
	f.created = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &response.BookingResponse{Code: "BK-TEST", CourtID: req.CourtID}, nil
}

func (f *fakeBookingService) GetBooking(_ context.Context, _ utils.Actor, id uuid.UUID) (*response.BookingResponse, error) {
	return &response.BookingResponse{ID: id.String()}, nil
}

type fakePaymentService struct {
	usecase.PaymentService
	body []byte
}

func (f *fakePaymentService) HandleVNPayIPN(_ context.Context, params url.Values) vnpay.IPNResponse {
	if params.Get("vnp_SecureHash") == "" {
		return vnpay.NewIPNResponse(vnpay.RspInvalidSignature)
	}
	return vnpay.NewIPNResponse(vnpay.RspSuccess)
}

func (f *fakePaymentService) HandleZaloPayCallback(_ context.Context, body []byte) zalopay.CallbackAck {
	f.body = body
	return zalopay.CallbackAck{ReturnCode: 1, ReturnMessage: "success"}
}

func withActor(r *http.Request, actor utils.Actor) *http.Request {
	return r.WithContext(utils.SetUserContext(r.Context(), actor.UserID, actor.Role))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var env utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func bookingRouter(svc usecase.BookingService) http.Handler {
	h := NewBookingHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/bookings", h.CreateBooking)
	r.Get("/api/bookings/{id}", h.GetBooking)
	return r
}

func TestCreateBookingHandler(t *testing.T) {
	actor := utils.Actor{UserID: uuid.New(), Role: "customer"}
	body := `{"court_id":"` + uuid.NewString() + `","time_slot_id":"` + uuid.NewString() + `","booking_date":"2024-03-02"}`

	t.Run("created", func(t *testing.T) {
		svc := &fakeBookingService{}
		req := withActor(httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body)), actor)
		rec := httptest.NewRecorder()

		bookingRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, actor, svc.actor)
		assert.Equal(t, "2024-03-02", svc.created.BookingDate)
		assert.True(t, decodeEnvelope(t, rec).Success)
	})

	t.Run("slot taken", func(t *testing.T) {
		svc := &fakeBookingService{createErr: apperror.Conflict("this slot is already booked for 2024-03-02")}
		req := withActor(httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body)), actor)
		rec := httptest.NewRecorder()

		bookingRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "this slot is already booked for 2024-03-02", env.Message)
	})

	t.Run("validation fields are returned", func(t *testing.T) {
		svc := &fakeBookingService{createErr: apperror.Validation(map[string]string{"BookingDate": "This field is required"})}
		req := withActor(httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{}`)), actor)
		rec := httptest.NewRecorder()

		bookingRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, map[string]any{"BookingDate": "This field is required"}, env.Errors)
	})

	t.Run("unexpected error hides details", func(t *testing.T) {
		svc := &fakeBookingService{createErr: assert.AnError}
		req := withActor(httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body)), actor)
		rec := httptest.NewRecorder()

		bookingRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decodeEnvelope(t, rec).Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &fakeBookingService{}
		req := withActor(httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{`)), actor)
		rec := httptest.NewRecorder()

		bookingRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.created)
	})

	t.Run("anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		bookingRouter(&fakeBookingService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetBookingRejectsBadID(t *testing.T) {
	req := withActor(httptest.NewRequest(http.MethodGet, "/api/bookings/not-a-uuid", nil), utils.Actor{UserID: uuid.New(), Role: "customer"})
	rec := httptest.NewRecorder()

	bookingRouter(&fakeBookingService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid booking ID", decodeEnvelope(t, rec).Message)
}

func TestPaymentCallbacksAnswerRaw(t *testing.T) {
	svc := &fakePaymentService{}
	h := NewPaymentHandler(svc, zap.NewNop())

	t.Run("vnpay ipn", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.VNPayIPN(rec, httptest.NewRequest(http.MethodGet, "/api/payments/vnpay/ipn?vnp_TxnRef=1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"RspCode":"97","Message":"Invalid signature"}`, rec.Body.String())
	})

	t.Run("zalopay callback", func(t *testing.T) {
		payload := `{"data":"{}","mac":"abc","type":1}`
		rec := httptest.NewRecorder()
		h.ZaloPayCallback(rec, httptest.NewRequest(http.MethodPost, "/api/payments/zalopay/callback", strings.NewReader(payload)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, payload, string(svc.body))
		assert.JSONEq(t, `{"return_code":1,"return_message":"success"}`, rec.Body.String())
	})
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	assert.Equal(t, "10.0.0.7", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req))
}
