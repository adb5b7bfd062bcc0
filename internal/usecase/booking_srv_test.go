package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/dto/request"
	"court-booking/pkg/apperror"
	"court-booking/pkg/events"
	"court-booking/pkg/locker"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingFixture struct {
	svc      *bookingService
	m        *repoMocks
	events   *recordingPublisher
	facility *entity.Facility
	court    *entity.Court
	slot     *entity.TimeSlot
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	repo, m := newRepoMocks()
	pub := &recordingPublisher{}

	facility := &entity.Facility{Base: entity.Base{ID: uuid.New()}, OwnerID: uuid.New(), OpenTime: 360, CloseTime: 1320, StatusID: entity.StatusActive}
	court := &entity.Court{Base: entity.Base{ID: uuid.New()}, FacilityID: facility.ID, Name: "San 1", PricePerHour: 200000, StatusID: entity.StatusActive}
	slot := &entity.TimeSlot{Base: entity.Base{ID: uuid.New()}, FacilityID: facility.ID, StartTime: 18 * 60, EndTime: 19*60 + 30, DiscountRate: 10, StatusID: entity.StatusActive}

	m.Facility.On("FindByID", mock.Anything, facility.ID).Return(facility, nil)
	m.Court.On("FindByID", mock.Anything, court.ID).Return(court, nil)
	m.TimeSlot.On("FindByID", mock.Anything, slot.ID).Return(slot, nil)

	svc := NewBookingService(repo, locker.NewLocal(), pub, &utils.Config{}, zap.NewNop()).(*bookingService)
	// 2024-03-01 09:00 in Vietnam
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC) }

	return &bookingFixture{svc: svc, m: m, events: pub, facility: facility, court: court, slot: slot}
}

func (f *bookingFixture) request(date string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		CourtID:     f.court.ID.String(),
		TimeSlotID:  f.slot.ID.String(),
		BookingDate: date,
	}
}

func TestCreateBooking(t *testing.T) {
	f := newBookingFixture(t)
	date := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	f.m.Booking.On("ExistsActive", mock.Anything, f.court.ID, f.slot.ID, date).Return(false, nil)
	f.m.Booking.On("Create", mock.Anything, mock.AnythingOfType("*entity.Booking")).Return(nil)

	actor := customerActor()
	resp, err := f.svc.CreateBooking(context.Background(), actor, f.request("2024-03-02"))
	require.NoError(t, err)

	// 200000/h x 1.5h x 90%
	assert.Equal(t, int64(270000), resp.TotalPrice)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, entity.BookingUnpaid, resp.PaymentStatus)
	assert.Equal(t, "18:00", resp.StartTime)
	assert.Equal(t, actor.UserID.String(), resp.UserID)
	assert.Equal(t, []string{events.TopicBookingStatusChanged}, f.events.Topics())
}

func TestCreateBookingAlreadyBooked(t *testing.T) {
	f := newBookingFixture(t)
	f.m.Booking.On("ExistsActive", mock.Anything, f.court.ID, f.slot.ID, mock.Anything).Return(true, nil)

	_, err := f.svc.CreateBooking(context.Background(), customerActor(), f.request("2024-03-02"))

	assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
	f.m.Booking.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBookingLostRaceOnUniqueIndex(t *testing.T) {
	f := newBookingFixture(t)
	f.m.Booking.On("ExistsActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.m.Booking.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

	_, err := f.svc.CreateBooking(context.Background(), customerActor(), f.request("2024-03-02"))
	assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
	assert.Empty(t, f.events.Topics())
}

func TestCreateBookingRejectsPast(t *testing.T) {
	cases := []struct{ name, date string }{
		{"yesterday", "2024-02-29"},
		{"started today", "2024-03-01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newBookingFixture(t)
			f.svc.now = func() time.Time { return time.Date(2024, 3, 1, 11, 30, 0, 0, time.UTC) } // 18:30 ICT

			_, err := f.svc.CreateBooking(context.Background(), customerActor(), f.request(tc.date))
			assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
			f.m.Booking.AssertNotCalled(t, "ExistsActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreateBookingSlotFromAnotherFacility(t *testing.T) {
	f := newBookingFixture(t)
	f.slot.FacilityID = uuid.New()

	_, err := f.svc.CreateBooking(context.Background(), customerActor(), f.request("2024-03-02"))
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
}

func TestCancelBookingOnlyOwnBooking(t *testing.T) {
	f := newBookingFixture(t)
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		UserID:       uuid.New(),
		FacilityID:   f.facility.ID,
		BookingDate:  time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:    18 * 60,
		Status:       entity.BookingStatusPending,
	}
	f.m.Booking.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	_, err := f.svc.CancelBooking(context.Background(), customerActor(), booking.ID)
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))

	f.m.Booking.On("UpdateStatus", mock.Anything, booking.ID, mock.Anything, entity.BookingStatusCancelled).Return(true, nil)
	resp, err := f.svc.CancelBooking(context.Background(), utils.Actor{UserID: booking.UserID, Role: "customer"}, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
}

func TestGetAvailabilityMarksBookedSlots(t *testing.T) {
	f := newBookingFixture(t)
	other := &entity.Court{Base: entity.Base{ID: uuid.New()}, FacilityID: f.facility.ID, Name: "San 2", PricePerHour: 100000, StatusID: entity.StatusActive}
	date := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	f.m.Court.On("FindByFacilityID", mock.Anything, f.facility.ID, true).Return([]*entity.Court{f.court, other}, nil)
	f.m.TimeSlot.On("FindByFacilityID", mock.Anything, f.facility.ID).Return([]*entity.TimeSlot{f.slot}, nil)
	f.m.Booking.On("FindActiveByFacilityDate", mock.Anything, f.facility.ID, date).
		Return([]*entity.Booking{{CourtID: f.court.ID, TimeSlotID: f.slot.ID}}, nil)

	resp, err := f.svc.GetAvailability(context.Background(), f.facility.ID, "2024-03-02")
	require.NoError(t, err)
	require.Len(t, resp.Courts, 2)

	assert.True(t, resp.Courts[0].Slots[0].Booked)
	assert.False(t, resp.Courts[1].Slots[0].Booked)
	assert.Equal(t, int64(135000), resp.Courts[1].Slots[0].Price)
}

func TestExpirePendingPublishesPerBooking(t *testing.T) {
	f := newBookingFixture(t)
	cutoff := f.svc.now().Add(-15 * time.Minute)
	// a payment opened within the gateway window plus the callback grace still holds the booking
	paymentOpenSince := f.svc.now().Add(-20 * time.Minute)

	f.m.Booking.On("ExpirePending", mock.Anything, cutoff, paymentOpenSince).Return([]*entity.Booking{
		{FacilityID: f.facility.ID, Status: entity.BookingStatusExpired},
		{FacilityID: f.facility.ID, Status: entity.BookingStatusExpired},
	}, nil)

	n, err := f.svc.ExpirePending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, f.events.Topics(), 2)
	f.m.Facility.AssertNumberOfCalls(t, "FindByID", 1)
}

func (f *bookingFixture) booking(status entity.BookingStatus, date time.Time) *entity.Booking {
	b := &entity.Booking{
		BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New()},
		Code:          "CB-TEST01",
		UserID:        uuid.New(),
		FacilityID:    f.facility.ID,
		CourtID:       f.court.ID,
		TimeSlotID:    f.slot.ID,
		BookingDate:   date,
		StartTime:     18 * 60,
		EndTime:       19*60 + 30,
		Status:        status,
		PaymentStatus: entity.BookingUnpaid,
	}
	f.m.Booking.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	f.m.Booking.On("FindByCode", mock.Anything, b.Code).Return(b, nil)
	return b
}

func (f *bookingFixture) owner() utils.Actor {
	return utils.Actor{UserID: f.facility.OwnerID, Role: "owner"}
}

func TestUpdateBookingStatusMarkPaid(t *testing.T) {
	f := newBookingFixture(t)
	b := f.booking(entity.BookingStatusPending, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	f.m.Booking.On("MarkPaid", mock.Anything, b.ID, entity.PaymentMethodCash, f.svc.now()).Return(true, nil)

	resp, err := f.svc.UpdateBookingStatus(context.Background(), f.owner(), b.ID, &request.UpdateBookingStatusRequest{Action: "mark_paid"})
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
	assert.Equal(t, entity.BookingPaid, resp.PaymentStatus)
	require.NotNil(t, resp.PaymentMethod)
	assert.Equal(t, entity.PaymentMethodCash, *resp.PaymentMethod)
	assert.Equal(t, []string{events.TopicBookingStatusChanged}, f.events.Topics())
}

func TestUpdateBookingStatusMarkPaidAlreadyPaid(t *testing.T) {
	f := newBookingFixture(t)
	b := f.booking(entity.BookingStatusConfirmed, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	f.m.Booking.On("MarkPaid", mock.Anything, b.ID, entity.PaymentMethodCash, mock.Anything).Return(false, nil)

	_, err := f.svc.UpdateBookingStatus(context.Background(), f.owner(), b.ID, &request.UpdateBookingStatusRequest{Action: "mark_paid"})
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	assert.Empty(t, f.events.Topics())
}

func TestUpdateBookingStatusIllegalTransition(t *testing.T) {
	f := newBookingFixture(t)
	b := f.booking(entity.BookingStatusCancelled, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	f.m.Booking.On("UpdateStatus", mock.Anything, b.ID, []entity.BookingStatus{entity.BookingStatusConfirmed}, entity.BookingStatusCompleted).
		Return(false, nil)

	_, err := f.svc.UpdateBookingStatus(context.Background(), f.owner(), b.ID, &request.UpdateBookingStatusRequest{Action: "complete"})
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	assert.Empty(t, f.events.Topics())
}

func TestUpdateBookingStatusForeignOwner(t *testing.T) {
	f := newBookingFixture(t)
	b := f.booking(entity.BookingStatusPending, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))

	_, err := f.svc.UpdateBookingStatus(context.Background(), ownerActor(), b.ID, &request.UpdateBookingStatusRequest{Action: "confirm"})
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
	f.m.Booking.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckIn(t *testing.T) {
	f := newBookingFixture(t)
	b := f.booking(entity.BookingStatusConfirmed, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	f.m.Booking.On("MarkCheckedIn", mock.Anything, b.ID, f.svc.now()).Return(true, nil)

	resp, err := f.svc.CheckIn(context.Background(), f.owner(), &request.CheckInRequest{Code: " CB-TEST01 "})
	require.NoError(t, err)
	require.NotNil(t, resp.CheckedInAt)
}

func TestCheckInWrongDay(t *testing.T) {
	f := newBookingFixture(t)
	f.booking(entity.BookingStatusConfirmed, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))

	_, err := f.svc.CheckIn(context.Background(), f.owner(), &request.CheckInRequest{Code: "CB-TEST01"})
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	f.m.Booking.AssertNotCalled(t, "MarkCheckedIn", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckInAlreadyCheckedIn(t *testing.T) {
	f := newBookingFixture(t)
	b := f.booking(entity.BookingStatusConfirmed, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	earlier := f.svc.now().Add(-10 * time.Minute)
	b.CheckedInAt = &earlier
	f.m.Booking.On("MarkCheckedIn", mock.Anything, b.ID, mock.Anything).Return(false, nil)

	_, err := f.svc.CheckIn(context.Background(), f.owner(), &request.CheckInRequest{Code: "CB-TEST01"})
	assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
}

func TestCheckInUnconfirmed(t *testing.T) {
	f := newBookingFixture(t)
	b := f.booking(entity.BookingStatusPending, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	f.m.Booking.On("MarkCheckedIn", mock.Anything, b.ID, mock.Anything).Return(false, nil)

	_, err := f.svc.CheckIn(context.Background(), f.owner(), &request.CheckInRequest{Code: "CB-TEST01"})
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
}
