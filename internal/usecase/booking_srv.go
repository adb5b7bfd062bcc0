package usecase

import (
	"context"
	"strings"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/pkg/apperror"
	"court-booking/pkg/database"
	"court-booking/pkg/document"
	"court-booking/pkg/events"
	"court-booking/pkg/locker"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Customer
	CreateBooking(ctx context.Context, actor utils.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ListMyBookings(ctx context.Context, actor utils.Actor, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBooking(ctx context.Context, actor utils.Actor, id uuid.UUID) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, actor utils.Actor, id uuid.UUID) (*response.BookingResponse, error)
	QRCode(ctx context.Context, actor utils.Actor, id uuid.UUID) ([]byte, error)
	Receipt(ctx context.Context, actor utils.Actor, id uuid.UUID) ([]byte, string, error)

	// Public
	GetAvailability(ctx context.Context, facilityID uuid.UUID, date string) (*response.AvailabilityResponse, error)

	// Owner
	ListFacilityBookings(ctx context.Context, actor utils.Actor, facilityID uuid.UUID, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateBookingStatus(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	CheckIn(ctx context.Context, actor utils.Actor, req *request.CheckInRequest) (*response.BookingResponse, error)

	// Admin
	ListAllBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Scheduled
	ExpirePending(ctx context.Context) (int, error)
}

type bookingService struct {
	repo         *repository.Repository
	locker       locker.Locker
	events       events.Publisher
	pendingLimit time.Duration
	payWindow    time.Duration
	now          func() time.Time
	log          *zap.Logger
}

// callbackGrace covers gateway notifications that arrive after the order itself expired
const callbackGrace = 5 * time.Minute

func NewBookingService(repo *repository.Repository, l locker.Locker, pub events.Publisher, config *utils.Config, log *zap.Logger) BookingService {
	pendingLimit := time.Duration(config.Booking.PendingExpiryMinutes) * time.Minute
	if pendingLimit <= 0 {
		pendingLimit = 15 * time.Minute
	}

	return &bookingService{
		repo:         repo,
		locker:       l,
		events:       pub,
		pendingLimit: pendingLimit,
		payWindow:    config.PaymentWindow() + callbackGrace,
		now:          time.Now,
		log:          log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, actor utils.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	courtID, err := parseID(req.CourtID, "court")
	if err != nil {
		return nil, err
	}
	slotID, err := parseID(req.TimeSlotID, "time slot")
	if err != nil {
		return nil, err
	}
	date, err := parseDate(req.BookingDate)
	if err != nil {
		return nil, err
	}

	court, err := s.repo.Court.FindByID(ctx, courtID)
	if err != nil {
		s.log.Error("Failed to find court", zap.Error(err), zap.String("court_id", courtID.String()))
		return nil, apperror.Internal(err, "failed to find court")
	}
	if court == nil || court.StatusID != entity.StatusActive {
		return nil, apperror.NotFound("court not found")
	}

	slot, err := s.repo.TimeSlot.FindByID(ctx, slotID)
	if err != nil {
		s.log.Error("Failed to find time slot", zap.Error(err), zap.String("slot_id", slotID.String()))
		return nil, apperror.Internal(err, "failed to find time slot")
	}
	if slot == nil || slot.StatusID != entity.StatusActive {
		return nil, apperror.NotFound("time slot not found")
	}

	if slot.FacilityID != court.FacilityID || !slot.AppliesTo(court.ID) {
		return nil, apperror.BadRequest("time slot is not offered on this court")
	}

	facility, err := s.repo.Facility.FindByID(ctx, court.FacilityID)
	if err != nil {
		s.log.Error("Failed to find facility", zap.Error(err), zap.String("facility_id", court.FacilityID.String()))
		return nil, apperror.Internal(err, "failed to find facility")
	}
	if facility == nil || facility.StatusID != entity.StatusActive {
		return nil, apperror.NotFound("facility not found")
	}

	now := s.now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:          utils.GenerateBookingCode(),
		UserID:        actor.UserID,
		FacilityID:    facility.ID,
		CourtID:       court.ID,
		TimeSlotID:    slot.ID,
		BookingDate:   date,
		StartTime:     slot.StartTime,
		EndTime:       slot.EndTime,
		UnitPrice:     court.PricePerHour,
		DiscountRate:  slot.DiscountRate,
		TotalPrice:    entity.CalculatePrice(court.PricePerHour, slot.Minutes(), slot.DiscountRate),
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.BookingUnpaid,
		Note:          sanitizeOptional(req.Note),
	}

	if !booking.StartsAt(vietnamTime).After(now) {
		return nil, apperror.BadRequest("cannot book a slot that has already started")
	}

	release, err := acquire(ctx, s.locker, locker.BookingKey(court.ID, slot.ID, date), s.log)
	if err != nil {
		return nil, err
	}
	defer release()

	taken, err := s.repo.Booking.ExistsActive(ctx, court.ID, slot.ID, date)
	if err != nil {
		s.log.Error("Failed to check slot availability", zap.Error(err))
		return nil, apperror.Internal(err, "failed to check availability")
	}
	if taken {
		return nil, apperror.Conflict("this slot is already booked for %s", req.BookingDate)
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		// lost the race on another instance without redis
		if database.IsUniqueViolation(err) {
			return nil, apperror.Conflict("this slot is already booked for %s", req.BookingDate)
		}
		s.log.Error("Failed to create booking", zap.Error(err))
		return nil, apperror.Internal(err, "failed to create booking")
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("code", booking.Code),
		zap.String("court_id", court.ID.String()),
		zap.String("date", req.BookingDate),
		zap.Int64("total", booking.TotalPrice))

	s.publish(booking, facility.OwnerID, "")

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, actor utils.Actor, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	filter, err := s.filterOf(req)
	if err != nil {
		return nil, err
	}
	filter.UserID = &actor.UserID
	return s.list(ctx, filter, req)
}

func (s *bookingService) GetBooking(ctx context.Context, actor utils.Actor, id uuid.UUID) (*response.BookingResponse, error) {
	booking, _, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, actor utils.Actor, id uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, apperror.Forbidden("you can only cancel your own bookings")
	}

	if !booking.StartsAt(vietnamTime).After(s.now()) {
		return nil, apperror.BadRequest("booking has already started")
	}

	return s.transition(ctx, booking, []entity.BookingStatus{
		entity.BookingStatusPending,
		entity.BookingStatusConfirmed,
	}, entity.BookingStatusCancelled)
}

func (s *bookingService) QRCode(ctx context.Context, actor utils.Actor, id uuid.UUID) ([]byte, error) {
	booking, _, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	png, err := document.BookingQRCode(booking.Code, 320)
	if err != nil {
		s.log.Error("Failed to render QR code", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, apperror.Internal(err, "failed to render QR code")
	}
	return png, nil
}

// Receipt renders the PDF receipt and returns it with a download file name
func (s *bookingService) Receipt(ctx context.Context, actor utils.Actor, id uuid.UUID) ([]byte, string, error) {
	booking, facility, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}

	customer, err := s.repo.User.FindByID(ctx, booking.UserID)
	if err != nil {
		s.log.Error("Failed to find customer", zap.Error(err), zap.String("user_id", booking.UserID.String()))
		return nil, "", apperror.Internal(err, "failed to find customer")
	}
	court, err := s.repo.Court.FindByID(ctx, booking.CourtID)
	if err != nil {
		s.log.Error("Failed to find court", zap.Error(err), zap.String("court_id", booking.CourtID.String()))
		return nil, "", apperror.Internal(err, "failed to find court")
	}

	rc := document.Receipt{
		Code:            booking.Code,
		FacilityName:    facility.Name,
		FacilityAddress: facility.Address,
		Date:            booking.BookingDate,
		StartTime:       utils.ClockString(booking.StartTime),
		EndTime:         utils.ClockString(booking.EndTime),
		UnitPrice:       booking.UnitPrice,
		DiscountRate:    booking.DiscountRate,
		Total:           booking.TotalPrice,
		Status:          string(booking.Status),
		PaymentStatus:   string(booking.PaymentStatus),
		PaidAt:          booking.PaidAt,
		IssuedAt:        s.now().In(vietnamTime),
	}
	if customer != nil {
		rc.CustomerName = customer.FullName
		rc.CustomerEmail = customer.Email
	}
	if court != nil {
		rc.CourtName = court.Name
	}
	if booking.PaymentMethod != nil {
		rc.PaymentMethod = string(*booking.PaymentMethod)
	}

	pdf, err := document.RenderReceipt(rc)
	if err != nil {
		s.log.Error("Failed to render receipt", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, "", apperror.Internal(err, "failed to render receipt")
	}
	return pdf, "receipt-" + booking.Code + ".pdf", nil
}

func (s *bookingService) GetAvailability(ctx context.Context, facilityID uuid.UUID, rawDate string) (*response.AvailabilityResponse, error) {
	date, err := parseDate(rawDate)
	if err != nil {
		return nil, err
	}

	facility, err := s.repo.Facility.FindByID(ctx, facilityID)
	if err != nil {
		s.log.Error("Failed to find facility", zap.Error(err), zap.String("facility_id", facilityID.String()))
		return nil, apperror.Internal(err, "failed to find facility")
	}
	if facility == nil || facility.StatusID != entity.StatusActive {
		return nil, apperror.NotFound("facility not found")
	}

	courts, err := s.repo.Court.FindByFacilityID(ctx, facilityID, true)
	if err != nil {
		s.log.Error("Failed to list courts", zap.Error(err))
		return nil, apperror.Internal(err, "failed to list courts")
	}
	slots, err := s.repo.TimeSlot.FindByFacilityID(ctx, facilityID)
	if err != nil {
		s.log.Error("Failed to list time slots", zap.Error(err))
		return nil, apperror.Internal(err, "failed to list time slots")
	}
	bookings, err := s.repo.Booking.FindActiveByFacilityDate(ctx, facilityID, date)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, apperror.Internal(err, "failed to list bookings")
	}

	type held struct{ court, slot uuid.UUID }
	booked := make(map[held]bool, len(bookings))
	for _, b := range bookings {
		booked[held{b.CourtID, b.TimeSlotID}] = true
	}

	result := &response.AvailabilityResponse{
		FacilityID: facilityID.String(),
		Date:       date.Format(dateLayout),
		Courts:     make([]response.CourtAvailability, 0, len(courts)),
	}
	for _, c := range courts {
		ca := response.CourtAvailability{
			CourtID:      c.ID.String(),
			CourtName:    c.Name,
			PricePerHour: c.PricePerHour,
			Slots:        []response.SlotAvailability{},
		}
		for _, t := range slots {
			if t.StatusID != entity.StatusActive || !t.AppliesTo(c.ID) {
				continue
			}
			ca.Slots = append(ca.Slots, response.SlotAvailability{
				TimeSlotID:   t.ID.String(),
				StartTime:    utils.ClockString(t.StartTime),
				EndTime:      utils.ClockString(t.EndTime),
				DiscountRate: t.DiscountRate,
				Price:        entity.CalculatePrice(c.PricePerHour, t.Minutes(), t.DiscountRate),
				Booked:       booked[held{c.ID, t.ID}],
			})
		}
		result.Courts = append(result.Courts, ca)
	}

	return result, nil
}

func (s *bookingService) ListFacilityBookings(ctx context.Context, actor utils.Actor, facilityID uuid.UUID, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if _, err := loadManagedFacility(ctx, s.repo, actor, facilityID, s.log); err != nil {
		return nil, err
	}

	filter, err := s.filterOf(req)
	if err != nil {
		return nil, err
	}
	filter.FacilityID = &facilityID
	return s.list(ctx, filter, req)
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	facility, err := loadManagedFacility(ctx, s.repo, actor, booking.FacilityID, s.log)
	if err != nil {
		return nil, err
	}

	switch req.Action {
	case "confirm":
		return s.transition(ctx, booking, []entity.BookingStatus{entity.BookingStatusPending}, entity.BookingStatusConfirmed)
	case "complete":
		return s.transition(ctx, booking, []entity.BookingStatus{entity.BookingStatusConfirmed}, entity.BookingStatusCompleted)
	case "cancel":
		return s.transition(ctx, booking, []entity.BookingStatus{
			entity.BookingStatusPending,
			entity.BookingStatusConfirmed,
		}, entity.BookingStatusCancelled)
	case "mark_paid":
		paidAt := s.now()
		ok, err := s.repo.Booking.MarkPaid(ctx, booking.ID, entity.PaymentMethodCash, paidAt)
		if err != nil {
			s.log.Error("Failed to record cash payment", zap.Error(err), zap.String("booking_id", id.String()))
			return nil, apperror.Internal(err, "failed to record payment")
		}
		if !ok {
			return nil, apperror.BadRequest("booking cannot be marked paid in its current state")
		}

		old := booking.Status
		cash := entity.PaymentMethodCash
		booking.Status = entity.BookingStatusConfirmed
		booking.PaymentStatus = entity.BookingPaid
		booking.PaymentMethod = &cash
		booking.PaidAt = &paidAt
		s.publish(booking, facility.OwnerID, old)

		resp := response.BookingToResponse(booking)
		return &resp, nil
	}

	return nil, apperror.BadRequest("unknown action %q", req.Action)
}

func (s *bookingService) CheckIn(ctx context.Context, actor utils.Actor, req *request.CheckInRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByCode(ctx, strings.TrimSpace(req.Code))
	if err != nil {
		s.log.Error("Failed to find booking by code", zap.Error(err))
		return nil, apperror.Internal(err, "failed to find booking")
	}
	if booking == nil {
		return nil, apperror.NotFound("booking not found")
	}
	if _, err := loadManagedFacility(ctx, s.repo, actor, booking.FacilityID, s.log); err != nil {
		return nil, err
	}

	now := s.now()
	if !booking.BookingDate.Equal(today(now)) {
		return nil, apperror.BadRequest("booking is for %s, not today", booking.BookingDate.Format(dateLayout))
	}

	ok, err := s.repo.Booking.MarkCheckedIn(ctx, booking.ID, now)
	if err != nil {
		s.log.Error("Failed to check in", zap.Error(err), zap.String("booking_id", booking.ID.String()))
		return nil, apperror.Internal(err, "failed to check in")
	}
	if !ok {
		if booking.CheckedInAt != nil {
			return nil, apperror.Conflict("booking already checked in")
		}
		return nil, apperror.BadRequest("only confirmed bookings can be checked in")
	}
	booking.CheckedInAt = &now

	s.log.Info("Booking checked in", zap.String("booking_id", booking.ID.String()), zap.String("code", booking.Code))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListAllBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	filter, err := s.filterOf(req)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, filter, req)
}

// ExpirePending releases slots held by bookings that were never paid.
// A booking whose customer is still inside a gateway payment keeps its slot until that payment lapses.
func (s *bookingService) ExpirePending(ctx context.Context) (int, error) {
	now := s.now()
	cutoff := now.Add(-s.pendingLimit)

	expired, err := s.repo.Booking.ExpirePending(ctx, cutoff, now.Add(-s.payWindow))
	if err != nil {
		return 0, err
	}

	owners := make(map[uuid.UUID]uuid.UUID)
	for _, b := range expired {
		ownerID, ok := owners[b.FacilityID]
		if !ok {
			if f, err := s.repo.Facility.FindByID(ctx, b.FacilityID); err == nil && f != nil {
				ownerID = f.OwnerID
			}
			owners[b.FacilityID] = ownerID
		}
		s.publish(b, ownerID, entity.BookingStatusPending)
	}

	if len(expired) > 0 {
		s.log.Info("Expired pending bookings", zap.Int("count", len(expired)), zap.Time("cutoff", cutoff))
	}
	return len(expired), nil
}

// ==================== HELPERS ====================

func (s *bookingService) transition(ctx context.Context, booking *entity.Booking, from []entity.BookingStatus, to entity.BookingStatus) (*response.BookingResponse, error) {
	ok, err := s.repo.Booking.UpdateStatus(ctx, booking.ID, from, to)
	if err != nil {
		s.log.Error("Failed to update booking status", zap.Error(err), zap.String("booking_id", booking.ID.String()))
		return nil, apperror.Internal(err, "failed to update booking")
	}
	if !ok {
		return nil, apperror.BadRequest("booking cannot move from %s to %s", booking.Status, to)
	}

	old := booking.Status
	booking.Status = to
	booking.UpdatedAt = s.now()

	ownerID := uuid.Nil
	if f, err := s.repo.Facility.FindByID(ctx, booking.FacilityID); err == nil && f != nil {
		ownerID = f.OwnerID
	}
	s.publish(booking, ownerID, old)

	s.log.Info("Booking status changed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(old)),
		zap.String("to", string(to)))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) publish(b *entity.Booking, ownerID uuid.UUID, old entity.BookingStatus) {
	publishBookingStatus(s.events, b, ownerID, old, s.now(), s.log)
}

func (s *bookingService) findBooking(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, apperror.Internal(err, "failed to find booking")
	}
	if booking == nil {
		return nil, apperror.NotFound("booking not found")
	}
	return booking, nil
}

// findVisible loads a booking readable by its customer, the facility owner or an admin
func (s *bookingService) findVisible(ctx context.Context, actor utils.Actor, id uuid.UUID) (*entity.Booking, *entity.Facility, error) {
	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	facility, err := s.repo.Facility.FindByID(ctx, booking.FacilityID)
	if err != nil {
		s.log.Error("Failed to find facility", zap.Error(err), zap.String("facility_id", booking.FacilityID.String()))
		return nil, nil, apperror.Internal(err, "failed to find facility")
	}
	if facility == nil {
		facility = &entity.Facility{}
	}

	if booking.UserID != actor.UserID && facility.OwnerID != actor.UserID && !actor.IsAdmin() {
		return nil, nil, apperror.Forbidden("you cannot view this booking")
	}
	return booking, facility, nil
}

func (s *bookingService) filterOf(req *request.BookingListRequest) (entity.BookingFilter, error) {
	var filter entity.BookingFilter
	if err := validate(req); err != nil {
		return filter, err
	}

	filter.Status = req.Status
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}
	return filter, nil
}

func (s *bookingService) list(ctx context.Context, filter entity.BookingFilter, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit, offset := pageOf(req.PaginatedRequest)

	bookings, err := s.repo.Booking.FindAll(ctx, filter, limit, offset)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, apperror.Internal(err, "failed to list bookings")
	}
	total, err := s.repo.Booking.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, apperror.Internal(err, "failed to count bookings")
	}

	return paginate(bookings, func(b *entity.Booking) response.BookingResponse {
		return response.BookingToResponse(b)
	}, req.PaginatedRequest, total), nil
}

// publishBookingStatus is shared by booking and payment flows; a failed publish never fails the request
func publishBookingStatus(pub events.Publisher, b *entity.Booking, ownerID uuid.UUID, old entity.BookingStatus, at time.Time, log *zap.Logger) {
	evt := events.BookingStatusChanged{
		BookingID:     b.ID,
		Code:          b.Code,
		UserID:        b.UserID,
		OwnerID:       ownerID,
		FacilityID:    b.FacilityID,
		OldStatus:     string(old),
		NewStatus:     string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		OccurredAt:    at,
	}
	if err := pub.Publish(events.TopicBookingStatusChanged, evt); err != nil {
		log.Warn("Failed to publish booking event", zap.Error(err), zap.String("booking_id", b.ID.String()))
	}
}
