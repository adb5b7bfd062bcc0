package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create returns an error satisfying database.IsUniqueViolation when the slot is already held
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByCode(ctx context.Context, code string) (*entity.Booking, error)
	FindAll(ctx context.Context, filter entity.BookingFilter, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context, filter entity.BookingFilter) (int64, error)

	// Business queries
	FindActiveByFacilityDate(ctx context.Context, facilityID uuid.UUID, date time.Time) ([]*entity.Booking, error)
	ExistsActive(ctx context.Context, courtID, timeSlotID uuid.UUID, date time.Time) (bool, error)
	FindEligibleForRating(ctx context.Context, userID, facilityID uuid.UUID) (*uuid.UUID, error)

	// Conditional transitions, false means the booking was not in an allowed state
	UpdateStatus(ctx context.Context, id uuid.UUID, from []entity.BookingStatus, to entity.BookingStatus) (bool, error)
	// MarkPaid also revives an expired booking; that fails with a unique violation once the slot is held again
	MarkPaid(ctx context.Context, id uuid.UUID, method entity.PaymentMethod, paidAt time.Time) (bool, error)
	RecordLatePayment(ctx context.Context, id uuid.UUID, method entity.PaymentMethod, paidAt time.Time) (bool, error)
	MarkCheckedIn(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	ExpirePending(ctx context.Context, createdBefore, paymentOpenSince time.Time) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, code, user_id, facility_id, court_id, time_slot_id, booking_date,
		       start_time, end_time, unit_price, discount_rate, total_price, status, payment_status,
		       payment_method, note, paid_at, checked_in_at, created_at, updated_at`

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.Code,
		&b.UserID,
		&b.FacilityID,
		&b.CourtID,
		&b.TimeSlotID,
		&b.BookingDate,
		&b.StartTime,
		&b.EndTime,
		&b.UnitPrice,
		&b.DiscountRate,
		&b.TotalPrice,
		&b.Status,
		&b.PaymentStatus,
		&b.PaymentMethod,
		&b.Note,
		&b.PaidAt,
		&b.CheckedInAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) collect(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, code, user_id, facility_id, court_id, time_slot_id, booking_date,
		                      start_time, end_time, unit_price, discount_rate, total_price, status,
		                      payment_status, payment_method, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Exec(ctx, query,
		b.ID,
		b.Code,
		b.UserID,
		b.FacilityID,
		b.CourtID,
		b.TimeSlotID,
		b.BookingDate,
		b.StartTime,
		b.EndTime,
		b.UnitPrice,
		b.DiscountRate,
		b.TotalPrice,
		b.Status,
		b.PaymentStatus,
		b.PaymentMethod,
		b.Note,
		b.CreatedAt,
		b.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("code", b.Code),
			zap.String("user_id", b.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", b.Code, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	return b, nil
}

func (r *bookingRepository) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE code = $1`

	b, err := scanBooking(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find booking by code %s: %w", code, err)
	}

	return b, nil
}

func bookingFilterClause(filter entity.BookingFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE 1=1")

	args := []any{}
	argCount := 1

	if filter.UserID != nil {
		sb.WriteString(fmt.Sprintf(" AND user_id = $%d", argCount))
		args = append(args, *filter.UserID)
		argCount++
	}
	if filter.FacilityID != nil {
		sb.WriteString(fmt.Sprintf(" AND facility_id = $%d", argCount))
		args = append(args, *filter.FacilityID)
		argCount++
	}
	if filter.Date != nil {
		sb.WriteString(fmt.Sprintf(" AND booking_date = $%d", argCount))
		args = append(args, *filter.Date)
		argCount++
	}
	if filter.Status != "" {
		sb.WriteString(fmt.Sprintf(" AND status = $%d", argCount))
		args = append(args, filter.Status)
	}

	return sb.String(), args
}

func (r *bookingRepository) FindAll(ctx context.Context, filter entity.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	where, args := bookingFilterClause(filter)
	query := fmt.Sprintf(`SELECT %s FROM bookings%s ORDER BY booking_date DESC, start_time DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings: %w", err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) CountAll(ctx context.Context, filter entity.BookingFilter) (int64, error) {
	where, args := bookingFilterClause(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) FindActiveByFacilityDate(ctx context.Context, facilityID uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE facility_id = $1 AND booking_date = $2 AND status NOT IN ('cancelled', 'expired')`

	rows, err := r.db.Query(ctx, query, facilityID, date)
	if err != nil {
		r.log.Error("Failed to find bookings for availability",
			zap.Error(err),
			zap.String("facility_id", facilityID.String()),
		)
		return nil, fmt.Errorf("find bookings of facility %s: %w", facilityID, err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) ExistsActive(ctx context.Context, courtID, timeSlotID uuid.UUID, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE court_id = $1 AND time_slot_id = $2 AND booking_date = $3
			  AND status NOT IN ('cancelled', 'expired')
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, courtID, timeSlotID, date).Scan(&exists); err != nil {
		r.log.Error("Failed to check booking conflict",
			zap.Error(err),
			zap.String("court_id", courtID.String()),
		)
		return false, fmt.Errorf("check booking conflict: %w", err)
	}

	return exists, nil
}

// FindEligibleForRating returns a paid or completed booking of userID at facilityID
func (r *bookingRepository) FindEligibleForRating(ctx context.Context, userID, facilityID uuid.UUID) (*uuid.UUID, error) {
	query := `
		SELECT id FROM bookings
		WHERE user_id = $1 AND facility_id = $2
		  AND (payment_status = 'paid' OR status = 'completed')
		ORDER BY booking_date DESC
		LIMIT 1
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, userID, facilityID).Scan(&id)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rateable booking",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find rateable booking: %w", err)
	}

	return &id, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from []entity.BookingStatus, to entity.BookingStatus) (bool, error) {
	allowed := make([]string, len(from))
	for i, s := range from {
		allowed[i] = string(s)
	}

	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1 AND status = ANY($3)`

	result, err := r.db.Exec(ctx, query, id, to, allowed)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(to)),
		)
		return false, fmt.Errorf("update booking status %s: %w", id, err)
	}

	return result.RowsAffected() == 1, nil
}

// MarkPaid flips an unpaid pending, confirmed or expired booking to paid and confirmed, at most once
func (r *bookingRepository) MarkPaid(ctx context.Context, id uuid.UUID, method entity.PaymentMethod, paidAt time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = 'paid', status = 'confirmed', payment_method = $2, paid_at = $3, updated_at = NOW()
		WHERE id = $1 AND payment_status = 'unpaid' AND status IN ('pending', 'confirmed', 'expired')
	`

	result, err := r.db.Exec(ctx, query, id, method, paidAt)
	if err != nil {
		r.log.Error("Failed to mark booking paid",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("mark booking paid %s: %w", id, err)
	}

	return result.RowsAffected() == 1, nil
}

// RecordLatePayment stores a payment on an expired booking without taking the slot back
func (r *bookingRepository) RecordLatePayment(ctx context.Context, id uuid.UUID, method entity.PaymentMethod, paidAt time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = 'paid', payment_method = $2, paid_at = $3, updated_at = NOW()
		WHERE id = $1 AND payment_status = 'unpaid' AND status = 'expired'
	`

	result, err := r.db.Exec(ctx, query, id, method, paidAt)
	if err != nil {
		r.log.Error("Failed to record late payment",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("record late payment %s: %w", id, err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *bookingRepository) MarkCheckedIn(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	query := `
		UPDATE bookings SET checked_in_at = $2, updated_at = NOW()
		WHERE id = $1 AND checked_in_at IS NULL AND status = 'confirmed'
	`

	result, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		r.log.Error("Failed to check in booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("check in booking %s: %w", id, err)
	}

	return result.RowsAffected() == 1, nil
}

// ExpirePending moves stale unpaid pending bookings to expired and returns them.
// Bookings with a gateway payment opened after paymentOpenSince are kept until that payment can no longer complete.
func (r *bookingRepository) ExpirePending(ctx context.Context, createdBefore, paymentOpenSince time.Time) ([]*entity.Booking, error) {
	query := `
		UPDATE bookings b SET status = 'expired', updated_at = NOW()
		WHERE b.status = 'pending' AND b.payment_status = 'unpaid' AND b.created_at < $1
		  AND NOT EXISTS (
			SELECT 1 FROM payments p
			WHERE p.booking_id = b.id AND p.status = 'pending' AND p.created_at > $2
		  )
		RETURNING ` + bookingColumns

	rows, err := r.db.Query(ctx, query, createdBefore, paymentOpenSince)
	if err != nil {
		r.log.Error("Failed to expire pending bookings", zap.Error(err))
		return nil, fmt.Errorf("expire pending bookings: %w", err)
	}

	return r.collect(rows)
}
