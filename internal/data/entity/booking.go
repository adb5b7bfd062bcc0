package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusExpired   BookingStatus = "expired"
)

type BookingPaymentStatus string

const (
	BookingUnpaid   BookingPaymentStatus = "unpaid"
	BookingPaid     BookingPaymentStatus = "paid"
	BookingRefunded BookingPaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodVNPay   PaymentMethod = "vnpay"
	PaymentMethodZaloPay PaymentMethod = "zalopay"
	PaymentMethodCash    PaymentMethod = "cash"
)

type Booking struct {
	BaseNoDelete
	Code          string               `db:"code"`
	UserID        uuid.UUID            `db:"user_id"`
	FacilityID    uuid.UUID            `db:"facility_id"`
	CourtID       uuid.UUID            `db:"court_id"`
	TimeSlotID    uuid.UUID            `db:"time_slot_id"`
	BookingDate   time.Time            `db:"booking_date"`
	StartTime     int                  `db:"start_time"`
	EndTime       int                  `db:"end_time"`
	UnitPrice     int64                `db:"unit_price"`
	DiscountRate  int                  `db:"discount_rate"`
	TotalPrice    int64                `db:"total_price"`
	Status        BookingStatus        `db:"status"`
	PaymentStatus BookingPaymentStatus `db:"payment_status"`
	PaymentMethod *PaymentMethod       `db:"payment_method"`
	Note          *string              `db:"note"`
	PaidAt        *time.Time           `db:"paid_at"`
	CheckedInAt   *time.Time           `db:"checked_in_at"`
}

// StartsAt is the wall-clock start of the booking in loc
func (b *Booking) StartsAt(loc *time.Location) time.Time {
	y, m, d := b.BookingDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(b.StartTime) * time.Minute)
}

// IsActive reports whether the booking still holds its slot
func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled && b.Status != BookingStatusExpired
}

// CalculatePrice returns pricePerHour x hours x (1 - discount/100), rounded to the nearest dong
func CalculatePrice(pricePerHour int64, minutes, discountRate int) int64 {
	num := pricePerHour * int64(minutes) * int64(100-discountRate)
	const den = 60 * 100
	return (num + den/2) / den
}

type BookingFilter struct {
	UserID     *uuid.UUID
	FacilityID *uuid.UUID
	Date       *time.Time
	Status     string
}
