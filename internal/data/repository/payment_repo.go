package repository

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByTxnRef(ctx context.Context, txnRef string) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error)
	// MarkCompleted and MarkFailed only move payments that are still pending
	MarkCompleted(ctx context.Context, txnRef, providerTxnNo, responseCode string, paidAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, txnRef, responseCode string) (bool, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, booking_id, provider, txn_ref, amount, status, provider_txn_no, response_code,
		       paid_at, created_at, updated_at`

func scanPayment(row rowScanner) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.Provider,
		&p.TxnRef,
		&p.Amount,
		&p.Status,
		&p.ProviderTxnNo,
		&p.ResponseCode,
		&p.PaidAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, provider, txn_ref, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.BookingID,
		p.Provider,
		p.TxnRef,
		p.Amount,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", p.BookingID.String()),
			zap.String("txn_ref", p.TxnRef),
		)
		return fmt.Errorf("create payment %s: %w", p.TxnRef, err)
	}

	return nil
}

func (r *paymentRepository) FindByTxnRef(ctx context.Context, txnRef string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE txn_ref = $1`

	p, err := scanPayment(r.db.QueryRow(ctx, query, txnRef))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by txn ref",
			zap.Error(err),
			zap.String("txn_ref", txnRef),
		)
		return nil, fmt.Errorf("find payment %s: %w", txnRef, err)
	}

	return p, nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find payments by booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payments of booking %s: %w", bookingID, err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (r *paymentRepository) MarkCompleted(ctx context.Context, txnRef, providerTxnNo, responseCode string, paidAt time.Time) (bool, error) {
	query := `
		UPDATE payments
		SET status = 'completed', provider_txn_no = $2, response_code = $3, paid_at = $4, updated_at = NOW()
		WHERE txn_ref = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, txnRef, providerTxnNo, responseCode, paidAt)
	if err != nil {
		r.log.Error("Failed to complete payment",
			zap.Error(err),
			zap.String("txn_ref", txnRef),
		)
		return false, fmt.Errorf("complete payment %s: %w", txnRef, err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *paymentRepository) MarkFailed(ctx context.Context, txnRef, responseCode string) (bool, error) {
	query := `
		UPDATE payments SET status = 'failed', response_code = $2, updated_at = NOW()
		WHERE txn_ref = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, txnRef, responseCode)
	if err != nil {
		r.log.Error("Failed to mark payment failed",
			zap.Error(err),
			zap.String("txn_ref", txnRef),
		)
		return false, fmt.Errorf("fail payment %s: %w", txnRef, err)
	}

	return result.RowsAffected() == 1, nil
}
