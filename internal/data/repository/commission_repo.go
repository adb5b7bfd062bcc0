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

type CommissionRepository interface {
	// GenerateForPeriod creates one pending row per facility with paid revenue in [from, to).
	// Existing rows for the period are left alone, the return value counts new rows only.
	GenerateForPeriod(ctx context.Context, month, year int, rate float64, from, to time.Time) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CommissionPayment, error)
	// FindByAppTransID resolves any order ever issued for the commission, not only the latest
	FindByAppTransID(ctx context.Context, appTransID string) (*entity.CommissionPayment, error)
	FindAll(ctx context.Context, filter entity.CommissionFilter, limit, offset int) ([]*entity.CommissionPayment, error)
	CountAll(ctx context.Context, filter entity.CommissionFilter) (int64, error)
	AddPaymentAttempt(ctx context.Context, id uuid.UUID, appTransID string) error
	MarkPaid(ctx context.Context, id uuid.UUID, zpTransID string, paidAt time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.CommissionStatus) (bool, error)
}

type commissionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommissionRepository(db database.PgxIface, log *zap.Logger) CommissionRepository {
	return &commissionRepository{
		db:  db,
		log: log.With(zap.String("repository", "commission")),
	}
}

const commissionColumns = `c.id, c.owner_id, c.facility_id, c.month, c.year, c.revenue, c.rate, c.amount, c.status,
		       c.app_trans_id, c.zp_trans_id, c.paid_at, c.created_at, c.updated_at, COALESCE(f.name, '')`

func scanCommission(row rowScanner) (*entity.CommissionPayment, error) {
	var c entity.CommissionPayment
	err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.FacilityID,
		&c.Month,
		&c.Year,
		&c.Revenue,
		&c.Rate,
		&c.Amount,
		&c.Status,
		&c.AppTransID,
		&c.ZpTransID,
		&c.PaidAt,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.FacilityName,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commissionRepository) GenerateForPeriod(ctx context.Context, month, year int, rate float64, from, to time.Time) (int64, error) {
	query := `
		INSERT INTO commission_payment_histories (id, owner_id, facility_id, month, year, revenue, rate, amount, status)
		SELECT gen_random_uuid(), f.owner_id, f.id, $1, $2, SUM(b.total_price), $3,
		       ROUND(SUM(b.total_price) * $3)::BIGINT, 'pending'
		FROM bookings b
		JOIN facilities f ON f.id = b.facility_id
		WHERE b.payment_status = 'paid'
		  AND b.status IN ('confirmed', 'completed')
		  AND b.booking_date >= $4 AND b.booking_date < $5
		GROUP BY f.id, f.owner_id
		HAVING SUM(b.total_price) > 0
		ON CONFLICT (facility_id, month, year) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query, month, year, rate, from, to)
	if err != nil {
		r.log.Error("Failed to generate commissions",
			zap.Error(err),
			zap.Int("month", month),
			zap.Int("year", year),
		)
		return 0, fmt.Errorf("generate commissions %02d/%d: %w", month, year, err)
	}

	return result.RowsAffected(), nil
}

func (r *commissionRepository) findOne(ctx context.Context, where string, arg any) (*entity.CommissionPayment, error) {
	query := `SELECT ` + commissionColumns + `
		FROM commission_payment_histories c
		LEFT JOIN facilities f ON f.id = c.facility_id
		WHERE ` + where

	c, err := scanCommission(r.db.QueryRow(ctx, query, arg))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find commission", zap.Error(err), zap.Any("key", arg))
		return nil, fmt.Errorf("find commission %v: %w", arg, err)
	}

	return c, nil
}

func (r *commissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CommissionPayment, error) {
	return r.findOne(ctx, "c.id = $1", id)
}

func (r *commissionRepository) FindByAppTransID(ctx context.Context, appTransID string) (*entity.CommissionPayment, error) {
	return r.findOne(ctx, "c.id = (SELECT a.commission_id FROM commission_payment_attempts a WHERE a.app_trans_id = $1)", appTransID)
}

func commissionFilterClause(filter entity.CommissionFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE 1=1")

	args := []any{}
	argCount := 1

	if filter.OwnerID != nil {
		sb.WriteString(fmt.Sprintf(" AND c.owner_id = $%d", argCount))
		args = append(args, *filter.OwnerID)
		argCount++
	}
	if filter.Status != "" {
		sb.WriteString(fmt.Sprintf(" AND c.status = $%d", argCount))
		args = append(args, filter.Status)
		argCount++
	}
	if filter.Month > 0 {
		sb.WriteString(fmt.Sprintf(" AND c.month = $%d", argCount))
		args = append(args, filter.Month)
		argCount++
	}
	if filter.Year > 0 {
		sb.WriteString(fmt.Sprintf(" AND c.year = $%d", argCount))
		args = append(args, filter.Year)
	}

	return sb.String(), args
}

func (r *commissionRepository) FindAll(ctx context.Context, filter entity.CommissionFilter, limit, offset int) ([]*entity.CommissionPayment, error) {
	where, args := commissionFilterClause(filter)
	query := fmt.Sprintf(`SELECT %s
		FROM commission_payment_histories c
		LEFT JOIN facilities f ON f.id = c.facility_id%s
		ORDER BY c.year DESC, c.month DESC, f.name
		LIMIT $%d OFFSET $%d`, commissionColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find commissions", zap.Error(err))
		return nil, fmt.Errorf("find commissions: %w", err)
	}
	defer rows.Close()

	var list []*entity.CommissionPayment
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			r.log.Error("Failed to scan commission row", zap.Error(err))
			return nil, fmt.Errorf("scan commission row: %w", err)
		}
		list = append(list, c)
	}

	return list, rows.Err()
}

func (r *commissionRepository) CountAll(ctx context.Context, filter entity.CommissionFilter) (int64, error) {
	where, args := commissionFilterClause(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM commission_payment_histories c`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count commissions", zap.Error(err))
		return 0, fmt.Errorf("count commissions: %w", err)
	}

	return count, nil
}

// AddPaymentAttempt records a new ZaloPay order for an unpaid commission and makes it the latest one
func (r *commissionRepository) AddPaymentAttempt(ctx context.Context, id uuid.UUID, appTransID string) error {
	query := `
		WITH attempt AS (
			INSERT INTO commission_payment_attempts (app_trans_id, commission_id)
			SELECT $2, id FROM commission_payment_histories WHERE id = $1 AND status <> 'paid'
			RETURNING commission_id
		)
		UPDATE commission_payment_histories c
		SET app_trans_id = $2, updated_at = NOW()
		FROM attempt
		WHERE c.id = attempt.commission_id
	`

	result, err := r.db.Exec(ctx, query, id, appTransID)
	if err != nil {
		r.log.Error("Failed to add commission payment attempt",
			zap.Error(err),
			zap.String("commission_id", id.String()),
		)
		return fmt.Errorf("add payment attempt on %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("commission %s not found or already paid", id)
	}

	return nil
}

// MarkPaid succeeds once; a failed attempt can still be paid later
func (r *commissionRepository) MarkPaid(ctx context.Context, id uuid.UUID, zpTransID string, paidAt time.Time) (bool, error) {
	query := `
		UPDATE commission_payment_histories
		SET status = 'paid', zp_trans_id = $2, paid_at = $3, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'failed')
	`

	result, err := r.db.Exec(ctx, query, id, zpTransID, paidAt)
	if err != nil {
		r.log.Error("Failed to mark commission paid",
			zap.Error(err),
			zap.String("commission_id", id.String()),
		)
		return false, fmt.Errorf("mark commission %s paid: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *commissionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.CommissionStatus) (bool, error) {
	query := `UPDATE commission_payment_histories SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update commission status",
			zap.Error(err),
			zap.String("commission_id", id.String()),
		)
		return false, fmt.Errorf("update commission status %s: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}
