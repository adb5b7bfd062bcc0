package repository

import (
	"context"
	"fmt"

	"court-booking/internal/data/entity"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MerchantPaymentRepository interface {
	// Upsert keeps one row per (owner, provider)
	Upsert(ctx context.Context, merchant *entity.MerchantPayment) error
	FindByOwner(ctx context.Context, ownerID uuid.UUID, provider entity.PaymentMethod) (*entity.MerchantPayment, error)
	FindByMerchantCode(ctx context.Context, provider entity.PaymentMethod, merchantCode string) (*entity.MerchantPayment, error)
	Delete(ctx context.Context, ownerID uuid.UUID, provider entity.PaymentMethod) (bool, error)
}

type merchantPaymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMerchantPaymentRepository(db database.PgxIface, log *zap.Logger) MerchantPaymentRepository {
	return &merchantPaymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "merchant_payment")),
	}
}

const merchantPaymentColumns = `id, owner_id, provider, merchant_code, secret_key, status_id, created_at, updated_at`

func scanMerchantPayment(row rowScanner) (*entity.MerchantPayment, error) {
	var m entity.MerchantPayment
	err := row.Scan(&m.ID, &m.OwnerID, &m.Provider, &m.MerchantCode, &m.SecretKey, &m.StatusID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *merchantPaymentRepository) Upsert(ctx context.Context, m *entity.MerchantPayment) error {
	query := `
		INSERT INTO merchant_payments (id, owner_id, provider, merchant_code, secret_key, status_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (owner_id, provider) DO UPDATE
		SET merchant_code = EXCLUDED.merchant_code,
		    secret_key = EXCLUDED.secret_key,
		    status_id = EXCLUDED.status_id,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		m.ID,
		m.OwnerID,
		m.Provider,
		m.MerchantCode,
		m.SecretKey,
		m.StatusID,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		r.log.Error("Failed to upsert merchant payment",
			zap.Error(err),
			zap.String("owner_id", m.OwnerID.String()),
			zap.String("provider", string(m.Provider)),
		)
		return fmt.Errorf("upsert merchant payment: %w", err)
	}

	return nil
}

func (r *merchantPaymentRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, provider entity.PaymentMethod) (*entity.MerchantPayment, error) {
	query := `SELECT ` + merchantPaymentColumns + ` FROM merchant_payments WHERE owner_id = $1 AND provider = $2`

	m, err := scanMerchantPayment(r.db.QueryRow(ctx, query, ownerID, provider))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find merchant payment",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find merchant payment of %s: %w", ownerID, err)
	}

	return m, nil
}

func (r *merchantPaymentRepository) FindByMerchantCode(ctx context.Context, provider entity.PaymentMethod, merchantCode string) (*entity.MerchantPayment, error) {
	query := `SELECT ` + merchantPaymentColumns + `
		FROM merchant_payments
		WHERE provider = $1 AND merchant_code = $2 AND status_id = 1
		ORDER BY updated_at DESC
		LIMIT 1`

	m, err := scanMerchantPayment(r.db.QueryRow(ctx, query, provider, merchantCode))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find merchant by code",
			zap.Error(err),
			zap.String("merchant_code", merchantCode),
		)
		return nil, fmt.Errorf("find merchant %s: %w", merchantCode, err)
	}

	return m, nil
}

func (r *merchantPaymentRepository) Delete(ctx context.Context, ownerID uuid.UUID, provider entity.PaymentMethod) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM merchant_payments WHERE owner_id = $1 AND provider = $2`, ownerID, provider)
	if err != nil {
		r.log.Error("Failed to delete merchant payment",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return false, fmt.Errorf("delete merchant payment: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
