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

type OTPRepository interface {
	Create(ctx context.Context, otp *entity.OTP) error
	FindValidOTP(ctx context.Context, email, code string, otpType entity.OTPType) (*entity.OTP, error)
	// MarkAsUsed reports false when the code was consumed concurrently
	MarkAsUsed(ctx context.Context, otpID uuid.UUID) (bool, error)
	InvalidateAll(ctx context.Context, email string, otpType entity.OTPType) error
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Create(ctx context.Context, otp *entity.OTP) error {
	query := `
		INSERT INTO otps (id, user_id, email, code, type,
		                  expires_at, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		otp.ID,
		otp.UserID,
		otp.Email,
		otp.Code,
		otp.Type,
		otp.ExpiresAt,
		otp.IsUsed,
		otp.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create OTP",
			zap.Error(err),
			zap.String("email", otp.Email),
			zap.String("type", string(otp.Type)),
		)
		return fmt.Errorf("failed to create OTP: %w", err)
	}

	return nil
}

func (r *otpRepository) FindValidOTP(ctx context.Context, email, code string, otpType entity.OTPType) (*entity.OTP, error) {
	query := `
		SELECT id, user_id, email, code, type, expires_at, is_used, created_at
		FROM otps
		WHERE LOWER(email) = LOWER($1)
		  AND code = $2
		  AND type = $3
		  AND is_used = FALSE
		  AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp entity.OTP
	err := r.db.QueryRow(ctx, query, email, code, otpType).Scan(
		&otp.ID,
		&otp.UserID,
		&otp.Email,
		&otp.Code,
		&otp.Type,
		&otp.ExpiresAt,
		&otp.IsUsed,
		&otp.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid OTP",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("failed to find OTP: %w", err)
	}

	return &otp, nil
}

func (r *otpRepository) MarkAsUsed(ctx context.Context, otpID uuid.UUID) (bool, error) {
	query := `UPDATE otps SET is_used = TRUE WHERE id = $1 AND is_used = FALSE`

	result, err := r.db.Exec(ctx, query, otpID)
	if err != nil {
		r.log.Error("Failed to mark OTP as used",
			zap.Error(err),
			zap.String("otp_id", otpID.String()),
		)
		return false, fmt.Errorf("failed to mark OTP as used: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

// InvalidateAll burns outstanding codes before a new one is issued
func (r *otpRepository) InvalidateAll(ctx context.Context, email string, otpType entity.OTPType) error {
	query := `UPDATE otps SET is_used = TRUE WHERE LOWER(email) = LOWER($1) AND type = $2 AND is_used = FALSE`

	if _, err := r.db.Exec(ctx, query, email, otpType); err != nil {
		r.log.Error("Failed to invalidate OTPs",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("failed to invalidate OTPs: %w", err)
	}

	return nil
}
