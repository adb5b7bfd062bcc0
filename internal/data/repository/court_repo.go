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

type CourtRepository interface {
	Create(ctx context.Context, court *entity.Court) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Court, error)
	FindByFacilityID(ctx context.Context, facilityID uuid.UUID, activeOnly bool) ([]*entity.Court, error)
	ExistsByName(ctx context.Context, facilityID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, court *entity.Court) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type courtRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCourtRepository(db database.PgxIface, log *zap.Logger) CourtRepository {
	return &courtRepository{
		db:  db,
		log: log.With(zap.String("repository", "court")),
	}
}

const courtColumns = `id, facility_id, name, category, price_per_hour, description, status_id,
		       created_at, updated_at, deleted_at`

func scanCourt(row rowScanner) (*entity.Court, error) {
	var c entity.Court
	err := row.Scan(
		&c.ID,
		&c.FacilityID,
		&c.Name,
		&c.Category,
		&c.PricePerHour,
		&c.Description,
		&c.StatusID,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *courtRepository) Create(ctx context.Context, c *entity.Court) error {
	query := `
		INSERT INTO courts (id, facility_id, name, category, price_per_hour, description, status_id,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		c.ID,
		c.FacilityID,
		c.Name,
		c.Category,
		c.PricePerHour,
		c.Description,
		c.StatusID,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create court",
			zap.Error(err),
			zap.String("facility_id", c.FacilityID.String()),
			zap.String("name", c.Name),
		)
		return fmt.Errorf("create court %s: %w", c.Name, err)
	}

	return nil
}

func (r *courtRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts WHERE id = $1 AND deleted_at IS NULL`

	c, err := scanCourt(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find court by ID",
			zap.Error(err),
			zap.String("court_id", id.String()),
		)
		return nil, fmt.Errorf("find court %s: %w", id, err)
	}

	return c, nil
}

func (r *courtRepository) FindByFacilityID(ctx context.Context, facilityID uuid.UUID, activeOnly bool) ([]*entity.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts WHERE facility_id = $1 AND deleted_at IS NULL`
	args := []any{facilityID}
	if activeOnly {
		query += ` AND status_id = $2`
		args = append(args, entity.StatusActive)
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find courts by facility",
			zap.Error(err),
			zap.String("facility_id", facilityID.String()),
		)
		return nil, fmt.Errorf("find courts of facility %s: %w", facilityID, err)
	}
	defer rows.Close()

	var courts []*entity.Court
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			r.log.Error("Failed to scan court row", zap.Error(err))
			return nil, fmt.Errorf("scan court row: %w", err)
		}
		courts = append(courts, c)
	}

	return courts, rows.Err()
}

// ExistsByName compares case-insensitively within one facility
func (r *courtRepository) ExistsByName(ctx context.Context, facilityID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM courts
			WHERE facility_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3 AND deleted_at IS NULL
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, facilityID, name, excludeID).Scan(&exists); err != nil {
		r.log.Error("Failed to check court name",
			zap.Error(err),
			zap.String("facility_id", facilityID.String()),
		)
		return false, fmt.Errorf("check court name: %w", err)
	}

	return exists, nil
}

func (r *courtRepository) Update(ctx context.Context, c *entity.Court) error {
	query := `
		UPDATE courts
		SET name = $2, category = $3, price_per_hour = $4, description = $5, status_id = $6, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Category, c.PricePerHour, c.Description, c.StatusID)
	if err != nil {
		r.log.Error("Failed to update court",
			zap.Error(err),
			zap.String("court_id", c.ID.String()),
		)
		return fmt.Errorf("update court %s: %w", c.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("court %s not found", c.ID)
	}

	return nil
}

func (r *courtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE courts SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete court",
			zap.Error(err),
			zap.String("court_id", id.String()),
		)
		return fmt.Errorf("delete court %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("court %s not found", id)
	}

	return nil
}
