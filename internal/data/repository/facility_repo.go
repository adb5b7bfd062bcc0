package repository

import (
	"context"
	"fmt"
	"strings"

	"court-booking/internal/data/entity"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FacilityRepository interface {
	Create(ctx context.Context, facility *entity.Facility) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Facility, error)
	FindAll(ctx context.Context, filter entity.FacilityFilter, limit, offset int) ([]*entity.Facility, error)
	CountAll(ctx context.Context, filter entity.FacilityFilter) (int64, error)
	Update(ctx context.Context, facility *entity.Facility) error
	UpdateImage(ctx context.Context, id uuid.UUID, imageURL string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.StatusID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type facilityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFacilityRepository(db database.PgxIface, log *zap.Logger) FacilityRepository {
	return &facilityRepository{
		db:  db,
		log: log.With(zap.String("repository", "facility")),
	}
}

const facilityColumns = `f.id, f.owner_id, f.name, f.address, f.district, f.city, f.description, f.phone,
		       f.open_time, f.close_time, f.image_url, f.status_id, f.created_at, f.updated_at, f.deleted_at`

func scanFacility(row rowScanner, withRating bool) (*entity.Facility, error) {
	var f entity.Facility
	dest := []any{
		&f.ID,
		&f.OwnerID,
		&f.Name,
		&f.Address,
		&f.District,
		&f.City,
		&f.Description,
		&f.Phone,
		&f.OpenTime,
		&f.CloseTime,
		&f.ImageURL,
		&f.StatusID,
		&f.CreatedAt,
		&f.UpdatedAt,
		&f.DeletedAt,
	}
	if withRating {
		dest = append(dest, &f.AvgRating, &f.RatingCount)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facilityRepository) Create(ctx context.Context, f *entity.Facility) error {
	query := `
		INSERT INTO facilities (id, owner_id, name, address, district, city, description, phone,
		                        open_time, close_time, image_url, status_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		f.ID,
		f.OwnerID,
		f.Name,
		f.Address,
		f.District,
		f.City,
		f.Description,
		f.Phone,
		f.OpenTime,
		f.CloseTime,
		f.ImageURL,
		f.StatusID,
		f.CreatedAt,
		f.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create facility",
			zap.Error(err),
			zap.String("owner_id", f.OwnerID.String()),
			zap.String("name", f.Name),
		)
		return fmt.Errorf("create facility %s: %w", f.Name, err)
	}

	return nil
}

func (r *facilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Facility, error) {
	query := `SELECT ` + facilityColumns + ` FROM facilities f WHERE f.id = $1 AND f.deleted_at IS NULL`

	f, err := scanFacility(r.db.QueryRow(ctx, query, id), false)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find facility by ID",
			zap.Error(err),
			zap.String("facility_id", id.String()),
		)
		return nil, fmt.Errorf("find facility %s: %w", id, err)
	}

	return f, nil
}

func facilityFilterClause(filter entity.FacilityFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE f.deleted_at IS NULL")

	args := []any{}
	argCount := 1

	if filter.ActiveOnly {
		sb.WriteString(fmt.Sprintf(" AND f.status_id = $%d", argCount))
		args = append(args, entity.StatusActive)
		argCount++
	}
	if filter.OwnerID != nil {
		sb.WriteString(fmt.Sprintf(" AND f.owner_id = $%d", argCount))
		args = append(args, *filter.OwnerID)
		argCount++
	}
	if filter.Keyword != "" {
		sb.WriteString(fmt.Sprintf(" AND (f.name ILIKE $%d OR f.address ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+filter.Keyword+"%")
		argCount++
	}
	if filter.City != "" {
		sb.WriteString(fmt.Sprintf(" AND f.city ILIKE $%d", argCount))
		args = append(args, filter.City)
		argCount++
	}
	if filter.District != "" {
		sb.WriteString(fmt.Sprintf(" AND f.district ILIKE $%d", argCount))
		args = append(args, filter.District)
	}

	return sb.String(), args
}

// FindAll returns facilities with their rating average and count
func (r *facilityRepository) FindAll(ctx context.Context, filter entity.FacilityFilter, limit, offset int) ([]*entity.Facility, error) {
	where, args := facilityFilterClause(filter)
	query := fmt.Sprintf(`
		SELECT %s, COALESCE(AVG(r.stars), 0)::float8, COUNT(r.id)
		FROM facilities f
		LEFT JOIN ratings r ON r.facility_id = f.id
		%s
		GROUP BY f.id
		ORDER BY f.created_at DESC
		LIMIT $%d OFFSET $%d
	`, facilityColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find facilities",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find facilities: %w", err)
	}
	defer rows.Close()

	var facilities []*entity.Facility
	for rows.Next() {
		f, err := scanFacility(rows, true)
		if err != nil {
			r.log.Error("Failed to scan facility row", zap.Error(err))
			return nil, fmt.Errorf("scan facility row: %w", err)
		}
		facilities = append(facilities, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate facility rows: %w", err)
	}

	return facilities, nil
}

func (r *facilityRepository) CountAll(ctx context.Context, filter entity.FacilityFilter) (int64, error) {
	where, args := facilityFilterClause(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM facilities f`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count facilities", zap.Error(err))
		return 0, fmt.Errorf("count facilities: %w", err)
	}

	return count, nil
}

func (r *facilityRepository) Update(ctx context.Context, f *entity.Facility) error {
	query := `
		UPDATE facilities
		SET name = $2, address = $3, district = $4, city = $5, description = $6, phone = $7,
		    open_time = $8, close_time = $9, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		f.ID,
		f.Name,
		f.Address,
		f.District,
		f.City,
		f.Description,
		f.Phone,
		f.OpenTime,
		f.CloseTime,
	)
	if err != nil {
		r.log.Error("Failed to update facility",
			zap.Error(err),
			zap.String("facility_id", f.ID.String()),
		)
		return fmt.Errorf("update facility %s: %w", f.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("facility %s not found", f.ID)
	}

	return nil
}

func (r *facilityRepository) UpdateImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	query := `UPDATE facilities SET image_url = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	if _, err := r.db.Exec(ctx, query, id, imageURL); err != nil {
		r.log.Error("Failed to update facility image",
			zap.Error(err),
			zap.String("facility_id", id.String()),
		)
		return fmt.Errorf("update facility image %s: %w", id, err)
	}

	return nil
}

func (r *facilityRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.StatusID) error {
	query := `UPDATE facilities SET status_id = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	if _, err := r.db.Exec(ctx, query, id, status); err != nil {
		r.log.Error("Failed to update facility status",
			zap.Error(err),
			zap.String("facility_id", id.String()),
		)
		return fmt.Errorf("update facility status %s: %w", id, err)
	}

	return nil
}

func (r *facilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE facilities SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete facility",
			zap.Error(err),
			zap.String("facility_id", id.String()),
		)
		return fmt.Errorf("delete facility %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("facility %s not found", id)
	}

	return nil
}
