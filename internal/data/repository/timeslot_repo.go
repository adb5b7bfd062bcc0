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

type TimeSlotRepository interface {
	Create(ctx context.Context, slot *entity.TimeSlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error)
	FindByFacilityID(ctx context.Context, facilityID uuid.UUID) ([]*entity.TimeSlot, error)
	Update(ctx context.Context, slot *entity.TimeSlot) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type timeSlotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTimeSlotRepository(db database.PgxIface, log *zap.Logger) TimeSlotRepository {
	return &timeSlotRepository{
		db:  db,
		log: log.With(zap.String("repository", "time_slot")),
	}
}

const timeSlotColumns = `id, facility_id, court_id, start_time, end_time, discount_rate, status_id,
		       created_at, updated_at, deleted_at`

func scanTimeSlot(row rowScanner) (*entity.TimeSlot, error) {
	var s entity.TimeSlot
	err := row.Scan(
		&s.ID,
		&s.FacilityID,
		&s.CourtID,
		&s.StartTime,
		&s.EndTime,
		&s.DiscountRate,
		&s.StatusID,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *timeSlotRepository) Create(ctx context.Context, s *entity.TimeSlot) error {
	query := `
		INSERT INTO time_slots (id, facility_id, court_id, start_time, end_time, discount_rate, status_id,
		                        created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		s.ID,
		s.FacilityID,
		s.CourtID,
		s.StartTime,
		s.EndTime,
		s.DiscountRate,
		s.StatusID,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create time slot",
			zap.Error(err),
			zap.String("facility_id", s.FacilityID.String()),
			zap.Int("start", s.StartTime),
			zap.Int("end", s.EndTime),
		)
		return fmt.Errorf("create time slot: %w", err)
	}

	return nil
}

func (r *timeSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error) {
	query := `SELECT ` + timeSlotColumns + ` FROM time_slots WHERE id = $1 AND deleted_at IS NULL`

	s, err := scanTimeSlot(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find time slot by ID",
			zap.Error(err),
			zap.String("time_slot_id", id.String()),
		)
		return nil, fmt.Errorf("find time slot %s: %w", id, err)
	}

	return s, nil
}

// FindByFacilityID returns every non-deleted slot ordered by start time
func (r *timeSlotRepository) FindByFacilityID(ctx context.Context, facilityID uuid.UUID) ([]*entity.TimeSlot, error) {
	query := `SELECT ` + timeSlotColumns + `
		FROM time_slots
		WHERE facility_id = $1 AND deleted_at IS NULL
		ORDER BY start_time`

	rows, err := r.db.Query(ctx, query, facilityID)
	if err != nil {
		r.log.Error("Failed to find time slots by facility",
			zap.Error(err),
			zap.String("facility_id", facilityID.String()),
		)
		return nil, fmt.Errorf("find time slots of facility %s: %w", facilityID, err)
	}
	defer rows.Close()

	var slots []*entity.TimeSlot
	for rows.Next() {
		s, err := scanTimeSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan time slot row", zap.Error(err))
			return nil, fmt.Errorf("scan time slot row: %w", err)
		}
		slots = append(slots, s)
	}

	return slots, rows.Err()
}

func (r *timeSlotRepository) Update(ctx context.Context, s *entity.TimeSlot) error {
	query := `
		UPDATE time_slots
		SET court_id = $2, start_time = $3, end_time = $4, discount_rate = $5, status_id = $6, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, s.ID, s.CourtID, s.StartTime, s.EndTime, s.DiscountRate, s.StatusID)
	if err != nil {
		r.log.Error("Failed to update time slot",
			zap.Error(err),
			zap.String("time_slot_id", s.ID.String()),
		)
		return fmt.Errorf("update time slot %s: %w", s.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("time slot %s not found", s.ID)
	}

	return nil
}

func (r *timeSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE time_slots SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete time slot",
			zap.Error(err),
			zap.String("time_slot_id", id.String()),
		)
		return fmt.Errorf("delete time slot %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("time slot %s not found", id)
	}

	return nil
}
