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

type SliderRepository interface {
	Create(ctx context.Context, slider *entity.Slider) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Slider, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Slider, error)
	Update(ctx context.Context, slider *entity.Slider) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sliderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSliderRepository(db database.PgxIface, log *zap.Logger) SliderRepository {
	return &sliderRepository{
		db:  db,
		log: log.With(zap.String("repository", "slider")),
	}
}

const sliderColumns = `id, title, image_url, link_url, display_order, status_id, created_at, updated_at`

func scanSlider(row rowScanner) (*entity.Slider, error) {
	var s entity.Slider
	err := row.Scan(&s.ID, &s.Title, &s.ImageURL, &s.LinkURL, &s.DisplayOrder, &s.StatusID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sliderRepository) Create(ctx context.Context, s *entity.Slider) error {
	query := `
		INSERT INTO sliders (id, title, image_url, link_url, display_order, status_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query, s.ID, s.Title, s.ImageURL, s.LinkURL, s.DisplayOrder, s.StatusID, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create slider", zap.Error(err), zap.String("title", s.Title))
		return fmt.Errorf("create slider %s: %w", s.Title, err)
	}

	return nil
}

func (r *sliderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slider, error) {
	query := `SELECT ` + sliderColumns + ` FROM sliders WHERE id = $1`

	s, err := scanSlider(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slider by ID", zap.Error(err), zap.String("slider_id", id.String()))
		return nil, fmt.Errorf("find slider %s: %w", id, err)
	}

	return s, nil
}

func (r *sliderRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Slider, error) {
	query := `SELECT ` + sliderColumns + ` FROM sliders`
	args := []any{}
	if activeOnly {
		query += ` WHERE status_id = $1`
		args = append(args, entity.StatusActive)
	}
	query += ` ORDER BY display_order, created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find sliders", zap.Error(err))
		return nil, fmt.Errorf("find sliders: %w", err)
	}
	defer rows.Close()

	var sliders []*entity.Slider
	for rows.Next() {
		s, err := scanSlider(rows)
		if err != nil {
			r.log.Error("Failed to scan slider row", zap.Error(err))
			return nil, fmt.Errorf("scan slider row: %w", err)
		}
		sliders = append(sliders, s)
	}

	return sliders, rows.Err()
}

func (r *sliderRepository) Update(ctx context.Context, s *entity.Slider) error {
	query := `
		UPDATE sliders
		SET title = $2, image_url = $3, link_url = $4, display_order = $5, status_id = $6, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, s.ID, s.Title, s.ImageURL, s.LinkURL, s.DisplayOrder, s.StatusID)
	if err != nil {
		r.log.Error("Failed to update slider", zap.Error(err), zap.String("slider_id", s.ID.String()))
		return fmt.Errorf("update slider %s: %w", s.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slider %s not found", s.ID)
	}

	return nil
}

func (r *sliderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM sliders WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete slider", zap.Error(err), zap.String("slider_id", id.String()))
		return fmt.Errorf("delete slider %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slider %s not found", id)
	}

	return nil
}
