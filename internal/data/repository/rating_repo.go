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

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error)
	FindByFacilityAndUser(ctx context.Context, facilityID, userID uuid.UUID) (*entity.Rating, error)
	FindByFacilityID(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*entity.Rating, error)
	CountByFacilityID(ctx context.Context, facilityID uuid.UUID) (int64, error)
	Stats(ctx context.Context, facilityID uuid.UUID) (*entity.RatingStats, error)
	Update(ctx context.Context, rating *entity.Rating) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ratingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRatingRepository(db database.PgxIface, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

const ratingColumns = `r.id, r.facility_id, r.user_id, r.booking_id, r.stars, r.review,
		       r.created_at, r.updated_at, COALESCE(u.full_name, '')`

func scanRating(row rowScanner) (*entity.Rating, error) {
	var rt entity.Rating
	err := row.Scan(
		&rt.ID,
		&rt.FacilityID,
		&rt.UserID,
		&rt.BookingID,
		&rt.Stars,
		&rt.Review,
		&rt.CreatedAt,
		&rt.UpdatedAt,
		&rt.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *ratingRepository) Create(ctx context.Context, rt *entity.Rating) error {
	query := `
		INSERT INTO ratings (id, facility_id, user_id, booking_id, stars, review, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query, rt.ID, rt.FacilityID, rt.UserID, rt.BookingID, rt.Stars, rt.Review, rt.CreatedAt, rt.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create rating",
			zap.Error(err),
			zap.String("facility_id", rt.FacilityID.String()),
			zap.String("user_id", rt.UserID.String()),
		)
		return fmt.Errorf("create rating: %w", err)
	}

	return nil
}

func (r *ratingRepository) findOne(ctx context.Context, where string, args ...any) (*entity.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings r LEFT JOIN users u ON u.id = r.user_id WHERE ` + where

	rt, err := scanRating(r.db.QueryRow(ctx, query, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rating", zap.Error(err))
		return nil, fmt.Errorf("find rating: %w", err)
	}

	return rt, nil
}

func (r *ratingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	return r.findOne(ctx, "r.id = $1", id)
}

func (r *ratingRepository) FindByFacilityAndUser(ctx context.Context, facilityID, userID uuid.UUID) (*entity.Rating, error) {
	return r.findOne(ctx, "r.facility_id = $1 AND r.user_id = $2", facilityID, userID)
}

func (r *ratingRepository) FindByFacilityID(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*entity.Rating, error) {
	query := `SELECT ` + ratingColumns + `
		FROM ratings r LEFT JOIN users u ON u.id = r.user_id
		WHERE r.facility_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, facilityID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find ratings",
			zap.Error(err),
			zap.String("facility_id", facilityID.String()),
		)
		return nil, fmt.Errorf("find ratings of facility %s: %w", facilityID, err)
	}
	defer rows.Close()

	var ratings []*entity.Rating
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			r.log.Error("Failed to scan rating row", zap.Error(err))
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, rt)
	}

	return ratings, rows.Err()
}

func (r *ratingRepository) CountByFacilityID(ctx context.Context, facilityID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM ratings WHERE facility_id = $1`, facilityID).Scan(&count); err != nil {
		r.log.Error("Failed to count ratings", zap.Error(err))
		return 0, fmt.Errorf("count ratings: %w", err)
	}

	return count, nil
}

func (r *ratingRepository) Stats(ctx context.Context, facilityID uuid.UUID) (*entity.RatingStats, error) {
	query := `SELECT stars, COUNT(*) FROM ratings WHERE facility_id = $1 GROUP BY stars`

	rows, err := r.db.Query(ctx, query, facilityID)
	if err != nil {
		r.log.Error("Failed to aggregate ratings",
			zap.Error(err),
			zap.String("facility_id", facilityID.String()),
		)
		return nil, fmt.Errorf("rating stats of facility %s: %w", facilityID, err)
	}
	defer rows.Close()

	stats := &entity.RatingStats{}
	var sum int64
	for rows.Next() {
		var stars int
		var count int64
		if err := rows.Scan(&stars, &count); err != nil {
			return nil, fmt.Errorf("scan rating stats: %w", err)
		}
		if stars < 1 || stars > 5 {
			continue
		}
		stats.PerStar[stars-1] = count
		stats.Count += count
		sum += int64(stars) * count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating stats: %w", err)
	}

	if stats.Count > 0 {
		stats.Average = float64(sum) / float64(stats.Count)
	}
	return stats, nil
}

func (r *ratingRepository) Update(ctx context.Context, rt *entity.Rating) error {
	query := `UPDATE ratings SET stars = $2, review = $3, updated_at = NOW() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, rt.ID, rt.Stars, rt.Review); err != nil {
		r.log.Error("Failed to update rating",
			zap.Error(err),
			zap.String("rating_id", rt.ID.String()),
		)
		return fmt.Errorf("update rating %s: %w", rt.ID, err)
	}

	return nil
}

func (r *ratingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete rating",
			zap.Error(err),
			zap.String("rating_id", id.String()),
		)
		return fmt.Errorf("delete rating %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("rating %s not found", id)
	}

	return nil
}
