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

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)
	FindByFacilityID(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*entity.Comment, error)
	CountByFacilityID(ctx context.Context, facilityID uuid.UUID) (int64, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

const commentColumns = `c.id, c.facility_id, c.user_id, c.parent_id, c.content, c.status_id,
		       c.created_at, c.updated_at, c.deleted_at, COALESCE(u.full_name, '')`

func scanComment(row rowScanner) (*entity.Comment, error) {
	var c entity.Comment
	err := row.Scan(
		&c.ID,
		&c.FacilityID,
		&c.UserID,
		&c.ParentID,
		&c.Content,
		&c.StatusID,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DeletedAt,
		&c.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) Create(ctx context.Context, c *entity.Comment) error {
	query := `
		INSERT INTO comments (id, facility_id, user_id, parent_id, content, status_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query, c.ID, c.FacilityID, c.UserID, c.ParentID, c.Content, c.StatusID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("facility_id", c.FacilityID.String()),
			zap.String("user_id", c.UserID.String()),
		)
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	query := `SELECT ` + commentColumns + `
		FROM comments c LEFT JOIN users u ON u.id = c.user_id
		WHERE c.id = $1 AND c.deleted_at IS NULL`

	c, err := scanComment(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment by ID",
			zap.Error(err),
			zap.String("comment_id", id.String()),
		)
		return nil, fmt.Errorf("find comment %s: %w", id, err)
	}

	return c, nil
}

func (r *commentRepository) FindByFacilityID(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	query := `SELECT ` + commentColumns + `
		FROM comments c LEFT JOIN users u ON u.id = c.user_id
		WHERE c.facility_id = $1 AND c.deleted_at IS NULL AND c.status_id = 1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, facilityID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find comments",
			zap.Error(err),
			zap.String("facility_id", facilityID.String()),
		)
		return nil, fmt.Errorf("find comments of facility %s: %w", facilityID, err)
	}
	defer rows.Close()

	var comments []*entity.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (r *commentRepository) CountByFacilityID(ctx context.Context, facilityID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM comments WHERE facility_id = $1 AND deleted_at IS NULL AND status_id = 1`

	var count int64
	if err := r.db.QueryRow(ctx, query, facilityID).Scan(&count); err != nil {
		r.log.Error("Failed to count comments", zap.Error(err))
		return 0, fmt.Errorf("count comments: %w", err)
	}

	return count, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	query := `UPDATE comments SET content = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	if _, err := r.db.Exec(ctx, query, id, content); err != nil {
		r.log.Error("Failed to update comment",
			zap.Error(err),
			zap.String("comment_id", id.String()),
		)
		return fmt.Errorf("update comment %s: %w", id, err)
	}

	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE comments SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete comment",
			zap.Error(err),
			zap.String("comment_id", id.String()),
		)
		return fmt.Errorf("delete comment %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %s not found", id)
	}

	return nil
}
