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

type BlogRepository interface {
	Create(ctx context.Context, blog *entity.Blog) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Blog, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	FindAll(ctx context.Context, filter entity.BlogFilter, limit, offset int) ([]*entity.Blog, error)
	CountAll(ctx context.Context, filter entity.BlogFilter) (int64, error)
	Update(ctx context.Context, blog *entity.Blog) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BlogStatus, publishedAt *time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type blogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBlogRepository(db database.PgxIface, log *zap.Logger) BlogRepository {
	return &blogRepository{
		db:  db,
		log: log.With(zap.String("repository", "blog")),
	}
}

const blogColumns = `b.id, b.author_id, b.title, b.slug, b.summary, b.content, b.thumbnail_url, b.status,
		       b.published_at, b.created_at, b.updated_at, b.deleted_at, COALESCE(u.full_name, '')`

func scanBlog(row rowScanner) (*entity.Blog, error) {
	var b entity.Blog
	err := row.Scan(
		&b.ID,
		&b.AuthorID,
		&b.Title,
		&b.Slug,
		&b.Summary,
		&b.Content,
		&b.ThumbnailURL,
		&b.Status,
		&b.PublishedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.DeletedAt,
		&b.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *blogRepository) Create(ctx context.Context, b *entity.Blog) error {
	query := `
		INSERT INTO blogs (id, author_id, title, slug, summary, content, thumbnail_url, status,
		                   published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		b.ID,
		b.AuthorID,
		b.Title,
		b.Slug,
		b.Summary,
		b.Content,
		b.ThumbnailURL,
		b.Status,
		b.PublishedAt,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create blog", zap.Error(err), zap.String("slug", b.Slug))
		return fmt.Errorf("create blog %s: %w", b.Slug, err)
	}

	return nil
}

func (r *blogRepository) findOne(ctx context.Context, where string, arg any) (*entity.Blog, error) {
	query := `SELECT ` + blogColumns + `
		FROM blogs b LEFT JOIN users u ON u.id = b.author_id
		WHERE b.deleted_at IS NULL AND ` + where

	b, err := scanBlog(r.db.QueryRow(ctx, query, arg))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find blog", zap.Error(err), zap.Any("key", arg))
		return nil, fmt.Errorf("find blog %v: %w", arg, err)
	}

	return b, nil
}

func (r *blogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error) {
	return r.findOne(ctx, "b.id = $1", id)
}

func (r *blogRepository) FindBySlug(ctx context.Context, slug string) (*entity.Blog, error) {
	return r.findOne(ctx, "b.slug = $1", slug)
}

// SlugExists also counts soft deleted blogs, the unique index covers them
func (r *blogRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM blogs WHERE slug = $1 AND id <> $2)`, slug, excludeID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check blog slug", zap.Error(err), zap.String("slug", slug))
		return false, fmt.Errorf("check blog slug: %w", err)
	}

	return exists, nil
}

func blogFilterClause(filter entity.BlogFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE b.deleted_at IS NULL")

	args := []any{}
	argCount := 1

	if filter.PublishedOnly {
		sb.WriteString(fmt.Sprintf(" AND b.status = $%d", argCount))
		args = append(args, entity.BlogStatusPublished)
		argCount++
	} else if filter.Status != "" {
		sb.WriteString(fmt.Sprintf(" AND b.status = $%d", argCount))
		args = append(args, filter.Status)
		argCount++
	}
	if filter.Keyword != "" {
		sb.WriteString(fmt.Sprintf(" AND (b.title ILIKE $%d OR b.summary ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+filter.Keyword+"%")
	}

	return sb.String(), args
}

func (r *blogRepository) FindAll(ctx context.Context, filter entity.BlogFilter, limit, offset int) ([]*entity.Blog, error) {
	where, args := blogFilterClause(filter)
	query := fmt.Sprintf(`SELECT %s FROM blogs b LEFT JOIN users u ON u.id = b.author_id%s
		ORDER BY COALESCE(b.published_at, b.created_at) DESC LIMIT $%d OFFSET $%d`,
		blogColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find blogs", zap.Error(err))
		return nil, fmt.Errorf("find blogs: %w", err)
	}
	defer rows.Close()

	var blogs []*entity.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			r.log.Error("Failed to scan blog row", zap.Error(err))
			return nil, fmt.Errorf("scan blog row: %w", err)
		}
		blogs = append(blogs, b)
	}

	return blogs, rows.Err()
}

func (r *blogRepository) CountAll(ctx context.Context, filter entity.BlogFilter) (int64, error) {
	where, args := blogFilterClause(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM blogs b`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count blogs", zap.Error(err))
		return 0, fmt.Errorf("count blogs: %w", err)
	}

	return count, nil
}

func (r *blogRepository) Update(ctx context.Context, b *entity.Blog) error {
	query := `
		UPDATE blogs
		SET title = $2, slug = $3, summary = $4, content = $5, thumbnail_url = $6, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, b.ID, b.Title, b.Slug, b.Summary, b.Content, b.ThumbnailURL)
	if err != nil {
		r.log.Error("Failed to update blog", zap.Error(err), zap.String("blog_id", b.ID.String()))
		return fmt.Errorf("update blog %s: %w", b.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("blog %s not found", b.ID)
	}

	return nil
}

func (r *blogRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BlogStatus, publishedAt *time.Time) error {
	query := `UPDATE blogs SET status = $2, published_at = $3, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	if _, err := r.db.Exec(ctx, query, id, status, publishedAt); err != nil {
		r.log.Error("Failed to update blog status", zap.Error(err), zap.String("blog_id", id.String()))
		return fmt.Errorf("update blog status %s: %w", id, err)
	}

	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `UPDATE blogs SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		r.log.Error("Failed to delete blog", zap.Error(err), zap.String("blog_id", id.String()))
		return fmt.Errorf("delete blog %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("blog %s not found", id)
	}

	return nil
}
