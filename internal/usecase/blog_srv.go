package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/pkg/apperror"
	"court-booking/pkg/database"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BlogService interface {
	ListPublished(ctx context.Context, req *request.BlogListRequest) (*response.PaginatedResponse[response.BlogResponse], error)
	GetBySlug(ctx context.Context, slug string) (*response.BlogResponse, error)

	// Admin
	ListBlogs(ctx context.Context, req *request.BlogListRequest) (*response.PaginatedResponse[response.BlogResponse], error)
	GetBlog(ctx context.Context, id uuid.UUID) (*response.BlogResponse, error)
	CreateBlog(ctx context.Context, actor utils.Actor, req *request.BlogRequest) (*response.BlogResponse, error)
	UpdateBlog(ctx context.Context, id uuid.UUID, req *request.BlogRequest) (*response.BlogResponse, error)
	DeleteBlog(ctx context.Context, id uuid.UUID) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*response.BlogResponse, error)
}

type blogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBlogService(repo *repository.Repository, log *zap.Logger) BlogService {
	return &blogService{
		repo: repo,
		log:  log.With(zap.String("service", "blog")),
	}
}

func (s *blogService) ListPublished(ctx context.Context, req *request.BlogListRequest) (*response.PaginatedResponse[response.BlogResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.list(ctx, entity.BlogFilter{Keyword: req.Keyword, PublishedOnly: true}, req)
}

func (s *blogService) GetBySlug(ctx context.Context, slug string) (*response.BlogResponse, error) {
	blog, err := s.repo.Blog.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, apperror.Internal(err, "failed to find blog")
	}
	if blog == nil || blog.Status != entity.BlogStatusPublished {
		return nil, apperror.NotFound("blog not found")
	}

	resp := response.BlogToResponse(blog, true)
	return &resp, nil
}

func (s *blogService) ListBlogs(ctx context.Context, req *request.BlogListRequest) (*response.PaginatedResponse[response.BlogResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.list(ctx, entity.BlogFilter{Keyword: req.Keyword, Status: req.Status}, req)
}

func (s *blogService) GetBlog(ctx context.Context, id uuid.UUID) (*response.BlogResponse, error) {
	blog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.BlogToResponse(blog, true)
	return &resp, nil
}

func (s *blogService) CreateBlog(ctx context.Context, actor utils.Actor, req *request.BlogRequest) (*response.BlogResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	content := utils.SanitizeHTML(req.Content)
	if content == "" {
		return nil, apperror.Validation(map[string]string{"Content": "This field is required"})
	}

	slug, err := s.uniqueSlug(ctx, req.Title, uuid.Nil)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	blog := &entity.Blog{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		AuthorID:     actor.UserID,
		Title:        strings.TrimSpace(req.Title),
		Slug:         slug,
		Summary:      sanitizeOptional(req.Summary),
		Content:      content,
		ThumbnailURL: req.ThumbnailURL,
		Status:       entity.BlogStatusDraft,
	}

	if err := s.repo.Blog.Create(ctx, blog); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Conflict("a blog with slug %q already exists", slug)
		}
		s.log.Error("Failed to create blog", zap.Error(err))
		return nil, apperror.Internal(err, "failed to create blog")
	}

	s.log.Info("Blog created", zap.String("blog_id", blog.ID.String()), zap.String("slug", slug))

	resp := response.BlogToResponse(blog, true)
	return &resp, nil
}

func (s *blogService) UpdateBlog(ctx context.Context, id uuid.UUID, req *request.BlogRequest) (*response.BlogResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	blog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	content := utils.SanitizeHTML(req.Content)
	if content == "" {
		return nil, apperror.Validation(map[string]string{"Content": "This field is required"})
	}

	title := strings.TrimSpace(req.Title)
	if title != blog.Title {
		slug, err := s.uniqueSlug(ctx, title, blog.ID)
		if err != nil {
			return nil, err
		}
		blog.Slug = slug
	}

	blog.Title = title
	blog.Summary = sanitizeOptional(req.Summary)
	blog.Content = content
	blog.ThumbnailURL = req.ThumbnailURL
	blog.UpdatedAt = time.Now()

	if err := s.repo.Blog.Update(ctx, blog); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Conflict("a blog with slug %q already exists", blog.Slug)
		}
		s.log.Error("Failed to update blog", zap.Error(err), zap.String("blog_id", id.String()))
		return nil, apperror.Internal(err, "failed to update blog")
	}

	resp := response.BlogToResponse(blog, true)
	return &resp, nil
}

func (s *blogService) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Blog.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete blog", zap.Error(err), zap.String("blog_id", id.String()))
		return apperror.Internal(err, "failed to delete blog")
	}
	return nil
}

func (s *blogService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*response.BlogResponse, error) {
	blog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	status := entity.BlogStatusDraft
	var publishedAt *time.Time
	if published {
		status = entity.BlogStatusPublished
		publishedAt = blog.PublishedAt
		if publishedAt == nil {
			now := time.Now()
			publishedAt = &now
		}
	}
	if blog.Status == status {
		return nil, apperror.BadRequest("blog is already %s", status)
	}

	if err := s.repo.Blog.UpdateStatus(ctx, id, status, publishedAt); err != nil {
		s.log.Error("Failed to change blog status", zap.Error(err), zap.String("blog_id", id.String()))
		return nil, apperror.Internal(err, "failed to update blog")
	}
	blog.Status = status
	blog.PublishedAt = publishedAt

	resp := response.BlogToResponse(blog, false)
	return &resp, nil
}

// uniqueSlug appends -2, -3 ... until the slug is free
func (s *blogService) uniqueSlug(ctx context.Context, title string, excludeID uuid.UUID) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		base = "post"
	}

	slug := base
	for i := 2; i < 100; i++ {
		taken, err := s.repo.Blog.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", apperror.Internal(err, "failed to check slug")
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(i)
	}
	return base + "-" + strconv.FormatInt(time.Now().Unix(), 10), nil
}

func (s *blogService) find(ctx context.Context, id uuid.UUID) (*entity.Blog, error) {
	blog, err := s.repo.Blog.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err, "failed to find blog")
	}
	if blog == nil {
		return nil, apperror.NotFound("blog not found")
	}
	return blog, nil
}

func (s *blogService) list(ctx context.Context, filter entity.BlogFilter, req *request.BlogListRequest) (*response.PaginatedResponse[response.BlogResponse], error) {
	limit, offset := pageOf(req.PaginatedRequest)

	blogs, err := s.repo.Blog.FindAll(ctx, filter, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list blogs")
	}
	total, err := s.repo.Blog.CountAll(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err, "failed to count blogs")
	}

	return paginate(blogs, func(b *entity.Blog) response.BlogResponse {
		return response.BlogToResponse(b, false)
	}, req.PaginatedRequest, total), nil
}
