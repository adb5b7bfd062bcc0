package usecase

import (
	"context"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/pkg/apperror"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentService interface {
	ListComments(ctx context.Context, facilityID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	CreateComment(ctx context.Context, actor utils.Actor, facilityID uuid.UUID, req *request.CommentRequest) (*response.CommentResponse, error)
	UpdateComment(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.CommentRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, actor utils.Actor, id uuid.UUID) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) ListComments(ctx context.Context, facilityID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	limit, offset := pageOf(*req)

	comments, err := s.repo.Comment.FindByFacilityID(ctx, facilityID, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list comments")
	}
	total, err := s.repo.Comment.CountByFacilityID(ctx, facilityID)
	if err != nil {
		return nil, apperror.Internal(err, "failed to count comments")
	}

	return paginate(comments, func(c *entity.Comment) response.CommentResponse {
		return response.CommentToResponse(c)
	}, *req, total), nil
}

func (s *commentService) CreateComment(ctx context.Context, actor utils.Actor, facilityID uuid.UUID, req *request.CommentRequest) (*response.CommentResponse, error) {
	content, err := commentContent(req)
	if err != nil {
		return nil, err
	}

	facility, err := s.repo.Facility.FindByID(ctx, facilityID)
	if err != nil {
		return nil, apperror.Internal(err, "failed to find facility")
	}
	if facility == nil || facility.StatusID != entity.StatusActive {
		return nil, apperror.NotFound("facility not found")
	}

	var parentID *uuid.UUID
	if req.ParentID != nil && *req.ParentID != "" {
		id, err := parseID(*req.ParentID, "parent comment")
		if err != nil {
			return nil, err
		}
		parent, err := s.repo.Comment.FindByID(ctx, id)
		if err != nil {
			return nil, apperror.Internal(err, "failed to find parent comment")
		}
		if parent == nil || parent.FacilityID != facilityID {
			return nil, apperror.BadRequest("parent comment does not belong to this facility")
		}
		// replies stay one level deep
		if parent.ParentID != nil {
			id = *parent.ParentID
		}
		parentID = &id
	}

	now := time.Now()
	comment := &entity.Comment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FacilityID: facilityID,
		UserID:     actor.UserID,
		ParentID:   parentID,
		Content:    content,
		StatusID:   entity.StatusActive,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.log.Error("Failed to create comment", zap.Error(err), zap.String("facility_id", facilityID.String()))
		return nil, apperror.Internal(err, "failed to create comment")
	}

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) UpdateComment(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.CommentRequest) (*response.CommentResponse, error) {
	content, err := commentContent(req)
	if err != nil {
		return nil, err
	}

	comment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actor.UserID {
		return nil, apperror.Forbidden("you can only edit your own comments")
	}

	if err := s.repo.Comment.UpdateContent(ctx, id, content); err != nil {
		s.log.Error("Failed to update comment", zap.Error(err), zap.String("comment_id", id.String()))
		return nil, apperror.Internal(err, "failed to update comment")
	}
	comment.Content = content
	comment.UpdatedAt = time.Now()

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actor utils.Actor, id uuid.UUID) error {
	comment, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != actor.UserID && !actor.IsAdmin() {
		return apperror.Forbidden("you can only delete your own comments")
	}

	if err := s.repo.Comment.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete comment", zap.Error(err), zap.String("comment_id", id.String()))
		return apperror.Internal(err, "failed to delete comment")
	}
	return nil
}

func (s *commentService) find(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	comment, err := s.repo.Comment.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err, "failed to find comment")
	}
	if comment == nil {
		return nil, apperror.NotFound("comment not found")
	}
	return comment, nil
}

func commentContent(req *request.CommentRequest) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}
	content := utils.StripHTML(req.Content)
	if content == "" {
		return "", apperror.Validation(map[string]string{"Content": "This field is required"})
	}
	return content, nil
}
