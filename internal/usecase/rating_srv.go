package usecase

import (
	"context"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/pkg/apperror"
	"court-booking/pkg/cache"
	"court-booking/pkg/database"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RatingService interface {
	ListRatings(ctx context.Context, facilityID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RatingResponse], error)
	GetRatingStats(ctx context.Context, facilityID uuid.UUID) (*response.RatingStatsResponse, error)
	CreateRating(ctx context.Context, actor utils.Actor, facilityID uuid.UUID, req *request.RatingRequest) (*response.RatingResponse, error)
	UpdateRating(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.RatingRequest) (*response.RatingResponse, error)
	DeleteRating(ctx context.Context, actor utils.Actor, id uuid.UUID) error
}

type ratingService struct {
	repo  *repository.Repository
	cache cache.Cache
	log   *zap.Logger
}

func NewRatingService(repo *repository.Repository, c cache.Cache, log *zap.Logger) RatingService {
	return &ratingService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "rating")),
	}
}

func (s *ratingService) ListRatings(ctx context.Context, facilityID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RatingResponse], error) {
	limit, offset := pageOf(*req)

	ratings, err := s.repo.Rating.FindByFacilityID(ctx, facilityID, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list ratings")
	}
	total, err := s.repo.Rating.CountByFacilityID(ctx, facilityID)
	if err != nil {
		return nil, apperror.Internal(err, "failed to count ratings")
	}

	return paginate(ratings, func(r *entity.Rating) response.RatingResponse {
		return response.RatingToResponse(r)
	}, *req, total), nil
}

func (s *ratingService) GetRatingStats(ctx context.Context, facilityID uuid.UUID) (*response.RatingStatsResponse, error) {
	stats, err := s.repo.Rating.Stats(ctx, facilityID)
	if err != nil {
		return nil, apperror.Internal(err, "failed to load rating stats")
	}
	resp := response.RatingStatsToResponse(stats)
	return &resp, nil
}

// CreateRating is open to customers with a paid or completed booking at the facility
func (s *ratingService) CreateRating(ctx context.Context, actor utils.Actor, facilityID uuid.UUID, req *request.RatingRequest) (*response.RatingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	facility, err := s.repo.Facility.FindByID(ctx, facilityID)
	if err != nil {
		return nil, apperror.Internal(err, "failed to find facility")
	}
	if facility == nil {
		return nil, apperror.NotFound("facility not found")
	}

	bookingID, err := s.repo.Booking.FindEligibleForRating(ctx, actor.UserID, facilityID)
	if err != nil {
		s.log.Error("Failed to check rating eligibility", zap.Error(err), zap.String("user_id", actor.UserID.String()))
		return nil, apperror.Internal(err, "failed to check eligibility")
	}
	if bookingID == nil {
		return nil, apperror.Forbidden("only customers who played here can rate this facility")
	}

	existing, err := s.repo.Rating.FindByFacilityAndUser(ctx, facilityID, actor.UserID)
	if err != nil {
		return nil, apperror.Internal(err, "failed to check existing rating")
	}
	if existing != nil {
		return nil, apperror.Conflict("you have already rated this facility")
	}

	now := time.Now()
	rating := &entity.Rating{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FacilityID: facilityID,
		UserID:     actor.UserID,
		BookingID:  bookingID,
		Stars:      req.Stars,
		Review:     sanitizeOptional(req.Review),
	}

	if err := s.repo.Rating.Create(ctx, rating); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Conflict("you have already rated this facility")
		}
		s.log.Error("Failed to create rating", zap.Error(err), zap.String("facility_id", facilityID.String()))
		return nil, apperror.Internal(err, "failed to create rating")
	}
	invalidateFacility(ctx, s.cache, facilityID, s.log)

	s.log.Info("Rating created",
		zap.String("facility_id", facilityID.String()),
		zap.String("user_id", actor.UserID.String()),
		zap.Int("stars", req.Stars))

	resp := response.RatingToResponse(rating)
	return &resp, nil
}

func (s *ratingService) UpdateRating(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.RatingRequest) (*response.RatingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	rating, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if rating.UserID != actor.UserID {
		return nil, apperror.Forbidden("you can only edit your own rating")
	}

	rating.Stars = req.Stars
	rating.Review = sanitizeOptional(req.Review)
	rating.UpdatedAt = time.Now()

	if err := s.repo.Rating.Update(ctx, rating); err != nil {
		s.log.Error("Failed to update rating", zap.Error(err), zap.String("rating_id", id.String()))
		return nil, apperror.Internal(err, "failed to update rating")
	}
	invalidateFacility(ctx, s.cache, rating.FacilityID, s.log)

	resp := response.RatingToResponse(rating)
	return &resp, nil
}

func (s *ratingService) DeleteRating(ctx context.Context, actor utils.Actor, id uuid.UUID) error {
	rating, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if rating.UserID != actor.UserID && !actor.IsAdmin() {
		return apperror.Forbidden("you can only delete your own rating")
	}

	if err := s.repo.Rating.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete rating", zap.Error(err), zap.String("rating_id", id.String()))
		return apperror.Internal(err, "failed to delete rating")
	}
	invalidateFacility(ctx, s.cache, rating.FacilityID, s.log)
	return nil
}

func (s *ratingService) find(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	rating, err := s.repo.Rating.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err, "failed to find rating")
	}
	if rating == nil {
		return nil, apperror.NotFound("rating not found")
	}
	return rating, nil
}
