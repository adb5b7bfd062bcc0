package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/pkg/apperror"
	"court-booking/pkg/cache"
	"court-booking/pkg/media"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	activeSlidersKey = "sliders:active"
	sliderCacheTTL   = 10 * time.Minute
)

type SliderService interface {
	ListActive(ctx context.Context) ([]response.SliderResponse, error)

	// Admin
	ListAll(ctx context.Context) ([]response.SliderResponse, error)
	Create(ctx context.Context, req *request.SliderRequest) (*response.SliderResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.SliderRequest) (*response.SliderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, file io.Reader) (*response.UploadResponse, error)
}

type sliderService struct {
	repo  *repository.Repository
	cache cache.Cache
	media *media.Store
	log   *zap.Logger
}

func NewSliderService(repo *repository.Repository, c cache.Cache, store *media.Store, log *zap.Logger) SliderService {
	return &sliderService{
		repo:  repo,
		cache: c,
		media: store,
		log:   log.With(zap.String("service", "slider")),
	}
}

func (s *sliderService) ListActive(ctx context.Context) ([]response.SliderResponse, error) {
	var cached []response.SliderResponse
	if hit, err := s.cache.Get(ctx, activeSlidersKey, &cached); err != nil {
		s.log.Warn("Slider cache read failed", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	result, err := s.list(ctx, true)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, activeSlidersKey, result, sliderCacheTTL); err != nil {
		s.log.Warn("Slider cache write failed", zap.Error(err))
	}
	return result, nil
}

func (s *sliderService) ListAll(ctx context.Context) ([]response.SliderResponse, error) {
	return s.list(ctx, false)
}

func (s *sliderService) Create(ctx context.Context, req *request.SliderRequest) (*response.SliderResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	slider := &entity.Slider{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		StatusID: entity.StatusActive,
	}
	applySlider(slider, req)

	if err := s.repo.Slider.Create(ctx, slider); err != nil {
		s.log.Error("Failed to create slider", zap.Error(err))
		return nil, apperror.Internal(err, "failed to create slider")
	}
	s.invalidate(ctx)

	resp := response.SliderToResponse(slider)
	return &resp, nil
}

func (s *sliderService) Update(ctx context.Context, id uuid.UUID, req *request.SliderRequest) (*response.SliderResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	slider, err := s.repo.Slider.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err, "failed to find slider")
	}
	if slider == nil {
		return nil, apperror.NotFound("slider not found")
	}

	applySlider(slider, req)
	slider.UpdatedAt = time.Now()

	if err := s.repo.Slider.Update(ctx, slider); err != nil {
		s.log.Error("Failed to update slider", zap.Error(err), zap.String("slider_id", id.String()))
		return nil, apperror.Internal(err, "failed to update slider")
	}
	s.invalidate(ctx)

	resp := response.SliderToResponse(slider)
	return &resp, nil
}

func (s *sliderService) Delete(ctx context.Context, id uuid.UUID) error {
	slider, err := s.repo.Slider.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal(err, "failed to find slider")
	}
	if slider == nil {
		return apperror.NotFound("slider not found")
	}

	if err := s.repo.Slider.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete slider", zap.Error(err), zap.String("slider_id", id.String()))
		return apperror.Internal(err, "failed to delete slider")
	}
	s.invalidate(ctx)
	return nil
}

func (s *sliderService) UploadImage(ctx context.Context, file io.Reader) (*response.UploadResponse, error) {
	url, err := s.media.SaveImage(file, "sliders", 1920, 800)
	if err != nil {
		if errors.Is(err, media.ErrInvalidImage) {
			return nil, apperror.BadRequest("file is not a supported image")
		}
		s.log.Error("Failed to store slider image", zap.Error(err))
		return nil, apperror.Internal(err, "failed to store image")
	}
	return &response.UploadResponse{URL: url}, nil
}

func (s *sliderService) list(ctx context.Context, activeOnly bool) ([]response.SliderResponse, error) {
	sliders, err := s.repo.Slider.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list sliders")
	}

	result := make([]response.SliderResponse, 0, len(sliders))
	for _, sl := range sliders {
		result = append(result, response.SliderToResponse(sl))
	}
	return result, nil
}

func (s *sliderService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, activeSlidersKey); err != nil {
		s.log.Warn("Failed to invalidate slider cache", zap.Error(err))
	}
}

func applySlider(slider *entity.Slider, req *request.SliderRequest) {
	slider.Title = strings.TrimSpace(req.Title)
	slider.ImageURL = strings.TrimSpace(req.ImageURL)
	slider.LinkURL = req.LinkURL
	slider.DisplayOrder = req.DisplayOrder
	if req.StatusID != 0 {
		slider.StatusID = entity.StatusID(req.StatusID)
	}
}
