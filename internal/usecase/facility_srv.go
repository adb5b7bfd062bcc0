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
	"court-booking/pkg/locker"
	"court-booking/pkg/media"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FacilityService interface {
	ListFacilities(ctx context.Context, req *request.FacilityListRequest) (*response.PaginatedResponse[response.FacilityResponse], error)
	GetFacility(ctx context.Context, id uuid.UUID) (*response.FacilityDetailResponse, error)

	// Owner
	ListMyFacilities(ctx context.Context, actor utils.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FacilityResponse], error)
	CreateFacility(ctx context.Context, actor utils.Actor, req *request.FacilityRequest) (*response.FacilityResponse, error)
	UpdateFacility(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.FacilityRequest) (*response.FacilityResponse, error)
	DeleteFacility(ctx context.Context, actor utils.Actor, id uuid.UUID) error
	UploadImage(ctx context.Context, actor utils.Actor, id uuid.UUID, file io.Reader) (*response.UploadResponse, error)

	// Admin
	UpdateStatus(ctx context.Context, id uuid.UUID, req *request.FacilityStatusRequest) error
}

type facilityService struct {
	repo   *repository.Repository
	cache  cache.Cache
	locker locker.Locker
	media  *media.Store
	log    *zap.Logger
}

func NewFacilityService(repo *repository.Repository, c cache.Cache, l locker.Locker, store *media.Store, log *zap.Logger) FacilityService {
	return &facilityService{
		repo:   repo,
		cache:  c,
		locker: l,
		media:  store,
		log:    log.With(zap.String("service", "facility")),
	}
}

func (s *facilityService) ListFacilities(ctx context.Context, req *request.FacilityListRequest) (*response.PaginatedResponse[response.FacilityResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	filter := entity.FacilityFilter{
		Keyword:    strings.TrimSpace(req.Keyword),
		City:       strings.TrimSpace(req.City),
		District:   strings.TrimSpace(req.District),
		ActiveOnly: true,
	}
	return s.list(ctx, filter, req.PaginatedRequest)
}

func (s *facilityService) ListMyFacilities(ctx context.Context, actor utils.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FacilityResponse], error) {
	filter := entity.FacilityFilter{OwnerID: &actor.UserID}
	return s.list(ctx, filter, *req)
}

func (s *facilityService) list(ctx context.Context, filter entity.FacilityFilter, page request.PaginatedRequest) (*response.PaginatedResponse[response.FacilityResponse], error) {
	limit, offset := pageOf(page)

	facilities, err := s.repo.Facility.FindAll(ctx, filter, limit, offset)
	if err != nil {
		s.log.Error("Failed to list facilities", zap.Error(err))
		return nil, apperror.Internal(err, "failed to list facilities")
	}

	total, err := s.repo.Facility.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count facilities", zap.Error(err))
		return nil, apperror.Internal(err, "failed to list facilities")
	}

	return paginate(facilities, func(f *entity.Facility) response.FacilityResponse { return response.FacilityToResponse(f) }, page, total), nil
}

// GetFacility serves the public detail page from cache when possible
func (s *facilityService) GetFacility(ctx context.Context, id uuid.UUID) (*response.FacilityDetailResponse, error) {
	var cached response.FacilityDetailResponse
	if ok, err := s.cache.Get(ctx, facilityCacheKey(id), &cached); err != nil {
		s.log.Warn("Facility cache read failed", zap.Error(err), zap.String("facility_id", id.String()))
	} else if ok {
		return &cached, nil
	}

	facility, err := s.repo.Facility.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find facility", zap.Error(err), zap.String("facility_id", id.String()))
		return nil, apperror.Internal(err, "failed to find facility")
	}
	if facility == nil || facility.StatusID != entity.StatusActive {
		return nil, apperror.NotFound("facility not found")
	}

	courts, err := s.repo.Court.FindByFacilityID(ctx, id, true)
	if err != nil {
		s.log.Error("Failed to load courts", zap.Error(err), zap.String("facility_id", id.String()))
		return nil, apperror.Internal(err, "failed to load courts")
	}

	slots, err := s.repo.TimeSlot.FindByFacilityID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load time slots", zap.Error(err), zap.String("facility_id", id.String()))
		return nil, apperror.Internal(err, "failed to load time slots")
	}

	stats, err := s.repo.Rating.Stats(ctx, id)
	if err != nil {
		s.log.Error("Failed to load rating stats", zap.Error(err), zap.String("facility_id", id.String()))
		return nil, apperror.Internal(err, "failed to load ratings")
	}
	if stats != nil {
		facility.AvgRating = stats.Average
		facility.RatingCount = stats.Count
	}

	detail := &response.FacilityDetailResponse{
		FacilityResponse: response.FacilityToResponse(facility),
		Courts:           make([]response.CourtResponse, 0, len(courts)),
		TimeSlots:        make([]response.TimeSlotResponse, 0, len(slots)),
		RatingStats:      response.RatingStatsToResponse(stats),
	}
	for _, c := range courts {
		detail.Courts = append(detail.Courts, response.CourtToResponse(c))
	}
	for _, t := range slots {
		if t.StatusID == entity.StatusActive {
			detail.TimeSlots = append(detail.TimeSlots, response.TimeSlotToResponse(t))
		}
	}

	if err := s.cache.Set(ctx, facilityCacheKey(id), detail, facilityCacheTTL); err != nil {
		s.log.Warn("Facility cache write failed", zap.Error(err), zap.String("facility_id", id.String()))
	}

	return detail, nil
}

func (s *facilityService) CreateFacility(ctx context.Context, actor utils.Actor, req *request.FacilityRequest) (*response.FacilityResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	openAt, closeAt, err := openingHours(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	facility := &entity.Facility{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:     actor.UserID,
		Name:        strings.TrimSpace(req.Name),
		Address:     strings.TrimSpace(req.Address),
		District:    req.District,
		City:        req.City,
		Description: sanitizeOptional(req.Description),
		Phone:       req.Phone,
		OpenTime:    openAt,
		CloseTime:   closeAt,
		StatusID:    entity.StatusActive,
	}

	if err := s.repo.Facility.Create(ctx, facility); err != nil {
		s.log.Error("Failed to create facility", zap.Error(err), zap.String("owner_id", actor.UserID.String()))
		return nil, apperror.Internal(err, "failed to create facility")
	}

	s.log.Info("Facility created",
		zap.String("facility_id", facility.ID.String()),
		zap.String("owner_id", actor.UserID.String()))

	resp := response.FacilityToResponse(facility)
	return &resp, nil
}

func (s *facilityService) UpdateFacility(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.FacilityRequest) (*response.FacilityResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	openAt, closeAt, err := openingHours(req)
	if err != nil {
		return nil, err
	}

	if _, err := loadManagedFacility(ctx, s.repo, actor, id, s.log); err != nil {
		return nil, err
	}

	// opening hours bound the slots, so this must not interleave with slot edits
	release, err := acquire(ctx, s.locker, locker.FacilitySlotsKey(id), s.log)
	if err != nil {
		return nil, err
	}
	defer release()

	facility, err := loadManagedFacility(ctx, s.repo, actor, id, s.log)
	if err != nil {
		return nil, err
	}

	slots, err := s.repo.TimeSlot.FindByFacilityID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load time slots", zap.Error(err), zap.String("facility_id", id.String()))
		return nil, apperror.Internal(err, "failed to load time slots")
	}
	for _, slot := range slots {
		if slot.StatusID == entity.StatusActive && (slot.StartTime < openAt || slot.EndTime > closeAt) {
			return nil, apperror.BadRequest("time slot %s-%s falls outside the new opening hours",
				utils.ClockString(slot.StartTime), utils.ClockString(slot.EndTime))
		}
	}

	facility.Name = strings.TrimSpace(req.Name)
	facility.Address = strings.TrimSpace(req.Address)
	facility.District = req.District
	facility.City = req.City
	facility.Description = sanitizeOptional(req.Description)
	facility.Phone = req.Phone
	facility.OpenTime = openAt
	facility.CloseTime = closeAt
	facility.UpdatedAt = time.Now()

	if err := s.repo.Facility.Update(ctx, facility); err != nil {
		s.log.Error("Failed to update facility", zap.Error(err), zap.String("facility_id", id.String()))
		return nil, apperror.Internal(err, "failed to update facility")
	}
	invalidateFacility(ctx, s.cache, id, s.log)

	resp := response.FacilityToResponse(facility)
	return &resp, nil
}

func (s *facilityService) DeleteFacility(ctx context.Context, actor utils.Actor, id uuid.UUID) error {
	if _, err := loadManagedFacility(ctx, s.repo, actor, id, s.log); err != nil {
		return err
	}

	if err := s.repo.Facility.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete facility", zap.Error(err), zap.String("facility_id", id.String()))
		return apperror.Internal(err, "failed to delete facility")
	}
	invalidateFacility(ctx, s.cache, id, s.log)

	s.log.Info("Facility deleted", zap.String("facility_id", id.String()), zap.String("by", actor.UserID.String()))
	return nil
}

func (s *facilityService) UploadImage(ctx context.Context, actor utils.Actor, id uuid.UUID, file io.Reader) (*response.UploadResponse, error) {
	if _, err := loadManagedFacility(ctx, s.repo, actor, id, s.log); err != nil {
		return nil, err
	}

	url, err := s.media.SaveImage(file, "facilities", 1600, 1200)
	if err != nil {
		if errors.Is(err, media.ErrInvalidImage) {
			return nil, apperror.BadRequest("file must be a JPEG, PNG or GIF image")
		}
		s.log.Error("Failed to store facility image", zap.Error(err), zap.String("facility_id", id.String()))
		return nil, apperror.Internal(err, "failed to store image")
	}

	if err := s.repo.Facility.UpdateImage(ctx, id, url); err != nil {
		s.log.Error("Failed to update facility image", zap.Error(err), zap.String("facility_id", id.String()))
		return nil, apperror.Internal(err, "failed to update facility image")
	}
	invalidateFacility(ctx, s.cache, id, s.log)

	return &response.UploadResponse{URL: url}, nil
}

func (s *facilityService) UpdateStatus(ctx context.Context, id uuid.UUID, req *request.FacilityStatusRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	facility, err := s.repo.Facility.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find facility", zap.Error(err), zap.String("facility_id", id.String()))
		return apperror.Internal(err, "failed to find facility")
	}
	if facility == nil {
		return apperror.NotFound("facility not found")
	}

	status := entity.StatusID(req.StatusID)
	if facility.StatusID == status {
		return apperror.BadRequest("facility is already %s", status)
	}

	if err := s.repo.Facility.UpdateStatus(ctx, id, status); err != nil {
		s.log.Error("Failed to update facility status", zap.Error(err), zap.String("facility_id", id.String()))
		return apperror.Internal(err, "failed to update facility status")
	}
	invalidateFacility(ctx, s.cache, id, s.log)

	s.log.Info("Facility status changed",
		zap.String("facility_id", id.String()),
		zap.String("status", status.String()))
	return nil
}

func openingHours(req *request.FacilityRequest) (int, int, error) {
	openAt, ok1 := utils.ParseClock(req.OpenTime)
	closeAt, ok2 := utils.ParseClock(req.CloseTime)
	if !ok1 || !ok2 {
		return 0, 0, apperror.BadRequest("opening hours must be in HH:MM format")
	}
	if openAt >= closeAt {
		return 0, 0, apperror.BadRequest("open_time must be before close_time")
	}
	return openAt, closeAt, nil
}

func sanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	clean := utils.StripHTML(*s)
	if clean == "" {
		return nil
	}
	return &clean
}
