package usecase

import (
	"context"
	"strings"
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

type CourtService interface {
	ListCourts(ctx context.Context, facilityID uuid.UUID) ([]response.CourtResponse, error)
	CreateCourt(ctx context.Context, actor utils.Actor, facilityID uuid.UUID, req *request.CourtRequest) (*response.CourtResponse, error)
	UpdateCourt(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.CourtRequest) (*response.CourtResponse, error)
	DeleteCourt(ctx context.Context, actor utils.Actor, id uuid.UUID) error
}

type courtService struct {
	repo  *repository.Repository
	cache cache.Cache
	log   *zap.Logger
}

func NewCourtService(repo *repository.Repository, c cache.Cache, log *zap.Logger) CourtService {
	return &courtService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "court")),
	}
}

func (s *courtService) ListCourts(ctx context.Context, facilityID uuid.UUID) ([]response.CourtResponse, error) {
	facility, err := s.repo.Facility.FindByID(ctx, facilityID)
	if err != nil {
		s.log.Error("Failed to find facility", zap.Error(err), zap.String("facility_id", facilityID.String()))
		return nil, apperror.Internal(err, "failed to find facility")
	}
	if facility == nil {
		return nil, apperror.NotFound("facility not found")
	}

	courts, err := s.repo.Court.FindByFacilityID(ctx, facilityID, true)
	if err != nil {
		s.log.Error("Failed to list courts", zap.Error(err), zap.String("facility_id", facilityID.String()))
		return nil, apperror.Internal(err, "failed to list courts")
	}

	result := make([]response.CourtResponse, 0, len(courts))
	for _, c := range courts {
		result = append(result, response.CourtToResponse(c))
	}
	return result, nil
}

func (s *courtService) CreateCourt(ctx context.Context, actor utils.Actor, facilityID uuid.UUID, req *request.CourtRequest) (*response.CourtResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	if _, err := loadManagedFacility(ctx, s.repo, actor, facilityID, s.log); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, facilityID, name, uuid.Nil); err != nil {
		return nil, err
	}

	status := entity.StatusActive
	if req.StatusID != 0 {
		status = entity.StatusID(req.StatusID)
	}

	now := time.Now()
	court := &entity.Court{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FacilityID:   facilityID,
		Name:         name,
		Category:     strings.TrimSpace(req.Category),
		PricePerHour: req.PricePerHour,
		Description:  sanitizeOptional(req.Description),
		StatusID:     status,
	}

	if err := s.repo.Court.Create(ctx, court); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Conflict("court %q already exists in this facility", name)
		}
		s.log.Error("Failed to create court", zap.Error(err), zap.String("facility_id", facilityID.String()))
		return nil, apperror.Internal(err, "failed to create court")
	}
	invalidateFacility(ctx, s.cache, facilityID, s.log)

	s.log.Info("Court created", zap.String("court_id", court.ID.String()), zap.String("facility_id", facilityID.String()))

	resp := response.CourtToResponse(court)
	return &resp, nil
}

func (s *courtService) UpdateCourt(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.CourtRequest) (*response.CourtResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	court, err := s.findManagedCourt(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if !strings.EqualFold(name, court.Name) {
		if err := s.ensureNameFree(ctx, court.FacilityID, name, court.ID); err != nil {
			return nil, err
		}
	}

	court.Name = name
	court.Category = strings.TrimSpace(req.Category)
	court.PricePerHour = req.PricePerHour
	court.Description = sanitizeOptional(req.Description)
	if req.StatusID != 0 {
		court.StatusID = entity.StatusID(req.StatusID)
	}
	court.UpdatedAt = time.Now()

	if err := s.repo.Court.Update(ctx, court); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Conflict("court %q already exists in this facility", name)
		}
		s.log.Error("Failed to update court", zap.Error(err), zap.String("court_id", id.String()))
		return nil, apperror.Internal(err, "failed to update court")
	}
	invalidateFacility(ctx, s.cache, court.FacilityID, s.log)

	resp := response.CourtToResponse(court)
	return &resp, nil
}

func (s *courtService) DeleteCourt(ctx context.Context, actor utils.Actor, id uuid.UUID) error {
	court, err := s.findManagedCourt(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.repo.Court.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete court", zap.Error(err), zap.String("court_id", id.String()))
		return apperror.Internal(err, "failed to delete court")
	}
	invalidateFacility(ctx, s.cache, court.FacilityID, s.log)

	s.log.Info("Court deleted", zap.String("court_id", id.String()))
	return nil
}

func (s *courtService) findManagedCourt(ctx context.Context, actor utils.Actor, id uuid.UUID) (*entity.Court, error) {
	court, err := s.repo.Court.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find court", zap.Error(err), zap.String("court_id", id.String()))
		return nil, apperror.Internal(err, "failed to find court")
	}
	if court == nil {
		return nil, apperror.NotFound("court not found")
	}

	if _, err := loadManagedFacility(ctx, s.repo, actor, court.FacilityID, s.log); err != nil {
		return nil, err
	}
	return court, nil
}

func (s *courtService) ensureNameFree(ctx context.Context, facilityID uuid.UUID, name string, excludeID uuid.UUID) error {
	exists, err := s.repo.Court.ExistsByName(ctx, facilityID, name, excludeID)
	if err != nil {
		s.log.Error("Failed to check court name", zap.Error(err), zap.String("facility_id", facilityID.String()))
		return apperror.Internal(err, "failed to check court name")
	}
	if exists {
		return apperror.Conflict("court %q already exists in this facility", name)
	}
	return nil
}
