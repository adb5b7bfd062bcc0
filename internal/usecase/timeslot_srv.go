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
	"court-booking/pkg/locker"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TimeSlotService interface {
	ListTimeSlots(ctx context.Context, facilityID uuid.UUID) ([]response.TimeSlotResponse, error)
	CreateTimeSlot(ctx context.Context, actor utils.Actor, facilityID uuid.UUID, req *request.TimeSlotRequest) (*response.TimeSlotResponse, error)
	UpdateTimeSlot(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.TimeSlotRequest) (*response.TimeSlotResponse, error)
	DeleteTimeSlot(ctx context.Context, actor utils.Actor, id uuid.UUID) error
}

type timeSlotService struct {
	repo   *repository.Repository
	cache  cache.Cache
	locker locker.Locker
	log    *zap.Logger
}

func NewTimeSlotService(repo *repository.Repository, c cache.Cache, l locker.Locker, log *zap.Logger) TimeSlotService {
	return &timeSlotService{
		repo:   repo,
		cache:  c,
		locker: l,
		log:    log.With(zap.String("service", "timeslot")),
	}
}

func (s *timeSlotService) ListTimeSlots(ctx context.Context, facilityID uuid.UUID) ([]response.TimeSlotResponse, error) {
	slots, err := s.repo.TimeSlot.FindByFacilityID(ctx, facilityID)
	if err != nil {
		s.log.Error("Failed to list time slots", zap.Error(err), zap.String("facility_id", facilityID.String()))
		return nil, apperror.Internal(err, "failed to list time slots")
	}

	result := make([]response.TimeSlotResponse, 0, len(slots))
	for _, t := range slots {
		result = append(result, response.TimeSlotToResponse(t))
	}
	return result, nil
}

func (s *timeSlotService) CreateTimeSlot(ctx context.Context, actor utils.Actor, facilityID uuid.UUID, req *request.TimeSlotRequest) (*response.TimeSlotResponse, error) {
	input, err := s.parse(req)
	if err != nil {
		return nil, err
	}

	release, err := acquire(ctx, s.locker, locker.FacilitySlotsKey(facilityID), s.log)
	if err != nil {
		return nil, err
	}
	defer release()

	facility, err := loadManagedFacility(ctx, s.repo, actor, facilityID, s.log)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	slot := &entity.TimeSlot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FacilityID:   facilityID,
		CourtID:      input.courtID,
		StartTime:    input.start,
		EndTime:      input.end,
		DiscountRate: req.DiscountRate,
		StatusID:     input.status,
	}

	if err := s.check(ctx, facility, slot); err != nil {
		return nil, err
	}

	if err := s.repo.TimeSlot.Create(ctx, slot); err != nil {
		s.log.Error("Failed to create time slot", zap.Error(err), zap.String("facility_id", facilityID.String()))
		return nil, apperror.Internal(err, "failed to create time slot")
	}
	invalidateFacility(ctx, s.cache, facilityID, s.log)

	s.log.Info("Time slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("facility_id", facilityID.String()),
		zap.String("range", utils.ClockString(slot.StartTime)+"-"+utils.ClockString(slot.EndTime)))

	resp := response.TimeSlotToResponse(slot)
	return &resp, nil
}

func (s *timeSlotService) UpdateTimeSlot(ctx context.Context, actor utils.Actor, id uuid.UUID, req *request.TimeSlotRequest) (*response.TimeSlotResponse, error) {
	input, err := s.parse(req)
	if err != nil {
		return nil, err
	}

	slot, err := s.findSlot(ctx, id)
	if err != nil {
		return nil, err
	}

	release, err := acquire(ctx, s.locker, locker.FacilitySlotsKey(slot.FacilityID), s.log)
	if err != nil {
		return nil, err
	}
	defer release()

	facility, err := loadManagedFacility(ctx, s.repo, actor, slot.FacilityID, s.log)
	if err != nil {
		return nil, err
	}

	slot.CourtID = input.courtID
	slot.StartTime = input.start
	slot.EndTime = input.end
	slot.DiscountRate = req.DiscountRate
	if req.StatusID != 0 {
		slot.StatusID = input.status
	}
	slot.UpdatedAt = time.Now()

	if err := s.check(ctx, facility, slot); err != nil {
		return nil, err
	}

	if err := s.repo.TimeSlot.Update(ctx, slot); err != nil {
		s.log.Error("Failed to update time slot", zap.Error(err), zap.String("slot_id", id.String()))
		return nil, apperror.Internal(err, "failed to update time slot")
	}
	invalidateFacility(ctx, s.cache, slot.FacilityID, s.log)

	resp := response.TimeSlotToResponse(slot)
	return &resp, nil
}

func (s *timeSlotService) DeleteTimeSlot(ctx context.Context, actor utils.Actor, id uuid.UUID) error {
	slot, err := s.findSlot(ctx, id)
	if err != nil {
		return err
	}

	if _, err := loadManagedFacility(ctx, s.repo, actor, slot.FacilityID, s.log); err != nil {
		return err
	}

	if err := s.repo.TimeSlot.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete time slot", zap.Error(err), zap.String("slot_id", id.String()))
		return apperror.Internal(err, "failed to delete time slot")
	}
	invalidateFacility(ctx, s.cache, slot.FacilityID, s.log)

	s.log.Info("Time slot deleted", zap.String("slot_id", id.String()))
	return nil
}

type slotInput struct {
	start, end int
	courtID    *uuid.UUID
	status     entity.StatusID
}

func (s *timeSlotService) parse(req *request.TimeSlotRequest) (*slotInput, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	start, ok1 := utils.ParseClock(req.StartTime)
	end, ok2 := utils.ParseClock(req.EndTime)
	if !ok1 || !ok2 {
		return nil, apperror.BadRequest("slot times must be in HH:MM format")
	}
	if start >= end {
		return nil, apperror.BadRequest("start_time must be before end_time")
	}

	input := &slotInput{start: start, end: end, status: entity.StatusActive}
	if req.StatusID != 0 {
		input.status = entity.StatusID(req.StatusID)
	}
	if req.CourtID != nil && *req.CourtID != "" {
		courtID, err := parseID(*req.CourtID, "court")
		if err != nil {
			return nil, err
		}
		input.courtID = &courtID
	}
	return input, nil
}

// check must run while holding the facility slots lock
func (s *timeSlotService) check(ctx context.Context, facility *entity.Facility, slot *entity.TimeSlot) error {
	if !facility.Covers(slot.StartTime, slot.EndTime) {
		return apperror.BadRequest("time slot must be within opening hours %s-%s",
			utils.ClockString(facility.OpenTime), utils.ClockString(facility.CloseTime))
	}

	if slot.CourtID != nil {
		court, err := s.repo.Court.FindByID(ctx, *slot.CourtID)
		if err != nil {
			s.log.Error("Failed to find court", zap.Error(err), zap.String("court_id", slot.CourtID.String()))
			return apperror.Internal(err, "failed to find court")
		}
		if court == nil || court.FacilityID != facility.ID {
			return apperror.BadRequest("court does not belong to this facility")
		}
	}

	// inactive slots never block others
	if slot.StatusID != entity.StatusActive {
		return nil
	}

	existing, err := s.repo.TimeSlot.FindByFacilityID(ctx, facility.ID)
	if err != nil {
		s.log.Error("Failed to load time slots", zap.Error(err), zap.String("facility_id", facility.ID.String()))
		return apperror.Internal(err, "failed to load time slots")
	}

	if clash := entity.FindOverlap(existing, slot.StartTime, slot.EndTime, slot.ID); clash != nil {
		s.log.Info("Time slot overlap rejected",
			zap.String("facility_id", facility.ID.String()),
			zap.String("clashes_with", clash.ID.String()))
		return apperror.Conflict("time slot overlaps existing slot %s-%s",
			utils.ClockString(clash.StartTime), utils.ClockString(clash.EndTime))
	}

	return nil
}

func (s *timeSlotService) findSlot(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error) {
	slot, err := s.repo.TimeSlot.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find time slot", zap.Error(err), zap.String("slot_id", id.String()))
		return nil, apperror.Internal(err, "failed to find time slot")
	}
	if slot == nil {
		return nil, apperror.NotFound("time slot not found")
	}
	return slot, nil
}
