package usecase

import (
	"context"
	"errors"
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

// Opening hours, slot times and booking dates are all Vietnam local time
var vietnamTime = time.FixedZone("ICT", 7*60*60)

const dateLayout = "2006-01-02"

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperror.Validation(errs)
	}
	return nil
}

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(raw)
	if err != nil {
		return uuid.Nil, apperror.BadRequest("invalid %s id", what)
	}
	return id, nil
}

// parseDate reads YYYY-MM-DD and returns midnight UTC of that calendar day, the form DATE columns round-trip
func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, apperror.BadRequest("date must be in YYYY-MM-DD format")
	}
	return d, nil
}

func today(now time.Time) time.Time {
	y, m, d := now.In(vietnamTime).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pageOf(req request.PaginatedRequest) (limit, offset int) {
	return req.Limit(), req.Offset()
}

func paginate[E any, R any](items []E, convert func(E) R, req request.PaginatedRequest, total int64) *response.PaginatedResponse[R] {
	data := make([]R, 0, len(items))
	for _, item := range items {
		data = append(data, convert(item))
	}
	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total)
}

// acquire maps locker failures onto API errors
func acquire(ctx context.Context, l locker.Locker, key string, log *zap.Logger) (locker.Release, error) {
	release, err := l.Acquire(ctx, key)
	if err == nil {
		return release, nil
	}
	if errors.Is(err, locker.ErrNotAcquired) || errors.Is(err, context.DeadlineExceeded) {
		log.Warn("Lock busy", zap.String("key", key), zap.Error(err))
		return nil, apperror.Conflict("another change to this resource is in progress, please retry")
	}
	log.Error("Failed to acquire lock", zap.String("key", key), zap.Error(err))
	return nil, apperror.Internal(err, "failed to acquire lock")
}

// loadManagedFacility returns the facility when actor owns it or is an admin
func loadManagedFacility(ctx context.Context, repo *repository.Repository, actor utils.Actor, id uuid.UUID, log *zap.Logger) (*entity.Facility, error) {
	facility, err := repo.Facility.FindByID(ctx, id)
	if err != nil {
		log.Error("Failed to find facility", zap.Error(err), zap.String("facility_id", id.String()))
		return nil, apperror.Internal(err, "failed to find facility")
	}
	if facility == nil {
		return nil, apperror.NotFound("facility not found")
	}
	if !actor.IsAdmin() && facility.OwnerID != actor.UserID {
		log.Warn("Facility access denied",
			zap.String("facility_id", id.String()),
			zap.String("user_id", actor.UserID.String()))
		return nil, apperror.Forbidden("you do not manage this facility")
	}
	return facility, nil
}

// ==================== FACILITY DETAIL CACHE ====================

const facilityCacheTTL = 5 * time.Minute

func facilityCacheKey(id uuid.UUID) string {
	return "facility:" + id.String()
}

func invalidateFacility(ctx context.Context, c cache.Cache, id uuid.UUID, log *zap.Logger) {
	if err := c.Delete(ctx, facilityCacheKey(id)); err != nil {
		log.Warn("Failed to invalidate facility cache", zap.Error(err), zap.String("facility_id", id.String()))
	}
}
