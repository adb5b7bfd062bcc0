package usecase

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"court-booking/internal/data/entity"
	"court-booking/internal/dto/request"
	"court-booking/pkg/apperror"
	"court-booking/pkg/cache"
	"court-booking/pkg/locker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingLocker struct {
	locker.Locker
	acquired atomic.Int32
}

func (l *countingLocker) Acquire(ctx context.Context, key string) (locker.Release, error) {
	l.acquired.Add(1)
	return l.Locker.Acquire(ctx, key)
}

func facilityFixture(t *testing.T) (FacilityService, *repoMocks, *countingLocker, *entity.Facility) {
	t.Helper()

	repo, m := newRepoMocks()
	facility := &entity.Facility{
		Base:      entity.Base{ID: uuid.New()},
		OwnerID:   uuid.New(),
		Name:      "Sân Cầu Lông Quận 7",
		OpenTime:  6 * 60,
		CloseTime: 22 * 60,
		StatusID:  entity.StatusActive,
	}
	m.Facility.On("FindByID", mock.Anything, facility.ID).Return(facility, nil)

	l := &countingLocker{Locker: locker.NewLocal()}
	return NewFacilityService(repo, cache.NewMemory(), l, nil, zap.NewNop()), m, l, facility
}

func facilityRequest(openAt, closeAt string) *request.FacilityRequest {
	return &request.FacilityRequest{Name: "Sân Cầu Lông Quận 7", Address: "12 Nguyễn Thị Thập", OpenTime: openAt, CloseTime: closeAt}
}

func TestUpdateFacilityForeignOwner(t *testing.T) {
	svc, m, l, facility := facilityFixture(t)

	_, err := svc.UpdateFacility(context.Background(), ownerActor(), facility.ID, facilityRequest("06:00", "22:00"))

	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
	assert.Zero(t, l.acquired.Load())
	m.Facility.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateFacilityByAdmin(t *testing.T) {
	svc, m, l, facility := facilityFixture(t)
	m.TimeSlot.On("FindByFacilityID", mock.Anything, facility.ID).Return([]*entity.TimeSlot{}, nil)
	m.Facility.On("Update", mock.Anything, facility).Return(nil)

	resp, err := svc.UpdateFacility(context.Background(), adminActor(), facility.ID, facilityRequest("05:30", "23:00"))
	require.NoError(t, err)

	assert.Equal(t, "05:30", resp.OpenTime)
	assert.Equal(t, int32(1), l.acquired.Load())
}

func TestUpdateFacilityHoursCutActiveSlot(t *testing.T) {
	svc, m, _, facility := facilityFixture(t)
	m.TimeSlot.On("FindByFacilityID", mock.Anything, facility.ID).Return([]*entity.TimeSlot{
		{FacilityID: facility.ID, StartTime: 21 * 60, EndTime: 22 * 60, StatusID: entity.StatusActive},
	}, nil)

	owner := ownerActor()
	owner.UserID = facility.OwnerID
	_, err := svc.UpdateFacility(context.Background(), owner, facility.ID, facilityRequest("06:00", "21:30"))

	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	m.Facility.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
