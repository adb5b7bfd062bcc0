package usecase

import (
	"context"
	"net/http"
	"testing"

	"court-booking/internal/data/entity"
	"court-booking/internal/dto/request"
	"court-booking/pkg/apperror"
	"court-booking/pkg/cache"
	"court-booking/pkg/locker"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func slotFixture(t *testing.T) (TimeSlotService, *repoMocks, utils.Actor, *entity.Facility) {
	t.Helper()

	repo, m := newRepoMocks()
	actor := ownerActor()
	facility := &entity.Facility{
		Base:      entity.Base{ID: uuid.New()},
		OwnerID:   actor.UserID,
		OpenTime:  6 * 60,
		CloseTime: 22 * 60,
		StatusID:  entity.StatusActive,
	}
	m.Facility.On("FindByID", mock.Anything, facility.ID).Return(facility, nil)

	existing := []*entity.TimeSlot{
		{Base: entity.Base{ID: uuid.New()}, FacilityID: facility.ID, StartTime: 7 * 60, EndTime: 8 * 60, StatusID: entity.StatusActive},
		{Base: entity.Base{ID: uuid.New()}, FacilityID: facility.ID, StartTime: 10 * 60, EndTime: 11 * 60, StatusID: entity.StatusInactive},
	}
	m.TimeSlot.On("FindByFacilityID", mock.Anything, facility.ID).Return(existing, nil)

	svc := NewTimeSlotService(repo, cache.NewMemory(), locker.NewLocal(), zap.NewNop())
	return svc, m, actor, facility
}

func TestCreateTimeSlotOverlap(t *testing.T) {
	svc, m, actor, facility := slotFixture(t)

	_, err := svc.CreateTimeSlot(context.Background(), actor, facility.ID, &request.TimeSlotRequest{
		StartTime: "07:30",
		EndTime:   "08:30",
	})

	assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
	m.TimeSlot.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTimeSlotAdjacentAllowed(t *testing.T) {
	svc, m, actor, facility := slotFixture(t)
	m.TimeSlot.On("Create", mock.Anything, mock.AnythingOfType("*entity.TimeSlot")).Return(nil)

	resp, err := svc.CreateTimeSlot(context.Background(), actor, facility.ID, &request.TimeSlotRequest{
		StartTime:    "08:00",
		EndTime:      "09:00",
		DiscountRate: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, "08:00", resp.StartTime)
	assert.Equal(t, "09:00", resp.EndTime)
	m.TimeSlot.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*entity.TimeSlot"))
}

func TestCreateTimeSlotInactiveSlotDoesNotBlock(t *testing.T) {
	svc, m, actor, facility := slotFixture(t)
	m.TimeSlot.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreateTimeSlot(context.Background(), actor, facility.ID, &request.TimeSlotRequest{
		StartTime: "10:30",
		EndTime:   "11:30",
	})
	require.NoError(t, err)
}

func TestCreateTimeSlotRejectsBadRanges(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		want       int
	}{
		{"start after end", "09:00", "08:00", http.StatusBadRequest},
		{"empty range", "09:00", "09:00", http.StatusBadRequest},
		{"before opening", "05:00", "06:30", http.StatusBadRequest},
		{"after closing", "21:30", "22:30", http.StatusBadRequest},
		{"not a clock", "9am", "10am", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, m, actor, facility := slotFixture(t)

			_, err := svc.CreateTimeSlot(context.Background(), actor, facility.ID, &request.TimeSlotRequest{
				StartTime: tc.start,
				EndTime:   tc.end,
			})
			assert.Equal(t, tc.want, apperror.CodeOf(err))
			m.TimeSlot.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateTimeSlotForeignOwner(t *testing.T) {
	svc, _, _, facility := slotFixture(t)

	_, err := svc.CreateTimeSlot(context.Background(), ownerActor(), facility.ID, &request.TimeSlotRequest{
		StartTime: "12:00",
		EndTime:   "13:00",
	})
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
}

func TestUpdateTimeSlotIgnoresItself(t *testing.T) {
	svc, m, actor, facility := slotFixture(t)

	slot := &entity.TimeSlot{Base: entity.Base{ID: uuid.New()}, FacilityID: facility.ID, StartTime: 12 * 60, EndTime: 13 * 60, StatusID: entity.StatusActive}
	m.TimeSlot.ExpectedCalls = nil
	m.TimeSlot.On("FindByID", mock.Anything, slot.ID).Return(slot, nil)
	m.TimeSlot.On("FindByFacilityID", mock.Anything, facility.ID).Return([]*entity.TimeSlot{slot}, nil)
	m.TimeSlot.On("Update", mock.Anything, slot).Return(nil)

	resp, err := svc.UpdateTimeSlot(context.Background(), actor, slot.ID, &request.TimeSlotRequest{
		StartTime: "12:30",
		EndTime:   "13:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "12:30", resp.StartTime)
}
