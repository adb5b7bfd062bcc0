package usecase

import (
	"context"
	"net/http"
	"testing"

	"court-booking/internal/data/entity"
	"court-booking/internal/dto/request"
	"court-booking/pkg/apperror"
	"court-booking/pkg/cache"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func courtRequest(name string) *request.CourtRequest {
	return &request.CourtRequest{Name: name, Category: "badminton", PricePerHour: 120000}
}

func TestCreateCourt(t *testing.T) {
	repo, m := newRepoMocks()
	actor := ownerActor()
	facility := &entity.Facility{Base: entity.Base{ID: uuid.New()}, OwnerID: actor.UserID}
	m.Facility.On("FindByID", mock.Anything, facility.ID).Return(facility, nil)
	m.Court.On("ExistsByName", mock.Anything, facility.ID, "San 3", uuid.Nil).Return(false, nil)
	m.Court.On("Create", mock.Anything, mock.AnythingOfType("*entity.Court")).Return(nil)

	svc := NewCourtService(repo, cache.NewMemory(), zap.NewNop())
	resp, err := svc.CreateCourt(context.Background(), actor, facility.ID, courtRequest("  San 3 "))
	require.NoError(t, err)
	assert.Equal(t, "San 3", resp.Name)
}

func TestCreateCourtDuplicateName(t *testing.T) {
	repo, m := newRepoMocks()
	actor := ownerActor()
	facility := &entity.Facility{Base: entity.Base{ID: uuid.New()}, OwnerID: actor.UserID}
	m.Facility.On("FindByID", mock.Anything, facility.ID).Return(facility, nil)
	m.Court.On("ExistsByName", mock.Anything, facility.ID, "San 1", uuid.Nil).Return(true, nil)

	svc := NewCourtService(repo, cache.NewMemory(), zap.NewNop())
	_, err := svc.CreateCourt(context.Background(), actor, facility.ID, courtRequest("San 1"))

	assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
	m.Court.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCourtNameTakenConcurrently(t *testing.T) {
	repo, m := newRepoMocks()
	actor := ownerActor()
	facility := &entity.Facility{Base: entity.Base{ID: uuid.New()}, OwnerID: actor.UserID}
	m.Facility.On("FindByID", mock.Anything, facility.ID).Return(facility, nil)
	m.Court.On("ExistsByName", mock.Anything, facility.ID, "San 1", uuid.Nil).Return(false, nil)
	m.Court.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

	svc := NewCourtService(repo, cache.NewMemory(), zap.NewNop())
	_, err := svc.CreateCourt(context.Background(), actor, facility.ID, courtRequest("San 1"))
	assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
}

func TestCreateCourtForeignOwner(t *testing.T) {
	repo, m := newRepoMocks()
	facility := &entity.Facility{Base: entity.Base{ID: uuid.New()}, OwnerID: uuid.New()}
	m.Facility.On("FindByID", mock.Anything, facility.ID).Return(facility, nil)

	svc := NewCourtService(repo, cache.NewMemory(), zap.NewNop())
	_, err := svc.CreateCourt(context.Background(), ownerActor(), facility.ID, courtRequest("San 1"))

	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
	m.Court.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
