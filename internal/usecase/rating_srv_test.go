package usecase

import (
	"context"
	"fmt"
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

func ratingFixture(t *testing.T) (RatingService, *repoMocks, *entity.Facility) {
	t.Helper()

	repo, m := newRepoMocks()
	facility := &entity.Facility{Base: entity.Base{ID: uuid.New()}, OwnerID: uuid.New(), StatusID: entity.StatusActive}
	m.Facility.On("FindByID", mock.Anything, facility.ID).Return(facility, nil)

	return NewRatingService(repo, cache.NewMemory(), zap.NewNop()), m, facility
}

func TestCreateRating(t *testing.T) {
	svc, m, facility := ratingFixture(t)
	actor := customerActor()
	bookingID := uuid.New()
	review := "<script>x</script>Good lights"

	m.Booking.On("FindEligibleForRating", mock.Anything, actor.UserID, facility.ID).Return(&bookingID, nil)
	m.Rating.On("FindByFacilityAndUser", mock.Anything, facility.ID, actor.UserID).Return(nil, nil)
	m.Rating.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.Rating) bool {
		return r.Stars == 4 && *r.BookingID == bookingID && *r.Review == "Good lights"
	})).Return(nil)

	_, err := svc.CreateRating(context.Background(), actor, facility.ID, &request.RatingRequest{Stars: 4, Review: &review})
	require.NoError(t, err)
	m.Rating.AssertNumberOfCalls(t, "Create", 1)
}

func TestCreateRatingWithoutPlayedBooking(t *testing.T) {
	svc, m, facility := ratingFixture(t)
	actor := customerActor()
	m.Booking.On("FindEligibleForRating", mock.Anything, actor.UserID, facility.ID).Return(nil, nil)

	_, err := svc.CreateRating(context.Background(), actor, facility.ID, &request.RatingRequest{Stars: 5})

	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
	m.Rating.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRatingDuplicate(t *testing.T) {
	t.Run("already rated", func(t *testing.T) {
		svc, m, facility := ratingFixture(t)
		actor := customerActor()
		bookingID := uuid.New()
		m.Booking.On("FindEligibleForRating", mock.Anything, actor.UserID, facility.ID).Return(&bookingID, nil)
		m.Rating.On("FindByFacilityAndUser", mock.Anything, facility.ID, actor.UserID).
			Return(&entity.Rating{FacilityID: facility.ID, UserID: actor.UserID, Stars: 3}, nil)

		_, err := svc.CreateRating(context.Background(), actor, facility.ID, &request.RatingRequest{Stars: 5})

		assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
		m.Rating.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lost race on unique index", func(t *testing.T) {
		svc, m, facility := ratingFixture(t)
		actor := customerActor()
		bookingID := uuid.New()
		m.Booking.On("FindEligibleForRating", mock.Anything, actor.UserID, facility.ID).Return(&bookingID, nil)
		m.Rating.On("FindByFacilityAndUser", mock.Anything, facility.ID, actor.UserID).Return(nil, nil)
		m.Rating.On("Create", mock.Anything, mock.Anything).
			Return(fmt.Errorf("insert rating: %w", &pgconn.PgError{Code: "23505"}))

		_, err := svc.CreateRating(context.Background(), actor, facility.ID, &request.RatingRequest{Stars: 5})
		assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
	})
}

func TestCreateRatingStarsOutOfRange(t *testing.T) {
	svc, m, facility := ratingFixture(t)

	_, err := svc.CreateRating(context.Background(), customerActor(), facility.ID, &request.RatingRequest{Stars: 6})

	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	m.Booking.AssertNotCalled(t, "FindEligibleForRating", mock.Anything, mock.Anything, mock.Anything)
}
