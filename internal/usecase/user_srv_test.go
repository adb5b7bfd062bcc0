package usecase

import (
	"context"
	"net/http"
	"testing"

	"court-booking/internal/data/entity"
	"court-booking/pkg/apperror"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBanUser(t *testing.T) {
	admin := utils.Actor{UserID: uuid.New(), Role: "admin"}

	t.Run("already banned", func(t *testing.T) {
		repo, m := newRepoMocks()
		id := uuid.New()
		m.User.On("FindByID", mock.Anything, id).
			Return(&entity.User{Base: entity.Base{ID: id}, Role: entity.RoleCustomer, StatusID: entity.StatusBanned}, nil)

		err := NewUserService(repo, zap.NewNop()).BanUser(context.Background(), admin, id)
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
		m.User.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin cannot be banned", func(t *testing.T) {
		repo, m := newRepoMocks()
		id := uuid.New()
		m.User.On("FindByID", mock.Anything, id).
			Return(&entity.User{Base: entity.Base{ID: id}, Role: entity.RoleAdmin, StatusID: entity.StatusActive}, nil)

		err := NewUserService(repo, zap.NewNop()).BanUser(context.Background(), admin, id)
		assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
	})

	t.Run("ban revokes sessions", func(t *testing.T) {
		repo, m := newRepoMocks()
		id := uuid.New()
		m.User.On("FindByID", mock.Anything, id).
			Return(&entity.User{Base: entity.Base{ID: id}, Role: entity.RoleOwner, StatusID: entity.StatusActive}, nil)
		m.User.On("UpdateStatus", mock.Anything, id, entity.StatusBanned).Return(nil)
		m.Session.On("RevokeAllUserSessions", mock.Anything, id).Return(nil)

		err := NewUserService(repo, zap.NewNop()).BanUser(context.Background(), admin, id)
		require.NoError(t, err)
		m.Session.AssertExpectations(t)
	})
}

func TestUnbanUserNotBanned(t *testing.T) {
	repo, m := newRepoMocks()
	id := uuid.New()
	m.User.On("FindByID", mock.Anything, id).
		Return(&entity.User{Base: entity.Base{ID: id}, StatusID: entity.StatusActive}, nil)

	err := NewUserService(repo, zap.NewNop()).UnbanUser(context.Background(), id)
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
}
