package usecase

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"court-booking/internal/data/entity"
	"court-booking/internal/dto/request"
	"court-booking/pkg/apperror"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func registerRequest() *request.RegisterRequest {
	return &request.RegisterRequest{
		FullName: "Nguyen Van A",
		Email:    "Player@Example.com",
		Password: "correct-horse",
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Run("found before insert", func(t *testing.T) {
		repo, m := newRepoMocks()
		m.User.On("FindByEmail", mock.Anything, "player@example.com").
			Return(&entity.User{Base: entity.Base{ID: uuid.New()}, Email: "player@example.com"}, nil)

		svc := NewAuthService(repo, nil, nil, &utils.Config{}, zap.NewNop())
		_, err := svc.Register(context.Background(), registerRequest(), ClientMeta{})

		assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
		m.User.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lost race on unique email", func(t *testing.T) {
		repo, m := newRepoMocks()
		m.User.On("FindByEmail", mock.Anything, "player@example.com").Return(nil, nil)
		m.User.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
			Return(fmt.Errorf("create user: %w", &pgconn.PgError{Code: "23505"}))

		svc := NewAuthService(repo, nil, nil, &utils.Config{}, zap.NewNop())
		_, err := svc.Register(context.Background(), registerRequest(), ClientMeta{})

		assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
		m.Session.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestResetPasswordRevokesSessions(t *testing.T) {
	repo, m := newRepoMocks()
	userID := uuid.New()
	otp := &entity.OTP{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: userID, Email: "player@example.com"}

	m.OTP.On("FindValidOTP", mock.Anything, "player@example.com", "123456", entity.OTPTypePasswordReset).Return(otp, nil)
	m.OTP.On("MarkAsUsed", mock.Anything, otp.ID).Return(true, nil)
	m.User.On("UpdatePassword", mock.Anything, userID, mock.MatchedBy(func(hash string) bool {
		return utils.CheckPasswordHash("new-password-1", hash)
	})).Return(nil)
	m.Session.On("RevokeAllUserSessions", mock.Anything, userID).Return(nil)

	svc := NewAuthService(repo, nil, nil, &utils.Config{}, zap.NewNop())
	err := svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Email:       "player@example.com",
		OTP:         "123456",
		NewPassword: "new-password-1",
	})

	require.NoError(t, err)
	m.User.AssertExpectations(t)
	m.Session.AssertExpectations(t)
}

func TestResetPasswordUsedOTP(t *testing.T) {
	repo, m := newRepoMocks()
	otp := &entity.OTP{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: uuid.New()}

	m.OTP.On("FindValidOTP", mock.Anything, "player@example.com", "123456", entity.OTPTypePasswordReset).Return(otp, nil)
	m.OTP.On("MarkAsUsed", mock.Anything, otp.ID).Return(false, nil)

	svc := NewAuthService(repo, nil, nil, &utils.Config{}, zap.NewNop())
	err := svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Email:       "player@example.com",
		OTP:         "123456",
		NewPassword: "new-password-1",
	})

	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	m.Session.AssertNotCalled(t, "RevokeAllUserSessions", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)

	cases := []struct {
		name     string
		user     *entity.User
		password string
		want     int
	}{
		{"unknown email", nil, "correct-horse", http.StatusUnauthorized},
		{"wrong password", &entity.User{PasswordHash: hash, StatusID: entity.StatusActive}, "nope-nope", http.StatusUnauthorized},
		{"banned", &entity.User{PasswordHash: hash, StatusID: entity.StatusBanned}, "correct-horse", http.StatusForbidden},
		{"inactive", &entity.User{PasswordHash: hash, StatusID: entity.StatusInactive}, "correct-horse", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, m := newRepoMocks()
			m.User.On("FindByEmail", mock.Anything, "player@example.com").Return(tc.user, nil)

			svc := NewAuthService(repo, nil, nil, &utils.Config{}, zap.NewNop())
			_, err := svc.Login(context.Background(), &request.LoginRequest{
				Email:    "Player@Example.com",
				Password: tc.password,
			}, ClientMeta{})

			assert.Equal(t, tc.want, apperror.CodeOf(err))
			m.Session.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}
