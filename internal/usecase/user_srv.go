package usecase

import (
	"context"
	"strings"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/pkg/apperror"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error

	// Admin
	ListUsers(ctx context.Context, req *request.UserListRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUser(ctx context.Context, id uuid.UUID) (*response.UserResponse, error)
	BanUser(ctx context.Context, actor utils.Actor, id uuid.UUID) error
	UnbanUser(ctx context.Context, id uuid.UUID) error
	DeleteUser(ctx context.Context, actor utils.Actor, id uuid.UUID) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) findUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, apperror.Internal(err, "failed to find user")
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.Phone = req.Phone
	user.AvatarURL = req.AvatarURL

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperror.Internal(err, "failed to update profile")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// ChangePassword signs the user out on every device
func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return apperror.BadRequest("current password is incorrect")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return apperror.Internal(err, "failed to process password")
	}

	if err := s.repo.User.UpdatePassword(ctx, userID, hashed); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", userID.String()))
		return apperror.Internal(err, "failed to change password")
	}

	if err := s.repo.Session.RevokeAllUserSessions(ctx, userID); err != nil {
		s.log.Warn("Failed to revoke sessions", zap.Error(err), zap.String("user_id", userID.String()))
	}

	s.log.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

func (s *userService) ListUsers(ctx context.Context, req *request.UserListRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	filter := entity.UserFilter{
		Keyword:  strings.TrimSpace(req.Keyword),
		Role:     req.Role,
		StatusID: req.StatusID,
	}
	limit, offset := pageOf(req.PaginatedRequest)

	users, err := s.repo.User.FindAll(ctx, filter, limit, offset)
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, apperror.Internal(err, "failed to list users")
	}

	total, err := s.repo.User.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, apperror.Internal(err, "failed to list users")
	}

	return paginate(users, func(u *entity.User) response.UserResponse { return response.UserToResponse(u) }, req.PaginatedRequest, total), nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*response.UserResponse, error) {
	return s.GetProfile(ctx, id)
}

func (s *userService) BanUser(ctx context.Context, actor utils.Actor, id uuid.UUID) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	if user.ID == actor.UserID || user.Role == entity.RoleAdmin {
		return apperror.Forbidden("administrators cannot be banned")
	}
	if user.IsBanned() {
		return apperror.BadRequest("user is already banned")
	}

	if err := s.repo.User.UpdateStatus(ctx, id, entity.StatusBanned); err != nil {
		s.log.Error("Failed to ban user", zap.Error(err), zap.String("user_id", id.String()))
		return apperror.Internal(err, "failed to ban user")
	}

	// a banned user must lose access immediately, not at token expiry
	if err := s.repo.Session.RevokeAllUserSessions(ctx, id); err != nil {
		s.log.Error("Failed to revoke sessions of banned user", zap.Error(err), zap.String("user_id", id.String()))
		return apperror.Internal(err, "failed to revoke sessions")
	}

	s.log.Info("User banned",
		zap.String("user_id", id.String()),
		zap.String("by", actor.UserID.String()))
	return nil
}

func (s *userService) UnbanUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	if !user.IsBanned() {
		return apperror.BadRequest("user is not banned")
	}

	status := entity.StatusActive
	if !user.EmailVerified {
		status = entity.StatusUnverified
	}

	if err := s.repo.User.UpdateStatus(ctx, id, status); err != nil {
		s.log.Error("Failed to unban user", zap.Error(err), zap.String("user_id", id.String()))
		return apperror.Internal(err, "failed to unban user")
	}

	s.log.Info("User unbanned", zap.String("user_id", id.String()))
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, actor utils.Actor, id uuid.UUID) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	if user.ID == actor.UserID {
		return apperror.BadRequest("you cannot delete your own account")
	}
	if user.Role == entity.RoleAdmin {
		return apperror.Forbidden("administrators cannot be deleted")
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", id.String()))
		return apperror.Internal(err, "failed to delete user")
	}

	if err := s.repo.Session.RevokeAllUserSessions(ctx, id); err != nil {
		s.log.Warn("Failed to revoke sessions of deleted user", zap.Error(err), zap.String("user_id", id.String()))
	}

	s.log.Info("User deleted", zap.String("user_id", id.String()), zap.String("by", actor.UserID.String()))
	return nil
}
