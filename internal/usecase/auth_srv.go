package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/pkg/apperror"
	"court-booking/pkg/database"
	"court-booking/pkg/mailer"
	"court-booking/pkg/token"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientMeta is stored on the session for the user's device list
type ClientMeta struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, meta ClientMeta) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, meta ClientMeta) (*response.AuthResponse, error)
	Logout(ctx context.Context, tokenID string) error
	SendOTP(ctx context.Context, req *request.SendOTPRequest) error
	VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) error
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	repo   *repository.Repository // grouping userRepo, sessionRepo, & otpRepo
	tokens *token.Manager
	mailer mailer.Mailer
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	tokens *token.Manager,
	mailer mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
		config: config,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, meta ClientMeta) (*response.AuthResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 2. Email must be unused
	existingUser, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, apperror.Internal(err, "failed to check email")
	}
	if existingUser != nil {
		return nil, apperror.Conflict("email already registered")
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperror.Internal(err, "failed to process password")
	}

	role := entity.RoleCustomer
	if req.Role == string(entity.RoleOwner) {
		role = entity.RoleOwner
	}

	// 4. Create user
	now := s.now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FullName:      strings.TrimSpace(req.FullName),
		Email:         email,
		PasswordHash:  hashedPassword,
		Phone:         req.Phone,
		Role:          role,
		StatusID:      entity.StatusUnverified,
		EmailVerified: false,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Conflict("email already registered")
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, apperror.Internal(err, "failed to create account")
	}

	// 5. Send OTP email (async)
	go s.sendVerificationOTP(user)

	// 6. Auto login after register
	signed, expiresAt, err := s.createSession(ctx, user, meta)
	if err != nil {
		s.log.Warn("Failed to create session after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		// account exists, the client can log in explicitly
		return response.AuthToResponse(user, "", time.Time{}), nil
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return response.AuthToResponse(user, signed, expiresAt), nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta ClientMeta) (*response.AuthResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, apperror.Internal(err, "failed to find user")
	}

	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("email", email))
		return nil, apperror.Unauthorized("invalid email or password")
	}

	switch user.StatusID {
	case entity.StatusBanned:
		s.log.Warn("Banned user tried to login", zap.String("user_id", user.ID.String()))
		return nil, apperror.Forbidden("account is banned")
	case entity.StatusInactive:
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, apperror.Forbidden("account is deactivated")
	}

	signed, expiresAt, err := s.createSession(ctx, user, meta)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperror.Internal(err, "failed to create session")
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return response.AuthToResponse(user, signed, expiresAt), nil
}

func (s *authService) Logout(ctx context.Context, tokenID string) error {
	if tokenID == "" {
		return apperror.Unauthorized("missing session")
	}

	if err := s.repo.Session.Revoke(ctx, tokenID); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err), zap.String("token_id", tokenID))
		return apperror.Internal(err, "failed to logout")
	}

	s.log.Info("User logged out", zap.String("token_id", tokenID))
	return nil
}

func (s *authService) SendOTP(ctx context.Context, req *request.SendOTPRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user for OTP", zap.Error(err), zap.String("email", req.Email))
		return apperror.Internal(err, "failed to find user")
	}
	if user == nil {
		return apperror.NotFound("user not found")
	}

	otpType := entity.OTPType(req.Type)
	if otpType == entity.OTPTypeEmailVerification && user.EmailVerified {
		return apperror.BadRequest("email already verified")
	}

	return s.issueOTP(ctx, user, otpType)
}

func (s *authService) VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	otp, err := s.consumeOTP(ctx, req.Email, req.OTP, entity.OTPTypeEmailVerification)
	if err != nil {
		return err
	}

	if err := s.repo.User.MarkEmailVerified(ctx, otp.UserID); err != nil {
		s.log.Error("Failed to update user verification", zap.Error(err), zap.String("user_id", otp.UserID.String()))
		return apperror.Internal(err, "failed to verify email")
	}

	s.log.Info("Email verified", zap.String("user_id", otp.UserID.String()))
	return nil
}

// ForgotPassword answers the same way whether or not the email exists
func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user for password reset", zap.Error(err))
		return apperror.Internal(err, "failed to process request")
	}
	if user == nil || user.IsBanned() {
		s.log.Info("Password reset requested for unknown or banned account", zap.String("email", req.Email))
		return nil
	}

	return s.issueOTP(ctx, user, entity.OTPTypePasswordReset)
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	otp, err := s.consumeOTP(ctx, req.Email, req.OTP, entity.OTPTypePasswordReset)
	if err != nil {
		return err
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return apperror.Internal(err, "failed to process password")
	}

	if err := s.repo.User.UpdatePassword(ctx, otp.UserID, hashedPassword); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", otp.UserID.String()))
		return apperror.Internal(err, "failed to reset password")
	}

	if err := s.repo.Session.RevokeAllUserSessions(ctx, otp.UserID); err != nil {
		s.log.Warn("Failed to revoke sessions after password reset",
			zap.Error(err), zap.String("user_id", otp.UserID.String()))
	}

	s.log.Info("Password reset", zap.String("user_id", otp.UserID.String()))
	return nil
}

func (s *authService) CleanExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("Expired sessions removed", zap.Int64("count", n))
	}
	return n, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, user *entity.User, meta ClientMeta) (string, time.Time, error) {
	signed, tokenID, expiresAt, err := s.tokens.Issue(user.ID, string(user.Role), user.Email)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		UserID:    user.ID,
		TokenID:   tokenID,
		UserAgent: optional(meta.UserAgent),
		IPAddress: optional(meta.IPAddress),
		ExpiresAt: expiresAt,
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func (s *authService) issueOTP(ctx context.Context, user *entity.User, otpType entity.OTPType) error {
	// only the newest code stays valid
	if err := s.repo.OTP.InvalidateAll(ctx, user.Email, otpType); err != nil {
		s.log.Warn("Failed to invalidate previous OTPs", zap.Error(err), zap.String("email", user.Email))
	}

	now := s.now()
	otp := &entity.OTP{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Email:     user.Email,
		Code:      utils.GenerateOTP(s.config.OTP.Length),
		Type:      otpType,
		ExpiresAt: now.Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute),
	}

	if err := s.repo.OTP.Create(ctx, otp); err != nil {
		s.log.Error("Failed to save OTP", zap.Error(err), zap.String("email", user.Email))
		return apperror.Internal(err, "failed to generate OTP")
	}

	subject, body := otpEmail(user.FullName, otp.Code, otpType, s.config.OTP.ExpiryMinutes)
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		s.log.Error("Failed to send OTP email", zap.Error(err), zap.String("email", user.Email))
		return apperror.BadGateway(err, "failed to send OTP email")
	}

	s.log.Info("OTP sent",
		zap.String("email", user.Email),
		zap.String("otp_type", string(otpType)),
		zap.Time("expires_at", otp.ExpiresAt),
	)
	return nil
}

// consumeOTP marks a valid code as used; a concurrent second use loses
func (s *authService) consumeOTP(ctx context.Context, email, code string, otpType entity.OTPType) (*entity.OTP, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	otp, err := s.repo.OTP.FindValidOTP(ctx, email, code, otpType)
	if err != nil {
		s.log.Error("Failed to find OTP", zap.Error(err), zap.String("email", email))
		return nil, apperror.Internal(err, "failed to verify OTP")
	}
	if otp == nil {
		return nil, apperror.BadRequest("invalid or expired OTP")
	}

	used, err := s.repo.OTP.MarkAsUsed(ctx, otp.ID)
	if err != nil {
		s.log.Error("Failed to mark OTP as used", zap.Error(err), zap.String("otp_id", otp.ID.String()))
		return nil, apperror.Internal(err, "failed to verify OTP")
	}
	if !used {
		return nil, apperror.BadRequest("invalid or expired OTP")
	}

	return otp, nil
}

func (s *authService) sendVerificationOTP(user *entity.User) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.issueOTP(ctx, user, entity.OTPTypeEmailVerification); err != nil {
		s.log.Error("Failed to send verification OTP", zap.Error(err), zap.String("email", user.Email))
	}
}

func otpEmail(name, code string, otpType entity.OTPType, expiryMinutes int) (string, string) {
	purpose := "verify your email address"
	subject := "Your verification code"
	if otpType == entity.OTPTypePasswordReset {
		purpose = "reset your password"
		subject = "Your password reset code"
	}
	body := fmt.Sprintf("Hi %s,\n\nUse the code %s to %s. It expires in %d minutes.\n\nIf you did not request this, ignore this email.\n",
		name, code, purpose, expiryMinutes)
	return subject, body
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
