package response

import (
	"time"

	"court-booking/internal/data/entity"
)

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

type UserResponse struct {
	ID            string          `json:"id"`
	FullName      string          `json:"full_name"`
	Email         string          `json:"email"`
	Phone         *string         `json:"phone,omitempty"`
	Role          entity.UserRole `json:"role"`
	StatusID      entity.StatusID `json:"status_id"`
	Status        string          `json:"status"`
	EmailVerified bool            `json:"email_verified"`
	AvatarURL     *string         `json:"avatar_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:            user.ID.String(),
		FullName:      user.FullName,
		Email:         user.Email,
		Phone:         user.Phone,
		Role:          user.Role,
		StatusID:      user.StatusID,
		Status:        user.StatusID.String(),
		EmailVerified: user.EmailVerified,
		AvatarURL:     user.AvatarURL,
		CreatedAt:     user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, token string, expiresAt time.Time) *AuthResponse {
	resp := &AuthResponse{User: UserToResponse(user)}
	if token != "" {
		resp.Token = token
		resp.ExpiresAt = &expiresAt
	}
	return resp
}
