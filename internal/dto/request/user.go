package request

type UpdateProfileRequest struct {
	FullName  string  `json:"full_name" validate:"required,min=2,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,phone"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url,max=500"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72,nefield=OldPassword"`
}

type UserListRequest struct {
	PaginatedRequest
	Keyword  string `validate:"omitempty,max=100"`
	Role     string `validate:"omitempty,oneof=customer owner admin"`
	StatusID int    `validate:"omitempty,oneof=1 2 3 4"`
}
