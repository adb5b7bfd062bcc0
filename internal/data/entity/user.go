package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleOwner    UserRole = "owner"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	FullName      string   `db:"full_name"`
	Email         string   `db:"email"`
	PasswordHash  string   `db:"password_hash"`
	Phone         *string  `db:"phone"`
	Role          UserRole `db:"role"`
	StatusID      StatusID `db:"status_id"`
	EmailVerified bool     `db:"email_verified"`
	AvatarURL     *string  `db:"avatar_url"`
}

func (u *User) IsBanned() bool {
	return u.StatusID == StatusBanned
}

// UserFilter narrows the admin user list
type UserFilter struct {
	Keyword  string
	Role     string
	StatusID int
}
