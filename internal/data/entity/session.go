package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session tracks one issued access token by its jti so it can be revoked
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	TokenID   string     `db:"token_id"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
