package entity

import (
	"time"

	"github.com/google/uuid"
)

type Base struct {
	ID        uuid.UUID  `db:"id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type BaseNoDelete struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

// StatusID is the shared lifecycle status of users, facilities, courts and slots
type StatusID int16

const (
	StatusActive     StatusID = 1
	StatusInactive   StatusID = 2
	StatusUnverified StatusID = 3
	StatusBanned     StatusID = 4
)

func (s StatusID) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusInactive:
		return "inactive"
	case StatusUnverified:
		return "unverified"
	case StatusBanned:
		return "banned"
	default:
		return "unknown"
	}
}
