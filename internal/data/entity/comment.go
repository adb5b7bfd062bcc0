package entity

import "github.com/google/uuid"

type Comment struct {
	Base
	FacilityID uuid.UUID  `db:"facility_id"`
	UserID     uuid.UUID  `db:"user_id"`
	ParentID   *uuid.UUID `db:"parent_id"`
	Content    string     `db:"content"`
	StatusID   StatusID   `db:"status_id"`

	AuthorName string `db:"-"`
}
