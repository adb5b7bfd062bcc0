package entity

type Slider struct {
	BaseNoDelete
	Title        string   `db:"title"`
	ImageURL     string   `db:"image_url"`
	LinkURL      *string  `db:"link_url"`
	DisplayOrder int      `db:"display_order"`
	StatusID     StatusID `db:"status_id"`
}
