package request

type CommentRequest struct {
	Content  string  `json:"content" validate:"required,min=1,max=1000"`
	ParentID *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}

type RatingRequest struct {
	Stars  int     `json:"stars" validate:"required,min=1,max=5"`
	Review *string `json:"review,omitempty" validate:"omitempty,max=1000"`
}

type SliderRequest struct {
	Title        string  `json:"title" validate:"required,max=200"`
	ImageURL     string  `json:"image_url" validate:"required,max=500"`
	LinkURL      *string `json:"link_url,omitempty" validate:"omitempty,url,max=500"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
	StatusID     int     `json:"status_id,omitempty" validate:"omitempty,oneof=1 2"`
}

type BlogRequest struct {
	Title        string  `json:"title" validate:"required,min=3,max=255"`
	Summary      *string `json:"summary,omitempty" validate:"omitempty,max=500"`
	Content      string  `json:"content" validate:"required"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty" validate:"omitempty,max=500"`
}

type BlogListRequest struct {
	PaginatedRequest
	Keyword string `validate:"omitempty,max=100"`
	Status  string `validate:"omitempty,oneof=draft published"`
}
