package response

import (
	"time"

	"court-booking/internal/data/entity"
)

type CommentResponse struct {
	ID         string    `json:"id"`
	FacilityID string    `json:"facility_id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name"`
	ParentID   *string   `json:"parent_id,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type RatingResponse struct {
	ID         string    `json:"id"`
	FacilityID string    `json:"facility_id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Stars      int       `json:"stars"`
	Review     *string   `json:"review,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type RatingStatsResponse struct {
	Average float64          `json:"average"`
	Count   int64            `json:"count"`
	PerStar map[string]int64 `json:"per_star"`
}

type SliderResponse struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	ImageURL     string          `json:"image_url"`
	LinkURL      *string         `json:"link_url,omitempty"`
	DisplayOrder int             `json:"display_order"`
	StatusID     entity.StatusID `json:"status_id"`
}

type BlogResponse struct {
	ID           string            `json:"id"`
	AuthorID     string            `json:"author_id"`
	AuthorName   string            `json:"author_name,omitempty"`
	Title        string            `json:"title"`
	Slug         string            `json:"slug"`
	Summary      *string           `json:"summary,omitempty"`
	Content      string            `json:"content,omitempty"`
	ThumbnailURL *string           `json:"thumbnail_url,omitempty"`
	Status       entity.BlogStatus `json:"status"`
	PublishedAt  *time.Time        `json:"published_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

func CommentToResponse(c *entity.Comment) CommentResponse {
	resp := CommentResponse{
		ID:         c.ID.String(),
		FacilityID: c.FacilityID.String(),
		UserID:     c.UserID.String(),
		AuthorName: c.AuthorName,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if c.ParentID != nil {
		id := c.ParentID.String()
		resp.ParentID = &id
	}
	return resp
}

func RatingToResponse(r *entity.Rating) RatingResponse {
	return RatingResponse{
		ID:         r.ID.String(),
		FacilityID: r.FacilityID.String(),
		UserID:     r.UserID.String(),
		AuthorName: r.AuthorName,
		Stars:      r.Stars,
		Review:     r.Review,
		CreatedAt:  r.CreatedAt,
	}
}

func RatingStatsToResponse(s *entity.RatingStats) RatingStatsResponse {
	resp := RatingStatsResponse{PerStar: make(map[string]int64, 5)}
	stars := [5]string{"1", "2", "3", "4", "5"}
	if s == nil {
		for _, k := range stars {
			resp.PerStar[k] = 0
		}
		return resp
	}
	resp.Average = s.Average
	resp.Count = s.Count
	for i, k := range stars {
		resp.PerStar[k] = s.PerStar[i]
	}
	return resp
}

func SliderToResponse(s *entity.Slider) SliderResponse {
	return SliderResponse{
		ID:           s.ID.String(),
		Title:        s.Title,
		ImageURL:     s.ImageURL,
		LinkURL:      s.LinkURL,
		DisplayOrder: s.DisplayOrder,
		StatusID:     s.StatusID,
	}
}

// BlogToResponse drops the body when withContent is false, list views only show summaries
func BlogToResponse(b *entity.Blog, withContent bool) BlogResponse {
	resp := BlogResponse{
		ID:           b.ID.String(),
		AuthorID:     b.AuthorID.String(),
		AuthorName:   b.AuthorName,
		Title:        b.Title,
		Slug:         b.Slug,
		Summary:      b.Summary,
		ThumbnailURL: b.ThumbnailURL,
		Status:       b.Status,
		PublishedAt:  b.PublishedAt,
		CreatedAt:    b.CreatedAt,
	}
	if withContent {
		resp.Content = b.Content
	}
	return resp
}
