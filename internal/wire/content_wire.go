package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireContent covers comments, ratings, sliders and blogs
func wireContent(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	ratingHandler *adaptor.RatingHandler,
	sliderHandler *adaptor.SliderHandler,
	blogHandler *adaptor.BlogHandler,
	g *guards,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/facilities/{id}/comments", commentHandler.ListComments)
	r.Get("/api/facilities/{id}/ratings", ratingHandler.ListRatings)
	r.Get("/api/facilities/{id}/rating-stats", ratingHandler.GetRatingStats)
	r.Get("/api/sliders", sliderHandler.ListActive)
	r.Get("/api/blogs", blogHandler.ListPublished)
	r.Get("/api/blogs/{slug}", blogHandler.GetBySlug)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		r.Post("/api/facilities/{id}/comments", commentHandler.CreateComment)
		r.Put("/api/comments/{id}", commentHandler.UpdateComment)
		r.Delete("/api/comments/{id}", commentHandler.DeleteComment)

		r.Post("/api/facilities/{id}/ratings", ratingHandler.CreateRating)
		r.Put("/api/ratings/{id}", ratingHandler.UpdateRating)
		r.Delete("/api/ratings/{id}", ratingHandler.DeleteRating)
	})

	// ==================== ADMIN ROUTES ====================
	r.With(g.auth, g.admin).Route("/api/admin/sliders", func(r chi.Router) {
		r.Get("/", sliderHandler.ListAll)
		r.Post("/", sliderHandler.Create)
		r.Post("/image", sliderHandler.UploadImage)
		r.Put("/{id}", sliderHandler.Update)
		r.Delete("/{id}", sliderHandler.Delete)
	})

	r.With(g.auth, g.admin).Route("/api/admin/blogs", func(r chi.Router) {
		r.Get("/", blogHandler.ListBlogs)
		r.Post("/", blogHandler.CreateBlog)
		r.Get("/{id}", blogHandler.GetBlog)
		r.Put("/{id}", blogHandler.UpdateBlog)
		r.Delete("/{id}", blogHandler.DeleteBlog)
		r.Post("/{id}/publish", blogHandler.Publish)
		r.Post("/{id}/unpublish", blogHandler.Unpublish)
	})
}
