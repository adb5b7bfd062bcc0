package adaptor

import (
	"net/http"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BlogHandler struct {
	service usecase.BlogService
	log     *zap.Logger
}

func NewBlogHandler(service usecase.BlogService, log *zap.Logger) *BlogHandler {
	return &BlogHandler{
		service: service,
		log:     log.With(zap.String("handler", "blog")),
	}
}

// ListPublished handles GET /api/blogs?keyword=
func (h *BlogHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	req := request.BlogListRequest{
		PaginatedRequest: pageOf(r),
		Keyword:          r.URL.Query().Get("keyword"),
	}

	blogs, err := h.service.ListPublished(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list blogs")
		return
	}

	utils.ResponseSuccess(w, "success", blogs)
}

// GetBySlug handles GET /api/blogs/{slug}
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	blog, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handleServiceError(w, h.log, err, "get blog")
		return
	}

	utils.ResponseSuccess(w, "success", blog)
}

// ==================== ADMIN METHODS ====================

// ListBlogs handles GET /api/admin/blogs?keyword=&status=draft|published
func (h *BlogHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.BlogListRequest{
		PaginatedRequest: pageOf(r),
		Keyword:          query.Get("keyword"),
		Status:           query.Get("status"),
	}

	blogs, err := h.service.ListBlogs(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list all blogs")
		return
	}

	utils.ResponseSuccess(w, "success", blogs)
}

// GetBlog handles GET /api/admin/blogs/{id}
func (h *BlogHandler) GetBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "Blog")
	if !ok {
		return
	}

	blog, err := h.service.GetBlog(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get blog")
		return
	}

	utils.ResponseSuccess(w, "success", blog)
}

// CreateBlog handles POST /api/admin/blogs
func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.BlogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	blog, err := h.service.CreateBlog(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create blog")
		return
	}

	utils.ResponseCreated(w, "Blog created", blog)
}

// UpdateBlog handles PUT /api/admin/blogs/{id}
func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "Blog")
	if !ok {
		return
	}

	var req request.BlogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	blog, err := h.service.UpdateBlog(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update blog")
		return
	}

	utils.ResponseSuccess(w, "Blog updated", blog)
}

// DeleteBlog handles DELETE /api/admin/blogs/{id}
func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "Blog")
	if !ok {
		return
	}

	if err := h.service.DeleteBlog(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete blog")
		return
	}

	utils.ResponseSuccess(w, "Blog deleted", nil)
}

// Publish handles POST /api/admin/blogs/{id}/publish
func (h *BlogHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, true)
}

// Unpublish handles POST /api/admin/blogs/{id}/unpublish
func (h *BlogHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, false)
}

func (h *BlogHandler) setPublished(w http.ResponseWriter, r *http.Request, published bool) {
	id, ok := urlID(w, r, "id", "Blog")
	if !ok {
		return
	}

	blog, err := h.service.SetPublished(r.Context(), id, published)
	if err != nil {
		handleServiceError(w, h.log, err, "change blog visibility")
		return
	}

	message := "Blog unpublished"
	if published {
		message = "Blog published"
	}
	utils.ResponseSuccess(w, message, blog)
}
