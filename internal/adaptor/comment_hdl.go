package adaptor

import (
	"net/http"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// ListComments handles GET /api/facilities/{id}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	facilityID, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	req := pageOf(r)
	comments, err := h.service.ListComments(r.Context(), facilityID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

// CreateComment handles POST /api/facilities/{id}/comments (protected)
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	facilityID, ok := urlID(w, r, "id", "Facility")
	if !ok {
		return
	}

	var req request.CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.CreateComment(r.Context(), actor, facilityID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "Comment posted", comment)
}

// UpdateComment handles PUT /api/comments/{id} (author only)
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Comment")
	if !ok {
		return
	}

	var req request.CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "Comment updated", comment)
}

// DeleteComment handles DELETE /api/comments/{id} (author or admin)
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "Comment")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(r.Context(), actor, id); err != nil {
		handleServiceError(w, h.log, err, "delete comment")
		return
	}

	utils.ResponseSuccess(w, "Comment deleted", nil)
}
