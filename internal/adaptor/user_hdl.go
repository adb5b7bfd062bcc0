package adaptor

import (
	"net/http"
	"strconv"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), actor.UserID)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// UpdateProfile handles PUT /api/users/me
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), actor.UserID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated successfully", profile)
}

// ChangePassword handles PUT /api/users/me/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), actor.UserID, &req); err != nil {
		handleServiceError(w, h.log, err, "change password")
		return
	}

	utils.ResponseSuccess(w, "Password changed successfully", nil)
}

// ==================== ADMIN METHODS ====================

// ListUsers handles GET /api/admin/users?keyword=&role=&status_id=&page=&per_page=
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.UserListRequest{
		PaginatedRequest: pageOf(r),
		Keyword:          query.Get("keyword"),
		Role:             query.Get("role"),
	}
	if raw := query.Get("status_id"); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "status_id must be a number", nil)
			return
		}
		req.StatusID = status
	}

	users, err := h.service.ListUsers(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// GetUser handles GET /api/admin/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "User")
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

// BanUser handles POST /api/admin/users/{id}/ban
func (h *UserHandler) BanUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "User")
	if !ok {
		return
	}

	if err := h.service.BanUser(r.Context(), actor, id); err != nil {
		handleServiceError(w, h.log, err, "ban user")
		return
	}

	utils.ResponseSuccess(w, "User banned successfully", nil)
}

// UnbanUser handles POST /api/admin/users/{id}/unban
func (h *UserHandler) UnbanUser(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id", "User")
	if !ok {
		return
	}

	if err := h.service.UnbanUser(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "unban user")
		return
	}

	utils.ResponseSuccess(w, "User unbanned successfully", nil)
}

// DeleteUser handles DELETE /api/admin/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id", "User")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), actor, id); err != nil {
		handleServiceError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted successfully", nil)
}
