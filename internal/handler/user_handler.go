package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uknf/communication-platform-backend/internal/common"
	"github.com/uknf/communication-platform-backend/internal/domain"
	"github.com/uknf/communication-platform-backend/internal/middleware"
	"github.com/uknf/communication-platform-backend/internal/repository"
)

// UserHandler serves the read-side user endpoints (recipient picker).
// Account management lives in the identity service.
type UserHandler struct {
	repo repository.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(repo repository.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

// ListUsers handles GET /users
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param pageSize query int false "Page size"
// @Param search query string false "Name or email substring"
// @Success 200 {object} common.APIResponse{data=[]domain.UserResponse}
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	pageSize := 20
	if ps, err := strconv.Atoi(c.Query("pageSize")); err == nil && ps > 0 && ps <= 100 {
		pageSize = ps
	}

	users, total, err := h.repo.FindAll(page, pageSize, c.Query("search"))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list users", err)
		return
	}

	responses := make([]*domain.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	common.ListResponse(c, responses, common.NewPagination(page, pageSize, total))
}

// GetUser handles GET /users/:id
// @Summary User detail
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} common.APIResponse{data=domain.UserResponse}
// @Failure 404 {object} common.ErrorInfo
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	user, err := h.repo.FindByID(id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			common.ErrorResponse(c, http.StatusNotFound, middleware.Translate(c, "user.not_found"), err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load user", err)
		return
	}

	common.SuccessResponse(c, user.ToResponse())
}
