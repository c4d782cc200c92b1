package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uknf/communication-platform-backend/internal/common"
	"github.com/uknf/communication-platform-backend/internal/domain"
	"github.com/uknf/communication-platform-backend/internal/middleware"
	"github.com/uknf/communication-platform-backend/internal/service"
)

// AnnouncementHandler handles announcement HTTP requests
type AnnouncementHandler struct {
	service service.AnnouncementService
}

// NewAnnouncementHandler creates a new AnnouncementHandler
func NewAnnouncementHandler(service service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// CreateAnnouncement handles POST /announcements
// @Summary Publish an announcement (staff only)
// @Tags announcements
// @Accept json
// @Produce json
// @Param request body domain.CreateAnnouncementRequest true "Announcement content"
// @Success 201 {object} common.APIResponse{data=domain.AnnouncementResponse}
// @Failure 403 {object} common.ErrorInfo
// @Security BearerAuth
// @Router /announcements [post]
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.service.CreateAnnouncement(userID, &req)
	if err != nil {
		common.ErrorFromService(c, "Failed to publish announcement", err)
		return
	}

	common.CreatedResponse(c, result)
}

// GetAnnouncements handles GET /announcements
// @Summary List announcements with the caller's read flags
// @Tags announcements
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param pageSize query int false "Page size (max 100)"
// @Success 200 {object} common.APIResponse{data=[]domain.AnnouncementResponse}
// @Security BearerAuth
// @Router /announcements [get]
func (h *AnnouncementHandler) GetAnnouncements(c *gin.Context) {
	userID := middleware.GetUserID(c)

	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	pageSize := 20
	if ps, err := strconv.Atoi(c.Query("pageSize")); err == nil && ps > 0 {
		pageSize = ps
	}

	items, total, err := h.service.GetAnnouncements(userID, page, pageSize)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list announcements", err)
		return
	}

	common.ListResponse(c, items, common.NewPagination(page, pageSize, total))
}

// GetAnnouncement handles GET /announcements/:id
// @Summary Announcement detail
// @Tags announcements
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} common.APIResponse{data=domain.AnnouncementResponse}
// @Failure 404 {object} common.ErrorInfo
// @Security BearerAuth
// @Router /announcements/{id} [get]
func (h *AnnouncementHandler) GetAnnouncement(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid announcement ID", err)
		return
	}

	result, err := h.service.GetAnnouncementByID(id, userID)
	if err != nil {
		common.ErrorFromService(c, middleware.Translate(c, "announcement.not_found"), err)
		return
	}

	common.SuccessResponse(c, result)
}

// ConfirmRead handles POST /announcements/:id/read
// @Summary Confirm reading an announcement
// @Description A repeated confirmation returns 404: the platform treats an already-confirmed announcement as gone.
// @Tags announcements
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.ErrorInfo
// @Security BearerAuth
// @Router /announcements/{id}/read [post]
func (h *AnnouncementHandler) ConfirmRead(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid announcement ID", err)
		return
	}

	if err := h.service.ConfirmRead(id, userID); err != nil {
		if errors.Is(err, common.ErrAnnouncementAlreadyRead) {
			common.ErrorResponse(c, http.StatusNotFound, middleware.Translate(c, "announcement.already_read"), err)
			return
		}
		common.ErrorFromService(c, "Failed to confirm announcement", err)
		return
	}

	common.SuccessResponse(c, gin.H{"success": true})
}
