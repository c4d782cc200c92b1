package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uknf/communication-platform-backend/internal/common"
	"github.com/uknf/communication-platform-backend/internal/domain"
	"github.com/uknf/communication-platform-backend/internal/middleware"
	"github.com/uknf/communication-platform-backend/internal/service"
)

// MessageHandler handles message HTTP requests
type MessageHandler struct {
	service service.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(service service.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// CreateMessage handles POST /messages
// @Summary Send a message
// @Tags messages
// @Accept json
// @Produce json
// @Param request body domain.CreateMessageRequest true "Message content"
// @Success 201 {object} common.APIResponse{data=domain.MessageResponse}
// @Failure 400 {object} common.ErrorInfo
// @Failure 404 {object} common.ErrorInfo
// @Security BearerAuth
// @Router /messages [post]
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.service.CreateMessage(userID, &req)
	if err != nil {
		common.ErrorFromService(c, "Failed to create message", err)
		return
	}

	middleware.CountMessageCreated()
	common.CreatedResponse(c, result)
}

// ReplyToMessage handles POST /messages/:id/reply
// @Summary Reply to a message
// @Tags messages
// @Accept json
// @Produce json
// @Param id path int true "Parent message ID"
// @Param request body domain.ReplyMessageRequest true "Reply content"
// @Success 201 {object} common.APIResponse{data=domain.MessageResponse}
// @Failure 404 {object} common.ErrorInfo
// @Security BearerAuth
// @Router /messages/{id}/reply [post]
func (h *MessageHandler) ReplyToMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)

	parentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid message ID", err)
		return
	}

	var req domain.ReplyMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.service.ReplyToMessage(parentID, userID, &req)
	if err != nil {
		common.ErrorFromService(c, "Failed to reply to message", err)
		return
	}

	middleware.CountMessageCreated()
	common.CreatedResponse(c, result)
}

// GetMessages handles GET /messages
// @Summary List messages visible to the caller (inbox + sent)
// @Tags messages
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param pageSize query int false "Page size (max 100)"
// @Param isRead query bool false "Filter by read state"
// @Param search query string false "Free-text search in subject and body"
// @Param sentAfter query string false "RFC3339 lower bound on sent_at"
// @Param sentBefore query string false "RFC3339 upper bound on sent_at"
// @Param sort query string false "Sort field: sentAt, subject, priority"
// @Param order query string false "asc or desc"
// @Success 200 {object} common.APIResponse{data=[]domain.MessageResponse}
// @Security BearerAuth
// @Router /messages [get]
func (h *MessageHandler) GetMessages(c *gin.Context) {
	userID := middleware.GetUserID(c)
	query := parseMessageListQuery(c)

	messages, total, err := h.service.GetMessages(userID, query)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list messages", err)
		return
	}

	common.ListResponse(c, messages, common.NewPagination(query.Page, query.PageSize, total))
}

func parseMessageListQuery(c *gin.Context) *domain.MessageListQuery {
	q := &domain.MessageListQuery{Page: 1, PageSize: 20}

	if p, err := strconv.Atoi(c.Query("page")); err == nil {
		q.Page = p
	}
	if ps, err := strconv.Atoi(c.Query("pageSize")); err == nil {
		q.PageSize = ps
	}
	if v := c.Query("isRead"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			q.IsRead = &b
		}
	}
	q.Search = c.Query("search")
	if v := c.Query("sentAfter"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q.SentAfter = &t
		}
	}
	if v := c.Query("sentBefore"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q.SentBefore = &t
		}
	}
	q.SortField = c.Query("sort")
	// Default ordering is sentAt descending; explicit sorts default to ascending
	switch c.Query("order") {
	case "desc":
		q.SortDesc = true
	case "asc":
		q.SortDesc = false
	default:
		q.SortDesc = q.SortField == "" || q.SortField == "sentAt"
	}
	return q
}

// GetMessage handles GET /messages/:id
// @Summary Message detail with replies
// @Tags messages
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} common.APIResponse{data=domain.MessageDetailResponse}
// @Failure 404 {object} common.ErrorInfo
// @Security BearerAuth
// @Router /messages/{id} [get]
func (h *MessageHandler) GetMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid message ID", err)
		return
	}

	msg, err := h.service.GetMessageByID(id, userID)
	if err != nil {
		common.ErrorFromService(c, middleware.Translate(c, "message.not_found"), err)
		return
	}

	common.SuccessResponse(c, msg)
}

// MarkAsRead handles POST /messages/:id/read
// @Summary Mark a message as read (recipient only, idempotent)
// @Tags messages
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.ErrorInfo
// @Security BearerAuth
// @Router /messages/{id}/read [post]
func (h *MessageHandler) MarkAsRead(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid message ID", err)
		return
	}

	ok, err := h.service.MarkAsRead(id, userID)
	if err != nil {
		common.ErrorFromService(c, middleware.Translate(c, "message.not_found"), err)
		return
	}

	common.SuccessResponse(c, gin.H{"success": ok})
}

// MarkMultipleAsRead handles POST /messages/mark-read
// @Summary Bulk mark messages as read
// @Tags messages
// @Accept json
// @Produce json
// @Param request body domain.MarkMultipleReadRequest true "Message IDs"
// @Success 200 {object} common.APIResponse
// @Security BearerAuth
// @Router /messages/mark-read [post]
func (h *MessageHandler) MarkMultipleAsRead(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.MarkMultipleReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	count, err := h.service.MarkMultipleAsRead(req.MessageIDs, userID)
	if err != nil {
		common.ErrorFromService(c, "Failed to mark messages as read", err)
		return
	}

	common.SuccessResponse(c, gin.H{"marked_count": count})
}

// GetUnreadCount handles GET /messages/unread-count
// @Summary Unread message count for the caller
// @Tags messages
// @Produce json
// @Success 200 {object} common.APIResponse
// @Security BearerAuth
// @Router /messages/unread-count [get]
func (h *MessageHandler) GetUnreadCount(c *gin.Context) {
	userID := middleware.GetUserID(c)

	count, err := h.service.GetUnreadCount(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to count unread messages", err)
		return
	}

	common.SuccessResponse(c, gin.H{"unread_count": count})
}

// GetMessageStats handles GET /messages/stats
// @Summary Mailbox statistics for the caller
// @Tags messages
// @Produce json
// @Success 200 {object} common.APIResponse{data=domain.MessageStatsResponse}
// @Security BearerAuth
// @Router /messages/stats [get]
func (h *MessageHandler) GetMessageStats(c *gin.Context) {
	userID := middleware.GetUserID(c)

	stats, err := h.service.GetMessageStats(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load message stats", err)
		return
	}

	common.SuccessResponse(c, stats)
}

// ExportMessages handles GET /messages/export
// @Summary Export all visible messages as CSV
// @Tags messages
// @Produce text/csv
// @Success 200 {string} string "CSV body"
// @Security BearerAuth
// @Router /messages/export [get]
func (h *MessageHandler) ExportMessages(c *gin.Context) {
	userID := middleware.GetUserID(c)

	rows, err := h.service.ExportMessages(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to export messages", err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="messages.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{
		"id", "subject", "sender_name", "sender_email", "recipient_name",
		"priority", "is_read", "is_reply", "sent_at", "read_at", "entity_name",
	})
	for _, row := range rows {
		readAt := ""
		if row.ReadAt != nil {
			readAt = row.ReadAt.Format(time.RFC3339)
		}
		_ = w.Write([]string{
			strconv.FormatInt(row.ID, 10),
			row.Subject,
			row.SenderName,
			row.SenderEmail,
			row.RecipientName,
			row.Priority,
			strconv.FormatBool(row.IsRead),
			strconv.FormatBool(row.IsReply),
			row.SentAt.Format(time.RFC3339),
			readAt,
			row.EntityName,
		})
	}
	w.Flush()
}
