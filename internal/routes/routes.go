package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/uknf/communication-platform-backend/internal/handler"
	"github.com/uknf/communication-platform-backend/internal/middleware"
	"github.com/uknf/communication-platform-backend/pkg/jwt"
)

// Setup registers the API routes. All routes require an authenticated caller;
// token issuance is the identity service's job.
func Setup(
	router *gin.Engine,
	messageHandler *handler.MessageHandler,
	announcementHandler *handler.AnnouncementHandler,
	userHandler *handler.UserHandler,
	entityHandler *handler.EntityHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1")
	api.Use(middleware.JWTAuth(jwtManager))

	// Messages
	messages := api.Group("/messages")
	messages.POST("", messageHandler.CreateMessage)
	messages.GET("", messageHandler.GetMessages)
	// Fixed paths before the :id wildcard
	messages.GET("/unread-count", messageHandler.GetUnreadCount)
	messages.GET("/stats", messageHandler.GetMessageStats)
	messages.GET("/export", messageHandler.ExportMessages)
	messages.POST("/mark-read", messageHandler.MarkMultipleAsRead)
	messages.GET("/:id", messageHandler.GetMessage)
	messages.POST("/:id/reply", messageHandler.ReplyToMessage)
	messages.POST("/:id/read", messageHandler.MarkAsRead)

	// Announcements
	announcements := api.Group("/announcements")
	announcements.POST("", announcementHandler.CreateAnnouncement)
	announcements.GET("", announcementHandler.GetAnnouncements)
	announcements.GET("/:id", announcementHandler.GetAnnouncement)
	announcements.POST("/:id/read", announcementHandler.ConfirmRead)

	// Users (recipient picker)
	users := api.Group("/users")
	users.GET("", userHandler.ListUsers)
	users.GET("/:id", userHandler.GetUser)

	// Supervised entities
	entities := api.Group("/entities")
	entities.GET("/:id", entityHandler.GetEntity)
}
