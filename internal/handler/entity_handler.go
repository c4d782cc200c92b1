package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uknf/communication-platform-backend/internal/common"
	"github.com/uknf/communication-platform-backend/internal/repository"
)

// EntityHandler serves the supervised-entity read endpoints
type EntityHandler struct {
	repo repository.EntityRepository
}

// NewEntityHandler creates a new EntityHandler
func NewEntityHandler(repo repository.EntityRepository) *EntityHandler {
	return &EntityHandler{repo: repo}
}

// GetEntity handles GET /entities/:id
// @Summary Supervised entity detail
// @Tags entities
// @Produce json
// @Param id path int true "Entity ID"
// @Success 200 {object} common.APIResponse{data=domain.SupervisedEntity}
// @Failure 404 {object} common.ErrorInfo
// @Security BearerAuth
// @Router /entities/{id} [get]
func (h *EntityHandler) GetEntity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid entity ID", err)
		return
	}

	entity, err := h.repo.FindByID(id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			common.ErrorResponse(c, http.StatusNotFound, "Entity not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load entity", err)
		return
	}

	common.SuccessResponse(c, entity)
}
