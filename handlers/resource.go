package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resourceRepo "reservo/database/repository/resource"
	"reservo/middleware"
	"reservo/models"
	"reservo/services/resource"
	"reservo/utils"
)

// ResourceHandler exposes marketplace listing management.
type ResourceHandler struct {
	Service resource.ResourceService
	Logger  *zap.Logger
}

func NewResourceHandler(svc resource.ResourceService, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{Service: svc, Logger: logger}
}

// RegisterResource handles POST /api/resources.
func (h *ResourceHandler) RegisterResource(c *gin.Context) {
	var input models.Resource
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	res, err := h.Service.Register(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to register resource", err.Error())
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GetResource handles GET /api/resources/:id.
func (h *ResourceHandler) GetResource(c *gin.Context) {
	res, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListMyResources handles GET /api/resources.
func (h *ResourceHandler) ListMyResources(c *gin.Context) {
	resources, err := h.Service.ListByOwner(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.writeResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// UpdateResource handles PATCH /api/resources/:id.
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	var input models.Resource
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	input.ID = c.Param("id")

	res, err := h.Service.Update(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		h.writeResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteResource handles DELETE /api/resources/:id.
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		h.writeResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *ResourceHandler) writeResourceError(c *gin.Context, err error) {
	if errors.Is(err, resourceRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "resource not found", "")
		return
	}
	h.Logger.Error("resource request failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
}
