package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/techmaintain/parts-service/internal/domain"
	"github.com/techmaintain/parts-service/internal/service"
)

type PartHandler struct {
	partService *service.PartService
	logger      *zap.Logger
}

func NewPartHandler(partService *service.PartService, logger *zap.Logger) *PartHandler {
	return &PartHandler{
		partService: partService,
		logger:      logger,
	}
}

func (h *PartHandler) CreatePart(c *gin.Context) {
	var input domain.CreatePartInput

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	part, err := h.partService.CreatePart(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("Failed to create part", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create part",
		})
		return
	}

	c.JSON(http.StatusCreated, part)
}

func (h *PartHandler) ListParts(c *gin.Context) {
	parts, err := h.partService.ListParts(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list parts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list parts",
		})
		return
	}

	c.JSON(http.StatusOK, parts)
}

func (h *PartHandler) GetPart(c *gin.Context) {
	partID := c.Param("id")

	part, err := h.partService.GetPart(c.Request.Context(), partID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPartID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part id"})
			return
		}
		if errors.Is(err, service.ErrPartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		}

		h.logger.Error("Failed to get part",
			zap.String("part_id", partID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get part",
		})
		return
	}

	c.JSON(http.StatusOK, part)
}

func (h *PartHandler) UpdatePart(c *gin.Context) {
	partID := c.Param("id")

	var input domain.UpdatePartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.partService.UpdatePart(c.Request.Context(), partID, input); err != nil {
		if errors.Is(err, service.ErrInvalidPartID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part id"})
			return
		}
		if errors.Is(err, service.ErrPartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		}

		h.logger.Error("Failed to update part",
			zap.String("part_id", partID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update part",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Part updated"})
}

func (h *PartHandler) DeletePart(c *gin.Context) {
	partID := c.Param("id")

	if err := h.partService.DeletePart(c.Request.Context(), partID); err != nil {
		if errors.Is(err, service.ErrInvalidPartID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part id"})
			return
		}
		if errors.Is(err, service.ErrPartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		}

		h.logger.Error("Failed to delete part",
			zap.String("part_id", partID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete part",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Part deleted"})
}
