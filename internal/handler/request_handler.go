package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/techmaintain/parts-service/internal/domain"
	"github.com/techmaintain/parts-service/internal/service"
)

type RequestHandler struct {
	requestService *service.RequestService
	logger         *zap.Logger
}

func NewRequestHandler(requestService *service.RequestService, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		logger:         logger,
	}
}

func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var input domain.CreateRequestInput

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	request, err := h.requestService.CreateRequest(c.Request.Context(), input)
	if err != nil {
		var missingErr *service.MissingFieldsError
		if errors.As(err, &missingErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Missing fields",
				"missing": missingErr.Fields,
			})
			return
		}

		var stockErr *service.InsufficientStockError
		if errors.As(err, &stockErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Insufficient stock",
				"available": stockErr.Available,
			})
			return
		}

		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		case errors.Is(err, service.ErrInvalidPartID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part id"})
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive integer"})
		case errors.Is(err, service.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid required date"})
		case errors.Is(err, service.ErrPartNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
		default:
			h.logger.Error("Failed to create request",
				zap.String("part_id", input.PartID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
		}
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *RequestHandler) ListRequests(c *gin.Context) {
	requests, err := h.requestService.ListRequests(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list requests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list requests",
		})
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) UpdateRequestStatus(c *gin.Context) {
	requestID := c.Param("id")

	var input domain.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err := h.requestService.UpdateRequestStatus(c.Request.Context(), requestID, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status not provided"})
		case errors.Is(err, service.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		default:
			h.logger.Error("Failed to update status",
				zap.String("request_id", requestID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}
