package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"name-address-db/backend/internal/constants"
	"name-address-db/backend/internal/records"
	apperrors "name-address-db/backend/pkg/errors"
)

// Handler serves the add and search endpoints
type Handler struct {
	service *records.Service
	logger  *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(service *records.Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

type addRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// Add handles POST /api/add
func (h *Handler) Add(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrMissingFields.Message})
		return
	}

	existed, err := h.service.Add(c.Request.Context(), req.Name, req.Address)
	if err != nil {
		if errors.Is(err, apperrors.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrMissingFields.Message})
			return
		}
		h.logger.Error("Failed to add record",
			zap.String("name", req.Name),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add record"})
		return
	}

	message := constants.MessageRecordAdded
	if existed {
		message = constants.MessageRecordExists
	}
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// Search handles GET /api/search?name=
func (h *Handler) Search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrMissingName.Message})
		return
	}

	result, err := h.service.Search(c.Request.Context(), name)
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": constants.MessageNoRecord})
			return
		}
		h.logger.Error("Failed to search records",
			zap.String("name", name),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search records"})
		return
	}

	body := gin.H{
		"name":      result.Name,
		"addresses": result.Addresses,
	}
	if h.service.Enriched() {
		body["detailed_results"] = result.Detailed
	}
	c.JSON(http.StatusOK, body)
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
