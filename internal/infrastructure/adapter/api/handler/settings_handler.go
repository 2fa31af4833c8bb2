package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/oakmall/consignment-ledger/internal/domain/error"
	coreport "github.com/oakmall/consignment-ledger/internal/domain/port/core"
	"github.com/oakmall/consignment-ledger/internal/domain/port/persistence"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/api/dto"
)

// SettingsHandler handles settings key/value HTTP requests
type SettingsHandler struct {
	uow    persistence.UnitOfWork
	logger coreport.Logger
}

// NewSettingsHandler creates a new settings handler instance
func NewSettingsHandler(uow persistence.UnitOfWork, logger coreport.Logger) *SettingsHandler {
	return &SettingsHandler{
		uow:    uow,
		logger: logger,
	}
}

// Get handles the GET /settings/:key endpoint
func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")

	value, err := h.uow.GetSettingsRepository(c.Request.Context()).Get(c.Request.Context(), key)
	if err != nil {
		if domainerr.IsSettingNotFoundError(err) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(err),
				Message: "Setting not found",
			})
			return
		}
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: value})
}

// Set handles the PUT /settings/:key endpoint
func (h *SettingsHandler) Set(c *gin.Context) {
	key := c.Param("key")

	var req dto.SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	if err := h.uow.GetSettingsRepository(c.Request.Context()).Set(c.Request.Context(), key, req.Value); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Setting updated", map[string]any{"key": key})
	c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: req.Value})
}
