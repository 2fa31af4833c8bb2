package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
	domainerr "github.com/oakmall/consignment-ledger/internal/domain/error"
	coreport "github.com/oakmall/consignment-ledger/internal/domain/port/core"
	ledgerUseCase "github.com/oakmall/consignment-ledger/internal/domain/usecase/ledger"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/api/dto"
)

// TransactionHandler handles checkout and transaction read HTTP requests
type TransactionHandler struct {
	ledgerService *ledgerUseCase.Service
	logger        coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(ledgerService *ledgerUseCase.Service, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// Create handles the POST /transactions endpoint
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid transaction request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	salesTax, err := entity.ParseAmount(req.SalesTax)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	input := ledgerUseCase.CreateTransactionInput{
		SalesTax:      salesTax,
		PaymentMethod: req.PaymentMethod,
		Items:         make([]ledgerUseCase.ItemInput, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		price, err := entity.ParseAmount(item.Price)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		input.Items = append(input.Items, ledgerUseCase.ItemInput{
			VendorID:    item.VendorID,
			Description: item.Description,
			Price:       price,
			Quantity:    item.Quantity,
		})
	}

	txn, err := h.ledgerService.CreateTransaction(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, transactionToResponse(txn))
}

// UpdateItem handles the PUT /transactions/items/:id endpoint
func (h *TransactionHandler) UpdateItem(c *gin.Context) {
	itemID := c.Param("id")

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	input := ledgerUseCase.UpdateItemInput{
		VendorID:    req.VendorID,
		Description: req.Description,
		Quantity:    req.Quantity,
	}
	if req.Price != nil {
		price, err := entity.ParseAmount(*req.Price)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		input.Price = &price
	}

	item, err := h.ledgerService.UpdateItem(c.Request.Context(), itemID, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, itemToResponse(item))
}

// DeleteItem handles the DELETE /transactions/items/:id endpoint
func (h *TransactionHandler) DeleteItem(c *gin.Context) {
	itemID := c.Param("id")

	if err := h.ledgerService.DeleteItem(c.Request.Context(), itemID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete handles the DELETE /transactions/:id endpoint
func (h *TransactionHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.ledgerService.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAll handles the GET /transactions endpoint
func (h *TransactionHandler) GetAll(c *gin.Context) {
	h.respondAggregate(c, h.ledgerService.GetAll)
}

// GetToday handles the GET /transactions/today endpoint
func (h *TransactionHandler) GetToday(c *gin.Context) {
	h.respondAggregate(c, h.ledgerService.GetToday)
}

// GetWeekly handles the GET /transactions/weekly endpoint
func (h *TransactionHandler) GetWeekly(c *gin.Context) {
	h.respondAggregate(c, h.ledgerService.GetWeekly)
}

// GetMonthly handles the GET /transactions/monthly endpoint
func (h *TransactionHandler) GetMonthly(c *gin.Context) {
	h.respondAggregate(c, h.ledgerService.GetMonthly)
}

// GetByMonthYear handles the GET /transactions/monthly/:year/:month endpoint
func (h *TransactionHandler) GetByMonthYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid year format",
		})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidMonth),
			Message: "Invalid month format",
		})
		return
	}

	agg, err := h.ledgerService.GetByMonthYear(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, aggregateToResponse(agg))
}

func (h *TransactionHandler) respondAggregate(
	c *gin.Context,
	fetch func(ctx context.Context) (*entity.TransactionAggregate, error),
) {
	agg, err := fetch(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, aggregateToResponse(agg))
}
