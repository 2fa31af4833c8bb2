package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
	domainerr "github.com/oakmall/consignment-ledger/internal/domain/error"
	coreport "github.com/oakmall/consignment-ledger/internal/domain/port/core"
	balanceUseCase "github.com/oakmall/consignment-ledger/internal/domain/usecase/balance"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/api/dto"
)

// BalanceHandler handles booth charge, payout and balance payment HTTP requests
type BalanceHandler struct {
	balanceService *balanceUseCase.Service
	logger         coreport.Logger
}

// NewBalanceHandler creates a new balance handler instance
func NewBalanceHandler(balanceService *balanceUseCase.Service, logger coreport.Logger) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
		logger:         logger,
	}
}

func boothRentalToResponse(charge *entity.BoothRentalCharge) dto.BoothRentalResponse {
	return dto.BoothRentalResponse{
		ID:       charge.ID,
		VendorID: charge.VendorID,
		Amount:   entity.FormatCents(charge.Amount),
		Year:     charge.Year,
		Month:    charge.Month,
	}
}

func vendorPaymentToResponse(payment *entity.VendorPayment) dto.VendorPaymentResponse {
	return dto.VendorPaymentResponse{
		ID:          payment.ID,
		VendorID:    payment.VendorID,
		Amount:      entity.FormatCents(payment.Amount),
		Year:        payment.Year,
		Month:       payment.Month,
		Description: payment.Description,
	}
}

func balancePaymentToResponse(payment *entity.BalancePayment) dto.BalancePaymentResponse {
	return dto.BalancePaymentResponse{
		ID:            payment.ID,
		VendorID:      payment.VendorID,
		Amount:        entity.FormatCents(payment.Amount),
		PaymentDate:   payment.PaymentDate.Format(time.RFC3339),
		PaymentMethod: string(payment.PaymentMethod),
		Description:   payment.Description,
	}
}

func (h *BalanceHandler) bindBoothRental(c *gin.Context) (balanceUseCase.BoothRentalInput, bool) {
	var req dto.BoothRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return balanceUseCase.BoothRentalInput{}, false
	}

	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return balanceUseCase.BoothRentalInput{}, false
	}

	return balanceUseCase.BoothRentalInput{
		VendorID: req.VendorID,
		Amount:   amount,
		Year:     req.Year,
		Month:    req.Month,
	}, true
}

// CreateBoothRental handles the POST /booth-charges endpoint
func (h *BalanceHandler) CreateBoothRental(c *gin.Context) {
	input, ok := h.bindBoothRental(c)
	if !ok {
		return
	}

	charge, err := h.balanceService.CreateBoothRental(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, boothRentalToResponse(charge))
}

// UpdateBoothRental handles the PUT /booth-charges/:id endpoint
func (h *BalanceHandler) UpdateBoothRental(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := h.bindBoothRental(c)
	if !ok {
		return
	}

	charge, err := h.balanceService.UpdateBoothRental(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, boothRentalToResponse(charge))
}

// DeleteBoothRental handles the DELETE /booth-charges/:id endpoint
func (h *BalanceHandler) DeleteBoothRental(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.balanceService.DeleteBoothRental(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BalanceHandler) bindVendorPayment(c *gin.Context) (balanceUseCase.VendorPaymentInput, bool) {
	var req dto.VendorPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return balanceUseCase.VendorPaymentInput{}, false
	}

	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return balanceUseCase.VendorPaymentInput{}, false
	}

	return balanceUseCase.VendorPaymentInput{
		VendorID:    req.VendorID,
		Amount:      amount,
		Year:        req.Year,
		Month:       req.Month,
		Description: req.Description,
	}, true
}

// CreateVendorPayment handles the POST /vendor-payments endpoint
func (h *BalanceHandler) CreateVendorPayment(c *gin.Context) {
	input, ok := h.bindVendorPayment(c)
	if !ok {
		return
	}

	payment, err := h.balanceService.CreateVendorPayment(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, vendorPaymentToResponse(payment))
}

// UpdateVendorPayment handles the PUT /vendor-payments/:id endpoint
func (h *BalanceHandler) UpdateVendorPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := h.bindVendorPayment(c)
	if !ok {
		return
	}

	payment, err := h.balanceService.UpdateVendorPayment(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, vendorPaymentToResponse(payment))
}

// DeleteVendorPayment handles the DELETE /vendor-payments/:id endpoint
func (h *BalanceHandler) DeleteVendorPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.balanceService.DeleteVendorPayment(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BalanceHandler) bindBalancePayment(c *gin.Context) (balanceUseCase.BalancePaymentInput, bool) {
	var req dto.BalancePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return balanceUseCase.BalancePaymentInput{}, false
	}

	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return balanceUseCase.BalancePaymentInput{}, false
	}

	paymentDate, err := time.Parse(time.RFC3339, req.PaymentDate)
	if err != nil {
		// Fall back to a bare date
		paymentDate, err = time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Invalid paymentDate format, expected RFC 3339 or YYYY-MM-DD",
			})
			return balanceUseCase.BalancePaymentInput{}, false
		}
	}

	return balanceUseCase.BalancePaymentInput{
		VendorID:      req.VendorID,
		Amount:        amount,
		PaymentDate:   paymentDate,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
	}, true
}

// CreateBalancePayment handles the POST /balance-payments endpoint
func (h *BalanceHandler) CreateBalancePayment(c *gin.Context) {
	input, ok := h.bindBalancePayment(c)
	if !ok {
		return
	}

	payment, err := h.balanceService.CreateBalancePayment(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, balancePaymentToResponse(payment))
}

// UpdateBalancePayment handles the PUT /balance-payments/:id endpoint
func (h *BalanceHandler) UpdateBalancePayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := h.bindBalancePayment(c)
	if !ok {
		return
	}

	payment, err := h.balanceService.UpdateBalancePayment(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, balancePaymentToResponse(payment))
}

// DeleteBalancePayment handles the DELETE /balance-payments/:id endpoint
func (h *BalanceHandler) DeleteBalancePayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.balanceService.DeleteBalancePayment(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseID extracts a numeric :id path parameter
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid ID format",
		})
		return 0, false
	}
	return id, true
}
