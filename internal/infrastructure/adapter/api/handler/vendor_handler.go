package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
	domainerr "github.com/oakmall/consignment-ledger/internal/domain/error"
	coreport "github.com/oakmall/consignment-ledger/internal/domain/port/core"
	balanceUseCase "github.com/oakmall/consignment-ledger/internal/domain/usecase/balance"
	reportUseCase "github.com/oakmall/consignment-ledger/internal/domain/usecase/report"
	vendorUseCase "github.com/oakmall/consignment-ledger/internal/domain/usecase/vendor"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/api/dto"
)

// VendorHandler handles vendor lifecycle, balance and report HTTP requests
type VendorHandler struct {
	vendorService  *vendorUseCase.Service
	balanceService *balanceUseCase.Service
	reportService  *reportUseCase.Service
	logger         coreport.Logger
}

// NewVendorHandler creates a new vendor handler instance
func NewVendorHandler(
	vendorService *vendorUseCase.Service,
	balanceService *balanceUseCase.Service,
	reportService *reportUseCase.Service,
	logger coreport.Logger,
) *VendorHandler {
	return &VendorHandler{
		vendorService:  vendorService,
		balanceService: balanceService,
		reportService:  reportService,
		logger:         logger,
	}
}

func vendorToResponse(vendor *entity.Vendor) dto.VendorResponse {
	return dto.VendorResponse{
		ID:      vendor.ID,
		Name:    vendor.Name,
		Balance: vendor.FormattedBalance(),
	}
}

// Create handles the POST /vendors endpoint
func (h *VendorHandler) Create(c *gin.Context) {
	var req dto.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), req.ID, req.Name, req.UserName)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, vendorToResponse(vendor))
}

// List handles the GET /vendors endpoint
func (h *VendorHandler) List(c *gin.Context) {
	vendors, err := h.vendorService.ListVendors(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := make([]dto.VendorResponse, 0, len(vendors))
	for _, vendor := range vendors {
		resp = append(resp, vendorToResponse(vendor))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles the GET /vendors/:id endpoint
func (h *VendorHandler) Get(c *gin.Context) {
	vendorID, ok := parseVendorID(c)
	if !ok {
		return
	}

	vendor, err := h.balanceService.GetVendor(c.Request.Context(), vendorID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, vendorToResponse(vendor))
}

// Delete handles the DELETE /vendors/:id endpoint
func (h *VendorHandler) Delete(c *gin.Context) {
	vendorID, ok := parseVendorID(c)
	if !ok {
		return
	}

	if err := h.vendorService.DeleteVendor(c.Request.Context(), vendorID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetBalance handles the PUT /vendors/:id/balance endpoint, the staff escape
// hatch that overwrites the running balance with no compensating row
func (h *VendorHandler) SetBalance(c *gin.Context) {
	vendorID, ok := parseVendorID(c)
	if !ok {
		return
	}

	var req dto.SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	balance, err := entity.ParseSignedAmount(req.Balance)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.balanceService.SetVendorBalance(c.Request.Context(), vendorID, balance); err != nil {
		respondError(c, h.logger, err)
		return
	}

	vendor, err := h.balanceService.GetVendor(c.Request.Context(), vendorID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, vendorToResponse(vendor))
}

// MonthlyReport handles the GET /vendors/reports/monthly/:year/:month endpoint
func (h *VendorHandler) MonthlyReport(c *gin.Context) {
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

	statements, err := h.reportService.GenerateMonthly(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, statements)
}

// parseVendorID extracts the vendor :id path parameter
func parseVendorID(c *gin.Context) (int64, bool) {
	vendorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidVendorID),
			Message: "Invalid vendor ID format",
		})
		return 0, false
	}
	return vendorID, true
}
