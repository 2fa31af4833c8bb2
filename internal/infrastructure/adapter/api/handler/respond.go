package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
	domainerr "github.com/oakmall/consignment-ledger/internal/domain/error"
	coreport "github.com/oakmall/consignment-ledger/internal/domain/port/core"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/api/dto"
)

// loggable is implemented by the rich domain error types
type loggable interface {
	LogFields() map[string]any
}

// respondError maps a domain error to an HTTP status and writes the standard
// error body
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case domainerr.IsValidationError(err):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domainerr.ErrDuplicateVendor):
		status = http.StatusConflict
		message = err.Error()
	case domainerr.IsNotFoundError(err):
		status = http.StatusNotFound
		message = err.Error()
	case domainerr.IsSettingNotFoundError(err):
		// A required settings key is missing; the operation cannot run
		status = http.StatusInternalServerError
		message = err.Error()
	}

	fields := map[string]any{"error": err.Error(), "status": status}
	var le loggable
	if errors.As(err, &le) {
		fields = le.LogFields()
		fields["status"] = status
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields)
	} else {
		logger.Warn("Request rejected", fields)
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

func itemToResponse(item *entity.TransactionItem) dto.TransactionItemResponse {
	return dto.TransactionItemResponse{
		ID:            item.ID,
		TransactionID: item.TransactionID,
		VendorID:      item.VendorID,
		Description:   item.Description,
		Price:         entity.FormatCents(item.Price),
		Quantity:      item.Quantity,
		Total:         entity.FormatCents(item.Total),
	}
}

func transactionToResponse(txn *entity.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:            txn.ID,
		SubTotal:      entity.FormatCents(txn.SubTotal),
		SalesTax:      entity.FormatCents(txn.SalesTax),
		Total:         entity.FormatCents(txn.Total),
		PaymentMethod: string(txn.PaymentMethod),
		CreatedAt:     txn.CreatedAt.Format(time.RFC3339),
		Items:         make([]dto.TransactionItemResponse, 0, len(txn.Items)),
	}
	for i := range txn.Items {
		resp.Items = append(resp.Items, itemToResponse(&txn.Items[i]))
	}
	return resp
}

func aggregateToResponse(agg *entity.TransactionAggregate) dto.AggregateResponse {
	resp := dto.AggregateResponse{
		Transactions:  make([]dto.TransactionResponse, 0, len(agg.Transactions)),
		Count:         agg.Count,
		TotalItems:    agg.TotalItems,
		TotalSalesTax: entity.FormatCents(agg.TotalSalesTax),
		TotalAmount:   entity.FormatCents(agg.TotalAmount),
		GrandTotal:    entity.FormatCents(agg.GrandTotal),
	}
	for i := range agg.Transactions {
		resp.Transactions = append(resp.Transactions, transactionToResponse(&agg.Transactions[i]))
	}
	return resp
}
