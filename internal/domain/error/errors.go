package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidAmount        = 4001
	CodeInvalidVendorID      = 4002
	CodeInvalidPaymentMethod = 4003
	CodeInvalidMonth         = 4004
	CodeInvalidQuantity      = 4005
	CodeEmptyTransaction     = 4006
	CodeInvalidRate          = 4007
	CodeConstraintViolation  = 4008
	CodeDuplicateVendor      = 4009
	CodeMissingSetting       = 4010
	CodeVendorNotFound       = 4040
	CodeTransactionNotFound  = 4041
	CodeItemNotFound         = 4042
	CodeChargeNotFound       = 4043
	CodePaymentNotFound      = 4044

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInvalidAmount is returned when a monetary amount is malformed
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when an amount that must be positive is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidVendorID is returned when the vendor ID is not a positive integer
	ErrInvalidVendorID = errors.New("vendor ID must be positive")

	// ErrInvalidPaymentMethod is returned when the payment method is not one of the allowed values
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidMonth is returned when a month value falls outside 1-12
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrInvalidQuantity is returned when an item quantity is not positive
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrEmptyTransaction is returned when a transaction is created with no items
	ErrEmptyTransaction = errors.New("transaction must contain at least one item")

	// ErrInvalidRate is returned when a configured percentage rate cannot be parsed
	ErrInvalidRate = errors.New("invalid percentage rate")

	// ErrVendorNotFound is returned when the requested vendor doesn't exist
	ErrVendorNotFound = errors.New("vendor not found")

	// ErrUserNotFound is returned when the requested user account doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrItemNotFound is returned when the requested transaction item doesn't exist
	ErrItemNotFound = errors.New("transaction item not found")

	// ErrChargeNotFound is returned when the requested booth rental charge doesn't exist
	ErrChargeNotFound = errors.New("booth rental charge not found")

	// ErrPaymentNotFound is returned when the requested payment doesn't exist
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrSettingNotFound is returned when a required settings key is absent.
	// Every balance-affecting operation treats this as a hard failure: a
	// missing commission or tax rate must abort the whole compound write.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrDuplicateVendor is returned when trying to create a vendor that already exists
	ErrDuplicateVendor = errors.New("vendor already exists")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidVendorID):
		return CodeInvalidVendorID
	case errors.Is(err, ErrInvalidPaymentMethod):
		return CodeInvalidPaymentMethod
	case errors.Is(err, ErrInvalidMonth):
		return CodeInvalidMonth
	case errors.Is(err, ErrInvalidQuantity):
		return CodeInvalidQuantity
	case errors.Is(err, ErrEmptyTransaction):
		return CodeEmptyTransaction
	case errors.Is(err, ErrInvalidRate):
		return CodeInvalidRate
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrDuplicateVendor):
		return CodeDuplicateVendor
	case errors.Is(err, ErrSettingNotFound):
		return CodeMissingSetting
	case errors.Is(err, ErrVendorNotFound), errors.Is(err, ErrUserNotFound):
		return CodeVendorNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrItemNotFound):
		return CodeItemNotFound
	case errors.Is(err, ErrChargeNotFound):
		return CodeChargeNotFound
	case errors.Is(err, ErrPaymentNotFound):
		return CodePaymentNotFound
	default:
		return CodeInternalServer
	}
}

// BalanceError represents a failure while adjusting a vendor's running balance
type BalanceError struct {
	VendorID int64
	Delta    int64
	Err      error
}

// Error implements the error interface for BalanceError
func (e *BalanceError) Error() string {
	return fmt.Sprintf("balance adjustment failed for vendor %d (delta: %d cents): %v",
		e.VendorID, e.Delta, e.Err)
}

// Unwrap returns the underlying error
func (e *BalanceError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *BalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "balance_error",
		"vendor_id":  e.VendorID,
		"delta":      e.Delta,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewBalanceError creates a detailed balance adjustment error
func NewBalanceError(vendorID, delta int64, err error) error {
	return &BalanceError{VendorID: vendorID, Delta: delta, Err: err}
}

// LedgerError represents a failure inside a compound ledger operation
// (transaction create / item update / item delete)
type LedgerError struct {
	TransactionID string
	ItemID        string
	VendorID      int64
	Reason        string
	Err           error
}

// Error implements the error interface for LedgerError
func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger operation failed for transaction %s (item: %s, vendor: %d): %s - %v",
		e.TransactionID, e.ItemID, e.VendorID, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *LedgerError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "ledger_error",
		"transaction_id": e.TransactionID,
		"item_id":        e.ItemID,
		"vendor_id":      e.VendorID,
		"reason":         e.Reason,
		"error":          e.Err.Error(),
		"error_code":     ErrorCode(e.Err),
	}
}

// NewLedgerError creates a detailed ledger operation error
func NewLedgerError(transactionID, itemID string, vendorID int64, reason string, err error) error {
	return &LedgerError{
		TransactionID: transactionID,
		ItemID:        itemID,
		VendorID:      vendorID,
		Reason:        reason,
		Err:           err,
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrVendorNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrChargeNotFound) ||
		errors.Is(err, ErrPaymentNotFound)
}

// IsValidationError checks if the error is a request validation failure
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrInvalidVendorID) ||
		errors.Is(err, ErrInvalidPaymentMethod) ||
		errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrEmptyTransaction) ||
		errors.Is(err, ErrInvalidRate)
}

// IsSettingNotFoundError checks if the error is a missing settings key
func IsSettingNotFoundError(err error) bool {
	return errors.Is(err, ErrSettingNotFound)
}
