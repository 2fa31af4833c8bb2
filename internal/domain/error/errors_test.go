package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"Invalid amount", ErrInvalidAmount, CodeInvalidAmount},
		{"Negative amount maps to invalid amount", ErrNegativeAmount, CodeInvalidAmount},
		{"Invalid vendor ID", ErrInvalidVendorID, CodeInvalidVendorID},
		{"Invalid payment method", ErrInvalidPaymentMethod, CodeInvalidPaymentMethod},
		{"Invalid month", ErrInvalidMonth, CodeInvalidMonth},
		{"Invalid quantity", ErrInvalidQuantity, CodeInvalidQuantity},
		{"Empty transaction", ErrEmptyTransaction, CodeEmptyTransaction},
		{"Invalid rate", ErrInvalidRate, CodeInvalidRate},
		{"Constraint violation", ErrConstraintViolation, CodeConstraintViolation},
		{"Duplicate vendor", ErrDuplicateVendor, CodeDuplicateVendor},
		{"Missing setting", ErrSettingNotFound, CodeMissingSetting},
		{"Vendor not found", ErrVendorNotFound, CodeVendorNotFound},
		{"User not found maps to vendor code", ErrUserNotFound, CodeVendorNotFound},
		{"Transaction not found", ErrTransactionNotFound, CodeTransactionNotFound},
		{"Item not found", ErrItemNotFound, CodeItemNotFound},
		{"Charge not found", ErrChargeNotFound, CodeChargeNotFound},
		{"Payment not found", ErrPaymentNotFound, CodePaymentNotFound},
		{"Unknown error", errors.New("boom"), CodeInternalServer},
		{"Wrapped error keeps its code", fmt.Errorf("context: %w", ErrVendorNotFound), CodeVendorNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ErrorCode(tc.err))
		})
	}
}

func TestBalanceError(t *testing.T) {
	inner := ErrVendorNotFound
	err := NewBalanceError(42, -5000, inner)

	var balanceErr *BalanceError
	assert.True(t, errors.As(err, &balanceErr))
	assert.ErrorIs(t, err, ErrVendorNotFound)
	assert.Contains(t, err.Error(), "vendor 42")
	assert.Contains(t, err.Error(), "-5000")

	fields := balanceErr.LogFields()
	assert.Equal(t, "balance_error", fields["error_type"])
	assert.Equal(t, int64(42), fields["vendor_id"])
	assert.Equal(t, int64(-5000), fields["delta"])
	assert.Equal(t, CodeVendorNotFound, fields["error_code"])
}

func TestLedgerError(t *testing.T) {
	err := NewLedgerError("tx-1", "item-1", 7, "item update", ErrItemNotFound)

	var ledgerErr *LedgerError
	assert.True(t, errors.As(err, &ledgerErr))
	assert.ErrorIs(t, err, ErrItemNotFound)

	fields := ledgerErr.LogFields()
	assert.Equal(t, "ledger_error", fields["error_type"])
	assert.Equal(t, "tx-1", fields["transaction_id"])
	assert.Equal(t, "item-1", fields["item_id"])
	assert.Equal(t, CodeItemNotFound, fields["error_code"])
}

func TestClassifiers(t *testing.T) {
	t.Run("IsNotFoundError", func(t *testing.T) {
		assert.True(t, IsNotFoundError(ErrVendorNotFound))
		assert.True(t, IsNotFoundError(fmt.Errorf("wrap: %w", ErrItemNotFound)))
		assert.False(t, IsNotFoundError(ErrInvalidAmount))
		assert.False(t, IsNotFoundError(ErrSettingNotFound))
	})

	t.Run("IsValidationError", func(t *testing.T) {
		assert.True(t, IsValidationError(ErrInvalidQuantity))
		assert.True(t, IsValidationError(ErrEmptyTransaction))
		assert.False(t, IsValidationError(ErrVendorNotFound))
	})

	t.Run("IsSettingNotFoundError", func(t *testing.T) {
		assert.True(t, IsSettingNotFoundError(fmt.Errorf("wrap: %w", ErrSettingNotFound)))
		assert.False(t, IsSettingNotFoundError(ErrInternalServer))
	})
}
