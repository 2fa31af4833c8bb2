package entity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
	"github.com/oakmall/consignment-ledger/internal/domain/port/core"
)

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time { return f.now }
func (f *fixedTimeProvider) Since(t time.Time) core.Duration { return core.Duration(f.now.Sub(t)) }
func (f *fixedTimeProvider) Until(t time.Time) core.Duration { return core.Duration(t.Sub(f.now)) }
func (f *fixedTimeProvider) Sleep(d core.Duration) {}
func (f *fixedTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}

func TestNewTransaction(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}

	t.Run("Valid transaction", func(t *testing.T) {
		tx, err := NewTransaction("tx-1", 91, "CASH", tp)
		assert.NoError(t, err)
		assert.Equal(t, "tx-1", tx.ID)
		assert.Equal(t, int64(91), tx.SalesTax)
		assert.Equal(t, PaymentCash, tx.PaymentMethod)
		assert.Equal(t, tp.now, tx.CreatedAt)
	})

	t.Run("Invalid payment method", func(t *testing.T) {
		_, err := NewTransaction("tx-1", 0, "BITCOIN", tp)
		assert.ErrorIs(t, err, errs.ErrInvalidPaymentMethod)
	})

	t.Run("Negative sales tax", func(t *testing.T) {
		_, err := NewTransaction("tx-1", -1, "CARD", tp)
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})
}

func TestTransactionRecalculate(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Now()}

	tx, err := NewTransaction("tx-1", 91, "CARD", tp)
	assert.NoError(t, err)

	itemA, err := NewTransactionItem("item-a", tx.ID, 1, "Vase", 500, 2, tp)
	assert.NoError(t, err)
	itemB, err := NewTransactionItem("item-b", tx.ID, 2, "Lamp", 300, 1, tp)
	assert.NoError(t, err)

	tx.Items = []TransactionItem{*itemA, *itemB}
	tx.Recalculate()

	assert.Equal(t, int64(1300), tx.SubTotal)
	assert.Equal(t, int64(1391), tx.Total)
}

func TestNewTransactionItem(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Now()}

	t.Run("Derived total", func(t *testing.T) {
		item, err := NewTransactionItem("item-1", "tx-1", 7, "Chair", 2550, 3, tp)
		assert.NoError(t, err)
		assert.Equal(t, int64(7650), item.Total)
	})

	t.Run("Invalid vendor", func(t *testing.T) {
		_, err := NewTransactionItem("item-1", "tx-1", 0, "Chair", 100, 1, tp)
		assert.ErrorIs(t, err, errs.ErrInvalidVendorID)
	})

	t.Run("Negative price", func(t *testing.T) {
		_, err := NewTransactionItem("item-1", "tx-1", 1, "Chair", -100, 1, tp)
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})

	t.Run("Zero quantity", func(t *testing.T) {
		_, err := NewTransactionItem("item-1", "tx-1", 1, "Chair", 100, 0, tp)
		assert.ErrorIs(t, err, errs.ErrInvalidQuantity)
	})
}

func TestSaleNet(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Now()}

	item, err := NewTransactionItem("item-1", "tx-1", 1, "Print", 1000, 1, tp)
	assert.NoError(t, err)

	// 13% commission on 10.00 leaves the vendor 8.70
	assert.Equal(t, int64(870), item.SaleNet(1300))
	// Zero commission credits the full total
	assert.Equal(t, int64(1000), item.SaleNet(0))
}
