package entity

import (
	"fmt"
	"time"

	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
	coreport "github.com/oakmall/consignment-ledger/internal/domain/port/core"
)

// PaymentMethod represents how a checkout was paid for
type PaymentMethod string

// Payment methods for transactions
const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

// Transaction represents one checkout event. SubTotal, SalesTax and Total are
// derived values: SubTotal is always the sum of the item totals and Total is
// SubTotal + SalesTax. A transaction must never retain stale totals after its
// item membership or amounts change.
type Transaction struct {
	ID            string // Opaque globally-unique identifier
	SubTotal      int64  // Derived: sum of item totals, cents
	SalesTax      int64  // Cents
	Total         int64  // Derived: SubTotal + SalesTax, cents
	PaymentMethod PaymentMethod
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []TransactionItem
}

// NewTransaction creates an empty transaction with validated payment method.
// Items are attached and totals recomputed by the ledger as they are created.
func NewTransaction(id string, salesTax int64, paymentMethod string, timeProvider coreport.TimeProvider) (*Transaction, error) {
	if !isValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidPaymentMethod, paymentMethod)
	}
	if salesTax < 0 {
		return nil, errs.ErrNegativeAmount
	}

	now := timeProvider.Now()
	return &Transaction{
		ID:            id,
		SalesTax:      salesTax,
		PaymentMethod: PaymentMethod(paymentMethod),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Recalculate rederives SubTotal and Total from the attached items and the
// current SalesTax value
func (t *Transaction) Recalculate() {
	var subTotal int64
	for i := range t.Items {
		subTotal += t.Items[i].Total
	}
	t.SubTotal = subTotal
	t.Total = subTotal + t.SalesTax
}

// TransactionItem is a single sold line belonging to one transaction and one
// vendor. Total is always Price * Quantity.
type TransactionItem struct {
	ID            string // Opaque globally-unique identifier
	TransactionID string
	VendorID      int64
	Description   string
	Price         int64 // Unit price, cents
	Quantity      int64
	Total         int64 // Derived: Price * Quantity, cents
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewTransactionItem creates a validated item with its derived total
func NewTransactionItem(id, transactionID string, vendorID int64, description string, price, quantity int64, timeProvider coreport.TimeProvider) (*TransactionItem, error) {
	if vendorID <= 0 {
		return nil, errs.ErrInvalidVendorID
	}
	if price < 0 {
		return nil, errs.ErrNegativeAmount
	}
	if quantity <= 0 {
		return nil, errs.ErrInvalidQuantity
	}

	now := timeProvider.Now()
	item := &TransactionItem{
		ID:            id,
		TransactionID: transactionID,
		VendorID:      vendorID,
		Description:   description,
		Price:         price,
		Quantity:      quantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	item.Recalculate()
	return item, nil
}

// Recalculate rederives the line total from price and quantity
func (i *TransactionItem) Recalculate() {
	i.Total = i.Price * i.Quantity
}

// SaleNet returns the vendor balance contribution of this item for a given
// commission rate: item total minus the store's commission. The rate in
// effect at mutation time is used on both apply and reversal.
func (i *TransactionItem) SaleNet(commissionRate int64) int64 {
	return i.Total - PercentOf(i.Total, commissionRate)
}

func isValidPaymentMethod(method string) bool {
	return method == string(PaymentCash) || method == string(PaymentCard)
}
