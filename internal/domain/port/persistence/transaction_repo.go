package persistence

import (
	"context"
	"time"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
)

// SoldItem is the report-side projection of a transaction item joined with
// its parent transaction's payment method.
type SoldItem struct {
	Quantity      int64
	Total         int64
	PaymentMethod entity.PaymentMethod
}

// TransactionRepository defines persistence for transactions and their items
type TransactionRepository interface {
	// Create inserts the transaction row (items are created separately so
	// the ledger can interleave balance deltas inside one enclosing
	// database transaction)
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a transaction with its items attached
	//
	// Possible errors:
	// - ErrTransactionNotFound
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)

	// Delete removes the transaction row
	Delete(ctx context.Context, id string) error

	// UpdateTotals persists recomputed subTotal/salesTax/total for a transaction
	UpdateTotals(ctx context.Context, id string, subTotal, salesTax, total int64, updatedAt time.Time) error

	// ListAll returns every transaction with items, newest first
	ListAll(ctx context.Context) ([]entity.Transaction, error)

	// ListInRange returns transactions created in [from, to) with items,
	// newest first
	ListInRange(ctx context.Context, from, to time.Time) ([]entity.Transaction, error)

	// CreateItem inserts a transaction item row
	CreateItem(ctx context.Context, item *entity.TransactionItem) error

	// GetItem retrieves a single item
	//
	// Possible errors:
	// - ErrItemNotFound
	GetItem(ctx context.Context, id string) (*entity.TransactionItem, error)

	// UpdateItem persists an item's fields
	UpdateItem(ctx context.Context, item *entity.TransactionItem) error

	// DeleteItem removes an item row
	DeleteItem(ctx context.Context, id string) error

	// CountItems returns the number of items left on a transaction
	CountItems(ctx context.Context, transactionID string) (int64, error)

	// SumVendorItemsBefore sums item totals for a vendor strictly before the
	// given instant. Historical bucket of the monthly report.
	SumVendorItemsBefore(ctx context.Context, vendorID int64, before time.Time) (int64, error)

	// ListVendorItemsInRange returns a vendor's sold items created in
	// [from, to) joined with the parent payment method. Current bucket of
	// the monthly report.
	ListVendorItemsInRange(ctx context.Context, vendorID int64, from, to time.Time) ([]SoldItem, error)

	// DeleteItemsByVendor removes all items belonging to a vendor.
	// Used by the vendor delete cascade.
	DeleteItemsByVendor(ctx context.Context, vendorID int64) error
}
