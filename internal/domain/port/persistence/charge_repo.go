package persistence

import (
	"context"
	"time"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
)

// BoothRentalRepository defines persistence for booth rental charges
type BoothRentalRepository interface {
	// Create inserts a charge row, assigning its ID
	Create(ctx context.Context, charge *entity.BoothRentalCharge) error

	// GetByID retrieves a charge
	//
	// Possible errors:
	// - ErrChargeNotFound
	GetByID(ctx context.Context, id uint64) (*entity.BoothRentalCharge, error)

	// Update persists a charge's fields
	Update(ctx context.Context, charge *entity.BoothRentalCharge) error

	// Delete removes a charge row
	Delete(ctx context.Context, id uint64) error

	// SumBefore sums a vendor's charges strictly before (year, month),
	// using (y < year) OR (y == year AND m < month) ordering
	SumBefore(ctx context.Context, vendorID int64, year, month int) (int64, error)

	// ListForMonth returns a vendor's charges for exactly (year, month)
	ListForMonth(ctx context.Context, vendorID int64, year, month int) ([]entity.BoothRentalCharge, error)

	// DeleteByVendor removes all of a vendor's charges (vendor delete cascade)
	DeleteByVendor(ctx context.Context, vendorID int64) error
}

// VendorPaymentRepository defines persistence for vendor payouts
type VendorPaymentRepository interface {
	// Create inserts a payment row, assigning its ID
	Create(ctx context.Context, payment *entity.VendorPayment) error

	// GetByID retrieves a payment
	//
	// Possible errors:
	// - ErrPaymentNotFound
	GetByID(ctx context.Context, id uint64) (*entity.VendorPayment, error)

	// Update persists a payment's fields
	Update(ctx context.Context, payment *entity.VendorPayment) error

	// Delete removes a payment row
	Delete(ctx context.Context, id uint64) error

	// SumBefore sums a vendor's payments strictly before (year, month)
	SumBefore(ctx context.Context, vendorID int64, year, month int) (int64, error)

	// ListForMonth returns a vendor's payments for exactly (year, month)
	ListForMonth(ctx context.Context, vendorID int64, year, month int) ([]entity.VendorPayment, error)

	// DeleteByVendor removes all of a vendor's payments (vendor delete cascade)
	DeleteByVendor(ctx context.Context, vendorID int64) error
}

// BalancePaymentRepository defines persistence for manual balance settlements
type BalancePaymentRepository interface {
	// Create inserts a payment row, assigning its ID
	Create(ctx context.Context, payment *entity.BalancePayment) error

	// GetByID retrieves a payment
	//
	// Possible errors:
	// - ErrPaymentNotFound
	GetByID(ctx context.Context, id uint64) (*entity.BalancePayment, error)

	// Update persists a payment's fields
	Update(ctx context.Context, payment *entity.BalancePayment) error

	// Delete removes a payment row
	Delete(ctx context.Context, id uint64) error

	// SumBefore sums a vendor's balance payments with paymentDate strictly
	// before the given instant
	SumBefore(ctx context.Context, vendorID int64, before time.Time) (int64, error)

	// ListInRange returns a vendor's balance payments with paymentDate in
	// [from, to)
	ListInRange(ctx context.Context, vendorID int64, from, to time.Time) ([]entity.BalancePayment, error)

	// DeleteByVendor removes all of a vendor's balance payments (vendor delete cascade)
	DeleteByVendor(ctx context.Context, vendorID int64) error
}
