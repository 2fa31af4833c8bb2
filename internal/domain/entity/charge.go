package entity

import (
	"fmt"
	"time"

	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
)

// BoothRentalCharge is a periodic charge against a vendor for booth space.
// Creating one decreases the vendor's balance by Amount; deleting one
// restores it.
type BoothRentalCharge struct {
	ID        uint64
	VendorID  int64
	Amount    int64 // Cents
	Year      int
	Month     int // 1-12
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the charge fields before any write
func (c *BoothRentalCharge) Validate() error {
	if c.VendorID <= 0 {
		return errs.ErrInvalidVendorID
	}
	if c.Amount < 0 {
		return errs.ErrNegativeAmount
	}
	return validateMonth(c.Month)
}

// VendorPayment is a payout ("check sent") from the store to a vendor.
// Creating one decreases the vendor's balance by Amount; deleting one
// restores it.
type VendorPayment struct {
	ID          uint64
	VendorID    int64
	Amount      int64 // Cents
	Year        int
	Month       int // 1-12
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the payment fields before any write
func (p *VendorPayment) Validate() error {
	if p.VendorID <= 0 {
		return errs.ErrInvalidVendorID
	}
	if p.Amount < 0 {
		return errs.ErrNegativeAmount
	}
	return validateMonth(p.Month)
}

// BalanceMethod represents how a manual balance settlement was paid
type BalanceMethod string

// Balance payment methods
const (
	BalanceCash  BalanceMethod = "Cash"
	BalanceCheck BalanceMethod = "Check"
	BalanceCard  BalanceMethod = "Card"
)

// BalancePayment is a manual balance settlement. It feeds the monthly
// statement arithmetic but does not mutate the vendor's running balance at
// create or delete time; the two payment types are deliberately asymmetric.
type BalancePayment struct {
	ID            uint64
	VendorID      int64
	Amount        int64 // Cents
	PaymentDate   time.Time
	PaymentMethod BalanceMethod
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the payment fields before any write
func (p *BalancePayment) Validate() error {
	if p.VendorID <= 0 {
		return errs.ErrInvalidVendorID
	}
	if p.Amount < 0 {
		return errs.ErrNegativeAmount
	}
	switch p.PaymentMethod {
	case BalanceCash, BalanceCheck, BalanceCard:
		return nil
	default:
		return fmt.Errorf("%w: %s", errs.ErrInvalidPaymentMethod, p.PaymentMethod)
	}
}

func validateMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidMonth, month)
	}
	return nil
}
