package entity

import (
	"time"

	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
	coreport "github.com/oakmall/consignment-ledger/internal/domain/port/core"
)

// Vendor represents a consignment vendor with a running ledger balance.
// Positive balance means the store owes the vendor; negative means the
// vendor owes the store.
type Vendor struct {
	ID        int64  // Externally assigned identifier, not auto-generated
	UserID    uint64 // Backing user account; several vendors may share one
	Name      string
	balance   int64 // Running balance in cents (private)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewVendor creates a new vendor with a zero opening balance
func NewVendor(id int64, userID uint64, name string, timeProvider coreport.TimeProvider) (*Vendor, error) {
	if id <= 0 {
		return nil, errs.ErrInvalidVendorID
	}

	now := timeProvider.Now()
	return &Vendor{
		ID:        id,
		UserID:    userID,
		Name:      name,
		balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Balance returns the current balance in cents
func (v *Vendor) Balance() int64 {
	return v.balance
}

// FormattedBalance returns the balance as a decimal string with two places
func (v *Vendor) FormattedBalance() string {
	return FormatCents(v.balance)
}

// SetBalance overwrites the balance directly (repositories and the
// monthly-statement resync path are the only legitimate callers)
func (v *Vendor) SetBalance(balanceCents int64, timeProvider coreport.TimeProvider) {
	v.balance = balanceCents
	v.UpdatedAt = timeProvider.Now()
}

// User represents the account that owns one or more vendors. Authentication
// lives elsewhere; the ledger only needs the ownership link so it can create
// the account lazily with a vendor and remove it with the last one.
type User struct {
	ID        uint64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
