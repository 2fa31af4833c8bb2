package persistence

import (
	"context"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
)

// VendorRepository defines the vendor-side persistence contract. The running
// balance column is only ever written through AdjustBalance and SetBalance;
// no other component may touch it.
type VendorRepository interface {
	// GetByID retrieves a vendor by its externally assigned ID
	//
	// Possible errors:
	// - ErrVendorNotFound: if no vendor with that ID exists
	// - ErrDatabaseConnection: if the database is unreachable
	GetByID(ctx context.Context, id int64) (*entity.Vendor, error)

	// List returns the full vendor roster ordered by ID
	List(ctx context.Context) ([]*entity.Vendor, error)

	// Create inserts a new vendor row
	//
	// Possible errors:
	// - ErrDuplicateVendor: if a vendor with that ID already exists
	Create(ctx context.Context, vendor *entity.Vendor) error

	// Delete removes the vendor row
	Delete(ctx context.Context, id int64) error

	// CountByUser returns how many vendors reference the given user account.
	// Used to decide whether deleting a vendor should also remove the user.
	CountByUser(ctx context.Context, userID uint64) (int64, error)

	// AdjustBalance applies a signed delta as a single atomic
	// "balance = balance + delta" update and returns the updated vendor.
	// This is the only derived write path for the balance column.
	//
	// Possible errors:
	// - ErrVendorNotFound: if no vendor with that ID exists
	AdjustBalance(ctx context.Context, id int64, delta int64) (*entity.Vendor, error)

	// SetBalance overwrites the balance unconditionally. Used by the staff
	// correction endpoint and the monthly report's current-month resync;
	// callers are expected to audit its use.
	SetBalance(ctx context.Context, id int64, balanceCents int64) error
}

// UserRepository defines persistence for the accounts backing vendors
type UserRepository interface {
	// GetByName retrieves a user by name
	//
	// Possible errors:
	// - ErrUserNotFound: if no user with that name exists
	GetByName(ctx context.Context, name string) (*entity.User, error)

	// Create inserts a new user row, assigning its ID
	Create(ctx context.Context, user *entity.User) error

	// Delete removes the user row
	Delete(ctx context.Context, id uint64) error
}
