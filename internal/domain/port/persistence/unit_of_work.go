package persistence

import (
	"context"
)

// UnitOfWork coordinates repository operations inside one database
// transaction. Every compound "write the row AND adjust the balance"
// operation in the ledger runs between Begin and Commit, with an explicit
// Rollback on any failure; the repository getters return repositories bound
// to the transaction carried in the context (or the base connection when
// there is none).
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetVendorRepository returns a vendor repository bound to the current transaction
	GetVendorRepository(ctx context.Context) VendorRepository

	// GetUserRepository returns a user repository bound to the current transaction
	GetUserRepository(ctx context.Context) UserRepository

	// GetTransactionRepository returns a transaction repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetBoothRentalRepository returns a booth rental repository bound to the current transaction
	GetBoothRentalRepository(ctx context.Context) BoothRentalRepository

	// GetVendorPaymentRepository returns a vendor payment repository bound to the current transaction
	GetVendorPaymentRepository(ctx context.Context) VendorPaymentRepository

	// GetBalancePaymentRepository returns a balance payment repository bound to the current transaction
	GetBalancePaymentRepository(ctx context.Context) BalancePaymentRepository

	// GetSettingsRepository returns a settings repository bound to the current transaction
	GetSettingsRepository(ctx context.Context) SettingsRepository
}
