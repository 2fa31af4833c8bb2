package persistence

import "context"

// Settings keys consumed by the ledger core
const (
	// SettingStoreCommission is the store's commission percentage, e.g. "13"
	SettingStoreCommission = "Store_Commission"
	// SettingSalesTax is the sales tax percentage, e.g. "7"
	SettingSalesTax = "Sales_Tax"
)

// SettingsRepository is the read/write contract for the key/value settings
// store. The ledger core only reads; absence of a required key is a hard
// error for any operation that needs it.
type SettingsRepository interface {
	// Get returns the value for a key
	//
	// Possible errors:
	// - ErrSettingNotFound: if the key is absent
	Get(ctx context.Context, key string) (string, error)

	// Set writes a key/value pair, creating or replacing it
	Set(ctx context.Context, key, value string) error
}
