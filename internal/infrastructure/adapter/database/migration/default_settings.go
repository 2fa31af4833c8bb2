package migration

import (
	"context"
	"errors"

	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
	"github.com/oakmall/consignment-ledger/internal/domain/port/persistence"
)

// Default settings the ledger cannot operate without
var defaultSettings = map[string]string{
	persistence.SettingStoreCommission: "13",
	persistence.SettingSalesTax:        "7",
}

// SeedDefaultSettings writes the required settings keys if they are absent.
// Existing values are never overwritten.
func SeedDefaultSettings(ctx context.Context, settings persistence.SettingsRepository) error {
	for key, value := range defaultSettings {
		_, err := settings.Get(ctx, key)
		if err == nil {
			continue
		}
		if !errors.Is(err, errs.ErrSettingNotFound) {
			return err
		}
		if err := settings.Set(ctx, key, value); err != nil {
			return err
		}
	}

	return nil
}
