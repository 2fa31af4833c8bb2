package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
	coreport "github.com/oakmall/consignment-ledger/internal/domain/port/core"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/model"
)

// SettingsRepository implements persistence.SettingsRepository using GORM
type SettingsRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewSettingsRepository creates a new SettingsRepository instance
func NewSettingsRepository(db *gorm.DB, logger coreport.Logger) *SettingsRepository {
	return &SettingsRepository{db: db, logger: logger}
}

// Get returns the value for a key
func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var settingModel model.Setting
	result := r.db.WithContext(ctx).First(&settingModel, "key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: %s", errs.ErrSettingNotFound, key)
		}
		return "", fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return settingModel.Value, nil
}

// Set writes a key/value pair, creating or replacing it
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	settingModel := model.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&settingModel)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}
