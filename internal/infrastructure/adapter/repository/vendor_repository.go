package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
	coreport "github.com/oakmall/consignment-ledger/internal/domain/port/core"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/model"
)

// VendorRepository implements persistence.VendorRepository using GORM
type VendorRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewVendorRepository creates a new VendorRepository instance
func NewVendorRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *VendorRepository {
	return &VendorRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *VendorRepository) modelToEntity(vendorModel *model.Vendor) *entity.Vendor {
	vendor := &entity.Vendor{
		ID:        vendorModel.ID,
		UserID:    vendorModel.UserID,
		Name:      vendorModel.Name,
		CreatedAt: vendorModel.CreatedAt,
		UpdatedAt: vendorModel.UpdatedAt,
	}
	vendor.SetBalance(vendorModel.Balance, r.timeProvider)
	vendor.UpdatedAt = vendorModel.UpdatedAt
	return vendor
}

func (r *VendorRepository) handleDatabaseError(operation string, err error, vendorID int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Vendor not found", map[string]any{
			"vendor_id": vendorID,
		})
		return errs.ErrVendorNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"vendor_id": vendorID,
		"error":     err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateVendor
	}
	if r.errorClassifier.IsConstraintError(err) {
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a vendor by ID
func (r *VendorRepository) GetByID(ctx context.Context, id int64) (*entity.Vendor, error) {
	var vendorModel model.Vendor
	result := r.db.WithContext(ctx).First(&vendorModel, "id = ?", id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting vendor", result.Error, id)
	}
	return r.modelToEntity(&vendorModel), nil
}

// List returns all vendors ordered by ID
func (r *VendorRepository) List(ctx context.Context) ([]*entity.Vendor, error) {
	var vendorModels []model.Vendor
	result := r.db.WithContext(ctx).Order("id").Find(&vendorModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	vendors := make([]*entity.Vendor, 0, len(vendorModels))
	for i := range vendorModels {
		vendors = append(vendors, r.modelToEntity(&vendorModels[i]))
	}
	return vendors, nil
}

// Create inserts a new vendor row
func (r *VendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	vendorModel := model.Vendor{
		ID:        vendor.ID,
		UserID:    vendor.UserID,
		Name:      vendor.Name,
		Balance:   vendor.Balance(),
		CreatedAt: vendor.CreatedAt,
		UpdatedAt: vendor.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&vendorModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating vendor", result.Error, vendor.ID)
	}

	r.logger.Info("Vendor row created", map[string]any{
		"vendor_id": vendor.ID,
		"user_id":   vendor.UserID,
	})
	return nil
}

// Delete removes the vendor row
func (r *VendorRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Vendor{}, "id = ?", id)
	if result.Error != nil {
		return r.handleDatabaseError("deleting vendor", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrVendorNotFound
	}
	return nil
}

// CountByUser returns how many vendors reference the given user account
func (r *VendorRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Vendor{}).Where("user_id = ?", userID).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return count, nil
}

// AdjustBalance applies a signed delta as a single atomic UPDATE. The
// increment runs inside the database ("balance = balance + ?"), so
// concurrent adjustments to the same vendor serialize on the row without a
// read-modify-write window.
func (r *VendorRepository) AdjustBalance(ctx context.Context, id int64, delta int64) (*entity.Vendor, error) {
	result := r.db.WithContext(ctx).Model(&model.Vendor{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return nil, r.handleDatabaseError("adjusting balance", result.Error, id)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Vendor not found during balance adjustment", map[string]any{
			"vendor_id": id,
			"delta":     delta,
		})
		return nil, errs.ErrVendorNotFound
	}

	vendor, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Vendor balance adjusted", map[string]any{
		"vendor_id":   id,
		"delta":       delta,
		"new_balance": vendor.Balance(),
	})
	return vendor, nil
}

// SetBalance overwrites the balance unconditionally
func (r *VendorRepository) SetBalance(ctx context.Context, id int64, balanceCents int64) error {
	result := r.db.WithContext(ctx).Model(&model.Vendor{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"balance":    balanceCents,
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("setting balance", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrVendorNotFound
	}
	return nil
}

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, logger coreport.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

// GetByName retrieves a user by name
func (r *UserRepository) GetByName(ctx context.Context, name string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return &entity.User{
		ID:        userModel.ID,
		Name:      userModel.Name,
		CreatedAt: userModel.CreatedAt,
		UpdatedAt: userModel.UpdatedAt,
	}, nil
}

// Create inserts a new user row and backfills the assigned ID
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.User{
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	user.ID = userModel.ID
	return nil
}

// Delete removes the user row
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}
