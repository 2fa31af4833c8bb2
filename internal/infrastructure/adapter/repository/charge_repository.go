package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
	coreport "github.com/oakmall/consignment-ledger/internal/domain/port/core"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/model"
)

// BoothRentalRepository implements persistence.BoothRentalRepository using GORM
type BoothRentalRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewBoothRentalRepository creates a new BoothRentalRepository instance
func NewBoothRentalRepository(db *gorm.DB, logger coreport.Logger) *BoothRentalRepository {
	return &BoothRentalRepository{db: db, logger: logger}
}

func chargeModelToEntity(m *model.BoothRentalCharge) entity.BoothRentalCharge {
	return entity.BoothRentalCharge{
		ID:        m.ID,
		VendorID:  m.VendorID,
		Amount:    m.Amount,
		Year:      m.Year,
		Month:     m.Month,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Create inserts a charge row, assigning its ID
func (r *BoothRentalRepository) Create(ctx context.Context, charge *entity.BoothRentalCharge) error {
	chargeModel := model.BoothRentalCharge{
		VendorID:  charge.VendorID,
		Amount:    charge.Amount,
		Year:      charge.Year,
		Month:     charge.Month,
		CreatedAt: charge.CreatedAt,
		UpdatedAt: charge.UpdatedAt,
	}
	result := r.db.WithContext(ctx).Create(&chargeModel)
	if result.Error != nil {
		if IsConstraintError(result.Error) {
			return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, result.Error.Error())
		}
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	charge.ID = chargeModel.ID
	return nil
}

// GetByID retrieves a charge
func (r *BoothRentalRepository) GetByID(ctx context.Context, id uint64) (*entity.BoothRentalCharge, error) {
	var chargeModel model.BoothRentalCharge
	result := r.db.WithContext(ctx).First(&chargeModel, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrChargeNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	charge := chargeModelToEntity(&chargeModel)
	return &charge, nil
}

// Update persists a charge's fields
func (r *BoothRentalRepository) Update(ctx context.Context, charge *entity.BoothRentalCharge) error {
	result := r.db.WithContext(ctx).Model(&model.BoothRentalCharge{}).
		Where("id = ?", charge.ID).
		Updates(map[string]interface{}{
			"vendor_id":  charge.VendorID,
			"amount":     charge.Amount,
			"year":       charge.Year,
			"month":      charge.Month,
			"updated_at": charge.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrChargeNotFound
	}
	return nil
}

// Delete removes a charge row
func (r *BoothRentalRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.BoothRentalCharge{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrChargeNotFound
	}
	return nil
}

// SumBefore sums a vendor's charges strictly before (year, month)
func (r *BoothRentalRepository) SumBefore(ctx context.Context, vendorID int64, year, month int) (int64, error) {
	var sum int64
	result := r.db.WithContext(ctx).Model(&model.BoothRentalCharge{}).
		Where("vendor_id = ? AND (year < ? OR (year = ? AND month < ?))", vendorID, year, year, month).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return sum, nil
}

// ListForMonth returns a vendor's charges for exactly (year, month)
func (r *BoothRentalRepository) ListForMonth(ctx context.Context, vendorID int64, year, month int) ([]entity.BoothRentalCharge, error) {
	var chargeModels []model.BoothRentalCharge
	result := r.db.WithContext(ctx).
		Where("vendor_id = ? AND year = ? AND month = ?", vendorID, year, month).
		Order("id ASC").
		Find(&chargeModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	charges := make([]entity.BoothRentalCharge, 0, len(chargeModels))
	for i := range chargeModels {
		charges = append(charges, chargeModelToEntity(&chargeModels[i]))
	}
	return charges, nil
}

// DeleteByVendor removes all of a vendor's charges
func (r *BoothRentalRepository) DeleteByVendor(ctx context.Context, vendorID int64) error {
	result := r.db.WithContext(ctx).Delete(&model.BoothRentalCharge{}, "vendor_id = ?", vendorID)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}

// VendorPaymentRepository implements persistence.VendorPaymentRepository using GORM
type VendorPaymentRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewVendorPaymentRepository creates a new VendorPaymentRepository instance
func NewVendorPaymentRepository(db *gorm.DB, logger coreport.Logger) *VendorPaymentRepository {
	return &VendorPaymentRepository{db: db, logger: logger}
}

func paymentModelToEntity(m *model.VendorPayment) entity.VendorPayment {
	return entity.VendorPayment{
		ID:          m.ID,
		VendorID:    m.VendorID,
		Amount:      m.Amount,
		Year:        m.Year,
		Month:       m.Month,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Create inserts a payment row, assigning its ID
func (r *VendorPaymentRepository) Create(ctx context.Context, payment *entity.VendorPayment) error {
	paymentModel := model.VendorPayment{
		VendorID:    payment.VendorID,
		Amount:      payment.Amount,
		Year:        payment.Year,
		Month:       payment.Month,
		Description: payment.Description,
		CreatedAt:   payment.CreatedAt,
		UpdatedAt:   payment.UpdatedAt,
	}
	result := r.db.WithContext(ctx).Create(&paymentModel)
	if result.Error != nil {
		if IsConstraintError(result.Error) {
			return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, result.Error.Error())
		}
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	payment.ID = paymentModel.ID
	return nil
}

// GetByID retrieves a payment
func (r *VendorPaymentRepository) GetByID(ctx context.Context, id uint64) (*entity.VendorPayment, error) {
	var paymentModel model.VendorPayment
	result := r.db.WithContext(ctx).First(&paymentModel, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	payment := paymentModelToEntity(&paymentModel)
	return &payment, nil
}

// Update persists a payment's fields
func (r *VendorPaymentRepository) Update(ctx context.Context, payment *entity.VendorPayment) error {
	result := r.db.WithContext(ctx).Model(&model.VendorPayment{}).
		Where("id = ?", payment.ID).
		Updates(map[string]interface{}{
			"vendor_id":   payment.VendorID,
			"amount":      payment.Amount,
			"year":        payment.Year,
			"month":       payment.Month,
			"description": payment.Description,
			"updated_at":  payment.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrPaymentNotFound
	}
	return nil
}

// Delete removes a payment row
func (r *VendorPaymentRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.VendorPayment{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrPaymentNotFound
	}
	return nil
}

// SumBefore sums a vendor's payments strictly before (year, month)
func (r *VendorPaymentRepository) SumBefore(ctx context.Context, vendorID int64, year, month int) (int64, error) {
	var sum int64
	result := r.db.WithContext(ctx).Model(&model.VendorPayment{}).
		Where("vendor_id = ? AND (year < ? OR (year = ? AND month < ?))", vendorID, year, year, month).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return sum, nil
}

// ListForMonth returns a vendor's payments for exactly (year, month)
func (r *VendorPaymentRepository) ListForMonth(ctx context.Context, vendorID int64, year, month int) ([]entity.VendorPayment, error) {
	var paymentModels []model.VendorPayment
	result := r.db.WithContext(ctx).
		Where("vendor_id = ? AND year = ? AND month = ?", vendorID, year, month).
		Order("id ASC").
		Find(&paymentModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	payments := make([]entity.VendorPayment, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, paymentModelToEntity(&paymentModels[i]))
	}
	return payments, nil
}

// DeleteByVendor removes all of a vendor's payments
func (r *VendorPaymentRepository) DeleteByVendor(ctx context.Context, vendorID int64) error {
	result := r.db.WithContext(ctx).Delete(&model.VendorPayment{}, "vendor_id = ?", vendorID)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}

// BalancePaymentRepository implements persistence.BalancePaymentRepository using GORM
type BalancePaymentRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewBalancePaymentRepository creates a new BalancePaymentRepository instance
func NewBalancePaymentRepository(db *gorm.DB, logger coreport.Logger) *BalancePaymentRepository {
	return &BalancePaymentRepository{db: db, logger: logger}
}

func balancePaymentModelToEntity(m *model.BalancePayment) entity.BalancePayment {
	return entity.BalancePayment{
		ID:            m.ID,
		VendorID:      m.VendorID,
		Amount:        m.Amount,
		PaymentDate:   m.PaymentDate,
		PaymentMethod: entity.BalanceMethod(m.PaymentMethod),
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// Create inserts a payment row, assigning its ID
func (r *BalancePaymentRepository) Create(ctx context.Context, payment *entity.BalancePayment) error {
	paymentModel := model.BalancePayment{
		VendorID:      payment.VendorID,
		Amount:        payment.Amount,
		PaymentDate:   payment.PaymentDate,
		PaymentMethod: string(payment.PaymentMethod),
		Description:   payment.Description,
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}
	result := r.db.WithContext(ctx).Create(&paymentModel)
	if result.Error != nil {
		if IsConstraintError(result.Error) {
			return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, result.Error.Error())
		}
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	payment.ID = paymentModel.ID
	return nil
}

// GetByID retrieves a payment
func (r *BalancePaymentRepository) GetByID(ctx context.Context, id uint64) (*entity.BalancePayment, error) {
	var paymentModel model.BalancePayment
	result := r.db.WithContext(ctx).First(&paymentModel, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	payment := balancePaymentModelToEntity(&paymentModel)
	return &payment, nil
}

// Update persists a payment's fields
func (r *BalancePaymentRepository) Update(ctx context.Context, payment *entity.BalancePayment) error {
	result := r.db.WithContext(ctx).Model(&model.BalancePayment{}).
		Where("id = ?", payment.ID).
		Updates(map[string]interface{}{
			"vendor_id":      payment.VendorID,
			"amount":         payment.Amount,
			"payment_date":   payment.PaymentDate,
			"payment_method": string(payment.PaymentMethod),
			"description":    payment.Description,
			"updated_at":     payment.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrPaymentNotFound
	}
	return nil
}

// Delete removes a payment row
func (r *BalancePaymentRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.BalancePayment{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrPaymentNotFound
	}
	return nil
}

// SumBefore sums a vendor's balance payments with paymentDate strictly
// before the given instant
func (r *BalancePaymentRepository) SumBefore(ctx context.Context, vendorID int64, before time.Time) (int64, error) {
	var sum int64
	result := r.db.WithContext(ctx).Model(&model.BalancePayment{}).
		Where("vendor_id = ? AND payment_date < ?", vendorID, before).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return sum, nil
}

// ListInRange returns a vendor's balance payments with paymentDate in [from, to)
func (r *BalancePaymentRepository) ListInRange(ctx context.Context, vendorID int64, from, to time.Time) ([]entity.BalancePayment, error) {
	var paymentModels []model.BalancePayment
	result := r.db.WithContext(ctx).
		Where("vendor_id = ? AND payment_date >= ? AND payment_date < ?", vendorID, from, to).
		Order("payment_date ASC").
		Find(&paymentModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	payments := make([]entity.BalancePayment, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, balancePaymentModelToEntity(&paymentModels[i]))
	}
	return payments, nil
}

// DeleteByVendor removes all of a vendor's balance payments
func (r *BalancePaymentRepository) DeleteByVendor(ctx context.Context, vendorID int64) error {
	result := r.db.WithContext(ctx).Delete(&model.BalancePayment{}, "vendor_id = ?", vendorID)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}
