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
	"github.com/oakmall/consignment-ledger/internal/domain/port/persistence"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/model"
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{db: db, logger: logger}
}

func transactionModelToEntity(m *model.Transaction) entity.Transaction {
	txn := entity.Transaction{
		ID:            m.ID,
		SubTotal:      m.SubTotal,
		SalesTax:      m.SalesTax,
		Total:         m.Total,
		PaymentMethod: entity.PaymentMethod(m.PaymentMethod),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	for i := range m.Items {
		txn.Items = append(txn.Items, itemModelToEntity(&m.Items[i]))
	}
	return txn
}

func itemModelToEntity(m *model.TransactionItem) entity.TransactionItem {
	return entity.TransactionItem{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		VendorID:      m.VendorID,
		Description:   m.Description,
		Price:         m.Price,
		Quantity:      m.Quantity,
		Total:         m.Total,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// Create inserts the transaction row
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.Transaction{
		ID:            transaction.ID,
		SubTotal:      transaction.SubTotal,
		SalesTax:      transaction.SalesTax,
		Total:         transaction.Total,
		PaymentMethod: string(transaction.PaymentMethod),
		CreatedAt:     transaction.CreatedAt,
		UpdatedAt:     transaction.UpdatedAt,
	}
	result := r.db.WithContext(ctx).Create(&transactionModel)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}

// GetByID retrieves a transaction with its items attached
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).Preload("Items").First(&transactionModel, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	txn := transactionModelToEntity(&transactionModel)
	return &txn, nil
}

// Delete removes the transaction row
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// UpdateTotals persists recomputed subTotal/salesTax/total
func (r *TransactionRepository) UpdateTotals(ctx context.Context, id string, subTotal, salesTax, total int64, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sub_total":  subTotal,
			"sales_tax":  salesTax,
			"total":      total,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// ListAll returns every transaction with items, newest first
func (r *TransactionRepository) ListAll(ctx context.Context) ([]entity.Transaction, error) {
	var transactionModels []model.Transaction
	result := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&transactionModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return modelsToEntities(transactionModels), nil
}

// ListInRange returns transactions created in [from, to) with items, newest first
func (r *TransactionRepository) ListInRange(ctx context.Context, from, to time.Time) ([]entity.Transaction, error) {
	var transactionModels []model.Transaction
	result := r.db.WithContext(ctx).Preload("Items").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return modelsToEntities(transactionModels), nil
}

func modelsToEntities(transactionModels []model.Transaction) []entity.Transaction {
	transactions := make([]entity.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		transactions = append(transactions, transactionModelToEntity(&transactionModels[i]))
	}
	return transactions
}

// CreateItem inserts a transaction item row
func (r *TransactionRepository) CreateItem(ctx context.Context, item *entity.TransactionItem) error {
	itemModel := model.TransactionItem{
		ID:            item.ID,
		TransactionID: item.TransactionID,
		VendorID:      item.VendorID,
		Description:   item.Description,
		Price:         item.Price,
		Quantity:      item.Quantity,
		Total:         item.Total,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
	result := r.db.WithContext(ctx).Create(&itemModel)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}

// GetItem retrieves a single item
func (r *TransactionRepository) GetItem(ctx context.Context, id string) (*entity.TransactionItem, error) {
	var itemModel model.TransactionItem
	result := r.db.WithContext(ctx).First(&itemModel, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	item := itemModelToEntity(&itemModel)
	return &item, nil
}

// UpdateItem persists an item's fields
func (r *TransactionRepository) UpdateItem(ctx context.Context, item *entity.TransactionItem) error {
	result := r.db.WithContext(ctx).Model(&model.TransactionItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"vendor_id":   item.VendorID,
			"description": item.Description,
			"price":       item.Price,
			"quantity":    item.Quantity,
			"total":       item.Total,
			"updated_at":  item.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrItemNotFound
	}
	return nil
}

// DeleteItem removes an item row
func (r *TransactionRepository) DeleteItem(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionItem{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrItemNotFound
	}
	return nil
}

// CountItems returns the number of items left on a transaction
func (r *TransactionRepository) CountItems(ctx context.Context, transactionID string) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.TransactionItem{}).
		Where("transaction_id = ?", transactionID).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return count, nil
}

// SumVendorItemsBefore sums item totals for a vendor strictly before the
// given instant
func (r *TransactionRepository) SumVendorItemsBefore(ctx context.Context, vendorID int64, before time.Time) (int64, error) {
	var sum int64
	result := r.db.WithContext(ctx).Model(&model.TransactionItem{}).
		Where("vendor_id = ? AND created_at < ?", vendorID, before).
		Select("COALESCE(SUM(total), 0)").
		Scan(&sum)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return sum, nil
}

// ListVendorItemsInRange returns a vendor's items created in [from, to)
// joined with the parent transaction's payment method
func (r *TransactionRepository) ListVendorItemsInRange(ctx context.Context, vendorID int64, from, to time.Time) ([]persistence.SoldItem, error) {
	var rows []struct {
		Quantity      int64
		Total         int64
		PaymentMethod string
	}
	result := r.db.WithContext(ctx).
		Table("transaction_items").
		Select("transaction_items.quantity, transaction_items.total, transactions.payment_method").
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Where("transaction_items.vendor_id = ? AND transaction_items.created_at >= ? AND transaction_items.created_at < ?", vendorID, from, to).
		Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	items := make([]persistence.SoldItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, persistence.SoldItem{
			Quantity:      row.Quantity,
			Total:         row.Total,
			PaymentMethod: entity.PaymentMethod(row.PaymentMethod),
		})
	}
	return items, nil
}

// DeleteItemsByVendor removes all items belonging to a vendor
func (r *TransactionRepository) DeleteItemsByVendor(ctx context.Context, vendorID int64) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionItem{}, "vendor_id = ?", vendorID)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}
