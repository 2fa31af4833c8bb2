package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
	"github.com/oakmall/consignment-ledger/internal/domain/port/core"
	"github.com/oakmall/consignment-ledger/internal/domain/port/persistence"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/database"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/logger"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/model"
)

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time { return f.now }
func (f *fixedTimeProvider) Since(t time.Time) core.Duration { return core.Duration(f.now.Sub(t)) }
func (f *fixedTimeProvider) Until(t time.Time) core.Duration { return core.Duration(t.Sub(f.now)) }
func (f *fixedTimeProvider) Sleep(d core.Duration) {}
func (f *fixedTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}

// setupLedgerTest wires the service against an in-memory sqlite database
// with the store commission at 13% and sales tax at 7%
func setupLedgerTest(t *testing.T, tp *fixedTimeProvider) (*Service, persistence.UnitOfWork) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Vendor{},
		&model.Transaction{}, &model.TransactionItem{},
		&model.BoothRentalCharge{}, &model.VendorPayment{}, &model.BalancePayment{},
		&model.Setting{},
	))

	log := logger.NewNoopLogger()
	uow := database.NewUnitOfWork(db, log, tp)

	ctx := context.Background()
	settings := uow.GetSettingsRepository(ctx)
	require.NoError(t, settings.Set(ctx, persistence.SettingStoreCommission, "13"))
	require.NoError(t, settings.Set(ctx, persistence.SettingSalesTax, "7"))

	return NewService(uow, tp, log), uow
}

func seedVendor(t *testing.T, uow persistence.UnitOfWork, tp *fixedTimeProvider, id int64, name string) {
	t.Helper()
	vendor, err := entity.NewVendor(id, 1, name, tp)
	require.NoError(t, err)
	require.NoError(t, uow.GetVendorRepository(context.Background()).Create(context.Background(), vendor))
}

func vendorBalance(t *testing.T, uow persistence.UnitOfWork, id int64) int64 {
	t.Helper()
	vendor, err := uow.GetVendorRepository(context.Background()).GetByID(context.Background(), id)
	require.NoError(t, err)
	return vendor.Balance()
}

func TestCreateTransaction(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)}
	svc, uow := setupLedgerTest(t, tp)
	ctx := context.Background()
	seedVendor(t, uow, tp, 1, "Alice")
	seedVendor(t, uow, tp, 2, "Bob")

	txn, err := svc.CreateTransaction(ctx, CreateTransactionInput{
		Items: []ItemInput{
			{VendorID: 1, Description: "Vase", Price: 500, Quantity: 2},
			{VendorID: 2, Description: "Lamp", Price: 300, Quantity: 1},
		},
		SalesTax:      91,
		PaymentMethod: "CASH",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1300), txn.SubTotal)
	assert.Equal(t, int64(1391), txn.Total)
	assert.Len(t, txn.Items, 2)

	// Each vendor is credited its item total minus the 13% commission
	assert.Equal(t, int64(870), vendorBalance(t, uow, 1))
	assert.Equal(t, int64(261), vendorBalance(t, uow, 2))

	stored, err := uow.GetTransactionRepository(ctx).GetByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1391), stored.Total)
	assert.Len(t, stored.Items, 2)
}

func TestCreateTransactionEmpty(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)}
	svc, _ := setupLedgerTest(t, tp)

	_, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		PaymentMethod: "CASH",
	})
	assert.ErrorIs(t, err, errs.ErrEmptyTransaction)
}

func TestCreateTransactionMissingCommission(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)}
	svc, uow := setupLedgerTest(t, tp)
	ctx := context.Background()
	seedVendor(t, uow, tp, 1, "Alice")

	// Remove the commission key to simulate a misconfigured store. The
	// shared-cache DSN reaches the same in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec("DELETE FROM settings WHERE key = ?", persistence.SettingStoreCommission).Error)

	_, err = svc.CreateTransaction(ctx, CreateTransactionInput{
		Items:         []ItemInput{{VendorID: 1, Description: "Vase", Price: 500, Quantity: 1}},
		PaymentMethod: "CASH",
	})
	assert.True(t, errs.IsSettingNotFoundError(err))

	// The aborted create must leave nothing behind
	assert.Equal(t, int64(0), vendorBalance(t, uow, 1))
	agg, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), agg.Count)
}

func TestUpdateItem(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)}
	svc, uow := setupLedgerTest(t, tp)
	ctx := context.Background()
	seedVendor(t, uow, tp, 1, "Alice")
	seedVendor(t, uow, tp, 2, "Bob")

	txn, err := svc.CreateTransaction(ctx, CreateTransactionInput{
		Items:         []ItemInput{{VendorID: 1, Description: "Vase", Price: 1000, Quantity: 1}},
		SalesTax:      70,
		PaymentMethod: "CARD",
	})
	require.NoError(t, err)
	itemID := txn.Items[0].ID
	assert.Equal(t, int64(870), vendorBalance(t, uow, 1))

	t.Run("Price change adjusts vendor and rederives parent", func(t *testing.T) {
		newPrice := int64(2000)
		item, err := svc.UpdateItem(ctx, itemID, UpdateItemInput{Price: &newPrice})
		require.NoError(t, err)
		assert.Equal(t, int64(2000), item.Total)

		// Old net 870 reversed, new net 2000-260=1740 applied
		assert.Equal(t, int64(1740), vendorBalance(t, uow, 1))

		// Parent rederived from the 7% sales tax setting
		parent, err := uow.GetTransactionRepository(ctx).GetByID(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), parent.SubTotal)
		assert.Equal(t, int64(140), parent.SalesTax)
		assert.Equal(t, int64(2140), parent.Total)
	})

	t.Run("Vendor move shifts the full contribution", func(t *testing.T) {
		newVendor := int64(2)
		_, err := svc.UpdateItem(ctx, itemID, UpdateItemInput{VendorID: &newVendor})
		require.NoError(t, err)

		assert.Equal(t, int64(0), vendorBalance(t, uow, 1))
		assert.Equal(t, int64(1740), vendorBalance(t, uow, 2))
	})

	t.Run("No-op update is net zero", func(t *testing.T) {
		desc := "Blue vase"
		_, err := svc.UpdateItem(ctx, itemID, UpdateItemInput{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, int64(1740), vendorBalance(t, uow, 2))
	})

	t.Run("Unknown item", func(t *testing.T) {
		_, err := svc.UpdateItem(ctx, "no-such-item", UpdateItemInput{})
		assert.ErrorIs(t, err, errs.ErrItemNotFound)
	})
}

func TestDeleteItem(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)}
	svc, uow := setupLedgerTest(t, tp)
	ctx := context.Background()
	seedVendor(t, uow, tp, 1, "Alice")

	txn, err := svc.CreateTransaction(ctx, CreateTransactionInput{
		Items: []ItemInput{
			{VendorID: 1, Description: "Vase", Price: 1000, Quantity: 1},
			{VendorID: 1, Description: "Lamp", Price: 500, Quantity: 1},
		},
		SalesTax:      105,
		PaymentMethod: "CASH",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1305), vendorBalance(t, uow, 1)) // 870 + 435

	t.Run("Deleting one item reverses it and rederives the parent", func(t *testing.T) {
		require.NoError(t, svc.DeleteItem(ctx, txn.Items[0].ID))
		assert.Equal(t, int64(435), vendorBalance(t, uow, 1))

		parent, err := uow.GetTransactionRepository(ctx).GetByID(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(500), parent.SubTotal)
		assert.Equal(t, int64(35), parent.SalesTax)
		assert.Equal(t, int64(535), parent.Total)
	})

	t.Run("Deleting the last item removes the transaction", func(t *testing.T) {
		require.NoError(t, svc.DeleteItem(ctx, txn.Items[1].ID))
		assert.Equal(t, int64(0), vendorBalance(t, uow, 1))

		_, err := uow.GetTransactionRepository(ctx).GetByID(ctx, txn.ID)
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}

func TestDeleteTransaction(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)}
	svc, uow := setupLedgerTest(t, tp)
	ctx := context.Background()
	seedVendor(t, uow, tp, 1, "Alice")
	seedVendor(t, uow, tp, 2, "Bob")

	txn, err := svc.CreateTransaction(ctx, CreateTransactionInput{
		Items: []ItemInput{
			{VendorID: 1, Description: "Vase", Price: 1000, Quantity: 1},
			{VendorID: 2, Description: "Lamp", Price: 300, Quantity: 2},
		},
		SalesTax:      112,
		PaymentMethod: "CARD",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, txn.ID))

	assert.Equal(t, int64(0), vendorBalance(t, uow, 1))
	assert.Equal(t, int64(0), vendorBalance(t, uow, 2))
	_, err = uow.GetTransactionRepository(ctx).GetByID(ctx, txn.ID)
	assert.ErrorIs(t, err, errs.ErrTransactionNotFound)

	t.Run("Unknown transaction", func(t *testing.T) {
		err := svc.DeleteTransaction(ctx, "no-such-transaction")
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}

func TestAggregates(t *testing.T) {
	// Wednesday, March 18th
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)
	tp := &fixedTimeProvider{now: now}
	svc, uow := setupLedgerTest(t, tp)
	ctx := context.Background()
	seedVendor(t, uow, tp, 1, "Alice")

	// One transaction well in the past, one this week
	tp.now = time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	_, err := svc.CreateTransaction(ctx, CreateTransactionInput{
		Items:         []ItemInput{{VendorID: 1, Description: "Old sale", Price: 200, Quantity: 3}},
		SalesTax:      42,
		PaymentMethod: "CASH",
	})
	require.NoError(t, err)

	tp.now = now
	_, err = svc.CreateTransaction(ctx, CreateTransactionInput{
		Items:         []ItemInput{{VendorID: 1, Description: "New sale", Price: 1000, Quantity: 1}},
		SalesTax:      70,
		PaymentMethod: "CARD",
	})
	require.NoError(t, err)

	t.Run("All", func(t *testing.T) {
		agg, err := svc.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), agg.Count)
		assert.Equal(t, int64(4), agg.TotalItems)
		assert.Equal(t, int64(112), agg.TotalSalesTax)
		assert.Equal(t, int64(1712), agg.GrandTotal)
		assert.Equal(t, int64(1600), agg.TotalAmount)
	})

	t.Run("Today", func(t *testing.T) {
		agg, err := svc.GetToday(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), agg.Count)
		assert.Equal(t, int64(1070), agg.GrandTotal)
	})

	t.Run("Weekly", func(t *testing.T) {
		agg, err := svc.GetWeekly(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), agg.Count)
	})

	t.Run("Current month", func(t *testing.T) {
		agg, err := svc.GetMonthly(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), agg.Count)
	})

	t.Run("Explicit month", func(t *testing.T) {
		agg, err := svc.GetByMonthYear(ctx, 2026, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(1), agg.Count)
		assert.Equal(t, int64(642), agg.GrandTotal)
	})

	t.Run("Invalid month", func(t *testing.T) {
		_, err := svc.GetByMonthYear(ctx, 2026, 13)
		assert.ErrorIs(t, err, errs.ErrInvalidMonth)
	})

	t.Run("Empty window", func(t *testing.T) {
		agg, err := svc.GetByMonthYear(ctx, 2025, 6)
		require.NoError(t, err)
		assert.Equal(t, int64(0), agg.Count)
		assert.Equal(t, int64(0), agg.GrandTotal)
	})
}
