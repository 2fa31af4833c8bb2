package report

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

func setupReportTest(t *testing.T, tp *fixedTimeProvider) (*Service, persistence.UnitOfWork) {
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
	require.NoError(t, uow.GetSettingsRepository(ctx).Set(ctx, persistence.SettingStoreCommission, "13"))
	require.NoError(t, uow.GetSettingsRepository(ctx).Set(ctx, persistence.SettingSalesTax, "7"))

	return NewService(uow, tp, log), uow
}

func seedVendor(t *testing.T, uow persistence.UnitOfWork, tp *fixedTimeProvider, id int64, name string) {
	t.Helper()
	vendor, err := entity.NewVendor(id, 1, name, tp)
	require.NoError(t, err)
	require.NoError(t, uow.GetVendorRepository(context.Background()).Create(context.Background(), vendor))
}

// seedSale writes a one-item transaction directly, bypassing the ledger
// service. The report must derive everything from the rows themselves.
func seedSale(t *testing.T, uow persistence.UnitOfWork, id string, vendorID, total int64, method entity.PaymentMethod, at time.Time) {
	t.Helper()
	ctx := context.Background()
	repo := uow.GetTransactionRepository(ctx)

	txn := &entity.Transaction{
		ID:            id,
		SubTotal:      total,
		Total:         total,
		PaymentMethod: method,
		CreatedAt:     at,
		UpdatedAt:     at,
	}
	require.NoError(t, repo.Create(ctx, txn))
	require.NoError(t, repo.CreateItem(ctx, &entity.TransactionItem{
		ID:            id + "-item",
		TransactionID: id,
		VendorID:      vendorID,
		Description:   "Seeded sale",
		Price:         total,
		Quantity:      1,
		Total:         total,
		CreatedAt:     at,
		UpdatedAt:     at,
	}))
}

func TestGenerateMonthly(t *testing.T) {
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)
	tp := &fixedTimeProvider{now: now}
	svc, uow := setupReportTest(t, tp)
	ctx := context.Background()

	seedVendor(t, uow, tp, 1, "Alice")
	seedVendor(t, uow, tp, 2, "Bob")

	// Vendor 1: February history plus March activity
	seedSale(t, uow, "feb-sale", 1, 4000, entity.PaymentCard, time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC))
	seedSale(t, uow, "mar-sale-1", 1, 10000, entity.PaymentCash, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))

	boothRepo := uow.GetBoothRentalRepository(ctx)
	paymentRepo := uow.GetVendorPaymentRepository(ctx)
	balancePaymentRepo := uow.GetBalancePaymentRepository(ctx)

	require.NoError(t, boothRepo.Create(ctx, &entity.BoothRentalCharge{VendorID: 1, Amount: 1000, Year: 2026, Month: 2, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, boothRepo.Create(ctx, &entity.BoothRentalCharge{VendorID: 1, Amount: 5000, Year: 2026, Month: 3, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, paymentRepo.Create(ctx, &entity.VendorPayment{VendorID: 1, Amount: 500, Year: 2026, Month: 2, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, paymentRepo.Create(ctx, &entity.VendorPayment{VendorID: 1, Amount: 2000, Year: 2026, Month: 3, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, balancePaymentRepo.Create(ctx, &entity.BalancePayment{VendorID: 1, Amount: 300, PaymentDate: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), PaymentMethod: entity.BalanceCash, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, balancePaymentRepo.Create(ctx, &entity.BalancePayment{VendorID: 1, Amount: 200, PaymentDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), PaymentMethod: entity.BalanceCheck, CreatedAt: now, UpdatedAt: now}))

	// Vendor 2: no history, just the textbook March month
	seedSale(t, uow, "mar-sale-2", 2, 10000, entity.PaymentCash, time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC))
	require.NoError(t, boothRepo.Create(ctx, &entity.BoothRentalCharge{VendorID: 2, Amount: 5000, Year: 2026, Month: 3, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, paymentRepo.Create(ctx, &entity.VendorPayment{VendorID: 2, Amount: 2000, Year: 2026, Month: 3, CreatedAt: now, UpdatedAt: now}))

	statements, err := svc.GenerateMonthly(ctx, 2026, 3)
	require.NoError(t, err)
	require.Len(t, statements, 2)

	t.Run("Vendor with history", func(t *testing.T) {
		s := statements[0]
		assert.Equal(t, int64(1), s.VendorID)
		assert.Equal(t, int64(10000), s.CashSales)
		assert.Equal(t, int64(0), s.CardSales)
		assert.Equal(t, int64(10000), s.TotalSales)
		assert.Equal(t, int64(1300), s.StoreCommission)
		assert.Equal(t, int64(5000), s.BoothRental)
		assert.Equal(t, int64(2000), s.TotalPayments)
		assert.Equal(t, int64(200), s.TotalBalancePayments)

		// February: 4000 sales - 520 commission - 1000 booth - 500 paid - 300 settled
		assert.Equal(t, int64(1680), s.PreviousBalance)
		assert.Equal(t, int64(3700), s.MonthlyEarnings)
		assert.Equal(t, int64(3580), s.MonthlyBalance)
	})

	t.Run("Vendor without history", func(t *testing.T) {
		s := statements[1]
		assert.Equal(t, int64(2), s.VendorID)
		assert.Equal(t, int64(0), s.PreviousBalance)
		assert.Equal(t, int64(10000), s.TotalSales)
		assert.Equal(t, int64(1300), s.StoreCommission)
		assert.Equal(t, int64(5000), s.BoothRental)
		assert.Equal(t, int64(3700), s.MonthlyEarnings)
		assert.Equal(t, int64(1700), s.MonthlyBalance)
	})

	t.Run("Current month resyncs running balances", func(t *testing.T) {
		// The seeded rows never went through the balance engine, so the
		// running balances started at zero; the report heals them.
		v1, err := uow.GetVendorRepository(ctx).GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(3580), v1.Balance())

		v2, err := uow.GetVendorRepository(ctx).GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(1700), v2.Balance())

		assert.Equal(t, int64(3580), statements[0].CurrentBalance)
	})

	t.Run("Second run is idempotent", func(t *testing.T) {
		again, err := svc.GenerateMonthly(ctx, 2026, 3)
		require.NoError(t, err)
		require.Len(t, again, 2)
		assert.Equal(t, statements[0].MonthlyBalance, again[0].MonthlyBalance)
		assert.Equal(t, statements[1].MonthlyBalance, again[1].MonthlyBalance)

		v1, err := uow.GetVendorRepository(ctx).GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(3580), v1.Balance())
	})

	t.Run("Historical month leaves balances alone", func(t *testing.T) {
		feb, err := svc.GenerateMonthly(ctx, 2026, 2)
		require.NoError(t, err)
		require.Len(t, feb, 2)

		s := feb[0]
		assert.Equal(t, int64(4000), s.TotalSales)
		assert.Equal(t, int64(0), s.CashSales)
		assert.Equal(t, int64(4000), s.CardSales)
		assert.Equal(t, int64(520), s.StoreCommission)
		assert.Equal(t, int64(1000), s.BoothRental)
		assert.Equal(t, int64(500), s.TotalPayments)
		assert.Equal(t, int64(300), s.TotalBalancePayments)
		assert.Equal(t, int64(0), s.PreviousBalance)
		assert.Equal(t, int64(2480), s.MonthlyEarnings)
		assert.Equal(t, int64(2280), s.MonthlyBalance)

		// Running balance still reflects the March resync, not February
		assert.Equal(t, int64(3580), s.CurrentBalance)
	})

	t.Run("Invalid month", func(t *testing.T) {
		_, err := svc.GenerateMonthly(ctx, 2026, 0)
		assert.ErrorIs(t, err, errs.ErrInvalidMonth)
	})
}
