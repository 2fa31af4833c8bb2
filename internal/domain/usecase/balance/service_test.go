package balance

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

func setupBalanceTest(t *testing.T, tp *fixedTimeProvider) (*Service, persistence.UnitOfWork) {
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

func TestBoothRental(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)}
	svc, uow := setupBalanceTest(t, tp)
	ctx := context.Background()
	seedVendor(t, uow, tp, 1, "Alice")
	seedVendor(t, uow, tp, 2, "Bob")

	charge, err := svc.CreateBoothRental(ctx, BoothRentalInput{
		VendorID: 1, Amount: 5000, Year: 2026, Month: 3,
	})
	require.NoError(t, err)
	require.NotZero(t, charge.ID)

	// Create debits the full charge amount
	assert.Equal(t, int64(-5000), vendorBalance(t, uow, 1))

	t.Run("Update same vendor nets old minus new", func(t *testing.T) {
		_, err := svc.UpdateBoothRental(ctx, charge.ID, BoothRentalInput{
			VendorID: 1, Amount: 3000, Year: 2026, Month: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(-3000), vendorBalance(t, uow, 1))
	})

	t.Run("Update to another vendor moves the debit", func(t *testing.T) {
		_, err := svc.UpdateBoothRental(ctx, charge.ID, BoothRentalInput{
			VendorID: 2, Amount: 3000, Year: 2026, Month: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), vendorBalance(t, uow, 1))
		assert.Equal(t, int64(-3000), vendorBalance(t, uow, 2))
	})

	t.Run("Delete restores the amount", func(t *testing.T) {
		require.NoError(t, svc.DeleteBoothRental(ctx, charge.ID))
		assert.Equal(t, int64(0), vendorBalance(t, uow, 2))
	})

	t.Run("Unknown charge", func(t *testing.T) {
		err := svc.DeleteBoothRental(ctx, 9999)
		assert.ErrorIs(t, err, errs.ErrChargeNotFound)
	})

	t.Run("Invalid month rejected before any write", func(t *testing.T) {
		_, err := svc.CreateBoothRental(ctx, BoothRentalInput{
			VendorID: 1, Amount: 5000, Year: 2026, Month: 13,
		})
		assert.ErrorIs(t, err, errs.ErrInvalidMonth)
		assert.Equal(t, int64(0), vendorBalance(t, uow, 1))
	})
}

func TestVendorPayment(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)}
	svc, uow := setupBalanceTest(t, tp)
	ctx := context.Background()
	seedVendor(t, uow, tp, 1, "Alice")

	payment, err := svc.CreateVendorPayment(ctx, VendorPaymentInput{
		VendorID: 1, Amount: 2000, Year: 2026, Month: 3, Description: "March check",
	})
	require.NoError(t, err)

	// A payout reduces what the store owes
	assert.Equal(t, int64(-2000), vendorBalance(t, uow, 1))

	t.Run("Update nets old minus new", func(t *testing.T) {
		_, err := svc.UpdateVendorPayment(ctx, payment.ID, VendorPaymentInput{
			VendorID: 1, Amount: 2500, Year: 2026, Month: 3, Description: "March check, corrected",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(-2500), vendorBalance(t, uow, 1))
	})

	t.Run("Delete restores the amount", func(t *testing.T) {
		require.NoError(t, svc.DeleteVendorPayment(ctx, payment.ID))
		assert.Equal(t, int64(0), vendorBalance(t, uow, 1))
	})

	t.Run("Unknown payment", func(t *testing.T) {
		_, err := svc.UpdateVendorPayment(ctx, 9999, VendorPaymentInput{
			VendorID: 1, Amount: 100, Year: 2026, Month: 3,
		})
		assert.ErrorIs(t, err, errs.ErrPaymentNotFound)
	})
}

func TestBalancePayment(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)}
	svc, uow := setupBalanceTest(t, tp)
	ctx := context.Background()
	seedVendor(t, uow, tp, 1, "Alice")

	payment, err := svc.CreateBalancePayment(ctx, BalancePaymentInput{
		VendorID:      1,
		Amount:        1500,
		PaymentDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "Check",
		Description:   "Settled in person",
	})
	require.NoError(t, err)
	require.NotZero(t, payment.ID)

	// Balance payments never touch the running balance
	assert.Equal(t, int64(0), vendorBalance(t, uow, 1))

	t.Run("Update keeps the balance untouched", func(t *testing.T) {
		_, err := svc.UpdateBalancePayment(ctx, payment.ID, BalancePaymentInput{
			VendorID:      1,
			Amount:        1800,
			PaymentDate:   payment.PaymentDate,
			PaymentMethod: "Cash",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), vendorBalance(t, uow, 1))
	})

	t.Run("Delete keeps the balance untouched", func(t *testing.T) {
		require.NoError(t, svc.DeleteBalancePayment(ctx, payment.ID))
		assert.Equal(t, int64(0), vendorBalance(t, uow, 1))

		_, err := uow.GetBalancePaymentRepository(ctx).GetByID(ctx, payment.ID)
		assert.ErrorIs(t, err, errs.ErrPaymentNotFound)
	})

	t.Run("Invalid method rejected", func(t *testing.T) {
		_, err := svc.CreateBalancePayment(ctx, BalancePaymentInput{
			VendorID:      1,
			Amount:        100,
			PaymentDate:   tp.now,
			PaymentMethod: "Barter",
		})
		assert.ErrorIs(t, err, errs.ErrInvalidPaymentMethod)
	})
}

func TestSetVendorBalance(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)}
	svc, uow := setupBalanceTest(t, tp)
	ctx := context.Background()
	seedVendor(t, uow, tp, 1, "Alice")

	require.NoError(t, svc.SetVendorBalance(ctx, 1, -1234))
	assert.Equal(t, int64(-1234), vendorBalance(t, uow, 1))

	require.NoError(t, svc.SetVendorBalance(ctx, 1, 5000))
	assert.Equal(t, int64(5000), vendorBalance(t, uow, 1))

	assert.ErrorIs(t, svc.SetVendorBalance(ctx, 0, 100), errs.ErrInvalidVendorID)

	err := svc.SetVendorBalance(ctx, 42, 100)
	assert.ErrorIs(t, err, errs.ErrVendorNotFound)
}
