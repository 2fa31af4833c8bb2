package repository

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

func setupRepositoryTest(t *testing.T) *gorm.DB {
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
	return db
}

func TestVendorRepository(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)}
	db := setupRepositoryTest(t)
	repo := NewVendorRepository(db, tp, logger.NewNoopLogger())
	ctx := context.Background()

	vendor, err := entity.NewVendor(1, 1, "Alice", tp)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, vendor))

	t.Run("Duplicate create maps to ErrDuplicateVendor", func(t *testing.T) {
		dup, err := entity.NewVendor(1, 1, "Alice again", tp)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), errs.ErrDuplicateVendor)
	})

	t.Run("AdjustBalance accumulates deltas", func(t *testing.T) {
		updated, err := repo.AdjustBalance(ctx, 1, 870)
		require.NoError(t, err)
		assert.Equal(t, int64(870), updated.Balance())

		updated, err = repo.AdjustBalance(ctx, 1, -5000)
		require.NoError(t, err)
		assert.Equal(t, int64(-4130), updated.Balance())
	})

	t.Run("AdjustBalance on unknown vendor", func(t *testing.T) {
		_, err := repo.AdjustBalance(ctx, 404, 100)
		assert.ErrorIs(t, err, errs.ErrVendorNotFound)
	})

	t.Run("SetBalance overwrites", func(t *testing.T) {
		require.NoError(t, repo.SetBalance(ctx, 1, 2500))
		got, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2500), got.Balance())
	})

	t.Run("GetByID unknown vendor", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, errs.ErrVendorNotFound)
	})
}

func TestSettingsRepository(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewSettingsRepository(db, logger.NewNoopLogger())
	ctx := context.Background()

	t.Run("Missing key", func(t *testing.T) {
		_, err := repo.Get(ctx, "Store_Commission")
		assert.ErrorIs(t, err, errs.ErrSettingNotFound)
	})

	t.Run("Set then get", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "Store_Commission", "13"))
		value, err := repo.Get(ctx, "Store_Commission")
		require.NoError(t, err)
		assert.Equal(t, "13", value)
	})

	t.Run("Set upserts", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "Store_Commission", "15"))
		value, err := repo.Get(ctx, "Store_Commission")
		require.NoError(t, err)
		assert.Equal(t, "15", value)
	})
}

func TestErrorClassifier(t *testing.T) {
	classifier := NewErrorClassifier()

	assert.True(t, classifier.IsDuplicateKeyError(fmt.Errorf("UNIQUE constraint failed: vendors.id")))
	assert.True(t, classifier.IsDuplicateKeyError(fmt.Errorf(`duplicate key value violates unique constraint "vendors_pkey"`)))
	assert.False(t, classifier.IsDuplicateKeyError(nil))

	assert.True(t, classifier.IsConstraintError(fmt.Errorf("NOT NULL constraint failed: vendors.name")))
	assert.False(t, classifier.IsConstraintError(fmt.Errorf("connection refused")))

	assert.True(t, classifier.IsLockError(fmt.Errorf("ERROR: could not serialize access due to concurrent update")))
}
