package report

import (
	"context"
	"fmt"
	"time"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
	coreport "github.com/oakmall/consignment-ledger/internal/domain/port/core"
	"github.com/oakmall/consignment-ledger/internal/domain/port/persistence"
)

// Service reconstructs per-vendor monthly statements from the raw items,
// charges and payments instead of trusting the running balance. It is
// read-mostly and safe to call repeatedly; its single write is the
// current-month resync of Vendor.balance, which is idempotent.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new report service
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GenerateMonthly builds one statement per vendor for (year, month). When
// the requested period is the current calendar month, each vendor's running
// balance is overwritten with the freshly derived monthlyBalance; this is
// how the running balance self-heals against drift.
func (s *Service) GenerateMonthly(ctx context.Context, year, month int) ([]entity.VendorStatement, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidMonth, month)
	}

	rawRate, err := s.uow.GetSettingsRepository(ctx).Get(ctx, persistence.SettingStoreCommission)
	if err != nil {
		return nil, err
	}
	rate, err := entity.ParsePercent(rawRate)
	if err != nil {
		return nil, err
	}

	vendors, err := s.uow.GetVendorRepository(ctx).List(ctx)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	now := s.timeProvider.Now()
	isCurrentMonth := now.Year() == year && int(now.Month()) == month

	statements := make([]entity.VendorStatement, 0, len(vendors))
	for _, vendor := range vendors {
		statement, err := s.buildStatement(ctx, vendor, rate, year, month, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}

		if isCurrentMonth {
			if err := s.uow.GetVendorRepository(ctx).SetBalance(ctx, vendor.ID, statement.MonthlyBalance); err != nil {
				return nil, err
			}
			statement.CurrentBalance = statement.MonthlyBalance
		} else {
			statement.CurrentBalance = vendor.Balance()
		}

		statements = append(statements, *statement)
	}

	s.logger.Info("Monthly report generated", map[string]any{
		"year":          year,
		"month":         month,
		"vendors":       len(statements),
		"current_month": isCurrentMonth,
	})

	return statements, nil
}

// buildStatement derives one vendor's statement. Bucketing is the single
// source of truth: historical aggregates are strictly before monthStart,
// current aggregates are within [monthStart, monthEnd), so nothing is
// double-counted across the boundary.
func (s *Service) buildStatement(
	ctx context.Context,
	vendor *entity.Vendor,
	rate int64,
	year, month int,
	monthStart, monthEnd time.Time,
) (*entity.VendorStatement, error) {
	transactionRepo := s.uow.GetTransactionRepository(ctx)
	boothRepo := s.uow.GetBoothRentalRepository(ctx)
	paymentRepo := s.uow.GetVendorPaymentRepository(ctx)
	balancePaymentRepo := s.uow.GetBalancePaymentRepository(ctx)

	// Historical bucket: everything strictly before the month start
	allTimeSales, err := transactionRepo.SumVendorItemsBefore(ctx, vendor.ID, monthStart)
	if err != nil {
		return nil, err
	}
	allTimeCommission := entity.PercentOf(allTimeSales, rate)

	historicalBoothRental, err := boothRepo.SumBefore(ctx, vendor.ID, year, month)
	if err != nil {
		return nil, err
	}
	historicalPayments, err := paymentRepo.SumBefore(ctx, vendor.ID, year, month)
	if err != nil {
		return nil, err
	}
	historicalBalancePayments, err := balancePaymentRepo.SumBefore(ctx, vendor.ID, monthStart)
	if err != nil {
		return nil, err
	}

	previousBalance := allTimeSales - (historicalBoothRental + allTimeCommission) - historicalPayments - historicalBalancePayments

	// Current bucket: [monthStart, monthEnd)
	soldItems, err := transactionRepo.ListVendorItemsInRange(ctx, vendor.ID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	statement := &entity.VendorStatement{
		VendorID:        vendor.ID,
		Name:            vendor.Name,
		PreviousBalance: previousBalance,
	}

	for _, item := range soldItems {
		statement.TotalItems += item.Quantity
		switch item.PaymentMethod {
		case entity.PaymentCard:
			statement.CardSales += item.Total
		default:
			statement.CashSales += item.Total
		}
	}
	statement.TotalSales = statement.CashSales + statement.CardSales
	statement.StoreCommission = entity.PercentOf(statement.TotalSales, rate)

	statement.BoothCharges, err = boothRepo.ListForMonth(ctx, vendor.ID, year, month)
	if err != nil {
		return nil, err
	}
	for _, charge := range statement.BoothCharges {
		statement.BoothRental += charge.Amount
	}

	statement.Payments, err = paymentRepo.ListForMonth(ctx, vendor.ID, year, month)
	if err != nil {
		return nil, err
	}
	for _, payment := range statement.Payments {
		if payment.Amount > 0 {
			statement.TotalPayments += payment.Amount
		}
	}

	statement.BalancePayments, err = balancePaymentRepo.ListInRange(ctx, vendor.ID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	for _, payment := range statement.BalancePayments {
		statement.TotalBalancePayments += payment.Amount
	}

	statement.MonthlyEarnings = statement.TotalSales - statement.BoothRental - statement.StoreCommission
	statement.MonthlyBalance = statement.MonthlyEarnings + statement.PreviousBalance - statement.TotalPayments + statement.TotalBalancePayments

	return statement, nil
}
