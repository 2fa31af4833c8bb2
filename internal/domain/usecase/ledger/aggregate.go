package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
)

// GetAll returns the aggregate over every recorded transaction
func (s *Service) GetAll(ctx context.Context) (*entity.TransactionAggregate, error) {
	transactions, err := s.uow.GetTransactionRepository(ctx).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate(transactions), nil
}

// GetToday returns the aggregate for the current calendar day
func (s *Service) GetToday(ctx context.Context) (*entity.TransactionAggregate, error) {
	now := s.timeProvider.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.getRange(ctx, start, start.AddDate(0, 0, 1))
}

// GetWeekly returns the aggregate for the Monday-anchored week containing
// the current date
func (s *Service) GetWeekly(ctx context.Context) (*entity.TransactionAggregate, error) {
	start := startOfWeek(s.timeProvider.Now())
	return s.getRange(ctx, start, start.AddDate(0, 0, 7))
}

// GetMonthly returns the aggregate for the current calendar month
func (s *Service) GetMonthly(ctx context.Context) (*entity.TransactionAggregate, error) {
	now := s.timeProvider.Now()
	return s.GetByMonthYear(ctx, now.Year(), int(now.Month()))
}

// GetByMonthYear returns the aggregate for an explicit calendar month
func (s *Service) GetByMonthYear(ctx context.Context, year, month int) (*entity.TransactionAggregate, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidMonth, month)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return s.getRange(ctx, start, start.AddDate(0, 1, 0))
}

func (s *Service) getRange(ctx context.Context, from, to time.Time) (*entity.TransactionAggregate, error) {
	transactions, err := s.uow.GetTransactionRepository(ctx).ListInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return aggregate(transactions), nil
}

// aggregate folds a transaction window into the read-side summary shape
func aggregate(transactions []entity.Transaction) *entity.TransactionAggregate {
	agg := &entity.TransactionAggregate{
		Transactions: transactions,
		Count:        int64(len(transactions)),
	}
	for i := range transactions {
		t := &transactions[i]
		agg.TotalSalesTax += t.SalesTax
		agg.GrandTotal += t.Total
		for j := range t.Items {
			agg.TotalItems += t.Items[j].Quantity
		}
	}
	agg.TotalAmount = agg.GrandTotal - agg.TotalSalesTax
	return agg
}

// startOfWeek returns midnight of the Monday on or before t
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -(weekday - 1))
}
