package ledger

import (
	"context"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
	coreport "github.com/oakmall/consignment-ledger/internal/domain/port/core"
	"github.com/oakmall/consignment-ledger/internal/domain/port/persistence"
)

// Service maintains transaction/item consistency and drives vendor balance
// deltas from sales. Every mutating operation runs inside one unit-of-work
// transaction: the transaction row, its items and all balance adjustments
// commit together or not at all.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new ledger service
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

// commissionRate reads Store_Commission from settings and parses it into
// hundredths of a percent. Reads happen at mutation time: reversals use the
// rate in effect now, not the rate at the item's creation.
func (s *Service) commissionRate(ctx context.Context) (int64, error) {
	raw, err := s.uow.GetSettingsRepository(ctx).Get(ctx, persistence.SettingStoreCommission)
	if err != nil {
		return 0, err
	}
	return entity.ParsePercent(raw)
}

// salesTaxRate reads Sales_Tax from settings
func (s *Service) salesTaxRate(ctx context.Context) (int64, error) {
	raw, err := s.uow.GetSettingsRepository(ctx).Get(ctx, persistence.SettingSalesTax)
	if err != nil {
		return 0, err
	}
	return entity.ParsePercent(raw)
}

// rollback discards the unit of work, logging any rollback failure without
// masking the original error
func (s *Service) rollback(ctx context.Context) {
	if err := s.uow.Rollback(ctx); err != nil {
		s.logger.Error("Failed to rollback ledger transaction", map[string]any{
			"error": err.Error(),
		})
	}
}
