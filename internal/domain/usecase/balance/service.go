package balance

import (
	"context"
	"fmt"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
	coreport "github.com/oakmall/consignment-ledger/internal/domain/port/core"
	"github.com/oakmall/consignment-ledger/internal/domain/port/persistence"
)

// Service is the single owner of vendor balance mutation for charges and
// payouts. Each operation writes the charge/payment row and adjusts the
// vendor's balance inside one database transaction; either both land or
// neither does. Sign conventions:
//
//	booth rental created:  balance -= amount   (deleted: += amount)
//	vendor payment created: balance -= amount  (deleted: += amount)
//	update of either:       balance += oldAmount - newAmount
//
// Balance payments are the deliberate exception: they only feed the monthly
// statement and never touch the running balance here.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new balance engine service
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

// GetVendor returns a vendor with its current running balance
func (s *Service) GetVendor(ctx context.Context, vendorID int64) (*entity.Vendor, error) {
	return s.uow.GetVendorRepository(ctx).GetByID(ctx, vendorID)
}

// SetVendorBalance overwrites a vendor's balance unconditionally. This is
// the staff-only correction escape hatch: it bypasses all derivation, so
// callers must restrict and audit it. It is deliberately not reachable from
// any of the derived-update paths.
func (s *Service) SetVendorBalance(ctx context.Context, vendorID int64, balanceCents int64) error {
	if vendorID <= 0 {
		return errs.ErrInvalidVendorID
	}

	if err := s.uow.GetVendorRepository(ctx).SetBalance(ctx, vendorID, balanceCents); err != nil {
		return err
	}

	s.logger.Warn("Vendor balance overwritten manually", map[string]any{
		"vendor_id":   vendorID,
		"new_balance": balanceCents,
	})
	return nil
}

// adjust applies a signed delta to a vendor's balance within the current
// unit of work, wrapping failures with balance context
func (s *Service) adjust(ctx context.Context, vendorID, delta int64) error {
	if _, err := s.uow.GetVendorRepository(ctx).AdjustBalance(ctx, vendorID, delta); err != nil {
		return errs.NewBalanceError(vendorID, delta, err)
	}
	return nil
}

// periodKey formats a (year, month) pair for log fields
func periodKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// rollback discards the unit of work, logging any rollback failure without
// masking the original error
func (s *Service) rollback(ctx context.Context) {
	if err := s.uow.Rollback(ctx); err != nil {
		s.logger.Error("Failed to rollback balance transaction", map[string]any{
			"error": err.Error(),
		})
	}
}
