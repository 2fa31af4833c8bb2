package balance

import (
	"context"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
)

// BoothRentalInput describes a booth rental charge to create or update
type BoothRentalInput struct {
	VendorID int64
	Amount   int64 // Cents
	Year     int
	Month    int
}

// CreateBoothRental records a booth charge and debits the vendor's balance
// by the charge amount, atomically
func (s *Service) CreateBoothRental(ctx context.Context, input BoothRentalInput) (*entity.BoothRentalCharge, error) {
	now := s.timeProvider.Now()
	charge := &entity.BoothRentalCharge{
		VendorID:  input.VendorID,
		Amount:    input.Amount,
		Year:      input.Year,
		Month:     input.Month,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := charge.Validate(); err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.uow.GetBoothRentalRepository(txCtx).Create(txCtx, charge); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if err := s.adjust(txCtx, charge.VendorID, -charge.Amount); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Booth rental charge created", map[string]any{
		"charge_id": charge.ID,
		"vendor_id": charge.VendorID,
		"amount":    charge.Amount,
		"period":    periodKey(charge.Year, charge.Month),
	})
	return charge, nil
}

// UpdateBoothRental changes a charge; the net balance effect on the vendor
// is exactly oldAmount - newAmount. A vendor change moves the full reversal
// to the old vendor and the full application to the new one.
func (s *Service) UpdateBoothRental(ctx context.Context, id uint64, input BoothRentalInput) (*entity.BoothRentalCharge, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	repo := s.uow.GetBoothRentalRepository(txCtx)
	charge, err := repo.GetByID(txCtx, id)
	if err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	oldVendorID, oldAmount := charge.VendorID, charge.Amount

	charge.VendorID = input.VendorID
	charge.Amount = input.Amount
	charge.Year = input.Year
	charge.Month = input.Month
	charge.UpdatedAt = s.timeProvider.Now()
	if err := charge.Validate(); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if err := repo.Update(txCtx, charge); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if oldVendorID == charge.VendorID {
		if err := s.adjust(txCtx, charge.VendorID, oldAmount-charge.Amount); err != nil {
			s.rollback(txCtx)
			return nil, err
		}
	} else {
		if err := s.adjust(txCtx, oldVendorID, oldAmount); err != nil {
			s.rollback(txCtx)
			return nil, err
		}
		if err := s.adjust(txCtx, charge.VendorID, -charge.Amount); err != nil {
			s.rollback(txCtx)
			return nil, err
		}
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Booth rental charge updated", map[string]any{
		"charge_id":  id,
		"vendor_id":  charge.VendorID,
		"old_amount": oldAmount,
		"new_amount": charge.Amount,
	})
	return charge, nil
}

// DeleteBoothRental removes a charge and restores the vendor's balance by
// exactly the charge amount
func (s *Service) DeleteBoothRental(ctx context.Context, id uint64) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}

	repo := s.uow.GetBoothRentalRepository(txCtx)
	charge, err := repo.GetByID(txCtx, id)
	if err != nil {
		s.rollback(txCtx)
		return err
	}

	if err := repo.Delete(txCtx, id); err != nil {
		s.rollback(txCtx)
		return err
	}

	if err := s.adjust(txCtx, charge.VendorID, charge.Amount); err != nil {
		s.rollback(txCtx)
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.logger.Info("Booth rental charge deleted", map[string]any{
		"charge_id": id,
		"vendor_id": charge.VendorID,
		"amount":    charge.Amount,
	})
	return nil
}
