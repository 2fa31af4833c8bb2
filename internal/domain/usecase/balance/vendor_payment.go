package balance

import (
	"context"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
)

// VendorPaymentInput describes a payout to create or update
type VendorPaymentInput struct {
	VendorID    int64
	Amount      int64 // Cents
	Year        int
	Month       int
	Description string
}

// CreateVendorPayment records a payout ("check sent") and debits the
// vendor's balance by the payment amount, atomically
func (s *Service) CreateVendorPayment(ctx context.Context, input VendorPaymentInput) (*entity.VendorPayment, error) {
	now := s.timeProvider.Now()
	payment := &entity.VendorPayment{
		VendorID:    input.VendorID,
		Amount:      input.Amount,
		Year:        input.Year,
		Month:       input.Month,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.uow.GetVendorPaymentRepository(txCtx).Create(txCtx, payment); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if err := s.adjust(txCtx, payment.VendorID, -payment.Amount); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Vendor payment created", map[string]any{
		"payment_id": payment.ID,
		"vendor_id":  payment.VendorID,
		"amount":     payment.Amount,
		"period":     periodKey(payment.Year, payment.Month),
	})
	return payment, nil
}

// UpdateVendorPayment changes a payout; the net balance effect is exactly
// oldAmount - newAmount
func (s *Service) UpdateVendorPayment(ctx context.Context, id uint64, input VendorPaymentInput) (*entity.VendorPayment, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	repo := s.uow.GetVendorPaymentRepository(txCtx)
	payment, err := repo.GetByID(txCtx, id)
	if err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	oldVendorID, oldAmount := payment.VendorID, payment.Amount

	payment.VendorID = input.VendorID
	payment.Amount = input.Amount
	payment.Year = input.Year
	payment.Month = input.Month
	payment.Description = input.Description
	payment.UpdatedAt = s.timeProvider.Now()
	if err := payment.Validate(); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if err := repo.Update(txCtx, payment); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if oldVendorID == payment.VendorID {
		if err := s.adjust(txCtx, payment.VendorID, oldAmount-payment.Amount); err != nil {
			s.rollback(txCtx)
			return nil, err
		}
	} else {
		if err := s.adjust(txCtx, oldVendorID, oldAmount); err != nil {
			s.rollback(txCtx)
			return nil, err
		}
		if err := s.adjust(txCtx, payment.VendorID, -payment.Amount); err != nil {
			s.rollback(txCtx)
			return nil, err
		}
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Vendor payment updated", map[string]any{
		"payment_id": id,
		"vendor_id":  payment.VendorID,
		"old_amount": oldAmount,
		"new_amount": payment.Amount,
	})
	return payment, nil
}

// DeleteVendorPayment removes a payout and restores the vendor's balance by
// exactly the payment amount
func (s *Service) DeleteVendorPayment(ctx context.Context, id uint64) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}

	repo := s.uow.GetVendorPaymentRepository(txCtx)
	payment, err := repo.GetByID(txCtx, id)
	if err != nil {
		s.rollback(txCtx)
		return err
	}

	if err := repo.Delete(txCtx, id); err != nil {
		s.rollback(txCtx)
		return err
	}

	if err := s.adjust(txCtx, payment.VendorID, payment.Amount); err != nil {
		s.rollback(txCtx)
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.logger.Info("Vendor payment deleted", map[string]any{
		"payment_id": id,
		"vendor_id":  payment.VendorID,
		"amount":     payment.Amount,
	})
	return nil
}
