package balance

import (
	"context"
	"time"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
)

// BalancePaymentInput describes a manual balance settlement
type BalancePaymentInput struct {
	VendorID      int64
	Amount        int64 // Cents
	PaymentDate   time.Time
	PaymentMethod string
	Description   string
}

// CreateBalancePayment records a manual settlement. Unlike booth charges and
// vendor payments, this writes only the row: the vendor's running balance is
// untouched and the amount surfaces through the monthly statement instead.
func (s *Service) CreateBalancePayment(ctx context.Context, input BalancePaymentInput) (*entity.BalancePayment, error) {
	now := s.timeProvider.Now()
	payment := &entity.BalancePayment{
		VendorID:      input.VendorID,
		Amount:        input.Amount,
		PaymentDate:   input.PaymentDate,
		PaymentMethod: entity.BalanceMethod(input.PaymentMethod),
		Description:   input.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := s.uow.GetBalancePaymentRepository(ctx).Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("Balance payment created", map[string]any{
		"payment_id": payment.ID,
		"vendor_id":  payment.VendorID,
		"amount":     payment.Amount,
		"method":     payment.PaymentMethod,
	})
	return payment, nil
}

// UpdateBalancePayment changes a settlement row; still no balance effect
func (s *Service) UpdateBalancePayment(ctx context.Context, id uint64, input BalancePaymentInput) (*entity.BalancePayment, error) {
	repo := s.uow.GetBalancePaymentRepository(ctx)

	payment, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payment.VendorID = input.VendorID
	payment.Amount = input.Amount
	payment.PaymentDate = input.PaymentDate
	payment.PaymentMethod = entity.BalanceMethod(input.PaymentMethod)
	payment.Description = input.Description
	payment.UpdatedAt = s.timeProvider.Now()
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := repo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("Balance payment updated", map[string]any{
		"payment_id": id,
		"vendor_id":  payment.VendorID,
		"amount":     payment.Amount,
	})
	return payment, nil
}

// DeleteBalancePayment removes a settlement row; still no balance effect
func (s *Service) DeleteBalancePayment(ctx context.Context, id uint64) error {
	repo := s.uow.GetBalancePaymentRepository(ctx)

	payment, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Balance payment deleted", map[string]any{
		"payment_id": id,
		"vendor_id":  payment.VendorID,
		"amount":     payment.Amount,
	})
	return nil
}
