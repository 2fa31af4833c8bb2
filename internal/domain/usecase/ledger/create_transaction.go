package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
)

// ItemInput describes one sold line in a checkout request
type ItemInput struct {
	VendorID    int64
	Description string
	Price       int64 // Unit price, cents
	Quantity    int64
}

// CreateTransactionInput describes a checkout event
type CreateTransactionInput struct {
	Items         []ItemInput
	SalesTax      int64 // Cents
	PaymentMethod string
}

// CreateTransaction records a checkout: the transaction row, one item per
// sold line, and one vendor balance credit of (itemTotal - commission) per
// item, all inside a single database transaction. A missing vendor or
// settings key aborts the whole create with nothing applied.
func (s *Service) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*entity.Transaction, error) {
	if len(input.Items) == 0 {
		return nil, errs.ErrEmptyTransaction
	}

	txn, err := entity.NewTransaction(uuid.NewString(), input.SalesTax, input.PaymentMethod, s.timeProvider)
	if err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	rate, err := s.commissionRate(txCtx)
	if err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	transactionRepo := s.uow.GetTransactionRepository(txCtx)
	vendorRepo := s.uow.GetVendorRepository(txCtx)

	if err := transactionRepo.Create(txCtx, txn); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	for _, in := range input.Items {
		item, err := entity.NewTransactionItem(
			uuid.NewString(), txn.ID, in.VendorID, in.Description, in.Price, in.Quantity, s.timeProvider,
		)
		if err != nil {
			s.rollback(txCtx)
			return nil, err
		}

		if err := transactionRepo.CreateItem(txCtx, item); err != nil {
			s.rollback(txCtx)
			return nil, errs.NewLedgerError(txn.ID, item.ID, in.VendorID, "failed to create item", err)
		}

		net := item.SaleNet(rate)
		if _, err := vendorRepo.AdjustBalance(txCtx, in.VendorID, net); err != nil {
			s.rollback(txCtx)
			return nil, errs.NewLedgerError(txn.ID, item.ID, in.VendorID, "failed to credit vendor", err)
		}

		txn.Items = append(txn.Items, *item)
	}

	txn.Recalculate()
	if err := transactionRepo.UpdateTotals(txCtx, txn.ID, txn.SubTotal, txn.SalesTax, txn.Total, s.timeProvider.Now()); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction recorded", map[string]any{
		"transaction_id": txn.ID,
		"items":          len(txn.Items),
		"sub_total":      txn.SubTotal,
		"sales_tax":      txn.SalesTax,
		"total":          txn.Total,
		"payment_method": txn.PaymentMethod,
	})

	return txn, nil
}
