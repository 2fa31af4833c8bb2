package ledger

import (
	"context"

	"github.com/oakmall/consignment-ledger/internal/domain/entity"
	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
)

// UpdateItemInput carries the optional new fields for a transaction item
type UpdateItemInput struct {
	VendorID    *int64
	Description *string
	Price       *int64
	Quantity    *int64
}

// UpdateItem changes a sold line. The old contribution is reversed against
// the old vendor at the current commission rate, the new contribution is
// applied to the (possibly different) vendor, and the parent transaction's
// subtotal, sales tax and total are rederived from the current Sales_Tax
// setting. All of it commits atomically.
func (s *Service) UpdateItem(ctx context.Context, itemID string, input UpdateItemInput) (*entity.TransactionItem, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	transactionRepo := s.uow.GetTransactionRepository(txCtx)
	vendorRepo := s.uow.GetVendorRepository(txCtx)

	item, err := transactionRepo.GetItem(txCtx, itemID)
	if err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	rate, err := s.commissionRate(txCtx)
	if err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	// Reverse the old contribution before touching the row. Uses the rate in
	// effect now, not the one from the item's creation.
	oldVendorID := item.VendorID
	if _, err := vendorRepo.AdjustBalance(txCtx, oldVendorID, -item.SaleNet(rate)); err != nil {
		s.rollback(txCtx)
		return nil, errs.NewLedgerError(item.TransactionID, itemID, oldVendorID, "failed to reverse old contribution", err)
	}

	if input.VendorID != nil {
		if *input.VendorID <= 0 {
			s.rollback(txCtx)
			return nil, errs.ErrInvalidVendorID
		}
		item.VendorID = *input.VendorID
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			s.rollback(txCtx)
			return nil, errs.ErrNegativeAmount
		}
		item.Price = *input.Price
	}
	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			s.rollback(txCtx)
			return nil, errs.ErrInvalidQuantity
		}
		item.Quantity = *input.Quantity
	}

	item.Recalculate()
	item.UpdatedAt = s.timeProvider.Now()
	if err := transactionRepo.UpdateItem(txCtx, item); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if _, err := vendorRepo.AdjustBalance(txCtx, item.VendorID, item.SaleNet(rate)); err != nil {
		s.rollback(txCtx)
		return nil, errs.NewLedgerError(item.TransactionID, itemID, item.VendorID, "failed to apply new contribution", err)
	}

	if err := s.recalculateParent(txCtx, item.TransactionID); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction item updated", map[string]any{
		"item_id":        itemID,
		"transaction_id": item.TransactionID,
		"vendor_id":      item.VendorID,
		"total":          item.Total,
	})

	return item, nil
}

// DeleteItem reverses the item's contribution at the current commission rate
// and removes it. When the last item goes, the whole transaction goes with
// it; otherwise the parent's totals and sales tax are rederived.
func (s *Service) DeleteItem(ctx context.Context, itemID string) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}

	transactionRepo := s.uow.GetTransactionRepository(txCtx)
	vendorRepo := s.uow.GetVendorRepository(txCtx)

	item, err := transactionRepo.GetItem(txCtx, itemID)
	if err != nil {
		s.rollback(txCtx)
		return err
	}

	rate, err := s.commissionRate(txCtx)
	if err != nil {
		s.rollback(txCtx)
		return err
	}

	if _, err := vendorRepo.AdjustBalance(txCtx, item.VendorID, -item.SaleNet(rate)); err != nil {
		s.rollback(txCtx)
		return errs.NewLedgerError(item.TransactionID, itemID, item.VendorID, "failed to reverse contribution", err)
	}

	if err := transactionRepo.DeleteItem(txCtx, itemID); err != nil {
		s.rollback(txCtx)
		return err
	}

	remaining, err := transactionRepo.CountItems(txCtx, item.TransactionID)
	if err != nil {
		s.rollback(txCtx)
		return err
	}

	if remaining == 0 {
		if err := transactionRepo.Delete(txCtx, item.TransactionID); err != nil {
			s.rollback(txCtx)
			return err
		}
	} else if err := s.recalculateParent(txCtx, item.TransactionID); err != nil {
		s.rollback(txCtx)
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.logger.Info("Transaction item deleted", map[string]any{
		"item_id":         itemID,
		"transaction_id":  item.TransactionID,
		"vendor_id":       item.VendorID,
		"items_remaining": remaining,
	})

	return nil
}

// DeleteTransaction reverses every item's contribution and removes the
// transaction with its items, atomically.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}

	transactionRepo := s.uow.GetTransactionRepository(txCtx)
	vendorRepo := s.uow.GetVendorRepository(txCtx)

	txn, err := transactionRepo.GetByID(txCtx, id)
	if err != nil {
		s.rollback(txCtx)
		return err
	}

	rate, err := s.commissionRate(txCtx)
	if err != nil {
		s.rollback(txCtx)
		return err
	}

	for i := range txn.Items {
		item := &txn.Items[i]
		if _, err := vendorRepo.AdjustBalance(txCtx, item.VendorID, -item.SaleNet(rate)); err != nil {
			s.rollback(txCtx)
			return errs.NewLedgerError(id, item.ID, item.VendorID, "failed to reverse contribution", err)
		}
		if err := transactionRepo.DeleteItem(txCtx, item.ID); err != nil {
			s.rollback(txCtx)
			return err
		}
	}

	if err := transactionRepo.Delete(txCtx, id); err != nil {
		s.rollback(txCtx)
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.logger.Info("Transaction deleted", map[string]any{
		"transaction_id": id,
		"items_reversed": len(txn.Items),
	})

	return nil
}

// recalculateParent rederives a transaction's subtotal, sales tax and total
// from its current items and the current Sales_Tax setting
func (s *Service) recalculateParent(ctx context.Context, transactionID string) error {
	transactionRepo := s.uow.GetTransactionRepository(ctx)

	txn, err := transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return err
	}

	taxRate, err := s.salesTaxRate(ctx)
	if err != nil {
		return err
	}

	txn.Recalculate()
	txn.SalesTax = entity.PercentOf(txn.SubTotal, taxRate)
	txn.Total = txn.SubTotal + txn.SalesTax

	return transactionRepo.UpdateTotals(ctx, txn.ID, txn.SubTotal, txn.SalesTax, txn.Total, s.timeProvider.Now())
}
