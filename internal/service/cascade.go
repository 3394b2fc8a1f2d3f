package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/okayama-mayu/rails-engine/internal/catalog"
	"github.com/okayama-mayu/rails-engine/internal/storage"
)

// CascadeResult describes what an item deletion removed.
type CascadeResult struct {
	ItemID              int64
	InvoiceItemsDeleted int64
	InvoicesDeleted     []int64
}

// DeleteItem removes an item together with its invoice items, and deletes
// each invoice left without invoice items along with its transactions.
// The whole cascade is one transaction.
func (s *CatalogService) DeleteItem(ctx context.Context, id int64) (*CascadeResult, error) {
	slog.Info("DeleteItem request received", "item_id", id)

	var result CascadeResult
	err := s.store.WithTx(ctx, func(tx storage.Tx) error {
		// Reset on each attempt; the store may re-run this function.
		result = CascadeResult{ItemID: id, InvoicesDeleted: []int64{}}

		if _, err := tx.LockItem(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return notFound(ResourceItem, id)
			}
			return err
		}

		invoiceIDs, err := tx.LockInvoicesForItem(ctx, id)
		if err != nil {
			return err
		}

		n, err := tx.DeleteInvoiceItemsByItem(ctx, id)
		if err != nil {
			return err
		}
		result.InvoiceItemsDeleted = n

		if err := tx.DeleteItem(ctx, id); err != nil {
			return err
		}

		for _, invoiceID := range invoiceIDs {
			remaining, err := tx.CountInvoiceItemsByInvoice(ctx, invoiceID)
			if err != nil {
				return err
			}
			if remaining > 0 {
				continue
			}
			if _, err := tx.DeleteTransactionsByInvoice(ctx, invoiceID); err != nil {
				return err
			}
			if err := tx.DeleteInvoice(ctx, invoiceID); err != nil {
				return err
			}
			result.InvoicesDeleted = append(result.InvoicesDeleted, invoiceID)
		}

		return verifyCascade(ctx, tx, id, invoiceIDs, result.InvoicesDeleted)
	})
	if err != nil {
		var nf *catalog.NotFoundError
		if errors.As(err, &nf) {
			slog.Warn("DeleteItem: item not found", "item_id", id)
			return nil, err
		}
		// Rows are locked once the item is found, so a later miss is an integrity failure.
		if errors.Is(err, storage.ErrNotFound) {
			err = fmt.Errorf("record vanished during cascade: %w: %w", storage.ErrIntegrity, err)
		}
		slog.Error("DeleteItem failed", "item_id", id, "error", err)
		return nil, err
	}

	slog.Info("Item deleted",
		"item_id", id,
		"invoice_items_deleted", result.InvoiceItemsDeleted,
		"invoices_deleted", result.InvoicesDeleted,
	)
	return &result, nil
}

// verifyCascade checks that no invoice item still references the item and
// that every surviving invoice keeps at least one invoice item.
func verifyCascade(ctx context.Context, tx storage.Tx, itemID int64, invoiceIDs, deleted []int64) error {
	left, err := tx.CountInvoiceItemsByItem(ctx, itemID)
	if err != nil {
		return err
	}
	if left != 0 {
		return fmt.Errorf("item %d still has %d invoice items: %w", itemID, left, storage.ErrIntegrity)
	}

	gone := make(map[int64]bool, len(deleted))
	for _, id := range deleted {
		gone[id] = true
	}
	for _, invoiceID := range invoiceIDs {
		if gone[invoiceID] {
			continue
		}
		n, err := tx.CountInvoiceItemsByInvoice(ctx, invoiceID)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("invoice %d left without invoice items: %w", invoiceID, storage.ErrIntegrity)
		}
	}
	return nil
}
