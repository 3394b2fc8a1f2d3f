package sqlite

import (
	"context"
	"fmt"

	"github.com/okayama-mayu/rails-engine/internal/models"
	"github.com/okayama-mayu/rails-engine/internal/storage"
)

var _ storage.Tx = (*sqliteTx)(nil)

// sqliteTx implements storage.Tx. Transactions are opened with _txlock=immediate,
// so the database write lock is already held and row locks are implicit.
type sqliteTx struct {
	q querier
}

func (t *sqliteTx) LockItem(ctx context.Context, id int64) (*models.Item, error) {
	return getItem(ctx, t.q, id)
}

func (t *sqliteTx) LockInvoicesForItem(ctx context.Context, itemID int64) ([]int64, error) {
	rows, err := t.q.QueryContext(ctx,
		"SELECT DISTINCT invoice_id FROM invoice_items WHERE item_id = ? ORDER BY invoice_id",
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to collect invoices: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan invoice id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoice ids: %w", err)
	}
	return ids, nil
}

func (t *sqliteTx) DeleteInvoiceItemsByItem(ctx context.Context, itemID int64) (int64, error) {
	return t.exec(ctx, "invoice items", "DELETE FROM invoice_items WHERE item_id = ?", itemID)
}

func (t *sqliteTx) CountInvoiceItemsByItem(ctx context.Context, itemID int64) (int64, error) {
	return t.count(ctx, "SELECT COUNT(*) FROM invoice_items WHERE item_id = ?", itemID)
}

func (t *sqliteTx) DeleteItem(ctx context.Context, id int64) error {
	n, err := t.exec(ctx, "item", "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("item", id)
	}
	return nil
}

func (t *sqliteTx) CountInvoiceItemsByInvoice(ctx context.Context, invoiceID int64) (int64, error) {
	return t.count(ctx, "SELECT COUNT(*) FROM invoice_items WHERE invoice_id = ?", invoiceID)
}

func (t *sqliteTx) DeleteTransactionsByInvoice(ctx context.Context, invoiceID int64) (int64, error) {
	return t.exec(ctx, "transactions", "DELETE FROM transactions WHERE invoice_id = ?", invoiceID)
}

func (t *sqliteTx) DeleteInvoice(ctx context.Context, id int64) error {
	n, err := t.exec(ctx, "invoice", "DELETE FROM invoices WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("invoice", id)
	}
	return nil
}

func (t *sqliteTx) exec(ctx context.Context, resource, query string, args ...any) (int64, error) {
	res, err := t.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s: %w", resource, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check deleted %s: %w", resource, err)
	}
	return n, nil
}

func (t *sqliteTx) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := t.q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count invoice items: %w", err)
	}
	return n, nil
}
