package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/okayama-mayu/rails-engine/internal/models"
	"github.com/okayama-mayu/rails-engine/internal/storage"
)

var _ storage.Tx = (*pgTx)(nil)

// pgTx implements storage.Tx on a gorm transaction handle.
type pgTx struct {
	db *gorm.DB
}

func (t *pgTx) LockItem(ctx context.Context, id int64) (*models.Item, error) {
	var row itemRow
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&row, id).Error
	if err != nil {
		return nil, firstErr(err, "item", id)
	}
	item := row.model()
	return &item, nil
}

func (t *pgTx) LockInvoicesForItem(ctx context.Context, itemID int64) ([]int64, error) {
	referencing := t.db.Session(&gorm.Session{NewDB: true}).
		Model(&invoiceItemRow{}).
		Select("invoice_id").
		Where("item_id = ?", itemID)

	var ids []int64
	err := t.db.WithContext(ctx).
		Model(&invoiceRow{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN (?)", referencing).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to collect invoices: %w", err)
	}
	return ids, nil
}

func (t *pgTx) DeleteInvoiceItemsByItem(ctx context.Context, itemID int64) (int64, error) {
	res := t.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&invoiceItemRow{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete invoice items: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (t *pgTx) CountInvoiceItemsByItem(ctx context.Context, itemID int64) (int64, error) {
	return t.countInvoiceItems(ctx, "item_id = ?", itemID)
}

func (t *pgTx) DeleteItem(ctx context.Context, id int64) error {
	res := t.db.WithContext(ctx).Delete(&itemRow{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("item", id)
	}
	return nil
}

func (t *pgTx) CountInvoiceItemsByInvoice(ctx context.Context, invoiceID int64) (int64, error) {
	return t.countInvoiceItems(ctx, "invoice_id = ?", invoiceID)
}

func (t *pgTx) DeleteTransactionsByInvoice(ctx context.Context, invoiceID int64) (int64, error) {
	res := t.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).Delete(&transactionRow{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete transactions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (t *pgTx) DeleteInvoice(ctx context.Context, id int64) error {
	res := t.db.WithContext(ctx).Delete(&invoiceRow{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete invoice: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("invoice", id)
	}
	return nil
}

func (t *pgTx) countInvoiceItems(ctx context.Context, where string, id int64) (int64, error) {
	var n int64
	if err := t.db.WithContext(ctx).Model(&invoiceItemRow{}).Where(where, id).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count invoice items: %w", err)
	}
	return n, nil
}
