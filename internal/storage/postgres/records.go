package postgres

import (
	"context"
	"fmt"

	"github.com/okayama-mayu/rails-engine/internal/models"
	"github.com/okayama-mayu/rails-engine/internal/storage"
)

// CreateMerchant inserts a merchant and assigns its ID and timestamps.
func (s *PostgresStore) CreateMerchant(ctx context.Context, merchant *models.Merchant) error {
	s.stamp(&merchant.CreatedAt, &merchant.UpdatedAt)
	row := merchantRow{Name: merchant.Name, CreatedAt: merchant.CreatedAt, UpdatedAt: merchant.UpdatedAt}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert merchant: %w", err)
	}
	merchant.ID = row.ID
	return nil
}

// GetMerchant retrieves a merchant by ID.
func (s *PostgresStore) GetMerchant(ctx context.Context, id int64) (*models.Merchant, error) {
	var row merchantRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, firstErr(err, "merchant", id)
	}
	m := row.model()
	return &m, nil
}

// ListMerchants retrieves all merchants in creation order.
func (s *PostgresStore) ListMerchants(ctx context.Context) ([]models.Merchant, error) {
	var rows []merchantRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list merchants: %w", err)
	}
	merchants := make([]models.Merchant, len(rows))
	for i, r := range rows {
		merchants[i] = r.model()
	}
	return merchants, nil
}

// CountMerchants returns the number of stored merchants.
func (s *PostgresStore) CountMerchants(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&merchantRow{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count merchants: %w", err)
	}
	return n, nil
}

// CreateItem inserts an item. A missing merchant surfaces as storage.ErrNotFound.
func (s *PostgresStore) CreateItem(ctx context.Context, item *models.Item) error {
	s.stamp(&item.CreatedAt, &item.UpdatedAt)
	row := itemRow{
		Name:        item.Name,
		Description: item.Description,
		UnitPrice:   item.UnitPrice,
		MerchantID:  item.MerchantID,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isForeignKeyViolation(err) {
			return notFound("merchant", item.MerchantID)
		}
		return fmt.Errorf("failed to insert item: %w", err)
	}
	item.ID = row.ID
	return nil
}

// UpdateItem overwrites the mutable columns of an existing item.
func (s *PostgresStore) UpdateItem(ctx context.Context, item *models.Item) error {
	item.UpdatedAt = s.timestamp()
	res := s.db.WithContext(ctx).Model(&itemRow{}).Where("id = ?", item.ID).Updates(map[string]any{
		"name":        item.Name,
		"description": item.Description,
		"unit_price":  item.UnitPrice,
		"merchant_id": item.MerchantID,
		"updated_at":  item.UpdatedAt,
	})
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return notFound("merchant", item.MerchantID)
		}
		return fmt.Errorf("failed to update item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("item", item.ID)
	}
	return nil
}

// GetItem retrieves an item by ID.
func (s *PostgresStore) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	var row itemRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, firstErr(err, "item", id)
	}
	item := row.model()
	return &item, nil
}

// ListItems retrieves all items in creation order.
func (s *PostgresStore) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.findItems(ctx, "")
}

// ListItemsByMerchant retrieves the items owned by a merchant in creation order.
func (s *PostgresStore) ListItemsByMerchant(ctx context.Context, merchantID int64) ([]models.Item, error) {
	return s.findItems(ctx, "merchant_id = ?", merchantID)
}

func (s *PostgresStore) findItems(ctx context.Context, where string, args ...any) ([]models.Item, error) {
	q := s.db.WithContext(ctx).Order("id")
	if where != "" {
		q = q.Where(where, args...)
	}
	var rows []itemRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	items := make([]models.Item, len(rows))
	for i, r := range rows {
		items[i] = r.model()
	}
	return items, nil
}

// CreateCustomer inserts a customer.
func (s *PostgresStore) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	s.stamp(&customer.CreatedAt, &customer.UpdatedAt)
	row := customerRow{
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	customer.ID = row.ID
	return nil
}

// GetCustomer retrieves a customer by ID.
func (s *PostgresStore) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	var row customerRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, firstErr(err, "customer", id)
	}
	c := row.model()
	return &c, nil
}

// CreateInvoice inserts an invoice. An empty status defaults to pending.
func (s *PostgresStore) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	s.stamp(&invoice.CreatedAt, &invoice.UpdatedAt)
	if invoice.Status == "" {
		invoice.Status = models.InvoiceStatusPending
	}
	row := invoiceRow{
		CustomerID: invoice.CustomerID,
		MerchantID: invoice.MerchantID,
		Status:     string(invoice.Status),
		CreatedAt:  invoice.CreatedAt,
		UpdatedAt:  invoice.UpdatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}
	invoice.ID = row.ID
	return nil
}

// GetInvoice retrieves an invoice by ID.
func (s *PostgresStore) GetInvoice(ctx context.Context, id int64) (*models.Invoice, error) {
	var row invoiceRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, firstErr(err, "invoice", id)
	}
	inv := row.model()
	return &inv, nil
}

// CreateInvoiceItem inserts an invoice item.
func (s *PostgresStore) CreateInvoiceItem(ctx context.Context, ii *models.InvoiceItem) error {
	s.stamp(&ii.CreatedAt, &ii.UpdatedAt)
	row := invoiceItemRow{
		InvoiceID: ii.InvoiceID,
		ItemID:    ii.ItemID,
		Quantity:  ii.Quantity,
		UnitPrice: ii.UnitPrice,
		CreatedAt: ii.CreatedAt,
		UpdatedAt: ii.UpdatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert invoice item: %w", err)
	}
	ii.ID = row.ID
	return nil
}

// ListInvoiceItemsByInvoice retrieves the invoice items of an invoice.
func (s *PostgresStore) ListInvoiceItemsByInvoice(ctx context.Context, invoiceID int64) ([]models.InvoiceItem, error) {
	return s.findInvoiceItems(ctx, "invoice_id = ?", invoiceID)
}

// ListInvoiceItemsByItem retrieves the invoice items referencing an item.
func (s *PostgresStore) ListInvoiceItemsByItem(ctx context.Context, itemID int64) ([]models.InvoiceItem, error) {
	return s.findInvoiceItems(ctx, "item_id = ?", itemID)
}

func (s *PostgresStore) findInvoiceItems(ctx context.Context, where string, id int64) ([]models.InvoiceItem, error) {
	var rows []invoiceItemRow
	if err := s.db.WithContext(ctx).Where(where, id).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list invoice items: %w", err)
	}
	items := make([]models.InvoiceItem, len(rows))
	for i, r := range rows {
		items[i] = r.model()
	}
	return items, nil
}

// CreateTransaction inserts a payment attempt.
func (s *PostgresStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	s.stamp(&t.CreatedAt, &t.UpdatedAt)
	row := transactionRow{
		InvoiceID:        t.InvoiceID,
		CreditCardNumber: t.CreditCardNumber,
		Result:           string(t.Result),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	t.ID = row.ID
	return nil
}

// ListTransactionsByInvoice retrieves the payment attempts of an invoice.
func (s *PostgresStore) ListTransactionsByInvoice(ctx context.Context, invoiceID int64) ([]models.Transaction, error) {
	var rows []transactionRow
	if err := s.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	transactions := make([]models.Transaction, len(rows))
	for i, r := range rows {
		transactions[i] = r.model()
	}
	return transactions, nil
}

// stamp fills a zero created_at and always refreshes updated_at.
func (s *PostgresStore) stamp(createdAt, updatedAt *int64) {
	now := s.timestamp()
	if *createdAt == 0 {
		*createdAt = now
	}
	*updatedAt = now
}

var _ storage.Reader = (*PostgresStore)(nil)
