package sqlite

import (
	"context"
	"fmt"

	"github.com/okayama-mayu/rails-engine/internal/models"
)

// CreateCustomer inserts a customer and assigns its ID and timestamps.
func (s *SQLiteStore) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	now := s.timestamp()
	if customer.CreatedAt == 0 {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now

	id, err := s.insert(ctx, "customer",
		"INSERT INTO customers (first_name, last_name, created_at, updated_at) VALUES (?, ?, ?, ?)",
		customer.FirstName, customer.LastName, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		return err
	}
	customer.ID = id
	return nil
}

// GetCustomer retrieves a customer by ID.
func (s *SQLiteStore) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	c := &models.Customer{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, created_at, updated_at FROM customers WHERE id = ?",
		id,
	).Scan(&c.ID, &c.FirstName, &c.LastName, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, scanErr(err, "customer", id)
	}
	return c, nil
}

// CreateInvoice inserts an invoice. An empty status defaults to pending.
func (s *SQLiteStore) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	now := s.timestamp()
	if invoice.CreatedAt == 0 {
		invoice.CreatedAt = now
	}
	invoice.UpdatedAt = now
	if invoice.Status == "" {
		invoice.Status = models.InvoiceStatusPending
	}

	id, err := s.insert(ctx, "invoice",
		`INSERT INTO invoices (customer_id, merchant_id, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		invoice.CustomerID, invoice.MerchantID, string(invoice.Status), invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return err
	}
	invoice.ID = id
	return nil
}

// GetInvoice retrieves an invoice by ID.
func (s *SQLiteStore) GetInvoice(ctx context.Context, id int64) (*models.Invoice, error) {
	inv := &models.Invoice{}
	var status string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, customer_id, merchant_id, status, created_at, updated_at FROM invoices WHERE id = ?",
		id,
	).Scan(&inv.ID, &inv.CustomerID, &inv.MerchantID, &status, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, scanErr(err, "invoice", id)
	}
	inv.Status = models.InvoiceStatus(status)
	return inv, nil
}

// CreateInvoiceItem inserts an invoice item.
func (s *SQLiteStore) CreateInvoiceItem(ctx context.Context, ii *models.InvoiceItem) error {
	now := s.timestamp()
	if ii.CreatedAt == 0 {
		ii.CreatedAt = now
	}
	ii.UpdatedAt = now

	id, err := s.insert(ctx, "invoice item",
		`INSERT INTO invoice_items (invoice_id, item_id, quantity, unit_price, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ii.InvoiceID, ii.ItemID, ii.Quantity, ii.UnitPrice, ii.CreatedAt, ii.UpdatedAt,
	)
	if err != nil {
		return err
	}
	ii.ID = id
	return nil
}

// ListInvoiceItemsByInvoice retrieves the invoice items of an invoice.
func (s *SQLiteStore) ListInvoiceItemsByInvoice(ctx context.Context, invoiceID int64) ([]models.InvoiceItem, error) {
	return s.queryInvoiceItems(ctx, "invoice_id", invoiceID)
}

// ListInvoiceItemsByItem retrieves the invoice items referencing an item.
func (s *SQLiteStore) ListInvoiceItemsByItem(ctx context.Context, itemID int64) ([]models.InvoiceItem, error) {
	return s.queryInvoiceItems(ctx, "item_id", itemID)
}

func (s *SQLiteStore) queryInvoiceItems(ctx context.Context, column string, id int64) ([]models.InvoiceItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, invoice_id, item_id, quantity, unit_price, created_at, updated_at
		 FROM invoice_items WHERE `+column+` = ? ORDER BY id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoice items: %w", err)
	}
	defer rows.Close()

	items := []models.InvoiceItem{}
	for rows.Next() {
		var ii models.InvoiceItem
		if err := rows.Scan(&ii.ID, &ii.InvoiceID, &ii.ItemID, &ii.Quantity, &ii.UnitPrice,
			&ii.CreatedAt, &ii.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		items = append(items, ii)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoice items: %w", err)
	}
	return items, nil
}

// CreateTransaction inserts a payment attempt.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	now := s.timestamp()
	if t.CreatedAt == 0 {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	id, err := s.insert(ctx, "transaction",
		`INSERT INTO transactions (invoice_id, credit_card_number, result, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.InvoiceID, t.CreditCardNumber, string(t.Result), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

// ListTransactionsByInvoice retrieves the payment attempts of an invoice.
func (s *SQLiteStore) ListTransactionsByInvoice(ctx context.Context, invoiceID int64) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, invoice_id, credit_card_number, result, created_at, updated_at
		 FROM transactions WHERE invoice_id = ? ORDER BY id`,
		invoiceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var result string
		if err := rows.Scan(&t.ID, &t.InvoiceID, &t.CreditCardNumber, &result, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Result = models.TransactionResult(result)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}

// insert runs an INSERT and returns the new row id.
func (s *SQLiteStore) insert(ctx context.Context, resource, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert %s: %w", resource, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read %s id: %w", resource, err)
	}
	return id, nil
}
