// Package storage provides abstractions for persistent catalog storage.
package storage

import (
	"context"
	"errors"

	"github.com/okayama-mayu/rails-engine/internal/models"
)

var (
	// ErrNotFound is returned (wrapped) when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrIntegrity is returned (wrapped) when a multi-step mutation would leave
	// the store in a state that breaks a relationship invariant.
	ErrIntegrity = errors.New("integrity violation")
)

// Store defines the interface for catalog storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	Reader
	Writer

	// WithTx runs fn inside a single transaction. The transaction commits when fn
	// returns nil and rolls back otherwise. Backends may retry fn on transient
	// serialization conflicts, so fn must not have side effects outside tx.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any resources held by the store.
	Close() error
}

// Reader lists and fetches records. Lists are ordered by ID.
type Reader interface {
	GetMerchant(ctx context.Context, id int64) (*models.Merchant, error)
	ListMerchants(ctx context.Context) ([]models.Merchant, error)
	CountMerchants(ctx context.Context) (int64, error)

	GetItem(ctx context.Context, id int64) (*models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	ListItemsByMerchant(ctx context.Context, merchantID int64) ([]models.Item, error)

	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	GetInvoice(ctx context.Context, id int64) (*models.Invoice, error)
	ListInvoiceItemsByInvoice(ctx context.Context, invoiceID int64) ([]models.InvoiceItem, error)
	ListInvoiceItemsByItem(ctx context.Context, itemID int64) ([]models.InvoiceItem, error)
	ListTransactionsByInvoice(ctx context.Context, invoiceID int64) ([]models.Transaction, error)
}

// Writer creates and updates records. Create methods populate ID and timestamps.
type Writer interface {
	CreateMerchant(ctx context.Context, merchant *models.Merchant) error
	CreateItem(ctx context.Context, item *models.Item) error

	// UpdateItem overwrites every mutable column of an existing item.
	// Returns ErrNotFound if the item does not exist.
	UpdateItem(ctx context.Context, item *models.Item) error

	CreateCustomer(ctx context.Context, customer *models.Customer) error
	CreateInvoice(ctx context.Context, invoice *models.Invoice) error
	CreateInvoiceItem(ctx context.Context, invoiceItem *models.InvoiceItem) error
	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
}

// Tx exposes the primitives the item deletion cascade is composed from.
// Every method runs inside the transaction opened by Store.WithTx.
type Tx interface {
	// LockItem loads the item and holds a write lock on it until the transaction ends.
	// Returns ErrNotFound if the item does not exist.
	LockItem(ctx context.Context, id int64) (*models.Item, error)

	// LockInvoicesForItem returns the distinct IDs (ascending) of invoices that have an
	// invoice item referencing itemID, holding a write lock on each invoice row.
	LockInvoicesForItem(ctx context.Context, itemID int64) ([]int64, error)

	// DeleteInvoiceItemsByItem removes every invoice item referencing itemID.
	DeleteInvoiceItemsByItem(ctx context.Context, itemID int64) (int64, error)

	// CountInvoiceItemsByItem counts invoice items referencing itemID.
	CountInvoiceItemsByItem(ctx context.Context, itemID int64) (int64, error)

	// DeleteItem removes the item row. Returns ErrNotFound if no row was removed.
	DeleteItem(ctx context.Context, id int64) error

	// CountInvoiceItemsByInvoice counts invoice items that belong to invoiceID.
	CountInvoiceItemsByInvoice(ctx context.Context, invoiceID int64) (int64, error)

	// DeleteTransactionsByInvoice removes the payment attempts of an invoice.
	DeleteTransactionsByInvoice(ctx context.Context, invoiceID int64) (int64, error)

	// DeleteInvoice removes the invoice row. Returns ErrNotFound if no row was removed.
	DeleteInvoice(ctx context.Context, id int64) error
}
