package models

// InvoiceStatus is the fulfilment state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "pending"
	InvoiceStatusPackaged InvoiceStatus = "packaged"
	InvoiceStatusShipped  InvoiceStatus = "shipped"
)

// Valid reports whether s is a known status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPackaged, InvoiceStatusShipped:
		return true
	}
	return false
}

// Invoice is a purchase made by a customer from a merchant.
// An invoice exists only while at least one InvoiceItem points at it; the item
// deletion cascade removes invoices that lose their last invoice item.
type Invoice struct {
	ID         int64
	CustomerID int64
	MerchantID int64
	Status     InvoiceStatus
	CreatedAt  int64
	UpdatedAt  int64
}

// InvoiceItem links one invoice to one item.
type InvoiceItem struct {
	ID        int64
	InvoiceID int64
	ItemID    int64

	// Quantity is the number of units purchased.
	Quantity int

	// UnitPrice is the price per unit at the time of purchase,
	// independent of the item's current price.
	UnitPrice float64

	CreatedAt int64
	UpdatedAt int64
}

// TransactionResult is the outcome of a payment attempt.
type TransactionResult string

const (
	TransactionSuccess TransactionResult = "success"
	TransactionFailed  TransactionResult = "failed"
)

// Transaction is a payment attempt against an invoice.
type Transaction struct {
	ID               int64
	InvoiceID        int64
	CreditCardNumber string
	Result           TransactionResult
	CreatedAt        int64
	UpdatedAt        int64
}
