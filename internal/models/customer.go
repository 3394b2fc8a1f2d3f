package models

// Customer is a buyer referenced by invoices.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	CreatedAt int64
	UpdatedAt int64
}
