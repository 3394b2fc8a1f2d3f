package models

// Item is a product offered by a single merchant.
type Item struct {
	// ID is assigned by the store and never reused.
	ID int64

	// Name is the product name. Never empty.
	Name string

	// Description is free text shown alongside the name.
	Description string

	// UnitPrice is the current catalog price. Invoice items capture their own price,
	// so changing it does not rewrite history.
	UnitPrice float64

	// MerchantID references the owning merchant.
	MerchantID int64

	CreatedAt int64
	UpdatedAt int64
}
