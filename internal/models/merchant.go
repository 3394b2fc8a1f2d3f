package models

// Merchant is a seller in the catalog.
type Merchant struct {
	// ID is assigned by the store and never reused.
	ID int64

	// Name is the display name of the merchant (e.g., "Schroeder-Jerde").
	Name string

	// CreatedAt is the Unix timestamp when the merchant was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last modification.
	UpdatedAt int64
}
