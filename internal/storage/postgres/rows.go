package postgres

import "github.com/okayama-mayu/rails-engine/internal/models"

// Row types carry the gorm mapping so the domain models stay free of storage tags.

type merchantRow struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string `gorm:"column:name;type:varchar(255);not null"`
	CreatedAt int64  `gorm:"column:created_at;not null"`
	UpdatedAt int64  `gorm:"column:updated_at;not null"`
}

func (merchantRow) TableName() string { return "merchants" }

func (r merchantRow) model() models.Merchant {
	return models.Merchant{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type customerRow struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName string `gorm:"column:first_name;type:varchar(255);not null"`
	LastName  string `gorm:"column:last_name;type:varchar(255);not null"`
	CreatedAt int64  `gorm:"column:created_at;not null"`
	UpdatedAt int64  `gorm:"column:updated_at;not null"`
}

func (customerRow) TableName() string { return "customers" }

func (r customerRow) model() models.Customer {
	return models.Customer{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type itemRow struct {
	ID          int64        `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string       `gorm:"column:name;type:varchar(255);not null"`
	Description string       `gorm:"column:description;type:text;not null"`
	UnitPrice   float64      `gorm:"column:unit_price;type:double precision;not null"`
	MerchantID  int64        `gorm:"column:merchant_id;not null;index"`
	Merchant    *merchantRow `gorm:"foreignKey:MerchantID;constraint:OnDelete:RESTRICT"`
	CreatedAt   int64        `gorm:"column:created_at;not null"`
	UpdatedAt   int64        `gorm:"column:updated_at;not null"`
}

func (itemRow) TableName() string { return "items" }

func (r itemRow) model() models.Item {
	return models.Item{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		UnitPrice:   r.UnitPrice,
		MerchantID:  r.MerchantID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type invoiceRow struct {
	ID         int64        `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID int64        `gorm:"column:customer_id;not null;index"`
	Customer   *customerRow `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	MerchantID int64        `gorm:"column:merchant_id;not null;index"`
	Merchant   *merchantRow `gorm:"foreignKey:MerchantID;constraint:OnDelete:RESTRICT"`
	Status     string       `gorm:"column:status;type:varchar(20);not null"`
	CreatedAt  int64        `gorm:"column:created_at;not null"`
	UpdatedAt  int64        `gorm:"column:updated_at;not null"`
}

func (invoiceRow) TableName() string { return "invoices" }

func (r invoiceRow) model() models.Invoice {
	return models.Invoice{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		MerchantID: r.MerchantID,
		Status:     models.InvoiceStatus(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type invoiceItemRow struct {
	ID        int64       `gorm:"column:id;primaryKey;autoIncrement"`
	InvoiceID int64       `gorm:"column:invoice_id;not null;index"`
	Invoice   *invoiceRow `gorm:"foreignKey:InvoiceID;constraint:OnDelete:RESTRICT"`
	ItemID    int64       `gorm:"column:item_id;not null;index"`
	Item      *itemRow    `gorm:"foreignKey:ItemID;constraint:OnDelete:RESTRICT"`
	Quantity  int         `gorm:"column:quantity;not null"`
	UnitPrice float64     `gorm:"column:unit_price;type:double precision;not null"`
	CreatedAt int64       `gorm:"column:created_at;not null"`
	UpdatedAt int64       `gorm:"column:updated_at;not null"`
}

func (invoiceItemRow) TableName() string { return "invoice_items" }

func (r invoiceItemRow) model() models.InvoiceItem {
	return models.InvoiceItem{
		ID:        r.ID,
		InvoiceID: r.InvoiceID,
		ItemID:    r.ItemID,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type transactionRow struct {
	ID               int64       `gorm:"column:id;primaryKey;autoIncrement"`
	InvoiceID        int64       `gorm:"column:invoice_id;not null;index"`
	Invoice          *invoiceRow `gorm:"foreignKey:InvoiceID;constraint:OnDelete:RESTRICT"`
	CreditCardNumber string      `gorm:"column:credit_card_number;type:varchar(32);not null"`
	Result           string      `gorm:"column:result;type:varchar(20);not null"`
	CreatedAt        int64       `gorm:"column:created_at;not null"`
	UpdatedAt        int64       `gorm:"column:updated_at;not null"`
}

func (transactionRow) TableName() string { return "transactions" }

func (r transactionRow) model() models.Transaction {
	return models.Transaction{
		ID:               r.ID,
		InvoiceID:        r.InvoiceID,
		CreditCardNumber: r.CreditCardNumber,
		Result:           models.TransactionResult(r.Result),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
