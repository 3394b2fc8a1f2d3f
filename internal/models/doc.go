// Package models defines the catalog's domain records.
//
// # Entities
//
//   - Merchant: a seller that owns items
//   - Item: a product offered by exactly one merchant
//   - Customer: a buyer referenced by invoices
//   - Invoice: a purchase by a customer from a merchant
//   - InvoiceItem: the join between an invoice and an item, carrying the price paid
//   - Transaction: a payment attempt against an invoice
//
// # Relationships
//
// Relationships are expressed as int64 foreign keys rather than pointers. The storage layer
// enforces referential integrity; the service layer owns every rule that removes records
// (see service.CatalogService.DeleteItem), so no record disappears because of a schema cascade.
//
// Timestamps are Unix seconds assigned by the store.
package models
