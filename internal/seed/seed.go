// Package seed fills a store with deterministic sample catalog data.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/okayama-mayu/rails-engine/internal/models"
	"github.com/okayama-mayu/rails-engine/internal/storage"
)

// Options sizes the generated data. The same RandomSeed always yields the same data.
type Options struct {
	Merchants        int
	ItemsPerMerchant int
	Customers        int
	Invoices         int
	RandomSeed       uint64

	// Force seeds even when merchants already exist.
	Force bool
}

// Summary counts the records Generate created.
type Summary struct {
	Merchants    int
	Items        int
	Customers    int
	Invoices     int
	InvoiceItems int
	Transactions int
	Skipped      bool
}

var (
	merchantPrefixes = []string{"Schroeder", "Klein", "Willms", "Cummings", "Williamson", "Bernhard", "Osinski", "Bosco", "Hand", "Kozey"}
	merchantSuffixes = []string{"Group", "and Sons", "LLC", "Inc", "Jerde", "Rempel and Jones", "Hills", "Ernser"}
	adjectives       = []string{"Ergonomic", "Rustic", "Sleek", "Small", "Durable", "Heavy Duty", "Lightweight", "Practical", "Awesome", "Gorgeous"}
	materials        = []string{"Wooden", "Steel", "Cotton", "Granite", "Leather", "Silk", "Marble", "Copper", "Plastic", "Wool"}
	products         = []string{"Chair", "Ball", "Lamp", "Bell", "Dress", "Llama", "Table", "Hat", "Bottle", "Knife", "Clock", "Bag"}
	firstNames       = []string{"Joey", "Cecelia", "Mariah", "Leanne", "Sylvester", "Heber", "Dejon", "Ramona", "Parker", "Loyal"}
	lastNames        = []string{"Ondricka", "Osinski", "Toy", "Braun", "Nader", "Kuhn", "Fadel", "Reynolds", "Daugherty", "Considine"}
	statuses         = []models.InvoiceStatus{models.InvoiceStatusPending, models.InvoiceStatusPackaged, models.InvoiceStatusShipped}
)

// Generate creates merchants with items, customers, and invoices with
// invoice items and one transaction each. It does nothing when merchants
// already exist unless opts.Force is set.
func Generate(ctx context.Context, store storage.Store, opts Options) (*Summary, error) {
	existing, err := store.CountMerchants(ctx)
	if err != nil {
		return nil, err
	}
	if existing > 0 && !opts.Force {
		slog.Info("Catalog already seeded, skipping", "merchants", existing)
		return &Summary{Skipped: true}, nil
	}

	r := rand.New(rand.NewPCG(opts.RandomSeed, opts.RandomSeed^0x9e3779b97f4a7c15))
	sum := &Summary{}

	var catalog []models.Item
	var merchantIDs []int64
	for i := 0; i < opts.Merchants; i++ {
		m := &models.Merchant{Name: fmt.Sprintf("%s %s", pick(r, merchantPrefixes), pick(r, merchantSuffixes))}
		if err := store.CreateMerchant(ctx, m); err != nil {
			return nil, fmt.Errorf("failed to seed merchant: %w", err)
		}
		sum.Merchants++
		merchantIDs = append(merchantIDs, m.ID)

		for j := 0; j < opts.ItemsPerMerchant; j++ {
			it := &models.Item{
				Name:        fmt.Sprintf("%s %s %s", pick(r, adjectives), pick(r, materials), pick(r, products)),
				Description: fmt.Sprintf("A %s item from %s.", pick(r, adjectives), m.Name),
				UnitPrice:   price(r),
				MerchantID:  m.ID,
			}
			if err := store.CreateItem(ctx, it); err != nil {
				return nil, fmt.Errorf("failed to seed item: %w", err)
			}
			sum.Items++
			catalog = append(catalog, *it)
		}
	}

	var customerIDs []int64
	for i := 0; i < opts.Customers; i++ {
		c := &models.Customer{FirstName: pick(r, firstNames), LastName: pick(r, lastNames)}
		if err := store.CreateCustomer(ctx, c); err != nil {
			return nil, fmt.Errorf("failed to seed customer: %w", err)
		}
		sum.Customers++
		customerIDs = append(customerIDs, c.ID)
	}

	if len(catalog) == 0 || len(customerIDs) == 0 {
		slog.Info("Seed finished without invoices", "merchants", sum.Merchants, "customers", sum.Customers)
		return sum, nil
	}

	byMerchant := make(map[int64][]models.Item, len(merchantIDs))
	for _, it := range catalog {
		byMerchant[it.MerchantID] = append(byMerchant[it.MerchantID], it)
	}

	for i := 0; i < opts.Invoices; i++ {
		// Only merchants with items can be invoiced.
		items := byMerchant[catalog[r.IntN(len(catalog))].MerchantID]

		inv := &models.Invoice{
			CustomerID: customerIDs[r.IntN(len(customerIDs))],
			MerchantID: items[0].MerchantID,
			Status:     statuses[r.IntN(len(statuses))],
		}
		if err := store.CreateInvoice(ctx, inv); err != nil {
			return nil, fmt.Errorf("failed to seed invoice: %w", err)
		}
		sum.Invoices++

		lines := 1 + r.IntN(4)
		for j := 0; j < lines; j++ {
			it := items[r.IntN(len(items))]
			ii := &models.InvoiceItem{
				InvoiceID: inv.ID,
				ItemID:    it.ID,
				Quantity:  1 + r.IntN(5),
				UnitPrice: it.UnitPrice,
			}
			if err := store.CreateInvoiceItem(ctx, ii); err != nil {
				return nil, fmt.Errorf("failed to seed invoice item: %w", err)
			}
			sum.InvoiceItems++
		}

		result := models.TransactionSuccess
		if r.IntN(5) == 0 {
			result = models.TransactionFailed
		}
		t := &models.Transaction{
			InvoiceID:        inv.ID,
			CreditCardNumber: cardNumber(r),
			Result:           result,
		}
		if err := store.CreateTransaction(ctx, t); err != nil {
			return nil, fmt.Errorf("failed to seed transaction: %w", err)
		}
		sum.Transactions++
	}

	slog.Info("Seed finished",
		"merchants", sum.Merchants,
		"items", sum.Items,
		"customers", sum.Customers,
		"invoices", sum.Invoices,
		"invoice_items", sum.InvoiceItems,
	)
	return sum, nil
}

func pick(r *rand.Rand, words []string) string {
	return words[r.IntN(len(words))]
}

// price returns a value between 1.00 and 999.99, rounded to cents.
func price(r *rand.Rand) float64 {
	cents := decimal.NewFromInt(int64(100 + r.IntN(99900)))
	return cents.Shift(-2).InexactFloat64()
}

func cardNumber(r *rand.Rand) string {
	return fmt.Sprintf("4%015d", r.Int64N(1_000_000_000_000_000))
}
