package seed

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okayama-mayu/rails-engine/internal/storage/sqlite"
)

func newStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "seed.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

var smallOptions = Options{Merchants: 3, ItemsPerMerchant: 4, Customers: 5, Invoices: 10, RandomSeed: 42}

func TestGenerate(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	sum, err := Generate(ctx, store, smallOptions)
	require.NoError(t, err)
	assert.False(t, sum.Skipped)
	assert.Equal(t, 3, sum.Merchants)
	assert.Equal(t, 12, sum.Items)
	assert.Equal(t, 5, sum.Customers)
	assert.Equal(t, 10, sum.Invoices)
	assert.Equal(t, 10, sum.Transactions)
	assert.GreaterOrEqual(t, sum.InvoiceItems, 10)
	assert.LessOrEqual(t, sum.InvoiceItems, 40)

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	for _, it := range items {
		assert.NotEmpty(t, it.Name)
		assert.GreaterOrEqual(t, it.UnitPrice, 1.0)
		assert.Less(t, it.UnitPrice, 1000.0)
		assert.InDelta(t, math.Round(it.UnitPrice*100)/100, it.UnitPrice, 1e-9, "price rounded to cents")
	}

	for invoiceID := int64(1); invoiceID <= 10; invoiceID++ {
		inv, err := store.GetInvoice(ctx, invoiceID)
		require.NoError(t, err)
		assert.True(t, inv.Status.Valid())

		lines, err := store.ListInvoiceItemsByInvoice(ctx, invoiceID)
		require.NoError(t, err)
		assert.NotEmpty(t, lines)
		for _, l := range lines {
			it, err := store.GetItem(ctx, l.ItemID)
			require.NoError(t, err)
			assert.Equal(t, inv.MerchantID, it.MerchantID, "invoice lines come from the invoicing merchant")
			assert.Equal(t, it.UnitPrice, l.UnitPrice)
		}

		txs, err := store.ListTransactionsByInvoice(ctx, invoiceID)
		require.NoError(t, err)
		assert.Len(t, txs, 1)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	ctx := context.Background()
	a, b := newStore(t), newStore(t)

	_, err := Generate(ctx, a, smallOptions)
	require.NoError(t, err)
	_, err = Generate(ctx, b, smallOptions)
	require.NoError(t, err)

	itemsA, err := a.ListItems(ctx)
	require.NoError(t, err)
	itemsB, err := b.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, itemsB, len(itemsA))
	for i := range itemsA {
		assert.Equal(t, itemsA[i].Name, itemsB[i].Name)
		assert.Equal(t, itemsA[i].UnitPrice, itemsB[i].UnitPrice)
	}
}

func TestGenerate_SkipsWhenSeeded(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := Generate(ctx, store, smallOptions)
	require.NoError(t, err)

	sum, err := Generate(ctx, store, smallOptions)
	require.NoError(t, err)
	assert.True(t, sum.Skipped)

	n, err := store.CountMerchants(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	opts := smallOptions
	opts.Force = true
	sum, err = Generate(ctx, store, opts)
	require.NoError(t, err)
	assert.False(t, sum.Skipped)

	n, err = store.CountMerchants(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
}

func TestGenerate_NoItems(t *testing.T) {
	store := newStore(t)
	sum, err := Generate(context.Background(), store, Options{Merchants: 2, Customers: 2, Invoices: 5, RandomSeed: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Merchants)
	assert.Zero(t, sum.Invoices)
}
