package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okayama-mayu/rails-engine/internal/models"
	"github.com/okayama-mayu/rails-engine/internal/service"
	"github.com/okayama-mayu/rails-engine/internal/storage"
)

func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()

	dsn := os.Getenv("CATALOG_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CATALOG_TEST_POSTGRES_DSN not set")
	}
	store, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.db.Exec(
		"TRUNCATE transactions, invoice_items, invoices, items, customers, merchants RESTART IDENTITY",
	).Error)
	return store
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(&pgconn.PgError{Code: PgErrSerializationFailure}))
	assert.True(t, isRetryable(&pgconn.PgError{Code: PgErrDeadlockDetected}))
	assert.False(t, isRetryable(&pgconn.PgError{Code: PgErrForeignKeyViolation}))
	assert.False(t, isRetryable(errors.New("plain")))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: PgErrForeignKeyViolation}))
}

func TestPostgresStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	m := &models.Merchant{Name: "Shop"}
	require.NoError(t, store.CreateMerchant(ctx, m))
	c := &models.Customer{FirstName: "Joey", LastName: "Ondricka"}
	require.NoError(t, store.CreateCustomer(ctx, c))

	item := &models.Item{Name: "Thing", Description: "d", UnitPrice: 4.25, MerchantID: m.ID}
	require.NoError(t, store.CreateItem(ctx, item))

	t.Run("unknown merchant is not found", func(t *testing.T) {
		err := store.CreateItem(ctx, &models.Item{Name: "x", Description: "x", MerchantID: 9999})
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})

	t.Run("get and update", func(t *testing.T) {
		got, err := store.GetItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, 4.25, got.UnitPrice)

		got.Name = "Other"
		require.NoError(t, store.UpdateItem(ctx, got))
		again, err := store.GetItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "Other", again.Name)

		_, err = store.GetItem(ctx, 9999)
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})

	t.Run("tx primitives", func(t *testing.T) {
		inv := &models.Invoice{CustomerID: c.ID, MerchantID: m.ID}
		require.NoError(t, store.CreateInvoice(ctx, inv))
		assert.Equal(t, models.InvoiceStatusPending, inv.Status)
		require.NoError(t, store.CreateInvoiceItem(ctx, &models.InvoiceItem{InvoiceID: inv.ID, ItemID: item.ID, Quantity: 1, UnitPrice: 4.25}))
		require.NoError(t, store.CreateTransaction(ctx, &models.Transaction{InvoiceID: inv.ID, CreditCardNumber: "4242", Result: models.TransactionSuccess}))

		err := store.WithTx(ctx, func(tx storage.Tx) error {
			if _, err := tx.LockItem(ctx, item.ID); err != nil {
				return err
			}
			ids, err := tx.LockInvoicesForItem(ctx, item.ID)
			if err != nil {
				return err
			}
			assert.Equal(t, []int64{inv.ID}, ids)
			if _, err := tx.DeleteInvoiceItemsByItem(ctx, item.ID); err != nil {
				return err
			}
			if err := tx.DeleteItem(ctx, item.ID); err != nil {
				return err
			}
			n, err := tx.CountInvoiceItemsByInvoice(ctx, inv.ID)
			if err != nil {
				return err
			}
			assert.Zero(t, n)
			if _, err := tx.DeleteTransactionsByInvoice(ctx, inv.ID); err != nil {
				return err
			}
			return tx.DeleteInvoice(ctx, inv.ID)
		})
		require.NoError(t, err)

		_, err = store.GetInvoice(ctx, inv.ID)
		assert.True(t, errors.Is(err, storage.ErrNotFound))
		_, err = store.GetMerchant(ctx, m.ID)
		assert.NoError(t, err)
	})
}

func TestConcurrentDeleteSharedInvoice(t *testing.T) {
	store := newTestStore(t)
	svc := service.NewCatalogService(store)
	ctx := context.Background()

	c := &models.Customer{FirstName: "Joey", LastName: "Ondricka"}
	require.NoError(t, store.CreateCustomer(ctx, c))

	for round := 0; round < 5; round++ {
		m := &models.Merchant{Name: fmt.Sprintf("Shop %d", round)}
		require.NoError(t, store.CreateMerchant(ctx, m))
		a := &models.Item{Name: "A", Description: "a", UnitPrice: 1, MerchantID: m.ID}
		b := &models.Item{Name: "B", Description: "b", UnitPrice: 2, MerchantID: m.ID}
		require.NoError(t, store.CreateItem(ctx, a))
		require.NoError(t, store.CreateItem(ctx, b))

		inv := &models.Invoice{CustomerID: c.ID, MerchantID: m.ID}
		require.NoError(t, store.CreateInvoice(ctx, inv))
		for _, it := range []*models.Item{a, b} {
			require.NoError(t, store.CreateInvoiceItem(ctx, &models.InvoiceItem{InvoiceID: inv.ID, ItemID: it.ID, Quantity: 1, UnitPrice: it.UnitPrice}))
		}
		require.NoError(t, store.CreateTransaction(ctx, &models.Transaction{InvoiceID: inv.ID, CreditCardNumber: "4242", Result: models.TransactionSuccess}))

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, id := range []int64{a.ID, b.ID} {
			wg.Add(1)
			go func(i int, id int64) {
				defer wg.Done()
				_, errs[i] = svc.DeleteItem(ctx, id)
			}(i, id)
		}
		wg.Wait()

		require.NoError(t, errs[0], "round %d", round)
		require.NoError(t, errs[1], "round %d", round)

		_, err := store.GetInvoice(ctx, inv.ID)
		assert.True(t, errors.Is(err, storage.ErrNotFound), "round %d: invoice must be removed", round)
	}
}
