package sqlite

import (
	"context"
	"fmt"

	"github.com/okayama-mayu/rails-engine/internal/models"
)

const itemColumns = "id, name, description, unit_price, merchant_id, created_at, updated_at"

// CreateItem inserts an item and assigns its ID and timestamps.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	now := s.timestamp()
	if item.CreatedAt == 0 {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO items (name, description, unit_price, merchant_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.Name, item.Description, item.UnitPrice, item.MerchantID, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read item id: %w", err)
	}
	item.ID = id

	return nil
}

// UpdateItem overwrites the mutable columns of an existing item.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) error {
	item.UpdatedAt = s.timestamp()

	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, unit_price = ?, merchant_id = ?, updated_at = ?
		 WHERE id = ?`,
		item.Name, item.Description, item.UnitPrice, item.MerchantID, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if n == 0 {
		return notFound("item", item.ID)
	}

	return nil
}

// GetItem retrieves an item by ID.
func (s *SQLiteStore) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	return getItem(ctx, s.db, id)
}

// ListItems retrieves all items in creation order.
func (s *SQLiteStore) ListItems(ctx context.Context) ([]models.Item, error) {
	return queryItems(ctx, s.db, "SELECT "+itemColumns+" FROM items ORDER BY id")
}

// ListItemsByMerchant retrieves the items owned by a merchant in creation order.
func (s *SQLiteStore) ListItemsByMerchant(ctx context.Context, merchantID int64) ([]models.Item, error) {
	return queryItems(ctx, s.db,
		"SELECT "+itemColumns+" FROM items WHERE merchant_id = ? ORDER BY id",
		merchantID,
	)
}

func getItem(ctx context.Context, q querier, id int64) (*models.Item, error) {
	item := &models.Item{}
	err := q.QueryRowContext(ctx, "SELECT "+itemColumns+" FROM items WHERE id = ?", id).Scan(
		&item.ID, &item.Name, &item.Description, &item.UnitPrice,
		&item.MerchantID, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, scanErr(err, "item", id)
	}
	return item, nil
}

func queryItems(ctx context.Context, q querier, query string, args ...any) ([]models.Item, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.UnitPrice,
			&item.MerchantID, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}
