package sqlite

import (
	"context"
	"fmt"

	"github.com/okayama-mayu/rails-engine/internal/models"
)

// CreateMerchant inserts a merchant and assigns its ID and timestamps.
func (s *SQLiteStore) CreateMerchant(ctx context.Context, merchant *models.Merchant) error {
	now := s.timestamp()
	if merchant.CreatedAt == 0 {
		merchant.CreatedAt = now
	}
	merchant.UpdatedAt = now

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO merchants (name, created_at, updated_at) VALUES (?, ?, ?)",
		merchant.Name, merchant.CreatedAt, merchant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert merchant: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read merchant id: %w", err)
	}
	merchant.ID = id

	return nil
}

// GetMerchant retrieves a merchant by ID.
func (s *SQLiteStore) GetMerchant(ctx context.Context, id int64) (*models.Merchant, error) {
	merchant := &models.Merchant{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM merchants WHERE id = ?",
		id,
	).Scan(&merchant.ID, &merchant.Name, &merchant.CreatedAt, &merchant.UpdatedAt)
	if err != nil {
		return nil, scanErr(err, "merchant", id)
	}

	return merchant, nil
}

// ListMerchants retrieves all merchants in creation order.
func (s *SQLiteStore) ListMerchants(ctx context.Context) ([]models.Merchant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM merchants ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list merchants: %w", err)
	}
	defer rows.Close()

	merchants := []models.Merchant{}
	for rows.Next() {
		var m models.Merchant
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan merchant: %w", err)
		}
		merchants = append(merchants, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate merchants: %w", err)
	}

	return merchants, nil
}

// CountMerchants returns the number of stored merchants.
func (s *SQLiteStore) CountMerchants(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM merchants").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count merchants: %w", err)
	}
	return n, nil
}
