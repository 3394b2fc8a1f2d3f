package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/okayama-mayu/rails-engine/internal/catalog"
	"github.com/okayama-mayu/rails-engine/internal/models"
	"github.com/okayama-mayu/rails-engine/internal/storage"
)

// Resource names used in not-found errors.
const (
	ResourceItem     = "Item"
	ResourceMerchant = "Merchant"
)

// CatalogService answers merchant and item queries and applies item mutations.
type CatalogService struct {
	store storage.Store
}

// NewCatalogService creates a new CatalogService with the given storage backend.
func NewCatalogService(store storage.Store) *CatalogService {
	return &CatalogService{store: store}
}

// NewItem carries the fields of an item to create.
type NewItem struct {
	Name        string
	Description string
	UnitPrice   float64
	MerchantID  int64
}

// ItemPatch carries a partial item update. Nil fields are left unchanged.
type ItemPatch struct {
	Name        *string
	Description *string
	UnitPrice   *float64
	MerchantID  *int64
}

// ListMerchants returns every merchant in ID order.
func (s *CatalogService) ListMerchants(ctx context.Context) ([]models.Merchant, error) {
	merchants, err := s.store.ListMerchants(ctx)
	if err != nil {
		slog.Error("ListMerchants failed", "error", err)
		return nil, err
	}
	slog.Debug("ListMerchants successful", "count", len(merchants))
	return merchants, nil
}

// GetMerchant returns a merchant by ID.
func (s *CatalogService) GetMerchant(ctx context.Context, id int64) (*models.Merchant, error) {
	m, err := s.store.GetMerchant(ctx, id)
	if err != nil {
		return nil, s.lookupErr("GetMerchant", ResourceMerchant, id, err)
	}
	return m, nil
}

// FindMerchant returns the merchant best matching a name fragment, or false when none match.
func (s *CatalogService) FindMerchant(ctx context.Context, fragment string) (models.Merchant, bool, error) {
	merchants, err := s.store.ListMerchants(ctx)
	if err != nil {
		slog.Error("FindMerchant failed", "name", fragment, "error", err)
		return models.Merchant{}, false, err
	}
	m, ok := catalog.FindMerchant(merchants, fragment)
	slog.Debug("FindMerchant", "name", fragment, "found", ok, "merchant_id", m.ID)
	return m, ok, nil
}

// FindAllMerchants returns every merchant matching a name fragment, ordered by name.
func (s *CatalogService) FindAllMerchants(ctx context.Context, fragment string) ([]models.Merchant, error) {
	merchants, err := s.store.ListMerchants(ctx)
	if err != nil {
		slog.Error("FindAllMerchants failed", "name", fragment, "error", err)
		return nil, err
	}
	return catalog.FindAllMerchants(merchants, fragment), nil
}

// MerchantItems returns the items of one merchant narrowed by f.
func (s *CatalogService) MerchantItems(ctx context.Context, merchantID int64, f catalog.Filter) ([]models.Item, error) {
	if _, err := s.GetMerchant(ctx, merchantID); err != nil {
		return nil, err
	}
	items, err := s.store.ListItemsByMerchant(ctx, merchantID)
	if err != nil {
		slog.Error("MerchantItems failed", "merchant_id", merchantID, "error", err)
		return nil, err
	}
	return catalog.SelectItems(items, f), nil
}

// ListItems returns every item narrowed by f.
func (s *CatalogService) ListItems(ctx context.Context, f catalog.Filter) ([]models.Item, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		slog.Error("ListItems failed", "filter", f, "error", err)
		return nil, err
	}
	selected := catalog.SelectItems(items, f)
	slog.Debug("ListItems successful", "filter", f, "count", len(selected))
	return selected, nil
}

// FindItem returns the first item matching f, or false when none match.
func (s *CatalogService) FindItem(ctx context.Context, f catalog.Filter) (models.Item, bool, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		slog.Error("FindItem failed", "filter", f, "error", err)
		return models.Item{}, false, err
	}
	it, ok := catalog.FindItem(items, f)
	return it, ok, nil
}

// GetItem returns an item by ID.
func (s *CatalogService) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	it, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, s.lookupErr("GetItem", ResourceItem, id, err)
	}
	return it, nil
}

// ItemMerchant returns the merchant that owns an item.
func (s *CatalogService) ItemMerchant(ctx context.Context, itemID int64) (*models.Merchant, error) {
	it, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.GetMerchant(ctx, it.MerchantID)
}

// CreateItem validates and stores a new item.
func (s *CatalogService) CreateItem(ctx context.Context, in NewItem) (*models.Item, error) {
	slog.Info("CreateItem request received", "name", in.Name, "merchant_id", in.MerchantID)

	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if in.UnitPrice < 0 {
		return nil, &catalog.ValidationError{Field: "unit_price", Reason: "cannot be less than 0"}
	}
	if _, err := s.GetMerchant(ctx, in.MerchantID); err != nil {
		return nil, err
	}

	item := &models.Item{
		Name:        in.Name,
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		MerchantID:  in.MerchantID,
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		slog.Error("CreateItem failed", "error", err)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound(ResourceMerchant, in.MerchantID)
		}
		return nil, err
	}

	slog.Info("Item created", "item_id", item.ID)
	return item, nil
}

// UpdateItem applies a partial update to an existing item.
func (s *CatalogService) UpdateItem(ctx context.Context, id int64, patch ItemPatch) (*models.Item, error) {
	slog.Info("UpdateItem request received", "item_id", id)

	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if err := validateName(*patch.Name); err != nil {
			return nil, err
		}
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.UnitPrice != nil {
		if *patch.UnitPrice < 0 {
			return nil, &catalog.ValidationError{Field: "unit_price", Reason: "cannot be less than 0"}
		}
		item.UnitPrice = *patch.UnitPrice
	}
	if patch.MerchantID != nil {
		if _, err := s.GetMerchant(ctx, *patch.MerchantID); err != nil {
			return nil, err
		}
		item.MerchantID = *patch.MerchantID
	}

	if err := s.store.UpdateItem(ctx, item); err != nil {
		slog.Error("UpdateItem failed", "item_id", id, "error", err)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, s.lookupErr("UpdateItem", ResourceItem, id, err)
		}
		return nil, err
	}

	slog.Info("Item updated", "item_id", id)
	return item, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &catalog.ValidationError{Field: "name", Reason: "can't be blank"}
	}
	return nil
}

// lookupErr converts storage.ErrNotFound into a catalog.NotFoundError and
// wraps anything else.
func (s *CatalogService) lookupErr(op, resource string, id int64, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		slog.Debug(op+" found nothing", "id", id)
		return notFound(resource, id)
	}
	slog.Error(op+" failed", "id", id, "error", err)
	return fmt.Errorf("failed to load %s: %w", strings.ToLower(resource), err)
}

func notFound(resource string, id int64) error {
	return &catalog.NotFoundError{Resource: resource, ID: strconv.FormatInt(id, 10)}
}
