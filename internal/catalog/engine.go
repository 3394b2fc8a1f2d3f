package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/okayama-mayu/rails-engine/internal/models"
)

// SelectItems applies f to items, which must be in ID order. The input is not modified.
//
// Name matches are ordered by case-folded name, price matches by unit price,
// and NoFilter keeps ID order. Ties always keep ID order.
func SelectItems(items []models.Item, f Filter) []models.Item {
	switch f := f.(type) {
	case ByName:
		fold := cases.Fold()
		needle := fold.String(f.Fragment)
		type keyed struct {
			key  string
			item models.Item
		}
		var hits []keyed
		for _, it := range items {
			key := fold.String(it.Name)
			if strings.Contains(key, needle) {
				hits = append(hits, keyed{key: key, item: it})
			}
		}
		slices.SortStableFunc(hits, func(a, b keyed) int {
			return cmp.Compare(a.key, b.key)
		})
		out := make([]models.Item, len(hits))
		for i, h := range hits {
			out[i] = h.item
		}
		return out

	case ByMinPrice:
		return selectByPrice(items, func(p decimal.Decimal) bool { return p.GreaterThanOrEqual(f.Min) })
	case ByMaxPrice:
		return selectByPrice(items, func(p decimal.Decimal) bool { return p.LessThanOrEqual(f.Max) })
	case ByPriceRange:
		if f.Min.GreaterThan(f.Max) {
			return []models.Item{}
		}
		return selectByPrice(items, func(p decimal.Decimal) bool {
			return p.GreaterThanOrEqual(f.Min) && p.LessThanOrEqual(f.Max)
		})

	default:
		return slices.Clone(items)
	}
}

func selectByPrice(items []models.Item, keep func(decimal.Decimal) bool) []models.Item {
	out := []models.Item{}
	for _, it := range items {
		if keep(decimal.NewFromFloat(it.UnitPrice)) {
			out = append(out, it)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Item) int {
		return cmp.Compare(a.UnitPrice, b.UnitPrice)
	})
	return out
}

// FindItem returns the first item SelectItems yields for f.
func FindItem(items []models.Item, f Filter) (models.Item, bool) {
	hits := SelectItems(items, f)
	if len(hits) == 0 {
		return models.Item{}, false
	}
	return hits[0], true
}

// FindMerchant returns the merchant whose name contains fragment, ignoring
// case. When several match, the one with the highest ID wins.
func FindMerchant(merchants []models.Merchant, fragment string) (models.Merchant, bool) {
	fold := cases.Fold()
	needle := fold.String(fragment)

	var best models.Merchant
	found := false
	for _, m := range merchants {
		if !strings.Contains(fold.String(m.Name), needle) {
			continue
		}
		if !found || m.ID > best.ID {
			best = m
			found = true
		}
	}
	return best, found
}

// FindAllMerchants returns every merchant whose name contains fragment,
// ordered by case-folded name, then ID.
func FindAllMerchants(merchants []models.Merchant, fragment string) []models.Merchant {
	fold := cases.Fold()
	needle := fold.String(fragment)

	out := []models.Merchant{}
	for _, m := range merchants {
		if strings.Contains(fold.String(m.Name), needle) {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Merchant) int {
		if c := cmp.Compare(fold.String(a.Name), fold.String(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
