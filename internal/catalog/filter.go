// Package catalog holds the item and merchant query rules: request parsing
// into a Filter, and pure selection and ordering over store records.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Filter is one of NoFilter, ByName, ByMinPrice, ByMaxPrice or ByPriceRange.
// Values are only produced by ParseItemFilter or built directly in code, so
// an engine never sees an invalid combination.
type Filter interface {
	fmt.Stringer
	isFilter()
}

// NoFilter selects the whole collection in ID order.
type NoFilter struct{}

// ByName selects items whose name contains Fragment, ignoring case.
type ByName struct {
	Fragment string
}

// ByMinPrice selects items priced at or above Min.
type ByMinPrice struct {
	Min decimal.Decimal
}

// ByMaxPrice selects items priced at or below Max.
type ByMaxPrice struct {
	Max decimal.Decimal
}

// ByPriceRange selects items priced within [Min, Max].
type ByPriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

func (NoFilter) isFilter()     {}
func (ByName) isFilter()       {}
func (ByMinPrice) isFilter()   {}
func (ByMaxPrice) isFilter()   {}
func (ByPriceRange) isFilter() {}

func (NoFilter) String() string { return "all" }

func (f ByName) String() string { return fmt.Sprintf("name~%q", f.Fragment) }

func (f ByMinPrice) String() string { return "price>=" + f.Min.String() }

func (f ByMaxPrice) String() string { return "price<=" + f.Max.String() }

func (f ByPriceRange) String() string {
	return fmt.Sprintf("%s<=price<=%s", f.Min.String(), f.Max.String())
}
