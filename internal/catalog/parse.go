package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Query parameter names accepted by the item and merchant search endpoints.
const (
	ParamName     = "name"
	ParamMinPrice = "min_price"
	ParamMaxPrice = "max_price"
)

// ParseItemFilter turns search parameters into a Filter.
//
// name may not be combined with either price bound. A name that is present
// must be non-empty, and price bounds must be non-negative decimals.
func ParseItemFilter(params url.Values) (Filter, error) {
	_, hasName := params[ParamName]
	_, hasMin := params[ParamMinPrice]
	_, hasMax := params[ParamMaxPrice]

	if hasName && (hasMin || hasMax) {
		return nil, invalid(ParamName, "cannot send both name and min_price or max_price")
	}

	if hasName {
		name := params.Get(ParamName)
		if strings.TrimSpace(name) == "" {
			return nil, invalid(ParamName, "cannot be empty")
		}
		return ByName{Fragment: name}, nil
	}

	var lo, hi decimal.Decimal
	var err error
	if hasMin {
		if lo, err = parsePrice(ParamMinPrice, params.Get(ParamMinPrice)); err != nil {
			return nil, err
		}
	}
	if hasMax {
		if hi, err = parsePrice(ParamMaxPrice, params.Get(ParamMaxPrice)); err != nil {
			return nil, err
		}
	}

	switch {
	case hasMin && hasMax:
		return ByPriceRange{Min: lo, Max: hi}, nil
	case hasMin:
		return ByMinPrice{Min: lo}, nil
	case hasMax:
		return ByMaxPrice{Max: hi}, nil
	default:
		return NoFilter{}, nil
	}
}

// ParseMerchantQuery returns the required, non-empty name fragment of a
// merchant search.
func ParseMerchantQuery(params url.Values) (string, error) {
	name := params.Get(ParamName)
	if strings.TrimSpace(name) == "" {
		return "", invalid(ParamName, "cannot be empty")
	}
	return name, nil
}

// ParseID parses a path ID. Anything that is not a positive integer cannot
// name a record, so it is reported as not found.
func ParseID(resource, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &NotFoundError{Resource: resource, ID: raw}
	}
	return id, nil
}

func parsePrice(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, invalid(field, "cannot be empty")
	}
	// decimal rejects NaN and Inf.
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, invalid(field, "must be a number")
	}
	if d.IsNegative() {
		return decimal.Decimal{}, invalid(field, "cannot be less than 0")
	}
	return d, nil
}
