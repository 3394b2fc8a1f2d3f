package catalog

import (
	"errors"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemFilter(t *testing.T) {
	tests := []struct {
		query string
		want  Filter
	}{
		{"", NoFilter{}},
		{"name=ring", ByName{Fragment: "ring"}},
		{"min_price=4.5", ByMinPrice{Min: decimal.RequireFromString("4.5")}},
		{"max_price=10", ByMaxPrice{Max: decimal.NewFromInt(10)}},
		{"min_price=1&max_price=2", ByPriceRange{Min: decimal.NewFromInt(1), Max: decimal.NewFromInt(2)}},
		{"min_price=0", ByMinPrice{Min: decimal.Zero}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			params, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := ParseItemFilter(params)
			require.NoError(t, err)
			assert.Equal(t, tt.want.String(), got.String())
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestParseItemFilter_Invalid(t *testing.T) {
	tests := []struct {
		query string
		field string
	}{
		{"name=ring&min_price=1", ParamName},
		{"name=ring&max_price=1", ParamName},
		{"name=ring&min_price=1&max_price=5", ParamName},
		{"name=", ParamName},
		{"name=%20%20", ParamName},
		{"min_price=abc", ParamMinPrice},
		{"min_price=-1", ParamMinPrice},
		{"max_price=-0.01", ParamMaxPrice},
		{"max_price=NaN", ParamMaxPrice},
		{"min_price=Inf", ParamMinPrice},
		{"min_price=", ParamMinPrice},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			params, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			_, err = ParseItemFilter(params)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestParseMerchantQuery(t *testing.T) {
	name, err := ParseMerchantQuery(url.Values{"name": {"jo"}})
	require.NoError(t, err)
	assert.Equal(t, "jo", name)

	_, err = ParseMerchantQuery(url.Values{})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("Item", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"abc", "0", "-3", "", "1.5"} {
		_, err := ParseID("Item", raw)
		var nf *NotFoundError
		assert.ErrorAs(t, err, &nf, raw)
	}
}
