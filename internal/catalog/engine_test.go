package catalog

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okayama-mayu/rails-engine/internal/models"
)

func sampleItems() []models.Item {
	return []models.Item{
		{ID: 1, Name: "Llama", UnitPrice: 35, MerchantID: 1},
		{ID: 2, Name: "Ball", UnitPrice: 45, MerchantID: 1},
		{ID: 3, Name: "Dress", UnitPrice: 65, MerchantID: 2},
		{ID: 4, Name: "Bell", UnitPrice: 55, MerchantID: 2},
	}
}

func names(items []models.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func mustFilter(t *testing.T, query string) Filter {
	t.Helper()
	params, err := url.ParseQuery(query)
	require.NoError(t, err)
	f, err := ParseItemFilter(params)
	require.NoError(t, err)
	return f
}

func TestSelectItems(t *testing.T) {
	items := sampleItems()

	tests := []struct {
		query string
		want  []string
	}{
		{"min_price=40&max_price=60", []string{"Ball", "Bell"}},
		{"name=ll", []string{"Ball", "Bell", "Llama"}},
		{"name=LL", []string{"Ball", "Bell", "Llama"}},
		{"name=zzz", []string{}},
		{"min_price=50", []string{"Bell", "Dress"}},
		{"max_price=45", []string{"Llama", "Ball"}},
		{"min_price=45&max_price=45", []string{"Ball"}},
		{"min_price=60&max_price=40", []string{}},
		{"", []string{"Llama", "Ball", "Dress", "Bell"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := SelectItems(items, mustFilter(t, tt.query))
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestSelectItems_TiesKeepIDOrder(t *testing.T) {
	items := []models.Item{
		{ID: 1, Name: "cup", UnitPrice: 10},
		{ID: 2, Name: "Cup", UnitPrice: 10},
		{ID: 3, Name: "CUP", UnitPrice: 10},
	}

	byName := SelectItems(items, ByName{Fragment: "cu"})
	assert.Equal(t, []int64{1, 2, 3}, ids(byName))

	byPrice := SelectItems(items, ByMaxPrice{Max: decimal.NewFromInt(10)})
	assert.Equal(t, []int64{1, 2, 3}, ids(byPrice))
}

func TestSelectItems_DoesNotModifyInput(t *testing.T) {
	items := sampleItems()
	_ = SelectItems(items, ByName{Fragment: "l"})
	assert.Equal(t, sampleItems(), items)
}

func TestSelectItems_FractionalBounds(t *testing.T) {
	items := []models.Item{
		{ID: 1, Name: "a", UnitPrice: 0.1},
		{ID: 2, Name: "b", UnitPrice: 0.3},
	}
	got := SelectItems(items, mustFilter(t, "min_price=0.1&max_price=0.3"))
	assert.Equal(t, []string{"a", "b"}, names(got))
}

func TestFindItem(t *testing.T) {
	it, ok := FindItem(sampleItems(), ByName{Fragment: "ll"})
	require.True(t, ok)
	assert.Equal(t, "Ball", it.Name)

	_, ok = FindItem(sampleItems(), ByMinPrice{Min: decimal.NewFromInt(1000)})
	assert.False(t, ok)
}

func sampleMerchants() []models.Merchant {
	return []models.Merchant{
		{ID: 1, Name: "Schroeder-Jerde"},
		{ID: 2, Name: "Klein, Rempel and Jones"},
		{ID: 3, Name: "Willms and Sons"},
		{ID: 4, Name: "Darrel Jones"},
	}
}

func TestFindMerchant(t *testing.T) {
	t.Run("highest id wins among matches", func(t *testing.T) {
		merchants := []models.Merchant{
			{ID: 1, Name: "John Doe"},
			{ID: 2, Name: "Joe Manchin"},
			{ID: 3, Name: "Jolene Smith"},
			{ID: 4, Name: "Darrel Jones"},
			{ID: 5, Name: "Priyanka Chopra"},
		}
		m, ok := FindMerchant(merchants, "jo")
		require.True(t, ok)
		assert.Equal(t, "Darrel Jones", m.Name)
	})

	t.Run("later match beats earlier", func(t *testing.T) {
		m, ok := FindMerchant(sampleMerchants(), "jo")
		require.True(t, ok)
		assert.Equal(t, "Darrel Jones", m.Name)
	})

	t.Run("case insensitive", func(t *testing.T) {
		m, ok := FindMerchant(sampleMerchants(), "WILLMS")
		require.True(t, ok)
		assert.Equal(t, int64(3), m.ID)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := FindMerchant(sampleMerchants(), "nomatch")
		assert.False(t, ok)
	})
}

func TestFindAllMerchants(t *testing.T) {
	got := FindAllMerchants(sampleMerchants(), "e")
	var gotNames []string
	for _, m := range got {
		gotNames = append(gotNames, m.Name)
	}
	assert.Equal(t, []string{"Darrel Jones", "Klein, Rempel and Jones", "Schroeder-Jerde"}, gotNames)

	assert.Empty(t, FindAllMerchants(sampleMerchants(), "xyz"))
}

func ids(items []models.Item) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
