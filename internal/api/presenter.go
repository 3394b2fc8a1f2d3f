package api

import (
	"strconv"
	"strings"

	"github.com/okayama-mayu/rails-engine/internal/models"
)

const (
	typeItem     = "item"
	typeMerchant = "merchant"
)

type resource struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes any    `json:"attributes"`
}

type itemAttributes struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   price  `json:"unit_price"`
	MerchantID  int64  `json:"merchant_id"`
}

// price always renders with a fractional part, so 35 becomes 35.0.
type price float64

func (p price) MarshalJSON() ([]byte, error) {
	s := strconv.FormatFloat(float64(p), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return []byte(s), nil
}

type merchantAttributes struct {
	Name string `json:"name"`
}

type envelope struct {
	Data any `json:"data"`
}

// emptyEnvelope renders as {"data":{}}.
var emptyEnvelope = envelope{Data: struct{}{}}

func presentItem(it models.Item) resource {
	return resource{
		ID:   strconv.FormatInt(it.ID, 10),
		Type: typeItem,
		Attributes: itemAttributes{
			Name:        it.Name,
			Description: it.Description,
			UnitPrice:   price(it.UnitPrice),
			MerchantID:  it.MerchantID,
		},
	}
}

func presentMerchant(m models.Merchant) resource {
	return resource{
		ID:         strconv.FormatInt(m.ID, 10),
		Type:       typeMerchant,
		Attributes: merchantAttributes{Name: m.Name},
	}
}

func itemList(items []models.Item) envelope {
	out := make([]resource, len(items))
	for i, it := range items {
		out[i] = presentItem(it)
	}
	return envelope{Data: out}
}

func merchantList(merchants []models.Merchant) envelope {
	out := make([]resource, len(merchants))
	for i, m := range merchants {
		out[i] = presentMerchant(m)
	}
	return envelope{Data: out}
}
