package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/okayama-mayu/rails-engine/internal/catalog"
	"github.com/okayama-mayu/rails-engine/internal/service"
)

// createItemRequest is the payload for POST /items.
type createItemRequest struct {
	Name        *string  `json:"name" validate:"required"`
	Description *string  `json:"description" validate:"required"`
	UnitPrice   *float64 `json:"unit_price" validate:"required,gte=0"`
	MerchantID  *int64   `json:"merchant_id" validate:"required,gt=0"`
}

func (r createItemRequest) toNewItem() service.NewItem {
	return service.NewItem{
		Name:        *r.Name,
		Description: *r.Description,
		UnitPrice:   *r.UnitPrice,
		MerchantID:  *r.MerchantID,
	}
}

// updateItemRequest is the payload for PATCH and PUT /items/:id. Absent fields are kept.
type updateItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	UnitPrice   *float64 `json:"unit_price" validate:"omitempty,gte=0"`
	MerchantID  *int64   `json:"merchant_id" validate:"omitempty,gt=0"`
}

func (r updateItemRequest) toPatch() service.ItemPatch {
	return service.ItemPatch{
		Name:        r.Name,
		Description: r.Description,
		UnitPrice:   r.UnitPrice,
		MerchantID:  r.MerchantID,
	}
}

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindAndValidate decodes the JSON body into out and runs validation.
// Failures come back as *catalog.ValidationError.
func bindAndValidate(c *gin.Context, out any, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return &catalog.ValidationError{Field: "body", Reason: "malformed JSON: " + err.Error()}
	}

	if err := v.Struct(out); err != nil {
		var ve validatorv10.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return &catalog.ValidationError{Field: ve[0].Field(), Reason: describe(ve[0])}
		}
		return &catalog.ValidationError{Reason: err.Error()}
	}
	return nil
}

func describe(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "can't be blank"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
