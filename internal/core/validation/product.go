// Package validation is the single conversion point from untrusted request
// bodies to the internal catalog input shapes. Checks run in a fixed order and
// short-circuit on the first failure; the returned error message is the
// client-facing field-level reason.
package validation

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/printforge/catalog-api/internal/core/ports"
)

var validate = validator.New()

const (
	msgName        = "name is required and must be under 200 characters"
	msgCategory    = "category is required and must be under 50 characters"
	msgPrice       = "price must be a number between 0 and 99999"
	msgDescription = "description must be under 2000 characters"
	msgImageURL    = "imageUrl must be under 500 characters"

	msgUpdateName = "name must be under 200 characters"
)

const maxTags = 20

// ValidateProduct checks and normalizes a create payload.
func ValidateProduct(body map[string]any) (ports.ProductInput, error) {
	var in ports.ProductInput

	name, ok := body["name"].(string)
	if !ok || validate.Var(name, "required,max=200") != nil {
		return in, errors.New(msgName)
	}

	category, ok := body["category"].(string)
	if !ok || validate.Var(category, "required,max=50") != nil {
		return in, errors.New(msgCategory)
	}

	var price float64
	if raw, present := body["price"]; present {
		f, isNum := raw.(float64)
		if !isNum || validate.Var(f, "gte=0,lte=99999") != nil {
			return in, errors.New(msgPrice)
		}
		price = f
	}

	var description string
	if raw, present := body["description"]; present && raw != nil {
		s, isStr := raw.(string)
		if !isStr || validate.Var(s, "max=2000") != nil {
			return in, errors.New(msgDescription)
		}
		description = s
	}

	var imageURL string
	if raw, present := body["imageUrl"]; present && raw != nil {
		s, isStr := raw.(string)
		if !isStr || validate.Var(s, "max=500") != nil {
			return in, errors.New(msgImageURL)
		}
		imageURL = s
	}

	in = ports.ProductInput{
		Name:           strings.TrimSpace(name),
		Description:    strings.TrimSpace(description),
		Price:          price,
		Category:       strings.ToLower(strings.TrimSpace(category)),
		ImageURL:       strings.TrimSpace(imageURL),
		Tags:           coerceTags(body["tags"]),
		InStock:        coerceInStock(body["inStock"]),
		Stock:          coerceStock(body["stock"]),
		Specifications: coerceSpecifications(body["specifications"]),
	}
	return in, nil
}

// ValidateProductUpdate checks a partial update payload and builds the
// allow-list patch. Only fields present in the body are validated; id,
// category, createdAt and createdBy have no representation in the patch and
// can never be overwritten by client input.
func ValidateProductUpdate(body map[string]any) (ports.ProductUpdate, error) {
	var patch ports.ProductUpdate

	if raw, present := body["name"]; present && raw != nil {
		s, isStr := raw.(string)
		if !isStr || validate.Var(s, "max=200") != nil {
			return ports.ProductUpdate{}, errors.New(msgUpdateName)
		}
		// Blank names are ignored rather than stored.
		if t := strings.TrimSpace(s); t != "" {
			patch.Name = &t
		}
	}

	if raw, present := body["price"]; present {
		f, isNum := raw.(float64)
		if !isNum || validate.Var(f, "gte=0,lte=99999") != nil {
			return ports.ProductUpdate{}, errors.New(msgPrice)
		}
		patch.Price = &f
	}

	if raw, present := body["description"]; present && raw != nil {
		s, isStr := raw.(string)
		if !isStr || validate.Var(s, "max=2000") != nil {
			return ports.ProductUpdate{}, errors.New(msgDescription)
		}
		t := strings.TrimSpace(s)
		patch.Description = &t
	}

	if raw, present := body["imageUrl"]; present {
		if s, isStr := raw.(string); isStr {
			t := strings.TrimSpace(s)
			patch.ImageURL = &t
		}
	}
	if tags := coerceTags(body["tags"]); tags != nil {
		patch.Tags = &tags
	}
	if b, isBool := body["inStock"].(bool); isBool {
		patch.InStock = &b
	}
	patch.Stock = coerceStock(body["stock"])
	patch.Specifications = coerceSpecifications(body["specifications"])

	return patch, nil
}

// coerceTags keeps the first maxTags entries, stringifying and trimming each.
// Non-array input is dropped.
func coerceTags(raw any) []string {
	arr, ok := raw.([]any)
	if !ok {
		return nil
	}
	if len(arr) > maxTags {
		arr = arr[:maxTags]
	}
	tags := make([]string, 0, len(arr))
	for _, t := range arr {
		tags = append(tags, strings.TrimSpace(stringify(t)))
	}
	return tags
}

func coerceInStock(raw any) bool {
	if b, ok := raw.(bool); ok {
		return b
	}
	return true
}

// coerceStock floors a numeric stock value; anything else is omitted.
func coerceStock(raw any) *int {
	f, ok := raw.(float64)
	if !ok {
		return nil
	}
	n := int(math.Floor(f))
	return &n
}

// coerceSpecifications accepts only a keyed mapping. JSON arrays decode to
// []any and therefore fall through to nil, which drops the field.
func coerceSpecifications(raw any) map[string]string {
	m, ok := raw.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	specs := make(map[string]string, len(m))
	for k, v := range m {
		specs[k] = stringify(v)
	}
	return specs
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return ""
	}
}
