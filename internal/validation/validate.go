// Package validation holds the pure rule engine for submitted product
// records. It performs no I/O; rules run in a fixed order and the first
// failure wins.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"product-catalog/internal/domain"
)

var requiredFields = []string{"sku", "name", "price", "type"}

// Hyphen-only charset is the canonical server-side rule; the form UI's
// underscore allowance is client drift and is not honored here.
var skuPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Validate checks a decoded JSON record against the catalog rules:
// required fields, SKU charset, positive price, known type, then the
// type-specific attribute group. Returns a *domain.ValidationError on
// the first broken rule, nil when the record is acceptable.
func Validate(record map[string]any) error {
	if err := validateRequired(record); err != nil {
		return err
	}
	if err := validateCommon(record); err != nil {
		return err
	}
	return validateSpecific(record)
}

func validateRequired(record map[string]any) error {
	for _, field := range requiredFields {
		if !present(record[field]) {
			return domain.NewValidationError(fmt.Sprintf("Please submit required data: %s is missing", field))
		}
	}
	return nil
}

func validateCommon(record map[string]any) error {
	sku, _ := record["sku"].(string)
	if !skuPattern.MatchString(sku) {
		return domain.NewValidationError("Invalid SKU format")
	}

	price, ok := Numeric(record["price"])
	if !ok || price <= 0 {
		return domain.NewValidationError("Price must be a positive number")
	}

	typ, _ := record["type"].(string)
	if !domain.ProductType(typ).Valid() {
		return domain.NewValidationError("Invalid product type")
	}
	return nil
}

func validateSpecific(record map[string]any) error {
	switch domain.ProductType(record["type"].(string)) {
	case domain.TypeDVD:
		if !positiveNumber(record["size"]) {
			return domain.NewValidationError("Please provide size in MB (positive number)")
		}
	case domain.TypeBook:
		if !positiveNumber(record["weight"]) {
			return domain.NewValidationError("Please provide weight in KG (positive number)")
		}
	case domain.TypeFurniture:
		for _, dim := range []string{"height", "width", "length"} {
			if !positiveNumber(record[dim]) {
				return domain.NewValidationError("Please provide dimensions (HxWxL) (positive numbers)")
			}
		}
	}
	return nil
}

// present treats absent, nil, empty string, zero, and false as missing,
// so a submitted price of 0 reports the missing-field message rather
// than the range one.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != "" && t != "0"
	case bool:
		return t
	case json.Number:
		n, err := t.Float64()
		return err == nil && n != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	return true
}

// Numeric coerces JSON numbers and numeric strings to float64, matching
// the permissiveness of the form clients which submit either.
func Numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		n, err := t.Float64()
		return n, err == nil
	case string:
		n, err := strconv.ParseFloat(t, 64)
		return n, err == nil
	}
	return 0, false
}

func positiveNumber(v any) bool {
	n, ok := Numeric(v)
	return ok && n > 0
}
