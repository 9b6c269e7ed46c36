// Package factory builds domain.Product values from the two sources a
// product can come from: untrusted client input and trusted stored rows.
package factory

import (
	"fmt"

	"product-catalog/internal/domain"
	"product-catalog/internal/validation"
)

// FromInput validates a decoded JSON record and constructs the matching
// variant. Validation failures surface as *domain.ValidationError; an
// unknown type slipping past validation is an internal invariant
// violation and surfaces as ErrInvalidArgument.
func FromInput(record map[string]any) (*domain.Product, error) {
	if err := validation.Validate(record); err != nil {
		return nil, err
	}

	price, _ := validation.Numeric(record["price"])
	sku, _ := record["sku"].(string)
	name, _ := record["name"].(string)
	typ, _ := record["type"].(string)
	p := &domain.Product{
		SKU:   sku,
		Name:  name,
		Price: price,
		Type:  domain.ProductType(typ),
	}

	switch p.Type {
	case domain.TypeDVD:
		size, _ := validation.Numeric(record["size"])
		if err := p.SetSpecificValue(size); err != nil {
			return nil, err
		}
	case domain.TypeBook:
		weight, _ := validation.Numeric(record["weight"])
		if err := p.SetSpecificValue(weight); err != nil {
			return nil, err
		}
	case domain.TypeFurniture:
		var dims domain.Dimensions
		dims.Height, _ = validation.Numeric(record["height"])
		dims.Width, _ = validation.Numeric(record["width"])
		dims.Length, _ = validation.Numeric(record["length"])
		if err := p.SetSpecificValue(dims); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown product type %q", domain.ErrInvalidArgument, p.Type)
	}
	return p, nil
}

// Row is a flat stored product row with the nullable specific columns.
// The store is the only producer; which pointers are non-nil follows
// from the row's type.
type Row struct {
	ID     int64
	SKU    string
	Name   string
	Price  float64
	Type   string
	Size   *float64
	Weight *float64
	Height *float64
	Width  *float64
	Length *float64
}

// FromRow reconstitutes a product from a stored row. The data was valid
// when stored, so range rules are not re-checked; only the type-directed
// field mapping runs. An unknown stored type means corruption and is not
// tolerated silently.
func FromRow(row Row) (*domain.Product, error) {
	p := &domain.Product{
		ID:    row.ID,
		SKU:   row.SKU,
		Name:  row.Name,
		Price: row.Price,
		Type:  domain.ProductType(row.Type),
	}

	switch p.Type {
	case domain.TypeDVD:
		p.Size = row.Size
	case domain.TypeBook:
		p.Weight = row.Weight
	case domain.TypeFurniture:
		if row.Height != nil && row.Width != nil && row.Length != nil {
			p.Dimensions = &domain.Dimensions{Height: *row.Height, Width: *row.Width, Length: *row.Length}
		}
	default:
		return nil, fmt.Errorf("%w: stored row %d has unknown product type %q", domain.ErrInvalidArgument, row.ID, row.Type)
	}
	return p, nil
}
