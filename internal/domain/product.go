package domain

import "fmt"

// ProductType tags the three catalog variants. The tag decides which
// specific-attribute group is meaningful; exactly one group is populated
// per product.
type ProductType string

const (
	TypeDVD       ProductType = "DVD"
	TypeBook      ProductType = "Book"
	TypeFurniture ProductType = "Furniture"
)

// Valid reports whether t is one of the three known kinds. Comparison is
// case-sensitive: "dvd" is not a product type.
func (t ProductType) Valid() bool {
	switch t {
	case TypeDVD, TypeBook, TypeFurniture:
		return true
	}
	return false
}

// Dimensions holds the Furniture attribute group, all in centimeters.
type Dimensions struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
}

// Product is a tagged union over the three variants: common fields plus
// exactly one populated specific group selected by Type. ID is zero until
// the store assigns it on insert.
type Product struct {
	ID    int64
	SKU   string
	Name  string
	Price float64
	Type  ProductType

	Size       *float64    // DVD, MB
	Weight     *float64    // Book, KG
	Dimensions *Dimensions // Furniture, CM
}

// SpecificAttribute renders the variant's attribute group for humans.
func (p *Product) SpecificAttribute() string {
	switch p.Type {
	case TypeDVD:
		if p.Size != nil {
			return fmt.Sprintf("Size: %v MB", *p.Size)
		}
	case TypeBook:
		if p.Weight != nil {
			return fmt.Sprintf("Weight: %v KG", *p.Weight)
		}
	case TypeFurniture:
		if d := p.Dimensions; d != nil {
			return fmt.Sprintf("Dimensions: %vx%vx%v", d.Height, d.Width, d.Length)
		}
	}
	return ""
}

// SpecificValue returns the raw attribute value: a float64 for DVD and
// Book, a Dimensions struct for Furniture. Callers dispatch on Type.
func (p *Product) SpecificValue() any {
	switch p.Type {
	case TypeDVD:
		if p.Size != nil {
			return *p.Size
		}
	case TypeBook:
		if p.Weight != nil {
			return *p.Weight
		}
	case TypeFurniture:
		if p.Dimensions != nil {
			return *p.Dimensions
		}
	}
	return nil
}

// SetSpecificValue assigns the attribute group matching the product's
// type. The value shape must match the tag: float64 for DVD/Book,
// Dimensions for Furniture.
func (p *Product) SetSpecificValue(v any) error {
	switch p.Type {
	case TypeDVD:
		size, ok := v.(float64)
		if !ok {
			return fmt.Errorf("%w: DVD size must be a number, got %T", ErrInvalidArgument, v)
		}
		p.Size = &size
	case TypeBook:
		weight, ok := v.(float64)
		if !ok {
			return fmt.Errorf("%w: Book weight must be a number, got %T", ErrInvalidArgument, v)
		}
		p.Weight = &weight
	case TypeFurniture:
		dims, ok := v.(Dimensions)
		if !ok {
			return fmt.Errorf("%w: Furniture dimensions must be height/width/length, got %T", ErrInvalidArgument, v)
		}
		p.Dimensions = &dims
	default:
		return fmt.Errorf("%w: unknown product type %q", ErrInvalidArgument, p.Type)
	}
	return nil
}
