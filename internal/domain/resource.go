package domain

import "github.com/google/uuid"

// Resource is the minimal capability the exchange core needs from a
// resource handle: a nonnegative quantity.
type Resource interface {
	Quantity() float64
}

// Product is a generic, composition-free resource. Handles are shared by
// pointer, so a quantity change through one holder is visible to all.
type Product struct {
	ID      string
	Quality string
	Qty     float64
}

// NewProduct creates a product with a fresh id.
func NewProduct(quality string, qty float64) *Product {
	return &Product{
		ID:      uuid.New().String(),
		Quality: quality,
		Qty:     qty,
	}
}

// Quantity returns the product quantity. A nil product reports 0, which
// lets buffers hold default (empty) entries.
func (p *Product) Quantity() float64 {
	if p == nil {
		return 0
	}
	return p.Qty
}

// SetQuantity changes the quantity in place.
func (p *Product) SetQuantity(qty float64) {
	p.Qty = qty
}
