package domain

import "testing"

func TestNewProduct(t *testing.T) {
	p := NewProduct("natural-u", 150051.0)
	if p.ID == "" {
		t.Error("ID should be assigned")
	}
	if p.Quality != "natural-u" {
		t.Errorf("Quality = %q, want %q", p.Quality, "natural-u")
	}
	if p.Quantity() != 150051.0 {
		t.Errorf("Quantity() = %v, want 150051", p.Quantity())
	}
}

func TestNewProduct_DistinctIDs(t *testing.T) {
	a := NewProduct("q", 1)
	b := NewProduct("q", 1)
	if a.ID == b.ID {
		t.Errorf("products share id %q", a.ID)
	}
}

func TestProduct_NilQuantity(t *testing.T) {
	var p *Product
	if p.Quantity() != 0 {
		t.Errorf("nil Quantity() = %v, want 0", p.Quantity())
	}
}

func TestProduct_SetQuantityVisibleThroughAliases(t *testing.T) {
	p := NewProduct("q", 10)
	alias := p
	alias.SetQuantity(4)
	if p.Quantity() != 4 {
		t.Errorf("Quantity() = %v after alias update, want 4", p.Quantity())
	}
}

func TestProduct_ImplementsResource(t *testing.T) {
	var _ Resource = (*Product)(nil)
}
