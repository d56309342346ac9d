package services

import (
	"fmt"

	"florist/internal/models"
)

// SizeSelector models the size/quantity picker for one product. It starts
// with no size selected and quantity 1, and only ever holds valid states:
// a size outside the product's available set cannot be selected, and a
// quantity outside [1, min(10, stock)] is silently ignored, keeping the last
// valid value.
type SizeSelector struct {
	product  models.Product
	size     string
	quantity int
}

// NewSizeSelector creates a selector for product.
func NewSizeSelector(product models.Product) *SizeSelector {
	return &SizeSelector{product: product, quantity: 1}
}

// SizeAvailable reports whether the given label is selectable: it must be
// part of the fixed size catalogue and a member of the product's size list.
func (s *SizeSelector) SizeAvailable(label string) bool {
	return models.KnownSize(label) && s.product.SizeAvailable(label)
}

// SelectSize picks a size. Unavailable sizes are rejected with an error, the
// equivalent of the disabled button in the original picker.
func (s *SizeSelector) SelectSize(label string) error {
	if !models.KnownSize(label) {
		return fmt.Errorf("size %q is not a known size", label)
	}
	if !s.product.SizeAvailable(label) {
		return fmt.Errorf("size %q is not available for this product", label)
	}
	s.size = label
	return nil
}

// SetQuantity applies a quantity change if it lies within [1, min(10, stock)].
// Out-of-range values are dropped without error.
func (s *SizeSelector) SetQuantity(n int) {
	if n >= 1 && n <= s.product.MaxQuantity() {
		s.quantity = n
	}
}

// Size returns the selected size label, empty if none selected yet.
func (s *SizeSelector) Size() string {
	return s.size
}

// Quantity returns the current quantity.
func (s *SizeSelector) Quantity() int {
	return s.quantity
}

// Validate checks the selector is in a submittable state.
func (s *SizeSelector) Validate() error {
	if s.size == "" {
		return fmt.Errorf("select a size first")
	}
	return nil
}
