package models

// CartItem is one line of the authenticated user's cart, as returned by the
// backend's /api/cart endpoint. The owning product is embedded.
type CartItem struct {
	ID       uint    `json:"id"`
	Quantity int     `json:"quantity"`
	Ukuran   string  `json:"ukuran"`
	Produk   Product `json:"produk"`
}

// Subtotal is the line price at the product's current price.
func (c CartItem) Subtotal() float64 {
	return c.Produk.Harga * float64(c.Quantity)
}

// AddCartRequest is the payload for adding a product to the cart.
type AddCartRequest struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=10"`
	Ukuran    string `json:"ukuran" validate:"required"`
}
