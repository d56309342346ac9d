package models

import "strings"

// SizeOption is one entry of the fixed size catalogue a product may offer.
type SizeOption struct {
	Label string `json:"label"`
	Desc  string `json:"desc"`
}

// SizeOptions is the full size catalogue. A product advertises a subset of
// these labels in its comma-separated Ukuran field.
var SizeOptions = []SizeOption{
	{Label: "Spray", Desc: "± 10 cm"},
	{Label: "Standard bloom", Desc: "± 20 cm"},
	{Label: "Full bloom", Desc: "± 30 cm"},
	{Label: "Bud", Desc: "± 8 cm"},
	{Label: "Mini bouquet", Desc: "± 15 cm"},
	{Label: "Grand bouquet", Desc: "± 50 cm"},
}

// KnownSize reports whether label is part of the fixed size catalogue.
func KnownSize(label string) bool {
	for _, opt := range SizeOptions {
		if opt.Label == label {
			return true
		}
	}
	return false
}

// Product represents a catalogue product as served by the backend.
type Product struct {
	IDProduk  uint    `json:"id_produk"`
	Name      string  `json:"name" validate:"required,min=3,max=100"`
	Harga     float64 `json:"harga" validate:"required,gt=0"`
	Deskripsi string  `json:"deskripsi" validate:"omitempty,max=500"`
	Stok      int     `json:"stok" validate:"gte=0"`
	Gambar    string  `json:"gambar"`
	Ukuran    string  `json:"ukuran"` // comma-separated subset of SizeOptions labels
	Warna     string  `json:"warna"`
	Kategori  string  `json:"kategori"`
}

// Sizes returns the product's available size labels, trimmed.
func (p Product) Sizes() []string {
	if p.Ukuran == "" {
		return nil
	}
	parts := strings.Split(p.Ukuran, ",")
	sizes := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			sizes = append(sizes, s)
		}
	}
	return sizes
}

// SizeAvailable reports whether label is one of the product's available sizes.
func (p Product) SizeAvailable(label string) bool {
	for _, s := range p.Sizes() {
		if s == label {
			return true
		}
	}
	return false
}

// MaxQuantity is the upper bound for a single order line: at most 10 and never
// more than the available stock.
func (p Product) MaxQuantity() int {
	if p.Stok < 10 {
		return p.Stok
	}
	return 10
}
