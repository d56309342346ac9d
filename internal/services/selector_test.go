package services_test

import (
	"testing"

	"florist/internal/models"
	"florist/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestSizeSelector_SelectSize(t *testing.T) {
	product := models.Product{
		IDProduk: 1,
		Name:     "Tulip Mix",
		Stok:     3,
		Ukuran:   "Spray,Full bloom",
	}
	selector := services.NewSizeSelector(product)

	// Nothing selected yet: submitting is blocked.
	assert.Error(t, selector.Validate())

	// Both listed sizes are selectable, everything else is not.
	assert.True(t, selector.SizeAvailable("Spray"))
	assert.True(t, selector.SizeAvailable("Full bloom"))
	assert.False(t, selector.SizeAvailable("Bud"))
	assert.False(t, selector.SizeAvailable("Jumbo")) // not in the catalogue at all

	// Selecting an unavailable size fails and leaves the selection empty.
	assert.Error(t, selector.SelectSize("Bud"))
	assert.Empty(t, selector.Size())

	// A size outside the fixed catalogue is rejected even if a product
	// listed it by mistake.
	assert.Error(t, selector.SelectSize("Jumbo"))

	assert.NoError(t, selector.SelectSize("Full bloom"))
	assert.Equal(t, "Full bloom", selector.Size())
	assert.NoError(t, selector.Validate())
}

func TestSizeSelector_SetQuantity(t *testing.T) {
	product := models.Product{IDProduk: 1, Name: "Tulip Mix", Stok: 3, Ukuran: "Spray"}
	selector := services.NewSizeSelector(product)

	// Starts at 1.
	assert.Equal(t, 1, selector.Quantity())

	// In range: applied.
	selector.SetQuantity(3)
	assert.Equal(t, 3, selector.Quantity())

	// Above min(10, stock)=3: silently ignored, last valid value kept.
	selector.SetQuantity(5)
	assert.Equal(t, 3, selector.Quantity())

	// Below 1: also ignored.
	selector.SetQuantity(0)
	assert.Equal(t, 3, selector.Quantity())
	selector.SetQuantity(-2)
	assert.Equal(t, 3, selector.Quantity())
}

func TestSizeSelector_QuantityCapAtTen(t *testing.T) {
	// Plenty of stock: the cap is still 10.
	product := models.Product{IDProduk: 2, Name: "Rose Field", Stok: 40, Ukuran: "Spray"}
	selector := services.NewSizeSelector(product)

	selector.SetQuantity(10)
	assert.Equal(t, 10, selector.Quantity())
	selector.SetQuantity(11)
	assert.Equal(t, 10, selector.Quantity())
}
