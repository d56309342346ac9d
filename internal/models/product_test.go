package models_test

import (
	"testing"

	"florist/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestProduct_Sizes(t *testing.T) {
	p := models.Product{Ukuran: "Spray, Full bloom ,Bud"}
	assert.Equal(t, []string{"Spray", "Full bloom", "Bud"}, p.Sizes())

	assert.Nil(t, models.Product{}.Sizes())
	assert.Empty(t, models.Product{Ukuran: " , "}.Sizes())
}

func TestProduct_SizeAvailable(t *testing.T) {
	p := models.Product{Ukuran: "Spray,Full bloom"}
	assert.True(t, p.SizeAvailable("Spray"))
	assert.True(t, p.SizeAvailable("Full bloom"))
	assert.False(t, p.SizeAvailable("Bud"))
	assert.False(t, p.SizeAvailable("spray")) // labels are exact
}

func TestProduct_MaxQuantity(t *testing.T) {
	assert.Equal(t, 3, models.Product{Stok: 3}.MaxQuantity())
	assert.Equal(t, 10, models.Product{Stok: 10}.MaxQuantity())
	assert.Equal(t, 10, models.Product{Stok: 250}.MaxQuantity())
	assert.Equal(t, 0, models.Product{Stok: 0}.MaxQuantity())
}

func TestKnownSize(t *testing.T) {
	for _, opt := range models.SizeOptions {
		assert.True(t, models.KnownSize(opt.Label))
	}
	assert.False(t, models.KnownSize("Jumbo"))
	assert.False(t, models.KnownSize(""))
}
