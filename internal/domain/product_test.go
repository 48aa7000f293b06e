package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductEffectivePrice(t *testing.T) {
	tests := []struct {
		name         string
		price        float64
		specialPrice float64
		want         float64
	}{
		{name: "special below list", price: 100, specialPrice: 80, want: 80},
		{name: "special zero", price: 100, specialPrice: 0, want: 100},
		{name: "special equals list", price: 100, specialPrice: 100, want: 100},
		{name: "special above list", price: 100, specialPrice: 120, want: 100},
		{name: "special negative", price: 100, specialPrice: -5, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, SpecialPrice: tt.specialPrice}
			assert.Equal(t, tt.want, p.EffectivePrice())
		})
	}
}

func TestProductSummaryNilImages(t *testing.T) {
	p := Product{ID: "p1", Name: "Lamp"}
	s := p.Summary()
	assert.NotNil(t, s.Images)
	assert.Empty(t, s.Images)
}

func TestBuildCategoryTree(t *testing.T) {
	root := "c1"
	cats := []Category{
		{ID: "c1", Name: "Electronics"},
		{ID: "c2", Name: "Phones", ParentID: &root},
		{ID: "c3", Name: "Laptops", ParentID: &root},
		{ID: "c4", Name: "Home"},
	}

	tree := BuildCategoryTree(cats)

	assert.Len(t, tree, 2)
	assert.Equal(t, "Electronics", tree[0].Name)
	assert.Len(t, tree[0].Children, 2)
	assert.Equal(t, "Phones", tree[0].Children[0].Name)
	assert.Empty(t, tree[1].Children)
}

func TestValidSort(t *testing.T) {
	assert.True(t, ValidSort(SortPriceLowHigh))
	assert.True(t, ValidSort(SortFeatured))
	assert.False(t, ValidSort("cheapest"))
	assert.False(t, ValidSort(""))
}
