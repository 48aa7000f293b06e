package domain

// Sort orders accepted on the storefront listing endpoints. Unknown
// values fall back to SortFeatured.
const (
	SortFeatured     = "featured"
	SortPriceLowHigh = "price-low-high"
	SortPriceHighLow = "price-high-low"
	SortNameAZ       = "name-a-z"
	SortNameZA       = "name-z-a"
)

// ValidSort reports whether s is a recognized sort order.
func ValidSort(s string) bool {
	switch s {
	case SortFeatured, SortPriceLowHigh, SortPriceHighLow, SortNameAZ, SortNameZA:
		return true
	}
	return false
}

// BrandCount is the number of matching products for a brand, computed
// with every filter applied except the brand selection itself.
type BrandCount struct {
	BrandID string `json:"brandId"`
	Count   int    `json:"count"`
}

// FilterCount is the number of matching products carrying a filter
// value, computed with every filter applied except the attribute
// selections themselves.
type FilterCount struct {
	FilterID string `json:"filterId"`
	Count    int    `json:"count"`
}
