package domain

import (
	"time"
)

// Product status constants. Only active products are ever shown to
// shoppers.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Stock status constants.
const (
	StockStatusInStock    = "in_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// Product represents a catalog item.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	ItemCode       string    `json:"item_code"`
	SearchKeywords string    `json:"search_keywords,omitempty"`
	Description    string    `json:"description,omitempty"`
	BrandID        *string   `json:"brand_id,omitempty"`
	CategoryID     *string   `json:"category_id,omitempty"`
	SubCategoryID  *string   `json:"sub_category_id,omitempty"`
	Status         string    `json:"status"`
	Price          float64   `json:"price"`
	SpecialPrice   float64   `json:"special_price"`
	Quantity       int       `json:"quantity"`
	StockStatus    string    `json:"stock_status"`
	Images         []string  `json:"images"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EffectivePrice returns the price used everywhere a product is
// filtered, sorted, or displayed by price: the special price when it is
// set and strictly below the list price, the list price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.SpecialPrice > 0 && p.SpecialPrice < p.Price {
		return p.SpecialPrice
	}
	return p.Price
}

// HasValidSpecialPrice reports whether the special price qualifies as
// the effective price.
func (p *Product) HasValidSpecialPrice() bool {
	return p.SpecialPrice > 0 && p.SpecialPrice < p.Price
}

// ProductSummary is the storefront list/search projection of a product.
// Brand and category display names are resolved by the caller.
type ProductSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Images       []string `json:"images"`
	Price        float64  `json:"price"`
	SpecialPrice float64  `json:"special_price"`
	Quantity     int      `json:"quantity"`
	StockStatus  string   `json:"stock_status"`
	BrandID      *string  `json:"brand_id,omitempty"`
}

// Summary projects the product into its storefront summary form.
func (p *Product) Summary() ProductSummary {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductSummary{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Images:       images,
		Price:        p.Price,
		SpecialPrice: p.SpecialPrice,
		Quantity:     p.Quantity,
		StockStatus:  p.StockStatus,
		BrandID:      p.BrandID,
	}
}
