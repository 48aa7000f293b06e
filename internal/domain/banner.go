package domain

import "time"

// Banner kind constants. Top banners fill the category hero slot; sub
// banners fill the secondary slots below it.
const (
	BannerKindTop = "top"
	BannerKindSub = "sub"
)

// Banner status constants.
const (
	BannerStatusActive   = "active"
	BannerStatusInactive = "inactive"
)

// Banner is a promotional image slot, optionally scoped to a category
// landing page. A nil CategoryID places the banner on the home page.
type Banner struct {
	ID         string    `json:"id"`
	CategoryID *string   `json:"category_id,omitempty"`
	Title      string    `json:"title"`
	ImageURL   string    `json:"image_url"`
	LinkURL    string    `json:"link_url,omitempty"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BannerSet groups a page's banners by slot.
type BannerSet struct {
	Top []Banner `json:"top"`
	Sub []Banner `json:"sub"`
}
