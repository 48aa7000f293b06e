package domain

import "time"

// Filter status constants, shared by groups and values.
const (
	FilterStatusActive   = "active"
	FilterStatusInactive = "inactive"
)

// FilterGroup is a named attribute axis (for example "Color" or
// "Material") whose values shoppers can filter by.
type FilterGroup struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	SortOrder int       `json:"sort_order"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter is a single selectable value within a filter group.
type Filter struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	SortOrder int       `json:"sort_order"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductFilter associates a product with a filter value. A product may
// carry any number of filter values across any number of groups.
type ProductFilter struct {
	ProductID string `json:"product_id"`
	FilterID  string `json:"filter_id"`
}

// FilterGroupWithValues bundles a group with its values for the
// storefront filter sidebar.
type FilterGroupWithValues struct {
	FilterGroup
	Filters []Filter `json:"filters"`
}
