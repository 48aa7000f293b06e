package domain

import "time"

// Brand status constants.
const (
	BrandStatusActive   = "active"
	BrandStatusInactive = "inactive"
)

// Brand is a product manufacturer or label.
type Brand struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	LogoURL   string    `json:"logo_url,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
