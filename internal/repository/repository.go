package repository

import (
	"context"

	"github.com/voltmart/catalog-service/internal/domain"
	"github.com/voltmart/catalog-service/internal/search"
)

// ProductRepository provides read access to the product catalog. It
// carries the full search store contract plus single-product lookups.
type ProductRepository interface {
	search.Store

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// GetBySlug retrieves a product by its URL-friendly slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

// CategoryRepository provides read access to the category tree.
type CategoryRepository interface {
	// ListActive returns every active category.
	ListActive(ctx context.Context) ([]domain.Category, error)

	// GetBySlug retrieves a category by its slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// ExpandDescendants returns the given category id plus every
	// descendant id at every depth.
	ExpandDescendants(ctx context.Context, categoryID string) ([]string, error)
}

// BrandRepository provides read access to brands.
type BrandRepository interface {
	// ListActive returns every active brand.
	ListActive(ctx context.Context) ([]domain.Brand, error)

	// GetBySlug retrieves a brand by its slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Brand, error)
}

// FilterRepository provides read access to attribute filter groups and
// their values.
type FilterRepository interface {
	// ListGroups returns every active filter group with its active
	// values, ordered for display.
	ListGroups(ctx context.Context) ([]domain.FilterGroupWithValues, error)
}

// BannerRepository owns promotional banner persistence.
type BannerRepository interface {
	// ListForCategory returns the active banners for a category page,
	// or the home page when categoryID is nil.
	ListForCategory(ctx context.Context, categoryID *string) ([]domain.Banner, error)

	// Create persists a new banner.
	Create(ctx context.Context, b *domain.Banner) error

	// Update replaces a banner's mutable fields.
	Update(ctx context.Context, b *domain.Banner) error

	// Delete removes a banner by its ID.
	Delete(ctx context.Context, id string) error
}

// FeedbackFilter narrows feedback listings for the back office.
type FeedbackFilter struct {
	Status *string
	Page   int
	Limit  int
}

// FeedbackRepository owns customer feedback persistence.
type FeedbackRepository interface {
	// Create stores a new feedback submission.
	Create(ctx context.Context, f *domain.Feedback) error

	// ExistsByEmail reports whether the email already submitted feedback.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns feedback entries matching the filter with the total
	// count.
	List(ctx context.Context, filter FeedbackFilter) ([]domain.Feedback, int, error)

	// UpdateStatus advances a feedback entry's status.
	UpdateStatus(ctx context.Context, id, status string) error
}
