package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/voltmart/catalog-service/internal/domain"
	"github.com/voltmart/catalog-service/internal/repository"
	apperrors "github.com/voltmart/catalog-service/pkg/errors"
	"github.com/voltmart/catalog-service/pkg/slug"
)

// CatalogService serves the storefront browse surfaces: the category
// tree, brand list, filter sidebar, banners, and product detail.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	filters    repository.FilterRepository
	banners    repository.BannerRepository
	logger     *slog.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
	filters repository.FilterRepository,
	banners repository.BannerRepository,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		brands:     brands,
		filters:    filters,
		banners:    banners,
		logger:     logger,
	}
}

// CategoryTree returns the active categories as a nested tree for the
// storefront navigation.
func (s *CatalogService) CategoryTree(ctx context.Context) ([]domain.CategoryNode, error) {
	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return domain.BuildCategoryTree(categories), nil
}

// GetCategoryBySlug returns a single category. The incoming value is
// normalized so "Large Appliance" and "large-appliance" resolve alike.
func (s *CatalogService) GetCategoryBySlug(ctx context.Context, raw string) (*domain.Category, error) {
	return s.categories.GetBySlug(ctx, slug.Generate(raw))
}

// Brands returns the active brands.
func (s *CatalogService) Brands(ctx context.Context) ([]domain.Brand, error) {
	return s.brands.ListActive(ctx)
}

// GetBrandBySlug returns a single brand.
func (s *CatalogService) GetBrandBySlug(ctx context.Context, raw string) (*domain.Brand, error) {
	return s.brands.GetBySlug(ctx, slug.Generate(raw))
}

// FilterGroups returns the filter sidebar contents: active groups with
// their active values.
func (s *CatalogService) FilterGroups(ctx context.Context) ([]domain.FilterGroupWithValues, error) {
	return s.filters.ListGroups(ctx)
}

// GetProductBySlug returns a single product for the detail page. The
// value may also be a product id; ids are tried when no slug matches.
func (s *CatalogService) GetProductBySlug(ctx context.Context, raw string) (*domain.Product, error) {
	p, err := s.products.GetBySlug(ctx, slug.Generate(raw))
	if errors.Is(err, apperrors.ErrNotFound) {
		return s.products.GetByID(ctx, raw)
	}
	return p, err
}

// Banners returns the active banners for a category page (or the home
// page when categoryID is nil), grouped by slot.
func (s *CatalogService) Banners(ctx context.Context, categoryID *string) (*domain.BannerSet, error) {
	banners, err := s.banners.ListForCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}

	set := &domain.BannerSet{Top: []domain.Banner{}, Sub: []domain.Banner{}}
	for _, b := range banners {
		switch b.Kind {
		case domain.BannerKindTop:
			set.Top = append(set.Top, b)
		default:
			set.Sub = append(set.Sub, b)
		}
	}
	return set, nil
}

// BannerInput holds the parameters for creating or updating a banner.
type BannerInput struct {
	CategoryID *string `json:"category_id"`
	Title      string  `json:"title"`
	ImageURL   string  `json:"image_url" validate:"required,url"`
	LinkURL    string  `json:"link_url" validate:"omitempty,url"`
	Kind       string  `json:"kind" validate:"required,oneof=top sub"`
	Status     string  `json:"status" validate:"omitempty,oneof=active inactive"`
	SortOrder  int     `json:"sort_order" validate:"gte=0"`
}

// CreateBanner stores a new promotional banner.
func (s *CatalogService) CreateBanner(ctx context.Context, input *BannerInput) (*domain.Banner, error) {
	now := time.Now().UTC()
	banner := &domain.Banner{
		ID:         uuid.New().String(),
		CategoryID: input.CategoryID,
		Title:      input.Title,
		ImageURL:   input.ImageURL,
		LinkURL:    input.LinkURL,
		Kind:       input.Kind,
		Status:     input.Status,
		SortOrder:  input.SortOrder,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if banner.Status == "" {
		banner.Status = domain.BannerStatusActive
	}

	if err := s.banners.Create(ctx, banner); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "banner created",
		slog.String("banner_id", banner.ID),
		slog.String("kind", banner.Kind),
	)
	return banner, nil
}

// UpdateBanner replaces a banner's fields.
func (s *CatalogService) UpdateBanner(ctx context.Context, id string, input *BannerInput) (*domain.Banner, error) {
	banner := &domain.Banner{
		ID:         id,
		CategoryID: input.CategoryID,
		Title:      input.Title,
		ImageURL:   input.ImageURL,
		LinkURL:    input.LinkURL,
		Kind:       input.Kind,
		Status:     input.Status,
		SortOrder:  input.SortOrder,
	}
	if banner.Status == "" {
		banner.Status = domain.BannerStatusActive
	}

	if err := s.banners.Update(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// DeleteBanner removes a banner.
func (s *CatalogService) DeleteBanner(ctx context.Context, id string) error {
	if err := s.banners.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "banner deleted", slog.String("banner_id", id))
	return nil
}
