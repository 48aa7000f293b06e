package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/voltmart/catalog-service/internal/domain"
	"github.com/voltmart/catalog-service/pkg/database"
	apperrors "github.com/voltmart/catalog-service/pkg/errors"
)

const bannerColumns = `id, category_id, title, image_url, link_url, kind, status, sort_order, created_at, updated_at`

// BannerRepository implements banner lookups using PostgreSQL.
type BannerRepository struct {
	pool database.DBTX
}

// NewBannerRepository creates a new PostgreSQL-backed banner repository.
func NewBannerRepository(pool database.DBTX) *BannerRepository {
	return &BannerRepository{pool: pool}
}

// ListForCategory returns the active banners for a category page, or
// the home page when categoryID is nil, ordered by slot position.
func (r *BannerRepository) ListForCategory(ctx context.Context, categoryID *string) ([]domain.Banner, error) {
	var (
		query string
		args  []any
	)
	if categoryID == nil {
		query = fmt.Sprintf(`
			SELECT %s FROM banners
			WHERE status = $1 AND category_id IS NULL
			ORDER BY kind, sort_order`, bannerColumns)
		args = []any{domain.BannerStatusActive}
	} else {
		query = fmt.Sprintf(`
			SELECT %s FROM banners
			WHERE status = $1 AND category_id = $2
			ORDER BY kind, sort_order`, bannerColumns)
		args = []any{domain.BannerStatusActive, *categoryID}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()

	var banners []domain.Banner
	for rows.Next() {
		var b domain.Banner
		if err := rows.Scan(
			&b.ID,
			&b.CategoryID,
			&b.Title,
			&b.ImageURL,
			&b.LinkURL,
			&b.Kind,
			&b.Status,
			&b.SortOrder,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan banner row: %w", err)
		}
		banners = append(banners, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate banner rows: %w", err)
	}

	if banners == nil {
		banners = []domain.Banner{}
	}
	return banners, nil
}

// Create persists a new banner.
func (r *BannerRepository) Create(ctx context.Context, b *domain.Banner) error {
	query := `
		INSERT INTO banners (id, category_id, title, image_url, link_url, kind, status, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.CategoryID,
		b.Title,
		b.ImageURL,
		b.LinkURL,
		b.Kind,
		b.Status,
		b.SortOrder,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert banner: %w", err)
	}

	return nil
}

// Update replaces a banner's mutable fields.
func (r *BannerRepository) Update(ctx context.Context, b *domain.Banner) error {
	b.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE banners
		SET category_id = $1, title = $2, image_url = $3, link_url = $4,
		    kind = $5, status = $6, sort_order = $7, updated_at = $8
		WHERE id = $9`

	ct, err := r.pool.Exec(ctx, query,
		b.CategoryID,
		b.Title,
		b.ImageURL,
		b.LinkURL,
		b.Kind,
		b.Status,
		b.SortOrder,
		b.UpdatedAt,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("update banner: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("banner", b.ID)
	}

	return nil
}

// Delete removes a banner by its ID.
func (r *BannerRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("banner", id)
	}

	return nil
}
