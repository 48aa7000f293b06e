package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/voltmart/catalog-service/internal/domain"
	"github.com/voltmart/catalog-service/pkg/database"
	apperrors "github.com/voltmart/catalog-service/pkg/errors"
)

const brandColumns = `id, name, slug, logo_url, status, created_at, updated_at`

// BrandRepository implements brand lookups using PostgreSQL.
type BrandRepository struct {
	pool database.DBTX
}

// NewBrandRepository creates a new PostgreSQL-backed brand repository.
func NewBrandRepository(pool database.DBTX) *BrandRepository {
	return &BrandRepository{pool: pool}
}

// ListActive returns all active brands ordered by name.
func (r *BrandRepository) ListActive(ctx context.Context) ([]domain.Brand, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM brands
		WHERE status = $1
		ORDER BY name`, brandColumns)

	rows, err := r.pool.Query(ctx, query, domain.BrandStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var brands []domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.LogoURL, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan brand row: %w", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brand rows: %w", err)
	}

	if brands == nil {
		brands = []domain.Brand{}
	}
	return brands, nil
}

// GetBySlug retrieves a brand by its URL-friendly slug.
func (r *BrandRepository) GetBySlug(ctx context.Context, slug string) (*domain.Brand, error) {
	query := fmt.Sprintf(`SELECT %s FROM brands WHERE slug = $1`, brandColumns)

	var b domain.Brand
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&b.ID,
		&b.Name,
		&b.Slug,
		&b.LogoURL,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan brand: %w", err)
	}
	return &b, nil
}
