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

// categoryColumns is the standard SELECT column list for categories.
const categoryColumns = `id, name, slug, parent_id, image_url, status, sort_order, created_at, updated_at`

// CategoryRepository implements category lookups using PostgreSQL.
type CategoryRepository struct {
	pool database.DBTX
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool database.DBTX) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// ListActive returns all active categories ordered for display.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]domain.Category, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM categories
		WHERE status = $1
		ORDER BY sort_order, name`, categoryColumns)

	rows, err := r.pool.Query(ctx, query, domain.CategoryStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := scanCategoryRow(rows, &c); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// GetBySlug retrieves a category by its URL-friendly slug.
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE slug = $1`, categoryColumns)

	var c domain.Category
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&c.ParentID,
		&c.ImageURL,
		&c.Status,
		&c.SortOrder,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

// ExpandDescendants returns the given category id plus every descendant
// id, walking the parent_id links to any depth.
func (r *CategoryRepository) ExpandDescendants(ctx context.Context, categoryID string) ([]string, error) {
	query := `
		WITH RECURSIVE descendants AS (
			SELECT id FROM categories WHERE id = $1
			UNION ALL
			SELECT c.id FROM categories c
			JOIN descendants d ON c.parent_id = d.id
		)
		SELECT id FROM descendants ORDER BY id`

	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("expand category descendants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan descendant id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate descendant ids: %w", err)
	}

	// An unknown id expands to nothing, leaving the search unscoped. A
	// stale category link widens the result rather than emptying it.
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// scanCategoryRow scans a single row from a rows iterator into a Category.
func scanCategoryRow(rows pgx.Rows, c *domain.Category) error {
	return rows.Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&c.ParentID,
		&c.ImageURL,
		&c.Status,
		&c.SortOrder,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}
