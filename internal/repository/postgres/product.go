package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/voltmart/catalog-service/internal/domain"
	"github.com/voltmart/catalog-service/internal/search"
	"github.com/voltmart/catalog-service/pkg/database"
	apperrors "github.com/voltmart/catalog-service/pkg/errors"
	"github.com/voltmart/catalog-service/pkg/pagination"
)

const productColumns = `id, name, slug, item_code, search_keywords, description, brand_id, category_id, sub_category_id,
	   status, price, special_price, quantity, stock_status, images, created_at, updated_at`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)
	return r.scanProduct(ctx, query, id)
}

// GetBySlug retrieves a product by its slug.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE slug = $1`, productColumns)
	return r.scanProduct(ctx, query, slug)
}

// FindPage returns the requested page of products matching the compiled
// spec, in its deterministic order, plus the total match count.
func (r *ProductRepository) FindPage(ctx context.Context, spec search.FilterSpec, opts ...search.CompileOption) ([]domain.Product, int, error) {
	q := search.Compile(spec, opts...)

	// count(*) OVER() folds the total into the page query.
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM products
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		productColumns, q.Where(), q.OrderBy, len(q.Args)+1, len(q.Args)+2,
	)
	args := append(q.Args, spec.Limit, pagination.Offset(spec.Page, spec.Limit))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("find products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		var (
			p          domain.Product
			imagesJSON []byte
		)
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Slug,
			&p.ItemCode,
			&p.SearchKeywords,
			&p.Description,
			&p.BrandID,
			&p.CategoryID,
			&p.SubCategoryID,
			&p.Status,
			&p.Price,
			&p.SpecialPrice,
			&p.Quantity,
			&p.StockStatus,
			&imagesJSON,
			&p.CreatedAt,
			&p.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}

		if imagesJSON != nil {
			if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
				return nil, 0, fmt.Errorf("unmarshal images: %w", err)
			}
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, totalCount, nil
}

// ProductIDs returns the ids of every product matching the compiled
// spec, ordered by id.
func (r *ProductRepository) ProductIDs(ctx context.Context, spec search.FilterSpec, opts ...search.CompileOption) ([]string, error) {
	q := search.Compile(spec, opts...)
	query := fmt.Sprintf(`SELECT id FROM products WHERE %s ORDER BY id`, q.Where())

	rows, err := r.pool.Query(ctx, query, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("list product ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product ids: %w", err)
	}
	return ids, nil
}

// ProductIDsMatching returns the subset of productIDs carrying at least
// one of the given filter ids in the product-filter association.
func (r *ProductRepository) ProductIDsMatching(ctx context.Context, productIDs, filterIDs []string) ([]string, error) {
	query := `
		SELECT DISTINCT product_id
		FROM product_filters
		WHERE product_id = ANY($1) AND filter_id = ANY($2)
		ORDER BY product_id`

	rows, err := r.pool.Query(ctx, query, productIDs, filterIDs)
	if err != nil {
		return nil, fmt.Errorf("match product filters: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan matched product id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matched product ids: %w", err)
	}
	return ids, nil
}

// CountByBrand counts products matching the compiled spec grouped by
// brand. Products without a brand are skipped.
func (r *ProductRepository) CountByBrand(ctx context.Context, spec search.FilterSpec, opts ...search.CompileOption) ([]domain.BrandCount, error) {
	q := search.Compile(spec, opts...)
	query := fmt.Sprintf(`
		SELECT brand_id, count(*)
		FROM products
		WHERE %s AND brand_id IS NOT NULL
		GROUP BY brand_id
		ORDER BY brand_id`, q.Where())

	rows, err := r.pool.Query(ctx, query, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("count by brand: %w", err)
	}
	defer rows.Close()

	counts := []domain.BrandCount{}
	for rows.Next() {
		var c domain.BrandCount
		if err := rows.Scan(&c.BrandID, &c.Count); err != nil {
			return nil, fmt.Errorf("scan brand count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brand counts: %w", err)
	}
	return counts, nil
}

// CountByFilter counts products matching the compiled spec grouped by
// associated filter id. A product with several filters counts once per
// filter.
func (r *ProductRepository) CountByFilter(ctx context.Context, spec search.FilterSpec, opts ...search.CompileOption) ([]domain.FilterCount, error) {
	q := search.Compile(spec, opts...)
	query := fmt.Sprintf(`
		SELECT pf.filter_id, count(DISTINCT pf.product_id)
		FROM products p
		JOIN product_filters pf ON pf.product_id = p.id
		WHERE %s
		GROUP BY pf.filter_id
		ORDER BY pf.filter_id`, q.Where())

	rows, err := r.pool.Query(ctx, query, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("count by filter: %w", err)
	}
	defer rows.Close()

	counts := []domain.FilterCount{}
	for rows.Next() {
		var c domain.FilterCount
		if err := rows.Scan(&c.FilterID, &c.Count); err != nil {
			return nil, fmt.Errorf("scan filter count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate filter counts: %w", err)
	}
	return counts, nil
}

// scanProduct executes a query expected to return a single product row.
func (r *ProductRepository) scanProduct(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	var (
		p          domain.Product
		imagesJSON []byte
	)

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.ItemCode,
		&p.SearchKeywords,
		&p.Description,
		&p.BrandID,
		&p.CategoryID,
		&p.SubCategoryID,
		&p.Status,
		&p.Price,
		&p.SpecialPrice,
		&p.Quantity,
		&p.StockStatus,
		&imagesJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	if imagesJSON != nil {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return nil, fmt.Errorf("unmarshal images: %w", err)
		}
	}

	return &p, nil
}
