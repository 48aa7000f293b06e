package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/voltmart/catalog-service/internal/domain"
	"github.com/voltmart/catalog-service/pkg/database"
)

// FilterRepository implements filter group lookups using PostgreSQL.
type FilterRepository struct {
	pool database.DBTX
}

// NewFilterRepository creates a new PostgreSQL-backed filter repository.
func NewFilterRepository(pool database.DBTX) *FilterRepository {
	return &FilterRepository{pool: pool}
}

// ListGroups returns every active filter group with its active values,
// ordered for the storefront sidebar. Groups without values are still
// returned.
func (r *FilterRepository) ListGroups(ctx context.Context) ([]domain.FilterGroupWithValues, error) {
	query := `
		SELECT g.id, g.name, g.slug, g.sort_order, g.status, g.created_at, g.updated_at,
			   f.id, f.group_id, f.name, f.slug, f.sort_order, f.status, f.created_at, f.updated_at
		FROM filter_groups g
		LEFT JOIN filters f ON f.group_id = g.id AND f.status = $1
		WHERE g.status = $1
		ORDER BY g.sort_order, g.name, f.sort_order, f.name`

	rows, err := r.pool.Query(ctx, query, domain.FilterStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list filter groups: %w", err)
	}
	defer rows.Close()

	var (
		groups  []domain.FilterGroupWithValues
		indexOf = make(map[string]int)
	)

	for rows.Next() {
		var (
			g domain.FilterGroup
			f struct {
				ID        *string
				GroupID   *string
				Name      *string
				Slug      *string
				SortOrder *int
				Status    *string
				CreatedAt *time.Time
				UpdatedAt *time.Time
			}
		)
		if err := rows.Scan(
			&g.ID, &g.Name, &g.Slug, &g.SortOrder, &g.Status, &g.CreatedAt, &g.UpdatedAt,
			&f.ID, &f.GroupID, &f.Name, &f.Slug, &f.SortOrder, &f.Status, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan filter group row: %w", err)
		}

		idx, ok := indexOf[g.ID]
		if !ok {
			idx = len(groups)
			indexOf[g.ID] = idx
			groups = append(groups, domain.FilterGroupWithValues{FilterGroup: g, Filters: []domain.Filter{}})
		}

		if f.ID != nil {
			groups[idx].Filters = append(groups[idx].Filters, domain.Filter{
				ID:        *f.ID,
				GroupID:   *f.GroupID,
				Name:      *f.Name,
				Slug:      *f.Slug,
				SortOrder: *f.SortOrder,
				Status:    *f.Status,
				CreatedAt: *f.CreatedAt,
				UpdatedAt: *f.UpdatedAt,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate filter group rows: %w", err)
	}

	if groups == nil {
		groups = []domain.FilterGroupWithValues{}
	}
	return groups, nil
}
