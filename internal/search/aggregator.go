package search

import (
	"context"
	"fmt"

	"github.com/voltmart/catalog-service/internal/domain"
)

// Store is the read-only product store the search core queries. The
// Postgres repository and the in-memory catalog both implement it.
type Store interface {
	// FindPage returns the requested page of matching products in
	// sorted order, plus the total match count.
	FindPage(ctx context.Context, s FilterSpec, opts ...CompileOption) ([]domain.Product, int, error)
	// ProductIDs returns the ids of every matching product.
	ProductIDs(ctx context.Context, s FilterSpec, opts ...CompileOption) ([]string, error)
	// ProductIDsMatching returns the subset of productIDs associated
	// with any of the given filter ids.
	ProductIDsMatching(ctx context.Context, productIDs, filterIDs []string) ([]string, error)
	// CountByBrand counts matching products grouped by brand.
	CountByBrand(ctx context.Context, s FilterSpec, opts ...CompileOption) ([]domain.BrandCount, error)
	// CountByFilter counts matching products grouped by associated
	// filter id. A product with several filters counts once per filter.
	CountByFilter(ctx context.Context, s FilterSpec, opts ...CompileOption) ([]domain.FilterCount, error)
}

// ResolveCandidates applies the spec's attribute-filter groups on top of
// the compiled predicate: it takes the matching product ids, then for
// each group with a selection keeps only the ids carrying at least one
// of that group's filters. Groups combine as AND, values within a group
// as OR.
//
// The second return is false when the spec has no attribute selection
// and the caller should not restrict by candidates at all. When it is
// true, an empty id slice means no product survived.
func ResolveCandidates(ctx context.Context, store Store, s FilterSpec, opts ...CompileOption) ([]string, bool, error) {
	if len(s.FilterGroups) == 0 {
		return nil, false, nil
	}

	ids, err := store.ProductIDs(ctx, s, opts...)
	if err != nil {
		return nil, true, fmt.Errorf("list candidate products: %w", err)
	}

	// Group order does not change the intersection result, but a fixed
	// order keeps query logs and short-circuit behavior reproducible.
	for _, gid := range sortedKeys(s.FilterGroups) {
		if len(ids) == 0 {
			return []string{}, true, nil
		}
		ids, err = store.ProductIDsMatching(ctx, ids, s.FilterGroups[gid])
		if err != nil {
			return nil, true, fmt.Errorf("intersect filter group %s: %w", gid, err)
		}
	}
	return ids, true, nil
}

// Aggregator computes facet counts. Each facet dimension is counted
// against the query with that dimension's own predicate removed, so
// selecting an option never collapses the counts of its siblings.
type Aggregator struct {
	store Store
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// BrandCounts counts matching products per brand with the brand
// predicate removed. Category, price, text, and attribute-filter
// restrictions still apply.
func (a *Aggregator) BrandCounts(ctx context.Context, s FilterSpec) ([]domain.BrandCount, error) {
	ids, restricted, err := ResolveCandidates(ctx, a.store, s, WithoutBrand())
	if err != nil {
		return nil, err
	}
	opts := []CompileOption{WithoutBrand()}
	if restricted {
		if len(ids) == 0 {
			return []domain.BrandCount{}, nil
		}
		opts = append(opts, WithCandidateIDs(ids))
	}
	return a.store.CountByBrand(ctx, s, opts...)
}

// FilterCounts counts matching products per filter id with every
// attribute-filter restriction removed. Brand, category, price, and
// text restrictions still apply.
func (a *Aggregator) FilterCounts(ctx context.Context, s FilterSpec) ([]domain.FilterCount, error) {
	return a.store.CountByFilter(ctx, s)
}
