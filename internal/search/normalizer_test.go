package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltmart/catalog-service/internal/domain"
	"github.com/voltmart/catalog-service/internal/search"
)

type stubExpander struct {
	descendants map[string][]string
	err         error
}

func (s *stubExpander) ExpandDescendants(_ context.Context, id string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	if ids, ok := s.descendants[id]; ok {
		return ids, nil
	}
	return []string{}, nil
}

func TestNormalizeDefaults(t *testing.T) {
	n := search.NewNormalizer(&stubExpander{})

	spec, err := n.Normalize(context.Background(), search.RawParams{})

	require.NoError(t, err)
	assert.Empty(t, spec.TextQuery)
	assert.Empty(t, spec.CategoryIDs)
	assert.Empty(t, spec.BrandIDs)
	assert.Equal(t, 0.0, spec.PriceMin)
	assert.Equal(t, float64(search.PriceMaxSentinel), spec.PriceMax)
	assert.Empty(t, spec.FilterGroups)
	assert.Equal(t, domain.SortFeatured, spec.Sort)
	assert.Equal(t, 1, spec.Page)
	assert.Equal(t, 12, spec.Limit)
}

func TestNormalizeFailOpen(t *testing.T) {
	n := search.NewNormalizer(&stubExpander{})
	ctx := context.Background()

	tests := []struct {
		name   string
		params search.RawParams
	}{
		{name: "malformed filter groups", params: search.RawParams{FilterGroups: `{"g1": not-json`}},
		{name: "non-numeric min price", params: search.RawParams{MinPrice: "abc"}},
		{name: "non-numeric max price", params: search.RawParams{MaxPrice: "12,50"}},
		{name: "inverted price range", params: search.RawParams{MinPrice: "500", MaxPrice: "10"}},
		{name: "negative page", params: search.RawParams{Page: "-3"}},
		{name: "zero limit", params: search.RawParams{Limit: "0"}},
		{name: "unknown sort", params: search.RawParams{Sort: "cheapest-first"}},
	}

	baseline, err := n.Normalize(ctx, search.RawParams{})
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := n.Normalize(ctx, tt.params)
			require.NoError(t, err)
			assert.Equal(t, baseline, spec)
		})
	}
}

func TestNormalizeBrandsAndFilters(t *testing.T) {
	n := search.NewNormalizer(&stubExpander{})
	ctx := context.Background()

	spec, err := n.Normalize(ctx, search.RawParams{
		Brands:       "b1, b2,,b3",
		FilterGroups: `{"color":["f1","f2"],"size":["f9"],"empty":[]}`,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2", "b3"}, spec.BrandIDs)
	assert.Equal(t, map[string][]string{
		"color": {"f1", "f2"},
		"size":  {"f9"},
	}, spec.FilterGroups)
}

func TestNormalizeFlatFilterList(t *testing.T) {
	n := search.NewNormalizer(&stubExpander{})

	spec, err := n.Normalize(context.Background(), search.RawParams{Filters: "f1,f2"})

	require.NoError(t, err)
	require.Len(t, spec.FilterGroups, 1)
	for _, ids := range spec.FilterGroups {
		assert.Equal(t, []string{"f1", "f2"}, ids)
	}
}

func TestNormalizeCategoryExpansion(t *testing.T) {
	n := search.NewNormalizer(&stubExpander{
		descendants: map[string][]string{"c1": {"c1", "c2", "c3"}},
	})

	spec, err := n.Normalize(context.Background(), search.RawParams{Category: "c1"})

	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2", "c3"}, spec.CategoryIDs)
}

func TestNormalizeUnknownCategoryLeavesCatalogUnscoped(t *testing.T) {
	n := search.NewNormalizer(&stubExpander{
		descendants: map[string][]string{"c1": {"c1", "c2"}},
	})

	spec, err := n.Normalize(context.Background(), search.RawParams{Category: "ghost"})

	require.NoError(t, err)
	assert.Empty(t, spec.CategoryIDs)
}

func TestNormalizeCategoryExpansionError(t *testing.T) {
	n := search.NewNormalizer(&stubExpander{err: errors.New("store down")})

	_, err := n.Normalize(context.Background(), search.RawParams{Category: "c1"})

	assert.Error(t, err)
}

func TestNormalizeClamps(t *testing.T) {
	n := search.NewNormalizer(&stubExpander{})

	spec, err := n.Normalize(context.Background(), search.RawParams{Page: "3", Limit: "500"})

	require.NoError(t, err)
	assert.Equal(t, 3, spec.Page)
	assert.Equal(t, search.MaxLimit, spec.Limit)
}

func TestFilterSpecBuilderCopies(t *testing.T) {
	base := search.NewFilterSpec().WithFilterGroup("g1", "f1")
	derived := base.WithFilterGroup("g2", "f2").WithBrands("b1")

	assert.Len(t, base.FilterGroups, 1)
	assert.Empty(t, base.BrandIDs)
	assert.Len(t, derived.FilterGroups, 2)
}

func TestCacheKeyOrderIndependent(t *testing.T) {
	a := search.NewFilterSpec().WithBrands("b1", "b2").WithFilterGroup("g1", "f1", "f2")
	b := search.NewFilterSpec().WithBrands("b2", "b1").WithFilterGroup("g1", "f2", "f1")
	c := a.WithPage(2, 12)

	assert.Equal(t, a.CacheKey(), b.CacheKey())
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())
}
