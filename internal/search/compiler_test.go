package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltmart/catalog-service/internal/domain"
	"github.com/voltmart/catalog-service/internal/search"
)

func TestCompileEmptySpec(t *testing.T) {
	q := search.Compile(search.NewFilterSpec())

	assert.Equal(t, []string{"status = $1", "quantity > 0"}, q.Conditions)
	assert.Equal(t, []any{domain.ProductStatusActive}, q.Args)
	assert.Equal(t, "created_at DESC, id DESC", q.OrderBy)
}

func TestCompileCategoryPredicate(t *testing.T) {
	spec := search.NewFilterSpec().WithCategories("c1", "c2")
	q := search.Compile(spec)

	assert.Contains(t, q.Conditions, "(category_id = ANY($2) OR sub_category_id = ANY($2))")
	assert.Equal(t, []string{"c1", "c2"}, q.Args[1])
}

func TestCompilePricePredicate(t *testing.T) {
	spec := search.NewFilterSpec().WithPriceRange(90, 160)
	q := search.Compile(spec)

	require.Len(t, q.Conditions, 3)
	assert.Equal(t,
		"((special_price > 0 AND special_price < price AND special_price BETWEEN $2 AND $3)"+
			" OR ((special_price <= 0 OR special_price >= price) AND price BETWEEN $2 AND $3))",
		q.Conditions[2])
	assert.Equal(t, []any{domain.ProductStatusActive, 90.0, 160.0}, q.Args)
}

func TestCompileUnboundedPriceAddsNoCondition(t *testing.T) {
	q := search.Compile(search.NewFilterSpec())
	for _, c := range q.Conditions {
		assert.NotContains(t, c, "price BETWEEN")
	}
}

func TestCompileTextPredicateEscapesPattern(t *testing.T) {
	spec := search.NewFilterSpec().WithTextQuery("100%_cotton")
	q := search.Compile(spec)

	assert.Contains(t, q.Conditions, "(name ILIKE $2 OR item_code ILIKE $2 OR search_keywords ILIKE $2)")
	assert.Equal(t, `%100\%\_cotton%`, q.Args[1])
}

func TestCompileWithoutBrand(t *testing.T) {
	spec := search.NewFilterSpec().WithBrands("b1")

	with := search.Compile(spec)
	without := search.Compile(spec, search.WithoutBrand())

	assert.Contains(t, with.Conditions, "brand_id = ANY($2)")
	for _, c := range without.Conditions {
		assert.NotContains(t, c, "brand_id")
	}
}

func TestCompileCandidateRestriction(t *testing.T) {
	q := search.Compile(search.NewFilterSpec(), search.WithCandidateIDs([]string{"p1", "p2"}))
	assert.Contains(t, q.Conditions, "id = ANY($2)")
	assert.Equal(t, []string{"p1", "p2"}, q.Args[1])

	// An explicitly empty candidate set must still restrict.
	empty := search.Compile(search.NewFilterSpec(), search.WithCandidateIDs(nil))
	assert.Contains(t, empty.Conditions, "id = ANY($2)")
	assert.Equal(t, []string{}, empty.Args[1])
}

func TestCompileOrderBy(t *testing.T) {
	effective := "CASE WHEN special_price > 0 AND special_price < price THEN special_price ELSE price END"
	tests := []struct {
		sort string
		want string
	}{
		{domain.SortFeatured, "created_at DESC, id DESC"},
		{domain.SortPriceLowHigh, effective + " ASC, id ASC"},
		{domain.SortPriceHighLow, effective + " DESC, id DESC"},
		{domain.SortNameAZ, "name ASC, id ASC"},
		{domain.SortNameZA, "name DESC, id DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			q := search.Compile(search.NewFilterSpec().WithSort(tt.sort))
			assert.Equal(t, tt.want, q.OrderBy)
		})
	}
}

func TestMatchesEffectivePriceBand(t *testing.T) {
	spec := search.NewFilterSpec().WithPriceRange(90, 160)
	opts := search.NewOptions()

	a := domain.Product{ID: "a", Status: domain.ProductStatusActive, Quantity: 5, Price: 100, SpecialPrice: 0}
	b := domain.Product{ID: "b", Status: domain.ProductStatusActive, Quantity: 5, Price: 200, SpecialPrice: 150}
	c := domain.Product{ID: "c", Status: domain.ProductStatusActive, Quantity: 5, Price: 300, SpecialPrice: 0}

	assert.True(t, search.Matches(&a, spec, opts))
	assert.True(t, search.Matches(&b, spec, opts))
	assert.False(t, search.Matches(&c, spec, opts))
}

func TestMatchesStatusAndStock(t *testing.T) {
	spec := search.NewFilterSpec()
	opts := search.NewOptions()

	inactive := domain.Product{ID: "a", Status: domain.ProductStatusInactive, Quantity: 5, Price: 10}
	outOfStock := domain.Product{ID: "b", Status: domain.ProductStatusActive, Quantity: 0, Price: 10}

	assert.False(t, search.Matches(&inactive, spec, opts))
	assert.False(t, search.Matches(&outOfStock, spec, opts))
}

func TestMatchesCategoryEitherField(t *testing.T) {
	c1 := "c1"
	spec := search.NewFilterSpec().WithCategories("c1")
	opts := search.NewOptions()

	byCategory := domain.Product{ID: "a", Status: domain.ProductStatusActive, Quantity: 1, Price: 10, CategoryID: &c1}
	bySubCategory := domain.Product{ID: "b", Status: domain.ProductStatusActive, Quantity: 1, Price: 10, SubCategoryID: &c1}
	neither := domain.Product{ID: "c", Status: domain.ProductStatusActive, Quantity: 1, Price: 10}

	assert.True(t, search.Matches(&byCategory, spec, opts))
	assert.True(t, search.Matches(&bySubCategory, spec, opts))
	assert.False(t, search.Matches(&neither, spec, opts))
}

func TestSortProductsPriceUsesEffectivePrice(t *testing.T) {
	products := []domain.Product{
		{ID: "a", Price: 100, SpecialPrice: 0},
		{ID: "b", Price: 200, SpecialPrice: 50},
		{ID: "c", Price: 80, SpecialPrice: 0},
	}

	search.SortProducts(products, domain.SortPriceLowHigh)

	got := []string{products[0].ID, products[1].ID, products[2].ID}
	assert.Equal(t, []string{"b", "c", "a"}, got)
}

func TestSortProductsTiebreakByID(t *testing.T) {
	products := []domain.Product{
		{ID: "b", Name: "Same", Price: 10},
		{ID: "a", Name: "Same", Price: 10},
	}

	search.SortProducts(products, domain.SortNameAZ)

	assert.Equal(t, "a", products[0].ID)
	assert.Equal(t, "b", products[1].ID)
}
