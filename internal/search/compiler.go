package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/voltmart/catalog-service/internal/domain"
)

// effectivePriceExpr mirrors domain.Product.EffectivePrice in SQL. Every
// price comparison and price sort must go through this expression.
const effectivePriceExpr = "CASE WHEN special_price > 0 AND special_price < price THEN special_price ELSE price END"

// Options control which predicate dimensions a compiled query carries.
// Facet aggregation compiles the same spec with one dimension removed.
type Options struct {
	// SkipBrand omits the brand predicate even when brands are selected.
	SkipBrand bool
	// CandidateIDs restricts results to the given product ids. The
	// attribute-filter selection is applied this way, after the
	// candidate set has been intersected per group.
	CandidateIDs []string
	// Restricted marks CandidateIDs as meaningful even when empty.
	Restricted bool
}

type CompileOption func(*Options)

// WithoutBrand drops the brand predicate, for brand facet counting.
func WithoutBrand() CompileOption {
	return func(o *Options) { o.SkipBrand = true }
}

// WithCandidateIDs restricts the query to the given product ids. An
// empty id set matches nothing.
func WithCandidateIDs(ids []string) CompileOption {
	return func(o *Options) {
		o.CandidateIDs = ids
		o.Restricted = true
	}
}

// NewOptions resolves a set of compile options.
func NewOptions(opts ...CompileOption) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Query is a compiled predicate over the products table: a conjunction
// of SQL conditions with positional arguments, plus a deterministic
// ordering.
type Query struct {
	Conditions []string
	Args       []any
	OrderBy    string
}

// Where joins the conditions into a WHERE clause body.
func (q Query) Where() string {
	return strings.Join(q.Conditions, " AND ")
}

// Compile turns a FilterSpec into a Query. Restrictions the spec does
// not carry produce no conditions: an empty spec compiles to the
// always-applied status and stock predicates alone.
func Compile(s FilterSpec, opts ...CompileOption) Query {
	o := NewOptions(opts...)

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	conds = append(conds, "status = "+arg(domain.ProductStatusActive))
	conds = append(conds, "quantity > 0")

	if len(s.CategoryIDs) > 0 {
		p := arg(s.CategoryIDs)
		conds = append(conds, fmt.Sprintf("(category_id = ANY(%s) OR sub_category_id = ANY(%s))", p, p))
	}
	if len(s.BrandIDs) > 0 && !o.SkipBrand {
		conds = append(conds, "brand_id = ANY("+arg(s.BrandIDs)+")")
	}
	if s.PriceMin > 0 || s.PriceMax < PriceMaxSentinel {
		lo, hi := arg(s.PriceMin), arg(s.PriceMax)
		conds = append(conds, fmt.Sprintf(
			"((special_price > 0 AND special_price < price AND special_price BETWEEN %[1]s AND %[2]s)"+
				" OR ((special_price <= 0 OR special_price >= price) AND price BETWEEN %[1]s AND %[2]s))",
			lo, hi))
	}
	if s.TextQuery != "" {
		p := arg("%" + EscapeLike(s.TextQuery) + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %[1]s OR item_code ILIKE %[1]s OR search_keywords ILIKE %[1]s)", p))
	}
	if o.Restricted {
		ids := o.CandidateIDs
		if ids == nil {
			ids = []string{}
		}
		conds = append(conds, "id = ANY("+arg(ids)+")")
	}

	return Query{Conditions: conds, Args: args, OrderBy: orderBy(s.Sort)}
}

// orderBy maps a sort key to a deterministic ORDER BY body. Every order
// ends on id so that ties never reshuffle between pages.
func orderBy(sortKey string) string {
	switch sortKey {
	case domain.SortPriceLowHigh:
		return effectivePriceExpr + " ASC, id ASC"
	case domain.SortPriceHighLow:
		return effectivePriceExpr + " DESC, id DESC"
	case domain.SortNameAZ:
		return "name ASC, id ASC"
	case domain.SortNameZA:
		return "name DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

// EscapeLike escapes LIKE pattern metacharacters in user input so it
// matches literally.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Matches is the in-memory counterpart of Compile: it reports whether a
// product satisfies the spec under the given options. The Postgres
// store and the memory store must agree on every product.
func Matches(p *domain.Product, s FilterSpec, o Options) bool {
	if p.Status != domain.ProductStatusActive || p.Quantity <= 0 {
		return false
	}
	if len(s.CategoryIDs) > 0 {
		if !refIn(p.CategoryID, s.CategoryIDs) && !refIn(p.SubCategoryID, s.CategoryIDs) {
			return false
		}
	}
	if len(s.BrandIDs) > 0 && !o.SkipBrand && !refIn(p.BrandID, s.BrandIDs) {
		return false
	}
	if ep := p.EffectivePrice(); ep < s.PriceMin || ep > s.PriceMax {
		return false
	}
	if s.TextQuery != "" {
		q := strings.ToLower(s.TextQuery)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.ItemCode), q) &&
			!strings.Contains(strings.ToLower(p.SearchKeywords), q) {
			return false
		}
	}
	if o.Restricted {
		found := false
		for _, id := range o.CandidateIDs {
			if id == p.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func refIn(ref *string, ids []string) bool {
	if ref == nil {
		return false
	}
	for _, id := range ids {
		if id == *ref {
			return true
		}
	}
	return false
}

// SortProducts orders products per the sort key, with the same id
// tiebreak the compiled ORDER BY uses.
func SortProducts(products []domain.Product, sortKey string) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := &products[i], &products[j]
		switch sortKey {
		case domain.SortPriceLowHigh:
			if ea, eb := a.EffectivePrice(), b.EffectivePrice(); ea != eb {
				return ea < eb
			}
			return a.ID < b.ID
		case domain.SortPriceHighLow:
			if ea, eb := a.EffectivePrice(), b.EffectivePrice(); ea != eb {
				return ea > eb
			}
			return a.ID > b.ID
		case domain.SortNameAZ:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		case domain.SortNameZA:
			if a.Name != b.Name {
				return a.Name > b.Name
			}
			return a.ID > b.ID
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		}
	})
}
