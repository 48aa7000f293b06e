package search

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/voltmart/catalog-service/internal/domain"
)

// Defaults and bounds applied during normalization.
const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100

	// PriceMaxSentinel stands in for "no upper bound" so the price
	// predicate always has two concrete ends.
	PriceMaxSentinel = 1e9
)

// FilterSpec is a fully normalized search request. Values are always in
// range and expanded; a zero-restriction field means "no restriction",
// never "match nothing". Build one with NewFilterSpec and the With
// methods, which copy rather than mutate.
type FilterSpec struct {
	TextQuery    string
	CategoryIDs  []string
	BrandIDs     []string
	PriceMin     float64
	PriceMax     float64
	FilterGroups map[string][]string
	Sort         string
	Page         int
	Limit        int
}

// NewFilterSpec returns an unrestricted spec with default paging and
// sort.
func NewFilterSpec() FilterSpec {
	return FilterSpec{
		PriceMin: 0,
		PriceMax: PriceMaxSentinel,
		Sort:     domain.SortFeatured,
		Page:     DefaultPage,
		Limit:    DefaultLimit,
	}
}

// WithTextQuery returns a copy with the free-text query set.
func (s FilterSpec) WithTextQuery(q string) FilterSpec {
	s.TextQuery = strings.TrimSpace(q)
	return s
}

// WithCategories returns a copy scoped to the given category ids.
func (s FilterSpec) WithCategories(ids ...string) FilterSpec {
	s.CategoryIDs = append([]string(nil), ids...)
	return s
}

// WithBrands returns a copy restricted to the given brand ids.
func (s FilterSpec) WithBrands(ids ...string) FilterSpec {
	s.BrandIDs = append([]string(nil), ids...)
	return s
}

// WithPriceRange returns a copy with the effective-price bounds set.
func (s FilterSpec) WithPriceRange(min, max float64) FilterSpec {
	s.PriceMin = min
	s.PriceMax = max
	return s
}

// WithFilterGroup returns a copy with the given attribute group
// selection added. Selecting an empty set removes the group.
func (s FilterSpec) WithFilterGroup(groupID string, filterIDs ...string) FilterSpec {
	groups := make(map[string][]string, len(s.FilterGroups)+1)
	for k, v := range s.FilterGroups {
		groups[k] = append([]string(nil), v...)
	}
	if len(filterIDs) == 0 {
		delete(groups, groupID)
	} else {
		groups[groupID] = append([]string(nil), filterIDs...)
	}
	if len(groups) == 0 {
		groups = nil
	}
	s.FilterGroups = groups
	return s
}

// WithSort returns a copy with the sort order set. Unknown values fall
// back to featured.
func (s FilterSpec) WithSort(sortKey string) FilterSpec {
	if !domain.ValidSort(sortKey) {
		sortKey = domain.SortFeatured
	}
	s.Sort = sortKey
	return s
}

// WithPage returns a copy with page and limit clamped into range.
func (s FilterSpec) WithPage(page, limit int) FilterSpec {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	s.Page = page
	s.Limit = limit
	return s
}

// CacheKey returns a stable digest of the spec, independent of the
// order ids were supplied in. Two specs with the same restrictions,
// sort, and page produce the same key.
func (s FilterSpec) CacheKey() string {
	var b strings.Builder
	b.WriteString("q=" + s.TextQuery)
	b.WriteString("|c=" + strings.Join(sortedCopy(s.CategoryIDs), ","))
	b.WriteString("|b=" + strings.Join(sortedCopy(s.BrandIDs), ","))
	fmt.Fprintf(&b, "|p=%g-%g", s.PriceMin, s.PriceMax)
	for _, gid := range sortedKeys(s.FilterGroups) {
		b.WriteString("|g=" + gid + ":" + strings.Join(sortedCopy(s.FilterGroups[gid]), ","))
	}
	fmt.Fprintf(&b, "|s=%s|pg=%d|l=%d", s.Sort, s.Page, s.Limit)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func sortedCopy(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
