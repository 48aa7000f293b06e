package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// flatGroupKey is the synthetic group id used when filters arrive as a
// flat comma-separated list instead of a grouped mapping.
const flatGroupKey = "_"

// CategoryExpander resolves a category to itself plus every descendant
// at every depth.
type CategoryExpander interface {
	ExpandDescendants(ctx context.Context, categoryID string) ([]string, error)
}

// RawParams are the loosely typed request parameters as they arrive at
// the boundary. Absent parameters are empty strings.
type RawParams struct {
	Query        string
	Category     string
	Brands       string
	MinPrice     string
	MaxPrice     string
	Filters      string
	FilterGroups string
	Sort         string
	Page         string
	Limit        string
}

// Normalizer turns raw request parameters into a FilterSpec. Malformed
// input never produces an error: a value that cannot be parsed degrades
// to its unrestricted default, so a broken filter shows too many
// products rather than none.
type Normalizer struct {
	expander CategoryExpander
}

func NewNormalizer(expander CategoryExpander) *Normalizer {
	return &Normalizer{expander: expander}
}

// Normalize builds a FilterSpec from raw parameters. The only error it
// can return comes from the category expansion lookup.
func (n *Normalizer) Normalize(ctx context.Context, p RawParams) (FilterSpec, error) {
	spec := NewFilterSpec().
		WithTextQuery(p.Query).
		WithBrands(splitIDs(p.Brands)...).
		WithPriceRange(priceBounds(p.MinPrice, p.MaxPrice)).
		WithSort(p.Sort).
		WithPage(intOr(p.Page, DefaultPage), intOr(p.Limit, DefaultLimit))

	if cat := strings.TrimSpace(p.Category); cat != "" {
		ids, err := n.expander.ExpandDescendants(ctx, cat)
		if err != nil {
			return FilterSpec{}, fmt.Errorf("expand category %s: %w", cat, err)
		}
		spec = spec.WithCategories(ids...)
	}

	for gid, filterIDs := range groupsOr(p.FilterGroups, p.Filters) {
		spec = spec.WithFilterGroup(gid, filterIDs...)
	}
	return spec, nil
}

// splitIDs parses a comma-separated id list, dropping empty entries.
// Empty input means no restriction.
func splitIDs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// priceBounds parses the price band, falling back to the full range on
// anything it cannot make sense of.
func priceBounds(minRaw, maxRaw string) (float64, float64) {
	min := floatOr(minRaw, 0)
	max := floatOr(maxRaw, PriceMaxSentinel)
	if min < 0 {
		min = 0
	}
	if max <= 0 || max < min {
		min, max = 0, PriceMaxSentinel
	}
	return min, max
}

// groupsOr parses the grouped filter selection, preferring the JSON
// mapping over the flat list. Malformed JSON degrades to no selection.
func groupsOr(groupsJSON, flat string) map[string][]string {
	if strings.TrimSpace(groupsJSON) != "" {
		var groups map[string][]string
		if err := json.Unmarshal([]byte(groupsJSON), &groups); err == nil {
			for gid, ids := range groups {
				if len(ids) == 0 {
					delete(groups, gid)
				}
			}
			return groups
		}
		return nil
	}
	if ids := splitIDs(flat); len(ids) > 0 {
		return map[string][]string{flatGroupKey: ids}
	}
	return nil
}

func floatOr(raw string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fallback
	}
	return v
}

func intOr(raw string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return v
}
