// Package catalog provides an in-memory product store implementing the
// same query semantics as the Postgres repositories. It backs tests and
// the local development mode.
package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/voltmart/catalog-service/internal/domain"
	"github.com/voltmart/catalog-service/internal/search"
)

// Store is a thread-safe in-memory catalog snapshot.
type Store struct {
	mu           sync.RWMutex
	products     map[string]domain.Product
	categories   map[string]domain.Category
	associations map[string]map[string]struct{} // product id -> filter ids
}

func NewStore() *Store {
	return &Store{
		products:     make(map[string]domain.Product),
		categories:   make(map[string]domain.Category),
		associations: make(map[string]map[string]struct{}),
	}
}

// AddProduct inserts or replaces a product.
func (s *Store) AddProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// AddCategory inserts or replaces a category.
func (s *Store) AddCategory(c domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

// Associate links a product to a filter value.
func (s *Store) Associate(productID, filterID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.associations[productID]
	if !ok {
		set = make(map[string]struct{})
		s.associations[productID] = set
	}
	set[filterID] = struct{}{}
}

func (s *Store) matching(spec search.FilterSpec, opts ...search.CompileOption) []domain.Product {
	o := search.NewOptions(opts...)
	var out []domain.Product
	for _, p := range s.products {
		p := p
		if search.Matches(&p, spec, o) {
			out = append(out, p)
		}
	}
	return out
}

// FindPage implements search.Store.
func (s *Store) FindPage(_ context.Context, spec search.FilterSpec, opts ...search.CompileOption) ([]domain.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.matching(spec, opts...)
	search.SortProducts(matched, spec.Sort)

	total := len(matched)
	offset := (spec.Page - 1) * spec.Limit
	if offset >= total {
		return []domain.Product{}, total, nil
	}
	end := offset + spec.Limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

// ProductIDs implements search.Store. Ids come back sorted so repeated
// calls are reproducible.
func (s *Store) ProductIDs(_ context.Context, spec search.FilterSpec, opts ...search.CompileOption) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.matching(spec, opts...)
	ids := make([]string, 0, len(matched))
	for _, p := range matched {
		ids = append(ids, p.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

// ProductIDsMatching implements search.Store.
func (s *Store) ProductIDsMatching(_ context.Context, productIDs, filterIDs []string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(productIDs))
	for _, pid := range productIDs {
		set, ok := s.associations[pid]
		if !ok {
			continue
		}
		for _, fid := range filterIDs {
			if _, ok := set[fid]; ok {
				out = append(out, pid)
				break
			}
		}
	}
	return out, nil
}

// CountByBrand implements search.Store. Products without a brand are
// not counted.
func (s *Store) CountByBrand(_ context.Context, spec search.FilterSpec, opts ...search.CompileOption) ([]domain.BrandCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, p := range s.matching(spec, opts...) {
		if p.BrandID != nil {
			counts[*p.BrandID]++
		}
	}
	out := make([]domain.BrandCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, domain.BrandCount{BrandID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BrandID < out[j].BrandID })
	return out, nil
}

// CountByFilter implements search.Store. A product carrying several
// filters contributes to each of them.
func (s *Store) CountByFilter(_ context.Context, spec search.FilterSpec, opts ...search.CompileOption) ([]domain.FilterCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, p := range s.matching(spec, opts...) {
		for fid := range s.associations[p.ID] {
			counts[fid]++
		}
	}
	out := make([]domain.FilterCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, domain.FilterCount{FilterID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FilterID < out[j].FilterID })
	return out, nil
}

// ExpandDescendants implements search.CategoryExpander over the stored
// category tree. The result includes the requested id itself. An unknown
// id expands to nothing so the search stays unscoped.
func (s *Store) ExpandDescendants(_ context.Context, categoryID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.categories[categoryID]; !ok {
		return []string{}, nil
	}

	children := make(map[string][]string)
	for _, c := range s.categories {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	ids := []string{categoryID}
	queue := []string{categoryID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		kids := children[id]
		sort.Strings(kids)
		ids = append(ids, kids...)
		queue = append(queue, kids...)
	}
	return ids, nil
}
