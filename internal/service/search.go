package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voltmart/catalog-service/internal/domain"
	"github.com/voltmart/catalog-service/internal/search"
	apperrors "github.com/voltmart/catalog-service/pkg/errors"
	"github.com/voltmart/catalog-service/pkg/pagination"
)

// SearchResult is the full storefront search response: the page of
// products plus the facet summaries computed with their own dimension
// excluded.
type SearchResult struct {
	Products      []domain.ProductSummary `json:"products"`
	Pagination    pagination.Page         `json:"pagination"`
	BrandSummary  []domain.BrandCount     `json:"brandSummary"`
	FilterSummary []domain.FilterCount    `json:"filterSummary"`
}

// SearchService orchestrates a storefront search: normalize the raw
// parameters, resolve the attribute-filter candidate set, fetch the
// page, and aggregate facets.
type SearchService struct {
	store      search.Store
	normalizer *search.Normalizer
	aggregator *search.Aggregator
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     *slog.Logger
}

// NewSearchService creates a search service. cache may be nil to
// disable result caching.
func NewSearchService(store search.Store, expander search.CategoryExpander, cache *redis.Client, cacheTTL time.Duration, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:      store,
		normalizer: search.NewNormalizer(expander),
		aggregator: search.NewAggregator(store),
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Search runs a full storefront search from raw request parameters.
//
// Store failures on the main page query surface as a search-unavailable
// error. Facet aggregation failures degrade to empty summaries: the
// product list is the primary contract, facets are an enhancement.
func (s *SearchService) Search(ctx context.Context, params search.RawParams) (*SearchResult, error) {
	spec, err := s.normalizer.Normalize(ctx, params)
	if err != nil {
		return nil, apperrors.SearchUnavailable(err)
	}
	return s.SearchSpec(ctx, spec)
}

// SearchSpec runs a search for an already-normalized spec.
func (s *SearchService) SearchSpec(ctx context.Context, spec search.FilterSpec) (*SearchResult, error) {
	if cached := s.fromCache(ctx, spec); cached != nil {
		return cached, nil
	}

	candidates, restricted, err := search.ResolveCandidates(ctx, s.store, spec)
	if err != nil {
		return nil, apperrors.SearchUnavailable(err)
	}

	var (
		products []domain.Product
		total    int
	)
	if restricted && len(candidates) == 0 {
		products = []domain.Product{}
	} else {
		var opts []search.CompileOption
		if restricted {
			opts = append(opts, search.WithCandidateIDs(candidates))
		}
		products, total, err = s.store.FindPage(ctx, spec, opts...)
		if err != nil {
			return nil, apperrors.SearchUnavailable(err)
		}
	}

	brandCounts, filterCounts, degraded := s.aggregateFacets(ctx, spec)

	summaries := make([]domain.ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, products[i].Summary())
	}

	result := &SearchResult{
		Products:      summaries,
		Pagination:    pagination.NewPage(spec.Page, spec.Limit, total),
		BrandSummary:  brandCounts,
		FilterSummary: filterCounts,
	}
	// A result with degraded facets is served but never cached, so the
	// summaries come back as soon as the store recovers.
	if !degraded {
		s.toCache(ctx, spec, result)
	}
	return result, nil
}

// aggregateFacets computes both facet summaries concurrently. Either
// failure is logged and replaced with an empty summary; degraded reports
// whether that happened.
func (s *SearchService) aggregateFacets(ctx context.Context, spec search.FilterSpec) (_ []domain.BrandCount, _ []domain.FilterCount, degraded bool) {
	var (
		wg           sync.WaitGroup
		brandCounts  []domain.BrandCount
		filterCounts []domain.FilterCount
		brandErr     error
		filterErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		brandCounts, brandErr = s.aggregator.BrandCounts(ctx, spec)
	}()
	go func() {
		defer wg.Done()
		filterCounts, filterErr = s.aggregator.FilterCounts(ctx, spec)
	}()
	wg.Wait()

	if brandErr != nil {
		s.logger.WarnContext(ctx, "brand facet aggregation failed", slog.String("error", brandErr.Error()))
		brandCounts = []domain.BrandCount{}
	}
	if filterErr != nil {
		s.logger.WarnContext(ctx, "filter facet aggregation failed", slog.String("error", filterErr.Error()))
		filterCounts = []domain.FilterCount{}
	}
	if brandCounts == nil {
		brandCounts = []domain.BrandCount{}
	}
	if filterCounts == nil {
		filterCounts = []domain.FilterCount{}
	}
	return brandCounts, filterCounts, brandErr != nil || filterErr != nil
}

const searchCachePrefix = "search:"

// fromCache returns the cached result for the spec, or nil. The whole
// result tuple is cached under one key so the page and its facet
// summaries can never disagree.
func (s *SearchService) fromCache(ctx context.Context, spec search.FilterSpec) *SearchResult {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, searchCachePrefix+spec.CacheKey()).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.DebugContext(ctx, "search cache read failed", slog.String("error", err.Error()))
		}
		return nil
	}
	var result SearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	return &result
}

func (s *SearchService) toCache(ctx context.Context, spec search.FilterSpec, result *SearchResult) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, searchCachePrefix+spec.CacheKey(), raw, s.cacheTTL).Err(); err != nil {
		s.logger.DebugContext(ctx, "search cache write failed", slog.String("error", err.Error()))
	}
}
