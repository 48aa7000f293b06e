package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voltmart/catalog-service/internal/service"
	"github.com/voltmart/catalog-service/pkg/httputil"
	"github.com/voltmart/catalog-service/pkg/validator"
)

// CatalogHandler handles HTTP requests for the browse surfaces:
// categories, brands, filters, banners, and product detail.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ListCategories handles GET /api/v1/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	tree, err := h.service.CategoryTree(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: tree})
}

// GetCategory handles GET /api/v1/categories/{slug}.
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: category})
}

// ListBrands handles GET /api/v1/brands.
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.Brands(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brands})
}

// GetBrand handles GET /api/v1/brands/{slug}.
func (h *CatalogHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	brand, err := h.service.GetBrandBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brand})
}

// ListFilterGroups handles GET /api/v1/filters.
func (h *CatalogHandler) ListFilterGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.FilterGroups(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: groups})
}

// GetProduct handles GET /api/v1/products/{slug}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// ListBanners handles GET /api/v1/banners. An optional category query
// parameter scopes the banners to a category landing page.
func (h *CatalogHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	var categoryID *string
	if v := r.URL.Query().Get("category"); v != "" {
		categoryID = &v
	}

	set, err := h.service.Banners(r.Context(), categoryID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: set})
}

// CreateBanner handles POST /api/v1/banners.
func (h *CatalogHandler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var input service.BannerInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	banner, err := h.service.CreateBanner(r.Context(), &input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: banner})
}

// UpdateBanner handles PUT /api/v1/banners/{id}.
func (h *CatalogHandler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var input service.BannerInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	banner, err := h.service.UpdateBanner(r.Context(), chi.URLParam(r, "id"), &input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: banner})
}

// DeleteBanner handles DELETE /api/v1/banners/{id}.
func (h *CatalogHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBanner(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
