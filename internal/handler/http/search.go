package http

import (
	"log/slog"
	"net/http"

	"github.com/voltmart/catalog-service/internal/search"
	"github.com/voltmart/catalog-service/internal/service"
	"github.com/voltmart/catalog-service/pkg/httputil"
)

// SearchHandler handles HTTP requests for the storefront search
// endpoint.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// Search handles GET /api/v1/search.
//
// Every parameter is optional and malformed values degrade to their
// defaults rather than rejecting the request, so this handler performs
// no parameter validation of its own.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := search.RawParams{
		Query:        q.Get("query"),
		Category:     q.Get("category"),
		Brands:       q.Get("brands"),
		MinPrice:     q.Get("minPrice"),
		MaxPrice:     q.Get("maxPrice"),
		Filters:      q.Get("filters"),
		FilterGroups: q.Get("filterGroups"),
		Sort:         q.Get("sort"),
		Page:         q.Get("page"),
		Limit:        q.Get("limit"),
	}

	result, err := h.service.Search(r.Context(), params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
