package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltmart/catalog-service/internal/catalog"
	"github.com/voltmart/catalog-service/internal/domain"
	"github.com/voltmart/catalog-service/internal/repository"
	"github.com/voltmart/catalog-service/internal/search"
	"github.com/voltmart/catalog-service/internal/service"
	apperrors "github.com/voltmart/catalog-service/pkg/errors"
	"github.com/voltmart/catalog-service/pkg/httputil"
	"github.com/voltmart/catalog-service/pkg/logger"
)

type testResponse struct {
	Data  json.RawMessage         `json:"data"`
	Error *httputil.ErrorResponse `json:"error"`
}

func seedStore() *catalog.Store {
	store := catalog.NewStore()
	brand := "brand-1"
	cat := "cat-1"
	store.AddProduct(domain.Product{
		ID:         "p1",
		Name:       "Cotton Shirt",
		Slug:       "cotton-shirt",
		Status:     domain.ProductStatusActive,
		Price:      100,
		Quantity:   3,
		BrandID:    &brand,
		CategoryID: &cat,
		CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	return store
}

func newSearchRouter(store *catalog.Store) http.Handler {
	log := logger.NewWithWriter("test", "error", io.Discard)
	svc := service.NewSearchService(store, store, nil, 0, log)
	h := NewSearchHandler(svc, log)

	r := chi.NewRouter()
	r.Get("/api/v1/search", h.Search)
	return r
}

func TestSearch_Success(t *testing.T) {
	router := newSearchRouter(seedStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?brands=brand-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp testResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Nil(t, resp.Error)

	var result service.SearchResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	require.Len(t, result.Products, 1)
	assert.Equal(t, "cotton-shirt", result.Products[0].Slug)
	assert.Equal(t, 1, result.Pagination.TotalProducts)
	assert.Equal(t, []domain.BrandCount{{BrandID: "brand-1", Count: 1}}, result.BrandSummary)
}

func TestSearch_MalformedParamsFailOpen(t *testing.T) {
	router := newSearchRouter(seedStore())

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/search?minPrice=abc&page=x&filterGroups=%7Bbroken", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp testResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Nil(t, resp.Error)
}

type brokenStore struct {
	*catalog.Store
}

func (b *brokenStore) FindPage(context.Context, search.FilterSpec, ...search.CompileOption) ([]domain.Product, int, error) {
	return nil, 0, errors.New("connection refused")
}

func TestSearch_StoreDownReturns503(t *testing.T) {
	store := seedStore()
	log := logger.NewWithWriter("test", "error", io.Discard)
	svc := service.NewSearchService(&brokenStore{store}, store, nil, 0, log)
	h := NewSearchHandler(svc, log)

	r := chi.NewRouter()
	r.Get("/api/v1/search", h.Search)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp testResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SEARCH_UNAVAILABLE", resp.Error.Code)
}

// --- Feedback endpoints ---

type memFeedbackRepo struct {
	entries []domain.Feedback
}

func (m *memFeedbackRepo) Create(_ context.Context, f *domain.Feedback) error {
	m.entries = append(m.entries, *f)
	return nil
}

func (m *memFeedbackRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, e := range m.entries {
		if e.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memFeedbackRepo) List(_ context.Context, _ repository.FeedbackFilter) ([]domain.Feedback, int, error) {
	return m.entries, len(m.entries), nil
}

func (m *memFeedbackRepo) UpdateStatus(_ context.Context, id, status string) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries[i].Status = status
			return nil
		}
	}
	return apperrors.NotFound("feedback", id)
}

func newFeedbackRouter(repo *memFeedbackRepo) http.Handler {
	log := logger.NewWithWriter("test", "error", io.Discard)
	svc := service.NewFeedbackService(repo, nil, nil, log)
	h := NewFeedbackHandler(svc, log)

	r := chi.NewRouter()
	r.Post("/api/v1/feedback", h.SubmitFeedback)
	r.Get("/api/v1/feedback", h.ListFeedback)
	r.Patch("/api/v1/feedback/{id}/status", h.UpdateFeedbackStatus)
	return r
}

func TestSubmitFeedback_Success(t *testing.T) {
	router := newFeedbackRouter(&memFeedbackRepo{})

	body := `{
		"name": "Jordan",
		"email": "jordan@example.com",
		"mobile_number": "0100000000",
		"invoice_number": "INV-42",
		"message": "Great quality",
		"city": "Cairo"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp testResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Nil(t, resp.Error)

	var fb domain.Feedback
	require.NoError(t, json.Unmarshal(resp.Data, &fb))
	assert.NotEmpty(t, fb.ID)
	assert.Equal(t, domain.FeedbackStatusPending, fb.Status)
}

func TestSubmitFeedback_ValidationError(t *testing.T) {
	router := newFeedbackRouter(&memFeedbackRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback",
		strings.NewReader(`{"name": "", "email": "not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitFeedback_DuplicateEmail(t *testing.T) {
	repo := &memFeedbackRepo{entries: []domain.Feedback{{ID: "fb-1", Email: "jordan@example.com"}}}
	router := newFeedbackRouter(repo)

	body := `{
		"name": "Jordan",
		"email": "jordan@example.com",
		"mobile_number": "0100000000",
		"invoice_number": "INV-42",
		"message": "Again"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateFeedbackStatus_RejectsUnknownStatus(t *testing.T) {
	repo := &memFeedbackRepo{entries: []domain.Feedback{{ID: "fb-1"}}}
	router := newFeedbackRouter(repo)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/feedback/fb-1/status",
		strings.NewReader(`{"status": "archived"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListFeedback_InvalidPageParam(t *testing.T) {
	router := newFeedbackRouter(&memFeedbackRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feedback?page=zero", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
