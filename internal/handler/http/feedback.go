package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/voltmart/catalog-service/internal/service"
	"github.com/voltmart/catalog-service/pkg/httputil"
	"github.com/voltmart/catalog-service/pkg/pagination"
	"github.com/voltmart/catalog-service/pkg/validator"
)

// FeedbackHandler handles HTTP requests for feedback endpoints.
type FeedbackHandler struct {
	service *service.FeedbackService
	logger  *slog.Logger
}

// NewFeedbackHandler creates a new feedback HTTP handler.
func NewFeedbackHandler(svc *service.FeedbackService, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: svc,
		logger:  logger,
	}
}

// UpdateFeedbackStatusRequest is the JSON request body for advancing a
// feedback entry's status.
type UpdateFeedbackStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed resolved"`
}

// SubmitFeedback handles POST /api/v1/feedback.
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var input service.SubmitFeedbackInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	feedback, err := h.service.Submit(r.Context(), &input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: feedback})
}

// ListFeedback handles GET /api/v1/feedback for the back office.
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	page, limit := 1, 20
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "page must be a valid positive integer"},
			})
			return
		}
		page = n
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "limit must be a valid integer between 1 and 100"},
			})
			return
		}
		limit = n
	}

	var status *string
	if v := r.URL.Query().Get("status"); v != "" {
		status = &v
	}

	entries, total, err := h.service.List(r.Context(), status, page, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"feedback":   entries,
		"pagination": pagination.NewPage(page, limit, total),
	}})
}

// UpdateFeedbackStatus handles PATCH /api/v1/feedback/{id}/status.
func (h *FeedbackHandler) UpdateFeedbackStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateFeedbackStatusRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{
		"id":     id,
		"status": req.Status,
	}})
}
