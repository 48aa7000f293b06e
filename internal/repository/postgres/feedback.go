package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/voltmart/catalog-service/internal/domain"
	"github.com/voltmart/catalog-service/internal/repository"
	"github.com/voltmart/catalog-service/pkg/database"
	apperrors "github.com/voltmart/catalog-service/pkg/errors"
)

const feedbackColumns = `id, name, email, mobile_number, invoice_number, products, message, city, status, created_at, updated_at`

// FeedbackRepository implements feedback persistence using PostgreSQL.
type FeedbackRepository struct {
	pool database.DBTX
}

// NewFeedbackRepository creates a new PostgreSQL-backed feedback repository.
func NewFeedbackRepository(pool database.DBTX) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

// Create stores a new feedback submission.
func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	query := `
		INSERT INTO feedback (id, name, email, mobile_number, invoice_number, products, message, city, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		f.ID,
		f.Name,
		f.Email,
		f.MobileNumber,
		f.InvoiceNumber,
		f.Products,
		f.Message,
		f.City,
		f.Status,
		f.CreatedAt,
		f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("feedback", "email", f.Email)
		}
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// ExistsByEmail reports whether the email already submitted feedback.
func (r *FeedbackRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM feedback WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check feedback email: %w", err)
	}
	return exists, nil
}

// List returns feedback entries matching the filter with the total count,
// newest first.
func (r *FeedbackRepository) List(ctx context.Context, filter repository.FeedbackFilter) ([]domain.Feedback, int, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM feedback
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		feedbackColumns, whereClause, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var (
		entries    []domain.Feedback
		totalCount int
	)
	for rows.Next() {
		var f domain.Feedback
		if err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Email,
			&f.MobileNumber,
			&f.InvoiceNumber,
			&f.Products,
			&f.Message,
			&f.City,
			&f.Status,
			&f.CreatedAt,
			&f.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan feedback row: %w", err)
		}
		entries = append(entries, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate feedback rows: %w", err)
	}

	if entries == nil {
		entries = []domain.Feedback{}
	}
	return entries, totalCount, nil
}

// UpdateStatus advances a feedback entry's status.
func (r *FeedbackRepository) UpdateStatus(ctx context.Context, id, status string) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE feedback SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update feedback status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("feedback", id)
	}
	return nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique
// constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
