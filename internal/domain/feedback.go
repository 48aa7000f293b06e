package domain

import "time"

// Feedback status constants, advanced by the back office.
const (
	FeedbackStatusPending  = "pending"
	FeedbackStatusReviewed = "reviewed"
	FeedbackStatusResolved = "resolved"
)

// Feedback is a customer feedback submission tied to a purchase.
type Feedback struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	MobileNumber  string    `json:"mobile_number"`
	InvoiceNumber string    `json:"invoice_number"`
	Products      string    `json:"products"`
	Message       string    `json:"message"`
	City          string    `json:"city"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidFeedbackStatus reports whether s is a recognized feedback status.
func ValidFeedbackStatus(s string) bool {
	switch s {
	case FeedbackStatusPending, FeedbackStatusReviewed, FeedbackStatusResolved:
		return true
	}
	return false
}
