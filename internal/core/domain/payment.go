package domain

import "time"

// PaymentStatus represents the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// ValidPaymentStatus reports whether s names a known payment status.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// Payment records a charge against a user, optionally tied to a borrow
// (late fees, damage charges).
type Payment struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	BorrowID  *int64        `json:"borrow_id,omitempty"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
