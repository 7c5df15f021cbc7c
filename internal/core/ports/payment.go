package ports

import (
	"context"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	FindByID(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context, userID int64) ([]*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
	Delete(ctx context.Context, id int64) error
}

// CreatePaymentInput carries payment creation fields.
type CreatePaymentInput struct {
	UserID   int64
	BorrowID *int64
	Amount   float64
	Currency string
}

// UpdatePaymentInput carries a partial update; nil fields are left untouched.
type UpdatePaymentInput struct {
	Amount *float64
	Status *domain.PaymentStatus
}

// PaymentService defines payment use-cases. Non-admin callers only see their
// own payments; creation and mutation are admin operations.
type PaymentService interface {
	List(ctx context.Context, caller *domain.User) ([]*domain.Payment, error)
	Get(ctx context.Context, id int64, caller *domain.User) (*domain.Payment, error)
	Create(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error)
	Update(ctx context.Context, id int64, input UpdatePaymentInput) (*domain.Payment, error)
	Delete(ctx context.Context, id int64) error
}
