package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

// PaymentService implements payment use-cases. Users see their own payments;
// creation and status changes are admin operations enforced at the router.
type PaymentService struct {
	payments ports.PaymentRepository
	log      zerolog.Logger
}

func NewPaymentService(payments ports.PaymentRepository, log zerolog.Logger) *PaymentService {
	return &PaymentService{payments: payments, log: log}
}

func (s *PaymentService) List(ctx context.Context, caller *domain.User) ([]*domain.Payment, error) {
	userID := caller.ID
	if caller.Role == domain.RoleAdmin {
		userID = 0
	}
	return s.payments.List(ctx, userID)
}

func (s *PaymentService) Get(ctx context.Context, id int64, caller *domain.User) (*domain.Payment, error) {
	p, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin && p.UserID != caller.ID {
		return nil, domain.ErrPaymentNotFound
	}
	return p, nil
}

func (s *PaymentService) Create(ctx context.Context, input ports.CreatePaymentInput) (*domain.Payment, error) {
	now := time.Now().UTC()
	p := &domain.Payment{
		UserID:    input.UserID,
		BorrowID:  input.BorrowID,
		Amount:    input.Amount,
		Currency:  input.Currency,
		Status:    domain.PaymentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.payments.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", input.UserID).Float64("amount", input.Amount).Msg("payment created")
	return created, nil
}

func (s *PaymentService) Update(ctx context.Context, id int64, input ports.UpdatePaymentInput) (*domain.Payment, error) {
	p, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		p.Amount = *input.Amount
	}
	if input.Status != nil {
		if !domain.ValidPaymentStatus(*input.Status) {
			return nil, domain.ErrInvalidTransition
		}
		p.Status = *input.Status
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	return s.payments.Delete(ctx, id)
}
