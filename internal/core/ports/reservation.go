package ports

import (
	"context"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

// ReservationRepository defines persistence operations for reservations.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	FindByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, userID int64) ([]*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	Delete(ctx context.Context, id int64) error
}

// CreateReservationInput carries reservation creation fields.
type CreateReservationInput struct {
	UserID   int64
	ItemID   int64
	LockerID *int64
}

// UpdateReservationInput carries a partial update; nil fields are left untouched.
type UpdateReservationInput struct {
	LockerID *int64
	Status   *domain.ReservationStatus
}

// ReservationService defines reservation use-cases. Non-admin callers only
// see and mutate their own reservations.
type ReservationService interface {
	List(ctx context.Context, caller *domain.User) ([]*domain.Reservation, error)
	Get(ctx context.Context, id int64, caller *domain.User) (*domain.Reservation, error)
	Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	Update(ctx context.Context, id int64, input UpdateReservationInput, caller *domain.User) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64, caller *domain.User) error
}
