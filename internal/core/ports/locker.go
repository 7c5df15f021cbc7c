package ports

import (
	"context"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

// LockerRepository defines persistence operations for lockers.
type LockerRepository interface {
	Create(ctx context.Context, locker *domain.Locker) (*domain.Locker, error)
	FindByID(ctx context.Context, id int64) (*domain.Locker, error)
	List(ctx context.Context) ([]*domain.Locker, error)
	Update(ctx context.Context, locker *domain.Locker) error
	// SetStatus transitions the locker only when its current status matches
	// from, returning domain.ErrLockerUnavailable otherwise.
	SetStatus(ctx context.Context, id int64, from, to domain.LockerStatus) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[domain.LockerStatus]int64, error)
}

// CreateLockerInput carries locker creation fields.
type CreateLockerInput struct {
	Number   string
	Location string
}

// UpdateLockerInput carries a partial update; nil fields are left untouched.
type UpdateLockerInput struct {
	Number   *string
	Location *string
	Status   *domain.LockerStatus
}

// LockerService defines locker use-cases including the open/close actions
// issued from the locker terminal.
type LockerService interface {
	List(ctx context.Context) ([]*domain.Locker, error)
	Get(ctx context.Context, id int64) (*domain.Locker, error)
	Create(ctx context.Context, input CreateLockerInput) (*domain.Locker, error)
	Update(ctx context.Context, id int64, input UpdateLockerInput) (*domain.Locker, error)
	Delete(ctx context.Context, id int64) error
	Open(ctx context.Context, id int64, actor *domain.User) (*domain.Locker, error)
	Close(ctx context.Context, id int64, actor *domain.User) (*domain.Locker, error)
}
