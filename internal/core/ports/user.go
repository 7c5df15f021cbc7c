package ports

import (
	"context"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByRFIDTag(ctx context.Context, tag string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// Delete removes a user. Returns domain.ErrRecordInUse when borrow rows
	// reference the user.
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// CreateUserInput carries admin-side user creation fields.
type CreateUserInput struct {
	Username string
	Password string
	Role     string
	RFIDTag  string
}

// UpdateUserInput carries a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Username *string
	Password *string
	Role     *string
	RFIDTag  *string
}

// UserService defines admin user management use-cases.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
