package ports

import (
	"context"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

// ItemRepository defines persistence operations for inventory items.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context) ([]*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// CreateItemInput carries item creation fields.
type CreateItemInput struct {
	Name        string
	Description string
	Quantity    int
	Category    string
}

// UpdateItemInput carries a partial update; nil fields are left untouched.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Quantity    *int
	Category    *string
}

// ItemService defines item use-cases.
type ItemService interface {
	List(ctx context.Context) ([]*domain.Item, error)
	Get(ctx context.Context, id int64) (*domain.Item, error)
	Create(ctx context.Context, input CreateItemInput) (*domain.Item, error)
	Update(ctx context.Context, id int64, input UpdateItemInput) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
}
