package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

// ItemService implements inventory item use-cases.
type ItemService struct {
	items ports.ItemRepository
	log   zerolog.Logger
}

func NewItemService(items ports.ItemRepository, log zerolog.Logger) *ItemService {
	return &ItemService{items: items, log: log}
}

func (s *ItemService) List(ctx context.Context) ([]*domain.Item, error) {
	return s.items.List(ctx)
}

func (s *ItemService) Get(ctx context.Context, id int64) (*domain.Item, error) {
	return s.items.FindByID(ctx, id)
}

func (s *ItemService) Create(ctx context.Context, input ports.CreateItemInput) (*domain.Item, error) {
	now := time.Now().UTC()
	item := &domain.Item{
		Name:        input.Name,
		Description: input.Description,
		Quantity:    input.Quantity,
		Category:    input.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("name", created.Name).Int64("id", created.ID).Msg("item created")
	return created, nil
}

func (s *ItemService) Update(ctx context.Context, id int64, input ports.UpdateItemInput) (*domain.Item, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, id int64) error {
	return s.items.Delete(ctx, id)
}
