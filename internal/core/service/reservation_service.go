package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

// ReservationService implements reservation use-cases. Users operate on
// their own reservations only; admins see everything.
type ReservationService struct {
	reservations ports.ReservationRepository
	items        ports.ItemRepository
	log          zerolog.Logger
}

func NewReservationService(reservations ports.ReservationRepository, items ports.ItemRepository, log zerolog.Logger) *ReservationService {
	return &ReservationService{reservations: reservations, items: items, log: log}
}

func (s *ReservationService) List(ctx context.Context, caller *domain.User) ([]*domain.Reservation, error) {
	userID := caller.ID
	if caller.Role == domain.RoleAdmin {
		userID = 0 // unscoped
	}
	return s.reservations.List(ctx, userID)
}

func (s *ReservationService) Get(ctx context.Context, id int64, caller *domain.User) (*domain.Reservation, error) {
	r, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin && r.UserID != caller.ID {
		return nil, domain.ErrReservationNotFound
	}
	return r, nil
}

func (s *ReservationService) Create(ctx context.Context, input ports.CreateReservationInput) (*domain.Reservation, error) {
	// The item must exist and have stock worth waiting for.
	item, err := s.items.FindByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item.Quantity <= 0 {
		return nil, fmt.Errorf("reserve item %d: %w", item.ID, domain.ErrItemUnavailable)
	}

	now := time.Now().UTC()
	r := &domain.Reservation{
		UserID:     input.UserID,
		ItemID:     input.ItemID,
		LockerID:   input.LockerID,
		Status:     domain.ReservationPending,
		ReservedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	created, err := s.reservations.Create(ctx, r)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", input.UserID).Int64("item_id", input.ItemID).Msg("reservation created")
	return created, nil
}

func (s *ReservationService) Update(ctx context.Context, id int64, input ports.UpdateReservationInput, caller *domain.User) (*domain.Reservation, error) {
	r, err := s.Get(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	if input.LockerID != nil {
		r.LockerID = input.LockerID
	}
	if input.Status != nil {
		if !domain.ValidReservationStatus(*input.Status) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTransition, *input.Status)
		}
		r.Status = *input.Status
	}
	r.UpdatedAt = time.Now().UTC()

	if err := s.reservations.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReservationService) Delete(ctx context.Context, id int64, caller *domain.User) error {
	if _, err := s.Get(ctx, id, caller); err != nil {
		return err
	}
	return s.reservations.Delete(ctx, id)
}
