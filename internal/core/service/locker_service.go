package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

// LockerService implements locker CRUD plus the open/close terminal actions.
type LockerService struct {
	lockers  ports.LockerRepository
	recorder ports.ActivityRecorder
	log      zerolog.Logger
}

func NewLockerService(lockers ports.LockerRepository, recorder ports.ActivityRecorder, log zerolog.Logger) *LockerService {
	return &LockerService{lockers: lockers, recorder: recorder, log: log}
}

func (s *LockerService) List(ctx context.Context) ([]*domain.Locker, error) {
	return s.lockers.List(ctx)
}

func (s *LockerService) Get(ctx context.Context, id int64) (*domain.Locker, error) {
	return s.lockers.FindByID(ctx, id)
}

func (s *LockerService) Create(ctx context.Context, input ports.CreateLockerInput) (*domain.Locker, error) {
	now := time.Now().UTC()
	locker := &domain.Locker{
		Number:    input.Number,
		Location:  input.Location,
		Status:    domain.LockerAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.lockers.Create(ctx, locker)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("number", created.Number).Int64("id", created.ID).Msg("locker created")
	return created, nil
}

func (s *LockerService) Update(ctx context.Context, id int64, input ports.UpdateLockerInput) (*domain.Locker, error) {
	locker, err := s.lockers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Number != nil {
		locker.Number = *input.Number
	}
	if input.Location != nil {
		locker.Location = *input.Location
	}
	if input.Status != nil && *input.Status != locker.Status {
		if !domain.ValidLockerStatus(*input.Status) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTransition, *input.Status)
		}
		if !locker.Status.CanTransitionTo(*input.Status) {
			return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, locker.Status, *input.Status)
		}
		locker.Status = *input.Status
	}
	locker.UpdatedAt = time.Now().UTC()

	if err := s.lockers.Update(ctx, locker); err != nil {
		return nil, err
	}
	return locker, nil
}

func (s *LockerService) Delete(ctx context.Context, id int64) error {
	return s.lockers.Delete(ctx, id)
}

// Open marks the locker occupied. Opening an occupied or maintenance locker
// is a conflict; the door stays shut.
func (s *LockerService) Open(ctx context.Context, id int64, actor *domain.User) (*domain.Locker, error) {
	return s.flip(ctx, id, actor, domain.LockerAvailable, domain.LockerOccupied, domain.ActionLockerOpen)
}

// Close releases an occupied locker back to available.
func (s *LockerService) Close(ctx context.Context, id int64, actor *domain.User) (*domain.Locker, error) {
	return s.flip(ctx, id, actor, domain.LockerOccupied, domain.LockerAvailable, domain.ActionLockerClose)
}

func (s *LockerService) flip(ctx context.Context, id int64, actor *domain.User, from, to domain.LockerStatus, action string) (*domain.Locker, error) {
	if err := s.lockers.SetStatus(ctx, id, from, to); err != nil {
		return nil, err
	}

	locker, err := s.lockers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.Record(domain.ActivityEntry{
			Actor:     actor.Username,
			ActorID:   actor.ID,
			Action:    action,
			Subject:   "locker",
			SubjectID: id,
			Details:   locker.Number,
			Timestamp: time.Now().UTC(),
		})
	}
	s.log.Info().Int64("locker_id", id).Str("action", action).Msg("locker state changed")

	return locker, nil
}
