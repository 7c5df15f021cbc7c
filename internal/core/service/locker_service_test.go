package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

type stubLockerRepo struct {
	lockers map[int64]*domain.Locker
	nextID  int64
}

func newStubLockerRepo() *stubLockerRepo {
	return &stubLockerRepo{lockers: make(map[int64]*domain.Locker), nextID: 1}
}

func cloneLocker(l *domain.Locker) *domain.Locker {
	if l == nil {
		return nil
	}
	clone := *l
	return &clone
}

func (r *stubLockerRepo) Create(_ context.Context, locker *domain.Locker) (*domain.Locker, error) {
	for _, existing := range r.lockers {
		if existing.Number == locker.Number {
			return nil, domain.ErrLockerExists
		}
	}
	copy := cloneLocker(locker)
	copy.ID = r.nextID
	r.nextID++
	r.lockers[copy.ID] = cloneLocker(copy)
	return copy, nil
}

func (r *stubLockerRepo) FindByID(_ context.Context, id int64) (*domain.Locker, error) {
	if l, ok := r.lockers[id]; ok {
		return cloneLocker(l), nil
	}
	return nil, domain.ErrLockerNotFound
}

func (r *stubLockerRepo) List(_ context.Context) ([]*domain.Locker, error) {
	out := make([]*domain.Locker, 0, len(r.lockers))
	for _, l := range r.lockers {
		out = append(out, cloneLocker(l))
	}
	return out, nil
}

func (r *stubLockerRepo) Update(_ context.Context, locker *domain.Locker) error {
	if _, ok := r.lockers[locker.ID]; !ok {
		return domain.ErrLockerNotFound
	}
	r.lockers[locker.ID] = cloneLocker(locker)
	return nil
}

func (r *stubLockerRepo) SetStatus(_ context.Context, id int64, from, to domain.LockerStatus) error {
	l, ok := r.lockers[id]
	if !ok {
		return domain.ErrLockerNotFound
	}
	if l.Status != from {
		return domain.ErrLockerUnavailable
	}
	l.Status = to
	l.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubLockerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.lockers[id]; !ok {
		return domain.ErrLockerNotFound
	}
	delete(r.lockers, id)
	return nil
}

func (r *stubLockerRepo) CountByStatus(_ context.Context) (map[domain.LockerStatus]int64, error) {
	out := map[domain.LockerStatus]int64{}
	for _, l := range r.lockers {
		out[l.Status]++
	}
	return out, nil
}

func newLockerFixture(t *testing.T) (*LockerService, *domain.Locker) {
	t.Helper()
	repo := newStubLockerRepo()
	svc := NewLockerService(repo, nil, zerolog.Nop())
	locker, err := svc.Create(context.Background(), ports.CreateLockerInput{Number: "A-01", Location: "Main hall"})
	if err != nil {
		t.Fatalf("create locker: %v", err)
	}
	return svc, locker
}

func TestLockerService_OpenClose(t *testing.T) {
	svc, locker := newLockerFixture(t)
	actor := &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser}

	opened, err := svc.Open(context.Background(), locker.ID, actor)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if opened.Status != domain.LockerOccupied {
		t.Fatalf("expected occupied, got %s", opened.Status)
	}

	// A second open on an occupied locker is a conflict.
	if _, err := svc.Open(context.Background(), locker.ID, actor); !errors.Is(err, domain.ErrLockerUnavailable) {
		t.Fatalf("expected ErrLockerUnavailable, got %v", err)
	}

	closed, err := svc.Close(context.Background(), locker.ID, actor)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status != domain.LockerAvailable {
		t.Fatalf("expected available, got %s", closed.Status)
	}
}

func TestLockerService_UpdateStatusTransitions(t *testing.T) {
	svc, locker := newLockerFixture(t)

	maintenance := domain.LockerMaintenance
	updated, err := svc.Update(context.Background(), locker.ID, ports.UpdateLockerInput{Status: &maintenance})
	if err != nil {
		t.Fatalf("to maintenance: %v", err)
	}
	if updated.Status != domain.LockerMaintenance {
		t.Fatalf("expected maintenance, got %s", updated.Status)
	}

	// maintenance → occupied is not a legal transition.
	occupied := domain.LockerOccupied
	if _, err := svc.Update(context.Background(), locker.ID, ports.UpdateLockerInput{Status: &occupied}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	bogus := domain.LockerStatus("broken")
	if _, err := svc.Update(context.Background(), locker.ID, ports.UpdateLockerInput{Status: &bogus}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for unknown status, got %v", err)
	}
}
