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

type stubBorrowRepo struct {
	borrows   map[int64]*domain.Borrow
	nextID    int64
	borrowErr error
}

func newStubBorrowRepo() *stubBorrowRepo {
	return &stubBorrowRepo{borrows: make(map[int64]*domain.Borrow), nextID: 1}
}

func cloneBorrow(b *domain.Borrow) *domain.Borrow {
	if b == nil {
		return nil
	}
	clone := *b
	if b.ReturnedAt != nil {
		at := *b.ReturnedAt
		clone.ReturnedAt = &at
	}
	return &clone
}

func (r *stubBorrowRepo) Borrow(_ context.Context, userID, itemID, lockerID int64, at time.Time) (*domain.Borrow, error) {
	if r.borrowErr != nil {
		return nil, r.borrowErr
	}
	b := &domain.Borrow{
		ID:         r.nextID,
		UserID:     userID,
		ItemID:     itemID,
		LockerID:   lockerID,
		BorrowedAt: at,
	}
	r.nextID++
	r.borrows[b.ID] = cloneBorrow(b)
	return b, nil
}

func (r *stubBorrowRepo) Return(_ context.Context, borrowID int64, at time.Time) (*domain.Borrow, error) {
	b, ok := r.borrows[borrowID]
	if !ok {
		return nil, domain.ErrBorrowNotFound
	}
	if b.ReturnedAt != nil {
		return nil, domain.ErrAlreadyReturned
	}
	b.ReturnedAt = &at
	return cloneBorrow(b), nil
}

func (r *stubBorrowRepo) FindByID(_ context.Context, id int64) (*domain.Borrow, error) {
	if b, ok := r.borrows[id]; ok {
		return cloneBorrow(b), nil
	}
	return nil, domain.ErrBorrowNotFound
}

func (r *stubBorrowRepo) List(_ context.Context, filter ports.ListBorrowsFilter) ([]*domain.Borrow, int64, error) {
	var out []*domain.Borrow
	for _, b := range r.borrows {
		if filter.UserID != 0 && b.UserID != filter.UserID {
			continue
		}
		if filter.ActiveOnly && b.ReturnedAt != nil {
			continue
		}
		out = append(out, cloneBorrow(b))
	}
	return out, int64(len(out)), nil
}

func (r *stubBorrowRepo) ListActive(_ context.Context) ([]*ports.ActiveBorrowRow, error) {
	var out []*ports.ActiveBorrowRow
	for _, b := range r.borrows {
		if b.ReturnedAt == nil {
			out = append(out, &ports.ActiveBorrowRow{BorrowID: b.ID, BorrowedAt: b.BorrowedAt})
		}
	}
	return out, nil
}

func (r *stubBorrowRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, b := range r.borrows {
		if b.ReturnedAt == nil {
			n++
		}
	}
	return n, nil
}

type recordedActivity struct {
	entries []domain.ActivityEntry
}

func (r *recordedActivity) Record(entry domain.ActivityEntry) {
	r.entries = append(r.entries, entry)
}

func TestBorrowService_BorrowAndReturn(t *testing.T) {
	repo := newStubBorrowRepo()
	activity := &recordedActivity{}
	svc := NewBorrowService(repo, activity, zerolog.Nop())
	caller := &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser}

	borrow, err := svc.Borrow(context.Background(), ports.BorrowInput{UserID: 7, ItemID: 3, LockerID: 2})
	if err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if !borrow.Active() {
		t.Fatalf("fresh borrow should be active")
	}

	returned, err := svc.Return(context.Background(), borrow.ID, caller)
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if returned.ReturnedAt == nil {
		t.Fatalf("expected returned_at to be set")
	}

	if len(activity.entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(activity.entries))
	}
	if activity.entries[0].Action != domain.ActionBorrow || activity.entries[1].Action != domain.ActionReturn {
		t.Fatalf("unexpected audit actions: %+v", activity.entries)
	}
}

func TestBorrowService_ReturnTwice(t *testing.T) {
	repo := newStubBorrowRepo()
	svc := NewBorrowService(repo, nil, zerolog.Nop())
	caller := &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser}

	borrow, err := svc.Borrow(context.Background(), ports.BorrowInput{UserID: 7, ItemID: 3, LockerID: 2})
	if err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if _, err := svc.Return(context.Background(), borrow.ID, caller); err != nil {
		t.Fatalf("first return: %v", err)
	}
	if _, err := svc.Return(context.Background(), borrow.ID, caller); !errors.Is(err, domain.ErrAlreadyReturned) {
		t.Fatalf("expected ErrAlreadyReturned, got %v", err)
	}
}

func TestBorrowService_ReturnOwnership(t *testing.T) {
	repo := newStubBorrowRepo()
	svc := NewBorrowService(repo, nil, zerolog.Nop())

	borrow, err := svc.Borrow(context.Background(), ports.BorrowInput{UserID: 7, ItemID: 3, LockerID: 2})
	if err != nil {
		t.Fatalf("borrow: %v", err)
	}

	other := &domain.User{ID: 8, Username: "bob", Role: domain.RoleUser}
	if _, err := svc.Return(context.Background(), borrow.ID, other); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	admin := &domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin}
	if _, err := svc.Return(context.Background(), borrow.ID, admin); err != nil {
		t.Fatalf("admin return: %v", err)
	}
}

// A user probing another user's borrow id gets not-found, not forbidden.
func TestBorrowService_GetScoped(t *testing.T) {
	repo := newStubBorrowRepo()
	svc := NewBorrowService(repo, nil, zerolog.Nop())

	borrow, err := svc.Borrow(context.Background(), ports.BorrowInput{UserID: 7, ItemID: 3, LockerID: 2})
	if err != nil {
		t.Fatalf("borrow: %v", err)
	}

	owner := &domain.User{ID: 7, Role: domain.RoleUser}
	if _, err := svc.Get(context.Background(), borrow.ID, owner); err != nil {
		t.Fatalf("owner get: %v", err)
	}

	other := &domain.User{ID: 8, Role: domain.RoleUser}
	if _, err := svc.Get(context.Background(), borrow.ID, other); !errors.Is(err, domain.ErrBorrowNotFound) {
		t.Fatalf("expected ErrBorrowNotFound, got %v", err)
	}

	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}
	if _, err := svc.Get(context.Background(), borrow.ID, admin); err != nil {
		t.Fatalf("admin get: %v", err)
	}
}

func TestBorrowService_BorrowConflict(t *testing.T) {
	repo := newStubBorrowRepo()
	repo.borrowErr = domain.ErrItemUnavailable
	svc := NewBorrowService(repo, nil, zerolog.Nop())

	if _, err := svc.Borrow(context.Background(), ports.BorrowInput{UserID: 7, ItemID: 3, LockerID: 2}); !errors.Is(err, domain.ErrItemUnavailable) {
		t.Fatalf("expected ErrItemUnavailable, got %v", err)
	}
}

func TestBorrowService_ListClampsLimit(t *testing.T) {
	repo := newStubBorrowRepo()
	svc := NewBorrowService(repo, nil, zerolog.Nop())

	result, err := svc.List(context.Background(), ports.ListBorrowsFilter{Page: 0, Limit: 5000})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Page != 1 {
		t.Fatalf("expected page 1, got %d", result.Page)
	}
	if result.Limit != maxListLimit {
		t.Fatalf("expected limit %d, got %d", maxListLimit, result.Limit)
	}
}

func TestConflictReason(t *testing.T) {
	cases := map[error]string{
		domain.ErrItemUnavailable:   "item_unavailable",
		domain.ErrLockerUnavailable: "locker_unavailable",
		domain.ErrItemNotFound:      "not_found",
		domain.ErrLockerNotFound:    "not_found",
		domain.ErrUserNotFound:      "not_found",
		errors.New("boom"):          "other",
	}
	for err, want := range cases {
		if got := conflictReason(err); got != want {
			t.Fatalf("conflictReason(%v) = %q, want %q", err, got, want)
		}
	}
}
