package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lockerhub/locker-system/internal/api/metrics"
	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

const maxListLimit = 100

// BorrowService orchestrates the borrow/return transaction. The atomicity of
// the four sub-steps (quantity check, borrow row, quantity decrement, locker
// occupation) lives in the repository; this layer handles scoping, audit,
// and metrics.
type BorrowService struct {
	borrows  ports.BorrowRepository
	recorder ports.ActivityRecorder
	log      zerolog.Logger
}

func NewBorrowService(borrows ports.BorrowRepository, recorder ports.ActivityRecorder, log zerolog.Logger) *BorrowService {
	return &BorrowService{borrows: borrows, recorder: recorder, log: log}
}

func (s *BorrowService) Borrow(ctx context.Context, input ports.BorrowInput) (*domain.Borrow, error) {
	borrow, err := s.borrows.Borrow(ctx, input.UserID, input.ItemID, input.LockerID, time.Now().UTC())
	if err != nil {
		metrics.BorrowConflictsTotal.WithLabelValues(conflictReason(err)).Inc()
		return nil, fmt.Errorf("borrow: %w", err)
	}

	metrics.BorrowsCreatedTotal.Inc()
	s.record(domain.ActivityEntry{
		ActorID:   input.UserID,
		Action:    domain.ActionBorrow,
		Subject:   "item",
		SubjectID: input.ItemID,
		Details:   fmt.Sprintf("locker %d", input.LockerID),
		Timestamp: borrow.BorrowedAt,
	})
	s.log.Info().
		Int64("user_id", input.UserID).
		Int64("item_id", input.ItemID).
		Int64("locker_id", input.LockerID).
		Int64("borrow_id", borrow.ID).
		Msg("borrow created")

	return borrow, nil
}

// Return reverses a borrow. Non-admin callers may only return their own
// borrows.
func (s *BorrowService) Return(ctx context.Context, borrowID int64, caller *domain.User) (*domain.Borrow, error) {
	existing, err := s.borrows.FindByID(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin && existing.UserID != caller.ID {
		return nil, domain.ErrForbidden
	}

	borrow, err := s.borrows.Return(ctx, borrowID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("return borrow %d: %w", borrowID, err)
	}

	metrics.ReturnsTotal.Inc()
	s.record(domain.ActivityEntry{
		Actor:     caller.Username,
		ActorID:   caller.ID,
		Action:    domain.ActionReturn,
		Subject:   "item",
		SubjectID: borrow.ItemID,
		Details:   fmt.Sprintf("borrow %d", borrow.ID),
		Timestamp: *borrow.ReturnedAt,
	})
	s.log.Info().Int64("borrow_id", borrow.ID).Msg("borrow returned")

	return borrow, nil
}

// Get returns a single borrow. Non-admin callers only see their own.
func (s *BorrowService) Get(ctx context.Context, id int64, caller *domain.User) (*domain.Borrow, error) {
	borrow, err := s.borrows.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin && borrow.UserID != caller.ID {
		// Report not-found rather than forbidden so borrow ids are not probeable.
		return nil, domain.ErrBorrowNotFound
	}
	return borrow, nil
}

func (s *BorrowService) List(ctx context.Context, filter ports.ListBorrowsFilter) (*ports.ListBorrowsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	items, total, err := s.borrows.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListBorrowsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *BorrowService) record(entry domain.ActivityEntry) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(entry)
}

func conflictReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrItemUnavailable):
		return "item_unavailable"
	case errors.Is(err, domain.ErrLockerUnavailable):
		return "locker_unavailable"
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrLockerNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	}
	return "other"
}
