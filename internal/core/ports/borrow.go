package ports

import (
	"context"
	"time"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

// ListBorrowsFilter carries query parameters for listing borrows.
// UserID is enforced by the service layer for non-admin callers.
type ListBorrowsFilter struct {
	UserID     int64 // 0 = no filter (admin); non-zero = scoped to user
	ActiveOnly bool
	Page       int // 1-based
	Limit      int // capped at 100 by the service
}

// ActiveBorrowRow is the joined view used by the admin dashboard.
type ActiveBorrowRow struct {
	BorrowID   int64
	Username   string
	ItemName   string
	LockerNum  string
	BorrowedAt time.Time
}

// BorrowRepository defines persistence for borrow records. Borrow and Return
// are the two multi-row operations in the system; implementations must apply
// all of their sub-steps in a single transaction.
type BorrowRepository interface {
	// Borrow verifies the item has quantity and the locker is available, then
	// atomically decrements the quantity, marks the locker occupied, and
	// inserts the borrow row. Conflicts surface as domain.ErrItemUnavailable
	// or domain.ErrLockerUnavailable.
	Borrow(ctx context.Context, userID, itemID, lockerID int64, at time.Time) (*domain.Borrow, error)
	// Return atomically stamps the return timestamp, restores the item
	// quantity, and frees the locker. A second return yields
	// domain.ErrAlreadyReturned.
	Return(ctx context.Context, borrowID int64, at time.Time) (*domain.Borrow, error)
	FindByID(ctx context.Context, id int64) (*domain.Borrow, error)
	List(ctx context.Context, filter ListBorrowsFilter) ([]*domain.Borrow, int64, error)
	ListActive(ctx context.Context) ([]*ActiveBorrowRow, error)
	CountActive(ctx context.Context) (int64, error)
}

// BorrowInput carries the parameters for a borrow request.
type BorrowInput struct {
	UserID   int64
	ItemID   int64
	LockerID int64
}

// ListBorrowsResult is returned by the list endpoint.
type ListBorrowsResult struct {
	Items      []*domain.Borrow
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BorrowService defines borrow/return use-cases.
type BorrowService interface {
	Borrow(ctx context.Context, input BorrowInput) (*domain.Borrow, error)
	Return(ctx context.Context, borrowID int64, caller *domain.User) (*domain.Borrow, error)
	Get(ctx context.Context, id int64, caller *domain.User) (*domain.Borrow, error)
	List(ctx context.Context, filter ListBorrowsFilter) (*ListBorrowsResult, error)
}
