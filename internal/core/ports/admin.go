package ports

import (
	"context"
	"io"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

// StatsResult is the admin dashboard summary.
type StatsResult struct {
	Users           int64
	Items           int64
	Lockers         int64
	LockersByStatus map[domain.LockerStatus]int64
	ActiveBorrows   int64
}

// Export kinds accepted by ExportCSV.
const (
	ExportLogs    = "logs"
	ExportUsers   = "users"
	ExportBorrows = "borrows"
)

// AdminService serves the admin dashboard and export endpoints.
type AdminService interface {
	Stats(ctx context.Context) (*StatsResult, error)
	ActiveBorrows(ctx context.Context) ([]*ActiveBorrowRow, error)
	RecentActivity(ctx context.Context, limit int) ([]*domain.ActivityEntry, error)
	// ExportCSV writes the named dataset as CSV. Unknown kinds return an error.
	ExportCSV(ctx context.Context, kind string, w io.Writer) error
}
