package ports

import (
	"context"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

// ActivityRepository persists audit entries and serves the admin feeds.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityEntry) error
	// Recent returns the newest entries, most recent first.
	Recent(ctx context.Context, limit int) ([]*domain.ActivityEntry, error)
	// All streams every entry oldest first, for export.
	All(ctx context.Context) ([]*domain.ActivityEntry, error)
}

// ActivityRecorder accepts audit entries off the request path. Recording is
// best-effort; a full queue or a down audit store never fails the request
// that produced the entry.
type ActivityRecorder interface {
	Record(entry domain.ActivityEntry)
}
