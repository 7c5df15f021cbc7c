package domain

import "time"

// Borrow is an audit entry linking a user, an item, and a locker for the
// duration of custody. Rows are never deleted; a return only stamps
// ReturnedAt.
type Borrow struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	ItemID     int64      `json:"item_id"`
	LockerID   int64      `json:"locker_id"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

// Active reports whether the item is still out.
func (b *Borrow) Active() bool {
	return b.ReturnedAt == nil
}
