package domain

import "time"

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationFulfilled ReservationStatus = "fulfilled"
	ReservationCancelled ReservationStatus = "cancelled"
)

// ValidReservationStatus reports whether s names a known reservation status.
func ValidReservationStatus(s ReservationStatus) bool {
	switch s {
	case ReservationPending, ReservationFulfilled, ReservationCancelled:
		return true
	}
	return false
}

// Reservation holds an item for a user ahead of pickup. LockerID is nil until
// a compartment is assigned.
type Reservation struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	ItemID     int64             `json:"item_id"`
	LockerID   *int64            `json:"locker_id,omitempty"`
	Status     ReservationStatus `json:"status"`
	ReservedAt time.Time         `json:"reserved_at"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
