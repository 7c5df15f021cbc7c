package domain

import "time"

// LockerStatus represents the lifecycle state of a locker.
type LockerStatus string

const (
	LockerAvailable   LockerStatus = "available"
	LockerOccupied    LockerStatus = "occupied"
	LockerMaintenance LockerStatus = "maintenance"
)

// validLockerTransitions defines the allowed state machine transitions.
var validLockerTransitions = map[LockerStatus][]LockerStatus{
	LockerAvailable:   {LockerOccupied, LockerMaintenance},
	LockerOccupied:    {LockerAvailable, LockerMaintenance},
	LockerMaintenance: {LockerAvailable},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s LockerStatus) CanTransitionTo(next LockerStatus) bool {
	for _, allowed := range validLockerTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidLockerStatus reports whether s names a known locker status.
func ValidLockerStatus(s LockerStatus) bool {
	switch s {
	case LockerAvailable, LockerOccupied, LockerMaintenance:
		return true
	}
	return false
}

// Locker is a physical compartment with a status driven by open/close and
// borrow/return actions.
type Locker struct {
	ID        int64        `json:"id"`
	Number    string       `json:"number"`
	Location  string       `json:"location,omitempty"`
	Status    LockerStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
