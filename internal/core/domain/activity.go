package domain

import "time"

// Activity action names recorded in the audit trail.
const (
	ActionLogin       = "login"
	ActionLogout      = "logout"
	ActionBorrow      = "borrow"
	ActionReturn      = "return"
	ActionLockerOpen  = "locker_open"
	ActionLockerClose = "locker_close"
)

// ActivityEntry is an append-only audit record. Entries live in the audit
// store and back the admin recent-activity feed and log export.
type ActivityEntry struct {
	ID        string    `json:"id,omitempty"`
	Actor     string    `json:"actor"`
	ActorID   int64     `json:"actor_id"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	SubjectID int64     `json:"subject_id,omitempty"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
