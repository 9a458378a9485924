package models

import "time"

// Activity log event types.
const (
	ActivityUserSignup         = "user_signup"
	ActivityOrderCreated       = "order_created"
	ActivityOrderStatusChanged = "order_status_changed"
)

// ActivityLog is the model for the append-only 'activity_logs' table.
type ActivityLog struct {
	ID        int64     `json:"id" db:"id"`
	Type      string    `json:"type" db:"type"`
	UserID    int64     `json:"userId" db:"user_id"`
	UserEmail string    `json:"userEmail" db:"user_email"`
	Details   string    `json:"details" db:"details"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
