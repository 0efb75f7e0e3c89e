package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLeaveSubmitted NotificationType = "leave_request.submitted"
	TypeLeaveResolved  NotificationType = "leave_request.resolved"
)

// Notification is a best-effort message pushed to connected clients of one user.
type Notification struct {
	RecipientID string                 `json:"recipient_id"`
	Type        NotificationType       `json:"type"`
	Title       string                 `json:"title"`
	Message     string                 `json:"message"`
	Data        map[string]interface{} `json:"data,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}
