package events

import "time"

const RequestNotificationTopic = "lms.request.notification.v1"

const (
	TypeRequestReviewed = "request_reviewed"
	TypeRequestDeleted  = "request_deleted"
)

// RequestNotificationEvent carries everything the mail consumer needs so it
// never has to read the store: the reviewed/deleted request may be gone by the
// time the event is delivered.
type RequestNotificationEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id"`
	RequestNumber  string    `json:"request_number"`
	Kind           string    `json:"kind"`
	Status         string    `json:"status"`
	Comment        string    `json:"comment,omitempty"`
	ReviewerName   string    `json:"reviewer_name"`
	RecipientName  string    `json:"recipient_name"`
	RecipientEmail string    `json:"recipient_email"`
	OccurredAt     time.Time `json:"occurred_at"`
}
