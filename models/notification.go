package models

import "time"

// Notification kinds emitted by the request lifecycle.
const (
	NotifyProposalReceived = "proposal_received"
	NotifyProposalAnswered = "proposal_answered"
	NotifyPaymentCompleted = "payment_completed"
	NotifyDayConfirmed     = "day_confirmed"
	NotifyCompletionAsked  = "completion_requested"
	NotifyRequestCompleted = "request_completed"
	NotifyRequestCancelled = "request_cancelled"
	NotifyReviewReceived   = "review_received"
	NotifyUpcomingService  = "upcoming_service"
)

// Notification is a stored in-app notification. Clients poll for these;
// nothing is pushed.
type Notification struct {
	ID          string    `bson:"id" json:"id"`
	RecipientID string    `bson:"recipientId" json:"recipientId"`
	RequestID   string    `bson:"requestId,omitempty" json:"requestId,omitempty"`
	Kind        string    `bson:"kind" json:"kind"`
	Title       string    `bson:"title" json:"title"`
	Body        string    `bson:"body" json:"body"`
	Read        bool      `bson:"read" json:"read"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// ReminderPayload is the asynq task payload for scheduled-date reminders.
type ReminderPayload struct {
	RequestID   string `json:"requestId"`
	RecipientID string `json:"recipientId"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}
