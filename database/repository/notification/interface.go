package notificationRepo

import (
	"context"

	"github.com/EternalGerms/trampoaqui-sub001/models"
)

// NotificationRepository defines data access for stored notifications.
type NotificationRepository interface {
	// Create inserts a new notification record.
	Create(ctx context.Context, n *models.Notification) error
	// ListByRecipient returns a recipient's notifications, newest first.
	ListByRecipient(ctx context.Context, recipientID string) ([]models.Notification, error)
	// MarkRead flags a notification as read. Only the recipient may do so.
	MarkRead(ctx context.Context, id, recipientID string) error
}
