package notification

import (
	"context"
	"time"

	notificationRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/notification"
	"github.com/EternalGerms/trampoaqui-sub001/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService stores in-app notifications. Delivery is pull-based:
// clients poll their list, nothing is pushed.
type NotificationService interface {
	Notify(ctx context.Context, recipientID, requestID, kind, title, body string) error
	List(ctx context.Context, recipientID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}

// DefaultNotificationService implements NotificationService.
type DefaultNotificationService struct {
	Repo   notificationRepo.NotificationRepository
	Logger *zap.Logger
}

// Notify inserts one notification document for the recipient.
func (s *DefaultNotificationService) Notify(ctx context.Context, recipientID, requestID, kind, title, body string) error {
	n := &models.Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		RequestID:   requestID,
		Kind:        kind,
		Title:       title,
		Body:        body,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Debug("notification stored",
			zap.String("recipientId", recipientID), zap.String("kind", kind))
	}
	return nil
}

// List returns the recipient's notifications, newest first.
func (s *DefaultNotificationService) List(ctx context.Context, recipientID string) ([]models.Notification, error) {
	return s.Repo.ListByRecipient(ctx, recipientID)
}

// MarkRead flags one notification as read.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, id, recipientID string) error {
	return s.Repo.MarkRead(ctx, id, recipientID)
}
