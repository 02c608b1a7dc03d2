package request

import (
	"context"
	"errors"

	directoryRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/directory"
	requestRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/request"
	"github.com/EternalGerms/trampoaqui-sub001/models"
	"github.com/EternalGerms/trampoaqui-sub001/services/notification"
	"github.com/EternalGerms/trampoaqui-sub001/services/tasks"

	"go.uber.org/zap"
)

// DefaultRequestService implements RequestService.
type DefaultRequestService struct {
	Repo      requestRepo.ServiceRequestRepository
	Providers directoryRepo.ProviderDirectory
	Notifier  notification.NotificationService
	Reminders tasks.ReminderScheduler
	Logger    *zap.Logger
}

// errNoChange is returned by a mutation closure when the action is an
// idempotent no-op; the document is returned as-is without a write.
var errNoChange = errors.New("no change")

// mutate runs one atomic read-modify-write against a request. The closure
// revalidates all guards against the freshly loaded document; on a version
// conflict the whole load-apply-write cycle runs once more before a Conflict
// error surfaces to the caller. Concurrent-write conflicts are the only
// transient fault class here; business-rule failures are never retried.
func (s *DefaultRequestService) mutate(ctx context.Context, requestID string, apply func(req *models.ServiceRequest) error) (*models.ServiceRequest, error) {
	const attempts = 2
	for i := 0; i < attempts; i++ {
		req, err := s.Repo.GetByID(ctx, requestID)
		if errors.Is(err, requestRepo.ErrNotFound) {
			return nil, NewRequestError(CodeNotFound, "service request %s not found", requestID)
		}
		if err != nil {
			return nil, err
		}

		if err := apply(req); err != nil {
			if errors.Is(err, errNoChange) {
				return req, nil
			}
			return nil, err
		}

		err = s.Repo.ReplaceVersioned(ctx, req)
		if err == nil {
			return req, nil
		}
		if !errors.Is(err, requestRepo.ErrVersionConflict) {
			return nil, err
		}
		s.logger().Debug("version conflict on service request, retrying",
			zap.String("requestId", requestID), zap.Int("attempt", i+1))
	}
	return nil, NewRequestError(CodeConflict, "service request %s was modified concurrently", requestID)
}

// requireParty resolves the caller to "client" or "provider" on the request.
func requireParty(req *models.ServiceRequest, actorID string) (string, error) {
	party := req.PartyOf(actorID)
	if party == "" {
		return "", NewRequestError(CodeForbidden, "actor %s is not a party to request %s", actorID, req.ID)
	}
	return party, nil
}

func (s *DefaultRequestService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}

// notify stores an in-app notification for the recipient. Notification
// failures are logged, never propagated: the lifecycle write already
// committed.
func (s *DefaultRequestService) notify(ctx context.Context, recipientID, requestID, kind, title, body string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(ctx, recipientID, requestID, kind, title, body); err != nil {
		s.logger().Warn("failed to store notification",
			zap.String("requestId", requestID), zap.String("kind", kind), zap.Error(err))
	}
}

// scheduleReminder enqueues upcoming-service reminders for both parties once
// a request is fully accepted. Best effort.
func (s *DefaultRequestService) scheduleReminder(req *models.ServiceRequest) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleUpcoming(req); err != nil {
		s.logger().Warn("failed to schedule service reminder",
			zap.String("requestId", req.ID), zap.Error(err))
	}
}
