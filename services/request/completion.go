package request

import (
	"context"
	"time"

	"github.com/EternalGerms/trampoaqui-sub001/models"

	"go.uber.org/zap"
)

// ConfirmCompletion records the calling party's completion confirmation for
// a non-daily request. The first confirmation moves the request to
// pending_completion; the second commits the terminal transition. Both
// confirmations survive concurrent calls because each one is a
// version-guarded read-modify-write, and the terminal transition fires in
// whichever write observes both timestamps.
func (s *DefaultRequestService) ConfirmCompletion(ctx context.Context, requestID, callerID string) (*models.ServiceRequestView, error) {
	var completedNow bool
	req, err := s.mutate(ctx, requestID, func(req *models.ServiceRequest) error {
		completedNow = false
		party, err := requireParty(req, callerID)
		if err != nil {
			return err
		}
		if req.IsDaily() {
			return NewRequestError(CodeInvalidState,
				"daily requests are completed day by day, not with a single confirmation")
		}
		paid := req.Status == models.StatusAccepted && req.PaymentCompletedAt != nil
		if req.Status != models.StatusPendingCompletion && !paid {
			return NewRequestError(CodeInvalidState,
				"completion can only be confirmed after payment, current status %q", req.Status)
		}

		now := time.Now().UTC()
		switch party {
		case "client":
			if req.ClientCompletedAt != nil {
				return NewRequestError(CodeAlreadyConfirmed, "client already confirmed completion")
			}
			req.ClientCompletedAt = &now
		case "provider":
			if req.ProviderCompletedAt != nil {
				return NewRequestError(CodeAlreadyConfirmed, "provider already confirmed completion")
			}
			req.ProviderCompletedAt = &now
		}

		if req.ClientCompletedAt != nil && req.ProviderCompletedAt != nil {
			req.Status = models.StatusCompleted
			completedNow = true
		} else {
			req.Status = models.StatusPendingCompletion
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	counterparty := req.CounterpartyOf(callerID)
	if completedNow {
		s.logger().Info("service request completed", zap.String("requestId", req.ID))
		s.notify(ctx, req.ClientID, req.ID, models.NotifyRequestCompleted,
			"Service completed", "Both parties confirmed completion of "+req.Title+".")
		s.notify(ctx, req.ProviderID, req.ID, models.NotifyRequestCompleted,
			"Service completed", "Both parties confirmed completion of "+req.Title+".")
	} else if counterparty != "" {
		s.notify(ctx, counterparty, req.ID, models.NotifyCompletionAsked,
			"Completion pending", "The other party marked "+req.Title+" as complete. Confirm to close it.")
	}
	return BuildView(req), nil
}
