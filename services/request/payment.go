package request

import (
	"context"
	"time"

	"github.com/EternalGerms/trampoaqui-sub001/models"

	"go.uber.org/zap"
)

func validPaymentMethod(method string) bool {
	switch method {
	case models.PaymentPix, models.PaymentCash, models.PaymentBankTransfer, models.PaymentCreditCard:
		return true
	}
	return false
}

// SelectPaymentMethod records how the client intends to pay. Only the client
// selects, and only while payment is the pending step.
func (s *DefaultRequestService) SelectPaymentMethod(ctx context.Context, requestID, callerID, method string) (*models.ServiceRequestView, error) {
	if !validPaymentMethod(method) {
		return nil, NewRequestError(CodeValidation, "unknown payment method %q", method)
	}

	req, err := s.mutate(ctx, requestID, func(req *models.ServiceRequest) error {
		party, err := requireParty(req, callerID)
		if err != nil {
			return err
		}
		if party != "client" {
			return NewRequestError(CodeForbidden, "only the client selects the payment method")
		}
		if req.Status != models.StatusPaymentPending {
			return NewRequestError(CodeInvalidState,
				"payment method can only be selected while payment is pending, current status %q", req.Status)
		}
		req.PaymentMethod = &method
		return nil
	})
	if err != nil {
		return nil, err
	}
	return BuildView(req), nil
}

// CompletePayment consumes the payment processor's opaque completion signal
// and crosses the gate into accepted. Actual payment rails live elsewhere.
func (s *DefaultRequestService) CompletePayment(ctx context.Context, requestID, callerID string) (*models.ServiceRequestView, error) {
	req, err := s.mutate(ctx, requestID, func(req *models.ServiceRequest) error {
		party, err := requireParty(req, callerID)
		if err != nil {
			return err
		}
		if party != "client" {
			return NewRequestError(CodeForbidden, "only the client completes payment")
		}
		if req.Status != models.StatusPaymentPending {
			return NewRequestError(CodeInvalidState,
				"payment can only be completed while payment is pending, current status %q", req.Status)
		}
		if req.PaymentMethod == nil {
			return NewRequestError(CodePaymentNotSelected, "no payment method selected for request %s", req.ID)
		}
		now := time.Now().UTC()
		req.PaymentCompletedAt = &now
		req.Status = models.StatusAccepted
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger().Info("payment completed",
		zap.String("requestId", req.ID), zap.String("method", *req.PaymentMethod))
	s.notify(ctx, req.ProviderID, req.ID, models.NotifyPaymentCompleted,
		"Payment completed", "Payment for "+req.Title+" was completed. The service is confirmed.")
	s.scheduleReminder(req)

	return BuildView(req), nil
}
