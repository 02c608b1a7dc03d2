package request

import (
	"context"
	"errors"
	"time"

	directoryRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/directory"
	requestRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/request"
	"github.com/EternalGerms/trampoaqui-sub001/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateRequest opens a new engagement. The provider must exist in the
// directory; pricing terms are validated up front so the negotiation engine
// only ever sees well-formed requests.
func (s *DefaultRequestService) CreateRequest(ctx context.Context, clientID string, in models.ServiceRequestInput) (*models.ServiceRequestView, error) {
	if clientID == in.ProviderID {
		return nil, NewRequestError(CodeValidation, "client and provider must be different parties")
	}
	if err := validateTerms(in.PricingType, in.ProposedPrice, in.ProposedHours, in.ProposedDays); err != nil {
		return nil, err
	}
	if in.PricingType == models.PricingDaily && in.ScheduledDate == nil {
		return nil, NewRequestError(CodeValidation, "daily pricing requires a start date")
	}

	provider, err := s.Providers.GetProviderByID(ctx, in.ProviderID)
	if errors.Is(err, directoryRepo.ErrNotFound) {
		return nil, NewRequestError(CodeValidation, "provider %s does not exist", in.ProviderID)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	req := &models.ServiceRequest{
		ID:            uuid.New().String(),
		ClientID:      clientID,
		ProviderID:    provider.ID,
		Title:         in.Title,
		Description:   in.Description,
		Status:        models.StatusPending,
		PricingType:   in.PricingType,
		ProposedPrice: in.ProposedPrice,
		ProposedHours: in.ProposedHours,
		ProposedDays:  in.ProposedDays,
		ScheduledDate: in.ScheduledDate,
		Negotiations:  []models.Negotiation{},
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	// Fall back to the provider's advertised pricing when the client sent
	// no price of their own.
	if req.ProposedPrice == nil && provider.DefaultRate != nil && provider.DefaultPricingType == req.PricingType {
		rate := *provider.DefaultRate
		req.ProposedPrice = &rate
	}
	if req.IsDaily() {
		req.DailySessions = buildDailySessions(*req.ScheduledDate, in.ScheduledTime, *req.ProposedDays)
	}

	if err := s.Repo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger().Info("service request created",
		zap.String("requestId", req.ID),
		zap.String("clientId", clientID),
		zap.String("providerId", provider.ID),
		zap.String("pricingType", req.PricingType))
	s.notify(ctx, provider.ID, req.ID, models.NotifyProposalReceived,
		"New service request", "You received a new service request: "+req.Title)

	return BuildView(req), nil
}

// GetRequest returns one request with derived fields attached.
func (s *DefaultRequestService) GetRequest(ctx context.Context, requestID, callerID string) (*models.ServiceRequestView, error) {
	req, err := s.Repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, translateNotFound(err, requestID)
	}
	if _, err := requireParty(req, callerID); err != nil {
		return nil, err
	}
	return BuildView(req), nil
}

// ListRequests returns the caller's requests for one role, newest first.
func (s *DefaultRequestService) ListRequests(ctx context.Context, callerID, role string) ([]models.ServiceRequestView, error) {
	var (
		requests []models.ServiceRequest
		err      error
	)
	switch role {
	case "client":
		requests, err = s.Repo.ListByClient(ctx, callerID)
	case "provider":
		requests, err = s.Repo.ListByProvider(ctx, callerID)
	default:
		return nil, NewRequestError(CodeValidation, "role must be client or provider, got %q", role)
	}
	if err != nil {
		return nil, err
	}
	return BuildViews(requests), nil
}

// UpdateStatus applies a direct status write. Only two targets are reachable
// this way: payment_pending (provider accepts the original terms without
// negotiating) and cancelled (provider rejects or cancels outright). All
// other transitions belong to the dedicated operations.
func (s *DefaultRequestService) UpdateStatus(ctx context.Context, requestID, callerID string, in models.StatusUpdateInput) (*models.ServiceRequestView, error) {
	req, err := s.mutate(ctx, requestID, func(req *models.ServiceRequest) error {
		party, err := requireParty(req, callerID)
		if err != nil {
			return err
		}

		switch in.Status {
		case models.StatusPaymentPending:
			if party != "provider" {
				return NewRequestError(CodeForbidden, "only the provider may accept a request directly")
			}
			if req.Status != models.StatusPending {
				return NewRequestError(CodeInvalidTransition,
					"cannot accept request in status %q", req.Status)
			}
			req.Status = models.StatusPaymentPending
			return ensureDailySessions(req)

		case models.StatusCancelled:
			if party != "provider" {
				return NewRequestError(CodeForbidden, "only the provider may cancel a request directly")
			}
			if req.Status != models.StatusPending && req.Status != models.StatusNegotiating {
				return NewRequestError(CodeInvalidTransition,
					"cannot cancel request in status %q", req.Status)
			}
			req.Status = models.StatusCancelled
			req.CancelReason = in.Reason
			return nil
		}
		return NewRequestError(CodeInvalidTransition, "status %q is not directly reachable", in.Status)
	})
	if err != nil {
		return nil, err
	}

	switch req.Status {
	case models.StatusPaymentPending:
		s.notify(ctx, req.ClientID, req.ID, models.NotifyProposalAnswered,
			"Request accepted", "Your request was accepted. Select a payment method to continue.")
	case models.StatusCancelled:
		s.notify(ctx, req.ClientID, req.ID, models.NotifyRequestCancelled,
			"Request cancelled", "The provider declined your request.")
	}
	return BuildView(req), nil
}

func translateNotFound(err error, requestID string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, requestRepo.ErrNotFound) {
		return NewRequestError(CodeNotFound, "service request %s not found", requestID)
	}
	return err
}
