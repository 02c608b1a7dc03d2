package request

import (
	"context"
	"time"

	"github.com/EternalGerms/trampoaqui-sub001/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Propose appends a counter-proposal to the request's ledger. The ledger is
// append-only: an older unresolved proposal is never touched, it simply stops
// being the head and is reported as rejected from then on.
func (s *DefaultRequestService) Propose(ctx context.Context, requestID, proposerID string, in models.NegotiationInput) (*models.ServiceRequestView, error) {
	if in.Message == "" {
		return nil, NewRequestError(CodeValidation, "a proposal must carry a message justifying the change")
	}
	if err := validateTerms(in.PricingType, in.ProposedPrice, in.ProposedHours, in.ProposedDays); err != nil {
		return nil, err
	}

	req, err := s.mutate(ctx, requestID, func(req *models.ServiceRequest) error {
		if _, err := requireParty(req, proposerID); err != nil {
			return err
		}
		if req.Status != models.StatusPending && req.Status != models.StatusNegotiating {
			return NewRequestError(CodeInvalidState,
				"cannot propose terms on a request in status %q", req.Status)
		}
		if in.PricingType == models.PricingDaily && in.ProposedDate == nil && req.ScheduledDate == nil {
			return NewRequestError(CodeValidation, "daily pricing requires a start date")
		}

		negotiation := models.Negotiation{
			ID:            uuid.New().String(),
			RequestID:     req.ID,
			ProposerID:    proposerID,
			PricingType:   in.PricingType,
			ProposedPrice: in.ProposedPrice,
			ProposedHours: in.ProposedHours,
			ProposedDays:  in.ProposedDays,
			ProposedDate:  in.ProposedDate,
			Message:       in.Message,
			Status:        models.NegotiationPending,
			CreatedAt:     time.Now().UTC(),
		}
		req.Negotiations = append(req.Negotiations, negotiation)
		if req.Status == models.StatusPending {
			req.Status = models.StatusNegotiating
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger().Info("negotiation proposed",
		zap.String("requestId", req.ID), zap.String("proposerId", proposerID))
	if counterparty := req.CounterpartyOf(proposerID); counterparty != "" {
		s.notify(ctx, counterparty, req.ID, models.NotifyProposalReceived,
			"New proposal", "The other party proposed new terms on "+req.Title+".")
	}
	return BuildView(req), nil
}

// Respond records the counter-party's decision on a negotiation. The head
// check runs inside the same versioned write that records the decision, so a
// proposal that was superseded between read and write can never be accepted.
func (s *DefaultRequestService) Respond(ctx context.Context, requestID, negotiationID, responderID, decision string) (*models.ServiceRequestView, error) {
	if decision != models.DecisionAccept && decision != models.DecisionReject {
		return nil, NewRequestError(CodeValidation, "decision must be accept or reject, got %q", decision)
	}

	var accepted bool
	req, err := s.mutate(ctx, requestID, func(req *models.ServiceRequest) error {
		accepted = false
		if _, err := requireParty(req, responderID); err != nil {
			return err
		}

		negotiation := req.NegotiationByID(negotiationID)
		if negotiation == nil {
			return NewRequestError(CodeNotFound, "negotiation %s not found on request %s", negotiationID, req.ID)
		}
		if negotiation.ProposerID == responderID {
			return NewRequestError(CodeForbidden, "a party cannot respond to their own proposal")
		}
		if negotiation.Status != models.NegotiationPending {
			return NewRequestError(CodeInvalidState,
				"negotiation %s was already resolved as %s", negotiationID, negotiation.Status)
		}

		// The stale check comes before the status check: once any proposal
		// was accepted, a response to a superseded one should say so rather
		// than complain about the request's new status.
		head := req.HeadNegotiation()
		if head == nil || head.ID != negotiation.ID {
			return NewRequestError(CodeStaleNegotiation,
				"negotiation %s was superseded by a newer proposal", negotiationID)
		}
		if req.Status != models.StatusNegotiating {
			return NewRequestError(CodeInvalidState,
				"cannot respond to a proposal while the request is %q", req.Status)
		}

		switch decision {
		case models.DecisionAccept:
			negotiation.Status = models.NegotiationAccepted
			adoptNegotiationTerms(req, negotiation)
			req.Status = models.StatusPaymentPending
			accepted = true
			return ensureDailySessions(req)
		default:
			// Rejecting the head cancels the engagement outright, for either
			// party. A party that wants to keep talking counters instead.
			negotiation.Status = models.NegotiationRejected
			req.Status = models.StatusCancelled
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	counterparty := req.CounterpartyOf(responderID)
	if accepted {
		s.logger().Info("negotiation accepted",
			zap.String("requestId", req.ID), zap.String("negotiationId", negotiationID))
		s.notify(ctx, counterparty, req.ID, models.NotifyProposalAnswered,
			"Proposal accepted", "Your proposal was accepted. Payment is the next step.")
	} else {
		s.notify(ctx, counterparty, req.ID, models.NotifyRequestCancelled,
			"Proposal rejected", "Your proposal was rejected and the request was cancelled.")
	}
	return BuildView(req), nil
}

// adoptNegotiationTerms copies the accepted proposal's terms onto the
// request. Unit fields from the previous pricing type are cleared so the
// document never carries hours and days at once.
func adoptNegotiationTerms(req *models.ServiceRequest, n *models.Negotiation) {
	req.PricingType = n.PricingType
	req.ProposedPrice = n.ProposedPrice
	req.ProposedHours = nil
	req.ProposedDays = nil
	switch n.PricingType {
	case models.PricingHourly:
		req.ProposedHours = n.ProposedHours
	case models.PricingDaily:
		req.ProposedDays = n.ProposedDays
	}
	if n.ProposedDate != nil {
		req.ScheduledDate = n.ProposedDate
	}
}
