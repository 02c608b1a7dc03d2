package request

import (
	"context"

	"github.com/EternalGerms/trampoaqui-sub001/models"
)

// RequestService drives the full lifecycle of a service request: creation,
// negotiation, payment, dual-party completion and the daily-session variant.
// Every mutation returns the fresh request view with derived fields attached.
type RequestService interface {
	// CreateRequest opens a new engagement from a client to a provider.
	CreateRequest(ctx context.Context, clientID string, in models.ServiceRequestInput) (*models.ServiceRequestView, error)
	// GetRequest returns one request with derived fields. Only a party to
	// the request may read it.
	GetRequest(ctx context.Context, requestID, callerID string) (*models.ServiceRequestView, error)
	// ListRequests returns the caller's requests for the given role
	// ("client" or "provider"), newest first.
	ListRequests(ctx context.Context, callerID, role string) ([]models.ServiceRequestView, error)
	// UpdateStatus applies one of the few permitted direct transitions
	// (provider direct-accept, provider explicit rejection/cancel).
	UpdateStatus(ctx context.Context, requestID, callerID string, in models.StatusUpdateInput) (*models.ServiceRequestView, error)
	// Propose appends a counter-proposal to the negotiation ledger.
	Propose(ctx context.Context, requestID, proposerID string, in models.NegotiationInput) (*models.ServiceRequestView, error)
	// Respond records the counter-party's decision on the head negotiation.
	Respond(ctx context.Context, requestID, negotiationID, responderID, decision string) (*models.ServiceRequestView, error)
	// SelectPaymentMethod records how the client intends to pay.
	SelectPaymentMethod(ctx context.Context, requestID, callerID, method string) (*models.ServiceRequestView, error)
	// CompletePayment consumes the payment processor's completion signal.
	CompletePayment(ctx context.Context, requestID, callerID string) (*models.ServiceRequestView, error)
	// ConfirmDailySession marks one day of a daily engagement done for the
	// calling party. Idempotent per actor and day.
	ConfirmDailySession(ctx context.Context, requestID, callerID string, day int) (*models.ServiceRequestView, error)
	// ConfirmCompletion records the calling party's completion confirmation
	// for a non-daily request.
	ConfirmCompletion(ctx context.Context, requestID, callerID string) (*models.ServiceRequestView, error)
}
