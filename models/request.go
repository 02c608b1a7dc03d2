package models

import "time"

// Stored request statuses. The status persisted on a ServiceRequest only
// changes on gate-crossing events; negotiation chatter is derived on read.
const (
	StatusPending           = "pending"
	StatusNegotiating       = "negotiating"
	StatusAccepted          = "accepted"
	StatusPaymentPending    = "payment_pending"
	StatusPendingCompletion = "pending_completion"
	StatusCompleted         = "completed"
	StatusCancelled         = "cancelled"
)

// Pricing types.
const (
	PricingHourly = "hourly"
	PricingDaily  = "daily"
	PricingFixed  = "fixed"
)

// Payment methods. The completion gate treats the set as opaque; any
// selected method satisfies the payment-method guard.
const (
	PaymentPix          = "pix"
	PaymentCash         = "cash"
	PaymentBankTransfer = "bank_transfer"
	PaymentCreditCard   = "credit_card"
)

// DailySession is one calendar day of a multi-day engagement. Both parties
// confirm each day independently; a session is immutable once both booleans
// are true.
type DailySession struct {
	Day               int       `bson:"day" json:"day"` // 1-based ordinal
	ScheduledDate     time.Time `bson:"scheduledDate" json:"scheduledDate"`
	ScheduledTime     string    `bson:"scheduledTime,omitempty" json:"scheduledTime,omitempty"`
	ClientCompleted   bool      `bson:"clientCompleted" json:"clientCompleted"`
	ProviderCompleted bool      `bson:"providerCompleted" json:"providerCompleted"`
}

// ServiceRequest is one client-provider engagement. Negotiations and daily
// sessions are embedded so every mutation is a single-document write guarded
// by Version.
type ServiceRequest struct {
	ID            string     `bson:"id" json:"id"`
	ClientID      string     `bson:"clientId" json:"clientId"`
	ProviderID    string     `bson:"providerId" json:"providerId"`
	Title         string     `bson:"title" json:"title"`
	Description   string     `bson:"description" json:"description"`
	Status        string     `bson:"status" json:"status"`
	PricingType   string     `bson:"pricingType" json:"pricingType"`
	ProposedPrice *float64   `bson:"proposedPrice,omitempty" json:"proposedPrice,omitempty"`
	ProposedHours *int       `bson:"proposedHours,omitempty" json:"proposedHours,omitempty"`
	ProposedDays  *int       `bson:"proposedDays,omitempty" json:"proposedDays,omitempty"`
	ScheduledDate *time.Time `bson:"scheduledDate,omitempty" json:"scheduledDate,omitempty"`

	Negotiations  []Negotiation  `bson:"negotiations" json:"negotiations"`
	DailySessions []DailySession `bson:"dailySessions,omitempty" json:"dailySessions,omitempty"`

	// Dual-confirmation markers for non-daily pricing. Daily requests
	// delegate completion entirely to DailySessions.
	ClientCompletedAt   *time.Time `bson:"clientCompletedAt,omitempty" json:"clientCompletedAt,omitempty"`
	ProviderCompletedAt *time.Time `bson:"providerCompletedAt,omitempty" json:"providerCompletedAt,omitempty"`

	PaymentMethod      *string    `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	PaymentCompletedAt *time.Time `bson:"paymentCompletedAt,omitempty" json:"paymentCompletedAt,omitempty"`

	CancelReason string `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`

	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsDaily reports whether completion is tracked through DailySessions.
func (r *ServiceRequest) IsDaily() bool {
	return r.PricingType == PricingDaily
}

// IsTerminal reports whether the stored status admits no further transitions.
func (r *ServiceRequest) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusCancelled
}

// PartyOf returns "client", "provider" or "" for the given actor ID.
func (r *ServiceRequest) PartyOf(actorID string) string {
	switch actorID {
	case r.ClientID:
		return "client"
	case r.ProviderID:
		return "provider"
	}
	return ""
}

// CounterpartyOf returns the opposite party's ID, or "" if actorID is not a
// party to the request.
func (r *ServiceRequest) CounterpartyOf(actorID string) string {
	switch actorID {
	case r.ClientID:
		return r.ProviderID
	case r.ProviderID:
		return r.ClientID
	}
	return ""
}

// HeadNegotiation returns the negotiation with the latest CreatedAt, or nil
// when the ledger is empty. Insertion order breaks CreatedAt ties, so the
// last entry with the maximum timestamp wins.
func (r *ServiceRequest) HeadNegotiation() *Negotiation {
	var head *Negotiation
	for i := range r.Negotiations {
		n := &r.Negotiations[i]
		if head == nil || !n.CreatedAt.Before(head.CreatedAt) {
			head = n
		}
	}
	return head
}

// NegotiationByID returns the embedded negotiation with the given ID, or nil.
func (r *ServiceRequest) NegotiationByID(id string) *Negotiation {
	for i := range r.Negotiations {
		if r.Negotiations[i].ID == id {
			return &r.Negotiations[i]
		}
	}
	return nil
}

// ServiceRequestInput is the payload for creating a request.
type ServiceRequestInput struct {
	ProviderID    string     `json:"providerId" binding:"required"`
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description" binding:"required"`
	PricingType   string     `json:"pricingType" binding:"required"`
	ProposedPrice *float64   `json:"proposedPrice,omitempty"`
	ProposedHours *int       `json:"proposedHours,omitempty"`
	ProposedDays  *int       `json:"proposedDays,omitempty"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	ScheduledTime string     `json:"scheduledTime,omitempty"`
}

// StatusUpdateInput is the payload for the restricted direct status update.
type StatusUpdateInput struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason,omitempty"`
}

// PaymentMethodInput selects how the client intends to pay.
type PaymentMethodInput struct {
	Method string `json:"method" binding:"required"`
}

// NegotiationView is a negotiation plus its derived status.
type NegotiationView struct {
	Negotiation
	EffectiveStatus string `json:"effectiveStatus"`
}

// ServiceRequestView is the request as returned to callers: the stored
// document plus derived fields. Every read and every mutation returns one,
// so callers never need a separate cache layer to observe fresh state.
type ServiceRequestView struct {
	ServiceRequest
	EffectiveStatus string            `json:"effectiveStatus"`
	Negotiations    []NegotiationView `json:"negotiations"`
}
