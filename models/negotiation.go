package models

import "time"

// Negotiation statuses as stored in the ledger. A negotiation's stored
// status is written exactly once, by the counter-party; superseded proposals
// keep "pending" in storage and are reported as rejected on read.
const (
	NegotiationPending  = "pending"
	NegotiationAccepted = "accepted"
	NegotiationRejected = "rejected"
)

// Responder decisions.
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// Negotiation is one append-only counter-proposal on a request.
type Negotiation struct {
	ID            string     `bson:"id" json:"id"`
	RequestID     string     `bson:"requestId" json:"requestId"`
	ProposerID    string     `bson:"proposerId" json:"proposerId"`
	PricingType   string     `bson:"pricingType" json:"pricingType"`
	ProposedPrice *float64   `bson:"proposedPrice,omitempty" json:"proposedPrice,omitempty"`
	ProposedHours *int       `bson:"proposedHours,omitempty" json:"proposedHours,omitempty"`
	ProposedDays  *int       `bson:"proposedDays,omitempty" json:"proposedDays,omitempty"`
	ProposedDate  *time.Time `bson:"proposedDate,omitempty" json:"proposedDate,omitempty"`
	Message       string     `bson:"message" json:"message"`
	Status        string     `bson:"status" json:"status"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
}

// NegotiationInput is the payload for proposing new terms.
type NegotiationInput struct {
	PricingType   string     `json:"pricingType" binding:"required"`
	ProposedPrice *float64   `json:"proposedPrice,omitempty"`
	ProposedHours *int       `json:"proposedHours,omitempty"`
	ProposedDays  *int       `json:"proposedDays,omitempty"`
	ProposedDate  *time.Time `json:"proposedDate,omitempty"`
	Message       string     `json:"message" binding:"required"`
}

// NegotiationResponseInput carries the counter-party's decision.
type NegotiationResponseInput struct {
	Decision string `json:"decision" binding:"required"`
}
