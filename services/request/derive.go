package request

import (
	"github.com/EternalGerms/trampoaqui-sub001/models"
)

// The functions in this file are pure: they read the stored status plus the
// negotiation ledger and compute what each party should see. Nothing here is
// ever persisted, so the ledger stays the single source of truth for who
// proposed what and when.

// EffectiveNegotiationStatus computes the status shown for one negotiation.
// A stored decision is final. A stored "pending" only remains pending while
// the negotiation is the head of the ledger; older unresolved proposals are
// reported as rejected because every newer proposal supersedes them.
func EffectiveNegotiationStatus(req *models.ServiceRequest, n *models.Negotiation) string {
	if n.Status != models.NegotiationPending {
		return n.Status
	}
	head := req.HeadNegotiation()
	if head != nil && head.ID == n.ID {
		return models.NegotiationPending
	}
	return models.NegotiationRejected
}

// EffectiveRequestStatus computes the status shown for a request.
func EffectiveRequestStatus(req *models.ServiceRequest) string {
	switch req.Status {
	case models.StatusCompleted, models.StatusAccepted, models.StatusPaymentPending, models.StatusCancelled:
		return req.Status
	case models.StatusPendingCompletion:
		// The service itself was already agreed; only confirmation remains.
		return models.StatusAccepted
	case models.StatusPending:
		return models.StatusPending
	case models.StatusNegotiating:
		head := req.HeadNegotiation()
		if head == nil {
			return models.StatusNegotiating
		}
		switch head.Status {
		case models.NegotiationRejected:
			return models.StatusCancelled
		case models.NegotiationAccepted:
			return models.StatusAccepted
		}
		return models.StatusNegotiating
	}
	return req.Status
}

// BuildView attaches the derived fields to a request document. Every read
// and every mutation returns one of these, so callers always observe fresh,
// versioned state.
func BuildView(req *models.ServiceRequest) *models.ServiceRequestView {
	view := &models.ServiceRequestView{
		ServiceRequest:  *req,
		EffectiveStatus: EffectiveRequestStatus(req),
	}
	view.Negotiations = make([]models.NegotiationView, 0, len(req.Negotiations))
	for i := range req.Negotiations {
		n := req.Negotiations[i]
		view.Negotiations = append(view.Negotiations, models.NegotiationView{
			Negotiation:     n,
			EffectiveStatus: EffectiveNegotiationStatus(req, &n),
		})
	}
	return view
}

// BuildViews maps BuildView over a slice.
func BuildViews(requests []models.ServiceRequest) []models.ServiceRequestView {
	views := make([]models.ServiceRequestView, 0, len(requests))
	for i := range requests {
		views = append(views, *BuildView(&requests[i]))
	}
	return views
}
