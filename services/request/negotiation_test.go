package request

import (
	"context"
	"testing"
	"time"

	"github.com/EternalGerms/trampoaqui-sub001/models"
)

func counterOffer(price float64) models.NegotiationInput {
	return models.NegotiationInput{
		PricingType:   models.PricingFixed,
		ProposedPrice: floatPtr(price),
		Message:       "ok",
	}
}

func TestProposeOnPendingRequest(t *testing.T) {
	env := newTestEnv()
	created := env.createFixed()

	view, err := env.svc.Propose(context.Background(), created.ID, testClientID, counterOffer(150))
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}

	if view.Status != models.StatusNegotiating {
		t.Errorf("stored status: got %q, want negotiating", view.Status)
	}
	if view.EffectiveStatus != models.StatusNegotiating {
		t.Errorf("effective status: got %q, want negotiating", view.EffectiveStatus)
	}
	if len(view.Negotiations) != 1 {
		t.Fatalf("expected 1 negotiation, got %d", len(view.Negotiations))
	}
	n := view.Negotiations[0]
	if n.EffectiveStatus != models.NegotiationPending {
		t.Errorf("head effective status: got %q, want pending", n.EffectiveStatus)
	}
	if n.ProposerID != testClientID || n.Message != "ok" {
		t.Errorf("negotiation fields not recorded: %+v", n.Negotiation)
	}
}

func TestProposeSupersedesEarlierProposal(t *testing.T) {
	env := newTestEnv()
	created := env.createFixed()

	first, err := env.svc.Propose(context.Background(), created.ID, testClientID, counterOffer(150))
	if err != nil {
		t.Fatalf("first Propose: %v", err)
	}
	firstID := first.Negotiations[0].ID

	second, err := env.svc.Propose(context.Background(), created.ID, testProviderID, counterOffer(180))
	if err != nil {
		t.Fatalf("second Propose: %v", err)
	}
	if len(second.Negotiations) != 2 {
		t.Fatalf("ledger must keep both entries, got %d", len(second.Negotiations))
	}

	for _, n := range second.Negotiations {
		if n.ID == firstID {
			if n.Status != models.NegotiationPending {
				t.Errorf("superseded proposal stored status mutated to %q", n.Status)
			}
			if n.EffectiveStatus != models.NegotiationRejected {
				t.Errorf("superseded proposal effective status: got %q, want rejected", n.EffectiveStatus)
			}
		} else {
			if n.EffectiveStatus != models.NegotiationPending {
				t.Errorf("new head effective status: got %q, want pending", n.EffectiveStatus)
			}
		}
	}
}

func TestProposeValidation(t *testing.T) {
	env := newTestEnv()
	created := env.createFixed()
	ctx := context.Background()

	t.Run("message required", func(t *testing.T) {
		in := counterOffer(150)
		in.Message = ""
		if _, err := env.svc.Propose(ctx, created.ID, testClientID, in); !IsCode(err, CodeValidation) {
			t.Errorf("got %v, want validation error", err)
		}
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		if _, err := env.svc.Propose(ctx, created.ID, "stranger", counterOffer(150)); !IsCode(err, CodeForbidden) {
			t.Errorf("got %v, want forbidden", err)
		}
	})

	t.Run("daily terms need a start date", func(t *testing.T) {
		in := models.NegotiationInput{
			PricingType:  models.PricingDaily,
			ProposedDays: intPtr(2),
			Message:      "switch to daily",
		}
		if _, err := env.svc.Propose(ctx, created.ID, testProviderID, in); !IsCode(err, CodeValidation) {
			t.Errorf("got %v, want validation error", err)
		}
	})
}

func TestProposeRejectedAfterAcceptance(t *testing.T) {
	env := newTestEnv()
	created := env.createFixed()
	ctx := context.Background()

	if _, err := env.svc.UpdateStatus(ctx, created.ID, testProviderID,
		models.StatusUpdateInput{Status: models.StatusPaymentPending}); err != nil {
		t.Fatalf("direct accept: %v", err)
	}
	if _, err := env.svc.Propose(ctx, created.ID, testClientID, counterOffer(120)); !IsCode(err, CodeInvalidState) {
		t.Errorf("propose after accept: want invalidState")
	}
}

func TestRespondAcceptHead(t *testing.T) {
	env := newTestEnv()
	created := env.createFixed()
	ctx := context.Background()

	prop, err := env.svc.Propose(ctx, created.ID, testClientID, counterOffer(120))
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}
	headID := prop.Negotiations[0].ID

	view, err := env.svc.Respond(ctx, created.ID, headID, testProviderID, models.DecisionAccept)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if view.Status != models.StatusPaymentPending {
		t.Errorf("got %q, want payment_pending", view.Status)
	}
	if view.ProposedPrice == nil || *view.ProposedPrice != 120 {
		t.Errorf("accepted terms not adopted: %v", view.ProposedPrice)
	}
	if view.Negotiations[0].Status != models.NegotiationAccepted {
		t.Errorf("stored negotiation status: got %q, want accepted", view.Negotiations[0].Status)
	}
}

func TestRespondToSupersededProposalIsStale(t *testing.T) {
	env := newTestEnv()
	created := env.createFixed()
	ctx := context.Background()

	first, err := env.svc.Propose(ctx, created.ID, testClientID, counterOffer(150))
	if err != nil {
		t.Fatalf("first Propose: %v", err)
	}
	firstID := first.Negotiations[0].ID

	if _, err := env.svc.Propose(ctx, created.ID, testProviderID, counterOffer(180)); err != nil {
		t.Fatalf("second Propose: %v", err)
	}

	_, err = env.svc.Respond(ctx, created.ID, firstID, testProviderID, models.DecisionAccept)
	if !IsCode(err, CodeStaleNegotiation) {
		t.Errorf("got %v, want staleNegotiation", err)
	}
}

func TestRespondToSupersededProposalAfterAcceptance(t *testing.T) {
	env := newTestEnv()
	created := env.createFixed()
	ctx := context.Background()

	first, err := env.svc.Propose(ctx, created.ID, testProviderID, counterOffer(200))
	if err != nil {
		t.Fatalf("first Propose: %v", err)
	}
	firstID := first.Negotiations[0].ID

	second, err := env.svc.Propose(ctx, created.ID, testClientID, counterOffer(160))
	if err != nil {
		t.Fatalf("second Propose: %v", err)
	}
	var headID string
	for _, n := range second.Negotiations {
		if n.ID != firstID {
			headID = n.ID
		}
	}
	if _, err := env.svc.Respond(ctx, created.ID, headID, testProviderID, models.DecisionAccept); err != nil {
		t.Fatalf("accept head: %v", err)
	}

	// The request moved on to payment_pending, but the answer for the
	// superseded proposal is still that it was superseded.
	_, err = env.svc.Respond(ctx, created.ID, firstID, testClientID, models.DecisionAccept)
	if !IsCode(err, CodeStaleNegotiation) {
		t.Errorf("got %v, want staleNegotiation", err)
	}
}

func TestRespondOwnProposalForbidden(t *testing.T) {
	env := newTestEnv()
	created := env.createFixed()
	ctx := context.Background()

	prop, err := env.svc.Propose(ctx, created.ID, testClientID, counterOffer(150))
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}
	_, err = env.svc.Respond(ctx, created.ID, prop.Negotiations[0].ID, testClientID, models.DecisionAccept)
	if !IsCode(err, CodeForbidden) {
		t.Errorf("got %v, want forbidden", err)
	}
}

func TestRespondRejectCancelsRequest(t *testing.T) {
	env := newTestEnv()
	created := env.createFixed()
	ctx := context.Background()

	prop, err := env.svc.Propose(ctx, created.ID, testClientID, counterOffer(150))
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}

	view, err := env.svc.Respond(ctx, created.ID, prop.Negotiations[0].ID, testProviderID, models.DecisionReject)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if view.Status != models.StatusCancelled {
		t.Errorf("got %q, want cancelled", view.Status)
	}
	if view.Negotiations[0].Status != models.NegotiationRejected {
		t.Errorf("stored negotiation status: got %q, want rejected", view.Negotiations[0].Status)
	}
}

func TestRespondResolvedNegotiationInvalid(t *testing.T) {
	env := newTestEnv()
	created := env.createFixed()
	ctx := context.Background()

	prop, err := env.svc.Propose(ctx, created.ID, testClientID, counterOffer(150))
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}
	headID := prop.Negotiations[0].ID
	if _, err := env.svc.Respond(ctx, created.ID, headID, testProviderID, models.DecisionAccept); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	_, err = env.svc.Respond(ctx, created.ID, headID, testProviderID, models.DecisionAccept)
	if !IsCode(err, CodeInvalidState) {
		t.Errorf("second response: got %v, want invalidState", err)
	}
}

func TestRespondInvalidDecision(t *testing.T) {
	env := newTestEnv()
	if _, err := env.svc.Respond(context.Background(), "any", "any", testClientID, "maybe"); !IsCode(err, CodeValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestRespondDailyAcceptanceRebuildsSessions(t *testing.T) {
	env := newTestEnv()
	start := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	created, err := env.svc.CreateRequest(context.Background(), testClientID, models.ServiceRequestInput{
		ProviderID:    testProviderID,
		Title:         "Renovate fence",
		Description:   "Multi-day fence work",
		PricingType:   models.PricingDaily,
		ProposedPrice: floatPtr(180),
		ProposedDays:  intPtr(2),
		ScheduledDate: timePtr(start),
	})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	// Provider counters with one more day.
	prop, err := env.svc.Propose(context.Background(), created.ID, testProviderID, models.NegotiationInput{
		PricingType:   models.PricingDaily,
		ProposedPrice: floatPtr(180),
		ProposedDays:  intPtr(3),
		Message:       "this needs a third day",
	})
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}

	view, err := env.svc.Respond(context.Background(), created.ID, prop.Negotiations[0].ID, testClientID, models.DecisionAccept)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if len(view.DailySessions) != 3 {
		t.Fatalf("sessions not rebuilt for adopted terms: got %d, want 3", len(view.DailySessions))
	}
	if !view.DailySessions[2].ScheduledDate.Equal(start.AddDate(0, 0, 2)) {
		t.Errorf("third session date: %v", view.DailySessions[2].ScheduledDate)
	}
}

func TestMutateRetriesOnceOnConflict(t *testing.T) {
	env := newTestEnv()
	created := env.createFixed()
	ctx := context.Background()

	env.repo.forceConflicts = 1
	view, err := env.svc.Propose(ctx, created.ID, testClientID, counterOffer(150))
	if err != nil {
		t.Fatalf("one conflict must be absorbed by the retry: %v", err)
	}
	if len(view.Negotiations) != 1 {
		t.Errorf("retry duplicated the proposal: %d entries", len(view.Negotiations))
	}

	env.repo.forceConflicts = 2
	_, err = env.svc.Propose(ctx, created.ID, testProviderID, counterOffer(170))
	if !IsCode(err, CodeConflict) {
		t.Errorf("got %v, want conflict after exhausted retry", err)
	}
}
