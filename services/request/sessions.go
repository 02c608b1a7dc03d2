package request

import (
	"context"
	"fmt"
	"time"

	"github.com/EternalGerms/trampoaqui-sub001/models"

	"go.uber.org/zap"
)

// validateTerms checks pricing terms at the schema level. Unit fields are
// tied to their pricing type: hours only make sense for hourly work, days
// only for daily work.
func validateTerms(pricingType string, price *float64, hours, days *int) error {
	switch pricingType {
	case models.PricingHourly, models.PricingDaily, models.PricingFixed:
	default:
		return NewRequestError(CodeValidation, "unknown pricing type %q", pricingType)
	}
	if price != nil && *price <= 0 {
		return NewRequestError(CodeValidation, "proposed price must be positive")
	}
	if hours != nil {
		if pricingType != models.PricingHourly {
			return NewRequestError(CodeValidation, "proposed hours only apply to hourly pricing")
		}
		if *hours <= 0 {
			return NewRequestError(CodeValidation, "proposed hours must be positive")
		}
	}
	if days != nil {
		if pricingType != models.PricingDaily {
			return NewRequestError(CodeValidation, "proposed days only apply to daily pricing")
		}
		if *days <= 0 {
			return NewRequestError(CodeValidation, "proposed days must be positive")
		}
	}
	if pricingType == models.PricingDaily && days == nil {
		return NewRequestError(CodeValidation, "daily pricing requires the number of days")
	}
	return nil
}

// buildDailySessions lays out one session per calendar day, contiguous and
// 1-based, starting at the agreed date.
func buildDailySessions(start time.Time, startTime string, days int) []models.DailySession {
	sessions := make([]models.DailySession, 0, days)
	for day := 1; day <= days; day++ {
		sessions = append(sessions, models.DailySession{
			Day:           day,
			ScheduledDate: start.AddDate(0, 0, day-1),
			ScheduledTime: startTime,
		})
	}
	return sessions
}

// ensureDailySessions rebuilds the day array from the currently agreed terms.
// Called whenever terms are adopted (direct accept or negotiation accept),
// which can only happen before payment, so no confirmation is ever discarded.
func ensureDailySessions(req *models.ServiceRequest) error {
	if !req.IsDaily() {
		req.DailySessions = nil
		return nil
	}
	if req.ProposedDays == nil || req.ScheduledDate == nil {
		return NewRequestError(CodeValidation, "daily request %s is missing days or start date", req.ID)
	}
	startTime := ""
	if len(req.DailySessions) > 0 {
		startTime = req.DailySessions[0].ScheduledTime
	}
	req.DailySessions = buildDailySessions(*req.ScheduledDate, startTime, *req.ProposedDays)
	return nil
}

// allDailyConfirmed reports whether every session carries both confirmations.
func allDailyConfirmed(sessions []models.DailySession) bool {
	if len(sessions) == 0 {
		return false
	}
	for _, s := range sessions {
		if !s.ClientCompleted || !s.ProviderCompleted {
			return false
		}
	}
	return true
}

// ConfirmDailySession marks one day done for the calling party. Confirming a
// day the same party already confirmed is a no-op. When the final pair of
// booleans closes, the request transitions straight to completed; the
// version-guarded write makes that terminal transition fire exactly once even
// when both parties confirm the last day simultaneously.
func (s *DefaultRequestService) ConfirmDailySession(ctx context.Context, requestID, callerID string, day int) (*models.ServiceRequestView, error) {
	var completedNow, changed bool
	req, err := s.mutate(ctx, requestID, func(req *models.ServiceRequest) error {
		completedNow, changed = false, false
		party, err := requireParty(req, callerID)
		if err != nil {
			return err
		}
		if !req.IsDaily() {
			return NewRequestError(CodeInvalidState, "request %s does not track daily sessions", req.ID)
		}
		paid := req.Status == models.StatusAccepted && req.PaymentCompletedAt != nil
		if req.Status != models.StatusPendingCompletion && !paid {
			return NewRequestError(CodeNotEligible,
				"daily sessions can only be confirmed after payment, current status %q", req.Status)
		}
		if day < 1 || day > len(req.DailySessions) {
			return NewRequestError(CodeInvalidDayIndex,
				"day %d out of range 1..%d", day, len(req.DailySessions))
		}

		session := &req.DailySessions[day-1]
		switch party {
		case "client":
			if session.ClientCompleted {
				return errNoChange
			}
			session.ClientCompleted = true
		case "provider":
			if session.ProviderCompleted {
				return errNoChange
			}
			session.ProviderCompleted = true
		}
		changed = true

		if allDailyConfirmed(req.DailySessions) {
			// Daily requests skip pending_completion entirely.
			req.Status = models.StatusCompleted
			completedNow = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	counterparty := req.CounterpartyOf(callerID)
	if completedNow {
		s.logger().Info("daily request completed",
			zap.String("requestId", req.ID), zap.Int("days", len(req.DailySessions)))
		s.notify(ctx, req.ClientID, req.ID, models.NotifyRequestCompleted,
			"Service completed", "All days of the engagement were confirmed by both parties.")
		s.notify(ctx, req.ProviderID, req.ID, models.NotifyRequestCompleted,
			"Service completed", "All days of the engagement were confirmed by both parties.")
	} else if changed && counterparty != "" {
		s.notify(ctx, counterparty, req.ID, models.NotifyDayConfirmed,
			"Day confirmed", fmt.Sprintf("Day %d was confirmed by the other party.", day))
	}
	return BuildView(req), nil
}
