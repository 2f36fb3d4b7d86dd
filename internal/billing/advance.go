package billing

import (
	"time"

	"subtracker/internal/dateonly"
	"subtracker/internal/model"
)

// Advance computes the next billing date after the current cycle has been
// paid: the existing date moved forward by one full billing interval.
// Nothing is mutated; the caller persists the returned date. Advancement
// only ever happens on an explicit mark-billed action, never on a timer.
func Advance(sub model.Subscription) time.Time {
	months := IntervalMonths(sub.BillingType, sub.BillingInterval)
	return dateonly.AddMonths(sub.NextBillingDate, months)
}
