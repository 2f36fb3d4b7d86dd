package billing

import (
	"time"

	"subtracker/internal/dateonly"
)

// Bucket classifies how urgent a subscription's next billing date is.
type Bucket string

const (
	BucketOverdue  Bucket = "overdue"
	BucketToday    Bucket = "today"
	BucketTomorrow Bucket = "tomorrow"
	BucketNone     Bucket = "none"
)

// Classify buckets a billing date by its date-only distance from now's
// local calendar day. Every negative distance is overdue; anything two or
// more days out is none.
func Classify(nextBillingDate, now time.Time) Bucket {
	switch dayDiff := dateonly.DaysBetween(nextBillingDate, now); {
	case dayDiff < 0:
		return BucketOverdue
	case dayDiff == 0:
		return BucketToday
	case dayDiff == 1:
		return BucketTomorrow
	default:
		return BucketNone
	}
}
