package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is the currency a subscription is billed in.
type Currency string

const (
	CurrencyVND Currency = "VND"
	CurrencyUSD Currency = "USD"
)

// Valid reports whether the currency is one of the supported codes.
func (c Currency) Valid() bool {
	return c == CurrencyVND || c == CurrencyUSD
}

// CostMode determines how a subscription's total amount maps to "my cost".
type CostMode string

const (
	// CostModeFull means I pay the whole total amount.
	CostModeFull CostMode = "full"
	// CostModeSplit means the total is shared: my cost is
	// total * my_share / split_total_users.
	CostModeSplit CostMode = "split"
	// CostModeFixed means I pay a fixed amount regardless of the total.
	CostModeFixed CostMode = "fixed"
)

// Valid reports whether the cost mode is one of the supported modes.
func (m CostMode) Valid() bool {
	return m == CostModeFull || m == CostModeSplit || m == CostModeFixed
}

// BillingType is the unit of the billing cadence.
type BillingType string

const (
	BillingMonthly BillingType = "monthly"
	BillingYearly  BillingType = "yearly"
)

// Valid reports whether the billing type is one of the supported types.
func (t BillingType) Valid() bool {
	return t == BillingMonthly || t == BillingYearly
}

// Subscription represents one recurring payment obligation.
//
// TotalAmount is always the full price of one billing cycle and must be
// positive regardless of cost mode. SplitTotalUsers and MyShare are only
// meaningful in split mode (0 otherwise); FixedAmount only in fixed mode
// (zero otherwise). NextBillingDate carries date-only semantics: only its
// calendar date matters, never the time of day.
type Subscription struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Currency        Currency        `json:"currency"`
	CostMode        CostMode        `json:"cost_mode"`
	SplitTotalUsers int             `json:"split_total_users,omitempty"`
	MyShare         int             `json:"my_share,omitempty"`
	FixedAmount     decimal.Decimal `json:"fixed_amount,omitempty"`
	BillingType     BillingType     `json:"billing_type"`
	BillingInterval int             `json:"billing_interval"`
	NextBillingDate time.Time       `json:"next_billing_date"`
	Note            string          `json:"note,omitempty"`
	ArchivedAt      *time.Time      `json:"archived_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Archived reports whether the subscription has been soft-deleted.
// Archived subscriptions are excluded from all active views and never
// advance their billing date again.
func (s *Subscription) Archived() bool {
	return s.ArchivedAt != nil
}
