// Package billing holds the pure computation core of the dashboard: cost
// normalization, currency conversion, money formatting, reminder
// classification and billing-cycle advancement. Everything here is a
// side-effect-free function over immutable inputs; all monetary arithmetic
// stays in exact decimals until a value is formatted for display.
package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"subtracker/internal/model"
)

// DefaultUSDToVNDRate is used whenever the configured rate is absent,
// non-numeric or non-positive. The dashboard must always render a total,
// so a bad rate is substituted rather than surfaced as an error.
var DefaultUSDToVNDRate = decimal.NewFromInt(26000)

const (
	usdFractionDigits = 2
	vndFractionDigits = 0
)

// IntervalMonths returns the number of months covered by one billing cycle.
func IntervalMonths(billingType model.BillingType, billingInterval int) int {
	if billingType == model.BillingYearly {
		return billingInterval * 12
	}
	return billingInterval
}

// MyCost returns what I pay for one billing cycle of the subscription.
//
// Split mode with a missing or zero share configuration degrades to zero
// instead of failing: the request boundary validates those fields before
// anything is persisted, so the zero branch only guards rows corrupted
// outside the application. The same goes for the unknown-mode fallback.
func MyCost(sub model.Subscription) decimal.Decimal {
	switch sub.CostMode {
	case model.CostModeFull:
		return sub.TotalAmount
	case model.CostModeSplit:
		if sub.SplitTotalUsers == 0 || sub.MyShare == 0 {
			return decimal.Zero
		}
		return sub.TotalAmount.
			Mul(decimal.NewFromInt(int64(sub.MyShare))).
			Div(decimal.NewFromInt(int64(sub.SplitTotalUsers)))
	case model.CostModeFixed:
		return sub.FixedAmount
	default:
		return decimal.Zero
	}
}

// MonthlyCost normalizes my per-cycle cost to a per-month value, which is
// what the dashboard KPIs and the aggregate total are built from.
func MonthlyCost(sub model.Subscription) decimal.Decimal {
	months := IntervalMonths(sub.BillingType, sub.BillingInterval)
	return MyCost(sub).Div(decimal.NewFromInt(int64(months)))
}

// ConvertToVND converts an amount into VND, the dashboard's display
// currency. VND amounts pass through untouched regardless of the rate.
func ConvertToVND(amount decimal.Decimal, currency model.Currency, usdToVndRate decimal.Decimal) decimal.Decimal {
	if currency == model.CurrencyVND {
		return amount
	}
	return amount.Mul(usdToVndRate)
}

// USDToVNDRate parses the configured exchange rate string, falling back to
// DefaultUSDToVNDRate when it is empty, malformed or non-positive.
func USDToVNDRate(raw string) decimal.Decimal {
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !rate.IsPositive() {
		return DefaultUSDToVNDRate
	}
	return rate
}

// FormatMoney renders an amount with the currency's conventional precision:
// two fraction digits for USD, none for VND, with thousands grouping.
// Rounding (half to even) happens only here, at the display boundary.
func FormatMoney(amount decimal.Decimal, currency model.Currency) string {
	digits := vndFractionDigits
	if currency == model.CurrencyUSD {
		digits = usdFractionDigits
	}
	return groupThousands(amount.StringFixedBank(int32(digits)))
}

// groupThousands inserts comma separators into the integer part of a
// fixed-point decimal string, preserving sign and fraction.
func groupThousands(s string) string {
	intPart := s
	var frac string
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var sign string
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}

	n := len(intPart)
	if n <= 3 {
		return sign + intPart + frac
	}

	var b strings.Builder
	b.WriteString(sign)
	head := n % 3
	if head > 0 {
		b.WriteString(intPart[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + frac
}
