package handler

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"subtracker/internal/dateonly"
	"subtracker/internal/model"
)

const maxNoteLength = 500

// SubscriptionForm carries the raw untyped form fields of a create or
// update submission. Validate is the gate between this and the core: the
// core's defensive zero fallbacks exist only for data that slips past it.
type SubscriptionForm struct {
	ID              string `form:"id"`
	Name            string `form:"name"`
	TotalAmount     string `form:"total_amount"`
	Currency        string `form:"currency"`
	CostMode        string `form:"cost_mode"`
	SplitTotalUsers string `form:"split_total_users"`
	MyShare         string `form:"my_share"`
	FixedAmount     string `form:"fixed_amount"`
	BillingType     string `form:"billing_type"`
	BillingInterval string `form:"billing_interval"`
	NextBillingDate string `form:"next_billing_date"`
	Note            string `form:"note"`
}

// Validate checks every invariant of the subscription record and builds
// the model value. On failure it returns a field-name-keyed error map and
// the submission is rejected as a whole.
func (f *SubscriptionForm) Validate() (model.Subscription, map[string]string) {
	errs := make(map[string]string)
	var sub model.Subscription

	sub.ID = strings.TrimSpace(f.ID)

	sub.Name = strings.TrimSpace(f.Name)
	if sub.Name == "" {
		errs["name"] = "Name is required"
	}

	// The total amount is required and positive in every mode, even fixed
	// mode where it is not the amount actually charged to me.
	total, err := decimal.NewFromString(strings.TrimSpace(f.TotalAmount))
	switch {
	case err != nil:
		errs["total_amount"] = "Total amount must be a number"
	case !total.IsPositive():
		errs["total_amount"] = "Total amount must be greater than 0"
	default:
		sub.TotalAmount = total
	}

	sub.Currency = model.Currency(f.Currency)
	if !sub.Currency.Valid() {
		errs["currency"] = "Currency must be VND or USD"
	}

	sub.CostMode = model.CostMode(f.CostMode)
	if !sub.CostMode.Valid() {
		errs["cost_mode"] = "Cost mode must be full, split or fixed"
	}

	if sub.CostMode == model.CostModeSplit {
		users, uerr := strconv.Atoi(strings.TrimSpace(f.SplitTotalUsers))
		if uerr != nil || users <= 0 {
			errs["split_total_users"] = "Split total users must be a positive integer"
		} else {
			sub.SplitTotalUsers = users
		}

		share, serr := strconv.Atoi(strings.TrimSpace(f.MyShare))
		if serr != nil || share <= 0 {
			errs["my_share"] = "My share must be a positive integer"
		} else {
			sub.MyShare = share
		}

		if sub.SplitTotalUsers > 0 && sub.MyShare > sub.SplitTotalUsers {
			errs["my_share"] = "My share cannot be greater than split total users"
		}
	}

	if sub.CostMode == model.CostModeFixed {
		fixed, ferr := decimal.NewFromString(strings.TrimSpace(f.FixedAmount))
		switch {
		case ferr != nil:
			errs["fixed_amount"] = "Fixed amount is required and must be numeric"
		case !fixed.IsPositive():
			errs["fixed_amount"] = "Fixed amount must be greater than 0"
		default:
			sub.FixedAmount = fixed
		}
	}

	sub.BillingType = model.BillingType(f.BillingType)
	if !sub.BillingType.Valid() {
		errs["billing_type"] = "Billing type must be monthly or yearly"
	}

	interval, ierr := strconv.Atoi(strings.TrimSpace(f.BillingInterval))
	if ierr != nil || interval <= 0 {
		errs["billing_interval"] = "Billing interval must be a positive integer"
	} else {
		sub.BillingInterval = interval
	}

	if !dateonly.IsValid(f.NextBillingDate) {
		errs["next_billing_date"] = "Next billing date must be a valid YYYY-MM-DD date"
	} else {
		sub.NextBillingDate, _ = dateonly.Parse(f.NextBillingDate)
	}

	sub.Note = strings.TrimSpace(f.Note)
	if len(sub.Note) > maxNoteLength {
		errs["note"] = "Note must be 500 characters or fewer"
	}

	if len(errs) > 0 {
		return model.Subscription{}, errs
	}
	return sub, nil
}
