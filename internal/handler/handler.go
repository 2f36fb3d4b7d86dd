package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"subtracker/internal/billing"
	"subtracker/internal/database"
	"subtracker/internal/dateonly"
	"subtracker/internal/model"
)

// Config carries request-independent settings into the handlers. The
// exchange rate is threaded through explicitly so the billing engine never
// reads ambient global state.
type Config struct {
	USDToVNDRate decimal.Decimal
}

var cfg Config

// SetConfig sets the handler configuration. Call once at startup.
func SetConfig(c Config) {
	cfg = c
}

type ArchiveSubscriptionRequest struct {
	ID string `form:"id"`
}

type MarkBilledRequest struct {
	ID string `form:"id"`
}

type EditSubscriptionRequest struct {
	ID string `query:"id"`
}

// subscriptionView is a dashboard card: one subscription with its derived
// costs pre-formatted for the template.
type subscriptionView struct {
	ID          string
	Name        string
	NextBilling string
	MyCost      string
	MonthlyCost string
	Currency    model.Currency
	CostMode    model.CostMode
	Frequency   string
	Note        string
}

// reminderView is one row of the reminder list.
type reminderView struct {
	ID      string
	Name    string
	DueDate string
	Amount  string
	Bucket  billing.Bucket
	Label   string
}

type dashboardView struct {
	MonthlyTotalVND string
	RateCaption     string
	OverdueCount    int
	DueTodayCount   int
	UpcomingCount   int
	Reminders       []reminderView
	Subscriptions   []subscriptionView
}

// apiSubscription is the JSON shape of one subscription with its computed
// values attached.
type apiSubscription struct {
	model.Subscription
	MyCost         decimal.Decimal `json:"my_cost"`
	MonthlyCost    decimal.Decimal `json:"monthly_cost"`
	ReminderBucket billing.Bucket  `json:"reminder_bucket"`
}

// DashboardHandler renders the dashboard: KPI cards, the reminder list
// sorted overdue then today then tomorrow, and one card per subscription.
func DashboardHandler(c echo.Context) error {
	subscriptions, err := database.ListActiveSubscriptions()
	if err != nil {
		slog.Error("failed to fetch subscriptions", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch subscriptions")
	}

	now := time.Now()
	monthlyTotalVND := decimal.Zero
	view := dashboardView{
		RateCaption: fmt.Sprintf("1 USD = %s VND", billing.FormatMoney(cfg.USDToVNDRate, model.CurrencyVND)),
	}

	// Reminders keep list order within a bucket (already due date sorted),
	// so collecting per bucket and concatenating yields the final order.
	var overdue, today, tomorrow []reminderView

	for _, sub := range subscriptions {
		myCost := billing.MyCost(sub)
		monthlyCost := billing.MonthlyCost(sub)
		bucket := billing.Classify(sub.NextBillingDate, now)

		monthlyTotalVND = monthlyTotalVND.Add(
			billing.ConvertToVND(monthlyCost, sub.Currency, cfg.USDToVNDRate),
		)

		switch bucket {
		case billing.BucketOverdue:
			view.OverdueCount++
			overdue = append(overdue, newReminderView(sub, myCost, bucket))
		case billing.BucketToday:
			view.DueTodayCount++
			today = append(today, newReminderView(sub, myCost, bucket))
		case billing.BucketTomorrow:
			tomorrow = append(tomorrow, newReminderView(sub, myCost, bucket))
		}

		if diff := dateonly.DaysBetween(sub.NextBillingDate, now); diff >= 0 && diff <= 7 {
			view.UpcomingCount++
		}

		view.Subscriptions = append(view.Subscriptions, subscriptionView{
			ID:          sub.ID,
			Name:        sub.Name,
			NextBilling: dateonly.FormatDisplay(sub.NextBillingDate),
			MyCost:      renderAmount(myCost, sub.Currency),
			MonthlyCost: renderAmount(monthlyCost, sub.Currency),
			Currency:    sub.Currency,
			CostMode:    sub.CostMode,
			Frequency:   frequencyLabel(sub.BillingType, sub.BillingInterval),
			Note:        sub.Note,
		})
	}

	view.MonthlyTotalVND = renderAmount(monthlyTotalVND, model.CurrencyVND)
	view.Reminders = append(append(overdue, today...), tomorrow...)

	return renderTemplate(c, "web/template/dashboard.html", view)
}

// GetSubscriptionsHandler returns the active subscriptions with computed
// costs and reminder buckets as JSON.
func GetSubscriptionsHandler(c echo.Context) error {
	subscriptions, err := database.ListActiveSubscriptions()
	if err != nil {
		slog.Error("failed to fetch subscriptions", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch subscriptions")
	}

	now := time.Now()
	out := make([]apiSubscription, len(subscriptions))
	for i, sub := range subscriptions {
		out[i] = apiSubscription{
			Subscription:   sub,
			MyCost:         billing.MyCost(sub),
			MonthlyCost:    billing.MonthlyCost(sub),
			ReminderBucket: billing.Classify(sub.NextBillingDate, now),
		}
	}
	return c.JSON(http.StatusOK, out)
}

// NewSubscriptionPageHandler renders an empty create form.
func NewSubscriptionPageHandler(c echo.Context) error {
	return renderTemplate(c, "web/template/new.html", formPageData{
		Form: SubscriptionForm{BillingInterval: "1"},
	})
}

// CreateSubscriptionHandler validates a create submission; on success the
// record is persisted and the browser is sent back to the dashboard, on
// failure the form re-renders with field errors.
func CreateSubscriptionHandler(c echo.Context) error {
	var form SubscriptionForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}
	form.ID = ""

	sub, fieldErrors := form.Validate()
	if fieldErrors != nil {
		c.Response().WriteHeader(http.StatusBadRequest)
		return renderTemplate(c, "web/template/new.html", formPageData{Form: form, Errors: fieldErrors})
	}

	if err := database.CreateSubscription(&sub); err != nil {
		slog.Error("failed to create subscription", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create subscription")
	}

	slog.Info("subscription created", "id", sub.ID, "name", sub.Name)
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditSubscriptionPageHandler renders the edit form pre-filled from the
// stored record.
func EditSubscriptionPageHandler(c echo.Context) error {
	var req EditSubscriptionRequest
	if err := c.Bind(&req); err != nil || req.ID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ID is required")
	}

	sub, err := database.GetSubscriptionByID(req.ID)
	if err != nil {
		slog.Error("failed to fetch subscription", "id", req.ID, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "Subscription not found")
	}
	if sub.Archived() {
		return echo.NewHTTPError(http.StatusNotFound, "Subscription is archived")
	}

	return renderTemplate(c, "web/template/edit.html", formPageData{Form: formFromModel(sub)})
}

// UpdateSubscriptionHandler validates an edit submission and replaces
// every editable field of the record.
func UpdateSubscriptionHandler(c echo.Context) error {
	var form SubscriptionForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}
	if form.ID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ID is required")
	}

	sub, fieldErrors := form.Validate()
	if fieldErrors != nil {
		c.Response().WriteHeader(http.StatusBadRequest)
		return renderTemplate(c, "web/template/edit.html", formPageData{Form: form, Errors: fieldErrors})
	}

	if err := database.UpdateSubscription(&sub); err != nil {
		if err == database.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Subscription not found")
		}
		slog.Error("failed to update subscription", "id", sub.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update subscription")
	}

	slog.Info("subscription updated", "id", sub.ID, "name", sub.Name)
	return c.Redirect(http.StatusSeeOther, "/")
}

// ArchiveSubscriptionHandler soft-deletes a subscription. Archival is
// terminal: the record disappears from every active view.
func ArchiveSubscriptionHandler(c echo.Context) error {
	var req ArchiveSubscriptionRequest
	if err := c.Bind(&req); err != nil || req.ID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ID is required")
	}

	if err := database.ArchiveSubscription(req.ID, time.Now()); err != nil {
		if err == database.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Subscription not found")
		}
		slog.Error("failed to archive subscription", "id", req.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to archive subscription")
	}

	slog.Info("subscription archived", "id", req.ID)
	return c.Redirect(http.StatusSeeOther, "/")
}

// MarkBilledHandler advances the subscription's next billing date by one
// billing interval. Only the date changes, and only on this explicit user
// action.
func MarkBilledHandler(c echo.Context) error {
	var req MarkBilledRequest
	if err := c.Bind(&req); err != nil || req.ID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ID is required")
	}

	sub, err := database.GetSubscriptionByID(req.ID)
	if err != nil {
		slog.Error("failed to fetch subscription", "id", req.ID, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "Subscription not found")
	}
	if sub.Archived() {
		return echo.NewHTTPError(http.StatusNotFound, "Subscription is archived")
	}

	next := billing.Advance(*sub)
	if err := database.SetNextBillingDate(sub.ID, next); err != nil {
		slog.Error("failed to advance billing date", "id", sub.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark subscription billed")
	}

	slog.Info("subscription billed", "id", sub.ID, "next_billing_date", dateonly.String(next))
	return c.Redirect(http.StatusSeeOther, "/")
}

type formPageData struct {
	Form   SubscriptionForm
	Errors map[string]string
}

func formFromModel(sub *model.Subscription) SubscriptionForm {
	form := SubscriptionForm{
		ID:              sub.ID,
		Name:            sub.Name,
		TotalAmount:     sub.TotalAmount.String(),
		Currency:        string(sub.Currency),
		CostMode:        string(sub.CostMode),
		BillingType:     string(sub.BillingType),
		BillingInterval: fmt.Sprintf("%d", sub.BillingInterval),
		NextBillingDate: dateonly.String(sub.NextBillingDate),
		Note:            sub.Note,
	}
	if sub.CostMode == model.CostModeSplit {
		form.SplitTotalUsers = fmt.Sprintf("%d", sub.SplitTotalUsers)
		form.MyShare = fmt.Sprintf("%d", sub.MyShare)
	}
	if sub.CostMode == model.CostModeFixed {
		form.FixedAmount = sub.FixedAmount.String()
	}
	return form
}

func newReminderView(sub model.Subscription, myCost decimal.Decimal, bucket billing.Bucket) reminderView {
	return reminderView{
		ID:      sub.ID,
		Name:    sub.Name,
		DueDate: dateonly.FormatDisplay(sub.NextBillingDate),
		Amount:  renderAmount(myCost, sub.Currency),
		Bucket:  bucket,
		Label:   reminderLabel(bucket),
	}
}

func reminderLabel(bucket billing.Bucket) string {
	switch bucket {
	case billing.BucketOverdue:
		return "Overdue"
	case billing.BucketToday:
		return "Due Today"
	case billing.BucketTomorrow:
		return "Due Tomorrow"
	default:
		return ""
	}
}

func renderAmount(amount decimal.Decimal, currency model.Currency) string {
	return fmt.Sprintf("%s %s", billing.FormatMoney(amount, currency), currency)
}

func frequencyLabel(billingType model.BillingType, interval int) string {
	if billingType == model.BillingMonthly {
		if interval == 1 {
			return "Every month"
		}
		return fmt.Sprintf("Every %d months", interval)
	}
	if interval == 1 {
		return "Every year"
	}
	return fmt.Sprintf("Every %d years", interval)
}

func renderTemplate(c echo.Context, path string, data any) error {
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		slog.Error("failed to load template", "path", path, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load template")
	}
	return tmpl.Execute(c.Response(), data)
}
