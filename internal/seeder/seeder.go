// Package seeder loads development sample data.
package seeder

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"subtracker/internal/database"
	"subtracker/internal/dateonly"
	"subtracker/internal/model"
)

// InsertSampleData wipes the subscriptions table and inserts a small set
// of mixed-currency, mixed-mode subscriptions with billing dates spread
// around today, so the reminder buckets all have something to show.
func InsertSampleData() error {
	db := database.GetDB()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM subscriptions"); err != nil {
		return fmt.Errorf("failed to clear subscriptions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	today := dateonly.Normalize(time.Now())

	samples := []model.Subscription{
		{
			Name:            "Netflix Premium",
			TotalAmount:     decimal.NewFromInt(260000),
			Currency:        model.CurrencyVND,
			CostMode:        model.CostModeSplit,
			SplitTotalUsers: 4,
			MyShare:         1,
			BillingType:     model.BillingMonthly,
			BillingInterval: 1,
			NextBillingDate: today.AddDate(0, 0, -1),
			Note:            "Family plan shared with roommates",
		},
		{
			Name:            "Spotify",
			TotalAmount:     decimal.NewFromInt(59000),
			Currency:        model.CurrencyVND,
			CostMode:        model.CostModeFull,
			BillingType:     model.BillingMonthly,
			BillingInterval: 1,
			NextBillingDate: today,
		},
		{
			Name:            "iCloud+ 200GB",
			TotalAmount:     decimal.RequireFromString("2.99"),
			Currency:        model.CurrencyUSD,
			CostMode:        model.CostModeFull,
			BillingType:     model.BillingMonthly,
			BillingInterval: 1,
			NextBillingDate: today.AddDate(0, 0, 1),
		},
		{
			Name:            "YouTube Premium",
			TotalAmount:     decimal.RequireFromString("13.99"),
			Currency:        model.CurrencyUSD,
			CostMode:        model.CostModeFixed,
			FixedAmount:     decimal.RequireFromString("4.50"),
			BillingType:     model.BillingMonthly,
			BillingInterval: 1,
			NextBillingDate: today.AddDate(0, 0, 5),
			Note:            "Fixed share of the family group",
		},
		{
			Name:            "Domain renewal",
			TotalAmount:     decimal.RequireFromString("12.00"),
			Currency:        model.CurrencyUSD,
			CostMode:        model.CostModeFull,
			BillingType:     model.BillingYearly,
			BillingInterval: 1,
			NextBillingDate: dateonly.AddMonths(today, 7),
		},
		{
			Name:            "Gym membership",
			TotalAmount:     decimal.NewFromInt(1200000),
			Currency:        model.CurrencyVND,
			CostMode:        model.CostModeFull,
			BillingType:     model.BillingMonthly,
			BillingInterval: 3,
			NextBillingDate: dateonly.AddMonths(today, 2),
			Note:            "Quarterly billing",
		},
	}

	for i := range samples {
		if err := database.CreateSubscription(&samples[i]); err != nil {
			return fmt.Errorf("failed to seed %q: %w", samples[i].Name, err)
		}
		slog.Info("seeded subscription", "id", samples[i].ID, "name", samples[i].Name)
	}

	return nil
}
