// Package database is the persistence boundary: a single sqlite table of
// subscriptions accessed through key lookups and one filtered scan.
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"subtracker/internal/dateonly"
	"subtracker/internal/model"
)

var db *sql.DB

// ErrNotFound is returned when a subscription id does not exist.
var ErrNotFound = sql.ErrNoRows

// InitDB opens the SQLite database and ensures the schema exists.
// next_billing_date is stored as the canonical YYYY-MM-DD string so the
// date-only invariant survives the round trip through storage; monetary
// amounts are stored as decimal strings, never floats.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS subscriptions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		total_amount TEXT NOT NULL,
		currency TEXT NOT NULL,
		cost_mode TEXT NOT NULL,
		split_total_users INTEGER,
		my_share INTEGER,
		fixed_amount TEXT,
		billing_type TEXT NOT NULL,
		billing_interval INTEGER NOT NULL,
		next_billing_date TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		archived_at DATETIME,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);`

	if _, err = db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create subscriptions table: %w", err)
	}

	return nil
}

// GetDB returns the database instance.
func GetDB() *sql.DB {
	return db
}

// Close closes the database connection.
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

const subscriptionColumns = `id, name, total_amount, currency, cost_mode,
	split_total_users, my_share, fixed_amount,
	billing_type, billing_interval, next_billing_date,
	note, archived_at, created_at, updated_at`

// ListActiveSubscriptions returns every non-archived subscription ordered
// by next billing date, then name.
func ListActiveSubscriptions() ([]model.Subscription, error) {
	rows, err := db.Query(
		"SELECT "+subscriptionColumns+" FROM subscriptions WHERE archived_at IS NULL ORDER BY next_billing_date ASC, name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var subscriptions []model.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, sub)
	}
	return subscriptions, rows.Err()
}

// GetSubscriptionByID retrieves a single subscription, archived or not.
func GetSubscriptionByID(id string) (*model.Subscription, error) {
	row := db.QueryRow("SELECT "+subscriptionColumns+" FROM subscriptions WHERE id = ?", id)
	sub, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// CreateSubscription persists a new subscription, assigning its id and
// timestamps. The caller is expected to have validated the record.
func CreateSubscription(sub *model.Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	_, err := db.Exec(
		`INSERT INTO subscriptions
		(id, name, total_amount, currency, cost_mode, split_total_users, my_share, fixed_amount,
		 billing_type, billing_interval, next_billing_date, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.TotalAmount.String(), string(sub.Currency), string(sub.CostMode),
		nullableInt(sub.SplitTotalUsers), nullableInt(sub.MyShare), nullableDecimal(sub.CostMode, sub.FixedAmount),
		string(sub.BillingType), sub.BillingInterval, dateonly.String(sub.NextBillingDate),
		sub.Note, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert subscription: %w", err)
	}
	return nil
}

// UpdateSubscription replaces every editable field of an existing record.
// Archival state is untouched; archived rows cannot be edited.
func UpdateSubscription(sub *model.Subscription) error {
	res, err := db.Exec(
		`UPDATE subscriptions SET
		name = ?, total_amount = ?, currency = ?, cost_mode = ?,
		split_total_users = ?, my_share = ?, fixed_amount = ?,
		billing_type = ?, billing_interval = ?, next_billing_date = ?, note = ?, updated_at = ?
		WHERE id = ? AND archived_at IS NULL`,
		sub.Name, sub.TotalAmount.String(), string(sub.Currency), string(sub.CostMode),
		nullableInt(sub.SplitTotalUsers), nullableInt(sub.MyShare), nullableDecimal(sub.CostMode, sub.FixedAmount),
		string(sub.BillingType), sub.BillingInterval, dateonly.String(sub.NextBillingDate),
		sub.Note, time.Now().UTC(), sub.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return requireRow(res)
}

// ArchiveSubscription soft-deletes a subscription. Archival is terminal:
// an already archived row is left untouched.
func ArchiveSubscription(id string, when time.Time) error {
	res, err := db.Exec(
		"UPDATE subscriptions SET archived_at = ?, updated_at = ? WHERE id = ? AND archived_at IS NULL",
		when.UTC(), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to archive subscription: %w", err)
	}
	return requireRow(res)
}

// SetNextBillingDate writes back the advanced billing date after a
// mark-billed action. No other field changes.
func SetNextBillingDate(id string, nextBillingDate time.Time) error {
	res, err := db.Exec(
		"UPDATE subscriptions SET next_billing_date = ?, updated_at = ? WHERE id = ? AND archived_at IS NULL",
		dateonly.String(nextBillingDate), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set next billing date: %w", err)
	}
	return requireRow(res)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row scanner) (model.Subscription, error) {
	var (
		sub             model.Subscription
		totalAmount     string
		currency        string
		costMode        string
		splitTotalUsers sql.NullInt64
		myShare         sql.NullInt64
		fixedAmount     sql.NullString
		billingType     string
		nextBillingDate string
		archivedAt      sql.NullTime
	)

	err := row.Scan(
		&sub.ID, &sub.Name, &totalAmount, &currency, &costMode,
		&splitTotalUsers, &myShare, &fixedAmount,
		&billingType, &sub.BillingInterval, &nextBillingDate,
		&sub.Note, &archivedAt, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return model.Subscription{}, err
	}

	sub.TotalAmount, err = decimal.NewFromString(totalAmount)
	if err != nil {
		return model.Subscription{}, fmt.Errorf("failed to parse total amount: %w", err)
	}
	sub.Currency = model.Currency(currency)
	sub.CostMode = model.CostMode(costMode)
	sub.SplitTotalUsers = int(splitTotalUsers.Int64)
	sub.MyShare = int(myShare.Int64)
	if fixedAmount.Valid {
		sub.FixedAmount, err = decimal.NewFromString(fixedAmount.String)
		if err != nil {
			return model.Subscription{}, fmt.Errorf("failed to parse fixed amount: %w", err)
		}
	}
	sub.BillingType = model.BillingType(billingType)
	sub.NextBillingDate, err = dateonly.Parse(nextBillingDate)
	if err != nil {
		return model.Subscription{}, fmt.Errorf("failed to parse next billing date: %w", err)
	}
	if archivedAt.Valid {
		t := archivedAt.Time
		sub.ArchivedAt = &t
	}
	return sub, nil
}

func nullableInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func nullableDecimal(mode model.CostMode, v decimal.Decimal) any {
	if mode != model.CostModeFixed {
		return nil
	}
	return v.String()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
