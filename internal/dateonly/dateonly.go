// Package dateonly implements calendar-date arithmetic for billing dates.
//
// A billing date has no meaningful time of day. Every operation here first
// reduces its inputs to a plain year/month/day and pins the time component
// to 12:00 UTC, so a date written in one time zone never reads back as the
// previous or next day in another. Storing dates at midnight UTC would
// shift into the previous day under negative-offset zones; noon is immune
// to every real-world offset.
package dateonly

import (
	"math"
	"regexp"
	"time"
)

// Layout is the canonical wire and storage format for date-only values.
const Layout = "2006-01-02"

// DisplayLayout is the human-readable presentation format ("02 Jan 2006").
const DisplayLayout = "02 Jan 2006"

var pattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Normalize returns t reduced to its UTC calendar date, pinned to 12:00 UTC.
// Normalizing an already-normalized value is a no-op, so prior time-of-day
// drift cannot accumulate through repeated arithmetic.
func Normalize(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// String formats the UTC calendar date of t as YYYY-MM-DD.
func String(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Parse converts a YYYY-MM-DD string into its normalized date value.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(t), nil
}

// IsValid reports whether s is a well-formed YYYY-MM-DD string naming a
// real calendar day. The round-trip check rejects inputs like 2024-02-30
// as well as any value the formatter would not reproduce exactly.
func IsValid(s string) bool {
	if !pattern.MatchString(s) {
		return false
	}
	t, err := Parse(s)
	if err != nil {
		return false
	}
	return String(t) == s
}

// DaysBetween returns the signed number of calendar days from "today" to
// target. Today is now's local calendar date; target contributes only its
// date-only value. The time of day of either input never changes the
// result, which keeps reminder bucketing stable across time zones.
func DaysBetween(target, now time.Time) int {
	t := Normalize(target)
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	// t sits at noon and today at midnight; flooring the half-day offset
	// away yields the whole-day difference for both signs.
	return int(math.Floor(t.Sub(today).Hours() / 24))
}

// AddMonths advances the date-only value of t by monthDelta calendar
// months. The day of month clamps to the last day of the target month when
// it would overflow (Jan 31 + 1 month is Feb 28, or Feb 29 in a leap
// year). Negative deltas walk backwards with the same clamping.
func AddMonths(t time.Time, monthDelta int) time.Time {
	n := Normalize(t)
	y, m, d := n.Date()

	months := int(m) - 1 + monthDelta
	y += months / 12
	months %= 12
	if months < 0 {
		months += 12
		y--
	}
	month := time.Month(months + 1)

	if last := daysIn(y, month); d > last {
		d = last
	}
	return time.Date(y, month, d, 12, 0, 0, 0, time.UTC)
}

// FormatDisplay renders the date-only value of t as "DD Mon YYYY".
func FormatDisplay(t time.Time) string {
	return Normalize(t).Format(DisplayLayout)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}
