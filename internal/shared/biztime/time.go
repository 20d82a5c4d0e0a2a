// Package biztime centralizes the time handling rules for billing and quota
// accounting. All persisted timestamps are UTC; month boundaries follow
// calendar months in UTC.
package biztime

import "time"

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// MonthKey formats t as the YYYY-MM key used for monthly usage rows.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// CurrentMonthKey returns the month key for the current UTC time.
func CurrentMonthKey() string {
	return MonthKey(NowUTC())
}

// StartOfMonth returns midnight UTC on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddBillingMonths advances t by n calendar months. A start on Jan 31 lands
// on Mar 2/3 rather than clamping, matching time.Time.AddDate.
func AddBillingMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// AddBillingYears advances t by n calendar years.
func AddBillingYears(t time.Time, n int) time.Time {
	return t.AddDate(n, 0, 0)
}
