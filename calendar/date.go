/*
Package calendar provides the date arithmetic that underlies balance
calculation: whole-day calendar dates, weekday/business-day classification,
and inclusive business-day counting against a pluggable holiday policy.

Dates carry no time-of-day and no timezone. Two dates are equal iff their
year, month and day match.
*/
package calendar

import (
	"fmt"
	"time"
)

// ISOLayout is the wire format for dates (YYYY-MM-DD).
const ISOLayout = "2006-01-02"

// =============================================================================
// DATE - Whole-day calendar date
// =============================================================================

// Date is a calendar date at day granularity, stored in UTC.
// The zero value is "no date" (IsZero reports true).
type Date struct {
	t time.Time
}

// Constructors

func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Today() Date {
	now := time.Now()
	return New(now.Year(), now.Month(), now.Day())
}

// Parse normalizes an ISO YYYY-MM-DD string into a Date.
func Parse(s string) (Date, error) {
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return New(t.Year(), t.Month(), t.Day()), nil
}

// FromTime truncates a time to its calendar date. Idempotent: applying it
// to an already-truncated value returns an equal Date.
func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Comparison

func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

// Arithmetic

func (d Date) AddDays(n int) Date { return FromTime(d.t.AddDate(0, 0, n)) }

// DaysBetween returns the signed day count from a to b.
// DaysBetween(a, a) == 0 and DaysBetween(a, b) == -DaysBetween(b, a).
func DaysBetween(a, b Date) int { return int(b.t.Sub(a.t).Hours() / 24) }

// Properties

func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsBusinessDay reports whether the date is neither a weekend day nor a
// holiday under the given policy. A nil policy means weekends-only mode.
func (d Date) IsBusinessDay(holidays HolidayPolicy) bool {
	if d.IsWeekend() {
		return false
	}
	if holidays != nil && holidays.IsHoliday(d) {
		return false
	}
	return true
}

func (d Date) String() string { return d.t.Format(ISOLayout) }

// Min returns the earlier of the two dates.
func Min(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

// Max returns the later of the two dates.
func Max(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}

// =============================================================================
// BUSINESS-DAY COUNTING
// =============================================================================

// CountBusinessDaysInclusive counts business days in [from, to].
// An inverted range (to before from) counts as an empty interval.
func CountBusinessDaysInclusive(from, to Date, holidays HolidayPolicy) int {
	if to.Before(from) {
		return 0
	}
	count := 0
	for d := from; d.BeforeOrEqual(to); d = d.AddDays(1) {
		if d.IsBusinessDay(holidays) {
			count++
		}
	}
	return count
}
