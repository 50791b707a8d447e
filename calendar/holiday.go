package calendar

import (
	"sync"
	"time"
)

// =============================================================================
// HOLIDAY POLICY - Pluggable "is this date a holiday?" capability
// =============================================================================

// HolidayPolicy reports holiday membership for a date. The rest of the
// system depends only on this interface, not on which calendar is used.
type HolidayPolicy interface {
	IsHoliday(d Date) bool
}

// NoHolidays is the default policy: weekends are the only non-business days.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(Date) bool { return false }

// =============================================================================
// FEDERAL OBSERVANCE - U.S. federal-style holiday calendar
// =============================================================================

// FederalObservance implements the fixed U.S. federal holiday calendar with
// observed-date shifting: a fixed-date holiday falling on Saturday is
// observed the preceding Friday, on Sunday the following Monday. Floating
// holidays ("Nth weekday of month", "last weekday of month") land on
// weekdays by construction and never shift.
//
// The holiday set is computed per year and cached for repeated queries.
type FederalObservance struct {
	mu    sync.Mutex
	years map[int]map[Date]struct{}
}

func NewFederalObservance() *FederalObservance {
	return &FederalObservance{years: make(map[int]map[Date]struct{})}
}

func (f *FederalObservance) IsHoliday(d Date) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	set, ok := f.years[d.Year()]
	if !ok {
		set = federalHolidays(d.Year())
		f.years[d.Year()] = set
	}
	_, ok = set[d]
	return ok
}

func federalHolidays(year int) map[Date]struct{} {
	set := make(map[Date]struct{})

	fixed := []Date{
		New(year, time.January, 1),   // New Year's Day
		New(year, time.June, 19),     // Juneteenth
		New(year, time.July, 4),      // Independence Day
		New(year, time.November, 11), // Veterans Day
		New(year, time.December, 25), // Christmas Day
	}
	for _, d := range fixed {
		set[observed(d)] = struct{}{}
	}

	// Next year's New Year's Day on a Saturday is observed on December 31
	// of this year; no other observance crosses a year boundary.
	if next := observed(New(year+1, time.January, 1)); next.Year() == year {
		set[next] = struct{}{}
	}

	set[nthWeekday(year, time.January, time.Monday, 3)] = struct{}{}    // MLK Day
	set[nthWeekday(year, time.February, time.Monday, 3)] = struct{}{}   // Washington's Birthday
	set[lastWeekday(year, time.May, time.Monday)] = struct{}{}          // Memorial Day
	set[nthWeekday(year, time.September, time.Monday, 1)] = struct{}{}  // Labor Day
	set[nthWeekday(year, time.October, time.Monday, 2)] = struct{}{}    // Columbus Day
	set[nthWeekday(year, time.November, time.Thursday, 4)] = struct{}{} // Thanksgiving

	return set
}

// observed shifts a Saturday holiday to Friday and a Sunday holiday to Monday.
func observed(d Date) Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(-1)
	case time.Sunday:
		return d.AddDays(1)
	default:
		return d
	}
}

// nthWeekday returns the nth occurrence (1-based) of a weekday in a month.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) Date {
	d := New(year, month, 1)
	offset := (int(weekday) - int(d.Weekday()) + 7) % 7
	return d.AddDays(offset + (n-1)*7)
}

// lastWeekday returns the final occurrence of a weekday in a month.
func lastWeekday(year int, month time.Month, weekday time.Weekday) Date {
	d := New(year, month+1, 1).AddDays(-1) // last day of month
	offset := (int(d.Weekday()) - int(weekday) + 7) % 7
	return d.AddDays(-offset)
}
