// Package payroll counts and enumerates paydays. A schedule is a first
// payday plus a fixed period length in days; together they define an
// arithmetic sequence of paydays with no payday before the first.
package payroll

import "github.com/warp/leave-engine/calendar"

// DefaultPeriodDays is the fallback period when the configured length is
// missing or non-positive (a biweekly pay cycle).
const DefaultPeriodDays = 14

// =============================================================================
// SCHEDULE
// =============================================================================

type Schedule struct {
	FirstPayday calendar.Date
	PeriodDays  int
}

// New clamps a non-positive period to DefaultPeriodDays.
func New(firstPayday calendar.Date, periodDays int) Schedule {
	if periodDays <= 0 {
		periodDays = DefaultPeriodDays
	}
	return Schedule{FirstPayday: firstPayday, PeriodDays: periodDays}
}

// period guards against a zero-value Schedule constructed directly.
func (s Schedule) period() int {
	if s.PeriodDays <= 0 {
		return DefaultPeriodDays
	}
	return s.PeriodDays
}

// CountPaydaysUpTo returns how many paydays have occurred on or before
// target. The first payday counts as period 1 once reached; before it the
// count is 0.
func (s Schedule) CountPaydaysUpTo(target calendar.Date) int {
	if target.Before(s.FirstPayday) {
		return 0
	}
	return calendar.DaysBetween(s.FirstPayday, target)/s.period() + 1
}

// NextPaydayOnOrAfter returns the earliest payday on or after date.
func (s Schedule) NextPaydayOnOrAfter(date calendar.Date) calendar.Date {
	if date.BeforeOrEqual(s.FirstPayday) {
		return s.FirstPayday
	}
	diff := calendar.DaysBetween(s.FirstPayday, date)
	periods := diff / s.period()
	if diff%s.period() != 0 {
		periods++
	}
	return s.FirstPayday.AddDays(periods * s.period())
}

// PaydaysInRange returns every payday in [start, end], strictly increasing.
// The slice is computed fresh on each call; no iterator state is shared.
func (s Schedule) PaydaysInRange(start, end calendar.Date) []calendar.Date {
	if end.Before(start) {
		return nil
	}
	var paydays []calendar.Date
	for d := s.NextPaydayOnOrAfter(start); d.BeforeOrEqual(end); d = d.AddDays(s.period()) {
		paydays = append(paydays, d)
	}
	return paydays
}
