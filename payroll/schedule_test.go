package payroll_test

import (
	"testing"
	"time"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/payroll"
)

func date(year int, month time.Month, day int) calendar.Date {
	return calendar.New(year, month, day)
}

// biweekly starting on the first payday used throughout the balance tests.
func biweekly2026() payroll.Schedule {
	return payroll.New(date(2026, time.January, 8), 14)
}

// =============================================================================
// PAYDAY COUNTING
// =============================================================================

func TestCountPaydaysUpTo_BeforeFirstPaydayIsZero(t *testing.T) {
	s := biweekly2026()

	if got := s.CountPaydaysUpTo(date(2026, time.January, 7)); got != 0 {
		t.Errorf("count before first payday = %d, want 0", got)
	}
	if got := s.CountPaydaysUpTo(date(2025, time.June, 1)); got != 0 {
		t.Errorf("count far before first payday = %d, want 0", got)
	}
}

func TestCountPaydaysUpTo_FirstPaydayCountsAsOne(t *testing.T) {
	s := biweekly2026()

	if got := s.CountPaydaysUpTo(date(2026, time.January, 8)); got != 1 {
		t.Errorf("count on first payday = %d, want 1", got)
	}
}

func TestCountPaydaysUpTo_TwoPeriodsIn(t *testing.T) {
	// GIVEN: first payday 2026-01-08, 14-day period
	// THEN: by 2026-01-22 two paydays have occurred
	s := biweekly2026()

	if got := s.CountPaydaysUpTo(date(2026, time.January, 22)); got != 2 {
		t.Errorf("count at second payday = %d, want 2", got)
	}
	// The day before the second payday still counts only the first
	if got := s.CountPaydaysUpTo(date(2026, time.January, 21)); got != 1 {
		t.Errorf("count just before second payday = %d, want 1", got)
	}
}

// =============================================================================
// NEXT PAYDAY
// =============================================================================

func TestNextPaydayOnOrAfter_Properties(t *testing.T) {
	s := biweekly2026()

	for _, d := range []calendar.Date{
		date(2025, time.December, 1), // before first
		date(2026, time.January, 8),  // exactly first
		date(2026, time.January, 9),  // just after a payday
		date(2026, time.January, 22), // exactly a later payday
		date(2026, time.June, 3),     // mid-sequence
	} {
		next := s.NextPaydayOnOrAfter(d)
		if next.Before(d) {
			t.Errorf("next payday %s precedes query date %s", next, d)
		}
		if diff := calendar.DaysBetween(s.FirstPayday, next); diff%s.PeriodDays != 0 {
			t.Errorf("next payday %s not congruent to first payday mod %d", next, s.PeriodDays)
		}
	}
}

func TestNextPaydayOnOrAfter_BeforeFirstReturnsFirst(t *testing.T) {
	s := biweekly2026()

	if got := s.NextPaydayOnOrAfter(date(2025, time.July, 1)); !got.Equal(s.FirstPayday) {
		t.Errorf("next payday before first = %s, want %s", got, s.FirstPayday)
	}
}

func TestNextPaydayOnOrAfter_OnPaydayReturnsSameDay(t *testing.T) {
	s := biweekly2026()
	payday := date(2026, time.January, 22)

	if got := s.NextPaydayOnOrAfter(payday); !got.Equal(payday) {
		t.Errorf("next payday on payday = %s, want %s", got, payday)
	}
}

// =============================================================================
// RANGE ENUMERATION
// =============================================================================

func TestPaydaysInRange_January2026(t *testing.T) {
	// GIVEN: first payday 2026-01-08, 14-day period
	// WHEN: enumerating paydays in January 2026
	// THEN: exactly [2026-01-08, 2026-01-22]
	s := biweekly2026()

	paydays := s.PaydaysInRange(date(2026, time.January, 1), date(2026, time.January, 31))
	want := []calendar.Date{date(2026, time.January, 8), date(2026, time.January, 22)}

	if len(paydays) != len(want) {
		t.Fatalf("got %d paydays, want %d", len(paydays), len(want))
	}
	for i := range want {
		if !paydays[i].Equal(want[i]) {
			t.Errorf("payday[%d] = %s, want %s", i, paydays[i], want[i])
		}
	}
}

func TestPaydaysInRange_EmptyWhenNoneFall(t *testing.T) {
	s := biweekly2026()

	if got := s.PaydaysInRange(date(2026, time.January, 9), date(2026, time.January, 21)); len(got) != 0 {
		t.Errorf("expected no paydays between the first two, got %v", got)
	}
	// Inverted range
	if got := s.PaydaysInRange(date(2026, time.February, 1), date(2026, time.January, 1)); got != nil {
		t.Errorf("expected nil for inverted range, got %v", got)
	}
}

func TestPaydaysInRange_RecomputedFreshEachCall(t *testing.T) {
	s := biweekly2026()
	start, end := date(2026, time.January, 1), date(2026, time.March, 31)

	first := s.PaydaysInRange(start, end)
	second := s.PaydaysInRange(start, end)
	if len(first) != len(second) {
		t.Fatalf("restarted enumeration differs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Errorf("enumeration[%d] differs: %s vs %s", i, first[i], second[i])
		}
	}
}

// =============================================================================
// CLAMPING
// =============================================================================

func TestNew_ClampsNonPositivePeriod(t *testing.T) {
	for _, bad := range []int{0, -5} {
		s := payroll.New(date(2026, time.January, 8), bad)
		if s.PeriodDays != payroll.DefaultPeriodDays {
			t.Errorf("period %d clamped to %d, want %d", bad, s.PeriodDays, payroll.DefaultPeriodDays)
		}
	}
}

func TestZeroValueSchedule_IsStillTotal(t *testing.T) {
	// A schedule built without New must not divide by zero.
	var s payroll.Schedule
	s.FirstPayday = date(2026, time.January, 8)

	if got := s.CountPaydaysUpTo(date(2026, time.March, 1)); got <= 0 {
		t.Errorf("zero-value schedule count = %d, want positive", got)
	}
}
