package calendar_test

import (
	"testing"
	"time"

	"github.com/warp/leave-engine/calendar"
)

func date(year int, month time.Month, day int) calendar.Date {
	return calendar.New(year, month, day)
}

// =============================================================================
// PARSING AND NORMALIZATION
// =============================================================================

func TestParse_RoundTripsThroughString(t *testing.T) {
	d, err := calendar.Parse("2026-01-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(date(2026, time.January, 5)) {
		t.Errorf("expected 2026-01-05, got %s", d)
	}

	// Normalization is idempotent: parse(string(parse(x))) == parse(x)
	again, err := calendar.Parse(d.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again.Equal(d) {
		t.Errorf("normalization not idempotent: %s != %s", again, d)
	}
}

func TestParse_RejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "2026-13-01", "01/05/2026"} {
		if _, err := calendar.Parse(input); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestFromTime_TruncatesTimeOfDay(t *testing.T) {
	noon := time.Date(2026, time.March, 10, 12, 34, 56, 0, time.UTC)
	if !calendar.FromTime(noon).Equal(date(2026, time.March, 10)) {
		t.Errorf("expected truncation to 2026-03-10, got %s", calendar.FromTime(noon))
	}
}

// =============================================================================
// DAY ARITHMETIC
// =============================================================================

func TestDaysBetween_Properties(t *testing.T) {
	a := date(2026, time.January, 15)

	if got := calendar.DaysBetween(a, a); got != 0 {
		t.Errorf("DaysBetween(a, a) = %d, want 0", got)
	}

	for _, n := range []int{1, 7, 30, 365, -1, -400, 0} {
		b := a.AddDays(n)
		if got := calendar.DaysBetween(a, b); got != n {
			t.Errorf("DaysBetween(a, a+%d) = %d, want %d", n, got, n)
		}
		if got := calendar.DaysBetween(b, a); got != -n {
			t.Errorf("DaysBetween(a+%d, a) = %d, want %d", n, got, -n)
		}
	}
}

func TestAddDays_NoDriftAcrossBoundaries(t *testing.T) {
	// Month boundary
	if got := date(2026, time.January, 31).AddDays(1); !got.Equal(date(2026, time.February, 1)) {
		t.Errorf("Jan 31 + 1 = %s, want 2026-02-01", got)
	}
	// Year boundary, backwards
	if got := date(2026, time.January, 1).AddDays(-1); !got.Equal(date(2025, time.December, 31)) {
		t.Errorf("Jan 1 - 1 = %s, want 2025-12-31", got)
	}
	// Leap day
	if got := date(2028, time.February, 28).AddDays(1); !got.Equal(date(2028, time.February, 29)) {
		t.Errorf("Feb 28 2028 + 1 = %s, want 2028-02-29", got)
	}
}

// =============================================================================
// WEEKDAY AND BUSINESS-DAY CLASSIFICATION
// =============================================================================

func TestIsWeekend(t *testing.T) {
	// 2026-01-05 is a Monday
	monday := date(2026, time.January, 5)
	if monday.IsWeekend() {
		t.Error("2026-01-05 (Monday) classified as weekend")
	}
	if !monday.AddDays(5).IsWeekend() { // Saturday
		t.Error("2026-01-10 (Saturday) not classified as weekend")
	}
	if !monday.AddDays(6).IsWeekend() { // Sunday
		t.Error("2026-01-11 (Sunday) not classified as weekend")
	}
}

func TestCountBusinessDaysInclusive_NoHolidays(t *testing.T) {
	none := calendar.NoHolidays{}
	monday := date(2026, time.January, 5)

	// Mon-Fri span of 5 consecutive calendar days
	if got := calendar.CountBusinessDaysInclusive(monday, monday.AddDays(4), none); got != 5 {
		t.Errorf("Mon-Fri count = %d, want 5", got)
	}
	// Full 7-day week still has 5 business days
	if got := calendar.CountBusinessDaysInclusive(monday, monday.AddDays(6), none); got != 5 {
		t.Errorf("full week count = %d, want 5", got)
	}
	// Single weekend day
	if got := calendar.CountBusinessDaysInclusive(monday.AddDays(5), monday.AddDays(5), none); got != 0 {
		t.Errorf("Saturday count = %d, want 0", got)
	}
	// Inverted range is an empty interval, not an error
	if got := calendar.CountBusinessDaysInclusive(monday.AddDays(4), monday, none); got != 0 {
		t.Errorf("inverted range count = %d, want 0", got)
	}
}

func TestCountBusinessDaysInclusive_HolidayExcluded(t *testing.T) {
	// Policy that marks Wed 2026-01-07 as a holiday
	holidays := fixedHolidays{date(2026, time.January, 7)}
	monday := date(2026, time.January, 5)

	if got := calendar.CountBusinessDaysInclusive(monday, monday.AddDays(4), holidays); got != 4 {
		t.Errorf("Mon-Fri with one holiday = %d, want 4", got)
	}
}

type fixedHolidays []calendar.Date

func (f fixedHolidays) IsHoliday(d calendar.Date) bool {
	for _, h := range f {
		if h.Equal(d) {
			return true
		}
	}
	return false
}
