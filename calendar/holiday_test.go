package calendar_test

import (
	"testing"
	"time"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// FEDERAL OBSERVANCE CALENDAR
// =============================================================================

func TestFederalObservance_FloatingHolidays2026(t *testing.T) {
	fed := calendar.NewFederalObservance()

	floating := []calendar.Date{
		date(2026, time.January, 19),   // MLK Day: 3rd Monday of January
		date(2026, time.February, 16),  // Washington's Birthday: 3rd Monday of February
		date(2026, time.May, 25),       // Memorial Day: last Monday of May
		date(2026, time.September, 7),  // Labor Day: 1st Monday of September
		date(2026, time.October, 12),   // Columbus Day: 2nd Monday of October
		date(2026, time.November, 26),  // Thanksgiving: 4th Thursday of November
	}
	for _, d := range floating {
		if !fed.IsHoliday(d) {
			t.Errorf("expected %s to be a holiday", d)
		}
	}
}

func TestFederalObservance_SaturdayObservedFriday(t *testing.T) {
	// GIVEN: July 4, 2026 falls on a Saturday
	// THEN: the holiday is observed the preceding Friday
	fed := calendar.NewFederalObservance()

	if fed.IsHoliday(date(2026, time.July, 4)) {
		t.Error("Saturday July 4 should not itself be the observed holiday")
	}
	if !fed.IsHoliday(date(2026, time.July, 3)) {
		t.Error("expected Friday July 3 2026 to be the observed holiday")
	}
}

func TestFederalObservance_SundayObservedMonday(t *testing.T) {
	// GIVEN: July 4, 2027 falls on a Sunday
	// THEN: the holiday is observed the following Monday
	fed := calendar.NewFederalObservance()

	if !fed.IsHoliday(date(2027, time.July, 5)) {
		t.Error("expected Monday July 5 2027 to be the observed holiday")
	}
}

func TestFederalObservance_SaturdayNewYearsObservedInPriorYear(t *testing.T) {
	// GIVEN: January 1, 2028 falls on a Saturday
	// THEN: the holiday is observed Friday December 31, 2027 - the lookup
	// for that Friday goes through the 2027 set, not the 2028 one
	fed := calendar.NewFederalObservance()

	if !fed.IsHoliday(date(2027, time.December, 31)) {
		t.Error("expected Friday December 31 2027 to be the observed New Year's holiday")
	}
	if fed.IsHoliday(date(2028, time.January, 1)) {
		t.Error("Saturday January 1 2028 should not itself be the observed holiday")
	}

	// Same answer when the 2027 set was cached by an earlier query.
	fresh := calendar.NewFederalObservance()
	fresh.IsHoliday(date(2027, time.July, 5))
	if !fresh.IsHoliday(date(2027, time.December, 31)) {
		t.Error("expected the cached 2027 set to carry the observed New Year's holiday")
	}
}

func TestFederalObservance_WeekdayFixedHolidayUnshifted(t *testing.T) {
	fed := calendar.NewFederalObservance()

	// Christmas 2026 is a Friday; observed on the day itself
	if !fed.IsHoliday(date(2026, time.December, 25)) {
		t.Error("expected Christmas 2026 to be a holiday")
	}
	// Juneteenth 2026 is a Friday
	if !fed.IsHoliday(date(2026, time.June, 19)) {
		t.Error("expected Juneteenth 2026 to be a holiday")
	}
}

func TestFederalObservance_OrdinaryDaysAreNotHolidays(t *testing.T) {
	fed := calendar.NewFederalObservance()

	for _, d := range []calendar.Date{
		date(2026, time.January, 5),
		date(2026, time.March, 17),
		date(2026, time.August, 12),
	} {
		if fed.IsHoliday(d) {
			t.Errorf("did not expect %s to be a holiday", d)
		}
	}
}

func TestFederalObservance_CachedQueriesStayConsistent(t *testing.T) {
	// Repeated queries against the same year hit the per-year cache and
	// must return the same answer.
	fed := calendar.NewFederalObservance()
	d := date(2026, time.November, 26)

	first := fed.IsHoliday(d)
	for i := 0; i < 10; i++ {
		if fed.IsHoliday(d) != first {
			t.Fatal("cached holiday lookup changed its answer")
		}
	}
}
