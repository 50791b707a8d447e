package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/warp/leave-engine/ledger"
)

// =============================================================================
// FORECAST SERIES
// =============================================================================

func TestSeries_DenseOverTheHorizon(t *testing.T) {
	// GIVEN: a 30-day horizon from 2026-01-01
	// THEN: 31 entries, one per calendar day including weekends
	c := calc(ledger.Snapshot{Config: baseConfig()})
	start := date(2026, time.January, 1)

	series := c.Series(start, 30)
	require.Len(t, series, 31)

	for i, p := range series {
		require.True(t, p.Date.Equal(start.AddDays(i)), "entry %d has date %s", i, p.Date)
		require.True(t, p.Balance.Equal(c.BalanceOn(p.Date)), "entry %d disagrees with BalanceOn", i)
	}
}

func TestSeries_MarksPaydaysInsideWindow(t *testing.T) {
	// Paydays Jan 8 and Jan 22 fall at offsets 7 and 21 of a series
	// starting Jan 1.
	c := calc(ledger.Snapshot{Config: baseConfig()})
	series := c.Series(date(2026, time.January, 1), 30)

	for i, p := range series {
		want := i == 7 || i == 21
		require.Equal(t, want, p.Payday, "payday mark at offset %d", i)
	}
}

func TestSeries_PaydayOutsideWindowDropped(t *testing.T) {
	// A 6-day window ending the day before the first payday carries no mark.
	c := calc(ledger.Snapshot{Config: baseConfig()})
	series := c.Series(date(2026, time.January, 1), 6)

	require.Len(t, series, 7)
	for i, p := range series {
		require.False(t, p.Payday, "unexpected payday mark at offset %d", i)
	}
}

func TestSeries_NegativeDayCountYieldsSinglePoint(t *testing.T) {
	c := calc(ledger.Snapshot{Config: baseConfig()})
	series := c.Series(date(2026, time.January, 1), -3)
	require.Len(t, series, 1)
}

func TestSeries_ReflectsLedgerEdits(t *testing.T) {
	// The series is a pure function of the snapshot: a calculator built
	// over edited state produces a different series, with no carryover.
	start := date(2026, time.January, 1)
	before := calc(ledger.Snapshot{Config: baseConfig()}).Series(start, 14)

	edited := ledger.Snapshot{
		Config: baseConfig(),
		Leave:  []ledger.LeaveRecord{ledger.NewLeaveRange(date(2026, time.January, 5), date(2026, time.January, 9), "")},
	}
	after := calc(edited).Series(start, 14)

	require.True(t, before[10].Balance.Equal(after[10].Balance.Add(hours("40"))),
		"expected 40 hours of deduction after the edit")
}

// =============================================================================
// SPLIT HORIZON
// =============================================================================

func TestSplitSeries_WindowsAreConsecutive(t *testing.T) {
	c := calc(ledger.Snapshot{Config: baseConfig()})
	start := date(2026, time.January, 1)

	first, second := c.SplitSeries(start)
	require.Len(t, first, 183)  // days 0-182
	require.Len(t, second, 182) // days 183-364

	require.True(t, first[0].Date.Equal(start))
	require.True(t, second[0].Date.Equal(first[len(first)-1].Date.AddDays(1)),
		"second window must start the day after the first ends")
	require.True(t, second[len(second)-1].Date.Equal(start.AddDays(364)))
}

func TestSplitSeries_MatchesFullSeries(t *testing.T) {
	// The split view is a pure windowing of the same generator.
	c := calc(ledger.Snapshot{Config: baseConfig()})
	start := date(2026, time.January, 1)

	full := c.Series(start, 364)
	first, second := c.SplitSeries(start)

	for i, p := range first {
		require.True(t, p.Balance.Equal(full[i].Balance), "first window diverges at %d", i)
	}
	for i, p := range second {
		require.True(t, p.Balance.Equal(full[183+i].Balance), "second window diverges at %d", i)
	}
}
