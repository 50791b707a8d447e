package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// FORECAST SERIES - Dense day-by-day balance projection
// =============================================================================

// Point is one entry of a forecast series.
type Point struct {
	Date    calendar.Date
	Balance decimal.Decimal
	Payday  bool
}

// SplitHorizonDays is the horizon the split view divides in two.
const SplitHorizonDays = 365

// Series produces dayCount+1 points covering [start, start+dayCount], one
// per calendar day including weekends and holidays. Entries landing on a
// payday are marked; a payday outside the window is dropped, not clamped.
//
// The series is a pure function of the snapshot: it is recomputed fresh on
// every call and any settings or ledger mutation invalidates prior output.
func (c *Calculator) Series(start calendar.Date, dayCount int) []Point {
	if dayCount < 0 {
		dayCount = 0
	}

	points := make([]Point, dayCount+1)
	for i := range points {
		d := start.AddDays(i)
		points[i] = Point{Date: d, Balance: c.BalanceOn(d)}
	}

	end := start.AddDays(dayCount)
	for _, payday := range c.snap.Config.Schedule().PaydaysInRange(start, end) {
		if offset := calendar.DaysBetween(start, payday); offset >= 0 && offset <= dayCount {
			points[offset].Payday = true
		}
	}

	return points
}

// SplitSeries windows a 365-day horizon into two consecutive halves (days
// 0-182 and 183-364) for side-by-side rendering. It is a pure windowing of
// Series and carries no independent logic.
func (c *Calculator) SplitSeries(start calendar.Date) (first, second []Point) {
	full := c.Series(start, SplitHorizonDays-1)
	return full[:SplitHorizonDays/2+1], full[SplitHorizonDays/2+1:]
}

// RoundedBalance is the two-decimal presentation value of a point.
func (p Point) RoundedBalance() decimal.Decimal { return p.Balance.Round(2) }
