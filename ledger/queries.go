package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// LEDGER QUERIES - Read-only aggregates over the record collections
// =============================================================================

// LatestLeaveDate returns the maximum end date across all leave records.
// The second return is false when the ledger holds no leave.
func (c *Calculator) LatestLeaveDate() (calendar.Date, bool) {
	var latest calendar.Date
	found := false
	for _, r := range c.snap.Leave {
		if end := r.EndDate(); !found || end.After(latest) {
			latest = end
			found = true
		}
	}
	return latest, found
}

// TotalFutureLeaveHours sums the hours of every leave record's portion
// falling on or after from. Ranges that started earlier are clipped at
// from on the left, not excluded.
func (c *Calculator) TotalFutureLeaveHours(from calendar.Date) decimal.Decimal {
	total := decimal.Zero
	for _, r := range c.snap.Leave {
		total = total.Add(r.HoursFrom(from, c.holidays))
	}
	return total
}

// PaydaysInRange exposes the pay-schedule enumeration for the configured
// schedule, for callers that only hold a calculator.
func (c *Calculator) PaydaysInRange(start, end calendar.Date) []calendar.Date {
	return c.snap.Config.Schedule().PaydaysInRange(start, end)
}
