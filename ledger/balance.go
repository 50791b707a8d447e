package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// CALCULATOR - Point-in-time balance over an explicit snapshot
// =============================================================================

// Calculator answers balance queries against one snapshot and one holiday
// policy. It never mutates the snapshot and holds no caches, so a query is
// idempotent for unchanged state.
type Calculator struct {
	snap     Snapshot
	holidays calendar.HolidayPolicy
}

// NewCalculator builds a calculator. A nil holiday policy means
// weekends-only business days.
func NewCalculator(snap Snapshot, holidays calendar.HolidayPolicy) *Calculator {
	if holidays == nil {
		holidays = calendar.NoHolidays{}
	}
	return &Calculator{snap: snap, holidays: holidays}
}

// Snapshot returns the state the calculator reads.
func (c *Calculator) Snapshot() Snapshot { return c.snap }

// Holidays returns the active holiday policy.
func (c *Calculator) Holidays() calendar.HolidayPolicy { return c.holidays }

// BalanceOn computes the leave-hours balance as of target:
// starting balance, plus one accrual per payday reached, minus taken leave
// hours through target, plus credits dated on or before target.
//
// The result is exact; rounding to two decimals is a presentation concern.
func (c *Calculator) BalanceOn(target calendar.Date) decimal.Decimal {
	cfg := c.snap.Config
	balance := cfg.StartBalance

	sched := cfg.Schedule()
	if n := sched.CountPaydaysUpTo(target); n > 0 {
		balance = balance.Add(cfg.accrual().Mul(decimal.NewFromInt(int64(n))))
	}

	for _, r := range c.snap.Leave {
		balance = balance.Sub(r.HoursThrough(target, c.holidays))
	}

	for _, cr := range c.snap.Credits {
		if cr.Date.BeforeOrEqual(target) {
			balance = balance.Add(cr.Amount())
		}
	}

	return balance
}
