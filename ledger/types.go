/*
Package ledger computes a running leave-hours balance from a configuration
and two record collections: taken leave and manual credits.

The balance is always derived by replaying the records against a query
date - there is no stored balance that can drift out of sync. Every
function here is a pure, read-only view over an explicit Snapshot; the
surrounding application owns the snapshot and must treat previously
computed outputs as stale after any mutation.
*/
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/payroll"
)

// HoursPerDay converts counted business days into leave hours.
var HoursPerDay = decimal.NewFromInt(8)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config holds the accrual settings. FirstPayday and PayFrequencyDays
// define an arithmetic sequence of paydays; no payday precedes FirstPayday.
type Config struct {
	StartDate        calendar.Date
	StartBalance     decimal.Decimal
	AccrualPerPeriod decimal.Decimal // non-negative; negatives are clamped to 0
	FirstPayday      calendar.Date
	PayFrequencyDays int // non-positive falls back to payroll.DefaultPeriodDays
}

// DefaultConfig returns the safe-fallback configuration used when settings
// are missing or structurally invalid.
func DefaultConfig() Config {
	today := calendar.Today()
	return Config{
		StartDate:        today,
		StartBalance:     decimal.Zero,
		AccrualPerPeriod: decimal.Zero,
		FirstPayday:      today,
		PayFrequencyDays: payroll.DefaultPeriodDays,
	}
}

// Schedule derives the pay schedule, substituting safe defaults for a
// missing first payday or a non-positive period.
func (c Config) Schedule() payroll.Schedule {
	first := c.FirstPayday
	if first.IsZero() {
		first = c.StartDate
	}
	if first.IsZero() {
		first = calendar.Today()
	}
	return payroll.New(first, c.PayFrequencyDays)
}

// accrual returns the per-period accrual, clamped to non-negative.
func (c Config) accrual() decimal.Decimal {
	if c.AccrualPerPeriod.IsNegative() {
		return decimal.Zero
	}
	return c.AccrualPerPeriod
}

// =============================================================================
// LEAVE RECORDS - One tagged variant, one aggregation path
// =============================================================================

type LeaveKind string

const (
	// LeaveRange is a contiguous span of taken leave; its hours derive
	// from the business-day count of the span times HoursPerDay.
	LeaveRange LeaveKind = "range"

	// LeaveDay is a single day with explicitly recorded hours.
	LeaveDay LeaveKind = "day"
)

// LeaveRecord is either a closed date-range entry or a single-day entry.
// Range hours are always recomputed from the bounds and the active holiday
// policy; a persisted hours value is never trusted as ground truth.
type LeaveRecord struct {
	Kind  LeaveKind
	From  calendar.Date   // range only
	To    calendar.Date   // range only
	Date  calendar.Date   // day only
	Hours decimal.Decimal // day only; non-negative
	Note  string
}

func NewLeaveRange(from, to calendar.Date, note string) LeaveRecord {
	return LeaveRecord{Kind: LeaveRange, From: from, To: to, Note: note}
}

func NewLeaveDay(date calendar.Date, hours decimal.Decimal, note string) LeaveRecord {
	if hours.IsNegative() {
		hours = decimal.Zero
	}
	return LeaveRecord{Kind: LeaveDay, Date: date, Hours: hours, Note: note}
}

// EndDate returns the last calendar date the record covers.
func (r LeaveRecord) EndDate() calendar.Date {
	if r.Kind == LeaveDay {
		return r.Date
	}
	return r.To
}

// TotalHours returns the full deduction for the record, ignoring any query
// date. For ranges this is the derived business-day hours of [From, To].
func (r LeaveRecord) TotalHours(holidays calendar.HolidayPolicy) decimal.Decimal {
	if r.Kind == LeaveDay {
		return r.HoursThrough(r.Date, holidays)
	}
	return r.HoursThrough(r.To, holidays)
}

// HoursThrough returns the hours the record deducts as of target.
//
// A range that started on or before target is counted over
// [From, min(To, target)]: an in-progress range deducts partially, capped
// at the query date. A malformed range (To before From) is an empty
// interval and contributes 0.
func (r LeaveRecord) HoursThrough(target calendar.Date, holidays calendar.HolidayPolicy) decimal.Decimal {
	if r.Kind == LeaveDay {
		if r.Date.After(target) || !r.Date.IsBusinessDay(holidays) {
			return decimal.Zero
		}
		return nonNegative(r.Hours)
	}
	if r.From.After(target) {
		return decimal.Zero
	}
	days := calendar.CountBusinessDaysInclusive(r.From, calendar.Min(r.To, target), holidays)
	return HoursPerDay.Mul(decimal.NewFromInt(int64(days)))
}

// HoursFrom returns the hours for the portion of the record falling on or
// after from. Ranges are clipped at from on the left, not excluded when
// they started earlier.
func (r LeaveRecord) HoursFrom(from calendar.Date, holidays calendar.HolidayPolicy) decimal.Decimal {
	if r.Kind == LeaveDay {
		if r.Date.Before(from) || !r.Date.IsBusinessDay(holidays) {
			return decimal.Zero
		}
		return nonNegative(r.Hours)
	}
	days := calendar.CountBusinessDaysInclusive(calendar.Max(r.From, from), r.To, holidays)
	return HoursPerDay.Mul(decimal.NewFromInt(int64(days)))
}

// =============================================================================
// CREDIT ENTRIES
// =============================================================================

// CreditEntry is a manual addition to the balance (correction, bonus
// hours) effective on its date.
type CreditEntry struct {
	Date  calendar.Date
	Hours decimal.Decimal
	Note  string
}

// Amount returns the credited hours; non-positive values contribute 0.
func (c CreditEntry) Amount() decimal.Decimal {
	if c.Hours.IsPositive() {
		return c.Hours
	}
	return decimal.Zero
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is the in-memory state the calculator reads: configuration plus
// the insertion-ordered (semantically unordered) record collections.
type Snapshot struct {
	Config  Config
	Leave   []LeaveRecord
	Credits []CreditEntry
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
