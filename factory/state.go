/*
Package factory converts the serialized interchange document into engine
state and back. The loader is deliberately forgiving: any structurally
invalid top-level field is replaced by its safe default, missing collections
become empty, and unknown fields are ignored. Only a document that fails to
parse at all is reported as an import failure.

A round-trip export -> import reproduces an equal balance for every
previously valid query date.
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/ledger"
)

// ErrMalformedDocument is returned when the document is not valid JSON.
// Callers must leave their in-memory state untouched on this error.
var ErrMalformedDocument = errors.New("malformed state document")

// =============================================================================
// DOCUMENT SCHEMA
// =============================================================================

// StateJSON is the interchange representation of the full state.
type StateJSON struct {
	Settings SettingsJSON `json:"settings"`
	Leave    []LeaveJSON  `json:"leave"`
	Credits  []CreditJSON `json:"credits"`
}

type SettingsJSON struct {
	StartDate        string      `json:"start_date"`
	StartBalance     json.Number `json:"start_balance"`
	AccrualPerPeriod json.Number `json:"accrual_per_period"`
	FirstPayday      string      `json:"first_payday"`
	PayFrequencyDays int         `json:"pay_frequency_days"`
}

// LeaveJSON covers both record kinds: a "date" field selects the
// single-day variant, otherwise "from"/"to" describe a range. The exported
// "hours" of a range is a cached derived value; imports recompute it from
// the bounds and never trust it.
type LeaveJSON struct {
	From  string       `json:"from,omitempty"`
	To    string       `json:"to,omitempty"`
	Date  string       `json:"date,omitempty"`
	Hours *json.Number `json:"hours,omitempty"`
	Note  string       `json:"note,omitempty"`
}

type CreditJSON struct {
	Date  string      `json:"date"`
	Hours json.Number `json:"hours"`
	Note  string      `json:"note,omitempty"`
}

// =============================================================================
// IMPORT
// =============================================================================

// rawDoc splits the document so each top-level field can fail independently.
type rawDoc struct {
	Settings json.RawMessage `json:"settings"`
	Leave    json.RawMessage `json:"leave"`
	Credits  json.RawMessage `json:"credits"`
}

// ParseState decodes an interchange document into a snapshot.
func ParseState(data []byte) (ledger.Snapshot, error) {
	var doc rawDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return ledger.Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	return ledger.Snapshot{
		Config:  parseSettings(doc.Settings),
		Leave:   parseLeave(doc.Leave),
		Credits: parseCredits(doc.Credits),
	}, nil
}

func parseSettings(raw json.RawMessage) ledger.Config {
	cfg := ledger.DefaultConfig()

	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil {
		return cfg
	}

	cfg.StartDate = parseDate(fields["start_date"], cfg.StartDate)
	cfg.StartBalance = parseDecimal(fields["start_balance"], decimal.Zero)
	cfg.AccrualPerPeriod = parseDecimal(fields["accrual_per_period"], decimal.Zero)
	cfg.FirstPayday = parseDate(fields["first_payday"], cfg.StartDate)
	cfg.PayFrequencyDays = parseInt(fields["pay_frequency_days"], cfg.PayFrequencyDays)
	return cfg
}

func parseLeave(raw json.RawMessage) []ledger.LeaveRecord {
	var entries []LeaveJSON
	if len(raw) == 0 || json.Unmarshal(raw, &entries) != nil {
		return nil
	}

	var records []ledger.LeaveRecord
	for _, e := range entries {
		if e.Date != "" {
			day, err := calendar.Parse(e.Date)
			if err != nil {
				continue // unplaceable on the calendar
			}
			hours := decimal.Zero
			if e.Hours != nil {
				hours = parseNumber(*e.Hours, decimal.Zero)
			}
			records = append(records, ledger.NewLeaveDay(day, hours, e.Note))
			continue
		}

		from, fromErr := calendar.Parse(e.From)
		to, toErr := calendar.Parse(e.To)
		switch {
		case fromErr == nil && toErr == nil:
		case fromErr == nil:
			to = from
		case toErr == nil:
			from = to
		default:
			continue
		}
		records = append(records, ledger.NewLeaveRange(from, to, e.Note))
	}
	return records
}

func parseCredits(raw json.RawMessage) []ledger.CreditEntry {
	var entries []CreditJSON
	if len(raw) == 0 || json.Unmarshal(raw, &entries) != nil {
		return nil
	}

	var credits []ledger.CreditEntry
	for _, e := range entries {
		date, err := calendar.Parse(e.Date)
		if err != nil {
			continue
		}
		credits = append(credits, ledger.CreditEntry{
			Date:  date,
			Hours: parseNumber(e.Hours, decimal.Zero),
			Note:  e.Note,
		})
	}
	return credits
}

// =============================================================================
// EXPORT
// =============================================================================

// EncodeState serializes a snapshot. The holiday policy is used to cache
// the derived hours of each range alongside the record; a single-day
// record's hours are source data and are exported as stored.
func EncodeState(snap ledger.Snapshot, holidays calendar.HolidayPolicy) ([]byte, error) {
	doc := StateJSON{
		Settings: SettingsJSON{
			StartDate:        snap.Config.StartDate.String(),
			StartBalance:     number(snap.Config.StartBalance),
			AccrualPerPeriod: number(snap.Config.AccrualPerPeriod),
			FirstPayday:      snap.Config.FirstPayday.String(),
			PayFrequencyDays: snap.Config.PayFrequencyDays,
		},
		Leave:   make([]LeaveJSON, 0, len(snap.Leave)),
		Credits: make([]CreditJSON, 0, len(snap.Credits)),
	}

	for _, r := range snap.Leave {
		entry := LeaveJSON{Note: r.Note}
		if r.Kind == ledger.LeaveDay {
			entry.Date = r.Date.String()
			hours := number(r.Hours)
			entry.Hours = &hours
		} else {
			entry.From = r.From.String()
			entry.To = r.To.String()
			hours := number(r.TotalHours(holidays))
			entry.Hours = &hours
		}
		doc.Leave = append(doc.Leave, entry)
	}

	for _, c := range snap.Credits {
		doc.Credits = append(doc.Credits, CreditJSON{
			Date:  c.Date.String(),
			Hours: number(c.Hours),
			Note:  c.Note,
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

// =============================================================================
// FIELD HELPERS - each field fails independently to its default
// =============================================================================

func parseDate(raw json.RawMessage, fallback calendar.Date) calendar.Date {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return fallback
	}
	d, err := calendar.Parse(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseDecimal(raw json.RawMessage, fallback decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	if len(raw) == 0 || json.Unmarshal(raw, &d) != nil {
		return fallback
	}
	return d
}

func parseInt(raw json.RawMessage, fallback int) int {
	var n int
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return fallback
	}
	return n
}

func parseNumber(n json.Number, fallback decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return fallback
	}
	return d
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
