/*
dto.go - Data Transfer Objects for API requests and responses

These types decouple the engine's domain model from the JSON contract.
Dates travel as YYYY-MM-DD strings; hour values are rounded to two decimals
at this boundary only - the engine itself never rounds.
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/ledger"
)

// =============================================================================
// SETTINGS
// =============================================================================

type SettingsDTO struct {
	StartDate        string  `json:"start_date"`
	StartBalance     float64 `json:"start_balance"`
	AccrualPerPeriod float64 `json:"accrual_per_period"`
	FirstPayday      string  `json:"first_payday"`
	PayFrequencyDays int     `json:"pay_frequency_days"`
}

func toSettingsDTO(cfg ledger.Config) SettingsDTO {
	return SettingsDTO{
		StartDate:        cfg.StartDate.String(),
		StartBalance:     cfg.StartBalance.InexactFloat64(),
		AccrualPerPeriod: cfg.AccrualPerPeriod.InexactFloat64(),
		FirstPayday:      cfg.FirstPayday.String(),
		PayFrequencyDays: cfg.PayFrequencyDays,
	}
}

// =============================================================================
// LEDGER RECORDS
// =============================================================================

// LeaveDTO carries either a range (from/to) or a single day (date).
// Hours on a range response is the derived value under the active holiday
// policy; it is ignored on input for ranges.
type LeaveDTO struct {
	Kind  string  `json:"kind"`
	From  string  `json:"from,omitempty"`
	To    string  `json:"to,omitempty"`
	Date  string  `json:"date,omitempty"`
	Hours float64 `json:"hours"`
	Note  string  `json:"note,omitempty"`
}

func toLeaveDTO(rec ledger.LeaveRecord, holidays calendar.HolidayPolicy) LeaveDTO {
	dto := LeaveDTO{
		Kind:  string(rec.Kind),
		Note:  rec.Note,
		Hours: rec.TotalHours(holidays).InexactFloat64(),
	}
	if rec.Kind == ledger.LeaveDay {
		dto.Date = rec.Date.String()
	} else {
		dto.From = rec.From.String()
		dto.To = rec.To.String()
	}
	return dto
}

type CreditDTO struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
	Note  string  `json:"note,omitempty"`
}

func toCreditDTO(entry ledger.CreditEntry) CreditDTO {
	return CreditDTO{
		Date:  entry.Date.String(),
		Hours: entry.Hours.InexactFloat64(),
		Note:  entry.Note,
	}
}

// =============================================================================
// QUERY RESPONSES
// =============================================================================

type BalanceDTO struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
}

type PointDTO struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
	Payday  bool    `json:"payday,omitempty"`
}

func toPointDTOs(series []ledger.Point) []PointDTO {
	dtos := make([]PointDTO, len(series))
	for i, p := range series {
		dtos[i] = PointDTO{
			Date:    p.Date.String(),
			Balance: rounded(p.Balance),
			Payday:  p.Payday,
		}
	}
	return dtos
}

type ForecastDTO struct {
	Start  string     `json:"start"`
	Days   int        `json:"days"`
	Points []PointDTO `json:"points"`
}

type SplitForecastDTO struct {
	Start  string     `json:"start"`
	First  []PointDTO `json:"first"`
	Second []PointDTO `json:"second"`
}

type SummaryDTO struct {
	LatestLeaveDate  *string `json:"latest_leave_date,omitempty"`
	FutureLeaveHours float64 `json:"future_leave_hours"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func rounded(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
