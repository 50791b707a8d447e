/*
handlers.go - HTTP handlers for the leave-balance engine

The handler layer owns HTTP parsing and JSON shaping only. Every query
handler loads a fresh snapshot from the store and builds a read-only
calculator over it, so mutations through other handlers are always visible
on the next query and no computed output is ever cached across edits.

ERROR HANDLING:
  400: unparseable dates or numbers in the request (a balance query with a
       malformed date is a validation failure, never a silently wrong value)
  404: remove-by-index outside the collection
  500: storage failures
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/factory"
	"github.com/warp/leave-engine/ledger"
	"github.com/warp/leave-engine/payroll"
	"github.com/warp/leave-engine/store/sqlite"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Holidays calendar.HolidayPolicy
}

// NewHandler creates a handler. A nil holiday policy means weekends-only.
func NewHandler(store *sqlite.Store, holidays calendar.HolidayPolicy) *Handler {
	if holidays == nil {
		holidays = calendar.NoHolidays{}
	}
	return &Handler{Store: store, Holidays: holidays}
}

// calculator loads the current snapshot and wraps it in a read-only view.
func (h *Handler) calculator(ctx context.Context) (*ledger.Calculator, error) {
	snap, err := h.Store.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.NewCalculator(snap, h.Holidays), nil
}

// =============================================================================
// BALANCE QUERIES
// =============================================================================

// GetBalance returns the balance as of a date.
// GET /api/balance?date=YYYY-MM-DD (defaults to today)
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, "date", calendar.Today())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}

	calc, err := h.calculator(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	writeJSON(w, http.StatusOK, BalanceDTO{
		Date:    date.String(),
		Balance: rounded(calc.BalanceOn(date)),
	})
}

// GetSummary returns the ledger aggregates.
// GET /api/summary?from=YYYY-MM-DD (defaults to today)
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	from, err := dateParam(r, "from", calendar.Today())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
		return
	}

	calc, err := h.calculator(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	dto := SummaryDTO{
		FutureLeaveHours: rounded(calc.TotalFutureLeaveHours(from)),
	}
	if latest, ok := calc.LatestLeaveDate(); ok {
		s := latest.String()
		dto.LatestLeaveDate = &s
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetPaydays enumerates paydays in a range.
// GET /api/paydays?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) GetPaydays(w http.ResponseWriter, r *http.Request) {
	start, err := requiredDateParam(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date (use YYYY-MM-DD)", err)
		return
	}
	end, err := requiredDateParam(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date (use YYYY-MM-DD)", err)
		return
	}

	calc, err := h.calculator(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	paydays := calc.PaydaysInRange(start, end)
	dates := make([]string, len(paydays))
	for i, d := range paydays {
		dates[i] = d.String()
	}
	writeJSON(w, http.StatusOK, map[string]any{"paydays": dates})
}

// =============================================================================
// FORECAST
// =============================================================================

func (h *Handler) forecastInput(r *http.Request) (calendar.Date, int, error) {
	start, err := dateParam(r, "start", calendar.Today())
	if err != nil {
		return calendar.Date{}, 0, err
	}
	days := ledger.SplitHorizonDays - 1
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 0 {
			return calendar.Date{}, 0, errors.New("days must be a non-negative integer")
		}
	}
	return start, days, nil
}

// GetForecast returns the dense day-by-day series.
// GET /api/forecast?start=YYYY-MM-DD&days=N
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	start, days, err := h.forecastInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid forecast parameters", err)
		return
	}

	calc, err := h.calculator(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	writeJSON(w, http.StatusOK, ForecastDTO{
		Start:  start.String(),
		Days:   days,
		Points: toPointDTOs(calc.Series(start, days)),
	})
}

// GetSplitForecast returns the 365-day horizon as two consecutive windows.
// GET /api/forecast/split?start=YYYY-MM-DD
func (h *Handler) GetSplitForecast(w http.ResponseWriter, r *http.Request) {
	start, err := dateParam(r, "start", calendar.Today())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date (use YYYY-MM-DD)", err)
		return
	}

	calc, err := h.calculator(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	first, second := calc.SplitSeries(start)
	writeJSON(w, http.StatusOK, SplitForecastDTO{
		Start:  start.String(),
		First:  toPointDTOs(first),
		Second: toPointDTOs(second),
	})
}

// GetForecastCSV streams the series as a date,hours table.
// GET /api/forecast/csv?start=YYYY-MM-DD&days=N
func (h *Handler) GetForecastCSV(w http.ResponseWriter, r *http.Request) {
	start, days, err := h.forecastInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid forecast parameters", err)
		return
	}

	calc, err := h.calculator(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="forecast.csv"`)
	if err := factory.WriteForecastCSV(w, calc.Series(start, days)); err != nil {
		// headers already sent; nothing useful left to do
		return
	}
}

// =============================================================================
// SETTINGS
// =============================================================================

// GetSettings returns the current configuration.
// GET /api/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.LoadSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsDTO(snap.Config))
}

// PutSettings replaces the configuration wholesale. A missing or invalid
// first payday falls back to the start date; a non-positive pay frequency
// falls back to the default period.
// PUT /api/settings
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	startDate, err := calendar.Parse(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}

	firstPayday, err := calendar.Parse(req.FirstPayday)
	if err != nil {
		firstPayday = startDate
	}
	periodDays := req.PayFrequencyDays
	if periodDays <= 0 {
		periodDays = payroll.DefaultPeriodDays
	}

	cfg := ledger.Config{
		StartDate:        startDate,
		StartBalance:     decimal.NewFromFloat(req.StartBalance),
		AccrualPerPeriod: decimal.NewFromFloat(req.AccrualPerPeriod),
		FirstPayday:      firstPayday,
		PayFrequencyDays: periodDays,
	}
	if err := h.Store.SaveConfig(r.Context(), cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsDTO(cfg))
}

// =============================================================================
// LEAVE RECORDS
// =============================================================================

// ListLeave returns all leave records in insertion order.
// GET /api/leave
func (h *Handler) ListLeave(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.LoadSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}
	dtos := make([]LeaveDTO, len(snap.Leave))
	for i, rec := range snap.Leave {
		dtos[i] = toLeaveDTO(rec, h.Holidays)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateLeave appends a leave record. A "date" field selects the
// single-day variant; otherwise "from"/"to" describe a range. An inverted
// range is accepted and simply contributes zero hours.
// POST /api/leave
func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req LeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var rec ledger.LeaveRecord
	if req.Date != "" {
		day, err := calendar.Parse(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
			return
		}
		rec = ledger.NewLeaveDay(day, decimal.NewFromFloat(req.Hours), req.Note)
	} else {
		from, err := calendar.Parse(req.From)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
			return
		}
		to, err := calendar.Parse(req.To)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", err)
			return
		}
		rec = ledger.NewLeaveRange(from, to, req.Note)
	}

	if err := h.Store.AppendLeave(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save leave record", err)
		return
	}
	writeJSON(w, http.StatusCreated, toLeaveDTO(rec, h.Holidays))
}

// DeleteLeave removes a record by its insertion-order index.
// DELETE /api/leave/{index}
func (h *Handler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	h.deleteByIndex(w, r, h.Store.RemoveLeave)
}

// =============================================================================
// CREDIT ENTRIES
// =============================================================================

// ListCredits returns all credit entries in insertion order.
// GET /api/credits
func (h *Handler) ListCredits(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.LoadSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}
	dtos := make([]CreditDTO, len(snap.Credits))
	for i, entry := range snap.Credits {
		dtos[i] = toCreditDTO(entry)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateCredit appends a credit entry. Non-positive hours are stored but
// contribute nothing to the balance.
// POST /api/credits
func (h *Handler) CreateCredit(w http.ResponseWriter, r *http.Request) {
	var req CreditDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := calendar.Parse(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}

	entry := ledger.CreditEntry{
		Date:  date,
		Hours: decimal.NewFromFloat(req.Hours),
		Note:  req.Note,
	}
	if err := h.Store.AppendCredit(r.Context(), entry); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save credit entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCreditDTO(entry))
}

// DeleteCredit removes an entry by its insertion-order index.
// DELETE /api/credits/{index}
func (h *Handler) DeleteCredit(w http.ResponseWriter, r *http.Request) {
	h.deleteByIndex(w, r, h.Store.RemoveCredit)
}

func (h *Handler) deleteByIndex(w http.ResponseWriter, r *http.Request, remove func(context.Context, int) error) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid index", err)
		return
	}
	switch err := remove(r.Context(), index); {
	case errors.Is(err, sqlite.ErrIndexOutOfRange):
		writeError(w, http.StatusNotFound, "No record at index", err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to remove record", err)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"removed": index})
	}
}

// =============================================================================
// IMPORT / EXPORT
// =============================================================================

// ExportState returns the full state as an interchange document.
// GET /api/export
func (h *Handler) ExportState(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.LoadSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}
	data, err := factory.EncodeState(snap, h.Holidays)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode state", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="leave-state.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ImportState replaces the full state from an interchange document. A
// corrupt document is rejected without touching existing state.
// POST /api/import
func (h *Handler) ImportState(w http.ResponseWriter, r *http.Request) {
	buf, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	snap, err := factory.ParseState(buf)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Import failed", err)
		return
	}

	if err := h.Store.ReplaceState(r.Context(), snap); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to persist imported state", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"leave_records":  len(snap.Leave),
		"credit_entries": len(snap.Credits),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func dateParam(r *http.Request, name string, fallback calendar.Date) (calendar.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return calendar.Parse(raw)
}

func requiredDateParam(r *http.Request, name string) (calendar.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return calendar.Date{}, errors.New("missing " + name + " parameter")
	}
	return calendar.Parse(raw)
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
