package factory

import (
	"encoding/csv"
	"io"

	"github.com/warp/leave-engine/ledger"
)

// WriteForecastCSV renders a forecast series as a delimited table: a
// header row "date,hours" followed by one row per entry, dates in
// YYYY-MM-DD form and balances at exactly two decimal places.
func WriteForecastCSV(w io.Writer, series []ledger.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "hours"}); err != nil {
		return err
	}
	for _, p := range series {
		if err := cw.Write([]string{p.Date.String(), p.Balance.StringFixed(2)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
