// Package export renders amortization schedules and amounts for people and
// spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/meenmo/germanbond/bond"
	"github.com/meenmo/germanbond/utils"
)

// DefaultDecimals is the number of decimal places used when Options.Decimals
// is not positive.
const DefaultDecimals = 2

// Options controls WriteScheduleCSV.
type Options struct {
	Decimals int32
	// Extended appends the Bonus and NetFlow columns.
	Extended bool
}

var (
	baseHeader     = []string{"Date", "Period", "Amortization", "Interest", "Payment", "Balance"}
	extendedHeader = []string{"Bonus", "NetFlow"}
)

// WriteScheduleCSV writes one header line and one line per schedule entry, in
// period order. Amounts are rounded half away from zero.
func WriteScheduleCSV(w io.Writer, schedule []bond.CashFlowEntry, opts Options) error {
	places := opts.Decimals
	if places <= 0 {
		places = DefaultDecimals
	}

	cw := csv.NewWriter(w)
	header := append([]string{}, baseHeader...)
	if opts.Extended {
		header = append(header, extendedHeader...)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("WriteScheduleCSV: header: %w", err)
	}

	for _, e := range schedule {
		row := []string{
			utils.FormatDate(e.Date),
			strconv.Itoa(e.Period),
			fixed(e.Amortization, places),
			fixed(e.Interest, places),
			fixed(e.Payment, places),
			fixed(e.FinalBalance, places),
		}
		if opts.Extended {
			row = append(row, fixed(e.Bonus, places), fixed(e.NetFlow, places))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("WriteScheduleCSV: period %d: %w", e.Period, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("WriteScheduleCSV: %w", err)
	}
	return nil
}

func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
