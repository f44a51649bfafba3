package main

import (
	"fmt"
	"os"
	"time"

	"github.com/meenmo/germanbond/bond"
	"github.com/meenmo/germanbond/calendar"
	"github.com/meenmo/germanbond/export"
	"github.com/meenmo/germanbond/rates"
)

func main() {
	terms := bond.Terms{
		NominalValue:    100000,
		CommercialValue: 101500,
		CouponRate:      0.05,
		MarketRate:      0.045,
		Periods:         10,
		Frequency:       bond.Semiannual,
		Bonus:           0.01,
		Costs: bond.Costs{
			Structuring: 0.0045,
			Placement:   0.0025,
			Flotation:   0.0015,
			Cavali:      0.005,
		},
		GraceType:    bond.GracePartial,
		GracePeriods: 2,
		IssueDate:    time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
		Calendar:     calendar.PEN,
	}

	p, err := bond.Project(terms, rates.DefaultSolverConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := export.WriteScheduleCSV(os.Stdout, p.Schedule, export.Options{Extended: true}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := p.Metrics
	fmt.Println()
	fmt.Printf("Price:             %s\n", export.FormatMoney(m.TheoreticalPrice, "PEN"))
	fmt.Printf("Duration:          %.4f years\n", m.Duration)
	fmt.Printf("Modified duration: %.4f years\n", m.ModifiedDuration)
	fmt.Printf("Convexity:         %.4f\n", m.Convexity)
	fmt.Printf("TCEA:              %s\n", export.FormatPercent(m.TCEA, 4))
	fmt.Printf("TREA:              %s\n", export.FormatPercent(m.TREA, 4))
	fmt.Printf("Yield:             %s\n", export.FormatPercent(m.YieldToMaturity, 4))
	fmt.Printf("Total interest:    %s\n", export.FormatMoney(p.TotalInterest, "PEN"))
}
