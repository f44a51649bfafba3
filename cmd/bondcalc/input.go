package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meenmo/germanbond/bond"
	"github.com/meenmo/germanbond/calendar"
	"github.com/meenmo/germanbond/utils"
)

// bondInput is one bond as accepted on the command line. Rates and costs are
// decimal fractions (0.05 = 5%).
type bondInput struct {
	TaskID   string `json:"task_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Currency string `json:"currency,omitempty"`

	NominalValue    float64        `json:"nominal_value"`
	CommercialValue float64        `json:"commercial_value"`
	CouponRate      float64        `json:"coupon_rate"`
	CouponRateType  string         `json:"coupon_rate_type"`
	Capitalization  frequencyValue `json:"capitalization"`
	MarketRate      float64        `json:"market_rate"`

	PaymentFrequency frequencyValue `json:"payment_frequency"`
	Duration         float64        `json:"duration"`
	DurationUnit     string         `json:"duration_unit"`

	Bonus         float64 `json:"bonus"`
	Structuration float64 `json:"structuration"`
	Colocation    float64 `json:"colocation"`
	Flotation     float64 `json:"flotation"`
	Cavali        float64 `json:"cavali"`

	GraceType    string `json:"grace_type"`
	GracePeriods int    `json:"grace_periods"`

	IssueDate string `json:"issue_date"`
	Calendar  string `json:"calendar"`
}

// frequencyValue accepts either a name ("semiannual") or a number of
// periods per year (2).
type frequencyValue bond.Frequency

func (f *frequencyValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = frequencyValue(strings.ToLower(strings.TrimSpace(s)))
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("frequency must be a name or periods per year: %w", err)
	}
	if n == 360 {
		*f = frequencyValue(bond.Daily)
		return nil
	}
	freq, ok := bond.FrequencyFromPeriods(n)
	if !ok {
		return fmt.Errorf("no frequency with %d periods per year", n)
	}
	*f = frequencyValue(freq)
	return nil
}

func (in bondInput) terms() (bond.Terms, error) {
	freq := bond.Frequency(in.PaymentFrequency)
	periods, err := bond.PeriodsFor(in.Duration, bond.TermUnit(strings.ToLower(in.DurationUnit)), freq)
	if err != nil {
		return bond.Terms{}, err
	}
	issue, err := utils.ParseDate(in.IssueDate)
	if err != nil {
		return bond.Terms{}, fmt.Errorf("invalid issue_date: %w", err)
	}
	cal, err := calendar.Parse(in.Calendar)
	if err != nil {
		return bond.Terms{}, err
	}

	return bond.Terms{
		NominalValue:    in.NominalValue,
		CommercialValue: in.CommercialValue,
		CouponRate:      in.CouponRate,
		CouponRateType:  bond.RateType(strings.ToLower(in.CouponRateType)),
		Capitalization:  bond.Frequency(in.Capitalization),
		MarketRate:      in.MarketRate,
		Periods:         periods,
		Frequency:       freq,
		Bonus:           in.Bonus,
		Costs: bond.Costs{
			Structuring: in.Structuration,
			Placement:   in.Colocation,
			Flotation:   in.Flotation,
			Cavali:      in.Cavali,
		},
		GraceType:    bond.GraceType(strings.ToLower(in.GraceType)),
		GracePeriods: in.GracePeriods,
		IssueDate:    issue,
		Calendar:     cal,
	}, nil
}

// metricsRequest reproduces an externally computed schedule for the metrics
// engine.
type metricsRequest struct {
	TaskID           string      `json:"task_id,omitempty"`
	Flows            []flowInput `json:"flows"`
	MarketRate       float64     `json:"market_rate"`
	PeriodsPerYear   int         `json:"periods_per_year"`
	TheoreticalPrice *float64    `json:"theoretical_price,omitempty"`
	IssuerProceeds   float64     `json:"issuer_proceeds,omitempty"`
	InvestorOutlay   float64     `json:"investor_outlay,omitempty"`
	CommercialValue  float64     `json:"commercial_value,omitempty"`
}

type flowInput struct {
	Period         int     `json:"period"`
	InitialBalance float64 `json:"initial_balance"`
	NetFlow        float64 `json:"net_flow"`
}

func (r metricsRequest) input() bond.MetricsInput {
	schedule := make([]bond.CashFlowEntry, len(r.Flows))
	for i, f := range r.Flows {
		schedule[i] = bond.CashFlowEntry{Period: f.Period, InitialBalance: f.InitialBalance, NetFlow: f.NetFlow}
	}
	return bond.MetricsInput{
		Schedule:         schedule,
		MarketRate:       r.MarketRate,
		PeriodsPerYear:   r.PeriodsPerYear,
		TheoreticalPrice: r.TheoreticalPrice,
		IssuerProceeds:   r.IssuerProceeds,
		InvestorOutlay:   r.InvestorOutlay,
		CommercialValue:  r.CommercialValue,
	}
}

// readInput reads path, or in when path is empty. An interactive terminal
// on stdin is refused rather than waited on.
func readInput(path string, in io.Reader) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	if f, ok := in.(*os.File); ok {
		if stat, err := f.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			return nil, fmt.Errorf("no input: pass --input or pipe JSON on stdin")
		}
	}
	return io.ReadAll(in)
}

// parseRecords decodes a single JSON object or a non-empty array of them.
// The bool reports whether the input was an array.
func parseRecords[T any](raw []byte) ([]T, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var records []T
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, true, err
		}
		if len(records) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return records, true, nil
	}
	var record T
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return nil, false, err
	}
	return []T{record}, false, nil
}
