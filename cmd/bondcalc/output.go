package main

import (
	"github.com/meenmo/germanbond/bond"
	"github.com/meenmo/germanbond/utils"
)

type entryOutput struct {
	Period         int     `json:"period"`
	Date           string  `json:"date,omitempty"`
	Grace          string  `json:"grace"`
	InitialBalance float64 `json:"initial_balance"`
	Interest       float64 `json:"interest"`
	Amortization   float64 `json:"amortization"`
	Payment        float64 `json:"payment"`
	Bonus          float64 `json:"bonus"`
	FinalBalance   float64 `json:"final_balance"`
	NetFlow        float64 `json:"net_flow"`
}

type metricsOutput struct {
	TheoreticalPrice   float64 `json:"theoretical_price"`
	ComputedPrice      float64 `json:"computed_price"`
	PriceSupplied      bool    `json:"price_supplied"`
	PeriodicMarketRate float64 `json:"periodic_market_rate"`
	Duration           float64 `json:"duration"`
	DurationPeriods    float64 `json:"duration_periods"`
	ModifiedDuration   float64 `json:"modified_duration"`
	Convexity          float64 `json:"convexity"`
	TCEA               float64 `json:"tcea"`
	TREA               float64 `json:"trea"`
	YieldToMaturity    float64 `json:"yield_to_maturity"`
	NetPresentValue    float64 `json:"net_present_value"`
}

type totalsOutput struct {
	Interest       float64 `json:"interest"`
	Amortization   float64 `json:"amortization"`
	Bonus          float64 `json:"bonus"`
	IssuerProceeds float64 `json:"issuer_proceeds"`
	InvestorOutlay float64 `json:"investor_outlay"`
}

// bondOutput is one record of the project and schedule commands. On failure
// only the identifying fields and Error are set.
type bondOutput struct {
	TaskID         string         `json:"task_id,omitempty"`
	Name           string         `json:"name,omitempty"`
	Currency       string         `json:"currency,omitempty"`
	Periods        int            `json:"periods,omitempty"`
	PeriodsPerYear int            `json:"periods_per_year,omitempty"`
	Schedule       []entryOutput  `json:"schedule,omitempty"`
	Metrics        *metricsOutput `json:"metrics,omitempty"`
	Totals         *totalsOutput  `json:"totals,omitempty"`
	IssuerFlows    []float64      `json:"issuer_flows,omitempty"`
	InvestorFlows  []float64      `json:"investor_flows,omitempty"`
	Error          string         `json:"error,omitempty"`
}

type metricsRecord struct {
	TaskID  string         `json:"task_id,omitempty"`
	Metrics *metricsOutput `json:"metrics,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func newBondOutput(in bondInput) bondOutput {
	return bondOutput{TaskID: in.TaskID, Name: in.Name, Currency: in.Currency}
}

func (o *bondOutput) setSchedule(terms bond.Terms, schedule []bond.CashFlowEntry) {
	o.Periods = terms.Periods
	o.PeriodsPerYear = terms.PeriodsPerYear()
	o.Schedule = make([]entryOutput, len(schedule))
	for i, e := range schedule {
		o.Schedule[i] = entryOutput{
			Period:         e.Period,
			Date:           utils.FormatDate(e.Date),
			Grace:          string(e.Grace),
			InitialBalance: e.InitialBalance,
			Interest:       e.Interest,
			Amortization:   e.Amortization,
			Payment:        e.Payment,
			Bonus:          e.Bonus,
			FinalBalance:   e.FinalBalance,
			NetFlow:        e.NetFlow,
		}
	}
}

func (o *bondOutput) setProjection(p bond.Projection) {
	o.setSchedule(p.Terms, p.Schedule)
	o.Metrics = toMetricsOutput(p.Metrics)
	o.Totals = &totalsOutput{
		Interest:       p.TotalInterest,
		Amortization:   p.TotalAmortization,
		Bonus:          p.TotalBonus,
		IssuerProceeds: p.IssuerProceeds,
		InvestorOutlay: p.InvestorOutlay,
	}
	o.IssuerFlows = p.IssuerFlows
	o.InvestorFlows = p.InvestorFlows
}

func toMetricsOutput(m bond.MetricsSummary) *metricsOutput {
	return &metricsOutput{
		TheoreticalPrice:   m.TheoreticalPrice,
		ComputedPrice:      m.ComputedPrice,
		PriceSupplied:      m.PriceSupplied,
		PeriodicMarketRate: m.PeriodicMarketRate,
		Duration:           m.Duration,
		DurationPeriods:    m.DurationPeriods,
		ModifiedDuration:   m.ModifiedDuration,
		Convexity:          m.Convexity,
		TCEA:               m.TCEA,
		TREA:               m.TREA,
		YieldToMaturity:    m.YieldToMaturity,
		NetPresentValue:    m.NetPresentValue,
	}
}
