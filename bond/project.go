package bond

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/meenmo/germanbond/rates"
)

// Projection is a schedule together with its metrics and totals.
//
// IssuerFlows and InvestorFlows run from the issue date (index 0) to the
// last period (index Periods).
type Projection struct {
	Terms    Terms
	Schedule []CashFlowEntry
	Metrics  MetricsSummary

	TotalInterest     float64
	TotalAmortization float64
	TotalBonus        float64

	IssuerProceeds float64
	InvestorOutlay float64
	IssuerFlows    []float64
	InvestorFlows  []float64
}

// Project generates the schedule of terms and computes its metrics.
//
// Issuer proceeds are the commercial value net of all issuance costs; the
// investor outlay is the commercial value plus flotation and Cavali.
func Project(terms Terms, solver rates.SolverConfig) (Projection, error) {
	t, err := terms.normalize()
	if err != nil {
		return Projection{}, fmt.Errorf("Project: %w", err)
	}
	schedule, err := GenerateSchedule(t)
	if err != nil {
		return Projection{}, fmt.Errorf("Project: %w", err)
	}

	issuerProceeds := t.CommercialValue * (1 - t.Costs.IssuerShare())
	investorOutlay := t.CommercialValue * (1 + t.Costs.InvestorShare())

	metrics, err := ComputeMetrics(MetricsInput{
		Schedule:        schedule,
		MarketRate:      t.MarketRate,
		PeriodsPerYear:  t.PeriodsPerYear(),
		IssuerProceeds:  issuerProceeds,
		InvestorOutlay:  investorOutlay,
		CommercialValue: t.CommercialValue,
		Solver:          solver,
	})
	if err != nil {
		return Projection{}, fmt.Errorf("Project: %w", err)
	}

	n := len(schedule)
	interest := make([]float64, n)
	amortization := make([]float64, n)
	bonus := make([]float64, n)
	issuerFlows := make([]float64, n+1)
	investorFlows := make([]float64, n+1)
	issuerFlows[0] = issuerProceeds
	investorFlows[0] = -investorOutlay
	for i, e := range schedule {
		interest[i] = e.Interest
		amortization[i] = e.Amortization
		bonus[i] = e.Bonus
		issuerFlows[i+1] = -e.NetFlow
		investorFlows[i+1] = e.NetFlow
	}

	return Projection{
		Terms:             t,
		Schedule:          schedule,
		Metrics:           metrics,
		TotalInterest:     floats.Sum(interest),
		TotalAmortization: floats.Sum(amortization),
		TotalBonus:        floats.Sum(bonus),
		IssuerProceeds:    issuerProceeds,
		InvestorOutlay:    investorOutlay,
		IssuerFlows:       issuerFlows,
		InvestorFlows:     investorFlows,
	}, nil
}
