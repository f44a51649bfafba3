package bond

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/meenmo/germanbond/rates"
)

// MetricsInput holds what ComputeMetrics needs besides the schedule.
type MetricsInput struct {
	Schedule []CashFlowEntry

	// MarketRate is the effective annual discount rate.
	MarketRate     float64
	PeriodsPerYear int

	// TheoreticalPrice, when non-nil, is an authoritative price used in
	// place of the discounted sum of net flows.
	TheoreticalPrice *float64

	// IssuerProceeds is the cash the issuer keeps net of its costs (TCEA
	// target). InvestorOutlay is what the investor pays including its costs
	// (TREA target). CommercialValue is the issue price (yield target).
	// Zero values default to the first entry's InitialBalance, or to the
	// theoretical price when the schedule carries no balances.
	IssuerProceeds  float64
	InvestorOutlay  float64
	CommercialValue float64

	Solver rates.SolverConfig
}

// MetricsSummary is the risk and return summary of a schedule.
//
// Duration and ModifiedDuration are in years; Convexity is in years².
// TCEA, TREA and YieldToMaturity are effective annual rates.
type MetricsSummary struct {
	TheoreticalPrice   float64
	ComputedPrice      float64
	PriceSupplied      bool
	PeriodicMarketRate float64

	Duration         float64
	DurationPeriods  float64
	ModifiedDuration float64
	Convexity        float64

	TCEA            float64
	TREA            float64
	YieldToMaturity float64

	// NetPresentValue is ComputedPrice less the investor outlay.
	NetPresentValue float64
}

// ComputeMetrics derives price, duration, convexity and the cost/return
// rates from a schedule's net flows:
//
//	PV_t      = NetFlow_t / (1+r)^t
//	P         = Σ PV_t                      (unless supplied)
//	D_mac     = Σ t·PV_t / P / ppy
//	D_mod     = D_mac / (1+r)
//	Convexity = Σ t(t+1)·PV_t / (P·(1+r)²) / ppy²
//
// where r is the periodic market rate. TCEA, TREA and the yield solve
// Σ NetFlow_t/(1+r*)^t = target and annualize r*.
func ComputeMetrics(in MetricsInput) (MetricsSummary, error) {
	flows, err := netFlows(in.Schedule)
	if err != nil {
		return MetricsSummary{}, fmt.Errorf("ComputeMetrics: %w", err)
	}
	ppy := in.PeriodsPerYear
	if ppy <= 0 {
		return MetricsSummary{}, fmt.Errorf("ComputeMetrics: %w", invalidMetrics("periods per year must be positive, got %d", ppy))
	}
	r, err := rates.Periodic(in.MarketRate, ppy)
	if err != nil {
		return MetricsSummary{}, fmt.Errorf("ComputeMetrics: %w", invalidMetrics("market rate %v: %v", in.MarketRate, err))
	}
	solver := in.Solver.WithDefaults()

	pv := rates.PresentValues(flows, r)
	computed := floats.Sum(pv)

	price := computed
	if in.TheoreticalPrice != nil {
		price = *in.TheoreticalPrice
		if solver.PriceTolerance > 0 && math.Abs(price-computed) > solver.PriceTolerance*math.Max(1, math.Abs(computed)) {
			return MetricsSummary{}, fmt.Errorf("ComputeMetrics: %w", invalidMetrics("supplied price %v differs from discounted net flows %v", price, computed))
		}
	}
	if !finite(price) || price <= 0 {
		return MetricsSummary{}, fmt.Errorf("ComputeMetrics: %w", invalidMetrics("theoretical price must be positive, got %v", price))
	}

	n := len(flows)
	t := make([]float64, n)
	tt1 := make([]float64, n)
	for i := range t {
		t[i] = float64(i + 1)
		tt1[i] = t[i] * (t[i] + 1)
	}

	durationPeriods := floats.Dot(t, pv) / price
	duration := durationPeriods / float64(ppy)
	convexity := floats.Dot(tt1, pv) / (price * math.Pow(1+r, 2)) / math.Pow(float64(ppy), 2)

	base := in.Schedule[0].InitialBalance
	if base <= 0 {
		base = price
	}
	issuerProceeds := orDefault(in.IssuerProceeds, base)
	investorOutlay := orDefault(in.InvestorOutlay, base)
	commercial := orDefault(in.CommercialValue, base)

	tcea, err := annualRate(flows, issuerProceeds, ppy, solver)
	if err != nil {
		return MetricsSummary{}, fmt.Errorf("ComputeMetrics: TCEA: %w", err)
	}
	trea, err := annualRate(flows, investorOutlay, ppy, solver)
	if err != nil {
		return MetricsSummary{}, fmt.Errorf("ComputeMetrics: TREA: %w", err)
	}
	ytm, err := annualRate(flows, commercial, ppy, solver)
	if err != nil {
		return MetricsSummary{}, fmt.Errorf("ComputeMetrics: yield: %w", err)
	}

	return MetricsSummary{
		TheoreticalPrice:   price,
		ComputedPrice:      computed,
		PriceSupplied:      in.TheoreticalPrice != nil,
		PeriodicMarketRate: r,
		Duration:           duration,
		DurationPeriods:    durationPeriods,
		ModifiedDuration:   duration / (1 + r),
		Convexity:          convexity,
		TCEA:               tcea,
		TREA:               trea,
		YieldToMaturity:    ytm,
		NetPresentValue:    computed - investorOutlay,
	}, nil
}

// netFlows extracts NetFlow in period order. Periods must run 1..n.
func netFlows(schedule []CashFlowEntry) ([]float64, error) {
	if len(schedule) == 0 {
		return nil, invalidMetrics("empty schedule")
	}
	flows := make([]float64, len(schedule))
	for i, e := range schedule {
		if e.Period != i+1 {
			return nil, invalidMetrics("entry %d has period %d, want %d", i, e.Period, i+1)
		}
		if !finite(e.NetFlow) {
			return nil, invalidMetrics("period %d net flow is %v", e.Period, e.NetFlow)
		}
		flows[i] = e.NetFlow
	}
	return flows, nil
}

func annualRate(flows []float64, target float64, ppy int, cfg rates.SolverConfig) (float64, error) {
	sol, err := rates.SolveRate(flows, target, cfg)
	if err != nil {
		return 0, err
	}
	return rates.Annualize(sol.Rate, ppy), nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
