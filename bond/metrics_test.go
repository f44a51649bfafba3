package bond_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/germanbond/bond"
	"github.com/meenmo/germanbond/rates"
)

func roundTripMetrics(t *testing.T, marketRate float64) bond.MetricsSummary {
	t.Helper()
	schedule, err := bond.GenerateSchedule(roundTripTerms())
	require.NoError(t, err)
	m, err := bond.ComputeMetrics(bond.MetricsInput{
		Schedule:       schedule,
		MarketRate:     marketRate,
		PeriodsPerYear: 2,
	})
	require.NoError(t, err)
	return m
}

func TestComputeMetrics_RoundTrip(t *testing.T) {
	t.Parallel()

	m := roundTripMetrics(t, 0.06)
	assert.Less(t, m.TheoreticalPrice, 1000.0)
	assert.InDelta(t, 976.1116284514554, m.TheoreticalPrice, 1e-8)
	assert.Equal(t, m.TheoreticalPrice, m.ComputedPrice)
	assert.False(t, m.PriceSupplied)
	assert.InDelta(t, math.Sqrt(1.06)-1, m.PeriodicMarketRate, 1e-12)

	assert.InDelta(t, 2.541152695524732, m.Duration, 1e-9)
	assert.InDelta(t, 2*m.Duration, m.DurationPeriods, 1e-12)
	assert.InDelta(t, 2.4681856872542256, m.ModifiedDuration, 1e-9)
	assert.InDelta(t, 9.208293301829276, m.Convexity, 1e-8)

	// Issued at par without costs, every cost/return rate is the coupon.
	assert.InDelta(t, 0.05, m.TCEA, 1e-8)
	assert.InDelta(t, 0.05, m.TREA, 1e-8)
	assert.InDelta(t, 0.05, m.YieldToMaturity, 1e-8)
	assert.InDelta(t, m.ComputedPrice-1000, m.NetPresentValue, 1e-9)
}

func TestComputeMetrics_PriceDecreasesWithMarketRate(t *testing.T) {
	t.Parallel()

	prev := math.Inf(1)
	for _, r := range []float64{-0.02, 0, 0.01, 0.03, 0.05, 0.06, 0.1, 0.25} {
		m := roundTripMetrics(t, r)
		assert.Less(t, m.TheoreticalPrice, prev, "market rate %v", r)
		prev = m.TheoreticalPrice
	}
}

func TestComputeMetrics_ZeroCouponDuration(t *testing.T) {
	t.Parallel()

	schedule := []bond.CashFlowEntry{
		{Period: 1}, {Period: 2}, {Period: 3}, {Period: 4, NetFlow: 100},
	}
	m, err := bond.ComputeMetrics(bond.MetricsInput{
		Schedule:       schedule,
		MarketRate:     0.08,
		PeriodsPerYear: 4,
	})
	require.NoError(t, err)

	r := math.Pow(1.08, 0.25) - 1
	assert.InDelta(t, 100/math.Pow(1+r, 4), m.TheoreticalPrice, 1e-10)
	assert.InDelta(t, 4, m.DurationPeriods, 1e-12)
	assert.InDelta(t, 1, m.Duration, 1e-12)
	assert.InDelta(t, 1/(1+r), m.ModifiedDuration, 1e-12)
	assert.InDelta(t, 20/math.Pow(1+r, 2)/16, m.Convexity, 1e-12)

	// Without balances the targets default to the price, so every rate
	// collapses to the market rate.
	assert.InDelta(t, 0.08, m.YieldToMaturity, 1e-8)
	assert.InDelta(t, 0.08, m.TCEA, 1e-8)
}

func TestComputeMetrics_SuppliedPrice(t *testing.T) {
	t.Parallel()

	schedule, err := bond.GenerateSchedule(roundTripTerms())
	require.NoError(t, err)
	computed := roundTripMetrics(t, 0.06)

	price := 980.0
	m, err := bond.ComputeMetrics(bond.MetricsInput{
		Schedule:         schedule,
		MarketRate:       0.06,
		PeriodsPerYear:   2,
		TheoreticalPrice: &price,
	})
	require.NoError(t, err)
	assert.True(t, m.PriceSupplied)
	assert.Equal(t, 980.0, m.TheoreticalPrice)
	assert.InDelta(t, computed.ComputedPrice, m.ComputedPrice, 1e-12)
	assert.InDelta(t, computed.Duration*computed.TheoreticalPrice/980, m.Duration, 1e-12)

	// Matching the summation within tolerance passes the check.
	exact := computed.ComputedPrice
	_, err = bond.ComputeMetrics(bond.MetricsInput{
		Schedule:         schedule,
		MarketRate:       0.06,
		PeriodsPerYear:   2,
		TheoreticalPrice: &exact,
		Solver:           rates.SolverConfig{PriceTolerance: 1e-9},
	})
	require.NoError(t, err)

	_, err = bond.ComputeMetrics(bond.MetricsInput{
		Schedule:         schedule,
		MarketRate:       0.06,
		PeriodsPerYear:   2,
		TheoreticalPrice: &price,
		Solver:           rates.SolverConfig{PriceTolerance: 1e-6},
	})
	assert.ErrorIs(t, err, bond.ErrInvalidMetrics)
}

func TestComputeMetrics_InvalidInputs(t *testing.T) {
	t.Parallel()

	schedule, err := bond.GenerateSchedule(roundTripTerms())
	require.NoError(t, err)
	zero, negative, nan := 0.0, -5.0, math.NaN()

	tests := []struct {
		name string
		in   bond.MetricsInput
	}{
		{"supplied zero price", bond.MetricsInput{Schedule: schedule, MarketRate: 0.06, PeriodsPerYear: 2, TheoreticalPrice: &zero}},
		{"supplied negative price", bond.MetricsInput{Schedule: schedule, MarketRate: 0.06, PeriodsPerYear: 2, TheoreticalPrice: &negative}},
		{"supplied nan price", bond.MetricsInput{Schedule: schedule, MarketRate: 0.06, PeriodsPerYear: 2, TheoreticalPrice: &nan}},
		{"nan market rate", bond.MetricsInput{Schedule: schedule, MarketRate: math.NaN(), PeriodsPerYear: 2}},
		{"market rate -100%", bond.MetricsInput{Schedule: schedule, MarketRate: -1, PeriodsPerYear: 2}},
		{"zero periods per year", bond.MetricsInput{Schedule: schedule, MarketRate: 0.06}},
		{"empty schedule", bond.MetricsInput{MarketRate: 0.06, PeriodsPerYear: 2}},
		{"all zero flows", bond.MetricsInput{Schedule: []bond.CashFlowEntry{{Period: 1}, {Period: 2}}, MarketRate: 0.06, PeriodsPerYear: 2}},
		{"out of order", bond.MetricsInput{Schedule: []bond.CashFlowEntry{{Period: 2, NetFlow: 1}, {Period: 1, NetFlow: 1}}, MarketRate: 0.06, PeriodsPerYear: 2}},
		{"infinite flow", bond.MetricsInput{Schedule: []bond.CashFlowEntry{{Period: 1, NetFlow: math.Inf(1)}}, MarketRate: 0.06, PeriodsPerYear: 2}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, err := bond.ComputeMetrics(tc.in)
			assert.ErrorIs(t, err, bond.ErrInvalidMetrics)
			assert.Equal(t, bond.MetricsSummary{}, m)
		})
	}
}

func TestComputeMetrics_NoConvergence(t *testing.T) {
	t.Parallel()

	// Outflow, inflow, outflow: the discounted stream is negative at every
	// rate, so it can never equal positive proceeds.
	schedule := []bond.CashFlowEntry{
		{Period: 1, InitialBalance: 100, NetFlow: -100},
		{Period: 2, NetFlow: 50},
		{Period: 3, NetFlow: -100},
	}
	price := 100.0
	_, err := bond.ComputeMetrics(bond.MetricsInput{
		Schedule:         schedule,
		MarketRate:       0.05,
		PeriodsPerYear:   1,
		TheoreticalPrice: &price,
	})
	assert.ErrorIs(t, err, bond.ErrNoConvergence)
	assert.NotErrorIs(t, err, bond.ErrInvalidMetrics)
}
