package bond_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/germanbond/bond"
)

func TestPeriodsFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		duration float64
		unit     bond.TermUnit
		freq     bond.Frequency
		want     int
	}{
		{10, bond.UnitPeriods, bond.Semiannual, 10},
		{10, "", bond.Monthly, 10},
		{5, bond.UnitYears, bond.Semiannual, 10},
		{3, bond.UnitYears, bond.Quarterly, 12},
		{1.5, bond.UnitYears, bond.Bimonthly, 9},
		{2, bond.UnitYears, bond.FourMonthly, 6},
		{0.5, bond.UnitYears, bond.Monthly, 6},
	}
	for _, tc := range tests {
		got, err := bond.PeriodsFor(tc.duration, tc.unit, tc.freq)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%v %s %s", tc.duration, tc.unit, tc.freq)
	}
}

func TestPeriodsFor_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration float64
		unit     bond.TermUnit
		freq     bond.Frequency
	}{
		{"zero", 0, bond.UnitYears, bond.Annual},
		{"negative", -2, bond.UnitPeriods, bond.Annual},
		{"nan", math.NaN(), bond.UnitPeriods, bond.Annual},
		{"fractional periods", 2.5, bond.UnitPeriods, bond.Annual},
		{"partial year", 1.25, bond.UnitYears, bond.Semiannual},
		{"unknown unit", 2, "months", bond.Annual},
		{"daily payments", 1, bond.UnitYears, bond.Daily},
	}
	for _, tc := range tests {
		_, err := bond.PeriodsFor(tc.duration, tc.unit, tc.freq)
		assert.ErrorIs(t, err, bond.ErrInvalidTerms, tc.name)
	}
}

func TestFrequency(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 12, bond.Monthly.PeriodsPerYear())
	assert.Equal(t, 360, bond.Daily.PeriodsPerYear())
	assert.Equal(t, 0, bond.Frequency("weekly").PeriodsPerYear())
	assert.Equal(t, 6, bond.Semiannual.MonthsPerPeriod())
	assert.Equal(t, 4, bond.FourMonthly.MonthsPerPeriod())
	assert.Equal(t, 0, bond.Daily.MonthsPerPeriod())

	for _, ppy := range []int{1, 2, 3, 4, 6, 12} {
		f, ok := bond.FrequencyFromPeriods(ppy)
		require.True(t, ok)
		assert.Equal(t, ppy, f.PeriodsPerYear())
	}
	_, ok := bond.FrequencyFromPeriods(360)
	assert.False(t, ok)
	_, ok = bond.FrequencyFromPeriods(5)
	assert.False(t, ok)
}

func TestCostsShares(t *testing.T) {
	t.Parallel()

	c := bond.Costs{Structuring: 0.0045, Placement: 0.0025, Flotation: 0.0015, Cavali: 0.005}
	assert.InDelta(t, 0.0135, c.IssuerShare(), 1e-15)
	assert.InDelta(t, 0.0065, c.InvestorShare(), 1e-15)
}

func TestTerms_PeriodicCouponRate(t *testing.T) {
	t.Parallel()

	terms := roundTripTerms()
	r, err := terms.PeriodicCouponRate()
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(1.05)-1, r, 1e-15)
	assert.Equal(t, 2, terms.PeriodsPerYear())

	terms.CouponRateType = bond.Nominal
	terms.CouponRate = 0.12
	terms.Frequency = bond.Monthly
	r, err = terms.PeriodicCouponRate()
	require.NoError(t, err)
	assert.InDelta(t, 0.01, r, 1e-15)

	terms.Periods = 0
	_, err = terms.PeriodicCouponRate()
	assert.ErrorIs(t, err, bond.ErrInvalidTerms)
}
