package rates

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DiscountFactors returns 1/(1+r)^t for t = 1..n.
func DiscountFactors(r float64, n int) []float64 {
	dfs := make([]float64, n)
	for i := range dfs {
		dfs[i] = math.Pow(1+r, -float64(i+1))
	}
	return dfs
}

// PresentValues discounts flows, where flows[i] is paid at the end of
// period i+1.
func PresentValues(flows []float64, r float64) []float64 {
	pv := make([]float64, len(flows))
	copy(pv, flows)
	if len(pv) == 0 {
		return pv
	}
	floats.Mul(pv, DiscountFactors(r, len(pv)))
	return pv
}

// NPV returns the present value of flows (period 1..n) at periodic rate r.
func NPV(flows []float64, r float64) float64 {
	return floats.Sum(PresentValues(flows, r))
}

// npvAndDeriv returns NPV(r) and dNPV/dr:
//
//	NPV   = Σ c_t / (1+r)^t
//	dNPV  = Σ -t · c_t / (1+r)^(t+1)
func npvAndDeriv(flows []float64, r float64) (float64, float64) {
	var npv, deriv float64
	for i, c := range flows {
		t := float64(i + 1)
		disc := math.Pow(1+r, t)
		npv += c / disc
		deriv += -t * c / (disc * (1 + r))
	}
	return npv, deriv
}
