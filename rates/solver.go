package rates

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoConvergence is returned when the rate solver cannot bracket a root
// or exhausts its iteration budget.
var ErrNoConvergence = errors.New("rate solver did not converge")

// Solution is the output of SolveRate.
type Solution struct {
	// Rate is the periodic rate r* solving Σ flows_t/(1+r*)^t = target.
	Rate float64
	// Iterations is the number of Newton/bisection steps taken.
	Iterations int
}

// lowestRate is the left edge of the bracket search. Rates at -100% make
// every discount factor blow up.
const lowestRate = -0.99

// bracketGrid is scanned for a sign change. Positive rates are tried first
// so that a conventional (positive) root wins over a negative one.
var bracketGrid = []float64{0, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

var negativeGrid = []float64{0, -0.01, -0.05, -0.1, -0.25, -0.5, -0.75, -0.9, lowestRate}

// SolveRate finds the periodic rate r* such that the present value of flows
// (flows[i] paid at the end of period i+1) equals target.
//
// The root is bracketed on [-0.99, cfg.UpperBound] and refined with
// Newton-Raphson, falling back to bisection whenever a Newton step leaves
// the bracket or the derivative vanishes. Both failure modes are reported
// as ErrNoConvergence; no default rate is substituted.
func SolveRate(flows []float64, target float64, cfg SolverConfig) (Solution, error) {
	cfg = cfg.WithDefaults()
	if len(flows) == 0 {
		return Solution{}, fmt.Errorf("SolveRate: no cash flows: %w", ErrNoConvergence)
	}
	if !finite(target) {
		return Solution{}, fmt.Errorf("SolveRate: target %v is not finite: %w", target, ErrNoConvergence)
	}

	tol := cfg.Tolerance * math.Max(1, math.Abs(target))
	f := func(r float64) (float64, float64) {
		npv, d := npvAndDeriv(flows, r)
		return npv - target, d
	}

	lo, hi, found := bracket(f, cfg.UpperBound)
	if !found {
		return Solution{}, fmt.Errorf("SolveRate: no sign change of NPV - target on [%.2f, %.2f]: %w", lowestRate, cfg.UpperBound, ErrNoConvergence)
	}

	flo, _ := f(lo)
	if flo == 0 {
		return Solution{Rate: lo}, nil
	}
	fhi, _ := f(hi)
	if fhi == 0 {
		return Solution{Rate: hi}, nil
	}

	x := lo + (hi-lo)/2
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		fx, dfx := f(x)
		if math.Abs(fx) < tol {
			return Solution{Rate: x, Iterations: iter + 1}, nil
		}

		// Keep the root inside [lo, hi].
		if (fx < 0) == (flo < 0) {
			lo, flo = x, fx
		} else {
			hi = x
		}

		next := x - fx/dfx
		if math.Abs(dfx) < cfg.DerivativeThreshold || next <= lo || next >= hi || math.IsNaN(next) {
			next = lo + (hi-lo)/2
		}

		if math.Abs(next-x) < cfg.RateTolerance || hi-lo < cfg.RateTolerance {
			return Solution{Rate: next, Iterations: iter + 1}, nil
		}
		x = next
	}

	return Solution{Rate: x, Iterations: cfg.MaxIterations}, fmt.Errorf("SolveRate: did not converge after %d iterations: %w", cfg.MaxIterations, ErrNoConvergence)
}

// bracket walks outward from 0, first over positive rates up to upper and
// then over negative rates down to lowestRate, and returns the first
// interval on which f changes sign.
func bracket(f func(float64) (float64, float64), upper float64) (float64, float64, bool) {
	scan := func(points []float64) (float64, float64, bool) {
		prev := points[0]
		fprev, _ := f(prev)
		if fprev == 0 {
			return prev, prev, true
		}
		for _, p := range points[1:] {
			fp, _ := f(p)
			if math.IsNaN(fp) || math.IsInf(fp, 0) {
				return 0, 0, false
			}
			if fp == 0 || (fp < 0) != (fprev < 0) {
				if p < prev {
					return p, prev, true
				}
				return prev, p, true
			}
			prev, fprev = p, fp
		}
		return 0, 0, false
	}

	positive := make([]float64, 0, len(bracketGrid)+1)
	for _, p := range bracketGrid {
		if p < upper {
			positive = append(positive, p)
		}
	}
	positive = append(positive, upper)

	if lo, hi, ok := scan(positive); ok {
		return lo, hi, true
	}
	return scan(negativeGrid)
}
