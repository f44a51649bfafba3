package rates

// SolverConfig holds the bounds of the rate solver used for TCEA, TREA and
// yield-to-maturity. The zero value is not usable; start from
// DefaultSolverConfig or call WithDefaults.
type SolverConfig struct {
	// Tolerance is the absolute NPV residual accepted as a root.
	Tolerance float64

	// RateTolerance stops the iteration once the periodic rate step is
	// smaller than this.
	RateTolerance float64

	// MaxIterations bounds the Newton/bisection loop. Exhausting it is
	// reported as ErrNoConvergence.
	MaxIterations int

	// UpperBound is the largest periodic rate the bracket search will try
	// (10 = 1000% per period).
	UpperBound float64

	// DerivativeThreshold is the minimum |dNPV/dr| for a Newton step.
	// Below it the solver bisects instead.
	DerivativeThreshold float64

	// PriceTolerance is the relative gap allowed between a supplied
	// theoretical price and the discounted sum of net flows. 0 disables
	// the check.
	PriceTolerance float64
}

// DefaultSolverConfig provides production defaults.
var DefaultSolverConfig = SolverConfig{
	Tolerance:           1e-10,
	RateTolerance:       1e-12,
	MaxIterations:       100,
	UpperBound:          10,
	DerivativeThreshold: 1e-15,
	PriceTolerance:      0,
}

// WithDefaults fills zero fields from DefaultSolverConfig.
func (c SolverConfig) WithDefaults() SolverConfig {
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultSolverConfig.Tolerance
	}
	if c.RateTolerance <= 0 {
		c.RateTolerance = DefaultSolverConfig.RateTolerance
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultSolverConfig.MaxIterations
	}
	if c.UpperBound <= 0 {
		c.UpperBound = DefaultSolverConfig.UpperBound
	}
	if c.DerivativeThreshold <= 0 {
		c.DerivativeThreshold = DefaultSolverConfig.DerivativeThreshold
	}
	if c.PriceTolerance < 0 {
		c.PriceTolerance = 0
	}
	return c
}
