package bond

import (
	"errors"
	"fmt"

	"github.com/meenmo/germanbond/rates"
)

var (
	// ErrInvalidTerms marks malformed or out-of-range bond parameters.
	ErrInvalidTerms = errors.New("invalid bond terms")
	// ErrInvalidMetrics marks degenerate valuation inputs: a non-positive
	// price, an unusable market rate or a malformed schedule.
	ErrInvalidMetrics = errors.New("invalid metrics input")
	// ErrNoConvergence is returned when TCEA, TREA or the yield cannot be
	// solved within the iteration budget.
	ErrNoConvergence = rates.ErrNoConvergence
)

func invalidTerms(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTerms, fmt.Sprintf(format, args...))
}

func invalidMetrics(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidMetrics, fmt.Sprintf(format, args...))
}
