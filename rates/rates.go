// Package rates converts between annual and periodic interest rates and
// discounts periodic cash-flow vectors.
//
// Conventions:
//   - rates are decimals (0.05 = 5%);
//   - an "effective" annual rate compounds once a year (TEA);
//   - a "nominal" annual rate j compounds m times a year at j/m (TNA);
//   - periodic rates are effective per payment period.
package rates

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRate is returned when a rate cannot be converted, e.g. a rate
// at or below -100% or a non-finite value.
var ErrInvalidRate = errors.New("invalid rate")

// Periodic converts an effective annual rate into the effective rate per
// period for periodsPerYear payments a year:
//
//	periodic = (1 + annual)^(1/periodsPerYear) - 1
func Periodic(annual float64, periodsPerYear int) (float64, error) {
	if periodsPerYear <= 0 {
		return 0, fmt.Errorf("Periodic: periodsPerYear must be positive, got %d: %w", periodsPerYear, ErrInvalidRate)
	}
	if !finite(annual) || annual <= -1 {
		return 0, fmt.Errorf("Periodic: annual rate %v must be finite and above -100%%: %w", annual, ErrInvalidRate)
	}
	if periodsPerYear == 1 {
		return annual, nil
	}
	return math.Pow(1+annual, 1/float64(periodsPerYear)) - 1, nil
}

// EffectiveFromNominal converts a nominal annual rate compounded
// compoundings times a year into the equivalent effective annual rate.
func EffectiveFromNominal(nominal float64, compoundings int) (float64, error) {
	if compoundings <= 0 {
		return 0, fmt.Errorf("EffectiveFromNominal: compoundings must be positive, got %d: %w", compoundings, ErrInvalidRate)
	}
	perCompounding := nominal / float64(compoundings)
	if !finite(nominal) || perCompounding <= -1 {
		return 0, fmt.Errorf("EffectiveFromNominal: nominal rate %v gives a rate per compounding at or below -100%%: %w", nominal, ErrInvalidRate)
	}
	return math.Pow(1+perCompounding, float64(compoundings)) - 1, nil
}

// PeriodicFromNominal converts a nominal annual rate compounded
// compoundings times a year into the effective rate per payment period.
//
// When the compounding and payment frequencies coincide this is the flat
// division nominal/periodsPerYear.
func PeriodicFromNominal(nominal float64, compoundings, periodsPerYear int) (float64, error) {
	if compoundings == periodsPerYear && periodsPerYear > 0 {
		periodic := nominal / float64(periodsPerYear)
		if !finite(nominal) || periodic <= -1 {
			return 0, fmt.Errorf("PeriodicFromNominal: nominal rate %v gives a periodic rate at or below -100%%: %w", nominal, ErrInvalidRate)
		}
		return periodic, nil
	}
	effective, err := EffectiveFromNominal(nominal, compoundings)
	if err != nil {
		return 0, err
	}
	return Periodic(effective, periodsPerYear)
}

// Annualize compounds a periodic rate over periodsPerYear periods:
//
//	annual = (1 + periodic)^periodsPerYear - 1
func Annualize(periodic float64, periodsPerYear int) float64 {
	return math.Pow(1+periodic, float64(periodsPerYear)) - 1
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
