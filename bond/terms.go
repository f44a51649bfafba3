package bond

import (
	"math"

	"github.com/meenmo/germanbond/calendar"
	"github.com/meenmo/germanbond/rates"
)

// Validate checks the invariants of t. Every failure wraps ErrInvalidTerms.
func (t Terms) Validate() error {
	_, err := t.normalize()
	return err
}

// PeriodsPerYear returns the payment periods per year.
func (t Terms) PeriodsPerYear() int {
	return t.Frequency.PeriodsPerYear()
}

// PeriodicCouponRate returns the effective coupon rate per payment period.
func (t Terms) PeriodicCouponRate() (float64, error) {
	n, err := t.normalize()
	if err != nil {
		return 0, err
	}
	return n.periodicCouponRate()
}

// normalize validates t and returns a copy with defaults applied.
func (t Terms) normalize() (Terms, error) {
	if !finite(t.NominalValue) || t.NominalValue <= 0 {
		return t, invalidTerms("nominal value must be positive, got %v", t.NominalValue)
	}
	if !finite(t.CommercialValue) || t.CommercialValue < 0 {
		return t, invalidTerms("commercial value must be non-negative, got %v", t.CommercialValue)
	}
	if t.CommercialValue == 0 {
		t.CommercialValue = t.NominalValue
	}
	if !finite(t.CouponRate) || t.CouponRate < 0 {
		return t, invalidTerms("coupon rate must be non-negative, got %v", t.CouponRate)
	}
	if !finite(t.MarketRate) || t.MarketRate <= -1 {
		return t, invalidTerms("market rate must be above -100%%, got %v", t.MarketRate)
	}
	if t.Periods <= 0 {
		return t, invalidTerms("duration must be a positive number of periods, got %d", t.Periods)
	}
	if !t.Frequency.isPayment() {
		return t, invalidTerms("unknown payment frequency %q", t.Frequency)
	}

	switch t.CouponRateType {
	case "":
		t.CouponRateType = Effective
	case Effective, Nominal:
	default:
		return t, invalidTerms("unknown rate type %q", t.CouponRateType)
	}
	if t.Capitalization == "" {
		t.Capitalization = t.Frequency
	}
	if t.Capitalization.PeriodsPerYear() == 0 {
		return t, invalidTerms("unknown capitalization frequency %q", t.Capitalization)
	}

	switch t.GraceType {
	case "":
		t.GraceType = GraceNone
	case GraceNone, GracePartial, GraceTotal:
	default:
		return t, invalidTerms("unknown grace type %q", t.GraceType)
	}
	if t.GracePeriods < 0 {
		return t, invalidTerms("grace periods must be non-negative, got %d", t.GracePeriods)
	}
	if t.GraceType == GraceNone {
		t.GracePeriods = 0
	}
	if t.GracePeriods >= t.Periods {
		return t, invalidTerms("grace periods (%d) must be fewer than total periods (%d)", t.GracePeriods, t.Periods)
	}

	if !finite(t.Bonus) || t.Bonus < 0 {
		return t, invalidTerms("bonus must be non-negative, got %v", t.Bonus)
	}
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"structuring", t.Costs.Structuring},
		{"placement", t.Costs.Placement},
		{"flotation", t.Costs.Flotation},
		{"cavali", t.Costs.Cavali},
	} {
		if !finite(c.value) || c.value < 0 {
			return t, invalidTerms("%s cost must be non-negative, got %v", c.name, c.value)
		}
	}
	if t.Costs.IssuerShare() >= 1 {
		return t, invalidTerms("issuance costs (%v) consume the whole commercial value", t.Costs.IssuerShare())
	}

	switch t.Calendar {
	case calendar.None, calendar.TARGET, calendar.PEN, calendar.USD:
	default:
		return t, invalidTerms("unknown calendar %q", t.Calendar)
	}

	if _, err := t.periodicCouponRate(); err != nil {
		return t, err
	}
	return t, nil
}

// periodicCouponRate assumes t is normalized.
func (t Terms) periodicCouponRate() (float64, error) {
	ppy := t.Frequency.PeriodsPerYear()
	var (
		r   float64
		err error
	)
	if t.CouponRateType == Nominal {
		r, err = rates.PeriodicFromNominal(t.CouponRate, t.Capitalization.PeriodsPerYear(), ppy)
	} else {
		r, err = rates.Periodic(t.CouponRate, ppy)
	}
	if err != nil {
		return 0, invalidTerms("coupon rate: %v", err)
	}
	return r, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// PeriodsFor converts a duration quoted in unit into payment periods of f.
// A duration in years must cover a whole number of periods.
func PeriodsFor(duration float64, unit TermUnit, f Frequency) (int, error) {
	if !f.isPayment() {
		return 0, invalidTerms("unknown payment frequency %q", f)
	}
	if !finite(duration) || duration <= 0 {
		return 0, invalidTerms("duration must be positive, got %v", duration)
	}
	var periods float64
	switch unit {
	case "", UnitPeriods:
		periods = duration
	case UnitYears:
		periods = duration * float64(f.PeriodsPerYear())
	default:
		return 0, invalidTerms("unknown duration unit %q", unit)
	}
	n := math.Round(periods)
	if math.Abs(periods-n) > 1e-9 {
		return 0, invalidTerms("duration of %v %s is not a whole number of %s periods", duration, unit, f)
	}
	return int(n), nil
}
