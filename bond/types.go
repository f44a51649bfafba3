package bond

import (
	"time"

	"github.com/meenmo/germanbond/calendar"
)

// Frequency is a payment or capitalization frequency.
type Frequency string

const (
	Monthly     Frequency = "monthly"
	Bimonthly   Frequency = "bimonthly"
	Quarterly   Frequency = "quarterly"
	FourMonthly Frequency = "fourmonthly"
	Semiannual  Frequency = "semiannual"
	Annual      Frequency = "annual"
	// Daily is only valid as a capitalization frequency (360-day year).
	Daily Frequency = "daily"
)

// PeriodsPerYear returns the number of periods a year, or 0 for an unknown
// frequency.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case Monthly:
		return 12
	case Bimonthly:
		return 6
	case Quarterly:
		return 4
	case FourMonthly:
		return 3
	case Semiannual:
		return 2
	case Annual:
		return 1
	case Daily:
		return 360
	default:
		return 0
	}
}

// MonthsPerPeriod returns the calendar months between two payments.
func (f Frequency) MonthsPerPeriod() int {
	if f == Daily {
		return 0
	}
	if ppy := f.PeriodsPerYear(); ppy > 0 {
		return 12 / ppy
	}
	return 0
}

// FrequencyFromPeriods maps a periods-per-year count back to a payment
// frequency.
func FrequencyFromPeriods(ppy int) (Frequency, bool) {
	for _, f := range []Frequency{Monthly, Bimonthly, Quarterly, FourMonthly, Semiannual, Annual} {
		if f.PeriodsPerYear() == ppy {
			return f, true
		}
	}
	return "", false
}

func (f Frequency) isPayment() bool {
	return f != Daily && f.PeriodsPerYear() > 0
}

// GraceType is the policy applied to the leading grace periods.
type GraceType string

const (
	GraceNone GraceType = "none"
	// GracePartial pays interest only.
	GracePartial GraceType = "partial"
	// GraceTotal pays nothing; interest capitalizes into the balance.
	GraceTotal GraceType = "total"
)

// RateType states how the coupon rate is quoted.
type RateType string

const (
	// Effective is an effective annual rate (TEA).
	Effective RateType = "effective"
	// Nominal is a nominal annual rate (TNA) with a capitalization frequency.
	Nominal RateType = "nominal"
)

// TermUnit tags the unit of a quoted duration. Terms always carry periods;
// TermUnit exists for inputs quoted in years.
type TermUnit string

const (
	UnitPeriods TermUnit = "periods"
	UnitYears   TermUnit = "years"
)

// Costs are issuance charges, each a fraction of the commercial value.
//
// The issuer bears all four; the investor bears Flotation and Cavali.
type Costs struct {
	Structuring float64
	Placement   float64
	Flotation   float64
	Cavali      float64
}

// IssuerShare is the fraction of the commercial value the issuer pays away.
func (c Costs) IssuerShare() float64 {
	return c.Structuring + c.Placement + c.Flotation + c.Cavali
}

// InvestorShare is the fraction of the commercial value the investor pays
// on top of the price.
func (c Costs) InvestorShare() float64 {
	return c.Flotation + c.Cavali
}

// Terms are the static terms of a German-amortized bond.
//
// Periods is a count of payment periods, not years. Optional fields
// default as documented.
type Terms struct {
	// NominalValue is the face amount of debt.
	NominalValue float64
	// CommercialValue is the issue price. Defaults to NominalValue.
	CommercialValue float64

	// CouponRate is the annual coupon rate (0.05 = 5%).
	CouponRate float64
	// CouponRateType defaults to Effective.
	CouponRateType RateType
	// Capitalization is the compounding frequency of a Nominal coupon rate.
	// Defaults to the payment frequency.
	Capitalization Frequency

	// MarketRate is the effective annual discount rate (COK).
	MarketRate float64

	Periods   int
	Frequency Frequency

	// Bonus is the redemption premium as a fraction of NominalValue, paid
	// with the last period.
	Bonus float64
	Costs Costs

	GraceType    GraceType
	GracePeriods int

	// IssueDate, when set, dates every entry.
	IssueDate time.Time
	Calendar  calendar.CalendarID
}

// CashFlowEntry is one period of a schedule. NetFlow is seen from the
// investor: Payment plus Bonus.
type CashFlowEntry struct {
	Period int
	Date   time.Time
	Grace  GraceType

	InitialBalance float64
	Interest       float64
	Amortization   float64
	Payment        float64
	Bonus          float64
	FinalBalance   float64
	NetFlow        float64
}
