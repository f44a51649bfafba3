package bond

import (
	"fmt"

	"github.com/meenmo/germanbond/calendar"
	"github.com/meenmo/germanbond/utils"
)

// GenerateSchedule projects the German-method schedule of terms: one entry
// per period, principal repaid in equal installments, interest on the
// declining balance.
//
// During partial grace only interest is paid. During total grace nothing is
// paid and interest capitalizes. The installment is fixed when amortization
// starts: the balance at that point divided by the remaining periods, which
// is NominalValue/Periods when there is no grace. The redemption bonus is
// paid with the last period, whose final balance is exactly zero.
func GenerateSchedule(terms Terms) ([]CashFlowEntry, error) {
	t, err := terms.normalize()
	if err != nil {
		return nil, fmt.Errorf("GenerateSchedule: %w", err)
	}
	r, err := t.periodicCouponRate()
	if err != nil {
		return nil, fmt.Errorf("GenerateSchedule: %w", err)
	}

	n := t.Periods
	months := t.Frequency.MonthsPerPeriod()
	bonus := t.Bonus * t.NominalValue

	schedule := make([]CashFlowEntry, 0, n)
	balance := t.NominalValue
	installment := 0.0

	for p := 1; p <= n; p++ {
		e := CashFlowEntry{
			Period:         p,
			Grace:          GraceNone,
			InitialBalance: balance,
			Interest:       balance * r,
		}

		switch {
		case p <= t.GracePeriods && t.GraceType == GracePartial:
			e.Grace = GracePartial
			e.Payment = e.Interest
		case p <= t.GracePeriods && t.GraceType == GraceTotal:
			e.Grace = GraceTotal
			balance += e.Interest
		default:
			if p == t.GracePeriods+1 {
				installment = balance / float64(n-t.GracePeriods)
			}
			e.Amortization = installment
			if p == n {
				// Retire whatever rounding left behind.
				e.Amortization = balance
			}
			e.Payment = e.Amortization + e.Interest
			balance -= e.Amortization
		}

		if p == n {
			e.Bonus = bonus
			balance = 0
		} else if balance < 0 {
			balance = 0
		}
		e.FinalBalance = balance
		e.NetFlow = e.Payment + e.Bonus

		if !t.IssueDate.IsZero() {
			e.Date = calendar.Adjust(t.Calendar, utils.AddMonth(t.IssueDate, p*months))
		}
		schedule = append(schedule, e)
	}

	return schedule, nil
}
