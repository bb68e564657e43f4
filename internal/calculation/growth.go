package calculation

import (
	"time"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/pkg/dateutil"
	"github.com/rpgo/finplan/pkg/money"
	"github.com/shopspring/decimal"
)

// GrowthInput describes a single future-value projection
type GrowthInput struct {
	Initial      decimal.Decimal
	Contribution decimal.Decimal // per Frequency period
	Frequency    domain.Frequency
	AnnualRate   decimal.Decimal // 0.08 = 8%
	Years        int

	// Expiry stops contributions; months are counted from AsOf.
	Expiry *time.Time
	AsOf   time.Time
}

// ProjectGrowth returns the future value of an initial amount plus periodic contributions.
func ProjectGrowth(in GrowthInput) decimal.Decimal {
	return ProjectGrowthDetailed(in).Total
}

// ProjectGrowthDetailed projects like ProjectGrowth and keeps the component breakdown.
//
// Without a positive contribution and a frequency the initial amount compounds
// annually. Otherwise growth is stepped monthly: the initial amount compounds for
// the full horizon, contributions accumulate as an ordinary annuity until expiry,
// and the accumulated pot keeps compounding for the remaining months.
func ProjectGrowthDetailed(in GrowthInput) domain.GrowthBreakdown {
	if in.Years <= 0 {
		return domain.GrowthBreakdown{LumpSum: in.Initial, Total: in.Initial}
	}

	if !in.Contribution.IsPositive() || in.Frequency == "" {
		lump := in.Initial.Mul(money.Growth(in.AnnualRate, in.Years))
		return domain.GrowthBreakdown{LumpSum: lump, Total: lump}
	}

	monthlyRate := in.AnnualRate.Div(decimal.NewFromInt(12))
	totalMonths := in.Years * 12
	monthlySIP := in.Frequency.MonthlyEquivalent(in.Contribution)

	lump := in.Initial.Mul(money.Growth(monthlyRate, totalMonths))

	contributionMonths := totalMonths
	if in.Expiry != nil {
		remaining := dateutil.MonthsBetween(in.AsOf, *in.Expiry)
		if remaining < 0 {
			remaining = 0
		}
		if remaining < contributionMonths {
			contributionMonths = remaining
		}
	}

	accumulated := FutureValueOfAnnuity(monthlySIP, monthlyRate, contributionMonths)
	pot := accumulated.Mul(money.Growth(monthlyRate, totalMonths-contributionMonths))

	return domain.GrowthBreakdown{
		LumpSum:            lump,
		Contributions:      pot,
		Total:              lump.Add(pot),
		TotalContributed:   monthlySIP.Mul(decimal.NewFromInt(int64(contributionMonths))),
		ContributionMonths: contributionMonths,
	}
}

// FutureValueOfAnnuity accumulates `periods` end-of-period payments at `rate` per period.
// A zero rate degenerates to payment × periods.
func FutureValueOfAnnuity(payment, rate decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(periods))
	if rate.IsZero() {
		return payment.Mul(n)
	}
	factor := money.Growth(rate, periods).Sub(decimal.NewFromInt(1)).Div(rate)
	return payment.Mul(factor)
}
