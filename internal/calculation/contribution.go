package calculation

import (
	"github.com/rpgo/finplan/pkg/money"
	"github.com/shopspring/decimal"
)

// RequiredAnnualContribution solves for the level end-of-year contribution that
// grows to gap after yearsRemaining years at annualReturnRate (sinking fund).
// A non-positive gap needs nothing; zero years needs the whole gap now.
func RequiredAnnualContribution(gap, annualReturnRate decimal.Decimal, yearsRemaining int) decimal.Decimal {
	return sinkingFund(money.NonNegative(gap), annualReturnRate, yearsRemaining)
}

// RequiredMonthlyContribution is the monthly variant of RequiredAnnualContribution.
func RequiredMonthlyContribution(gap, annualReturnRate decimal.Decimal, yearsRemaining int) decimal.Decimal {
	monthlyRate := annualReturnRate.Div(decimal.NewFromInt(12))
	return sinkingFund(money.NonNegative(gap), monthlyRate, yearsRemaining*12)
}

// RequiredLumpSum returns the amount that, invested today, grows to gap.
func RequiredLumpSum(gap, annualReturnRate decimal.Decimal, yearsRemaining int) decimal.Decimal {
	gap = money.NonNegative(gap)
	if yearsRemaining <= 0 || gap.IsZero() {
		return gap
	}
	return gap.Div(money.Growth(annualReturnRate, yearsRemaining))
}

func sinkingFund(gap, rate decimal.Decimal, periods int) decimal.Decimal {
	if gap.IsZero() {
		return decimal.Zero
	}
	if periods <= 0 {
		return gap
	}
	n := decimal.NewFromInt(int64(periods))
	if rate.IsZero() {
		return gap.Div(n)
	}
	denominator := money.Growth(rate, periods).Sub(decimal.NewFromInt(1))
	if denominator.IsZero() {
		return gap.Div(n)
	}
	return gap.Mul(rate).Div(denominator)
}
