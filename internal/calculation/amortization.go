package calculation

import (
	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/pkg/dateutil"
	"github.com/rpgo/finplan/pkg/money"
	"github.com/shopspring/decimal"
)

// DefaultMaxTermMonths bounds schedules for loans without an end date.
const DefaultMaxTermMonths = 600

// balanceEpsilon is the residual balance treated as paid off.
var balanceEpsilon = decimal.NewFromFloat(0.01)

// GenerateSchedule steps a loan month by month from start until the balance is
// within a cent of zero or the end month has been scheduled, whichever comes first.
// A zero end month caps the schedule at DefaultMaxTermMonths.
//
// Interest is rounded to cents each month. When the installment does not cover
// accruing interest the principal portion is negative, the shortfall is added
// to the balance and the schedule is flagged NonAmortizing.
func GenerateSchedule(principal, annualRatePercent, monthlyInstallment decimal.Decimal, start, end dateutil.YearMonth) domain.AmortizationSchedule {
	if end.IsZero() {
		end = start.AddMonths(DefaultMaxTermMonths - 1)
	}
	monthlyRate := annualRatePercent.Div(money.Hundred()).Div(decimal.NewFromInt(12))

	schedule := domain.AmortizationSchedule{
		TotalInterest:  decimal.Zero,
		TotalPrincipal: decimal.Zero,
	}
	balance := money.NonNegative(principal)

	for period := start; balance.GreaterThan(balanceEpsilon) && !period.After(end); period = period.Next() {
		interest := balance.Mul(monthlyRate).Round(2)
		principalPaid := money.Min(monthlyInstallment.Sub(interest), balance)
		if !principalPaid.IsPositive() {
			schedule.NonAmortizing = true
		}
		balance = balance.Sub(principalPaid)

		schedule.Entries = append(schedule.Entries, domain.AmortizationEntry{
			Period:    period,
			Payment:   interest.Add(principalPaid),
			Interest:  interest,
			Principal: principalPaid,
			Balance:   balance,
		})
		schedule.TotalInterest = schedule.TotalInterest.Add(interest)
		schedule.TotalPrincipal = schedule.TotalPrincipal.Add(principalPaid)
	}

	schedule.RemainingBalance = balance
	schedule.PaidOff = balance.LessThanOrEqual(balanceEpsilon)
	if n := len(schedule.Entries); n > 0 {
		schedule.PayoffPeriod = schedule.Entries[n-1].Period
	} else {
		schedule.PayoffPeriod = start
	}
	return schedule
}

// AmortizeLoan schedules a loan's outstanding principal starting in startYear,
// or at the loan's own start date if that is later.
func AmortizeLoan(loan domain.Loan, startYear int) domain.AmortizationSchedule {
	return amortizeWithExtra(loan, startYear, decimal.Zero)
}

func amortizeWithExtra(loan domain.Loan, startYear int, extra decimal.Decimal) domain.AmortizationSchedule {
	start, end := loanWindow(loan, startYear)
	installment := loanInstallment(loan, start, end).Add(money.NonNegative(extra))
	schedule := GenerateSchedule(loan.Principal, loan.AnnualRatePercent, installment, start, end)
	schedule.LoanID = loan.ID
	return schedule
}

func loanWindow(loan domain.Loan, startYear int) (start, end dateutil.YearMonth) {
	start = dateutil.YearMonth{Year: startYear, Month: 1}
	if !loan.StartDate.IsZero() {
		if loanStart := dateutil.YearMonthOf(loan.StartDate); loanStart.After(start) {
			start = loanStart
		}
	}
	if !loan.EndDate.IsZero() {
		end = dateutil.YearMonthOf(loan.EndDate)
	}
	return start, end
}

// loanInstallment returns the monthly installment, deriving one from the
// remaining term when the loan does not state it.
func loanInstallment(loan domain.Loan, start, end dateutil.YearMonth) decimal.Decimal {
	installment := loan.MonthlyInstallment()
	if installment.IsPositive() || end.IsZero() {
		return installment
	}
	return StandardInstallment(loan.Principal, loan.AnnualRatePercent, start.MonthsUntil(end)+1)
}

// StandardInstallment returns the level monthly payment (EMI) that retires
// principal over months at annualRatePercent.
func StandardInstallment(principal, annualRatePercent decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return principal
	}
	n := decimal.NewFromInt(int64(months))
	r := annualRatePercent.Div(money.Hundred()).Div(decimal.NewFromInt(12))
	if r.IsZero() {
		return principal.Div(n)
	}
	factor := money.Growth(r, months)
	return principal.Mul(r).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1)))
}

// AggregateAnnual sums interest and principal per calendar year and reports the
// balance at the last scheduled month of each year.
func AggregateAnnual(schedule domain.AmortizationSchedule) []domain.AnnualLoanSummary {
	var out []domain.AnnualLoanSummary
	for _, e := range schedule.Entries {
		if len(out) == 0 || out[len(out)-1].Year != e.Period.Year {
			out = append(out, domain.AnnualLoanSummary{Year: e.Period.Year, Interest: decimal.Zero, Principal: decimal.Zero})
		}
		cur := &out[len(out)-1]
		cur.Interest = cur.Interest.Add(e.Interest)
		cur.Principal = cur.Principal.Add(e.Principal)
		cur.EndBalance = e.Balance
	}
	return out
}

// CompareScenarios runs the loan schedule with its base installment and with an
// extra monthly prepayment and reports the interest and time saved.
func CompareScenarios(loan domain.Loan, extraMonthlyPayment decimal.Decimal, startYear int) domain.LoanComparison {
	extra := money.NonNegative(extraMonthlyPayment)
	base := amortizeWithExtra(loan, startYear, decimal.Zero)
	accelerated := amortizeWithExtra(loan, startYear, extra)

	start, end := loanWindow(loan, startYear)
	baseInstallment := loanInstallment(loan, start, end)

	return domain.LoanComparison{
		LoanID:        loan.ID,
		ExtraPayment:  extra,
		Base:          summarizeSchedule(base, baseInstallment),
		Accelerated:   summarizeSchedule(accelerated, baseInstallment.Add(extra)),
		InterestSaved: money.NonNegative(base.TotalInterest.Sub(accelerated.TotalInterest)),
		MonthsSaved:   base.Months() - accelerated.Months(),
	}
}

func summarizeSchedule(s domain.AmortizationSchedule, installment decimal.Decimal) domain.LoanScenario {
	return domain.LoanScenario{
		MonthlyPayment: installment,
		TotalInterest:  s.TotalInterest,
		PayoffPeriod:   s.PayoffPeriod,
		Months:         s.Months(),
		PaidOff:        s.PaidOff,
	}
}
