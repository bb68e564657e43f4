package calculation

import (
	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/pkg/money"
	"github.com/shopspring/decimal"
)

// SimulateNetWorth rolls household net worth forward one year at a time from the
// current age to the lifespan. Earnings accumulate flat while still working;
// expenses and loan installments draw the total down linearly. There is no
// compounding: this models the household aggregate, not a single instrument.
func SimulateNetWorth(p domain.NetWorthParams) ([]domain.NetWorthPoint, error) {
	if p.Age < 0 {
		return nil, domain.NewValidationError("age", "", "cannot be negative")
	}
	if p.Lifespan < p.Age {
		return nil, domain.NewValidationError("lifespan", "", "lifespan %d is below current age %d", p.Lifespan, p.Age)
	}
	if p.WorkTenureYears < 0 {
		return nil, domain.NewValidationError("work_tenure_years", "", "cannot be negative")
	}

	annualOutflow := p.AnnualExpenses.Add(p.TotalAnnualEMI)
	cumulativeEarnings := decimal.Zero
	span := p.Lifespan - p.Age
	points := make([]domain.NetWorthPoint, 0, span+1)

	for y := 0; y <= span; y++ {
		if y < p.WorkTenureYears {
			cumulativeEarnings = cumulativeEarnings.Add(p.AnnualIncome)
		}
		value := p.InitialAssets.Add(cumulativeEarnings).Sub(annualOutflow.Mul(decimal.NewFromInt(int64(y))))
		points = append(points, domain.NetWorthPoint{
			Year:           p.CurrentYear + y,
			Age:            p.Age + y,
			ProjectedValue: value,
		})
	}
	return points, nil
}

// NetWorthParamsFromPlan derives the simulation aggregates from a plan:
// total asset value, annualized expenses and the yearly installments of loans
// active in the current year.
func NetWorthParamsFromPlan(plan *domain.Plan, currentYear int) domain.NetWorthParams {
	assets := decimal.Zero
	for _, a := range plan.Assets {
		assets = assets.Add(a.CurrentValue)
	}
	expenses := decimal.Zero
	for i := range plan.Expenses {
		expenses = expenses.Add(plan.Expenses[i].AnnualAmount())
	}
	emi := decimal.Zero
	for i := range plan.Loans {
		l := &plan.Loans[i]
		if l.IsActiveIn(currentYear) {
			emi = emi.Add(money.Annual(l.MonthlyInstallment()))
		}
	}
	return domain.NetWorthParams{
		CurrentYear:     currentYear,
		Age:             plan.Household.Age,
		Lifespan:        plan.Household.Lifespan,
		WorkTenureYears: plan.Household.WorkTenureYears,
		AnnualIncome:    plan.Household.AnnualIncome,
		InitialAssets:   assets,
		AnnualExpenses:  expenses,
		TotalAnnualEMI:  emi,
	}
}
