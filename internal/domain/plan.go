package domain

import "github.com/shopspring/decimal"

// Plan is a complete household snapshot handed to the planning engines.
type Plan struct {
	CurrentYear int                `yaml:"current_year" json:"current_year"`
	Household   Household          `yaml:"household" json:"household"`
	Assets      []Asset            `yaml:"assets" json:"assets"`
	Goals       []Goal             `yaml:"goals" json:"goals"`
	Loans       []Loan             `yaml:"loans,omitempty" json:"loans,omitempty"`
	Expenses    []Expense          `yaml:"expenses,omitempty" json:"expenses,omitempty"`
	Projection  ProjectionSettings `yaml:"projection,omitempty" json:"projection,omitempty"`
}

// Household holds the aggregate inputs of the net worth simulation
type Household struct {
	Age             int             `yaml:"age" json:"age"`
	Lifespan        int             `yaml:"lifespan" json:"lifespan"`
	WorkTenureYears int             `yaml:"work_tenure_years" json:"work_tenure_years"`
	AnnualIncome    decimal.Decimal `yaml:"annual_income" json:"annual_income"`
	MonthlyIncome   decimal.Decimal `yaml:"monthly_income,omitempty" json:"monthly_income,omitempty"` // take-home; defaults to annual/12
}

// TakeHomeMonthly returns MonthlyIncome, falling back to AnnualIncome/12.
func (h *Household) TakeHomeMonthly() decimal.Decimal {
	if h.MonthlyIncome.IsPositive() {
		return h.MonthlyIncome
	}
	return h.AnnualIncome.Div(decimal.NewFromInt(12))
}

// ProjectionSettings tunes report horizons
type ProjectionSettings struct {
	ExpenseHorizonYears int `yaml:"expense_horizon_years,omitempty" json:"expense_horizon_years,omitempty"`
}

// DefaultExpenseHorizonYears is used when a plan leaves the horizon unset.
const DefaultExpenseHorizonYears = 10

// ExpenseHorizon returns the configured expense horizon or the default.
func (p *Plan) ExpenseHorizon() int {
	if p.Projection.ExpenseHorizonYears > 0 {
		return p.Projection.ExpenseHorizonYears
	}
	return DefaultExpenseHorizonYears
}
