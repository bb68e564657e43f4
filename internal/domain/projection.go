package domain

import (
	"github.com/rpgo/finplan/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// GrowthBreakdown splits a projected future value into its components
type GrowthBreakdown struct {
	LumpSum            decimal.Decimal `json:"lump_sum"`      // initial amount compounded
	Contributions      decimal.Decimal `json:"contributions"` // contribution pot compounded
	Total              decimal.Decimal `json:"total"`
	TotalContributed   decimal.Decimal `json:"total_contributed"`
	ContributionMonths int             `json:"contribution_months"`
}

// AssetContribution is one linked asset's share of a goal's funding
type AssetContribution struct {
	AssetID               string          `json:"asset_id"`
	AssetName             string          `json:"asset_name"`
	Percent               decimal.Decimal `json:"percent"`
	EarmarkedValue        decimal.Decimal `json:"earmarked_value"`
	EarmarkedContribution decimal.Decimal `json:"earmarked_contribution"`
	ProjectedValue        decimal.Decimal `json:"projected_value"`
}

// FundingResult summarizes how much of a goal is funded by its linked assets
type FundingResult struct {
	GoalID                     string               `json:"goal_id"`
	GoalName                   string               `json:"goal_name"`
	Target                     decimal.Decimal      `json:"target"`
	Funded                     decimal.Decimal      `json:"funded"`
	Gap                        decimal.Decimal      `json:"gap"`
	PercentFunded              decimal.Decimal      `json:"percent_funded"`
	YearsToGoal                int                  `json:"years_to_goal"`
	RequiredAnnualContribution decimal.Decimal      `json:"required_annual_contribution"`
	Contributions              []AssetContribution  `json:"contributions"`
	Warnings                   []ConsistencyWarning `json:"warnings,omitempty"`
}

// IsFullyFunded reports whether the projected funding meets the target.
func (fr *FundingResult) IsFullyFunded() bool {
	return fr.Gap.IsZero()
}

// GoalNeed is one goal's contribution requirement in a given year
type GoalNeed struct {
	GoalID               string          `json:"goal_id"`
	YearsRemaining       int             `json:"years_remaining"`
	Gap                  decimal.Decimal `json:"gap"`
	RequiredContribution decimal.Decimal `json:"required_contribution"`
}

// FundingNeedYear aggregates the required saving across open goals for one year
type FundingNeedYear struct {
	Year  int             `json:"year"`
	Total decimal.Decimal `json:"total"`
	Goals []GoalNeed      `json:"goals"`
}

// ActiveGoals counts goals that need a positive contribution this year.
func (y *FundingNeedYear) ActiveGoals() int {
	n := 0
	for _, g := range y.Goals {
		if g.RequiredContribution.IsPositive() {
			n++
		}
	}
	return n
}

// FundingNeedSeries is the required annual saving over time
type FundingNeedSeries struct {
	Years          []FundingNeedYear    `json:"years"`
	CollisionYears []int                `json:"collision_years"`
	Warnings       []ConsistencyWarning `json:"warnings,omitempty"`
}

// AmortizationEntry is one month of a loan payoff schedule
type AmortizationEntry struct {
	Period    dateutil.YearMonth `json:"period"`
	Payment   decimal.Decimal    `json:"payment"`
	Interest  decimal.Decimal    `json:"interest"`
	Principal decimal.Decimal    `json:"principal"`
	Balance   decimal.Decimal    `json:"balance"`
}

// AmortizationSchedule is the month-by-month payoff of a loan
type AmortizationSchedule struct {
	LoanID           string              `json:"loan_id"`
	Entries          []AmortizationEntry `json:"entries"`
	TotalInterest    decimal.Decimal     `json:"total_interest"`
	TotalPrincipal   decimal.Decimal     `json:"total_principal"`
	RemainingBalance decimal.Decimal     `json:"remaining_balance"`
	PayoffPeriod     dateutil.YearMonth  `json:"payoff_period"` // last scheduled month
	PaidOff          bool                `json:"paid_off"`
	NonAmortizing    bool                `json:"non_amortizing"` // installment never covered interest
}

// Months returns the number of scheduled periods.
func (s *AmortizationSchedule) Months() int {
	return len(s.Entries)
}

// AnnualLoanSummary aggregates a schedule per calendar year
type AnnualLoanSummary struct {
	Year       int             `json:"year"`
	Interest   decimal.Decimal `json:"interest"`
	Principal  decimal.Decimal `json:"principal"`
	EndBalance decimal.Decimal `json:"end_balance"`
}

// LoanScenario summarizes one run of a schedule for comparison
type LoanScenario struct {
	MonthlyPayment decimal.Decimal    `json:"monthly_payment"`
	TotalInterest  decimal.Decimal    `json:"total_interest"`
	PayoffPeriod   dateutil.YearMonth `json:"payoff_period"`
	Months         int                `json:"months"`
	PaidOff        bool               `json:"paid_off"`
}

// LoanComparison contrasts the base installment with installment plus a prepayment
type LoanComparison struct {
	LoanID        string          `json:"loan_id"`
	ExtraPayment  decimal.Decimal `json:"extra_payment"`
	Base          LoanScenario    `json:"base"`
	Accelerated   LoanScenario    `json:"accelerated"`
	InterestSaved decimal.Decimal `json:"interest_saved"`
	MonthsSaved   int             `json:"months_saved"`
}

// LoanReport bundles everything computed for one loan
type LoanReport struct {
	Schedule   AmortizationSchedule `json:"schedule"`
	Annual     []AnnualLoanSummary  `json:"annual"`
	Comparison *LoanComparison      `json:"comparison,omitempty"`
}

// ExpenseYear holds projected annual expense per category for one year
type ExpenseYear struct {
	Year       int                        `json:"year"`
	ByCategory map[string]decimal.Decimal `json:"by_category"`
	Total      decimal.Decimal            `json:"total"`
}

// ExpenseProjection is the inflation-adjusted expense outlook
type ExpenseProjection struct {
	Categories []string      `json:"categories"`
	Years      []ExpenseYear `json:"years"`
}

// ClassifiedExpense is an expense tagged for the needs/wants/savings breakdown
type ClassifiedExpense struct {
	ExpenseID   string          `json:"expense_id"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
	Kind        SpendKind       `json:"kind"`
	Monthly     decimal.Decimal `json:"monthly"`
}

// NWSBreakdown splits monthly income into needs, wants and savings
type NWSBreakdown struct {
	MonthlyIncome  decimal.Decimal     `json:"monthly_income"`
	Needs          decimal.Decimal     `json:"needs"`
	Wants          decimal.Decimal     `json:"wants"`
	Savings        decimal.Decimal     `json:"savings"`
	NeedsPercent   decimal.Decimal     `json:"needs_percent"`
	WantsPercent   decimal.Decimal     `json:"wants_percent"`
	SavingsPercent decimal.Decimal     `json:"savings_percent"`
	Items          []ClassifiedExpense `json:"items"`
}

// NetWorthParams are the household aggregates for the linear net worth model
type NetWorthParams struct {
	CurrentYear     int             `json:"current_year"`
	Age             int             `json:"age"`
	Lifespan        int             `json:"lifespan"`
	WorkTenureYears int             `json:"work_tenure_years"`
	AnnualIncome    decimal.Decimal `json:"annual_income"`
	InitialAssets   decimal.Decimal `json:"initial_assets"`
	AnnualExpenses  decimal.Decimal `json:"annual_expenses"`
	TotalAnnualEMI  decimal.Decimal `json:"total_annual_emi"`
}

// NetWorthPoint is one year of the net worth series
type NetWorthPoint struct {
	Year           int             `json:"year"`
	Age            int             `json:"age"`
	ProjectedValue decimal.Decimal `json:"projected_value"`
}

// PlanReport is the full derived view of a plan
type PlanReport struct {
	CurrentYear int                  `json:"current_year"`
	Funding     []FundingResult      `json:"funding"`
	FundingNeed FundingNeedSeries    `json:"funding_need"`
	Loans       []LoanReport         `json:"loans"`
	Expenses    ExpenseProjection    `json:"expenses"`
	NWS         NWSBreakdown         `json:"nws"`
	NetWorth    []NetWorthPoint      `json:"net_worth"`
	Warnings    []ConsistencyWarning `json:"warnings,omitempty"`
}
