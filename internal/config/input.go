package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan files
type InputParser struct {
	// NewID generates ids for records that omit one.
	NewID func() string
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{NewID: uuid.NewString}
}

// LoadFromFile loads a plan from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, completes and validates a plan document
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.assignIDs(&plan)

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return &plan, nil
}

// assignIDs gives every record without an id a generated one.
func (ip *InputParser) assignIDs(plan *domain.Plan) {
	newID := ip.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	for i := range plan.Assets {
		if plan.Assets[i].ID == "" {
			plan.Assets[i].ID = newID()
		}
	}
	for i := range plan.Goals {
		if plan.Goals[i].ID == "" {
			plan.Goals[i].ID = newID()
		}
	}
	for i := range plan.Loans {
		if plan.Loans[i].ID == "" {
			plan.Loans[i].ID = newID()
		}
	}
	for i := range plan.Expenses {
		if plan.Expenses[i].ID == "" {
			plan.Expenses[i].ID = newID()
		}
	}
}

// ValidatePlan validates the loaded plan
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if plan.CurrentYear < 0 || (plan.CurrentYear > 0 && (plan.CurrentYear < 1900 || plan.CurrentYear > 2200)) {
		return fmt.Errorf("current year %d is out of range", plan.CurrentYear)
	}

	if err := ip.validateHousehold(&plan.Household); err != nil {
		return fmt.Errorf("household validation failed: %w", err)
	}

	assetIDs := make(map[string]bool, len(plan.Assets))
	for i := range plan.Assets {
		a := &plan.Assets[i]
		if assetIDs[a.ID] {
			return fmt.Errorf("duplicate asset id %q", a.ID)
		}
		assetIDs[a.ID] = true
		if err := ip.validateAsset(a); err != nil {
			return fmt.Errorf("asset %s validation failed: %w", a.ID, err)
		}
	}

	goalIDs := make(map[string]bool, len(plan.Goals))
	for i := range plan.Goals {
		g := &plan.Goals[i]
		if goalIDs[g.ID] {
			return fmt.Errorf("duplicate goal id %q", g.ID)
		}
		goalIDs[g.ID] = true
		if err := ip.validateGoal(g); err != nil {
			return fmt.Errorf("goal %s validation failed: %w", g.ID, err)
		}
	}

	for i := range plan.Loans {
		if err := ip.validateLoan(&plan.Loans[i]); err != nil {
			return fmt.Errorf("loan %s validation failed: %w", plan.Loans[i].ID, err)
		}
	}

	for i := range plan.Expenses {
		if err := ip.validateExpense(&plan.Expenses[i]); err != nil {
			return fmt.Errorf("expense %s validation failed: %w", plan.Expenses[i].ID, err)
		}
	}

	if plan.Projection.ExpenseHorizonYears < 0 || plan.Projection.ExpenseHorizonYears > 100 {
		return fmt.Errorf("expense horizon years must be between 0 and 100")
	}

	return nil
}

func (ip *InputParser) validateHousehold(h *domain.Household) error {
	if h.Age < 0 {
		return fmt.Errorf("age cannot be negative")
	}
	if h.Lifespan != 0 && h.Lifespan < h.Age {
		return fmt.Errorf("lifespan (%d) cannot be below age (%d)", h.Lifespan, h.Age)
	}
	if h.WorkTenureYears < 0 {
		return fmt.Errorf("work tenure years cannot be negative")
	}
	if h.AnnualIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("annual income cannot be negative")
	}
	if h.MonthlyIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly income cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateAsset(a *domain.Asset) error {
	if a.CurrentValue.LessThan(decimal.Zero) {
		return fmt.Errorf("current value cannot be negative")
	}
	if a.ExpectedReturn.LessThanOrEqual(decimal.NewFromFloat(-1.0)) {
		return fmt.Errorf("expected return must be above -100%%")
	}
	if a.Contribution != nil {
		if a.Contribution.Amount.LessThan(decimal.Zero) {
			return fmt.Errorf("contribution amount cannot be negative")
		}
		if a.Contribution.Amount.IsPositive() && !a.Contribution.Frequency.IsValid() {
			return fmt.Errorf("contribution frequency is required")
		}
		// A malformed expiry is tolerated here; projection treats it as no expiry.
	}
	total := decimal.Zero
	for _, e := range a.Earmarks {
		if e.GoalID == "" {
			return fmt.Errorf("earmark goal id is required")
		}
		if e.Percent.LessThan(decimal.Zero) || e.Percent.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("earmark percent for goal %s must be between 0 and 100", e.GoalID)
		}
		total = total.Add(e.Percent)
	}
	if total.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("earmarks sum to %s%%, which exceeds 100%%", total.String())
	}
	return nil
}

func (ip *InputParser) validateGoal(g *domain.Goal) error {
	if g.TargetAmount.LessThan(decimal.Zero) {
		return fmt.Errorf("target amount cannot be negative")
	}
	if g.TargetYear <= 0 {
		return fmt.Errorf("target year is required")
	}
	for _, l := range g.LinkedAssets {
		if l.AssetID == "" {
			return fmt.Errorf("linked asset id is required")
		}
		if l.Percent.LessThan(decimal.Zero) || l.Percent.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("linked percent for asset %s must be between 0 and 100", l.AssetID)
		}
	}
	return nil
}

func (ip *InputParser) validateLoan(l *domain.Loan) error {
	if l.Principal.LessThan(decimal.Zero) {
		return fmt.Errorf("principal cannot be negative")
	}
	if l.AnnualRatePercent.LessThan(decimal.Zero) || l.AnnualRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("annual rate percent must be between 0 and 100")
	}
	if l.Installment.LessThan(decimal.Zero) {
		return fmt.Errorf("installment cannot be negative")
	}
	if l.Installment.IsZero() && l.EndDate.IsZero() && l.Principal.IsPositive() {
		return fmt.Errorf("installment or end date is required")
	}
	if !l.StartDate.IsZero() && !l.EndDate.IsZero() && l.EndDate.Before(l.StartDate) {
		return fmt.Errorf("end date cannot be before start date")
	}
	if l.ExtraPayment.LessThan(decimal.Zero) {
		return fmt.Errorf("extra payment cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateExpense(e *domain.Expense) error {
	if e.Amount.LessThan(decimal.Zero) {
		return fmt.Errorf("amount cannot be negative")
	}
	if e.Inflation != nil && e.Inflation.LessThan(decimal.NewFromFloat(-0.10)) {
		return fmt.Errorf("inflation cannot be less than -10%%")
	}
	if e.Kind != "" && e.Kind != domain.SpendNeed && e.Kind != domain.SpendWant {
		return fmt.Errorf("kind must be %q or %q", domain.SpendNeed, domain.SpendWant)
	}
	return nil
}

// SavePlan writes a plan to filename as YAML
func SavePlan(plan *domain.Plan, filename string) error {
	b, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExamplePlan creates an example plan with mirrored allocations
func (ip *InputParser) CreateExamplePlan() *domain.Plan {
	homeLoanStart, _ := time.Parse("2006-01-02", "2022-04-01")
	homeLoanEnd, _ := time.Parse("2006-01-02", "2042-03-01")
	foodInflation := decimal.NewFromFloat(0.07)
	insuranceInflation := decimal.NewFromFloat(0.05)

	return &domain.Plan{
		CurrentYear: 2025,
		Household: domain.Household{
			Age:             35,
			Lifespan:        85,
			WorkTenureYears: 25,
			AnnualIncome:    decimal.NewFromInt(1800000),
			MonthlyIncome:   decimal.NewFromInt(150000),
		},
		Assets: []domain.Asset{
			{
				ID:             "equity-fund",
				Name:           "Equity index fund",
				Category:       "mutual_fund",
				CurrentValue:   decimal.NewFromInt(500000),
				ExpectedReturn: decimal.NewFromFloat(0.12),
				Contribution: &domain.ContributionPlan{
					Amount:     decimal.NewFromInt(15000),
					Frequency:  domain.FrequencyMonthly,
					ExpiryDate: "2035-12-31",
				},
				Earmarks: []domain.Earmark{
					{GoalID: "retirement", Percent: decimal.NewFromInt(60)},
					{GoalID: "education", Percent: decimal.NewFromInt(40)},
				},
			},
			{
				ID:             "fixed-deposit",
				Name:           "Fixed deposit",
				Category:       "deposit",
				CurrentValue:   decimal.NewFromInt(300000),
				ExpectedReturn: decimal.NewFromFloat(0.07),
				Earmarks: []domain.Earmark{
					{GoalID: "education", Percent: decimal.NewFromInt(50)},
				},
			},
		},
		Goals: []domain.Goal{
			{
				ID:           "education",
				Name:         "Child education",
				TargetAmount: decimal.NewFromInt(2500000),
				TargetYear:   2038,
				LinkedAssets: []domain.LinkedAsset{
					{AssetID: "equity-fund", Percent: decimal.NewFromInt(40)},
					{AssetID: "fixed-deposit", Percent: decimal.NewFromInt(50)},
				},
			},
			{
				ID:           "retirement",
				Name:         "Retirement corpus",
				TargetAmount: decimal.NewFromInt(30000000),
				TargetYear:   2050,
				LinkedAssets: []domain.LinkedAsset{
					{AssetID: "equity-fund", Percent: decimal.NewFromInt(60)},
				},
			},
		},
		Loans: []domain.Loan{
			{
				ID:                "home-loan",
				Name:              "Home loan",
				Principal:         decimal.NewFromInt(1000000),
				AnnualRatePercent: decimal.NewFromInt(10),
				Installment:       decimal.NewFromInt(15000),
				Frequency:         domain.FrequencyMonthly,
				StartDate:         homeLoanStart,
				EndDate:           homeLoanEnd,
				ExtraPayment:      decimal.NewFromInt(5000),
			},
		},
		Expenses: []domain.Expense{
			{ID: "rent", Category: "Housing", Subcategory: "Rent", Amount: decimal.NewFromInt(25000), Frequency: domain.FrequencyMonthly},
			{ID: "groceries", Category: "Food", Subcategory: "Groceries", Amount: decimal.NewFromInt(12000), Frequency: domain.FrequencyMonthly, Inflation: &foodInflation},
			{ID: "dining", Category: "Food", Subcategory: "Dining out", Amount: decimal.NewFromInt(6000), Frequency: domain.FrequencyMonthly},
			{ID: "insurance", Category: "Insurance", Amount: decimal.NewFromInt(36000), Frequency: domain.FrequencyAnnual, Inflation: &insuranceInflation},
			{ID: "movies", Category: "Entertainment", Amount: decimal.NewFromInt(2000), Frequency: domain.FrequencyMonthly},
		},
		Projection: domain.ProjectionSettings{ExpenseHorizonYears: 10},
	}
}
