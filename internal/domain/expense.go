package domain

import "github.com/shopspring/decimal"

// DefaultInflationRate applies to expenses that do not declare their own.
var DefaultInflationRate = decimal.NewFromFloat(0.06)

// SpendKind classifies an expense in the needs/wants/savings breakdown.
type SpendKind string

const (
	SpendNeed SpendKind = "need"
	SpendWant SpendKind = "want"
)

// Expense is a recurring household spend
type Expense struct {
	ID          string           `yaml:"id" json:"id"`
	Category    string           `yaml:"category" json:"category"`
	Subcategory string           `yaml:"subcategory,omitempty" json:"subcategory,omitempty"`
	Amount      decimal.Decimal  `yaml:"amount" json:"amount"`
	Frequency   Frequency        `yaml:"frequency,omitempty" json:"frequency,omitempty"`
	Inflation   *decimal.Decimal `yaml:"inflation,omitempty" json:"inflation,omitempty"`

	// Kind overrides keyword classification when set.
	Kind SpendKind `yaml:"kind,omitempty" json:"kind,omitempty"`
}

// InflationRate returns the declared personal inflation or DefaultInflationRate.
func (e *Expense) InflationRate() decimal.Decimal {
	if e.Inflation == nil {
		return DefaultInflationRate
	}
	return *e.Inflation
}

// AnnualAmount normalizes the expense to a yearly amount.
func (e *Expense) AnnualAmount() decimal.Decimal {
	return e.Frequency.AnnualEquivalent(e.Amount)
}
