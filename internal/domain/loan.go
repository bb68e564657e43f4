package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is an installment loan with a fixed periodic payment
type Loan struct {
	ID                string          `yaml:"id" json:"id"`
	Name              string          `yaml:"name" json:"name"`
	Principal         decimal.Decimal `yaml:"principal" json:"principal"`                     // outstanding
	AnnualRatePercent decimal.Decimal `yaml:"annual_rate_percent" json:"annual_rate_percent"` // nominal, 10 = 10%
	Installment       decimal.Decimal `yaml:"installment" json:"installment"`
	Frequency         Frequency       `yaml:"frequency,omitempty" json:"frequency,omitempty"`
	StartDate         time.Time       `yaml:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate           time.Time       `yaml:"end_date,omitempty" json:"end_date,omitempty"`

	// ExtraPayment is an optional monthly prepayment used for what-if comparison.
	ExtraPayment decimal.Decimal `yaml:"extra_payment,omitempty" json:"extra_payment,omitempty"`
}

// MonthlyInstallment converts the installment to its monthly equivalent.
// Loans without a frequency are assumed to pay monthly.
func (l *Loan) MonthlyInstallment() decimal.Decimal {
	freq := l.Frequency
	if freq == "" {
		freq = FrequencyMonthly
	}
	return freq.MonthlyEquivalent(l.Installment)
}

// IsActiveIn reports whether the loan is being repaid at some point in year.
func (l *Loan) IsActiveIn(year int) bool {
	if !l.StartDate.IsZero() && l.StartDate.Year() > year {
		return false
	}
	if !l.EndDate.IsZero() && l.EndDate.Year() < year {
		return false
	}
	return l.Principal.IsPositive()
}
