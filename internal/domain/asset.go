package domain

import (
	"time"

	"github.com/rpgo/finplan/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Asset is a monetary instrument whose value may be partially earmarked to goals
type Asset struct {
	ID             string            `yaml:"id" json:"id"`
	Name           string            `yaml:"name" json:"name"`
	Category       string            `yaml:"category,omitempty" json:"category,omitempty"`
	CurrentValue   decimal.Decimal   `yaml:"current_value" json:"current_value"`
	ExpectedReturn decimal.Decimal   `yaml:"expected_return" json:"expected_return"` // annual, 0.08 = 8%
	Contribution   *ContributionPlan `yaml:"contribution,omitempty" json:"contribution,omitempty"`
	Earmarks       []Earmark         `yaml:"earmarks,omitempty" json:"earmarks,omitempty"`
}

// ContributionPlan is a recurring (SIP-style) contribution into an asset
type ContributionPlan struct {
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency  Frequency       `yaml:"frequency" json:"frequency"`
	ExpiryDate string          `yaml:"expiry_date,omitempty" json:"expiry_date,omitempty"`
}

// Expiry parses ExpiryDate. A blank date yields (nil, nil).
func (cp *ContributionPlan) Expiry() (*time.Time, error) {
	if cp == nil || cp.ExpiryDate == "" {
		return nil, nil
	}
	t, err := dateutil.ParseDate(cp.ExpiryDate)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Earmark pledges a percentage of an asset's value to one goal
type Earmark struct {
	GoalID  string          `yaml:"goal_id" json:"goal_id"`
	Percent decimal.Decimal `yaml:"percent" json:"percent"`
}

// ContributionAmount returns the recurring contribution amount, or zero without a plan.
func (a *Asset) ContributionAmount() decimal.Decimal {
	if a.Contribution == nil {
		return decimal.Zero
	}
	return a.Contribution.Amount
}

// ContributionFrequency returns the plan frequency, or "" without a plan.
func (a *Asset) ContributionFrequency() Frequency {
	if a.Contribution == nil {
		return ""
	}
	return a.Contribution.Frequency
}

// TotalEarmarked sums the percent over all earmarks.
func (a *Asset) TotalEarmarked() decimal.Decimal {
	total := decimal.Zero
	for _, e := range a.Earmarks {
		total = total.Add(e.Percent)
	}
	return total
}

// EarmarkFor returns the earmark toward goalID, if any.
func (a *Asset) EarmarkFor(goalID string) (Earmark, bool) {
	for _, e := range a.Earmarks {
		if e.GoalID == goalID {
			return e, true
		}
	}
	return Earmark{}, false
}

// Clone returns a deep copy so callers can edit the result without touching a.
func (a Asset) Clone() Asset {
	out := a
	if a.Contribution != nil {
		plan := *a.Contribution
		out.Contribution = &plan
	}
	if a.Earmarks != nil {
		out.Earmarks = make([]Earmark, len(a.Earmarks))
		copy(out.Earmarks, a.Earmarks)
	}
	return out
}
