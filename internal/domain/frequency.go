package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Frequency is how often a contribution, installment or expense recurs.
type Frequency string

const (
	FrequencyDaily      Frequency = "Daily"
	FrequencyWeekly     Frequency = "Weekly"
	FrequencyBiWeekly   Frequency = "Bi-weekly"
	FrequencyMonthly    Frequency = "Monthly"
	FrequencyBiMonthly  Frequency = "Bi-monthly" // twice a month
	FrequencyQuarterly  Frequency = "Quarterly"
	FrequencySemiAnnual Frequency = "Semi-annual"
	FrequencyAnnual     Frequency = "Annual"
	FrequencyLumpsum    Frequency = "Lumpsum"
)

var frequencyAliases = map[string]Frequency{
	"daily":       FrequencyDaily,
	"weekly":      FrequencyWeekly,
	"bi-weekly":   FrequencyBiWeekly,
	"biweekly":    FrequencyBiWeekly,
	"fortnightly": FrequencyBiWeekly,
	"monthly":     FrequencyMonthly,
	"bi-monthly":  FrequencyBiMonthly,
	"bimonthly":   FrequencyBiMonthly,
	"quarterly":   FrequencyQuarterly,
	"semi-annual": FrequencySemiAnnual,
	"semiannual":  FrequencySemiAnnual,
	"half-yearly": FrequencySemiAnnual,
	"annual":      FrequencyAnnual,
	"annually":    FrequencyAnnual,
	"yearly":      FrequencyAnnual,
	"lumpsum":     FrequencyLumpsum,
	"lump sum":    FrequencyLumpsum,
	"lump-sum":    FrequencyLumpsum,
	"one-time":    FrequencyLumpsum,
}

// ParseFrequency resolves case and spelling variants to a canonical Frequency.
// An empty string yields the empty (absent) Frequency.
func ParseFrequency(s string) (Frequency, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	if n == "" {
		return "", nil
	}
	if f, ok := frequencyAliases[n]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown frequency %q", s)
}

// UnmarshalYAML accepts any spelling understood by ParseFrequency.
func (f *Frequency) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseFrequency(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// IsValid reports whether f is a known frequency.
func (f Frequency) IsValid() bool {
	_, err := ParseFrequency(string(f))
	return err == nil && f != ""
}

// MonthlyEquivalent converts an amount paid at this frequency to a monthly amount.
// Weekly and bi-weekly use the 4.33 and 2.17 periods-per-month approximations.
// Lumpsum and absent frequencies have no recurring component.
func (f Frequency) MonthlyEquivalent(amount decimal.Decimal) decimal.Decimal {
	switch f {
	case FrequencyDaily:
		return amount.Mul(decimal.RequireFromString("30.42"))
	case FrequencyWeekly:
		return amount.Mul(decimal.RequireFromString("4.33"))
	case FrequencyBiWeekly:
		return amount.Mul(decimal.RequireFromString("2.17"))
	case FrequencyMonthly:
		return amount
	case FrequencyBiMonthly:
		return amount.Mul(decimal.NewFromInt(2))
	case FrequencyQuarterly:
		return amount.Div(decimal.NewFromInt(3))
	case FrequencySemiAnnual:
		return amount.Div(decimal.NewFromInt(6))
	case FrequencyAnnual:
		return amount.Div(decimal.NewFromInt(12))
	default:
		return decimal.Zero
	}
}

// AnnualEquivalent converts an amount spent at this frequency to a yearly amount.
// Unknown or absent frequencies are treated as monthly.
func (f Frequency) AnnualEquivalent(amount decimal.Decimal) decimal.Decimal {
	var times int64
	switch f {
	case FrequencyDaily:
		times = 365
	case FrequencyWeekly:
		times = 52
	case FrequencyBiWeekly:
		times = 26
	case FrequencyBiMonthly:
		times = 24
	case FrequencyQuarterly:
		times = 4
	case FrequencySemiAnnual:
		times = 2
	case FrequencyAnnual, FrequencyLumpsum:
		times = 1
	default:
		times = 12
	}
	return amount.Mul(decimal.NewFromInt(times))
}
