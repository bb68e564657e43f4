package calculation

import (
	"testing"
	"time"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), "got %s", got.String())
}

func TestProjectGrowth_LumpSumCompoundsAnnually(t *testing.T) {
	got := ProjectGrowth(GrowthInput{
		Initial:    d("100000"),
		AnnualRate: d("0.06"),
		Years:      10,
	})
	assertDecimal(t, "179084.77", got)
}

func TestProjectGrowth_EdgeCases(t *testing.T) {
	asOf := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   GrowthInput
		want string
	}{
		{
			name: "zero years returns the initial amount",
			in:   GrowthInput{Initial: d("5000"), AnnualRate: d("0.1"), Contribution: d("100"), Frequency: domain.FrequencyMonthly},
			want: "5000.00",
		},
		{
			name: "zero rate sums contributions",
			in:   GrowthInput{Initial: d("5000"), Contribution: d("1000"), Frequency: domain.FrequencyMonthly, Years: 2},
			want: "29000.00",
		},
		{
			name: "quarterly contribution is spread monthly",
			in:   GrowthInput{Contribution: d("3000"), Frequency: domain.FrequencyQuarterly, Years: 1},
			want: "12000.00",
		},
		{
			name: "expiry stops contributions",
			in: GrowthInput{Initial: d("1000"), Contribution: d("1000"), Frequency: domain.FrequencyMonthly,
				Years: 2, Expiry: &expiry, AsOf: asOf},
			want: "13000.00",
		},
		{
			name: "expiry in the past means no contributions",
			in: GrowthInput{Initial: d("1000"), Contribution: d("1000"), Frequency: domain.FrequencyMonthly,
				Years: 2, Expiry: &past, AsOf: asOf},
			want: "1000.00",
		},
		{
			name: "contribution without frequency is ignored",
			in:   GrowthInput{Initial: d("1000"), Contribution: d("1000"), Years: 3},
			want: "1000.00",
		},
		{
			name: "lumpsum frequency has no recurring part",
			in:   GrowthInput{Initial: d("1000"), Contribution: d("500"), Frequency: domain.FrequencyLumpsum, Years: 3},
			want: "1000.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, ProjectGrowth(tt.in))
		})
	}
}

func TestProjectGrowthDetailed_Breakdown(t *testing.T) {
	asOf := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC)

	b := ProjectGrowthDetailed(GrowthInput{
		Initial:      d("100000"),
		Contribution: d("5000"),
		Frequency:    domain.FrequencyMonthly,
		AnnualRate:   d("0.12"),
		Years:        5,
		Expiry:       &expiry,
		AsOf:         asOf,
	})

	assert.Equal(t, 36, b.ContributionMonths)
	assertDecimal(t, "180000.00", b.TotalContributed)
	assert.True(t, b.Total.Equal(b.LumpSum.Add(b.Contributions)))
	// 100000 * 1.01^60
	assertDecimal(t, "181669.67", b.LumpSum)
	assert.True(t, b.Contributions.GreaterThan(b.TotalContributed))
}

func TestProjectGrowth_ContributionsOnlyIncreaseValue(t *testing.T) {
	base := GrowthInput{Initial: d("250000"), Frequency: domain.FrequencyMonthly, AnnualRate: d("0.08"), Years: 7}
	prev := ProjectGrowth(base)
	for _, amount := range []string{"100", "1000", "10000"} {
		in := base
		in.Contribution = d(amount)
		got := ProjectGrowth(in)
		assert.True(t, got.GreaterThan(prev), "contribution %s: %s <= %s", amount, got, prev)
		prev = got
	}
}

func TestFutureValueOfAnnuity(t *testing.T) {
	assertDecimal(t, "1268.25", FutureValueOfAnnuity(d("100"), d("0.01"), 12))
	assertDecimal(t, "1200.00", FutureValueOfAnnuity(d("100"), decimal.Zero, 12))
	assert.True(t, FutureValueOfAnnuity(d("100"), d("0.01"), 0).IsZero())
}
