package calculation

import (
	"testing"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateGoalFunding_FullyFunded(t *testing.T) {
	assets := []domain.Asset{{
		ID:             "fd",
		Name:           "Fixed deposit",
		CurrentValue:   d("500000"),
		ExpectedReturn: d("0.08"),
		Earmarks:       []domain.Earmark{{GoalID: "car", Percent: d("50")}},
	}}
	goal := domain.Goal{
		ID:           "car",
		TargetAmount: d("300000"),
		TargetYear:   2030,
		LinkedAssets: []domain.LinkedAsset{{AssetID: "fd", Percent: d("50")}},
	}

	res := EvaluateGoalFunding(goal, assets, 2025)

	assert.Equal(t, 5, res.YearsToGoal)
	assertDecimal(t, "367332.02", res.Funded)
	assert.True(t, res.Gap.IsZero())
	assert.True(t, res.IsFullyFunded())
	assertDecimal(t, "100.00", res.PercentFunded)
	assert.True(t, res.RequiredAnnualContribution.IsZero())
	require.Len(t, res.Contributions, 1)
	assertDecimal(t, "250000.00", res.Contributions[0].EarmarkedValue)
	assert.Empty(t, res.Warnings)
}

func TestEvaluateGoalFunding_Shortfall(t *testing.T) {
	assets := []domain.Asset{{ID: "fd", CurrentValue: d("250000"), ExpectedReturn: d("0.08")}}
	goal := domain.Goal{
		ID:           "house",
		TargetAmount: d("1000000"),
		TargetYear:   2029,
		LinkedAssets: []domain.LinkedAsset{{AssetID: "fd", Percent: d("100")}},
	}

	res := EvaluateGoalFunding(goal, assets, 2025)

	// 250000 * 1.08^4
	assertDecimal(t, "340122.24", res.Funded)
	assertDecimal(t, "659877.76", res.Gap)
	assertDecimal(t, "34.01", res.PercentFunded)
	want := RequiredAnnualContribution(res.Gap, d("0.08"), 4)
	assert.True(t, want.Equal(res.RequiredAnnualContribution))
	assert.False(t, res.IsFullyFunded())
}

func TestEvaluateGoalFunding_NoLinks(t *testing.T) {
	goal := domain.Goal{ID: "trip", TargetAmount: d("100000"), TargetYear: 2030}

	res := EvaluateGoalFunding(goal, nil, 2025)

	assert.True(t, res.Funded.IsZero())
	assertDecimal(t, "100000.00", res.Gap)
	assert.True(t, res.PercentFunded.IsZero())
	assertDecimal(t, "20000.00", res.RequiredAnnualContribution)
	assert.NotNil(t, res.Contributions)
}

func TestEvaluateGoalFunding_PastTargetYearUsesOneYear(t *testing.T) {
	goal := domain.Goal{ID: "late", TargetAmount: d("5000"), TargetYear: 2020}
	res := EvaluateGoalFunding(goal, nil, 2025)
	assert.Equal(t, 1, res.YearsToGoal)
	assertDecimal(t, "5000.00", res.RequiredAnnualContribution)
}

func TestEvaluateGoalFunding_ZeroTarget(t *testing.T) {
	goal := domain.Goal{ID: "none", TargetYear: 2030}
	res := EvaluateGoalFunding(goal, nil, 2025)
	assert.True(t, res.PercentFunded.IsZero())
	assert.True(t, res.IsFullyFunded())
}

func TestEvaluateGoalFunding_Warnings(t *testing.T) {
	assets := []domain.Asset{{
		ID:             "sip",
		CurrentValue:   d("1000"),
		ExpectedReturn: decimal.Zero,
		Contribution:   &domain.ContributionPlan{Amount: d("100"), Frequency: domain.FrequencyMonthly, ExpiryDate: "whenever"},
	}}
	goal := domain.Goal{
		ID:           "g",
		TargetAmount: d("100000"),
		TargetYear:   2027,
		LinkedAssets: []domain.LinkedAsset{
			{AssetID: "ghost", Percent: d("50")},
			{AssetID: "sip", Percent: d("100")},
		},
	}

	res := EvaluateGoalFunding(goal, assets, 2025)

	require.Len(t, res.Warnings, 2)
	assert.Equal(t, domain.WarningDanglingReference, res.Warnings[0].Kind)
	assert.Equal(t, "ghost", res.Warnings[0].CounterpartID)
	assert.Equal(t, domain.WarningInvalidDate, res.Warnings[1].Kind)
	// Contributions run the full two years when the expiry cannot be read.
	assertDecimal(t, "3400.00", res.Funded)
	require.Len(t, res.Contributions, 1)
}

func TestEvaluateGoalFunding_DuplicateAssetFirstWins(t *testing.T) {
	assets := []domain.Asset{
		{ID: "a", CurrentValue: d("100")},
		{ID: "a", CurrentValue: d("999")},
	}
	goal := domain.Goal{ID: "g", TargetAmount: d("100"), TargetYear: 2026,
		LinkedAssets: []domain.LinkedAsset{{AssetID: "a", Percent: d("100")}}}

	res := EvaluateGoalFunding(goal, assets, 2025)
	assertDecimal(t, "100.00", res.Funded)
}

func TestEvaluateGoalFunding_BlendedRate(t *testing.T) {
	assets := []domain.Asset{
		{ID: "eq", CurrentValue: d("300"), ExpectedReturn: d("0.12")},
		{ID: "fd", CurrentValue: d("100"), ExpectedReturn: d("0.04")},
	}
	goal := domain.Goal{ID: "g", TargetAmount: d("1000000"), TargetYear: 2035,
		LinkedAssets: []domain.LinkedAsset{
			{AssetID: "eq", Percent: d("100")},
			{AssetID: "fd", Percent: d("100")},
		}}

	res := EvaluateGoalFunding(goal, assets, 2025)
	// (0.12*300 + 0.04*100) / 400 = 0.10
	want := RequiredAnnualContribution(res.Gap, d("0.1"), 10)
	assert.True(t, want.Equal(res.RequiredAnnualContribution))
}

func TestFundingNeedSeries(t *testing.T) {
	goals := []domain.Goal{
		{ID: "car", TargetAmount: d("300000"), TargetYear: 2028},
		{ID: "house", TargetAmount: d("500000"), TargetYear: 2030},
	}

	series := FundingNeedSeries(goals, nil, 2025)

	require.Len(t, series.Years, 5)
	assert.Equal(t, 2025, series.Years[0].Year)
	assert.Equal(t, 2029, series.Years[4].Year)
	assert.Equal(t, []int{2025, 2026, 2027}, series.CollisionYears)

	first := series.Years[0]
	require.Len(t, first.Goals, 2)
	assertDecimal(t, "100000.00", first.Goals[0].RequiredContribution)
	assertDecimal(t, "100000.00", first.Goals[1].RequiredContribution)
	assertDecimal(t, "200000.00", first.Total)

	// Gaps do not shrink, so the need per year grows as the horizon shortens.
	assert.Len(t, series.Years[3].Goals, 1)
	assertDecimal(t, "250000.00", series.Years[3].Total)
	assertDecimal(t, "500000.00", series.Years[4].Total)
}

func TestFundingNeedSeries_FundedGoalsDoNotCollide(t *testing.T) {
	assets := []domain.Asset{{ID: "big", CurrentValue: d("10000000")}}
	goals := []domain.Goal{
		{ID: "a", TargetAmount: d("1000"), TargetYear: 2027, LinkedAssets: []domain.LinkedAsset{{AssetID: "big", Percent: d("10")}}},
		{ID: "b", TargetAmount: d("1000"), TargetYear: 2027, LinkedAssets: []domain.LinkedAsset{{AssetID: "big", Percent: d("10")}}},
	}

	series := FundingNeedSeries(goals, assets, 2025)
	assert.Len(t, series.Years, 2)
	assert.Empty(t, series.CollisionYears)
	for _, y := range series.Years {
		assert.True(t, y.Total.IsZero())
	}
}

func TestFundingNeedSeries_WarningsAreDeduplicated(t *testing.T) {
	goals := []domain.Goal{{ID: "g", TargetAmount: d("100"), TargetYear: 2030,
		LinkedAssets: []domain.LinkedAsset{{AssetID: "ghost", Percent: d("10")}}}}

	series := FundingNeedSeries(goals, nil, 2025)
	assert.Len(t, series.Years, 5)
	require.Len(t, series.Warnings, 1)
	assert.Equal(t, domain.WarningDanglingReference, series.Warnings[0].Kind)
}

func TestFundingNeedSeries_NoGoals(t *testing.T) {
	series := FundingNeedSeries(nil, nil, 2025)
	assert.Empty(t, series.Years)
	assert.Empty(t, series.CollisionYears)
}
