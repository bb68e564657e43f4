package output

import (
	"testing"
	"time"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeReport(t *testing.T) {
	n := decimal.NewFromInt
	report := &domain.PlanReport{
		Funding: []domain.FundingResult{
			{GoalID: "car", Gap: n(100)},
			{GoalID: "house", Gap: n(900)},
			{GoalID: "trip", Gap: decimal.Zero},
		},
		FundingNeed: domain.FundingNeedSeries{
			Years: []domain.FundingNeedYear{
				{Year: 2025, Total: n(50)},
				{Year: 2026, Total: n(80)},
				{Year: 2027, Total: n(70)},
			},
			CollisionYears: []int{2025, 2026},
		},
		Loans: []domain.LoanReport{
			{Schedule: domain.AmortizationSchedule{TotalInterest: n(10), PayoffPeriod: dateutil.YearMonth{Year: 2030, Month: time.May}}},
			{Schedule: domain.AmortizationSchedule{TotalInterest: n(5), PayoffPeriod: dateutil.YearMonth{Year: 2028, Month: time.January}}},
		},
		NetWorth: []domain.NetWorthPoint{
			{Year: 2025, ProjectedValue: n(100)},
			{Year: 2026, ProjectedValue: n(40)},
			{Year: 2027, ProjectedValue: n(60)},
		},
	}

	h := AnalyzeReport(report)

	assert.Equal(t, 1, h.GoalsOnTrack)
	assert.Equal(t, 2, h.GoalsShort)
	assert.True(t, h.TotalGap.Equal(n(1000)))
	assert.Equal(t, "house", h.LargestGapGoal)
	assert.True(t, h.FirstYearNeed.Equal(n(50)))
	assert.Equal(t, 2026, h.PeakNeedYear)
	assert.Equal(t, 2, h.CollisionYears)
	assert.True(t, h.TotalLoanInterest.Equal(n(15)))
	assert.Equal(t, "2030-05", h.LastPayoff)
	assert.True(t, h.FinalNetWorth.Equal(n(60)))
	assert.Equal(t, 2026, h.NetWorthLowYear)

	// Input order is preserved.
	assert.Equal(t, "car", report.Funding[0].GoalID)
}

func TestAnalyzeReport_Empty(t *testing.T) {
	h := AnalyzeReport(&domain.PlanReport{})
	assert.Empty(t, h.LargestGapGoal)
	assert.Empty(t, h.LastPayoff)
	assert.True(t, h.TotalGap.IsZero())
}
