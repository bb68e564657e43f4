package output

import (
	"sort"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Highlights condenses a plan report into the headline numbers.
type Highlights struct {
	GoalsOnTrack      int
	GoalsShort        int
	TotalGap          decimal.Decimal
	LargestGapGoal    string
	LargestGap        decimal.Decimal
	FirstYearNeed     decimal.Decimal
	PeakNeedYear      int
	PeakNeed          decimal.Decimal
	CollisionYears    int
	TotalLoanInterest decimal.Decimal
	LastPayoff        string // latest payoff month over all loans
	FinalNetWorth     decimal.Decimal
	NetWorthLowYear   int
}

// AnalyzeReport computes the headline numbers of a report.
// Extracted from the console formatter for testability.
func AnalyzeReport(report *domain.PlanReport) Highlights {
	h := Highlights{
		TotalGap:          decimal.Zero,
		LargestGap:        decimal.Zero,
		FirstYearNeed:     decimal.Zero,
		PeakNeed:          decimal.Zero,
		TotalLoanInterest: decimal.Zero,
		FinalNetWorth:     decimal.Zero,
	}

	goals := append([]domain.FundingResult(nil), report.Funding...)
	sort.SliceStable(goals, func(i, j int) bool { return goals[i].Gap.GreaterThan(goals[j].Gap) })
	for _, g := range goals {
		if g.IsFullyFunded() {
			h.GoalsOnTrack++
			continue
		}
		h.GoalsShort++
		h.TotalGap = h.TotalGap.Add(g.Gap)
	}
	if len(goals) > 0 && goals[0].Gap.IsPositive() {
		h.LargestGapGoal = goals[0].GoalID
		h.LargestGap = goals[0].Gap
	}

	for i, y := range report.FundingNeed.Years {
		if i == 0 {
			h.FirstYearNeed = y.Total
		}
		if y.Total.GreaterThan(h.PeakNeed) {
			h.PeakNeed = y.Total
			h.PeakNeedYear = y.Year
		}
	}
	h.CollisionYears = len(report.FundingNeed.CollisionYears)

	var last domain.LoanReport
	for i, l := range report.Loans {
		h.TotalLoanInterest = h.TotalLoanInterest.Add(l.Schedule.TotalInterest)
		if i == 0 || l.Schedule.PayoffPeriod.After(last.Schedule.PayoffPeriod) {
			last = l
		}
	}
	if len(report.Loans) > 0 {
		h.LastPayoff = last.Schedule.PayoffPeriod.String()
	}

	if n := len(report.NetWorth); n > 0 {
		h.FinalNetWorth = report.NetWorth[n-1].ProjectedValue
		low := report.NetWorth[0]
		for _, p := range report.NetWorth {
			if p.ProjectedValue.LessThan(low.ProjectedValue) {
				low = p
			}
		}
		h.NetWorthLowYear = low.Year
	}
	return h
}
