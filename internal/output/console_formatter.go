package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/rpgo/finplan/internal/domain"
)

// ConsoleFormatter provides a concise console summary of a plan report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "FINANCIAL PLAN SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "As of: %d\n", report.CurrentYear)
	fmt.Fprintln(&buf)

	writeGoals(&buf, report.Funding)
	writeNeedSummary(&buf, report)
	writeLoanSummary(&buf, report.Loans)
	writeNWS(&buf, report.NWS)

	h := AnalyzeReport(report)
	if len(report.NetWorth) > 0 {
		fmt.Fprintln(&buf, "NET WORTH")
		first := report.NetWorth[0]
		fmt.Fprintf(&buf, "  %d (age %d): %s\n", first.Year, first.Age, FormatCurrency(first.ProjectedValue))
		last := report.NetWorth[len(report.NetWorth)-1]
		fmt.Fprintf(&buf, "  %d (age %d): %s\n", last.Year, last.Age, FormatCurrency(h.FinalNetWorth))
		fmt.Fprintf(&buf, "  Lowest in %d\n", h.NetWorthLowYear)
		fmt.Fprintln(&buf)
	}

	if h.LargestGapGoal != "" {
		fmt.Fprintf(&buf, "Largest gap: %s (%s); %d of %d goals on track\n",
			h.LargestGapGoal, FormatCurrency(h.LargestGap), h.GoalsOnTrack, h.GoalsOnTrack+h.GoalsShort)
	} else if len(report.Funding) > 0 {
		fmt.Fprintln(&buf, "All goals on track")
	}

	writeWarnings(&buf, report.Warnings)
	return buf.Bytes(), nil
}

func writeGoals(buf *bytes.Buffer, funding []domain.FundingResult) {
	if len(funding) == 0 {
		return
	}
	fmt.Fprintln(buf, "GOALS")
	tw := tabwriter.NewWriter(buf, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "  Goal\tYears\tTarget\tFunded\tGap\tFunded %\tRequired/yr")
	for _, g := range funding {
		fmt.Fprintf(tw, "  %s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			goalLabel(g), g.YearsToGoal,
			FormatCurrency(g.Target), FormatCurrency(g.Funded), FormatCurrency(g.Gap),
			FormatPercentage(g.PercentFunded), FormatCurrency(g.RequiredAnnualContribution))
	}
	tw.Flush()
	fmt.Fprintln(buf)
}

func goalLabel(g domain.FundingResult) string {
	if g.GoalName != "" {
		return g.GoalName
	}
	return g.GoalID
}

func writeNeedSummary(buf *bytes.Buffer, report *domain.PlanReport) {
	if len(report.FundingNeed.Years) == 0 {
		return
	}
	h := AnalyzeReport(report)
	fmt.Fprintln(buf, "SAVING NEED")
	fmt.Fprintf(buf, "  This year: %s\n", FormatCurrency(h.FirstYearNeed))
	fmt.Fprintf(buf, "  Peak: %s in %d\n", FormatCurrency(h.PeakNeed), h.PeakNeedYear)
	if h.CollisionYears > 0 {
		fmt.Fprintf(buf, "  Years with competing goals: %v\n", report.FundingNeed.CollisionYears)
	}
	fmt.Fprintln(buf)
}

func writeLoanSummary(buf *bytes.Buffer, loans []domain.LoanReport) {
	if len(loans) == 0 {
		return
	}
	fmt.Fprintln(buf, "LOANS")
	for _, l := range loans {
		s := l.Schedule
		status := "paid off " + s.PayoffPeriod.String()
		switch {
		case s.NonAmortizing:
			status = "installment does not cover interest"
		case !s.PaidOff:
			status = fmt.Sprintf("%s outstanding at %s", FormatCurrency(s.RemainingBalance), s.PayoffPeriod)
		}
		fmt.Fprintf(buf, "  %s: %d months, interest %s, %s\n", s.LoanID, s.Months(), FormatCurrency(s.TotalInterest), status)
		if c := l.Comparison; c != nil {
			fmt.Fprintf(buf, "    +%s/month saves %s interest and %d months\n",
				FormatCurrency(c.ExtraPayment), FormatCurrency(c.InterestSaved), c.MonthsSaved)
		}
	}
	fmt.Fprintln(buf)
}

func writeNWS(buf *bytes.Buffer, nws domain.NWSBreakdown) {
	if !nws.MonthlyIncome.IsPositive() && len(nws.Items) == 0 {
		return
	}
	fmt.Fprintln(buf, "MONTHLY BUDGET (needs / wants / savings)")
	fmt.Fprintf(buf, "  Income:  %s\n", FormatCurrency(nws.MonthlyIncome))
	fmt.Fprintf(buf, "  Needs:   %s (%s)\n", FormatCurrency(nws.Needs), FormatPercentage(nws.NeedsPercent))
	fmt.Fprintf(buf, "  Wants:   %s (%s)\n", FormatCurrency(nws.Wants), FormatPercentage(nws.WantsPercent))
	fmt.Fprintf(buf, "  Savings: %s (%s)\n", FormatCurrency(nws.Savings), FormatPercentage(nws.SavingsPercent))
	fmt.Fprintln(buf)
}

func writeWarnings(buf *bytes.Buffer, warnings []domain.ConsistencyWarning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "WARNINGS")
	for _, w := range warnings {
		fmt.Fprintf(buf, "  %s\n", w)
	}
}
