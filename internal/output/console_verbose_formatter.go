package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rpgo/finplan/internal/domain"
)

// ConsoleVerboseFormatter renders the full detail of a plan report: every
// linked asset, every year of the saving need, annual loan summaries, the
// expense outlook per category and the complete net worth series.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer
	sep := strings.Repeat("=", 80)
	fmt.Fprintln(&buf, sep)
	fmt.Fprintln(&buf, "DETAILED FINANCIAL PLAN REPORT")
	fmt.Fprintln(&buf, sep)
	fmt.Fprintf(&buf, "As of: %d\n\n", report.CurrentYear)

	c.writeGoalDetail(&buf, report.Funding)
	c.writeNeedDetail(&buf, report.FundingNeed)
	c.writeLoanDetail(&buf, report.Loans)
	c.writeExpenseDetail(&buf, report.Expenses)
	c.writeNWSDetail(&buf, report.NWS)
	c.writeNetWorthDetail(&buf, report.NetWorth)
	writeWarnings(&buf, report.Warnings)
	return buf.Bytes(), nil
}

func section(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("-", len(title)))
}

func (c ConsoleVerboseFormatter) writeGoalDetail(buf *bytes.Buffer, funding []domain.FundingResult) {
	if len(funding) == 0 {
		return
	}
	section(buf, "GOAL FUNDING")
	for _, g := range funding {
		fmt.Fprintf(buf, "%s (%s): target %s in %d years\n", goalLabel(g), g.GoalID, FormatCurrency(g.Target), g.YearsToGoal)
		tw := tabwriter.NewWriter(buf, 0, 2, 2, ' ', 0)
		fmt.Fprintln(tw, "  Asset\tShare\tEarmarked\tContribution\tProjected")
		for _, a := range g.Contributions {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", a.AssetID, FormatPercentage(a.Percent),
				FormatCurrency(a.EarmarkedValue), FormatCurrency(a.EarmarkedContribution), FormatCurrency(a.ProjectedValue))
		}
		tw.Flush()
		fmt.Fprintf(buf, "  Funded %s (%s), gap %s, required %s per year\n",
			FormatCurrency(g.Funded), FormatPercentage(g.PercentFunded), FormatCurrency(g.Gap), FormatCurrency(g.RequiredAnnualContribution))
		for _, w := range g.Warnings {
			fmt.Fprintf(buf, "  ! %s\n", w)
		}
		fmt.Fprintln(buf)
	}
}

func (c ConsoleVerboseFormatter) writeNeedDetail(buf *bytes.Buffer, need domain.FundingNeedSeries) {
	if len(need.Years) == 0 {
		return
	}
	section(buf, "REQUIRED ANNUAL SAVING")
	collisions := make(map[int]bool, len(need.CollisionYears))
	for _, y := range need.CollisionYears {
		collisions[y] = true
	}
	tw := tabwriter.NewWriter(buf, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "  Year\tTotal\tGoals\t")
	for _, y := range need.Years {
		parts := make([]string, 0, len(y.Goals))
		for _, g := range y.Goals {
			parts = append(parts, fmt.Sprintf("%s=%s", g.GoalID, FormatCurrency(g.RequiredContribution)))
		}
		mark := ""
		if collisions[y.Year] {
			mark = "*"
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", y.Year, FormatCurrency(y.Total), strings.Join(parts, " "), mark)
	}
	tw.Flush()
	if len(need.CollisionYears) > 0 {
		fmt.Fprintln(buf, "  * two or more goals need contributions")
	}
	fmt.Fprintln(buf)
}

func (c ConsoleVerboseFormatter) writeLoanDetail(buf *bytes.Buffer, loans []domain.LoanReport) {
	for _, l := range loans {
		section(buf, "LOAN "+l.Schedule.LoanID)
		tw := tabwriter.NewWriter(buf, 0, 2, 2, ' ', 0)
		fmt.Fprintln(tw, "  Year\tInterest\tPrincipal\tBalance")
		for _, a := range l.Annual {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", a.Year, FormatCurrency(a.Interest), FormatCurrency(a.Principal), FormatCurrency(a.EndBalance))
		}
		tw.Flush()
		fmt.Fprintf(buf, "  Total interest %s over %d months, last payment %s\n",
			FormatCurrency(l.Schedule.TotalInterest), l.Schedule.Months(), l.Schedule.PayoffPeriod)
		if l.Schedule.NonAmortizing {
			fmt.Fprintln(buf, "  ! installment does not cover the monthly interest")
		}
		if cmp := l.Comparison; cmp != nil {
			fmt.Fprintf(buf, "  With %s extra per month: %d months, interest %s (saves %s, %d months sooner)\n",
				FormatCurrency(cmp.ExtraPayment), cmp.Accelerated.Months, FormatCurrency(cmp.Accelerated.TotalInterest),
				FormatCurrency(cmp.InterestSaved), cmp.MonthsSaved)
		}
		fmt.Fprintln(buf)
	}
}

func (c ConsoleVerboseFormatter) writeExpenseDetail(buf *bytes.Buffer, exp domain.ExpenseProjection) {
	if len(exp.Years) == 0 {
		return
	}
	section(buf, "EXPENSE OUTLOOK (annual, inflation adjusted)")
	tw := tabwriter.NewWriter(buf, 0, 2, 2, ' ', 0)
	fmt.Fprintf(tw, "  Year\t%s\tTotal\n", strings.Join(exp.Categories, "\t"))
	for _, y := range exp.Years {
		cells := make([]string, 0, len(exp.Categories))
		for _, cat := range exp.Categories {
			cells = append(cells, FormatCurrency(y.ByCategory[cat]))
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\n", y.Year, strings.Join(cells, "\t"), FormatCurrency(y.Total))
	}
	tw.Flush()
	fmt.Fprintln(buf)
}

func (c ConsoleVerboseFormatter) writeNWSDetail(buf *bytes.Buffer, nws domain.NWSBreakdown) {
	if len(nws.Items) == 0 {
		return
	}
	section(buf, "MONTHLY SPENDING BY KIND")
	tw := tabwriter.NewWriter(buf, 0, 2, 2, ' ', 0)
	for _, it := range nws.Items {
		label := it.Category
		if it.Subcategory != "" {
			label += "/" + it.Subcategory
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", label, it.Kind, FormatCurrency(it.Monthly))
	}
	tw.Flush()
	writeNWS(buf, nws)
}

func (c ConsoleVerboseFormatter) writeNetWorthDetail(buf *bytes.Buffer, points []domain.NetWorthPoint) {
	if len(points) == 0 {
		return
	}
	section(buf, "NET WORTH")
	tw := tabwriter.NewWriter(buf, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "  Year\tAge\tProjected")
	for _, p := range points {
		fmt.Fprintf(tw, "  %d\t%d\t%s\n", p.Year, p.Age, FormatCurrency(p.ProjectedValue))
	}
	tw.Flush()
	fmt.Fprintln(buf)
}
