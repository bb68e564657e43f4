package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/finplan/internal/domain"
)

// FundingCSV implements the goal funding CSV output (one row per goal).
type FundingCSV struct{}

func (c FundingCSV) Name() string { return "csv" }

func (c FundingCSV) Format(report *domain.PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"GoalID", "GoalName", "YearsToGoal", "Target", "Funded", "Gap", "PercentFunded", "RequiredAnnualContribution", "LinkedAssets", "FullyFunded"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, g := range report.Funding {
		row := []string{
			g.GoalID,
			g.GoalName,
			intToString(g.YearsToGoal),
			g.Target.StringFixed(2),
			g.Funded.StringFixed(2),
			g.Gap.StringFixed(2),
			g.PercentFunded.StringFixed(2),
			g.RequiredAnnualContribution.StringFixed(2),
			intToString(len(g.Contributions)),
			boolToString(g.IsFullyFunded()),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// FundingNeedCSV exports the required saving per goal and year.
type FundingNeedCSV struct{}

func (c FundingNeedCSV) Name() string { return "need-csv" }

func (c FundingNeedCSV) Format(report *domain.PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Year", "GoalID", "YearsRemaining", "Gap", "RequiredContribution", "YearTotal", "Collision"}); err != nil {
		return nil, err
	}
	collisions := make(map[int]bool, len(report.FundingNeed.CollisionYears))
	for _, y := range report.FundingNeed.CollisionYears {
		collisions[y] = true
	}
	for _, y := range report.FundingNeed.Years {
		for _, g := range y.Goals {
			row := []string{
				intToString(y.Year),
				g.GoalID,
				intToString(g.YearsRemaining),
				g.Gap.StringFixed(2),
				g.RequiredContribution.StringFixed(2),
				y.Total.StringFixed(2),
				boolToString(collisions[y.Year]),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
