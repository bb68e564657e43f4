package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/finplan/internal/domain"
)

// LoanScheduleCSV exports every scheduled month of every loan.
type LoanScheduleCSV struct{}

func (c LoanScheduleCSV) Name() string { return "loan-csv" }

func (c LoanScheduleCSV) Format(report *domain.PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"LoanID", "Period", "Payment", "Interest", "Principal", "Balance"}); err != nil {
		return nil, err
	}
	for _, l := range report.Loans {
		for _, e := range l.Schedule.Entries {
			row := []string{
				l.Schedule.LoanID,
				e.Period.String(),
				e.Payment.StringFixed(2),
				e.Interest.StringFixed(2),
				e.Principal.StringFixed(2),
				e.Balance.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExpenseCSV exports the expense outlook with one column per category.
type ExpenseCSV struct{}

func (c ExpenseCSV) Name() string { return "expenses-csv" }

func (c ExpenseCSV) Format(report *domain.PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	cats := report.Expenses.Categories
	header := append(append([]string{"Year"}, cats...), "Total")
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, y := range report.Expenses.Years {
		row := make([]string, 0, len(cats)+2)
		row = append(row, intToString(y.Year))
		for _, cat := range cats {
			row = append(row, y.ByCategory[cat].StringFixed(2))
		}
		row = append(row, y.Total.StringFixed(2))
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// NetWorthCSV exports the net worth series.
type NetWorthCSV struct{}

func (c NetWorthCSV) Name() string { return "networth-csv" }

func (c NetWorthCSV) Format(report *domain.PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Year", "Age", "ProjectedValue"}); err != nil {
		return nil, err
	}
	for _, p := range report.NetWorth {
		if err := w.Write([]string{intToString(p.Year), intToString(p.Age), p.ProjectedValue.StringFixed(2)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
