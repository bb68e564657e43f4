package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rpgo/finplan/internal/calculation"
	"github.com/rpgo/finplan/internal/config"
	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/internal/output"
	"github.com/rpgo/finplan/pkg/dateutil"
	"github.com/rpgo/finplan/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Run every engine over the plan and print the full report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan()
			if err != nil {
				return err
			}
			report, err := a.engine.RunPlan(plan)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), report)
		},
	}
}

// emit writes the report to w, or to timestamped files when --output-dir is set.
func (a *app) emit(w io.Writer, report *domain.PlanReport) error {
	if a.outputDir == "" {
		return output.Write(w, report, a.format)
	}
	files, err := output.GenerateReport(report, a.format, a.outputDir)
	for _, f := range files {
		fmt.Fprintf(w, "wrote %s\n", f)
	}
	return err
}

func newProjectCmd(a *app) *cobra.Command {
	var (
		initial, contribution, rate string
		frequency, expiry, asOf     string
		years                       int
	)
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the future value of an amount with optional periodic contributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := calculation.GrowthInput{Years: years}
			var err error
			if in.Initial, err = parseDecimal("initial", initial); err != nil {
				return err
			}
			if in.Contribution, err = parseDecimal("contribution", contribution); err != nil {
				return err
			}
			if in.AnnualRate, err = parseDecimal("rate", rate); err != nil {
				return err
			}
			if in.Frequency, err = domain.ParseFrequency(frequency); err != nil {
				return err
			}
			in.AsOf = time.Now().UTC()
			if asOf != "" {
				if in.AsOf, err = dateutil.ParseDate(asOf); err != nil {
					return fmt.Errorf("invalid --as-of: %w", err)
				}
			}
			if expiry != "" {
				t, err := dateutil.ParseDate(expiry)
				if err != nil {
					return fmt.Errorf("invalid --expiry: %w", err)
				}
				in.Expiry = &t
			}

			b := calculation.ProjectGrowthDetailed(in)
			a.log.Debugf("projected %d years at %s: %s", years, rate, b.Total.StringFixed(2))
			if output.NormalizeFormatName(a.format) == "json" {
				return writeJSON(cmd.OutOrStdout(), b)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Lump sum:          %s\n", output.FormatCurrency(b.LumpSum))
			fmt.Fprintf(w, "Contributions:     %s (%d months, %s paid in)\n",
				output.FormatCurrency(b.Contributions), b.ContributionMonths, output.FormatCurrency(b.TotalContributed))
			fmt.Fprintf(w, "Future value:      %s\n", output.FormatCurrency(b.Total))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&initial, "initial", "0", "initial amount")
	f.StringVar(&contribution, "contribution", "0", "contribution per period")
	f.StringVar(&frequency, "frequency", "monthly", "contribution frequency")
	f.StringVar(&rate, "rate", "0", "expected annual return (0.08 = 8%)")
	f.IntVar(&years, "years", 10, "projection horizon in years")
	f.StringVar(&expiry, "expiry", "", "last date contributions are made")
	f.StringVar(&asOf, "as-of", "", "date the projection starts (default today)")
	return cmd
}

func newAmortizeCmd(a *app) *cobra.Command {
	var (
		loanID, principal, rate, installment, extra string
		months, startYear                           int
		monthly                                     bool
	)
	cmd := &cobra.Command{
		Use:   "amortize",
		Short: "Amortize a loan from the plan or given by flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var loan domain.Loan
			if loanID != "" {
				plan, err := a.loadPlan()
				if err != nil {
					return err
				}
				found := false
				for _, l := range plan.Loans {
					if l.ID == loanID {
						loan, found = l, true
						break
					}
				}
				if !found {
					return fmt.Errorf("loan %q not found in %s", loanID, a.configFile)
				}
				if startYear == 0 {
					startYear = a.engine.CurrentYear(plan)
				}
			} else {
				loan = domain.Loan{ID: "loan", Frequency: domain.FrequencyMonthly}
				var err error
				if loan.Principal, err = parseDecimal("principal", principal); err != nil {
					return err
				}
				if loan.AnnualRatePercent, err = parseDecimal("rate", rate); err != nil {
					return err
				}
				if loan.Installment, err = parseDecimal("installment", installment); err != nil {
					return err
				}
				if startYear == 0 {
					startYear = time.Now().Year()
				}
				loan.StartDate = dateutil.BeginningOfYear(startYear)
				if loan.Installment.IsZero() && months > 0 {
					loan.Installment = calculation.StandardInstallment(loan.Principal, loan.AnnualRatePercent, months).Round(2)
				}
				if loan.Installment.IsZero() {
					return fmt.Errorf("either --installment or --months is required")
				}
			}

			extraPayment, err := parseDecimal("extra", extra)
			if err != nil {
				return err
			}
			if !extraPayment.IsPositive() {
				extraPayment = loan.ExtraPayment
			}
			lr := a.engine.AnalyzeLoan(loan, startYear, extraPayment)

			switch output.NormalizeFormatName(a.format) {
			case "json":
				return writeJSON(cmd.OutOrStdout(), lr)
			case "loan-csv":
				return output.Write(cmd.OutOrStdout(), &domain.PlanReport{CurrentYear: startYear, Loans: []domain.LoanReport{lr}}, "loan-csv")
			}
			writeLoanTable(cmd.OutOrStdout(), lr, monthly)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&loanID, "loan", "", "id of a loan in the plan file")
	f.StringVar(&principal, "principal", "0", "outstanding principal")
	f.StringVar(&rate, "rate", "0", "annual interest rate in percent (10 = 10%)")
	f.StringVar(&installment, "installment", "0", "monthly installment")
	f.IntVar(&months, "months", 0, "term in months, used to derive the installment")
	f.StringVar(&extra, "extra", "0", "extra monthly prepayment to compare against")
	f.IntVar(&startYear, "start-year", 0, "first year to schedule (default: plan or current year)")
	f.BoolVar(&monthly, "monthly", false, "print every month instead of yearly totals")
	return cmd
}

func writeLoanTable(w io.Writer, lr domain.LoanReport, monthly bool) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	if monthly {
		fmt.Fprintln(tw, "Month\tPayment\tInterest\tPrincipal\tBalance")
		for _, e := range lr.Schedule.Entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Period, money.Format(e.Payment), money.Format(e.Interest),
				money.Format(e.Principal), money.Format(e.Balance))
		}
	} else {
		fmt.Fprintln(tw, "Year\tInterest\tPrincipal\tBalance")
		for _, y := range lr.Annual {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", y.Year, money.Format(y.Interest), money.Format(y.Principal), money.Format(y.EndBalance))
		}
	}
	tw.Flush()

	s := lr.Schedule
	fmt.Fprintf(w, "\n%d months, total interest %s, last payment %s\n", s.Months(), money.Format(s.TotalInterest), s.PayoffPeriod)
	if s.NonAmortizing {
		fmt.Fprintln(w, "warning: installment does not cover the monthly interest")
	} else if !s.PaidOff {
		fmt.Fprintf(w, "balance %s remains at the end of the term\n", money.Format(s.RemainingBalance))
	}
	if c := lr.Comparison; c != nil {
		fmt.Fprintf(w, "with %s extra per month: %d months, saves %s interest and %d months\n",
			money.Format(c.ExtraPayment), c.Accelerated.Months, money.Format(c.InterestSaved), c.MonthsSaved)
	}
}

func newGoalsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "Evaluate goal funding and the required saving per year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan()
			if err != nil {
				return err
			}
			year := a.engine.CurrentYear(plan)
			need := calculation.FundingNeedSeries(plan.Goals, plan.Assets, year)
			for _, w := range need.Warnings {
				a.log.Warnf("%s", w.String())
			}
			report := &domain.PlanReport{
				CurrentYear: year,
				Funding:     a.engine.EvaluateGoals(plan, year),
				FundingNeed: need,
			}
			return a.emit(cmd.OutOrStdout(), report)
		},
	}
}

func newReconcileCmd(a *app) *cobra.Command {
	var (
		assetID, goalID string
		sets            []string
		out             string
		dryRun          bool
	)
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Replace an asset's earmarks or a goal's linked assets and mirror the change",
		Example: `  finplan reconcile -c plan.yaml --asset equity-fund --set retirement=70 --set education=30
  finplan reconcile -c plan.yaml --goal education --set fixed-deposit=100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			change, err := buildChange(assetID, goalID, sets)
			if err != nil {
				return err
			}
			plan, err := a.loadPlan()
			if err != nil {
				return err
			}
			next, diff, err := a.engine.Reconcile(plan, change)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if diff.IsEmpty() {
				fmt.Fprintln(w, "no changes")
			} else {
				fmt.Fprintf(w, "added:   %s\nupdated: %s\nremoved: %s\n",
					strings.Join(diff.Added, ", "), strings.Join(diff.Updated, ", "), strings.Join(diff.Removed, ", "))
			}
			if dryRun {
				return nil
			}
			target := out
			if target == "" {
				target = a.configFile
			}
			if err := config.SavePlan(next, target); err != nil {
				return err
			}
			fmt.Fprintf(w, "wrote %s\n", target)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&assetID, "asset", "", "asset whose earmarks are replaced")
	f.StringVar(&goalID, "goal", "", "goal whose linked assets are replaced")
	f.StringArrayVar(&sets, "set", nil, "counterpart=percent, repeatable; omit to clear all relations")
	f.StringVarP(&out, "out", "o", "", "file to write the reconciled plan to (default: overwrite --config)")
	f.BoolVar(&dryRun, "dry-run", false, "print the diff without writing")
	cmd.MarkFlagsMutuallyExclusive("asset", "goal")
	cmd.MarkFlagsOneRequired("asset", "goal")
	return cmd
}

// buildChange turns the reconcile flags into an AllocationChange.
func buildChange(assetID, goalID string, sets []string) (domain.AllocationChange, error) {
	change := domain.AllocationChange{Side: domain.SideAsset, EntityID: assetID, Allocations: []domain.Allocation{}}
	if goalID != "" {
		change.Side, change.EntityID = domain.SideGoal, goalID
	}
	for _, s := range sets {
		id, pct, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return change, fmt.Errorf("invalid --set %q, expected id=percent", s)
		}
		p, err := parseDecimal("set "+id, pct)
		if err != nil {
			return change, err
		}
		change.Allocations = append(change.Allocations, domain.Allocation{CounterpartID: strings.TrimSpace(id), Percent: p})
	}
	return change, nil
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the plan file and audit asset/goal references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			warnings := calculation.CheckConsistency(plan.Assets, plan.Goals)
			for _, warn := range warnings {
				fmt.Fprintf(w, "%s\n", warn)
			}
			fmt.Fprintf(w, "%s is valid (%d warnings)\n", a.configFile, len(warnings))
			return nil
		},
	}
}

func newExampleCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example plan file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SavePlan(a.parser.CreateExamplePlan(), out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "example plan written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "example_plan.yaml", "destination file")
	return cmd
}

func parseDecimal(name, s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return d, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
