package calculation

import (
	"fmt"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// PlanningEngine orchestrates the projection engines over a plan snapshot.
// It holds no state between calls besides its logger.
type PlanningEngine struct {
	Debug  bool // log per-goal and per-loan detail
	Logger Logger
}

// NewPlanningEngine creates a planning engine with a no-op logger.
func NewPlanningEngine() *PlanningEngine {
	return &PlanningEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *PlanningEngine) SetLogger(l Logger) {
	pe.Logger = orNop(l)
}

// CurrentYear returns the plan's pinned year, or the calendar year when unset.
func (pe *PlanningEngine) CurrentYear(plan *domain.Plan) int {
	return resolveCurrentYear(plan.CurrentYear)
}

// RunPlan computes the full report for a plan.
func (pe *PlanningEngine) RunPlan(plan *domain.Plan) (*domain.PlanReport, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan is required")
	}
	log := orNop(pe.Logger)
	year := pe.CurrentYear(plan)

	report := &domain.PlanReport{CurrentYear: year}
	report.Warnings = append(report.Warnings, CheckConsistency(plan.Assets, plan.Goals)...)

	report.Funding = pe.EvaluateGoals(plan, year)
	report.FundingNeed = FundingNeedSeries(plan.Goals, plan.Assets, year)
	if len(report.FundingNeed.CollisionYears) > 0 {
		log.Infof("%d collision years where multiple goals need contributions", len(report.FundingNeed.CollisionYears))
	}

	report.Loans = make([]domain.LoanReport, 0, len(plan.Loans))
	for _, loan := range plan.Loans {
		report.Loans = append(report.Loans, pe.AnalyzeLoan(loan, year, loan.ExtraPayment))
	}

	report.Expenses = ProjectExpensesByCategory(plan.Expenses, year, plan.ExpenseHorizon())
	report.NWS = ClassifyNWS(plan.Expenses, plan.Household.TakeHomeMonthly())
	log.Debugf("NWS: needs=%s wants=%s savings=%s", report.NWS.Needs.StringFixed(2), report.NWS.Wants.StringFixed(2), report.NWS.Savings.StringFixed(2))

	if plan.Household.Lifespan > 0 {
		points, err := SimulateNetWorth(NetWorthParamsFromPlan(plan, year))
		if err != nil {
			return nil, fmt.Errorf("net worth simulation failed: %w", err)
		}
		report.NetWorth = points
	}

	for _, w := range report.Warnings {
		log.Warnf("%s", w.String())
	}
	return report, nil
}

// EvaluateGoals evaluates the funding of every goal in the plan.
func (pe *PlanningEngine) EvaluateGoals(plan *domain.Plan, currentYear int) []domain.FundingResult {
	log := orNop(pe.Logger)
	idx := newAssetIndex(plan.Assets)
	results := make([]domain.FundingResult, 0, len(plan.Goals))
	for i := range plan.Goals {
		res := evaluateGoal(&plan.Goals[i], idx, currentYear)
		if pe.Debug {
			log.Debugf("goal %s: target=%s funded=%s gap=%s (%s%%) required/yr=%s",
				res.GoalID, res.Target.StringFixed(2), res.Funded.StringFixed(2), res.Gap.StringFixed(2),
				res.PercentFunded.StringFixed(2), res.RequiredAnnualContribution.StringFixed(2))
		}
		results = append(results, res)
	}
	return results
}

// AnalyzeLoan builds the schedule, its annual aggregation and, for a positive
// extra payment, the what-if comparison.
func (pe *PlanningEngine) AnalyzeLoan(loan domain.Loan, startYear int, extra decimal.Decimal) domain.LoanReport {
	log := orNop(pe.Logger)
	schedule := AmortizeLoan(loan, startYear)
	if schedule.NonAmortizing {
		log.Warnf("loan %s: installment does not cover interest; balance %s remains at %s",
			loan.ID, schedule.RemainingBalance.StringFixed(2), schedule.PayoffPeriod)
	}
	report := domain.LoanReport{Schedule: schedule, Annual: AggregateAnnual(schedule)}
	if extra.IsPositive() {
		cmp := CompareScenarios(loan, extra, startYear)
		report.Comparison = &cmp
		if pe.Debug {
			log.Debugf("loan %s: extra %s saves %s interest and %d months",
				loan.ID, extra.StringFixed(2), cmp.InterestSaved.StringFixed(2), cmp.MonthsSaved)
		}
	}
	return report
}

// Reconcile applies an allocation change to a copy of the plan. On error the
// returned plan is the input plan, unchanged.
func (pe *PlanningEngine) Reconcile(plan *domain.Plan, change domain.AllocationChange) (*domain.Plan, domain.AllocationDiff, error) {
	res, err := ReconcileAllocation(plan.Assets, plan.Goals, change)
	if err != nil {
		return plan, domain.AllocationDiff{}, fmt.Errorf("reconcile %s %s: %w", change.Side, change.EntityID, err)
	}
	next := *plan
	next.Assets = res.Assets
	next.Goals = res.Goals
	orNop(pe.Logger).Infof("reconciled %s %s: added=%v updated=%v removed=%v",
		change.Side, change.EntityID, res.Diff.Added, res.Diff.Updated, res.Diff.Removed)
	return &next, res.Diff, nil
}
