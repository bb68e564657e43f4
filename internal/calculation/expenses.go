package calculation

import (
	"sort"
	"strings"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/pkg/money"
	"github.com/shopspring/decimal"
)

// UncategorizedLabel groups expenses without a category.
const UncategorizedLabel = "Uncategorized"

var (
	needKeywords = []string{"housing", "rent", "mortgage", "food", "grocer", "transport", "fuel", "utilit", "insurance", "health", "medical", "education"}
	wantKeywords = []string{"entertainment", "dining", "restaurant", "shopping", "hobb", "travel", "vacation", "subscription"}
)

// ProjectExpensesByCategory normalizes expenses to annual amounts, groups them by
// category and inflates each category for horizonYears years starting with
// currentYear. A category inflates at the highest rate declared among its expenses.
func ProjectExpensesByCategory(expenses []domain.Expense, currentYear, horizonYears int) domain.ExpenseProjection {
	base := make(map[string]decimal.Decimal)
	inflation := make(map[string]decimal.Decimal)
	for i := range expenses {
		e := &expenses[i]
		cat := categoryLabel(e.Category)
		base[cat] = base[cat].Add(e.AnnualAmount())
		rate := e.InflationRate()
		if cur, ok := inflation[cat]; !ok || rate.GreaterThan(cur) {
			inflation[cat] = rate
		}
	}

	categories := make([]string, 0, len(base))
	for cat := range base {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	projection := domain.ExpenseProjection{Categories: categories, Years: []domain.ExpenseYear{}}
	for offset := 0; offset < horizonYears; offset++ {
		row := domain.ExpenseYear{
			Year:       currentYear + offset,
			ByCategory: make(map[string]decimal.Decimal, len(categories)),
			Total:      decimal.Zero,
		}
		for _, cat := range categories {
			amount := base[cat].Mul(money.Growth(inflation[cat], offset))
			row.ByCategory[cat] = amount
			row.Total = row.Total.Add(amount)
		}
		projection.Years = append(projection.Years, row)
	}
	return projection
}

func categoryLabel(category string) string {
	c := strings.TrimSpace(category)
	if c == "" {
		return UncategorizedLabel
	}
	return c
}

// ClassifyExpense tags an expense as a need or a want. An explicit Kind wins;
// otherwise the subcategory and then the category are matched against keyword
// lists, and anything unmatched counts as a need.
func ClassifyExpense(e domain.Expense) domain.SpendKind {
	switch e.Kind {
	case domain.SpendNeed, domain.SpendWant:
		return e.Kind
	}
	for _, label := range []string{e.Subcategory, e.Category} {
		l := strings.ToLower(label)
		if l == "" {
			continue
		}
		if containsAny(l, wantKeywords) {
			return domain.SpendWant
		}
		if containsAny(l, needKeywords) {
			return domain.SpendNeed
		}
	}
	return domain.SpendNeed
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// ClassifyNWS splits monthly spending into needs and wants and treats whatever
// income remains as savings. Shares are percentages of monthlyIncome.
func ClassifyNWS(expenses []domain.Expense, monthlyIncome decimal.Decimal) domain.NWSBreakdown {
	out := domain.NWSBreakdown{
		MonthlyIncome: monthlyIncome,
		Needs:         decimal.Zero,
		Wants:         decimal.Zero,
		Items:         make([]domain.ClassifiedExpense, 0, len(expenses)),
	}
	for i := range expenses {
		e := expenses[i]
		kind := ClassifyExpense(e)
		monthly := money.Monthly(e.AnnualAmount())
		if kind == domain.SpendWant {
			out.Wants = out.Wants.Add(monthly)
		} else {
			out.Needs = out.Needs.Add(monthly)
		}
		out.Items = append(out.Items, domain.ClassifiedExpense{
			ExpenseID:   e.ID,
			Category:    e.Category,
			Subcategory: e.Subcategory,
			Kind:        kind,
			Monthly:     monthly,
		})
	}
	out.Savings = money.NonNegative(monthlyIncome.Sub(out.Needs).Sub(out.Wants))
	out.NeedsPercent = money.Ratio(out.Needs, monthlyIncome)
	out.WantsPercent = money.Ratio(out.Wants, monthlyIncome)
	out.SavingsPercent = money.Ratio(out.Savings, monthlyIncome)
	return out
}
