package calculation

import (
	"fmt"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/pkg/dateutil"
	"github.com/rpgo/finplan/pkg/money"
	"github.com/shopspring/decimal"
)

// assetIndex resolves asset ids to records; the first occurrence of an id wins.
type assetIndex struct {
	byID     map[string]*domain.Asset
	warnings []domain.ConsistencyWarning
}

func newAssetIndex(assets []domain.Asset) *assetIndex {
	idx := &assetIndex{byID: make(map[string]*domain.Asset, len(assets))}
	for i := range assets {
		a := &assets[i]
		if _, dup := idx.byID[a.ID]; dup {
			idx.warnings = append(idx.warnings, domain.ConsistencyWarning{
				Kind:     domain.WarningDuplicateID,
				EntityID: a.ID,
				Message:  fmt.Sprintf("asset id %q appears more than once; later entries ignored", a.ID),
			})
			continue
		}
		idx.byID[a.ID] = a
	}
	return idx
}

// linkedProjection is the projected funding of one goal over a horizon
type linkedProjection struct {
	funded        decimal.Decimal
	contributions []domain.AssetContribution
	warnings      []domain.ConsistencyWarning
	rate          decimal.Decimal // value-weighted expected return of linked assets
}

// projectLinkedAssets projects each linked asset's earmarked share `years` ahead
// from January 1 of asOfYear. Unresolvable references are skipped with a warning.
func projectLinkedAssets(goal *domain.Goal, idx *assetIndex, years, asOfYear int) linkedProjection {
	out := linkedProjection{funded: decimal.Zero, rate: decimal.Zero}
	asOf := dateutil.BeginningOfYear(asOfYear)
	weightedRate := decimal.Zero
	weight := decimal.Zero

	for _, link := range goal.LinkedAssets {
		asset, ok := idx.byID[link.AssetID]
		if !ok {
			out.warnings = append(out.warnings, domain.ConsistencyWarning{
				Kind:          domain.WarningDanglingReference,
				EntityID:      goal.ID,
				CounterpartID: link.AssetID,
				Message:       fmt.Sprintf("goal %q links unknown asset %q", goal.ID, link.AssetID),
			})
			continue
		}

		expiry, err := asset.Contribution.Expiry()
		if err != nil {
			out.warnings = append(out.warnings, domain.ConsistencyWarning{
				Kind:     domain.WarningInvalidDate,
				EntityID: asset.ID,
				Message:  fmt.Sprintf("asset %q contribution expiry ignored: %v", asset.ID, err),
			})
			expiry = nil
		}

		earmarkedValue := money.PercentOf(asset.CurrentValue, link.Percent)
		earmarkedContribution := money.PercentOf(asset.ContributionAmount(), link.Percent)
		projected := ProjectGrowth(GrowthInput{
			Initial:      earmarkedValue,
			Contribution: earmarkedContribution,
			Frequency:    asset.ContributionFrequency(),
			AnnualRate:   asset.ExpectedReturn,
			Years:        years,
			Expiry:       expiry,
			AsOf:         asOf,
		})

		out.funded = out.funded.Add(projected)
		out.contributions = append(out.contributions, domain.AssetContribution{
			AssetID:               asset.ID,
			AssetName:             asset.Name,
			Percent:               link.Percent,
			EarmarkedValue:        earmarkedValue,
			EarmarkedContribution: earmarkedContribution,
			ProjectedValue:        projected,
		})
		weightedRate = weightedRate.Add(asset.ExpectedReturn.Mul(earmarkedValue))
		weight = weight.Add(earmarkedValue)
	}

	if weight.IsPositive() {
		out.rate = weightedRate.Div(weight)
	}
	return out
}

// EvaluateGoalFunding projects a goal's linked assets to its target year and
// reports the funded amount, remaining gap and the annual contribution that
// would close the gap at the linked assets' blended return.
func EvaluateGoalFunding(goal domain.Goal, assets []domain.Asset, currentYear int) domain.FundingResult {
	idx := newAssetIndex(assets)
	return evaluateGoal(&goal, idx, currentYear)
}

func evaluateGoal(goal *domain.Goal, idx *assetIndex, currentYear int) domain.FundingResult {
	yearsToGoal := goal.TargetYear - currentYear
	if yearsToGoal < 1 {
		yearsToGoal = 1
	}

	proj := projectLinkedAssets(goal, idx, yearsToGoal, currentYear)
	target := money.NonNegative(goal.TargetAmount)
	gap := money.NonNegative(target.Sub(proj.funded))

	percentFunded := decimal.Zero
	if target.IsPositive() {
		percentFunded = money.Min(money.Hundred(), money.Ratio(proj.funded, target))
	}

	contributions := proj.contributions
	if contributions == nil {
		contributions = []domain.AssetContribution{}
	}

	return domain.FundingResult{
		GoalID:                     goal.ID,
		GoalName:                   goal.Name,
		Target:                     target,
		Funded:                     proj.funded,
		Gap:                        gap,
		PercentFunded:              percentFunded,
		YearsToGoal:                yearsToGoal,
		RequiredAnnualContribution: RequiredAnnualContribution(gap, proj.rate, yearsToGoal),
		Contributions:              contributions,
		Warnings:                   proj.warnings,
	}
}

// FundingNeedSeries computes, for each year from currentYear up to the latest
// goal target year, the annual contribution every still-open goal requires.
// Each year re-projects the linked assets for the years that remain from that
// year, so gaps widen as the horizon shortens. Years in which two or more goals
// need a positive contribution are reported as collision years.
func FundingNeedSeries(goals []domain.Goal, assets []domain.Asset, currentYear int) domain.FundingNeedSeries {
	idx := newAssetIndex(assets)
	series := domain.FundingNeedSeries{
		Years:          []domain.FundingNeedYear{},
		CollisionYears: []int{},
	}

	latest := currentYear
	for _, g := range goals {
		if g.TargetYear > latest {
			latest = g.TargetYear
		}
	}

	seen := make(map[domain.ConsistencyWarning]bool)
	addWarnings := func(ws []domain.ConsistencyWarning) {
		for _, w := range ws {
			if !seen[w] {
				seen[w] = true
				series.Warnings = append(series.Warnings, w)
			}
		}
	}
	addWarnings(idx.warnings)

	for year := currentYear; year < latest; year++ {
		row := domain.FundingNeedYear{Year: year, Total: decimal.Zero, Goals: []domain.GoalNeed{}}
		for i := range goals {
			g := &goals[i]
			if year >= g.TargetYear {
				continue
			}
			n := g.TargetYear - year
			proj := projectLinkedAssets(g, idx, n, year)
			addWarnings(proj.warnings)

			gap := money.NonNegative(money.NonNegative(g.TargetAmount).Sub(proj.funded))
			required := RequiredAnnualContribution(gap, proj.rate, n)
			row.Goals = append(row.Goals, domain.GoalNeed{
				GoalID:               g.ID,
				YearsRemaining:       n,
				Gap:                  gap,
				RequiredContribution: required,
			})
			row.Total = row.Total.Add(required)
		}
		if row.ActiveGoals() >= 2 {
			series.CollisionYears = append(series.CollisionYears, year)
		}
		series.Years = append(series.Years, row)
	}
	return series
}
