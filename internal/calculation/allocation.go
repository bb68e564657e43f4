package calculation

import (
	"fmt"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/pkg/money"
	"github.com/shopspring/decimal"
)

// ReconcileAllocation applies a change to one side of the asset/goal relation and
// returns new, mutually consistent snapshots of all assets and goals.
//
// The changed entity's relation list is replaced by the proposal. Every
// counterpart named in the proposal receives a mirror entry with the identical
// percent; every other counterpart loses any entry pointing back at the entity.
// Inputs are never modified. On a validation failure the original collections
// are returned unchanged together with a *domain.ValidationError.
func ReconcileAllocation(assets []domain.Asset, goals []domain.Goal, change domain.AllocationChange) (domain.ReconcileResult, error) {
	original := domain.ReconcileResult{Assets: assets, Goals: goals}

	if err := validateProposal(change); err != nil {
		return original, err
	}

	nextAssets := cloneAssets(assets)
	nextGoals := cloneGoals(goals)
	proposed := make(map[string]decimal.Decimal, len(change.Allocations))
	for _, a := range change.Allocations {
		proposed[a.CounterpartID] = a.Percent
	}

	var (
		diff    domain.AllocationDiff
		touched []string
	)

	switch change.Side {
	case domain.SideAsset:
		ai := findAsset(nextAssets, change.EntityID)
		if ai < 0 {
			return original, domain.NewValidationError("entity_id", change.EntityID, "unknown asset")
		}
		for _, a := range change.Allocations {
			if findGoal(nextGoals, a.CounterpartID) < 0 {
				return original, domain.NewValidationError("allocations", change.EntityID, "unknown goal %q", a.CounterpartID)
			}
		}

		asset := &nextAssets[ai]
		diff = diffRelations(earmarkPairs(asset.Earmarks), change.Allocations)
		asset.Earmarks = make([]domain.Earmark, 0, len(change.Allocations))
		for _, a := range change.Allocations {
			asset.Earmarks = append(asset.Earmarks, domain.Earmark{GoalID: a.CounterpartID, Percent: a.Percent})
		}
		for i := range nextGoals {
			g := &nextGoals[i]
			if pct, ok := proposed[g.ID]; ok {
				upsertLinkedAsset(g, asset.ID, pct)
			} else {
				removeLinkedAsset(g, asset.ID)
			}
		}
		touched = []string{asset.ID}

	case domain.SideGoal:
		gi := findGoal(nextGoals, change.EntityID)
		if gi < 0 {
			return original, domain.NewValidationError("entity_id", change.EntityID, "unknown goal")
		}
		for _, a := range change.Allocations {
			if findAsset(nextAssets, a.CounterpartID) < 0 {
				return original, domain.NewValidationError("allocations", change.EntityID, "unknown asset %q", a.CounterpartID)
			}
		}

		goal := &nextGoals[gi]
		diff = diffRelations(linkedPairs(goal.LinkedAssets), change.Allocations)
		goal.LinkedAssets = make([]domain.LinkedAsset, 0, len(change.Allocations))
		for _, a := range change.Allocations {
			goal.LinkedAssets = append(goal.LinkedAssets, domain.LinkedAsset{AssetID: a.CounterpartID, Percent: a.Percent})
		}
		for i := range nextAssets {
			a := &nextAssets[i]
			if pct, ok := proposed[a.ID]; ok {
				upsertEarmark(a, goal.ID, pct)
			} else {
				removeEarmark(a, goal.ID)
			}
		}
		for _, a := range change.Allocations {
			touched = append(touched, a.CounterpartID)
		}
	}

	for _, id := range touched {
		a := &nextAssets[findAsset(nextAssets, id)]
		if total := a.TotalEarmarked(); total.GreaterThan(money.Hundred()) {
			return original, domain.NewValidationError("earmarks", a.ID, "asset would be earmarked %s%% in total (max 100%%)", total.String())
		}
	}

	return domain.ReconcileResult{Assets: nextAssets, Goals: nextGoals, Diff: diff}, nil
}

func validateProposal(change domain.AllocationChange) error {
	if change.Side != domain.SideAsset && change.Side != domain.SideGoal {
		return domain.NewValidationError("side", change.EntityID, "must be %q or %q, got %q", domain.SideAsset, domain.SideGoal, change.Side)
	}
	if change.EntityID == "" {
		return domain.NewValidationError("entity_id", "", "is required")
	}
	seen := make(map[string]bool, len(change.Allocations))
	total := decimal.Zero
	for _, a := range change.Allocations {
		if a.CounterpartID == "" {
			return domain.NewValidationError("allocations", change.EntityID, "counterpart id is required")
		}
		if seen[a.CounterpartID] {
			return domain.NewValidationError("allocations", change.EntityID, "counterpart %q listed more than once", a.CounterpartID)
		}
		seen[a.CounterpartID] = true
		if a.Percent.IsNegative() || a.Percent.GreaterThan(money.Hundred()) {
			return domain.NewValidationError("allocations", change.EntityID, "percent for %q must be between 0 and 100, got %s", a.CounterpartID, a.Percent.String())
		}
		total = total.Add(a.Percent)
	}
	if change.Side == domain.SideAsset && total.GreaterThan(money.Hundred()) {
		return domain.NewValidationError("allocations", change.EntityID, "earmarks sum to %s%% (max 100%%)", total.String())
	}
	return nil
}

// diffRelations compares the previous relation list with a proposal.
// Updated lists counterparts present in both whose percent changed.
func diffRelations(prev []domain.Allocation, next []domain.Allocation) domain.AllocationDiff {
	diff := domain.AllocationDiff{Added: []string{}, Updated: []string{}, Removed: []string{}}
	before := make(map[string]decimal.Decimal, len(prev))
	for _, p := range prev {
		before[p.CounterpartID] = p.Percent
	}
	after := make(map[string]bool, len(next))
	for _, n := range next {
		after[n.CounterpartID] = true
		old, existed := before[n.CounterpartID]
		switch {
		case !existed:
			diff.Added = append(diff.Added, n.CounterpartID)
		case !old.Equal(n.Percent):
			diff.Updated = append(diff.Updated, n.CounterpartID)
		}
	}
	for _, p := range prev {
		if !after[p.CounterpartID] {
			diff.Removed = append(diff.Removed, p.CounterpartID)
		}
	}
	return diff
}

func earmarkPairs(es []domain.Earmark) []domain.Allocation {
	out := make([]domain.Allocation, 0, len(es))
	for _, e := range es {
		out = append(out, domain.Allocation{CounterpartID: e.GoalID, Percent: e.Percent})
	}
	return out
}

func linkedPairs(ls []domain.LinkedAsset) []domain.Allocation {
	out := make([]domain.Allocation, 0, len(ls))
	for _, l := range ls {
		out = append(out, domain.Allocation{CounterpartID: l.AssetID, Percent: l.Percent})
	}
	return out
}

// upsertLinkedAsset sets the goal's entry for assetID, keeping its position if present.
func upsertLinkedAsset(g *domain.Goal, assetID string, pct decimal.Decimal) {
	for i := range g.LinkedAssets {
		if g.LinkedAssets[i].AssetID == assetID {
			g.LinkedAssets[i].Percent = pct
			return
		}
	}
	g.LinkedAssets = append(g.LinkedAssets, domain.LinkedAsset{AssetID: assetID, Percent: pct})
}

func removeLinkedAsset(g *domain.Goal, assetID string) {
	kept := g.LinkedAssets[:0]
	for _, l := range g.LinkedAssets {
		if l.AssetID != assetID {
			kept = append(kept, l)
		}
	}
	g.LinkedAssets = kept
}

// upsertEarmark sets the asset's earmark for goalID, keeping its position if present.
func upsertEarmark(a *domain.Asset, goalID string, pct decimal.Decimal) {
	for i := range a.Earmarks {
		if a.Earmarks[i].GoalID == goalID {
			a.Earmarks[i].Percent = pct
			return
		}
	}
	a.Earmarks = append(a.Earmarks, domain.Earmark{GoalID: goalID, Percent: pct})
}

func removeEarmark(a *domain.Asset, goalID string) {
	kept := a.Earmarks[:0]
	for _, e := range a.Earmarks {
		if e.GoalID != goalID {
			kept = append(kept, e)
		}
	}
	a.Earmarks = kept
}

func cloneAssets(in []domain.Asset) []domain.Asset {
	out := make([]domain.Asset, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func cloneGoals(in []domain.Goal) []domain.Goal {
	out := make([]domain.Goal, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func findAsset(assets []domain.Asset, id string) int {
	for i := range assets {
		if assets[i].ID == id {
			return i
		}
	}
	return -1
}

func findGoal(goals []domain.Goal, id string) int {
	for i := range goals {
		if goals[i].ID == id {
			return i
		}
	}
	return -1
}

// CheckConsistency audits a snapshot for duplicate ids, dangling references,
// one-sided relations, percent mismatches and over-allocated assets.
func CheckConsistency(assets []domain.Asset, goals []domain.Goal) []domain.ConsistencyWarning {
	var warnings []domain.ConsistencyWarning

	assetByID := make(map[string]*domain.Asset, len(assets))
	for i := range assets {
		a := &assets[i]
		if _, dup := assetByID[a.ID]; dup {
			warnings = append(warnings, domain.ConsistencyWarning{Kind: domain.WarningDuplicateID, EntityID: a.ID,
				Message: fmt.Sprintf("asset id %q appears more than once", a.ID)})
			continue
		}
		assetByID[a.ID] = a
	}
	goalByID := make(map[string]*domain.Goal, len(goals))
	for i := range goals {
		g := &goals[i]
		if _, dup := goalByID[g.ID]; dup {
			warnings = append(warnings, domain.ConsistencyWarning{Kind: domain.WarningDuplicateID, EntityID: g.ID,
				Message: fmt.Sprintf("goal id %q appears more than once", g.ID)})
			continue
		}
		goalByID[g.ID] = g
	}

	for i := range assets {
		a := &assets[i]
		if total := a.TotalEarmarked(); total.GreaterThan(money.Hundred()) {
			warnings = append(warnings, domain.ConsistencyWarning{Kind: domain.WarningOverAllocated, EntityID: a.ID,
				Message: fmt.Sprintf("asset %q is earmarked %s%% in total", a.ID, total.String())})
		}
		for _, e := range a.Earmarks {
			g, ok := goalByID[e.GoalID]
			if !ok {
				warnings = append(warnings, domain.ConsistencyWarning{Kind: domain.WarningDanglingReference, EntityID: a.ID, CounterpartID: e.GoalID,
					Message: fmt.Sprintf("asset %q earmarks unknown goal %q", a.ID, e.GoalID)})
				continue
			}
			link, ok := g.LinkFor(a.ID)
			if !ok {
				warnings = append(warnings, domain.ConsistencyWarning{Kind: domain.WarningOneSidedRelation, EntityID: a.ID, CounterpartID: g.ID,
					Message: fmt.Sprintf("asset %q earmarks goal %q but the goal does not list it", a.ID, g.ID)})
				continue
			}
			if !link.Percent.Equal(e.Percent) {
				warnings = append(warnings, domain.ConsistencyWarning{Kind: domain.WarningPercentMismatch, EntityID: a.ID, CounterpartID: g.ID,
					Message: fmt.Sprintf("asset %q earmarks %s%% to goal %q but the goal records %s%%", a.ID, e.Percent.String(), g.ID, link.Percent.String())})
			}
		}
	}

	for i := range goals {
		g := &goals[i]
		for _, l := range g.LinkedAssets {
			a, ok := assetByID[l.AssetID]
			if !ok {
				warnings = append(warnings, domain.ConsistencyWarning{Kind: domain.WarningDanglingReference, EntityID: g.ID, CounterpartID: l.AssetID,
					Message: fmt.Sprintf("goal %q links unknown asset %q", g.ID, l.AssetID)})
				continue
			}
			if _, ok := a.EarmarkFor(g.ID); !ok {
				warnings = append(warnings, domain.ConsistencyWarning{Kind: domain.WarningOneSidedRelation, EntityID: g.ID, CounterpartID: a.ID,
					Message: fmt.Sprintf("goal %q links asset %q but the asset has no earmark for it", g.ID, a.ID)})
			}
		}
	}
	return warnings
}
