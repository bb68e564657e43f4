package calculation

import (
	"errors"
	"testing"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allocationFixture() ([]domain.Asset, []domain.Goal) {
	assets := []domain.Asset{
		{ID: "fd", Earmarks: []domain.Earmark{{GoalID: "car", Percent: d("30")}}},
		{ID: "eq", Earmarks: []domain.Earmark{{GoalID: "house", Percent: d("90")}}},
		{ID: "gold"},
	}
	goals := []domain.Goal{
		{ID: "car", LinkedAssets: []domain.LinkedAsset{{AssetID: "fd", Percent: d("30")}}},
		{ID: "house", LinkedAssets: []domain.LinkedAsset{{AssetID: "eq", Percent: d("90")}}},
		{ID: "trip"},
	}
	return assets, goals
}

func TestReconcileAllocation_AssetSide(t *testing.T) {
	assets, goals := allocationFixture()
	change := domain.AllocationChange{
		Side:     domain.SideAsset,
		EntityID: "fd",
		Allocations: []domain.Allocation{
			{CounterpartID: "trip", Percent: d("40")},
		},
	}

	res, err := ReconcileAllocation(assets, goals, change)
	require.NoError(t, err)

	fd := res.Assets[0]
	require.Len(t, fd.Earmarks, 1)
	assert.Equal(t, "trip", fd.Earmarks[0].GoalID)

	assert.Empty(t, res.Goals[0].LinkedAssets, "car must lose its link to fd")
	link, ok := res.Goals[2].LinkFor("fd")
	require.True(t, ok)
	assert.True(t, link.Percent.Equal(d("40")))

	assert.Equal(t, []string{"trip"}, res.Diff.Added)
	assert.Equal(t, []string{"car"}, res.Diff.Removed)
	assert.Empty(t, res.Diff.Updated)
	assert.Empty(t, CheckConsistency(res.Assets, res.Goals))

	// Inputs are untouched.
	assert.Equal(t, "car", assets[0].Earmarks[0].GoalID)
	assert.Len(t, goals[0].LinkedAssets, 1)
	assert.Empty(t, goals[2].LinkedAssets)
}

func TestReconcileAllocation_GoalSide(t *testing.T) {
	assets, goals := allocationFixture()
	change := domain.AllocationChange{
		Side:     domain.SideGoal,
		EntityID: "car",
		Allocations: []domain.Allocation{
			{CounterpartID: "fd", Percent: d("60")},
			{CounterpartID: "gold", Percent: d("20")},
		},
	}

	res, err := ReconcileAllocation(assets, goals, change)
	require.NoError(t, err)

	e, ok := res.Assets[0].EarmarkFor("car")
	require.True(t, ok)
	assert.True(t, e.Percent.Equal(d("60")))
	e, ok = res.Assets[2].EarmarkFor("car")
	require.True(t, ok)
	assert.True(t, e.Percent.Equal(d("20")))

	assert.Equal(t, []string{"gold"}, res.Diff.Added)
	assert.Equal(t, []string{"fd"}, res.Diff.Updated)
	assert.Empty(t, res.Diff.Removed)
	assert.Empty(t, CheckConsistency(res.Assets, res.Goals))
}

func TestReconcileAllocation_ClearingRemovesMirrors(t *testing.T) {
	assets, goals := allocationFixture()
	res, err := ReconcileAllocation(assets, goals, domain.AllocationChange{Side: domain.SideGoal, EntityID: "house"})
	require.NoError(t, err)

	assert.Empty(t, res.Goals[1].LinkedAssets)
	assert.Empty(t, res.Assets[1].Earmarks)
	assert.Equal(t, []string{"eq"}, res.Diff.Removed)
}

func TestReconcileAllocation_ZeroPercentIsKept(t *testing.T) {
	assets, goals := allocationFixture()
	res, err := ReconcileAllocation(assets, goals, domain.AllocationChange{
		Side: domain.SideAsset, EntityID: "gold",
		Allocations: []domain.Allocation{{CounterpartID: "trip", Percent: d("0")}},
	})
	require.NoError(t, err)
	_, ok := res.Goals[2].LinkFor("gold")
	assert.True(t, ok)
}

func TestReconcileAllocation_Idempotent(t *testing.T) {
	assets, goals := allocationFixture()
	change := domain.AllocationChange{
		Side:     domain.SideGoal,
		EntityID: "trip",
		Allocations: []domain.Allocation{
			{CounterpartID: "gold", Percent: d("100")},
			{CounterpartID: "fd", Percent: d("25")},
		},
	}

	first, err := ReconcileAllocation(assets, goals, change)
	require.NoError(t, err)
	second, err := ReconcileAllocation(first.Assets, first.Goals, change)
	require.NoError(t, err)

	assert.Equal(t, first.Assets, second.Assets)
	assert.Equal(t, first.Goals, second.Goals)
	assert.True(t, second.Diff.IsEmpty())
}

func TestReconcileAllocation_RejectsOverAllocation(t *testing.T) {
	assets, goals := allocationFixture()
	change := domain.AllocationChange{
		Side:        domain.SideGoal,
		EntityID:    "car",
		Allocations: []domain.Allocation{{CounterpartID: "eq", Percent: d("20")}},
	}

	res, err := ReconcileAllocation(assets, goals, change)
	require.Error(t, err)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "eq", ve.EntityID)
	assert.Contains(t, err.Error(), "110")

	assert.Equal(t, assets, res.Assets)
	assert.Equal(t, goals, res.Goals)
	assert.Len(t, assets[1].Earmarks, 1)
	assert.True(t, res.Diff.IsEmpty())
}

func TestReconcileAllocation_InvalidProposals(t *testing.T) {
	tests := []struct {
		name   string
		change domain.AllocationChange
		want   string
	}{
		{
			name:   "unknown side",
			change: domain.AllocationChange{Side: "portfolio", EntityID: "fd"},
			want:   "must be",
		},
		{
			name:   "missing entity",
			change: domain.AllocationChange{Side: domain.SideAsset},
			want:   "is required",
		},
		{
			name:   "unknown asset",
			change: domain.AllocationChange{Side: domain.SideAsset, EntityID: "bonds"},
			want:   "unknown asset",
		},
		{
			name:   "unknown goal",
			change: domain.AllocationChange{Side: domain.SideGoal, EntityID: "yacht"},
			want:   "unknown goal",
		},
		{
			name: "percent above 100",
			change: domain.AllocationChange{Side: domain.SideGoal, EntityID: "car",
				Allocations: []domain.Allocation{{CounterpartID: "fd", Percent: d("101")}}},
			want: "between 0 and 100",
		},
		{
			name: "negative percent",
			change: domain.AllocationChange{Side: domain.SideAsset, EntityID: "fd",
				Allocations: []domain.Allocation{{CounterpartID: "car", Percent: d("-5")}}},
			want: "between 0 and 100",
		},
		{
			name: "duplicate counterpart",
			change: domain.AllocationChange{Side: domain.SideAsset, EntityID: "fd",
				Allocations: []domain.Allocation{
					{CounterpartID: "car", Percent: d("10")},
					{CounterpartID: "car", Percent: d("20")},
				}},
			want: "more than once",
		},
		{
			name: "asset earmarks above 100 in total",
			change: domain.AllocationChange{Side: domain.SideAsset, EntityID: "fd",
				Allocations: []domain.Allocation{
					{CounterpartID: "car", Percent: d("60")},
					{CounterpartID: "trip", Percent: d("50")},
				}},
			want: "sum to 110",
		},
		{
			name: "unknown counterpart goal",
			change: domain.AllocationChange{Side: domain.SideAsset, EntityID: "fd",
				Allocations: []domain.Allocation{{CounterpartID: "yacht", Percent: d("10")}}},
			want: "unknown goal",
		},
		{
			name: "unknown counterpart asset",
			change: domain.AllocationChange{Side: domain.SideGoal, EntityID: "car",
				Allocations: []domain.Allocation{{CounterpartID: "bonds", Percent: d("10")}}},
			want: "unknown asset",
		},
		{
			name: "blank counterpart id",
			change: domain.AllocationChange{Side: domain.SideGoal, EntityID: "car",
				Allocations: []domain.Allocation{{Percent: d("10")}}},
			want: "counterpart id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assets, goals := allocationFixture()
			res, err := ReconcileAllocation(assets, goals, tt.change)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, assets, res.Assets)
			assert.Equal(t, goals, res.Goals)
		})
	}
}

func TestCheckConsistency(t *testing.T) {
	assets := []domain.Asset{
		{ID: "a1", Earmarks: []domain.Earmark{
			{GoalID: "g1", Percent: d("70")},
			{GoalID: "g2", Percent: d("40")},
			{GoalID: "missing", Percent: d("5")},
		}},
		{ID: "a2"},
		{ID: "a2"},
	}
	goals := []domain.Goal{
		{ID: "g1", LinkedAssets: []domain.LinkedAsset{{AssetID: "a1", Percent: d("60")}}},
		{ID: "g2"},
		{ID: "g3", LinkedAssets: []domain.LinkedAsset{
			{AssetID: "a2", Percent: d("10")},
			{AssetID: "nowhere", Percent: d("10")},
		}},
	}

	warnings := CheckConsistency(assets, goals)

	kinds := make(map[domain.WarningKind]int)
	for _, w := range warnings {
		kinds[w.Kind]++
	}
	assert.Equal(t, 1, kinds[domain.WarningDuplicateID])
	assert.Equal(t, 1, kinds[domain.WarningOverAllocated])
	assert.Equal(t, 1, kinds[domain.WarningPercentMismatch])
	assert.Equal(t, 2, kinds[domain.WarningDanglingReference])
	assert.Equal(t, 2, kinds[domain.WarningOneSidedRelation])
	assert.Len(t, warnings, 7)
}

func TestCheckConsistency_Clean(t *testing.T) {
	assets, goals := allocationFixture()
	assert.Empty(t, CheckConsistency(assets, goals))
}
