package domain

import "github.com/shopspring/decimal"

// ChangeSide names which side of the asset/goal relation a change was made on.
type ChangeSide string

const (
	SideAsset ChangeSide = "asset"
	SideGoal  ChangeSide = "goal"
)

// Allocation is one proposed relation entry: a counterpart id and a percent.
// For an asset-side change the counterpart is a goal, and vice versa.
type Allocation struct {
	CounterpartID string          `yaml:"id" json:"id"`
	Percent       decimal.Decimal `yaml:"percent" json:"percent"`
}

// AllocationChange replaces the whole relation list of one asset or goal.
type AllocationChange struct {
	Side        ChangeSide   `yaml:"side" json:"side"`
	EntityID    string       `yaml:"entity_id" json:"entity_id"`
	Allocations []Allocation `yaml:"allocations" json:"allocations"`
}

// AllocationDiff lists counterpart ids by how the change affected them.
type AllocationDiff struct {
	Added   []string `json:"added"`
	Updated []string `json:"updated"`
	Removed []string `json:"removed"`
}

// IsEmpty reports whether the change touched nothing.
func (d AllocationDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0 && len(d.Removed) == 0
}

// ReconcileResult carries the full, mutually consistent collections after a change.
type ReconcileResult struct {
	Assets []Asset        `json:"assets"`
	Goals  []Goal         `json:"goals"`
	Diff   AllocationDiff `json:"diff"`
}
