package domain

import "github.com/shopspring/decimal"

// Goal is a target amount to be reached by a calendar year
type Goal struct {
	ID           string          `yaml:"id" json:"id"`
	Name         string          `yaml:"name" json:"name"`
	TargetAmount decimal.Decimal `yaml:"target_amount" json:"target_amount"`
	TargetYear   int             `yaml:"target_year" json:"target_year"`
	LinkedAssets []LinkedAsset   `yaml:"linked_assets,omitempty" json:"linked_assets,omitempty"`
}

// LinkedAsset mirrors an Earmark from the goal side
type LinkedAsset struct {
	AssetID string          `yaml:"asset_id" json:"asset_id"`
	Percent decimal.Decimal `yaml:"percent" json:"percent"`
}

// LinkFor returns the linked-asset entry for assetID, if any.
func (g *Goal) LinkFor(assetID string) (LinkedAsset, bool) {
	for _, l := range g.LinkedAssets {
		if l.AssetID == assetID {
			return l, true
		}
	}
	return LinkedAsset{}, false
}

// Clone returns a deep copy of the goal.
func (g Goal) Clone() Goal {
	out := g
	if g.LinkedAssets != nil {
		out.LinkedAssets = make([]LinkedAsset, len(g.LinkedAssets))
		copy(out.LinkedAssets, g.LinkedAssets)
	}
	return out
}
