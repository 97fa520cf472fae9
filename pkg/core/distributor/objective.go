package distributor

import "github.com/jakechorley/circle-teams/pkg/cp"

// AddObjective sets the model to minimise
//
//	w.Teams * (teams used) + w.Categories * (sum over teams of categories present)
//
// The team term is bounded by Teams while the category term is bounded by
// Teams * len(Categories), so with equal weights fewer teams usually wins,
// but the two are only ever traded off additively.
func (dm *Model) AddObjective(w Weights) {
	var terms []cp.BoolTerm
	for _, used := range dm.teamUsed {
		terms = append(terms, cp.BoolTerm{Coef: w.Teams, Var: used})
	}
	for _, row := range dm.teamHasCategory {
		for _, has := range row {
			terms = append(terms, cp.BoolTerm{Coef: w.Categories, Var: has})
		}
	}
	dm.CP.Minimize(terms)
}
