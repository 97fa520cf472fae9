package distributor

// Objective weights. Both terms are summed into a single expression, there is
// no lexicographic priority between them.
const (
	// WeightTeamsUsed is applied to every team that receives at least one circle
	WeightTeamsUsed = 1

	// WeightTeamCategories is applied to every (team, category) pair present in the distribution
	WeightTeamCategories = 1
)

// Weights scale the two objective terms
type Weights struct {
	Teams      int
	Categories int
}

// DefaultWeights returns the built-in objective weights
func DefaultWeights() Weights {
	return Weights{
		Teams:      WeightTeamsUsed,
		Categories: WeightTeamCategories,
	}
}
