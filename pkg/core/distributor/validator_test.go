package distributor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/circle-teams/pkg/core/model"
)

func rules(errs []ValidationError) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Rule)
	}
	return out
}

func TestValidateSolution_Valid(t *testing.T) {
	a, b := physics(1, 3), physics(2, 2)
	sol := model.Solution{
		TeamCount: 2, SubteamCapacity: 5, Status: model.StatusOptimal,
		Distribution: model.Distribution{
			{Index: 0, Subteams: []model.Subteam{{Index: 0, Circles: []model.Circle{a, b}}}},
		},
	}

	assert.Empty(t, ValidateSolution(sol, []model.Circle{a, b}, 1))
}

func TestValidateSolution_UnsolvedIsSkipped(t *testing.T) {
	sol := model.Solution{TeamCount: 1, SubteamCapacity: 5, Status: model.StatusInfeasible}

	assert.Empty(t, ValidateSolution(sol, []model.Circle{physics(1, 3)}, 1))
}

func TestValidateSolution_Overfilled(t *testing.T) {
	a, b := physics(1, 3), physics(2, 3)
	sol := model.Solution{
		TeamCount: 1, SubteamCapacity: 5, Status: model.StatusFeasible,
		Distribution: model.Distribution{
			{Index: 0, Subteams: []model.Subteam{{Index: 0, Circles: []model.Circle{a, b}}}},
		},
	}

	errs := ValidateSolution(sol, []model.Circle{a, b}, 1)

	require.Len(t, errs, 1)
	assert.Equal(t, RuleCapacity, errs[0].Rule)
	assert.Contains(t, errs[0].Description, "has 6 people but capacity is 5")
}

func TestValidateSolution_MissingAndOutOfRange(t *testing.T) {
	a, b := physics(1, 3), physics(2, 3)
	sol := model.Solution{
		TeamCount: 1, SubteamCapacity: 5, Status: model.StatusFeasible,
		Distribution: model.Distribution{
			{Index: 0, Subteams: []model.Subteam{{Index: 3, Circles: []model.Circle{a}}}},
		},
	}

	errs := ValidateSolution(sol, []model.Circle{a, b}, 2)

	assert.Equal(t, []string{RulePlacement, RulePlacement}, rules(errs))
}

func TestValidateSolution_FriendsSplitAcrossTeams(t *testing.T) {
	p0 := model.NewCirclePart(5, 0, 3, model.CategoryPhysics)
	p1 := model.NewCirclePart(5, 1, 2, model.CategoryPhysics)
	sol := model.Solution{
		TeamCount: 2, SubteamCapacity: 3, Status: model.StatusFeasible,
		Friends: []model.FriendSet{{p0, p1}},
		Distribution: model.Distribution{
			{Index: 0, Subteams: []model.Subteam{{Index: 0, Circles: []model.Circle{p0}}}},
			{Index: 1, Subteams: []model.Subteam{{Index: 0, Circles: []model.Circle{p1}}}},
		},
	}

	errs := ValidateSolution(sol, []model.Circle{p0, p1}, 1)

	assert.Equal(t, []string{RuleFriends}, rules(errs))
}

func TestValidateSolution_TeamGap(t *testing.T) {
	a := physics(1, 3)
	sol := model.Solution{
		TeamCount: 3, SubteamCapacity: 5, Status: model.StatusFeasible,
		Distribution: model.Distribution{
			{Index: 1, Subteams: []model.Subteam{{Index: 0, Circles: []model.Circle{a}}}},
		},
	}

	errs := ValidateSolution(sol, []model.Circle{a}, 1)

	assert.Equal(t, []string{RuleTeamOrder}, rules(errs))
}

func TestValidateSolution_CircleZeroPartsAreDistinct(t *testing.T) {
	p0 := model.NewCirclePart(0, 0, 3, model.CategoryPhysics)
	p1 := model.NewCirclePart(0, 1, 1, model.CategoryPhysics)
	c1 := physics(1, 2)
	sol := model.Solution{
		TeamCount: 2, SubteamCapacity: 3, Status: model.StatusFeasible,
		Friends: []model.FriendSet{{p0, p1}},
		Distribution: model.Distribution{
			{Index: 0, Subteams: []model.Subteam{
				{Index: 0, Circles: []model.Circle{p0}},
				{Index: 1, Circles: []model.Circle{p1}},
			}},
			{Index: 1, Subteams: []model.Subteam{{Index: 0, Circles: []model.Circle{c1}}}},
		},
	}

	// p1 has the same numeric id as circle 1 but is a different circle
	assert.Equal(t, c1.ID, p1.ID)
	assert.Empty(t, ValidateSolution(sol, []model.Circle{p0, p1, c1}, 2))
}
