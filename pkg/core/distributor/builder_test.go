package distributor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/circle-teams/pkg/core/model"
	"github.com/jakechorley/circle-teams/pkg/cp"
)

func TestBuildModel_InvalidTopology(t *testing.T) {
	tests := []Topology{
		{Teams: 0, Subteams: 1, Capacity: 5},
		{Teams: 1, Subteams: 0, Capacity: 5},
		{Teams: 1, Subteams: 1, Capacity: 0},
	}

	for _, topology := range tests {
		_, err := BuildModel(nil, nil, topology, model.AllCategories())
		assert.Error(t, err)
	}
}

func TestBuildModel_DuplicateCircleID(t *testing.T) {
	circles := []model.Circle{physics(1, 2), physics(1, 3)}

	_, err := BuildModel(circles, nil, Topology{Teams: 1, Subteams: 1, Capacity: 5}, model.AllCategories())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate circle 1")
}

func TestBuildModel_CategoryOutsideCatalogue(t *testing.T) {
	circles := []model.Circle{teaching(1, 2)}

	_, err := BuildModel(circles, nil, Topology{Teams: 1, Subteams: 1, Capacity: 5}, []model.Category{model.CategoryPhysics})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the catalogue")
}

func TestBuildModel_FriendMissingFromModel(t *testing.T) {
	parts := model.FriendSet{
		model.NewCirclePart(3, 0, 2, model.CategoryPhysics),
		model.NewCirclePart(3, 1, 1, model.CategoryPhysics),
	}

	_, err := BuildModel(parts[:1], []model.FriendSet{parts}, Topology{Teams: 1, Subteams: 1, Capacity: 5}, model.AllCategories())

	assert.Error(t, err)
}

func TestBuildModel_DeclaresPerCircleVariables(t *testing.T) {
	circles := []model.Circle{physics(1, 2), teaching(2, 3), physics(3, 1)}
	topology := Topology{Teams: 3, Subteams: 2, Capacity: 4}

	dm, err := BuildModel(circles, nil, topology, model.AllCategories())
	require.NoError(t, err)

	assert.Len(t, dm.team, 3)
	assert.Len(t, dm.inSlot[0], 6)
	assert.Len(t, dm.inTeam[0], 3)
	assert.Len(t, dm.inSubteam[0], 2)
	assert.Len(t, dm.teamUsed, 3)
	assert.Len(t, dm.slotUsed, 6)
	require.Len(t, dm.teamHasCategory, 3)
	assert.Len(t, dm.teamHasCategory[0], 6)

	lo, hi := dm.order[0].Domain()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 5, hi)
	assert.NoError(t, dm.CP.Err())
}

func TestBuildModel_IndicatorsAgreeWithPlacement(t *testing.T) {
	circles := []model.Circle{physics(1, 3), teaching(2, 3), physics(3, 2)}
	topology := Topology{Teams: 2, Subteams: 2, Capacity: 3}

	dm, err := BuildModel(circles, nil, topology, model.AllCategories())
	require.NoError(t, err)
	dm.AddObjective(DefaultWeights())

	resp, err := Solve(context.Background(), dm, testTimeLimit)
	require.NoError(t, err)
	require.Equal(t, cp.Optimal, resp.Status)

	for i := range circles {
		team := resp.Value(dm.team[i])
		sub := resp.Value(dm.subteam[i])
		assert.Equal(t, team*topology.Subteams+sub, resp.Value(dm.order[i]))
		assert.True(t, resp.BooleanValue(dm.inTeam[i][team]))
		assert.True(t, resp.BooleanValue(dm.inSubteam[i][sub]))
		assert.True(t, resp.BooleanValue(dm.inSlot[i][team*topology.Subteams+sub]))
		assert.True(t, resp.BooleanValue(dm.teamUsed[team]))
		assert.True(t, resp.BooleanValue(dm.slotUsed[team*topology.Subteams+sub]))
	}

	// 8 people in slots of 3 need three slots, so both teams are used
	assert.True(t, resp.BooleanValue(dm.teamUsed[0]))
	assert.True(t, resp.BooleanValue(dm.teamUsed[1]))
}

func TestExtract_UnsolvedResponseIsEmpty(t *testing.T) {
	dm, err := BuildModel([]model.Circle{physics(1, 9)}, nil, Topology{Teams: 1, Subteams: 1, Capacity: 5}, model.AllCategories())
	require.NoError(t, err)

	resp, err := Solve(context.Background(), dm, testTimeLimit)
	require.NoError(t, err)
	require.Equal(t, cp.Infeasible, resp.Status)

	distribution := Extract(dm, resp)
	assert.NotNil(t, distribution)
	assert.Empty(t, distribution)
}

func TestSolve_RejectsMalformedObjective(t *testing.T) {
	dm, err := BuildModel([]model.Circle{physics(1, 2)}, nil, Topology{Teams: 1, Subteams: 1, Capacity: 5}, model.AllCategories())
	require.NoError(t, err)
	dm.AddObjective(Weights{Teams: -1, Categories: 1})

	_, err = Solve(context.Background(), dm, testTimeLimit)

	assert.ErrorIs(t, err, cp.ErrModelInvalid)
}

func TestBuildModel_CircleZeroPartsDoNotClash(t *testing.T) {
	parts := model.FriendSet{
		model.NewCirclePart(0, 0, 3, model.CategoryPhysics),
		model.NewCirclePart(0, 1, 1, model.CategoryPhysics),
	}
	circles := []model.Circle{parts[0], parts[1], physics(1, 2)}

	dm, err := BuildModel(circles, []model.FriendSet{parts}, Topology{Teams: 2, Subteams: 2, Capacity: 3}, model.AllCategories())

	require.NoError(t, err)
	assert.Len(t, dm.team, 3)
}
