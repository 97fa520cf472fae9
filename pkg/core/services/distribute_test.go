package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/circle-teams/internal/config"
	"github.com/jakechorley/circle-teams/pkg/core/distributor"
	"github.com/jakechorley/circle-teams/pkg/core/model"
)

func testConfig() *config.Config {
	return &config.Config{
		Categories: []config.CategoryConfig{
			{Name: "Fyzika", Circles: []int{1, 2}},
			{Name: "Učitelství", Circles: []int{3}},
		},
		TeamCounts:      []int{1, 2},
		SubteamSizes:    []int{5},
		SubteamCount:    1,
		SolverTimeLimit: 10 * time.Second,
	}
}

func TestBuildCircles_SkipsMissingCounts(t *testing.T) {
	circles, err := BuildCircles(testConfig(), map[int]int{1: 5, 3: 2, 42: 9})
	require.NoError(t, err)

	require.Len(t, circles, 2)
	assert.Equal(t, model.NewCircle(1, 5, model.CategoryPhysics), circles[0])
	assert.Equal(t, model.NewCircle(3, 2, model.CategoryTeaching), circles[1])
}

func TestBuildCircles_ConfigOrder(t *testing.T) {
	cfg := testConfig()
	cfg.Categories[0].Circles = []int{2, 1}

	circles, err := BuildCircles(cfg, map[int]int{1: 1, 2: 1, 3: 1})
	require.NoError(t, err)

	ids := []int{circles[0].ID, circles[1].ID, circles[2].ID}
	assert.Equal(t, []int{2, 1, 3}, ids)
}

func TestBuildCircles_UnknownCategory(t *testing.T) {
	cfg := testConfig()
	cfg.Categories[1].Name = "Chemie"

	_, err := BuildCircles(cfg, map[int]int{3: 1})
	assert.Error(t, err)
}

func TestSweepConfigFrom(t *testing.T) {
	cfg := testConfig()
	cfg.Parallelism = 3

	sweep := SweepConfigFrom(cfg)

	assert.Equal(t, []int{1, 2}, sweep.TeamCounts)
	assert.Equal(t, []int{5}, sweep.Capacities)
	assert.Equal(t, 1, sweep.Subteams)
	assert.Equal(t, 3, sweep.Parallelism)
	assert.Equal(t, 10*time.Second, sweep.TimeLimit)
	assert.Equal(t, distributor.DefaultWeights(), sweep.Weights)
	assert.Equal(t, []model.Category{model.CategoryPhysics, model.CategoryTeaching}, sweep.Categories)
}

func TestSweepConfigFrom_CustomWeights(t *testing.T) {
	cfg := testConfig()
	cfg.Weights = config.ObjectiveWeights{Teams: 5, Categories: 2}

	sweep := SweepConfigFrom(cfg)

	assert.Equal(t, distributor.Weights{Teams: 5, Categories: 2}, sweep.Weights)
}

func TestDistribute(t *testing.T) {
	result, err := Distribute(context.Background(), testConfig(), map[int]int{1: 5, 2: 3}, zap.NewNop())
	require.NoError(t, err)

	_, err = uuid.Parse(result.RunID)
	assert.NoError(t, err)
	assert.Len(t, result.Circles, 2)

	require.Len(t, result.Solutions, 2)
	assert.Equal(t, model.StatusInfeasible, result.Solutions[0].Status)
	assert.True(t, result.Solutions[1].Status.Solved())
	assert.Equal(t, 4, result.Solutions[1].Objective)
	assert.Equal(t, 1, result.SolvedCount())
}

func TestDistribute_NoCandidates(t *testing.T) {
	cfg := testConfig()
	cfg.TeamCounts = nil

	result, err := Distribute(context.Background(), cfg, map[int]int{1: 5}, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, result.Solutions)
	assert.Equal(t, 0, result.SolvedCount())
}
