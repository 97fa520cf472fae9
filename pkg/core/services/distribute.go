package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/circle-teams/internal/config"
	"github.com/jakechorley/circle-teams/pkg/core/distributor"
	"github.com/jakechorley/circle-teams/pkg/core/model"
)

// DistributeResult represents the result of a distribution sweep
type DistributeResult struct {
	RunID     string
	Circles   []model.Circle
	Solutions []model.Solution
}

// SolvedCount returns how many pairs produced a distribution
func (r *DistributeResult) SolvedCount() int {
	count := 0
	for _, sol := range r.Solutions {
		if sol.Status.Solved() {
			count++
		}
	}
	return count
}

// BuildCircles turns the configured categories and the occupancy counts into
// circles, in configuration order. Circles without a count are not present
// this time and are skipped.
func BuildCircles(cfg *config.Config, counts map[int]int) ([]model.Circle, error) {
	var circles []model.Circle
	for _, cat := range cfg.Categories {
		category, err := model.ParseCategory(cat.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to build circles: %w", err)
		}
		for _, id := range cat.Circles {
			size, ok := counts[id]
			if !ok {
				continue
			}
			if size < 0 {
				return nil, fmt.Errorf("circle %d has negative count %d", id, size)
			}
			circles = append(circles, model.NewCircle(id, size, category))
		}
	}
	return circles, nil
}

// SweepConfigFrom maps the loaded configuration onto the sweep settings
func SweepConfigFrom(cfg *config.Config) distributor.SweepConfig {
	weights := distributor.Weights{
		Teams:      cfg.Weights.Teams,
		Categories: cfg.Weights.Categories,
	}
	if weights == (distributor.Weights{}) {
		weights = distributor.DefaultWeights()
	}

	return distributor.SweepConfig{
		TeamCounts:  cfg.TeamCounts,
		Capacities:  cfg.SubteamSizes,
		Subteams:    cfg.SubteamCount,
		Categories:  cfg.CategoryCatalogue(),
		Weights:     weights,
		TimeLimit:   cfg.SolverTimeLimit,
		Parallelism: cfg.Parallelism,
	}
}

// Distribute builds the circles present this time and solves every configured
// (team count, subteam capacity) pair
func Distribute(ctx context.Context, cfg *config.Config, counts map[int]int, logger *zap.Logger) (*DistributeResult, error) {
	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	circles, err := BuildCircles(cfg, counts)
	if err != nil {
		return nil, err
	}

	logger.Info("Distributing circles",
		zap.Int("circles", len(circles)),
		zap.Ints("team_counts", cfg.TeamCounts),
		zap.Ints("subteam_sizes", cfg.SubteamSizes),
		zap.Int("subteams", cfg.SubteamCount))

	solutions, err := distributor.Sweep(ctx, circles, SweepConfigFrom(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to compute distributions: %w", err)
	}

	result := &DistributeResult{
		RunID:     runID,
		Circles:   circles,
		Solutions: solutions,
	}

	logger.Info("Distribution complete",
		zap.Int("pairs", len(solutions)),
		zap.Int("solved", result.SolvedCount()))

	return result, nil
}
