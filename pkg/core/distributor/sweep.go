package distributor

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/jakechorley/circle-teams/pkg/core/model"
	"github.com/jakechorley/circle-teams/pkg/core/splitter"
)

// Pair is one (team count, subteam capacity) combination of a sweep
type Pair struct {
	TeamCount int
	Capacity  int
}

// Pairs returns the cross product of team counts and capacities, team count outermost
func (c SweepConfig) Pairs() []Pair {
	pairs := make([]Pair, 0, len(c.TeamCounts)*len(c.Capacities))
	for _, teams := range c.TeamCounts {
		for _, capacity := range c.Capacities {
			pairs = append(pairs, Pair{TeamCount: teams, Capacity: capacity})
		}
	}
	return pairs
}

func (c SweepConfig) withDefaults() SweepConfig {
	if c.Weights == (Weights{}) {
		c.Weights = DefaultWeights()
	}
	if len(c.Categories) == 0 {
		c.Categories = model.AllCategories()
	}
	if c.TimeLimit <= 0 {
		c.TimeLimit = DefaultTimeLimit
	}
	return c
}

// Sweep solves every configuration pair and returns one solution per pair in
// Pairs order. Infeasible and unknown pairs are recorded and the sweep goes on;
// a solver error stops it.
func Sweep(ctx context.Context, circles []model.Circle, cfg SweepConfig, logger *zap.Logger) ([]model.Solution, error) {
	cfg = cfg.withDefaults()
	pairs := cfg.Pairs()
	solutions := make([]model.Solution, len(pairs))
	if len(pairs) == 0 {
		logger.Info("No configuration pairs to solve")
		return solutions, nil
	}

	logger.Info("Starting sweep",
		zap.Int("pairs", len(pairs)),
		zap.Int("circles", len(circles)),
		zap.Int("parallelism", max(1, cfg.Parallelism)))

	p := pool.New().
		WithMaxGoroutines(max(1, cfg.Parallelism)).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for i, pair := range pairs {
		p.Go(func(ctx context.Context) error {
			solution, err := SolvePair(ctx, circles, pair, cfg, logger)
			if err != nil {
				return fmt.Errorf("teams=%d capacity=%d: %w", pair.TeamCount, pair.Capacity, err)
			}
			solutions[i] = *solution
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return solutions, nil
}

// SolvePair splits, models, solves and extracts a single configuration pair
func SolvePair(ctx context.Context, circles []model.Circle, pair Pair, cfg SweepConfig, logger *zap.Logger) (*model.Solution, error) {
	cfg = cfg.withDefaults()
	logger.Info("Computing solution",
		zap.Int("team_count", pair.TeamCount),
		zap.Int("capacity", pair.Capacity))

	start := time.Now()

	topology := Topology{Teams: pair.TeamCount, Subteams: cfg.Subteams, Capacity: pair.Capacity}
	if err := topology.validate(); err != nil {
		return nil, err
	}
	working, friends := splitter.Split(circles, pair.Capacity)

	dm, err := BuildModel(working, friends, topology, cfg.Categories)
	if err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}
	dm.AddObjective(cfg.Weights)
	logger.Debug("Model built",
		zap.Int("working_circles", len(working)),
		zap.Int("friend_sets", len(friends)),
		zap.Int("sat_vars", dm.CP.NumVars()),
		zap.Int("sat_clauses", dm.CP.NumClauses()))

	if reason := CapacityShortfall(working, friends, topology); reason != "" {
		if err := dm.CP.Err(); err != nil {
			return nil, fmt.Errorf("failed to solve model: %w", err)
		}
		solution := &model.Solution{
			TeamCount:       pair.TeamCount,
			SubteamCapacity: pair.Capacity,
			Status:          model.StatusInfeasible,
			Distribution:    model.Distribution{},
			Friends:         friends,
			SolveTime:       time.Since(start),
		}
		logger.Info("Computed solution",
			zap.Int("team_count", pair.TeamCount),
			zap.Int("capacity", pair.Capacity),
			zap.String("status", string(solution.Status)),
			zap.String("reason", reason),
			zap.Duration("duration", solution.SolveTime))
		return solution, nil
	}

	resp, err := Solve(ctx, dm, cfg.TimeLimit)
	if err != nil {
		return nil, err
	}

	solution := &model.Solution{
		TeamCount:       pair.TeamCount,
		SubteamCapacity: pair.Capacity,
		Status:          statusFromResponse(resp.Status),
		Distribution:    Extract(dm, resp),
		Friends:         friends,
	}
	if solution.Status.Solved() {
		solution.Objective = resp.Objective
	}
	solution.SolveTime = time.Since(start)

	logger.Info("Computed solution",
		zap.Int("team_count", pair.TeamCount),
		zap.Int("capacity", pair.Capacity),
		zap.String("status", string(solution.Status)),
		zap.Int("objective", solution.Objective),
		zap.Duration("duration", solution.SolveTime))

	for _, verr := range ValidateSolution(*solution, working, cfg.Subteams) {
		logger.Warn("Solution violates an assignment rule",
			zap.String("pair", solution.Name()),
			zap.String("rule", verr.Rule),
			zap.Int("team", verr.TeamIndex),
			zap.Int("subteam", verr.SubteamIndex),
			zap.String("description", verr.Description))
	}

	return solution, nil
}
