package distributor

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/circle-teams/pkg/core/model"
	"github.com/jakechorley/circle-teams/pkg/cp"
)

// Solve runs the solver over the built model. An error means the model itself
// is malformed and must not be treated as an unsolved configuration.
func Solve(ctx context.Context, dm *Model, timeLimit time.Duration) (*cp.Response, error) {
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}

	resp, err := cp.Solve(ctx, dm.CP, cp.Parameters{MaxTime: timeLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to solve model: %w", err)
	}
	return resp, nil
}

func statusFromResponse(s cp.Status) model.Status {
	switch s {
	case cp.Optimal:
		return model.StatusOptimal
	case cp.Feasible:
		return model.StatusFeasible
	case cp.Infeasible:
		return model.StatusInfeasible
	}
	return model.StatusUnknown
}
