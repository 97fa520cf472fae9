package distributor

import (
	"maps"
	"slices"

	"github.com/jakechorley/circle-teams/pkg/core/model"
	"github.com/jakechorley/circle-teams/pkg/cp"
)

// Extract reads the placement of every circle back from the solver response and
// nests it by team then subteam index. Teams and subteams without circles are
// simply absent; indices are kept as assigned. An unsolved response yields an
// empty distribution.
func Extract(dm *Model, resp *cp.Response) model.Distribution {
	distribution := model.Distribution{}
	if !statusFromResponse(resp.Status).Solved() {
		return distribution
	}

	placed := make(map[int]map[int][]model.Circle)
	for i, c := range dm.Circles {
		t := resp.Value(dm.team[i])
		s := resp.Value(dm.subteam[i])
		if placed[t] == nil {
			placed[t] = make(map[int][]model.Circle)
		}
		placed[t][s] = append(placed[t][s], c)
	}

	for _, t := range slices.Sorted(maps.Keys(placed)) {
		team := model.Team{Index: t}
		for _, s := range slices.Sorted(maps.Keys(placed[t])) {
			team.Subteams = append(team.Subteams, model.Subteam{Index: s, Circles: placed[t][s]})
		}
		distribution = append(distribution, team)
	}

	return distribution
}
