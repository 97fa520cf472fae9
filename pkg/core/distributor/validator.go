package distributor

import (
	"fmt"

	"github.com/jakechorley/circle-teams/pkg/core/model"
)

// Rule names reported by ValidateSolution
const (
	RulePlacement = "Placement"
	RuleCapacity  = "Capacity"
	RuleFriends   = "Friends"
	RuleTeamOrder = "TeamOrder"
)

// ValidationError describes one violated assignment invariant
type ValidationError struct {
	TeamIndex    int
	SubteamIndex int
	Rule         string
	Description  string
}

// ValidateSolution checks a solved distribution against the working circle
// list it was built from. An empty slice means the distribution is valid.
// Unsolved solutions have nothing to check.
func ValidateSolution(sol model.Solution, working []model.Circle, subteams int) []ValidationError {
	var errors []ValidationError
	if !sol.Status.Solved() {
		return errors
	}

	teamOf := make(map[model.CircleKey]int)
	seen := make(map[model.CircleKey]int)
	used := make(map[int]bool)

	for _, team := range sol.Distribution {
		if team.Index < 0 || team.Index >= sol.TeamCount {
			errors = append(errors, ValidationError{
				TeamIndex: team.Index, SubteamIndex: -1, Rule: RulePlacement,
				Description: fmt.Sprintf("Team index outside [0, %d)", sol.TeamCount),
			})
		}
		if len(team.Subteams) > 0 {
			used[team.Index] = true
		}

		for _, sub := range team.Subteams {
			if sub.Index < 0 || sub.Index >= subteams {
				errors = append(errors, ValidationError{
					TeamIndex: team.Index, SubteamIndex: sub.Index, Rule: RulePlacement,
					Description: fmt.Sprintf("Subteam index outside [0, %d)", subteams),
				})
			}
			if size := sub.Size(); size > sol.SubteamCapacity {
				errors = append(errors, ValidationError{
					TeamIndex: team.Index, SubteamIndex: sub.Index, Rule: RuleCapacity,
					Description: fmt.Sprintf("Subteam is overfilled: has %d people but capacity is %d", size, sol.SubteamCapacity),
				})
			}
			for _, c := range sub.Circles {
				seen[c.Key()]++
				teamOf[c.Key()] = team.Index
			}
		}
	}

	for _, c := range working {
		if n := seen[c.Key()]; n != 1 {
			errors = append(errors, ValidationError{
				TeamIndex: -1, SubteamIndex: -1, Rule: RulePlacement,
				Description: fmt.Sprintf("Circle %s is placed %d times", c.Label(), n),
			})
		}
	}

	for _, set := range sol.Friends {
		if len(set) == 0 {
			continue
		}
		first := teamOf[set[0].Key()]
		for _, part := range set[1:] {
			if teamOf[part.Key()] != first {
				errors = append(errors, ValidationError{
					TeamIndex: teamOf[part.Key()], SubteamIndex: -1, Rule: RuleFriends,
					Description: fmt.Sprintf("Circle %s is not in team %d with %s", part.Label(), first, set[0].Label()),
				})
			}
		}
	}

	for t := 1; t < sol.TeamCount; t++ {
		if used[t] && !used[t-1] {
			errors = append(errors, ValidationError{
				TeamIndex: t, SubteamIndex: -1, Rule: RuleTeamOrder,
				Description: fmt.Sprintf("Team %d is used while team %d is empty", t, t-1),
			})
		}
	}

	return errors
}
