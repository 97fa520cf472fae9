package distributor

import (
	"fmt"
	"time"

	"github.com/jakechorley/circle-teams/pkg/core/model"
	"github.com/jakechorley/circle-teams/pkg/cp"
)

// DefaultTimeLimit is the solver budget for one configuration pair
const DefaultTimeLimit = 30 * time.Second

// Topology describes the shape of one configuration pair
type Topology struct {
	// Teams is the number of teams available
	Teams int

	// Subteams is the number of subteams inside every team
	Subteams int

	// Capacity is the maximum occupancy of a subteam
	Capacity int
}

// Slots returns the number of (team, subteam) slots
func (t Topology) Slots() int {
	return t.Teams * t.Subteams
}

func (t Topology) validate() error {
	if t.Teams < 1 || t.Subteams < 1 || t.Capacity < 1 {
		return fmt.Errorf("invalid topology: teams=%d subteams=%d capacity=%d", t.Teams, t.Subteams, t.Capacity)
	}
	return nil
}

// Model is a built constraint model for one configuration pair together with
// the variables needed to read a distribution back
type Model struct {
	CP         *cp.Model
	Circles    []model.Circle
	Friends    []model.FriendSet
	Topology   Topology
	Categories []model.Category

	// team[i], subteam[i] and order[i] = team[i]*Subteams + subteam[i] place circle i
	team    []cp.IntVar
	subteam []cp.IntVar
	order   []cp.IntVar

	// one-hot indicators per circle: [circle][team], [circle][subteam], [circle][slot]
	inTeam    [][]cp.BoolVar
	inSubteam [][]cp.BoolVar
	inSlot    [][]cp.BoolVar

	teamUsed        []cp.BoolVar
	teamHasCategory [][]cp.BoolVar // [team][category]
	slotUsed        []cp.BoolVar
}

// SweepConfig holds the configuration space and solver settings of a sweep
type SweepConfig struct {
	// TeamCounts are the candidate numbers of teams
	TeamCounts []int

	// Capacities are the candidate subteam capacities
	Capacities []int

	// Subteams is the fixed number of subteams per team
	Subteams int

	// Categories is the category catalogue used by the objective
	Categories []model.Category

	Weights Weights

	// TimeLimit is the solver budget per configuration pair (DefaultTimeLimit when zero)
	TimeLimit time.Duration

	// Parallelism is the number of pairs solved at once, values below 2 run sequentially
	Parallelism int
}
