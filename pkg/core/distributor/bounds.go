package distributor

import (
	"fmt"

	"github.com/jakechorley/circle-teams/pkg/core/model"
)

// CapacityShortfall reports why the working circles cannot fit the topology
// by counting seats alone, or "" when they may fit. These cases are pigeonhole
// instances that the SAT search cannot refute quickly.
func CapacityShortfall(circles []model.Circle, friends []model.FriendSet, topology Topology) string {
	total := 0
	for _, c := range circles {
		if c.Size > topology.Capacity {
			return fmt.Sprintf("circle %s has %d people but capacity is %d", c.Label(), c.Size, topology.Capacity)
		}
		total += c.Size
	}
	if seats := topology.Slots() * topology.Capacity; total > seats {
		return fmt.Sprintf("%d people but only %d seats", total, seats)
	}

	// The parts of a split circle share a team
	teamSeats := topology.Subteams * topology.Capacity
	for _, set := range friends {
		size := 0
		for _, part := range set {
			size += part.Size
		}
		if size > teamSeats {
			return fmt.Sprintf("circle %d has %d people but a team has only %d seats", set[0].Origin, size, teamSeats)
		}
	}

	return ""
}
