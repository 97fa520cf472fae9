// Package splitter breaks circles larger than the subteam capacity into parts.
package splitter

import (
	"fmt"

	"github.com/jakechorley/circle-teams/pkg/core/model"
)

// Split returns the working circle list for the given subteam capacity.
//
// Circles that fit are passed through unchanged. A circle larger than capacity
// is replaced by size/capacity full parts and, when the division leaves a
// remainder, one further part holding the remainder. The parts of each split
// circle are returned together as one FriendSet, in part order.
func Split(circles []model.Circle, capacity int) ([]model.Circle, []model.FriendSet) {
	if capacity <= 0 {
		panic(fmt.Sprintf("splitter: capacity must be positive, got %d", capacity))
	}

	working := make([]model.Circle, 0, len(circles))
	var friends []model.FriendSet

	for _, circle := range circles {
		if circle.Size <= capacity {
			working = append(working, circle)
			continue
		}

		full, remainder := circle.Size/capacity, circle.Size%capacity
		parts := make(model.FriendSet, 0, full+1)
		for i := 0; i < full; i++ {
			parts = append(parts, model.NewCirclePart(circle.ID, i, capacity, circle.Category))
		}
		if remainder > 0 {
			parts = append(parts, model.NewCirclePart(circle.ID, full, remainder, circle.Category))
		}

		working = append(working, parts...)
		friends = append(friends, parts)
	}

	return working, friends
}
