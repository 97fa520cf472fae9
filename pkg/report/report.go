// Package report renders and exports the solutions of a distribution sweep.
package report

import (
	"fmt"

	"github.com/jakechorley/circle-teams/pkg/core/model"
)

// TeamNamer returns the display name of the team at index
type TeamNamer func(index int) string

func (n TeamNamer) name(index int) string {
	if n == nil {
		return fmt.Sprintf("Team %d", index+1)
	}
	return n(index)
}

// categoryColors are the fills used for circles of each category
var categoryColors = map[model.Category]string{
	model.CategoryPhysics:              "#37C4E5",
	model.CategoryMathematicalModeling: "#F08BAA",
	model.CategoryComputerScience:      "#8AC75A",
	model.CategoryGeneralMathematics:   "#F08BAA",
	model.CategoryFinancialMathematics: "#F08BAA",
	model.CategoryTeaching:             "#F5BF69",
}

// CategoryColor returns the hex colour of a category, white when unknown
func CategoryColor(c model.Category) string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return "#FFFFFF"
}

func solved(solutions []model.Solution) []model.Solution {
	var out []model.Solution
	for _, sol := range solutions {
		if sol.Status.Solved() {
			out = append(out, sol)
		}
	}
	return out
}
