package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jakechorley/circle-teams/pkg/core/model"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	teamStyle    = lipgloss.NewStyle().Bold(true).PaddingLeft(2)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5BF69"))
)

func circleStyle(c model.Category) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color(CategoryColor(c))).
		Padding(0, 1)
}

// RenderSummary renders one line per configuration pair
func RenderSummary(solutions []model.Solution) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Configuration pairs") + "\n")
	for _, sol := range solutions {
		line := fmt.Sprintf("  %-8s %-10s", sol.Name(), sol.Status)
		if sol.Status.Solved() {
			line += fmt.Sprintf(" objective %-4d", sol.Objective)
		} else {
			line += strings.Repeat(" ", len(" objective ")+4)
		}
		line += mutedStyle.Render(fmt.Sprintf(" %s", sol.SolveTime.Round(time.Millisecond)))
		if !sol.Status.Solved() {
			line = warningStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// RenderSolution renders the teams of a solved pair with category-coloured circles
func RenderSolution(sol model.Solution, names TeamNamer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf("Teams %s (%s, objective %d)", sol.Name(), sol.Status, sol.Objective)))

	if !sol.Status.Solved() {
		b.WriteString(warningStyle.Render("  no distribution") + "\n")
		return b.String()
	}

	for _, team := range sol.Distribution {
		fmt.Fprintf(&b, "%s %s\n",
			teamStyle.Render(names.name(team.Index)),
			mutedStyle.Render(fmt.Sprintf("(%d people)", team.Size())))
		for _, sub := range team.Subteams {
			labels := make([]string, 0, len(sub.Circles))
			for _, c := range sub.Circles {
				labels = append(labels, circleStyle(c.Category).Render(c.Label()))
			}
			fmt.Fprintf(&b, "    %d. %3d/%-3d %s\n", sub.Index+1, sub.Size(), sol.SubteamCapacity, strings.Join(labels, " "))
		}
	}
	return b.String()
}

// RenderAll renders the summary followed by every solved pair
func RenderAll(solutions []model.Solution, names TeamNamer) string {
	parts := []string{RenderSummary(solutions)}
	for _, sol := range solved(solutions) {
		parts = append(parts, RenderSolution(sol, names))
	}
	return strings.Join(parts, "\n")
}
