package report

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jakechorley/circle-teams/pkg/core/model"
)

// Document is the YAML export of a sweep
type Document struct {
	RunID     string     `yaml:"run_id"`
	Solutions []Solution `yaml:"solutions"`
}

// Solution is the exported form of one configuration pair
type Solution struct {
	Name            string `yaml:"name"`
	TeamCount       int    `yaml:"team_count"`
	SubteamCapacity int    `yaml:"subteam_capacity"`
	Status          string `yaml:"status"`
	Objective       int    `yaml:"objective,omitempty"`
	SolveTime       string `yaml:"solve_time"`
	Teams           []Team `yaml:"teams,omitempty"`
}

// Team is an exported team
type Team struct {
	Name     string    `yaml:"name"`
	Size     int       `yaml:"size"`
	Subteams []Subteam `yaml:"subteams"`
}

// Subteam is an exported subteam; circles are written as labels
type Subteam struct {
	Index   int      `yaml:"index"`
	Size    int      `yaml:"size"`
	Circles []string `yaml:"circles"`
}

// NewDocument converts a sweep result into its export form
func NewDocument(runID string, solutions []model.Solution, names TeamNamer) Document {
	doc := Document{RunID: runID, Solutions: make([]Solution, 0, len(solutions))}
	for _, sol := range solutions {
		out := Solution{
			Name:            sol.Name(),
			TeamCount:       sol.TeamCount,
			SubteamCapacity: sol.SubteamCapacity,
			Status:          string(sol.Status),
			Objective:       sol.Objective,
			SolveTime:       sol.SolveTime.Round(time.Millisecond).String(),
		}
		for _, team := range sol.Distribution {
			t := Team{Name: names.name(team.Index), Size: team.Size()}
			for _, sub := range team.Subteams {
				labels := make([]string, 0, len(sub.Circles))
				for _, c := range sub.Circles {
					labels = append(labels, c.Label())
				}
				t.Subteams = append(t.Subteams, Subteam{Index: sub.Index, Size: sub.Size(), Circles: labels})
			}
			out.Teams = append(out.Teams, t)
		}
		doc.Solutions = append(doc.Solutions, out)
	}
	return doc
}

// WriteYAML writes every configuration pair, solved or not, as YAML
func WriteYAML(w io.Writer, runID string, solutions []model.Solution, names TeamNamer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(runID, solutions, names)); err != nil {
		return fmt.Errorf("failed to encode solutions: %w", err)
	}
	return enc.Close()
}
