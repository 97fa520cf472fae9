package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jakechorley/circle-teams/internal/config"
	"github.com/jakechorley/circle-teams/pkg/core/services"
)

// ValidateConfigCmd creates the validate-config command
func ValidateConfigCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-config",
		Short: "Check the configuration and optionally a counts file without solving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}

			configured := 0
			for _, cat := range cfg.Categories {
				configured += len(cat.Circles)
			}

			fmt.Printf("\n✓ Configuration is valid\n\n")
			fmt.Printf("Categories:     %d\n", len(cfg.Categories))
			fmt.Printf("Circles:        %d\n", configured)
			fmt.Printf("Team counts:    %v\n", cfg.TeamCounts)
			fmt.Printf("Subteam sizes:  %v\n", cfg.SubteamSizes)
			fmt.Printf("Subteams:       %d\n", cfg.SubteamCount)
			fmt.Printf("Pairs to solve: %d\n\n", len(services.SweepConfigFrom(cfg).Pairs()))

			countsPath, _ := cmd.Flags().GetString("counts")
			if countsPath == "" {
				return nil
			}

			counts, err := config.LoadCounts(countsPath)
			if err != nil {
				return err
			}
			circles, err := services.BuildCircles(cfg, counts)
			if err != nil {
				return err
			}

			people := 0
			for _, c := range circles {
				people += c.Size
			}
			fmt.Printf("Circles present: %d (%d people)\n", len(circles), people)

			if unknown := unknownCircles(cfg, counts); len(unknown) > 0 {
				fmt.Printf("⚠️  Counts for circles not in the configuration: %v\n", unknown)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("counts", "", "Counts file to check against the configuration")

	return cmd
}

// unknownCircles returns the sorted ids present in counts but not configured
func unknownCircles(cfg *config.Config, counts map[int]int) []int {
	known := make(map[int]bool)
	for _, cat := range cfg.Categories {
		for _, id := range cat.Circles {
			known[id] = true
		}
	}

	var unknown []int
	for id := range counts {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	slices.Sort(unknown)
	return unknown
}
