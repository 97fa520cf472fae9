package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jakechorley/circle-teams/pkg/core/model"
	"github.com/jakechorley/circle-teams/pkg/report"
)

// CategoriesCmd creates the categories command
func CategoriesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the study programme categories accepted in the Obory section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("\n%d categories:\n\n", len(model.AllCategories()))
			for _, c := range model.AllCategories() {
				swatch := lipgloss.NewStyle().
					Background(lipgloss.Color(report.CategoryColor(c))).
					Render("   ")
				fmt.Printf("  %s %s\n", swatch, c)
			}
			fmt.Println()
			return nil
		},
	}
}
