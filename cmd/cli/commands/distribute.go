package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/circle-teams/internal/config"
	"github.com/jakechorley/circle-teams/pkg/core/services"
	"github.com/jakechorley/circle-teams/pkg/report"
)

const (
	FormatXLSX = "xlsx"
	FormatYAML = "yaml"
)

// DefaultOutputFile is the workbook written when --output is not given
const DefaultOutputFile = "distributions.xlsx"

// DistributeCmd creates the distribute command
func DistributeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribute",
		Short: "Distribute circles into teams for every configured team count and subteam size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			countsPath, _ := cmd.Flags().GetString("counts")
			output, _ := cmd.Flags().GetString("output")
			format, _ := cmd.Flags().GetString("format")

			format, err := resolveFormat(format, output)
			if err != nil {
				return err
			}

			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("parallel") {
				cfg.Parallelism, _ = cmd.Flags().GetInt("parallel")
			}
			if cmd.Flags().Changed("time-limit") {
				cfg.SolverTimeLimit, _ = cmd.Flags().GetDuration("time-limit")
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			counts, err := config.LoadCounts(countsPath)
			if err != nil {
				return err
			}

			result, err := services.Distribute(app.Ctx, cfg, counts, app.Logger)
			if err != nil {
				return err
			}

			// Display results, stdout is reserved for the export when writing YAML there
			if output != "-" {
				fmt.Println()
				fmt.Print(report.RenderAll(result.Solutions, cfg.TeamName))
				fmt.Println()
			}

			if err := writeOutput(output, format, result, cfg); err != nil {
				return err
			}

			app.Logger.Info("Distributions written",
				zap.String("run_id", result.RunID),
				zap.String("output", output),
				zap.String("format", format))

			if output != "-" {
				fmt.Printf("✓ %d of %d configurations solved, written to %s\n", result.SolvedCount(), len(result.Solutions), output)
			}
			return nil
		},
	}

	cmd.Flags().String("counts", config.DefaultCountsFile, "Path to the circle occupancy counts")
	cmd.Flags().StringP("output", "o", DefaultOutputFile, "Output file, - writes YAML to stdout")
	cmd.Flags().StringP("format", "f", "", "Output format: xlsx or yaml (default from the output extension)")
	cmd.Flags().Int("parallel", 1, "Number of configurations solved at once")
	cmd.Flags().Duration("time-limit", 0, "Solver time limit per configuration (overrides the config)")

	return cmd
}

// resolveFormat picks the output format from the flag or the output extension
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(output)) {
		case ".yaml", ".yml":
			return FormatYAML, nil
		case ".xlsx":
			return FormatXLSX, nil
		}
		if output == "-" {
			return FormatYAML, nil
		}
		return "", fmt.Errorf("cannot infer output format from %q, use --format", output)
	}

	switch format := strings.ToLower(format); format {
	case FormatXLSX, FormatYAML:
		if format == FormatXLSX && output == "-" {
			return "", fmt.Errorf("xlsx output cannot be written to stdout")
		}
		return format, nil
	default:
		return "", fmt.Errorf("unknown output format %q, expected %s or %s", format, FormatXLSX, FormatYAML)
	}
}

func writeOutput(output, format string, result *services.DistributeResult, cfg *config.Config) error {
	if format == FormatXLSX {
		return report.SaveWorkbook(output, result.Solutions, cfg.SubteamCount, cfg.TeamName)
	}

	if output == "-" {
		return report.WriteYAML(os.Stdout, result.RunID, result.Solutions, cfg.TeamName)
	}

	return writeYAMLFile(output, result, cfg)
}

func writeYAMLFile(output string, result *services.DistributeResult, cfg *config.Config) (err error) {
	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("%s cannot be written: %w", output, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", output, closeErr)
		}
	}()

	return report.WriteYAML(file, result.RunID, result.Solutions, cfg.TeamName)
}
