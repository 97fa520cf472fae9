package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/circle-teams/cmd/cli/commands"
	"github.com/jakechorley/circle-teams/pkg/utils/logging"
)

var (
	verbose bool
	logDir  string
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "circle-teams",
		Short: "Circle Teams CLI - Assign study circles to teams",
		Long: `A CLI tool that assigns study circles to teams and subteams for every
configured team count and subteam capacity, and exports the distributions.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd.Name())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", logging.DefaultLogDir, "Directory for log files")
	rootCmd.PersistentFlags().StringVarP(&app.ConfigPath, "config", "c", "", "Path to the configuration file (default config.json)")

	// Add all commands
	rootCmd.AddCommand(commands.DistributeCmd(app))
	rootCmd.AddCommand(commands.CategoriesCmd(app))
	rootCmd.AddCommand(commands.ValidateConfigCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and the command context
func initApp(name string) error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(name, logDir, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("command", name))
	return nil
}
