// Package cmd provides Cobra CLI commands for siteperm.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/siteperm/internal/cli"
	"github.com/bnema/siteperm/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	ephemeral bool

	rootCmd = &cobra.Command{
		Use:   "siteperm",
		Short: "Per-origin notification permission service",
		Long: `Siteperm manages a profile's per-origin notification permissions.

Decisions (allow, block, ask) are stored per origin in a SQLite-backed
preference store and mirrored into a read-optimized cache. The CLI exposes
the full decision flow, including an interactive permission prompt.

Use 'siteperm list' to inspect the current state, 'siteperm grant' and
'siteperm deny' to record decisions, or 'siteperm request' to run the
interactive request flow a page would trigger.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "schema", "path", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{Ephemeral: ephemeral})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false,
		"run against an in-memory session; nothing is read from or written to the profile")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetBuildInfo sets the build information (called from main before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
