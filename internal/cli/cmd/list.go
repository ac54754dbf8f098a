package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/siteperm/internal/domain/entity"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the default decision and all per-origin decisions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var def entity.Decision
		var allowed, blocked []entity.Origin
		var err error

		syncErr := app.Control.Sync(func(ctx context.Context) {
			if def, err = app.Service.DefaultDecision(ctx); err != nil {
				return
			}
			if allowed, err = app.Service.AllowedOrigins(ctx); err != nil {
				return
			}
			blocked, err = app.Service.BlockedOrigins(ctx)
		})
		if syncErr != nil {
			return syncErr
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Default: %s\n", def)

		fmt.Fprintf(out, "\nAllowed (%d):\n", len(allowed))
		for _, o := range allowed {
			fmt.Fprintf(out, "  %s\n", o)
		}

		fmt.Fprintf(out, "\nBlocked (%d):\n", len(blocked))
		for _, o := range blocked {
			fmt.Fprintf(out, "  %s\n", o)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
