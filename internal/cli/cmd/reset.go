package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/siteperm/internal/domain/entity"
)

var resetCmd = &cobra.Command{
	Use:   "reset <origin>",
	Short: "Remove an origin's recorded decision",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		origin, err := entity.ParseOrigin(args[0])
		if err != nil {
			return err
		}

		var resetErr error
		if err := app.Control.Sync(func(ctx context.Context) {
			decision, derr := app.Service.GetDecision(ctx, origin)
			if derr != nil {
				resetErr = derr
				return
			}
			switch decision {
			case entity.DecisionAllow:
				resetErr = app.Service.Reset(ctx, origin, true)
			case entity.DecisionBlock:
				resetErr = app.Service.Reset(ctx, origin, false)
			default:
				resetErr = fmt.Errorf("%s has no recorded decision", origin)
			}
		}); err != nil {
			return err
		}
		if resetErr != nil {
			return resetErr
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", origin)
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "reset-all",
	Short: "Remove every recorded per-origin decision",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var resetErr error
		if err := app.Control.Sync(func(ctx context.Context) {
			resetErr = app.Service.ResetAll(ctx)
		}); err != nil {
			return err
		}
		if resetErr != nil {
			return resetErr
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Cleared all per-origin decisions")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(resetAllCmd)
}
