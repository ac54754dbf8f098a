package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/siteperm/internal/domain/entity"
)

var defaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Inspect or change the default decision for unlisted origins",
}

var defaultGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the default decision",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var def entity.Decision
		var getErr error
		if err := app.Control.Sync(func(ctx context.Context) {
			def, getErr = app.Service.DefaultDecision(ctx)
		}); err != nil {
			return err
		}
		if getErr != nil {
			return getErr
		}

		fmt.Fprintln(cmd.OutOrStdout(), def)
		return nil
	},
}

var defaultSetCmd = &cobra.Command{
	Use:   "set <ask|allow|block>",
	Short: "Set the default decision",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		decision := entity.ParseDecision(args[0])
		if decision == entity.DecisionDefault {
			return fmt.Errorf("unknown decision %q (want ask, allow or block)", args[0])
		}

		var setErr error
		if err := app.Control.Sync(func(ctx context.Context) {
			setErr = app.Service.SetDefault(ctx, decision)
		}); err != nil {
			return err
		}
		if setErr != nil {
			return setErr
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default decision set to %s\n", decision)
		return nil
	},
}

func init() {
	defaultCmd.AddCommand(defaultGetCmd)
	defaultCmd.AddCommand(defaultSetCmd)
	rootCmd.AddCommand(defaultCmd)
}
