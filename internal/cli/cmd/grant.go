package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/siteperm/internal/domain/entity"
)

var grantCmd = &cobra.Command{
	Use:   "grant <origin>",
	Short: "Allow notifications from an origin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		origin, err := entity.ParseOrigin(args[0])
		if err != nil {
			return err
		}

		var grantErr error
		if err := app.Control.Sync(func(ctx context.Context) {
			grantErr = app.Service.Grant(ctx, origin)
		}); err != nil {
			return err
		}
		if grantErr != nil {
			return grantErr
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Allowed %s\n", origin)
		return nil
	},
}

var denyCmd = &cobra.Command{
	Use:   "deny <origin>",
	Short: "Block notifications from an origin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		origin, err := entity.ParseOrigin(args[0])
		if err != nil {
			return err
		}

		var denyErr error
		if err := app.Control.Sync(func(ctx context.Context) {
			denyErr = app.Service.Deny(ctx, origin)
		}); err != nil {
			return err
		}
		if denyErr != nil {
			return denyErr
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Blocked %s\n", origin)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(grantCmd)
	rootCmd.AddCommand(denyCmd)
}
