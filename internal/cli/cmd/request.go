package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/siteperm/internal/domain/entity"
	"github.com/bnema/siteperm/internal/permission"
)

var requestCmd = &cobra.Command{
	Use:   "request <origin>",
	Short: "Run the interactive permission request flow for an origin",
	Long: `Run the permission request flow a page would trigger.

If the origin already has a decision (or the default applies), it is
delivered immediately. Otherwise an interactive prompt is shown and the
response is recorded before delivery.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		origin, err := entity.ParseOrigin(args[0])
		if err != nil {
			return err
		}

		completed := make(chan entity.Decision, 1)
		app.Delivery.OnDeliver = func(_ entity.Requester, decision entity.Decision) {
			completed <- decision
		}

		surface := permission.NewSurface()
		defer surface.Destroy()

		requester := entity.Requester{ProcessID: os.Getpid(), RouteID: 1, RequestID: 1}

		var reqErr error
		if err := app.Control.Sync(func(ctx context.Context) {
			reqErr = app.Service.RequestPermission(ctx, origin, requester, surface)
		}); err != nil {
			return err
		}
		if reqErr != nil {
			return reqErr
		}

		decision := <-completed
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", origin, decision)
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <origin>",
	Short: "Query the cached decision for an origin",
	Long: `Answer from the read-optimized cache, the way a renderer-facing
query would: no durable storage is touched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		origin, err := entity.ParseOrigin(args[0])
		if err != nil {
			return err
		}

		// Drain the fast path so the initial cache population has landed.
		if err := app.FastPath.Sync(func(context.Context) {}); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), app.Service.Query(origin))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(requestCmd)
	rootCmd.AddCommand(queryCmd)
}
