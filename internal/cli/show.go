package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <destination>",
		Short: "Show the stored itinerary for a destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := NewStoreService(a.store).GetPlan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), RenderPlan(plan))
			return nil
		},
	}
}

func newWaypointsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "waypoints <destination>",
		Short: "List the daily waypoints and directions links of a stored plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := NewStoreService(a.store).GetPlan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), RenderWaypoints(plan))
			return nil
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <destination>",
		Short: "Clear the stored itinerary text of a destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := NewStoreService(a.store).ClearItinerary(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared itinerary for %s\n", args[0])
			return nil
		},
	}
}
