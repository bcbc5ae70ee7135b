package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDestinationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "destinations",
		Aliases: []string{"ls"},
		Short:   "List saved destinations",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := NewStoreService(a.store).Destinations(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, subtleStyle.Render("No destinations yet. Add one with: wayfarer destinations add <name>"))
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a destination without planning it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := NewStoreService(a.store).AddDestination(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", args[0])
			return nil
		},
	})
	return cmd
}
