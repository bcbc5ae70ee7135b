package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wayfarer-core-poc/server/internal/planner/model"
	"github.com/wayfarer-core-poc/server/internal/planner/trips"
)

type planOptions struct {
	request          model.TripRequest
	refreshWaypoints bool
}

func newPlanCmd(a *app) *cobra.Command {
	opts := &planOptions{}
	cmd := &cobra.Command{
		Use:   "plan <destination>",
		Short: "Generate and store an itinerary for a destination",
		Long:  `Generate an itinerary from collected documents, flights and hotels, store it, and extract the daily waypoints. Stored waypoints are reused unless --refresh-waypoints is set.`,
		Args:  cobra.ExactArgs(1),
		Annotations: map[string]string{
			annotationNeedsModel: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			req := opts.request
			req.Destination = args[0]

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, err := a.cfg.NewPlanner(ctx, a.store)
			if err != nil {
				return err
			}
			var planOpts []trips.PlanOption
			if opts.refreshWaypoints {
				planOpts = append(planOpts, trips.WithRefreshWaypoints())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, subtleStyle.Render("Fetching Itinerary…"))
			task := svc.Submit(ctx, req, planOpts...)
			plan, err := task.Wait(ctx)
			if errors.Is(err, context.Canceled) {
				return fmt.Errorf("stopped waiting for task %s", task.ID())
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, RenderPlan(plan))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.request.Prompt, "prompt", "p", "", "what you want to do there")
	f.StringVar(&opts.request.Interests, "interests", "", "interests used for document search (defaults to --prompt)")
	f.StringVarP(&opts.request.Origin, "origin", "o", "", "city the trip starts from")
	f.StringVar(&opts.request.DateStart, "from", "", "first day of the trip (YYYY-MM-DD)")
	f.StringVar(&opts.request.DateEnd, "to", "", "last day of the trip (YYYY-MM-DD)")
	f.IntVar(&opts.request.Limit, "limit", 0, "documents per source (default DOCUMENT_LIMIT)")
	f.BoolVar(&opts.refreshWaypoints, "refresh-waypoints", false, "extract the daily waypoints again")
	return cmd
}
