package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	errx "github.com/wayfarer-core-poc/server/internal/core/error"
	"github.com/wayfarer-core-poc/server/internal/planner/model"
)

// annotationNeedsModel marks commands that call the language model.
const annotationNeedsModel = "wayfarer/needs-model"

// app carries what the subcommands share once the root has loaded configuration.
type app struct {
	envFile string
	cfg     *AppConfig
	store   model.PlanRepository
	release func()
}

// NewRootCmd builds the wayfarer command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "wayfarer",
		Short:         "Plan trips from travel forums, parks and encyclopedia pages",
		Long:          `Wayfarer drafts a day-by-day itinerary for a destination, folds in flights and hotels, and keeps every plan with its daily waypoints.`,
		Version:       "0.1.0",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(a.envFile)
			if err != nil {
				return err
			}
			cfg.InitLogger()
			if cmd.Annotations[annotationNeedsModel] == "true" {
				if err := cfg.CheckModel(); err != nil {
					return err
				}
			}
			store, release, err := cfg.OpenStore()
			if err != nil {
				return err
			}
			a.cfg, a.store, a.release = cfg, store, release
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the environment")

	root.AddCommand(
		newPlanCmd(a),
		newShowCmd(a),
		newWaypointsCmd(a),
		newDestinationsCmd(a),
		newClearCmd(a),
	)
	return root
}

// Execute runs the CLI and prints a failure as a single user-facing line.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, errorStyle.Render(errx.UserMessage(err)))
		return 1
	}
	return 0
}

func (a *app) close() {
	if a.release != nil {
		a.release()
	}
}

// Main is the process entry point.
func Main() {
	os.Exit(Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
