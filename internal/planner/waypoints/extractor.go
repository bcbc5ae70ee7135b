package waypoints

import (
	"context"
	"fmt"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/compose"

	"github.com/wayfarer-core-poc/server/internal/planner/graph/nodes"
	"github.com/wayfarer-core-poc/server/internal/planner/graph/observers"
	"github.com/wayfarer-core-poc/server/internal/planner/graph/parsers"
	"github.com/wayfarer-core-poc/server/internal/planner/graph/prompts"
	"github.com/wayfarer-core-poc/server/internal/planner/model"
	logx "github.com/wayfarer-core-poc/server/pkg/logger"
)

// Stage is the invoker stage name used for waypoint extraction.
const Stage = "waypoints"

// Extractor turns itinerary lines into a per-day list of locations.
type Extractor struct {
	invoker  nodes.Invoker
	handlers []einocb.Handler
}

// NewExtractor attaches the default observers to every extraction; extra handlers run after them.
func NewExtractor(inv nodes.Invoker, extra ...einocb.Handler) *Extractor {
	return &Extractor{invoker: inv, handlers: append(observers.NewAllCallbacks(), extra...)}
}

// Extract returns cached unchanged when it holds at least one day. Otherwise it asks the model for
// the locations of each day and parses the reply.
func (e *Extractor) Extract(ctx context.Context, steps []string, destination string, cached *model.WaypointSchedule) (*model.WaypointSchedule, error) {
	if !model.ScheduleEmpty(cached) {
		logx.Info().Str("destination", destination).Msg("Waypoints already exist, reusing them")
		return cached, nil
	}

	// runs as its own stage, outside the itinerary graph
	ctx = einocb.InitCallbacks(ctx, &einocb.RunInfo{
		Name:      Stage,
		Type:      "Extractor",
		Component: compose.ComponentOfLambda,
	}, e.handlers...)
	ctx = einocb.OnStart(ctx, steps)

	schedule, err := e.extract(ctx, steps, destination)
	if err != nil {
		_ = einocb.OnError(ctx, err)
		return nil, err
	}
	_ = einocb.OnEnd(ctx, schedule)
	return schedule, nil
}

func (e *Extractor) extract(ctx context.Context, steps []string, destination string) (*model.WaypointSchedule, error) {
	p, err := prompts.RenderWaypoints(ctx, steps)
	if err != nil {
		return nil, err
	}
	reply, err := e.invoker.Invoke(ctx, Stage, p)
	if err != nil {
		return nil, fmt.Errorf("extract waypoints for %s: %w", destination, err)
	}

	schedule := parsers.ParseWaypointSchedule(reply)
	logx.Info().
		Str("destination", destination).
		Strs("days", model.ScheduleDays(schedule)).
		Msg("Extracted waypoint schedule")
	return schedule, nil
}
