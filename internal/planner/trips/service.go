package trips

import (
	"context"
	"strings"

	errx "github.com/wayfarer-core-poc/server/internal/core/error"
	"github.com/wayfarer-core-poc/server/internal/planner/graph"
	"github.com/wayfarer-core-poc/server/internal/planner/model"
	"github.com/wayfarer-core-poc/server/internal/planner/tasks"
	logx "github.com/wayfarer-core-poc/server/pkg/logger"
)

// WaypointExtractor derives the per-day locations from itinerary lines, reusing cached when set.
type WaypointExtractor interface {
	Extract(ctx context.Context, steps []string, destination string, cached *model.WaypointSchedule) (*model.WaypointSchedule, error)
}

// Service plans trips and manages the stored plans.
type Service struct {
	runner    graph.Runner
	waypoints WaypointExtractor
	repo      model.PlanRepository
}

func NewService(runner graph.Runner, waypoints WaypointExtractor, repo model.PlanRepository) *Service {
	return &Service{runner: runner, waypoints: waypoints, repo: repo}
}

type planOptions struct {
	refreshWaypoints bool
}

// PlanOption tunes a single Plan call.
type PlanOption func(*planOptions)

// WithRefreshWaypoints extracts the daily waypoints again instead of reusing the stored schedule.
// The stored schedule is only replaced when the whole run succeeds.
func WithRefreshWaypoints() PlanOption {
	return func(o *planOptions) { o.refreshWaypoints = true }
}

// Plan runs the itinerary pipeline, extracts the daily waypoints and stores the plan, replacing
// any earlier plan for the destination. The stored waypoints are kept when present unless
// WithRefreshWaypoints is given. Nothing is saved when any step fails.
func (s *Service) Plan(ctx context.Context, req model.TripRequest, opts ...PlanOption) (*model.Plan, error) {
	var o planOptions
	for _, opt := range opts {
		opt(&o)
	}
	if strings.TrimSpace(req.Prompt) == "" && strings.TrimSpace(req.Interests) == "" {
		return nil, errx.Invalid("prompt is empty")
	}

	state, err := s.runner.Invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	req = state.Request
	steps := SplitSteps(state.Result())

	data, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	cached := data.CachedSchedule(req.Destination)
	if o.refreshWaypoints {
		cached = nil
	}
	schedule, err := s.waypoints.Extract(ctx, steps, req.Destination, cached)
	if err != nil {
		return nil, err
	}

	plan := &model.Plan{
		Destination:    req.Destination,
		Prompt:         req.Prompt,
		Steps:          steps,
		DailyWaypoints: schedule,
		DateStart:      req.DateStart,
		DateEnd:        req.DateEnd,
		Origin:         req.Origin,
	}
	data.PutPlan(plan)
	if err := s.repo.Save(ctx, data); err != nil {
		return nil, err
	}

	logx.Info().
		Str("destination", plan.Destination).
		Int("steps", len(plan.Steps)).
		Int("days", plan.DailyWaypoints.Len()).
		Msg("Plan saved")
	return plan, nil
}

// Submit runs Plan in the background. The returned task finishes once with the plan or an error.
func (s *Service) Submit(ctx context.Context, req model.TripRequest, opts ...PlanOption) *tasks.Task[*model.Plan] {
	return tasks.Go(ctx, "plan "+strings.TrimSpace(req.Destination), func(ctx context.Context) (*model.Plan, error) {
		return s.Plan(ctx, req, opts...)
	})
}

// GetPlan returns the stored plan for a destination.
func (s *Service) GetPlan(ctx context.Context, destination string) (*model.Plan, error) {
	destination = strings.TrimSpace(destination)
	data, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	plan, ok := data.Plan(destination)
	if !ok {
		return nil, errx.NotFound("no plan for %s", destination)
	}
	return plan, nil
}

// Destinations lists destination names in the order they were added.
func (s *Service) Destinations(ctx context.Context) ([]string, error) {
	data, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return data.Destinations, nil
}

// AddDestination records a destination without planning it. Adding a known name is a no-op.
func (s *Service) AddDestination(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errx.Invalid("destination name is empty")
	}
	data, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	data.AddDestination(name)
	return s.repo.Save(ctx, data)
}

// ClearItinerary empties the stored itinerary lines and keeps the rest of the plan.
func (s *Service) ClearItinerary(ctx context.Context, destination string) error {
	return s.updatePlan(ctx, destination, func(p *model.Plan) {
		p.Steps = []string{}
	})
}

func (s *Service) updatePlan(ctx context.Context, destination string, fn func(*model.Plan)) error {
	destination = strings.TrimSpace(destination)
	data, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	plan, ok := data.Plan(destination)
	if !ok {
		return errx.NotFound("no plan for %s", destination)
	}
	fn(plan)
	return s.repo.Save(ctx, data)
}

// SplitSteps splits the pipeline result into the stored itinerary lines.
func SplitSteps(result string) []string {
	return strings.Split(result, "\n")
}
