package trips

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/wayfarer-core-poc/server/internal/core/error"
	"github.com/wayfarer-core-poc/server/internal/planner/model"
	"github.com/wayfarer-core-poc/server/internal/planner/repo"
	"github.com/wayfarer-core-poc/server/internal/planner/waypoints"
)

type fakeRunner struct {
	pitch string
	err   error
	calls int
}

func (f *fakeRunner) Invoke(_ context.Context, req model.TripRequest) (model.PipelineState, error) {
	f.calls++
	if f.err != nil {
		return model.PipelineState{}, f.err
	}
	return model.NewPipelineState(req.Normalized()).WithSalesPitch(f.pitch), nil
}

type waypointInvoker struct {
	reply string
	err   error
	calls int
}

func (w *waypointInvoker) Invoke(context.Context, string, string) (string, error) {
	w.calls++
	return w.reply, w.err
}

func newService(t *testing.T, runner *fakeRunner) (*Service, *waypointInvoker, model.PlanRepository) {
	t.Helper()
	inv := &waypointInvoker{reply: "Colosseum, Rome, Italy\nstop\nVatican Museums, Rome, Italy\nstop"}
	store := repo.NewFilePlanRepository(filepath.Join(t.TempDir(), "travel_data.json"))
	return NewService(runner, waypoints.NewExtractor(inv), store), inv, store
}

func romeRequest() model.TripRequest {
	return model.TripRequest{
		Destination: "Rome",
		Origin:      "Boston, MA",
		DateStart:   "2025-06-01",
		DateEnd:     "2025-06-03",
		Prompt:      "history and gelato",
	}
}

func TestPlanStoresPlanAndWaypoints(t *testing.T) {
	runner := &fakeRunner{pitch: "Ciao!\n\n**Day 1**\n* **9:00 AM** Colosseum"}
	svc, inv, _ := newService(t, runner)

	plan, err := svc.Plan(context.Background(), romeRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ciao!", "", "**Day 1**", "* **9:00 AM** Colosseum"}, plan.Steps)
	assert.Equal(t, []string{"Day 1", "Day 2"}, model.ScheduleDays(plan.DailyWaypoints))
	assert.Equal(t, 1, inv.calls)

	stored, err := svc.GetPlan(context.Background(), "Rome")
	require.NoError(t, err)
	assert.Equal(t, "history and gelato", stored.Prompt)
	assert.Equal(t, "Boston, MA", stored.Origin)
	assert.Equal(t, "2025-06-01", stored.DateStart)

	dests, err := svc.Destinations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Rome"}, dests)
}

func TestPlanReusesStoredWaypointsUnlessRefreshed(t *testing.T) {
	runner := &fakeRunner{pitch: "Ciao!"}
	svc, inv, _ := newService(t, runner)
	ctx := context.Background()

	_, err := svc.Plan(ctx, romeRequest())
	require.NoError(t, err)
	inv.reply = "Trevi Fountain, Rome, Italy"
	plan, err := svc.Plan(ctx, romeRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)
	assert.Equal(t, []string{"Day 1", "Day 2"}, model.ScheduleDays(plan.DailyWaypoints))

	plan, err = svc.Plan(ctx, romeRequest(), WithRefreshWaypoints())
	require.NoError(t, err)
	assert.Equal(t, 2, inv.calls)
	day1, _ := plan.DailyWaypoints.Get("Day 1")
	assert.Equal(t, []string{"Trevi Fountain, Rome, Italy"}, day1)

	stored, err := svc.GetPlan(ctx, "Rome")
	require.NoError(t, err)
	assert.Equal(t, []string{"Day 1"}, model.ScheduleDays(stored.DailyWaypoints))
}

func TestFailedRefreshKeepsStoredPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("pipeline fails", func(t *testing.T) {
		runner := &fakeRunner{pitch: "Ciao!"}
		svc, inv, _ := newService(t, runner)
		_, err := svc.Plan(ctx, romeRequest())
		require.NoError(t, err)

		runner.err = errx.WrapQuota(errors.New("ResourceExhausted"))
		_, err = svc.Plan(ctx, romeRequest(), WithRefreshWaypoints())
		require.Error(t, err)
		assert.Equal(t, 1, inv.calls)

		stored, err := svc.GetPlan(ctx, "Rome")
		require.NoError(t, err)
		assert.Equal(t, []string{"Day 1", "Day 2"}, model.ScheduleDays(stored.DailyWaypoints))
		assert.Equal(t, []string{"Ciao!"}, stored.Steps)
	})

	t.Run("extraction fails", func(t *testing.T) {
		runner := &fakeRunner{pitch: "Ciao!"}
		svc, inv, _ := newService(t, runner)
		_, err := svc.Plan(ctx, romeRequest())
		require.NoError(t, err)

		runner.pitch = "Buongiorno!"
		inv.err = errx.WrapModel(errors.New("bad request"))
		_, err = svc.Plan(ctx, romeRequest(), WithRefreshWaypoints())
		require.Error(t, err)
		assert.Equal(t, 2, inv.calls)

		stored, err := svc.GetPlan(ctx, "Rome")
		require.NoError(t, err)
		assert.Equal(t, []string{"Day 1", "Day 2"}, model.ScheduleDays(stored.DailyWaypoints))
		assert.Equal(t, []string{"Ciao!"}, stored.Steps)
	})
}

func TestLookupsTrimDestination(t *testing.T) {
	svc, _, _ := newService(t, &fakeRunner{pitch: "Ciao!"})
	ctx := context.Background()
	req := romeRequest()
	req.Destination = " Rome "

	plan, err := svc.Plan(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Rome", plan.Destination)

	stored, err := svc.GetPlan(ctx, " Rome ")
	require.NoError(t, err)
	assert.Equal(t, "Rome", stored.Destination)

	require.NoError(t, svc.ClearItinerary(ctx, " Rome"))
	stored, err = svc.GetPlan(ctx, "Rome")
	require.NoError(t, err)
	assert.Empty(t, stored.Steps)
}

func TestPlanRejectsEmptyPrompt(t *testing.T) {
	runner := &fakeRunner{}
	svc, _, _ := newService(t, runner)
	req := romeRequest()
	req.Prompt = " "

	_, err := svc.Plan(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Error: prompt is empty", errx.UserMessage(err))
	assert.Zero(t, runner.calls)
}

func TestPlanFailureSavesNothing(t *testing.T) {
	runner := &fakeRunner{err: errx.WrapQuota(errors.New("ResourceExhausted"))}
	svc, _, store := newService(t, runner)

	_, err := svc.Plan(context.Background(), romeRequest())
	require.Error(t, err)
	assert.True(t, errx.IsQuota(err))

	data, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, data.Plans)
}

func TestSubmitRunsInBackground(t *testing.T) {
	svc, _, _ := newService(t, &fakeRunner{pitch: "Ciao!"})

	task := svc.Submit(context.Background(), romeRequest())
	plan, err := task.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Rome", plan.Destination)
	assert.NotEmpty(t, task.ID())
}

func TestDestinationsAndMissingPlans(t *testing.T) {
	svc, _, _ := newService(t, &fakeRunner{})
	ctx := context.Background()

	require.NoError(t, svc.AddDestination(ctx, "Oslo"))
	require.NoError(t, svc.AddDestination(ctx, " Oslo "))
	require.NoError(t, svc.AddDestination(ctx, "Kyoto"))
	dests, err := svc.Destinations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Oslo", "Kyoto"}, dests)

	err = svc.AddDestination(ctx, "")
	assert.Equal(t, errx.KindInvalid, errx.KindOf(err))

	_, err = svc.GetPlan(ctx, "Oslo")
	assert.Equal(t, errx.KindNotFound, errx.KindOf(err))
	assert.Equal(t, errx.KindNotFound, errx.KindOf(svc.ClearItinerary(ctx, "Oslo")))
}

func TestClearItineraryKeepsWaypoints(t *testing.T) {
	svc, _, _ := newService(t, &fakeRunner{pitch: "Ciao!"})
	ctx := context.Background()
	_, err := svc.Plan(ctx, romeRequest())
	require.NoError(t, err)

	require.NoError(t, svc.ClearItinerary(ctx, "Rome"))
	plan, err := svc.GetPlan(ctx, "Rome")
	require.NoError(t, err)
	assert.Empty(t, plan.Steps)
	assert.False(t, model.ScheduleEmpty(plan.DailyWaypoints))
}
