package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-core-poc/server/internal/planner/model"
	"github.com/wayfarer-core-poc/server/internal/planner/repo"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "travel_data.json")
	t.Setenv("ENVIRONMENT", "testing")
	t.Setenv("PLAN_STORE", "file")
	t.Setenv("PLAN_STORE_PATH", path)
	t.Setenv("GEMINI_API_KEY", "")
	return path
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), append([]string{"--env-file", ""}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestDestinationsCommands(t *testing.T) {
	setupEnv(t)

	code, out, _ := run(t, "destinations")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "No destinations yet")

	code, out, _ = run(t, "destinations", "add", "Oslo")
	require.Equal(t, 0, code)
	assert.Equal(t, "Added Oslo\n", out)

	_, _, _ = run(t, "destinations", "add", "Kyoto")
	code, out, _ = run(t, "destinations")
	require.Equal(t, 0, code)
	assert.Equal(t, "Oslo\nKyoto\n", out)
}

func TestShowMissingPlan(t *testing.T) {
	setupEnv(t)

	code, _, errOut := run(t, "show", "Atlantis")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: no plan for Atlantis")
}

func TestPlanWithoutAPIKeyFailsFast(t *testing.T) {
	setupEnv(t)

	code, _, errOut := run(t, "plan", "Rome", "--prompt", "history")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: GEMINI_API_KEY not set")
}

func TestPlanChecksAPIKeyBeforeOpeningRedis(t *testing.T) {
	setupEnv(t)
	mr := miniredis.RunT(t)
	t.Setenv("PLAN_STORE", "redis")
	t.Setenv("REDIS_URL", "redis://"+mr.Addr()+"/0")

	code, _, errOut := run(t, "plan", "Rome", "--prompt", "history")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: GEMINI_API_KEY not set")
	assert.Zero(t, mr.CommandCount())

	code, out, _ := run(t, "destinations")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "No destinations yet")
	assert.NotZero(t, mr.CommandCount())
}

func TestUnknownStoreBackend(t *testing.T) {
	setupEnv(t)
	t.Setenv("PLAN_STORE", "postgres")

	code, _, errOut := run(t, "destinations")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `unknown PLAN_STORE "postgres"`)
}

func TestShowAndWaypointsRenderStoredPlan(t *testing.T) {
	path := setupEnv(t)

	schedule := model.NewWaypointSchedule()
	schedule.Set("Day 1", []string{"Eiffel Tower, Paris", "Louvre Museum, Paris"})
	data := model.NewTravelData()
	data.PutPlan(&model.Plan{
		Destination: "Paris",
		Steps: []string{
			"Bonjour! Three days of art and pastries.",
			"**Day 1: Icons**",
			"* **9:00 AM** Eiffel Tower",
			"* **1:00 PM** Louvre Museum",
			"No flight data available.",
		},
		DailyWaypoints: schedule,
		DateStart:      "2025-05-27",
		DateEnd:        "2025-05-29",
	})
	require.NoError(t, repo.NewFilePlanRepository(path).Save(context.Background(), data))

	code, out, _ := run(t, "show", "Paris")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Paris (2025-05-27 to 2025-05-29)")
	assert.Contains(t, out, "Bonjour! Three days of art and pastries.")
	assert.Contains(t, out, "Day 1: Icons")
	assert.Contains(t, out, "9:00 AM")
	assert.Contains(t, out, "Louvre Museum")
	assert.Contains(t, out, logisticsHeader)
	assert.Contains(t, out, "No flight data available.")

	code, out, _ = run(t, "waypoints", "Paris")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Trip from Eiffel Tower, Paris to Louvre Museum, Paris")
	assert.Contains(t, out, "https://www.google.com/maps/dir/Eiffel+Tower,+Paris/Louvre+Museum,+Paris")

	code, out, _ = run(t, "clear", "Paris")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Cleared itinerary for Paris")
	code, out, _ = run(t, "show", "Paris")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "No itinerary yet.")
}

func TestRenderWaypointsWithoutSchedule(t *testing.T) {
	assert.Contains(t, RenderWaypoints(&model.Plan{Destination: "Oslo"}), "No waypoints provided.")
}
