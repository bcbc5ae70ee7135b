package model

import (
	"encoding/json"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/wayfarer-core-poc/server/internal/core/error"
)

func TestTripRequestNormalized(t *testing.T) {
	in := TripRequest{Destination: "  Rome ", Prompt: " food and history "}
	got := in.Normalized()

	assert.Equal(t, "Rome", got.Destination)
	assert.Equal(t, "food and history", got.Interests)
	assert.Equal(t, "food and history", got.Prompt)
	assert.Equal(t, DefaultDocumentLimit, got.Limit)
	assert.Equal(t, "  Rome ", in.Destination)
}

func TestTripRequestValidate(t *testing.T) {
	ok := TripRequest{Destination: "Rome", DateStart: "2025-06-01", DateEnd: "2025-06-03"}
	assert.NoError(t, ok.Validate())
	assert.NoError(t, TripRequest{Destination: "Rome"}.Validate())

	for name, req := range map[string]TripRequest{
		"no destination": {DateStart: "2025-06-01"},
		"bad start":      {Destination: "Rome", DateStart: "06/01/2025"},
		"bad end":        {Destination: "Rome", DateEnd: "tomorrow"},
		"end before":     {Destination: "Rome", DateStart: "2025-06-03", DateEnd: "2025-06-01"},
	} {
		err := req.Validate()
		assert.Equal(t, errx.KindInvalid, errx.KindOf(err), name)
	}
}

func TestPipelineStateWithersCopy(t *testing.T) {
	s0 := NewPipelineState(TripRequest{Destination: "Oslo"})
	s1 := s0.WithDraft("draft")
	s2 := s1.WithFlight("info", "with flight")

	assert.Empty(t, s0.Draft)
	assert.Equal(t, "draft", s1.Draft)
	assert.Empty(t, s1.FlightInfo)
	assert.Equal(t, "draft", s2.Draft)
	assert.Equal(t, "with flight", s2.FlightItinerary)
	assert.Equal(t, "pitch", s2.WithSalesPitch("pitch").Result())
}

func TestTravelData(t *testing.T) {
	d := NewTravelData()
	d.AddDestination("Oslo")
	d.AddDestination("Oslo")
	d.PutPlan(&Plan{Destination: "Rome"})

	assert.Equal(t, []string{"Oslo", "Rome"}, d.Destinations)
	_, ok := d.Plan("Oslo")
	assert.False(t, ok)
	assert.Nil(t, d.CachedSchedule("Oslo"))

	schedule := NewWaypointSchedule()
	schedule.Set("Day 1", []string{"Colosseum"})
	d.PutPlan(&Plan{Destination: "Rome", DailyWaypoints: schedule})
	assert.False(t, ScheduleEmpty(d.CachedSchedule("Rome")))
	assert.Len(t, d.Destinations, 2)
}

func TestPlanJSONLayout(t *testing.T) {
	schedule := NewWaypointSchedule()
	schedule.Set("Day 2", []string{"b"})
	schedule.Set("Day 1", []string{"a"})
	raw, err := json.Marshal(&Plan{Destination: "X", Prompt: "p", Steps: []string{"s"}, DailyWaypoints: schedule})
	require.NoError(t, err)
	assert.Equal(t, `{"destination":"X","prompt":"p","steps":["s"],"daily_waypoints":{"Day 2":["b"],"Day 1":["a"]}}`, string(raw))
}

func TestComputeCost(t *testing.T) {
	in, out, total := ComputeCost(&schema.TokenUsage{PromptTokens: 1_000_000, CompletionTokens: 500_000}, ResolvePricing("gemini-2.0-flash"))
	assert.InDelta(t, 0.10, in, 1e-9)
	assert.InDelta(t, 0.20, out, 1e-9)
	assert.InDelta(t, 0.30, total, 1e-9)

	_, _, total = ComputeCost(nil, ResolvePricing("gemini-2.0-flash"))
	assert.Zero(t, total)
	assert.Equal(t, Pricing{}, ResolvePricing("unknown-model"))
}
