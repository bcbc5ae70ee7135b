package prompts

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-core-poc/server/internal/planner/model"
)

func TestRenderDraftStuffsDocuments(t *testing.T) {
	req := model.TripRequest{
		Destination: "Moab, UT",
		Origin:      "Denver, CO",
		DateStart:   "2025-10-01",
		DateEnd:     "2025-10-04",
		Interests:   "hiking",
		Prompt:      "hiking",
	}
	docs := []*schema.Document{
		{Content: "Arches National Park: arches."},
		nil,
		{Content: "  "},
		{Content: "r/Utah: Delicate Arch at sunset"},
	}

	got, err := RenderDraft(context.Background(), req, docs)
	require.NoError(t, err)
	assert.Equal(t,
		"Answer the question Create an itinerary for a trip to Moab, UT with the following interests: hiking. "+
			"The person taking the trip is starting in Denver, CO. The dates are from: 2025-10-01 to 2025-10-04. "+
			"Make sure each itinerary entry ends with \n using the provided documents as a reference. "+
			"Return list of places from the documents: Arches National Park: arches.\n\nr/Utah: Delicate Arch at sunset",
		got)
}

func TestDraftQuestionAddsDistinctPrompt(t *testing.T) {
	q := DraftQuestion(model.TripRequest{Destination: "Oslo", Interests: "museums", Prompt: "avoid crowds"})
	assert.Contains(t, q, "Additional requests: avoid crowds.")
	assert.NotContains(t, q, "starting in")
}

func TestRenderStagePrompts(t *testing.T) {
	ctx := context.Background()
	state := model.NewPipelineState(model.TripRequest{Destination: "Paris", Origin: "Boston", Interests: "camping"}).
		WithDraft("DRAFT").
		WithFlight("FLIGHTS", "WITH FLIGHT").
		WithHotel("HOTELS", "")

	flight, err := RenderFlight(ctx, state)
	require.NoError(t, err)
	assert.Contains(t, flight, "going from Boston to Paris.")
	assert.Contains(t, flight, "Itinerary:\nDRAFT")
	assert.Contains(t, flight, "Flight information:\nFLIGHTS")

	hotel, err := RenderHotel(ctx, state)
	require.NoError(t, err)
	assert.Contains(t, hotel, "The user's interests are: camping.")
	assert.Contains(t, hotel, "Itinerary:\nWITH FLIGHT")
	assert.Contains(t, hotel, "Hotel information:\nHOTELS")

	normalize, err := RenderNormalize(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, "Ensure this itinerary has times associated with each activity: X", normalize)

	filter, err := RenderFilter(ctx, "Y")
	require.NoError(t, err)
	assert.Equal(t, "Remove any content in the response that is unrelated to times, days, and activities: Y", filter)

	pitch, err := RenderSalesPitch(ctx, "Z", 0)
	require.NoError(t, err)
	assert.Contains(t, pitch, "create the sales pitch for the trip: Z")
	assert.Contains(t, pitch, "350 words or less.")
}

func TestRenderWaypoints(t *testing.T) {
	got, err := RenderWaypoints(context.Background(), []string{"**Day 1**", "* **9:00 AM** Louvre"})
	require.NoError(t, err)
	assert.Contains(t, got, "add the word stop on its own line")
	assert.True(t, len(got) > 0 && got[len(got)-1] != '\n')
	assert.Contains(t, got, "\n\n**Day 1**\n* **9:00 AM** Louvre")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render(context.Background(), "missing", nil)
	assert.Error(t, err)
}
