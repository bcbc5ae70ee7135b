package prompts

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/wayfarer-core-poc/server/internal/planner/model"
)

//go:embed template/*.txt
var templates embed.FS

// Template names, one file per stage under template/.
const (
	Draft      = "draft"
	Flight     = "flight"
	Hotel      = "hotel"
	Normalize  = "normalize"
	Filter     = "filter"
	SalesPitch = "sales_pitch"
	Waypoints  = "waypoints"
)

// Render formats the named template via the Eino prompt component so prompt callbacks fire.
func Render(ctx context.Context, name string, vars map[string]any) (string, error) {
	raw, err := templates.ReadFile("template/" + name + ".txt")
	if err != nil {
		return "", fmt.Errorf("%s prompt: %w", name, err)
	}

	// prompt callbacks report the template name
	ctx = callbacks.ReuseHandlers(ctx, &callbacks.RunInfo{
		Name:      name,
		Type:      "GoTemplate",
		Component: components.ComponentOfPrompt,
	})
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(strings.TrimRight(string(raw), "\n")),
	)
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("%s prompt render: %w", name, err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("%s prompt render: empty result", name)
	}
	return msgs[0].Content, nil
}

// DraftQuestion is the trip question answered from the collected documents.
func DraftQuestion(req model.TripRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create an itinerary for a trip to %s with the following interests: %s. ", req.Destination, req.Interests)
	if req.Origin != "" {
		fmt.Fprintf(&b, "The person taking the trip is starting in %s. ", req.Origin)
	}
	if req.DateStart != "" || req.DateEnd != "" {
		fmt.Fprintf(&b, "The dates are from: %s to %s. ", req.DateStart, req.DateEnd)
	}
	if req.Prompt != "" && req.Prompt != req.Interests {
		fmt.Fprintf(&b, "Additional requests: %s. ", req.Prompt)
	}
	b.WriteString("Make sure each itinerary entry ends with \n")
	return b.String()
}

// RenderDraft stuffs every document into a single prompt, separated by blank lines.
func RenderDraft(ctx context.Context, req model.TripRequest, docs []*schema.Document) (string, error) {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		if d == nil || strings.TrimSpace(d.Content) == "" {
			continue
		}
		parts = append(parts, d.Content)
	}
	return Render(ctx, Draft, map[string]any{
		"Question": DraftQuestion(req),
		"Context":  strings.Join(parts, "\n\n"),
	})
}

func RenderFlight(ctx context.Context, state model.PipelineState) (string, error) {
	return Render(ctx, Flight, map[string]any{
		"Origin":      state.Request.Origin,
		"Destination": state.Request.Destination,
		"Itinerary":   state.Draft,
		"FlightInfo":  state.FlightInfo,
	})
}

func RenderHotel(ctx context.Context, state model.PipelineState) (string, error) {
	return Render(ctx, Hotel, map[string]any{
		"Interests": state.Request.Interests,
		"Itinerary": state.FlightItinerary,
		"HotelInfo": state.HotelInfo,
	})
}

func RenderNormalize(ctx context.Context, itinerary string) (string, error) {
	return Render(ctx, Normalize, map[string]any{"Itinerary": itinerary})
}

func RenderFilter(ctx context.Context, itinerary string) (string, error) {
	return Render(ctx, Filter, map[string]any{"Itinerary": itinerary})
}

// RenderSalesPitch bounds the pitch to words; non-positive values fall back to 350.
func RenderSalesPitch(ctx context.Context, itinerary string, words int) (string, error) {
	if words <= 0 {
		words = 350
	}
	return Render(ctx, SalesPitch, map[string]any{"Itinerary": itinerary, "Words": words})
}

// RenderWaypoints asks for one location per line with "stop" closing each day.
func RenderWaypoints(ctx context.Context, steps []string) (string, error) {
	return Render(ctx, Waypoints, map[string]any{"Itinerary": strings.Join(steps, "\n")})
}
