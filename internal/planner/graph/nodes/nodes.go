package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/wayfarer-core-poc/server/internal/planner/collectors"
	"github.com/wayfarer-core-poc/server/internal/planner/graph/prompts"
	"github.com/wayfarer-core-poc/server/internal/planner/model"
	logx "github.com/wayfarer-core-poc/server/pkg/logger"
)

const (
	// NoFlightData stands in for flight offers when the source fails or returns nothing.
	NoFlightData = "No flight data available."
	// NoHotelData stands in for hotel options when the source fails or returns nothing.
	NoHotelData = "No hotel data available."
)

// DocumentSource gathers reference documents for the draft stage.
type DocumentSource interface {
	Collect(ctx context.Context, destination, interests string, limit int) []*schema.Document
}

// NewInputConverterNode validates the request, fills defaults and seeds the pipeline state.
func NewInputConverterNode(defaultLimit int) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, req model.TripRequest) (model.PipelineState, error) {
		if req.Limit <= 0 {
			req.Limit = defaultLimit
		}
		req = req.Normalized()
		if err := req.Validate(); err != nil {
			return model.PipelineState{}, err
		}
		logx.Debug().
			Str("destination", req.Destination).
			Str("origin", req.Origin).
			Str("date_start", req.DateStart).
			Str("date_end", req.DateEnd).
			Int("limit", req.Limit).
			Msg("Itinerary request accepted")
		return model.NewPipelineState(req), nil
	})
}

// NewDraftNode builds the first itinerary from the collected documents.
func NewDraftNode(inv Invoker, docs DocumentSource) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state model.PipelineState) (model.PipelineState, error) {
		req := state.Request
		collected := docs.Collect(ctx, req.Destination, req.Interests, req.Limit)
		logx.Debug().Int("documents", len(collected)).Str("destination", req.Destination).Msg("Drafting itinerary")

		p, err := prompts.RenderDraft(ctx, req, collected)
		if err != nil {
			return state, err
		}
		draft, err := inv.Invoke(ctx, NodeDraft, p)
		if err != nil {
			return state, fmt.Errorf("draft itinerary: %w", err)
		}
		return state.WithDraft(draft), nil
	})
}

// NewFlightNode asks the model whether flying is worthwhile and folds the offers into the draft.
func NewFlightNode(inv Invoker, flights collectors.FlightSource) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state model.PipelineState) (model.PipelineState, error) {
		req := state.Request
		info, err := flights.FindFlights(ctx, req.Origin, req.Destination, req.DateStart, req.DateEnd)
		info = orPlaceholder(info, err, NoFlightData, "flights")

		p, err := prompts.RenderFlight(ctx, state.WithFlight(info, ""))
		if err != nil {
			return state, err
		}
		itinerary, err := inv.Invoke(ctx, NodeFlight, p)
		if err != nil {
			return state, fmt.Errorf("add flights: %w", err)
		}
		return state.WithFlight(info, itinerary), nil
	})
}

// NewHotelNode asks the model to fold in a recommended hotel unless the traveller is camping.
func NewHotelNode(inv Invoker, hotels collectors.HotelSource) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state model.PipelineState) (model.PipelineState, error) {
		req := state.Request
		info, err := hotels.FindHotels(ctx, req.Destination, req.DateStart, req.DateEnd)
		info = orPlaceholder(info, err, NoHotelData, "hotels")

		p, err := prompts.RenderHotel(ctx, state.WithHotel(info, ""))
		if err != nil {
			return state, err
		}
		itinerary, err := inv.Invoke(ctx, NodeHotel, p)
		if err != nil {
			return state, fmt.Errorf("add hotel: %w", err)
		}
		return state.WithHotel(info, itinerary), nil
	})
}

// NewNormalizeNode gives every activity an explicit time.
func NewNormalizeNode(inv Invoker) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state model.PipelineState) (model.PipelineState, error) {
		p, err := prompts.RenderNormalize(ctx, state.HotelItinerary)
		if err != nil {
			return state, err
		}
		improved, err := inv.Invoke(ctx, NodeNormalize, p)
		if err != nil {
			return state, fmt.Errorf("add times: %w", err)
		}
		return state.WithImproved(improved), nil
	})
}

// NewFilterNode strips everything but days, times and activities, then appends the raw flight
// and hotel text.
func NewFilterNode(inv Invoker) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state model.PipelineState) (model.PipelineState, error) {
		p, err := prompts.RenderFilter(ctx, state.ImprovedItinerary)
		if err != nil {
			return state, err
		}
		filtered, err := inv.Invoke(ctx, NodeFilter, p)
		if err != nil {
			return state, fmt.Errorf("filter itinerary: %w", err)
		}
		final := filtered + "\n" + state.FlightInfo + "\n" + state.HotelInfo
		return state.WithFinal(final), nil
	})
}

// NewSalesPitchNode writes the pitch and places it above the final itinerary.
func NewSalesPitchNode(inv Invoker, words int) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state model.PipelineState) (model.PipelineState, error) {
		p, err := prompts.RenderSalesPitch(ctx, state.FinalItinerary, words)
		if err != nil {
			return state, err
		}
		pitch, err := inv.Invoke(ctx, NodeSalesPitch, p)
		if err != nil {
			return state, fmt.Errorf("sales pitch: %w", err)
		}
		return state.WithSalesPitch(pitch + "\n\n" + state.FinalItinerary), nil
	})
}

func orPlaceholder(info string, err error, placeholder, what string) string {
	if err != nil {
		logx.Warn().Err(err).Msgf("No %s for itinerary, using placeholder", what)
		return placeholder
	}
	if strings.TrimSpace(info) == "" {
		return placeholder
	}
	return info
}
