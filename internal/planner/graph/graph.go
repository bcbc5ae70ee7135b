package graph

import (
	"context"
	"fmt"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/compose"

	"github.com/wayfarer-core-poc/server/internal/planner/collectors"
	"github.com/wayfarer-core-poc/server/internal/planner/graph/documents"
	"github.com/wayfarer-core-poc/server/internal/planner/graph/nodes"
	"github.com/wayfarer-core-poc/server/internal/planner/graph/observers"
	"github.com/wayfarer-core-poc/server/internal/planner/model"
	logx "github.com/wayfarer-core-poc/server/pkg/logger"
)

// GraphName names the compiled pipeline in callbacks and logs.
const GraphName = "itinerary"

// Runner executes the compiled itinerary graph for one trip request.
type Runner interface {
	Invoke(ctx context.Context, req model.TripRequest) (model.PipelineState, error)
}

// Config holds everything needed to compose the itinerary graph end-to-end.
// This is a convenience layer over GraphConfig that also constructs the model invoker and the
// document aggregator.
type Config struct {
	APIKey    string
	BaseURL   string
	Itinerary model.ItineraryModelConfig
	Retry     model.RetryConfig
	Pipeline  model.PipelineConfig
	Sources   collectors.Set
	// Invoker is reused when set, so the graph and the waypoint extractor share one pacer.
	Invoker nodes.Invoker
}

// GraphConfig holds all configuration needed to build the graph
type GraphConfig struct {
	Invoker   nodes.Invoker
	Documents nodes.DocumentSource
	Flights   collectors.FlightSource
	Hotels    collectors.HotelSource
	Pipeline  model.PipelineConfig
}

// GraphBuilder handles the construction of the itinerary graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.TripRequest, model.PipelineState]
}

type graphRunner struct {
	runnable compose.Runnable[model.TripRequest, model.PipelineState]
	handlers []einocb.Handler
}

// NewRunner wraps a compiled graph. The default observers are always attached; extra handlers
// run after them.
func NewRunner(runnable compose.Runnable[model.TripRequest, model.PipelineState], extra ...einocb.Handler) Runner {
	handlers := append(observers.NewAllCallbacks(), extra...)
	return &graphRunner{runnable: runnable, handlers: handlers}
}

func (r *graphRunner) Invoke(ctx context.Context, req model.TripRequest) (model.PipelineState, error) {
	return r.runnable.Invoke(ctx, req, compose.WithCallbacks(r.handlers...))
}

// NewInvoker creates the Gemini chat model and wraps it in the paced, retrying invoker.
func NewInvoker(ctx context.Context, cfg Config) (*nodes.ChatInvoker, error) {
	chat, err := nodes.NewChatModel(ctx, nodes.ChatModelConfig{
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Itinerary: &cfg.Itinerary,
	})
	if err != nil {
		return nil, err
	}
	return nodes.NewChatInvoker(chat, cfg.Itinerary.Model, cfg.Retry), nil
}

// BuildItineraryGraph composes the invoker, aggregator and travel sources, builds the graph, and
// returns a Runner.
func BuildItineraryGraph(ctx context.Context, cfg Config) (Runner, error) {
	inv := cfg.Invoker
	if inv == nil {
		chatInvoker, err := NewInvoker(ctx, cfg)
		if err != nil {
			return nil, err
		}
		inv = chatInvoker
	}

	runnable, err := BuildGraph(ctx, &GraphConfig{
		Invoker:   inv,
		Documents: documents.NewAggregator(cfg.Sources.Documents...),
		Flights:   cfg.Sources.Flights,
		Hotels:    cfg.Sources.Hotels,
		Pipeline:  cfg.Pipeline,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Itinerary graph built successfully")
	return NewRunner(runnable), nil
}

// BuildGraph constructs and returns the compiled itinerary graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.TripRequest, model.PipelineState], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.Invoker == nil {
		return nil, fmt.Errorf("model invoker is nil")
	}
	if config.Documents == nil {
		return nil, fmt.Errorf("document source is nil")
	}
	if config.Flights == nil {
		config.Flights = collectors.Unavailable{Source: "flights"}
	}
	if config.Hotels == nil {
		config.Hotels = collectors.Unavailable{Source: "hotels"}
	}

	builder := &GraphBuilder{
		config: config,
		graph:  compose.NewGraph[model.TripRequest, model.PipelineState](),
	}
	if err := builder.addNodes(); err != nil {
		return nil, err
	}
	if err := builder.addEdges(); err != nil {
		return nil, err
	}
	return builder.compile(ctx)
}

// addNodes adds the input converter and every stage
func (b *GraphBuilder) addNodes() error {
	c := b.config
	stages := []struct {
		key    string
		lambda *compose.Lambda
	}{
		{nodes.NodeInputConverter, nodes.NewInputConverterNode(c.Pipeline.DocumentLimit)},
		{nodes.NodeDraft, nodes.NewDraftNode(c.Invoker, c.Documents)},
		{nodes.NodeFlight, nodes.NewFlightNode(c.Invoker, c.Flights)},
		{nodes.NodeHotel, nodes.NewHotelNode(c.Invoker, c.Hotels)},
		{nodes.NodeNormalize, nodes.NewNormalizeNode(c.Invoker)},
		{nodes.NodeFilter, nodes.NewFilterNode(c.Invoker)},
		{nodes.NodeSalesPitch, nodes.NewSalesPitchNode(c.Invoker, c.Pipeline.SalesPitchWords)},
	}
	for _, s := range stages {
		if err := b.graph.AddLambdaNode(s.key, s.lambda, compose.WithNodeName(s.key)); err != nil {
			logx.Error().Err(err).Str("node", s.key).Msg("Error adding node")
			return fmt.Errorf("error adding node %s: %w", s.key, err)
		}
	}
	return nil
}

// addEdges chains the stages in their fixed order
func (b *GraphBuilder) addEdges() error {
	chain := append([]string{compose.START, nodes.NodeInputConverter}, nodes.StageOrder...)
	chain = append(chain, compose.END)

	for i := 0; i+1 < len(chain); i++ {
		if err := b.graph.AddEdge(chain[i], chain[i+1]); err != nil {
			logx.Error().Err(err).Str("from", chain[i]).Str("to", chain[i+1]).Msg("Error adding edge")
			return fmt.Errorf("error adding edge %s -> %s: %w", chain[i], chain[i+1], err)
		}
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.TripRequest, model.PipelineState], error) {
	runnable, err := b.graph.Compile(ctx,
		compose.WithGraphName(GraphName),
		compose.WithMaxRunSteps(2*(len(nodes.StageOrder)+1)),
	)
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
