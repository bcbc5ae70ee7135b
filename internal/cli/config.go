package cli

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/wayfarer-core-poc/server/internal/core"
	errx "github.com/wayfarer-core-poc/server/internal/core/error"
	"github.com/wayfarer-core-poc/server/internal/planner/collectors"
	"github.com/wayfarer-core-poc/server/internal/planner/graph"
	"github.com/wayfarer-core-poc/server/internal/planner/model"
	"github.com/wayfarer-core-poc/server/internal/planner/repo"
	"github.com/wayfarer-core-poc/server/internal/planner/trips"
	"github.com/wayfarer-core-poc/server/internal/planner/waypoints"
	logx "github.com/wayfarer-core-poc/server/pkg/logger"
	pkgredis "github.com/wayfarer-core-poc/server/pkg/redis"
)

// AppConfig defines all configurable parameters, sourced from environment variables
// (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config
	Store model.StoreConfig

	// LLM provider; checked when a command needs the model
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Planner configs
	Itinerary  model.ItineraryModelConfig
	Retry      model.RetryConfig
	Pipeline   model.PipelineConfig
	Collectors model.CollectorConfig
}

// LoadConfig reads envFile when it exists, then the process environment.
func LoadConfig(envFile string) (*AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logx.Warn().Err(err).Str("file", envFile).Msg("Could not load env file")
		}
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errx.Config("invalid configuration: %v", err)
	}
	return &cfg, nil
}

// InitLogger configures the global logger for the configured environment.
func (c *AppConfig) InitLogger() {
	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(c.Environment)})
}

// CheckModel reports a missing model key. Commands that call the model run it before opening
// the store.
func (c *AppConfig) CheckModel() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errx.Config("GEMINI_API_KEY not set")
	}
	return nil
}

// OpenStore returns the plan repository selected by PLAN_STORE and a function releasing it.
func (c *AppConfig) OpenStore() (model.PlanRepository, func(), error) {
	switch strings.ToLower(strings.TrimSpace(c.Store.Backend)) {
	case "", "file":
		return repo.NewFilePlanRepository(c.Store.Path), func() {}, nil
	case "redis":
		rdb, err := c.Redis.New()
		if err != nil {
			return nil, nil, errx.Config("failed to initialise Redis client: %v", err)
		}
		logx.Debug().Msg("Connected to Redis successfully")
		return repo.NewRedisPlanRepository(rdb, c.Store.Key, 0), func() { _ = rdb.Close() }, nil
	default:
		return nil, nil, errx.Config("unknown PLAN_STORE %q, expected file or redis", c.Store.Backend)
	}
}

// NewPlanner wires the model, collectors, graph and waypoint extractor into a trip service.
// The graph and the extractor share one invoker so every model call is paced together.
func (c *AppConfig) NewPlanner(ctx context.Context, store model.PlanRepository) (*trips.Service, error) {
	graphCfg := graph.Config{
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		Itinerary: c.Itinerary,
		Retry:     c.Retry,
		Pipeline:  c.Pipeline,
		Sources:   collectors.NewSet(c.Collectors),
	}
	invoker, err := graph.NewInvoker(ctx, graphCfg)
	if err != nil {
		return nil, err
	}
	graphCfg.Invoker = invoker

	runner, err := graph.BuildItineraryGraph(ctx, graphCfg)
	if err != nil {
		return nil, err
	}
	return trips.NewService(runner, waypoints.NewExtractor(invoker), store), nil
}

// NewStoreService returns a trip service for commands that never call the model.
func NewStoreService(store model.PlanRepository) *trips.Service {
	return trips.NewService(nil, nil, store)
}
