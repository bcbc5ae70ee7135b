package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	errx "github.com/wayfarer-core-poc/server/internal/core/error"
	"github.com/wayfarer-core-poc/server/internal/planner/model"
	logx "github.com/wayfarer-core-poc/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey    string
	BaseURL   string
	Itinerary *model.ItineraryModelConfig
}

// NewChatModel creates the Gemini chat model shared by every itinerary stage and the waypoint
// extractor. A missing API key is reported before any client is created.
func NewChatModel(ctx context.Context, config ChatModelConfig) (*gemini.ChatModel, error) {
	if config.APIKey == "" {
		return nil, errx.Config("GEMINI_API_KEY not set")
	}
	if config.Itinerary == nil {
		return nil, fmt.Errorf("itinerary model config is nil")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	temperature := config.Itinerary.Temperature
	maxTokens := config.Itinerary.MaxTokens
	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.Itinerary.Model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating itinerary model")
		return nil, fmt.Errorf("error creating itinerary model: %w", err)
	}
	return chatModel, nil
}
