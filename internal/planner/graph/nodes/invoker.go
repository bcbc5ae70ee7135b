package nodes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	errx "github.com/wayfarer-core-poc/server/internal/core/error"
	"github.com/wayfarer-core-poc/server/internal/planner/model"
	logx "github.com/wayfarer-core-poc/server/pkg/logger"
)

// Invoker sends one rendered prompt to the language model and returns the reply text.
type Invoker interface {
	Invoke(ctx context.Context, stage, prompt string) (string, error)
}

// RetryNotify observes each quota retry before the invoker sleeps.
type RetryNotify func(stage string, attempt int, err error, delay time.Duration)

type InvokerOption func(*ChatInvoker)

// WithRetryNotify registers an extra observer for quota retries.
func WithRetryNotify(fn RetryNotify) InvokerOption {
	return func(c *ChatInvoker) { c.notify = fn }
}

// ChatInvoker paces model calls and retries quota errors with exponential backoff.
// Any other model error aborts the call immediately.
type ChatInvoker struct {
	chat      einomodel.BaseChatModel
	modelName string
	retry     model.RetryConfig
	limiter   *rate.Limiter
	notify    RetryNotify
}

func NewChatInvoker(chat einomodel.BaseChatModel, modelName string, retry model.RetryConfig, opts ...InvokerOption) *ChatInvoker {
	if retry.Attempts <= 0 {
		retry.Attempts = 1
	}
	if retry.InitialDelay <= 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay < retry.InitialDelay {
		retry.MaxDelay = retry.InitialDelay * 32
	}

	limit := rate.Inf
	if retry.CallInterval > 0 {
		limit = rate.Every(retry.CallInterval)
	}

	c := &ChatInvoker{
		chat:      chat,
		modelName: modelName,
		retry:     retry,
		limiter:   rate.NewLimiter(limit, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ChatInvoker) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retry.InitialDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = c.retry.MaxDelay
	return b
}

func (c *ChatInvoker) Invoke(ctx context.Context, stage, prompt string) (string, error) {
	// model callbacks report the stage as their name
	ctx = callbacks.ReuseHandlers(ctx, &callbacks.RunInfo{
		Name:      stage,
		Type:      c.modelName,
		Component: components.ComponentOfChatModel,
	})

	attempt := 0
	operation := func() (*schema.Message, error) {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}
		msg, err := c.chat.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
		if err != nil {
			if errx.IsQuota(err) {
				return nil, err
			}
			return nil, backoff.Permanent(errx.WrapModel(err))
		}
		if msg == nil {
			return nil, backoff.Permanent(errx.WrapModel(fmt.Errorf("%s: empty model response", stage)))
		}
		return msg, nil
	}

	msg, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(uint(c.retry.Attempts)),
		backoff.WithNotify(func(err error, delay time.Duration) {
			logx.Warn().
				Err(err).
				Str("stage", stage).
				Int("attempt", attempt).
				Dur("retry_in", delay).
				Msg("Model quota hit, retrying")
			if c.notify != nil {
				c.notify(stage, attempt, err, delay)
			}
		}),
	)
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}
	if err != nil {
		if errx.IsQuota(err) {
			logx.Error().Err(err).Str("stage", stage).Int("attempts", attempt).Msg("Model quota exhausted")
			return "", errx.WrapQuota(err)
		}
		return "", err
	}

	c.logUsage(stage, msg)
	return strings.TrimSpace(msg.Content), nil
}

// logUsage computes and logs usage cost for one stage call.
func (c *ChatInvoker) logUsage(stage string, msg *schema.Message) {
	if msg.ResponseMeta == nil || msg.ResponseMeta.Usage == nil {
		return
	}
	usage := msg.ResponseMeta.Usage
	inC, outC, totalC := model.ComputeCost(usage, model.ResolvePricing(c.modelName))
	logx.Debug().
		Str("stage", stage).
		Str("model", c.modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}

var _ Invoker = (*ChatInvoker)(nil)
