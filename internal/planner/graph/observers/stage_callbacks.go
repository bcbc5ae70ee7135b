package observers

import (
	"context"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/compose"

	logx "github.com/wayfarer-core-poc/server/pkg/logger"
)

type stageStartKey struct{ name string }

// StageFunc is told about every stage that finishes successfully, in execution order.
type StageFunc func(stage string, elapsed time.Duration)

// NewStageHandler logs the start, end and failure of each graph lambda node. onEnd may be nil.
func NewStageHandler(onEnd StageFunc) einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackInput) context.Context {
			if !isStage(info) {
				return ctx
			}
			logx.Debug().Str("stage", info.Name).Msg("Stage started")
			return context.WithValue(ctx, stageStartKey{info.Name}, time.Now())
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackOutput) context.Context {
			if !isStage(info) {
				return ctx
			}
			elapsed := sinceStart(ctx, info.Name)
			logx.Info().Str("stage", info.Name).Dur("elapsed", elapsed).Msg("Stage finished")
			if onEnd != nil {
				onEnd(info.Name, elapsed)
			}
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			if info == nil {
				return ctx
			}
			logx.Error().Err(err).
				Str("component", string(info.Component)).
				Str("stage", info.Name).
				Dur("elapsed", sinceStart(ctx, info.Name)).
				Msg("Stage failed")
			return ctx
		}).
		Build()
}

func isStage(info *einocb.RunInfo) bool {
	return info != nil && info.Component == compose.ComponentOfLambda
}

func sinceStart(ctx context.Context, name string) time.Duration {
	if started, ok := ctx.Value(stageStartKey{name}).(time.Time); ok {
		return time.Since(started)
	}
	return 0
}
