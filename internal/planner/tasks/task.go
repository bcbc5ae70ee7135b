package tasks

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	logx "github.com/wayfarer-core-poc/server/pkg/logger"
)

type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Task is the handle of one background job. It completes exactly once, with a value or an error.
type Task[T any] struct {
	id      string
	name    string
	started time.Time
	done    chan struct{}

	mu     sync.Mutex
	value  T
	err    error
	status Status
}

// Go runs fn on its own goroutine. The job keeps running when ctx is cancelled; cancelling only
// stops callers waiting on it. A panic in fn fails the task instead of crashing the process.
func Go[T any](ctx context.Context, name string, fn func(ctx context.Context) (T, error)) *Task[T] {
	t := &Task[T]{
		id:      ulid.Make().String(),
		name:    name,
		started: time.Now(),
		done:    make(chan struct{}),
		status:  StatusRunning,
	}
	runCtx := context.WithoutCancel(ctx)

	logx.Info().Str("task_id", t.id).Str("task", name).Msg("Task started")
	go t.run(runCtx, fn)
	return t
}

func (t *Task[T]) run(ctx context.Context, fn func(ctx context.Context) (T, error)) {
	var (
		value T
		err   error
	)
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Str("task_id", t.id).Str("task", t.name).Bytes("stack", debug.Stack()).Msgf("Task panicked: %v", r)
			err = fmt.Errorf("task %s panicked: %v", t.name, r)
		}
		t.finish(value, err)
	}()
	value, err = fn(ctx)
}

func (t *Task[T]) finish(value T, err error) {
	t.mu.Lock()
	t.value, t.err = value, err
	t.status = StatusSucceeded
	if err != nil {
		t.status = StatusFailed
	}
	t.mu.Unlock()

	ev := logx.Info()
	if err != nil {
		ev = logx.Warn().Err(err)
	}
	ev.Str("task_id", t.id).Str("task", t.name).Dur("elapsed", time.Since(t.started)).Str("status", string(t.Status())).Msg("Task finished")
	close(t.done)
}

func (t *Task[T]) ID() string { return t.id }

func (t *Task[T]) Name() string { return t.name }

// Done is closed once the task has a result.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

func (t *Task[T]) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Wait blocks until the task finishes or ctx ends. A ctx error does not affect the task.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.Result()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the outcome; before Done is closed it reports the zero value and no error.
func (t *Task[T]) Result() (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value, t.err
}
