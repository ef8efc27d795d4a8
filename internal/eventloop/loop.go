// Package eventloop runs tasks one at a time on a single goroutine, giving
// widget code the single-threaded execution model it is written for.
package eventloop

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrStopped        = errors.New("event loop stopped")
	ErrAlreadyRunning = errors.New("event loop already running")
	ErrTaskPanic      = errors.New("task panicked")
)

// Loop is a serial task queue.
type Loop struct {
	tasks   chan func()
	done    chan struct{}
	started atomic.Bool
}

// New creates a loop whose queue holds up to buffer pending tasks.
func New(buffer int) *Loop {
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run executes tasks until ctx is cancelled. Pending tasks are abandoned.
func (l *Loop) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-l.tasks:
			task()
		}
	}
}

// Post queues fn without waiting for it to run.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs fn on the loop and waits for its result. A panic in fn is
// returned as an error wrapping ErrTaskPanic.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)

	task := func() {
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("%w: %v", ErrTaskPanic, r)
			}
		}()

		result <- fn()
	}

	if err := l.Post(ctx, task); err != nil {
		return err
	}

	select {
	case err := <-result:
		return err
	case <-l.done:
		// the task may have completed just before the loop stopped
		select {
		case err := <-result:
			return err
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

type outcome[T any] struct {
	value T
	err   error
}

// Call runs fn on l and returns its value. When ctx ends first the zero
// value is returned; fn may still run later, but its result is dropped.
func Call[T any](ctx context.Context, l *Loop, fn func() (T, error)) (T, error) {
	done := make(chan outcome[T], 1)

	err := l.Do(ctx, func() error {
		v, err := fn()
		done <- outcome[T]{value: v, err: err}

		return err
	})

	select {
	case o := <-done:
		return o.value, o.err
	default:
		var zero T
		return zero, err
	}
}
