package eventloop_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alkime/maffie/internal/eventloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func start(t *testing.T) (*eventloop.Loop, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	l := eventloop.New(8)

	var wg sync.WaitGroup
	wg.Go(func() {
		_ = l.Run(ctx)
	})

	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})

	return l, cancel
}

func TestDo(t *testing.T) {
	l, _ := start(t)
	ctx := context.Background()

	ran := false
	require.NoError(t, l.Do(ctx, func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)

	boom := errors.New("boom")
	assert.ErrorIs(t, l.Do(ctx, func() error { return boom }), boom)
}

func TestDo_Serialises(t *testing.T) {
	l, _ := start(t)
	ctx := context.Background()

	// unsynchronised counter: the loop is the only goroutine touching it
	counter := 0

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			assert.NoError(t, l.Do(ctx, func() error {
				counter++
				return nil
			}))
		})
	}
	wg.Wait()

	n, err := eventloop.Call(ctx, l, func() (int, error) { return counter, nil })
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}

func TestDo_Panic(t *testing.T) {
	l, _ := start(t)
	ctx := context.Background()

	err := l.Do(ctx, func() error { panic("bad task") })
	assert.ErrorIs(t, err, eventloop.ErrTaskPanic)
	assert.Contains(t, err.Error(), "bad task")

	assert.NoError(t, l.Do(ctx, func() error { return nil }), "loop survives a panicking task")
}

func TestStopped(t *testing.T) {
	l, cancel := start(t)
	cancel()

	require.Eventually(t, func() bool {
		return errors.Is(l.Do(context.Background(), func() error { return nil }), eventloop.ErrStopped)
	}, time.Second, 10*time.Millisecond)
}

func TestRun_Twice(t *testing.T) {
	l, _ := start(t)

	// a completed task proves the first Run is active
	require.NoError(t, l.Do(context.Background(), func() error { return nil }))
	assert.ErrorIs(t, l.Run(context.Background()), eventloop.ErrAlreadyRunning)
}

func TestDo_ContextCancelled(t *testing.T) {
	l := eventloop.New(0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Do(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCall_ContextCancelled(t *testing.T) {
	l, _ := start(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	finished := make(chan struct{})
	got, err := eventloop.Call(ctx, l, func() ([]string, error) {
		defer close(finished)
		time.Sleep(50 * time.Millisecond)

		return []string{"late"}, nil
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, got)

	// the abandoned task still completes on the loop
	<-finished
	v, err := eventloop.Call(context.Background(), l, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestCall_Panic(t *testing.T) {
	l, _ := start(t)

	v, err := eventloop.Call(context.Background(), l, func() (int, error) {
		panic("boom")
	})
	require.ErrorIs(t, err, eventloop.ErrTaskPanic)
	assert.Zero(t, v)
}
