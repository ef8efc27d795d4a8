package channels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSend(t *testing.T) {
	t.Run("non-blocking", func(t *testing.T) {
		t.Run("success - buffered channel with capacity", func(t *testing.T) {
			ch := make(chan int, 2)
			assert.NoError(t, send(ch, 42, 0))
			assert.Equal(t, 42, <-ch)
		})

		t.Run("full - buffered channel", func(t *testing.T) {
			ch := make(chan int, 1)
			ch <- 1
			assert.ErrorIs(t, send(ch, 42, 0), ErrChannelFull)
		})

		t.Run("full - unbuffered with no receiver", func(t *testing.T) {
			ch := make(chan int)
			assert.ErrorIs(t, send(ch, 42, 0), ErrChannelFull)
		})
	})

	t.Run("with timeout", func(t *testing.T) {
		t.Run("success - unbuffered with receiver", func(t *testing.T) {
			ch := make(chan int)
			go func() { <-ch }()
			assert.NoError(t, send(ch, 42, 50*time.Millisecond))
		})

		t.Run("timeout - buffered channel full", func(t *testing.T) {
			ch := make(chan int, 1)
			ch <- 1
			assert.ErrorIs(t, send(ch, 42, time.Millisecond), ErrChannelTimeout)
		})
	})
}
