// Package channels fans values out to channel subscribers without letting a
// slow subscriber stall the publisher.
package channels

import (
	"errors"
	"time"
)

var (
	ErrChannelFull    = errors.New("channel full")
	ErrChannelTimeout = errors.New("send timeout")
)

// send delivers msg to ch. A zero timeout never blocks.
func send[T any](ch chan<- T, msg T, timeout time.Duration) error {
	if timeout <= 0 {
		select {
		case ch <- msg:
			return nil
		default:
			return ErrChannelFull
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ch <- msg:
		return nil
	case <-timer.C:
		return ErrChannelTimeout
	}
}
