package control

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNilKind         = errors.New("widget kind is nil")
	ErrAlreadyMounted  = errors.New("control already mounted")
	ErrMissingRegion   = errors.New("render fragment is missing a region")
	ErrReentrantUpdate = errors.New("input event delivered during an update")
	ErrListenerPanic   = errors.New("listener panicked")
	ErrKindPanic       = errors.New("widget kind panicked creating controls")
)

// ConstructionError reports that a control could not obtain its render
// fragment from the host surface.
type ConstructionError struct {
	Label string
	Err   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construct control %q: %v", e.Label, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// ListenerFailure records one listener that failed during notification.
type ListenerFailure struct {
	// Index is the listener's registration position.
	Index int
	Err   error
}

// NotifyError aggregates listener failures for a single value change.
// The change itself was still displayed and committed.
type NotifyError struct {
	Failures []ListenerFailure
}

func (e *NotifyError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, fmt.Sprintf("listener %d: %v", f.Index, f.Err))
	}

	return fmt.Sprintf("%d listener(s) failed: %s", len(e.Failures), strings.Join(msgs, "; "))
}

func (e *NotifyError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}

	return errs
}
