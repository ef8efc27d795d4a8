package dom

import "errors"

// Dispatch synchronously delivers an event of type typ to every handler
// registered on e, in registration order. Handler errors are joined.
func (e *Element) Dispatch(typ string) error {
	handlers := e.handlers[typ]
	if len(handlers) == 0 {
		return nil
	}

	// Handlers registered while dispatching wait for the next event.
	snapshot := make([]Handler, len(handlers))
	copy(snapshot, handlers)

	ev := Event{Type: typ, Target: e}

	var errs []error
	for _, h := range snapshot {
		if err := h(ev); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Input sets the live value of e and dispatches an input event, the way a
// user interaction would.
func (e *Element) Input(value string) error {
	e.SetValue(value)
	return e.Dispatch(EventInput)
}
