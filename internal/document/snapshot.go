package document

import "fmt"

// InputState is a point-in-time view of one input element.
type InputState struct {
	Index int               `json:"index"`
	Value string            `json:"value"`
	Attrs map[string]string `json:"attrs"`
}

// WidgetState is a point-in-time view of a widget, safe to hand to other
// goroutines.
type WidgetState struct {
	ID       string       `json:"id"`
	Tag      string       `json:"tag"`
	Label    string       `json:"label"`
	State    string       `json:"state"`
	HasValue bool         `json:"hasValue"`
	Value    string       `json:"value"`
	Display  string       `json:"display"`
	Inputs   []InputState `json:"inputs"`
}

// Snapshot returns the state of every widget in layout order.
func (d *Document) Snapshot() []WidgetState {
	out := make([]WidgetState, 0, len(d.entries))
	for _, e := range d.entries {
		out = append(out, snapshot(e))
	}

	return out
}

// WidgetState returns the state of a single widget.
func (d *Document) WidgetState(id string) (WidgetState, error) {
	i, ok := d.byID[id]
	if !ok {
		return WidgetState{}, fmt.Errorf("%w: %q", ErrUnknownWidget, id)
	}

	return snapshot(d.entries[i]), nil
}

func snapshot(e Entry) WidgetState {
	w := e.Widget

	ws := WidgetState{
		ID:      e.ID,
		Tag:     e.Tag,
		Label:   w.Label(),
		State:   w.State().String(),
		Display: w.DisplayText(),
	}

	if v, ok := w.Current(); ok {
		ws.HasValue = true
		ws.Value = fmt.Sprint(v)
	}

	for i, in := range w.Inputs() {
		attrs := make(map[string]string)
		for _, a := range in.Attrs() {
			attrs[a.Key] = a.Val
		}

		ws.Inputs = append(ws.Inputs, InputState{
			Index: i,
			Value: in.Value(),
			Attrs: attrs,
		})
	}

	return ws
}
