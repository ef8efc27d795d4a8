// Package control implements the abstract widget base: a labeled control
// holding a typed value that is recomputed from its input elements and
// announced to listeners on every change.
//
// Controls are not safe for concurrent use. Hosts call Mount and deliver
// input events from a single goroutine.
package control

import (
	"fmt"
	"slices"
	"sync"

	"github.com/alkime/maffie/internal/dom"
)

// Class markers of a control's render fragment.
const (
	ClassLabel   = "maffie-control-label"
	ClassDisplay = "maffie-control-display"
	ClassInput   = "maffie-control-input"
)

const fragmentTemplate = `
<fieldset>
    <legend class="maffie-control-label"></legend>
    <p class="maffie-control-display"></p>
</fieldset>`

// surface hands out a fresh render fragment per control.
var surface = newTemplateSurface(fragmentTemplate)

func newTemplateSurface(src string) func() (dom.Fragment, error) {
	parsed := sync.OnceValues(func() (dom.Fragment, error) {
		return dom.ParseFragment(src)
	})

	return func() (dom.Fragment, error) {
		tmpl, err := parsed()
		if err != nil {
			return dom.Fragment{}, err
		}

		return tmpl.Clone(), nil
	}
}

// Kind supplies the widget-specific half of a control.
type Kind[V any] interface {
	// CreateControls returns the interactive elements to expose. It is
	// called exactly once, during Mount.
	CreateControls() []*dom.Element
	// UpdateValue derives the logical value from the current state of all
	// inputs owned by the control. It must not have side effects.
	UpdateValue(inputs []*dom.Element) V
}

// Widget is the value-type independent view of a control used by hosts.
type Widget interface {
	Label() string
	Fragment() dom.Fragment
	Mount() error
	State() State
	Inputs() []*dom.Element
	DisplayText() string
	Current() (any, bool)
	Subscribe(fn func(Change) error)
}

var _ Widget = (*Control[int])(nil)

// Control is the base of every widget kind. Kinds embed *Control[V] and
// implement Kind[V].
type Control[V any] struct {
	label     string
	kind      Kind[V]
	owner     Widget
	fragment  dom.Fragment
	display   *dom.Element
	inputs    []*dom.Element
	listeners []UpdateListener[V]
	value     V
	hasValue  bool
	state     State
}

// New creates an unmounted control. When kind itself is a Widget (because
// it embeds the returned control) it is reported as the emitter of events.
// A typed nil kind passes the nil check; Mount reports it with ErrKindPanic.
func New[V any](label string, kind Kind[V]) (*Control[V], error) {
	if kind == nil {
		return nil, &ConstructionError{Label: label, Err: ErrNilKind}
	}

	frag, err := surface()
	if err != nil {
		return nil, &ConstructionError{Label: label, Err: err}
	}

	c := &Control[V]{
		label:    label,
		kind:     kind,
		fragment: frag,
	}

	c.owner = c
	if w, ok := kind.(Widget); ok {
		c.owner = w
	}

	return c, nil
}

// Label returns the label the control was constructed with.
func (c *Control[V]) Label() string {
	return c.label
}

// Fragment returns the control's private render fragment.
func (c *Control[V]) Fragment() dom.Fragment {
	return c.fragment
}

// State returns the lifecycle state.
func (c *Control[V]) State() State {
	return c.state
}

// Value returns the most recently committed value, or the zero value of V
// before the first input event.
func (c *Control[V]) Value() V {
	return c.value
}

// HasValue reports whether any value has been committed yet.
func (c *Control[V]) HasValue() bool {
	return c.hasValue
}

// Current returns the committed value as any.
func (c *Control[V]) Current() (any, bool) {
	return c.value, c.hasValue
}

// Inputs returns the interactive elements wired during Mount.
func (c *Control[V]) Inputs() []*dom.Element {
	return slices.Clone(c.inputs)
}

// DisplayText returns the text currently shown in the display region.
func (c *Control[V]) DisplayText() string {
	if c.display == nil {
		return ""
	}

	return c.display.TextContent()
}

// AddListener appends l to the listeners. Duplicates are not detected.
func (c *Control[V]) AddListener(l UpdateListener[V]) {
	c.listeners = append(c.listeners, l)
}

// Listeners returns the number of registered listeners.
func (c *Control[V]) Listeners() int {
	return len(c.listeners)
}

// Subscribe registers fn as a listener receiving type-erased changes.
func (c *Control[V]) Subscribe(fn func(Change) error) {
	c.AddListener(ListenerFunc[V](func(ev UpdateEvent[V]) error {
		return fn(Change{EmittedBy: ev.EmittedBy, Old: ev.OldValue, New: ev.NewValue})
	}))
}

// Mount renders the label, inserts the kind's controls after the label
// region in order, and wires an input handler to every input element.
// It succeeds once.
func (c *Control[V]) Mount() error {
	if c.state != Unmounted {
		return ErrAlreadyMounted
	}

	label := c.fragment.QuerySelector("." + ClassLabel)
	if label == nil {
		return fmt.Errorf("%w: %s", ErrMissingRegion, ClassLabel)
	}

	display := c.fragment.QuerySelector("." + ClassDisplay)
	if display == nil {
		return fmt.Errorf("%w: %s", ErrMissingRegion, ClassDisplay)
	}

	controls, err := createControls(c.kind)
	if err != nil {
		return err
	}

	label.AppendChild(dom.NewText(c.label))

	anchor := label
	for _, el := range controls {
		if el == nil {
			continue
		}

		el.AddClass(ClassInput)
		anchor.InsertAfter(el)
		anchor = el
	}

	c.display = display
	c.inputs = c.fragment.QuerySelectorAll("input")
	for _, in := range c.inputs {
		in.AddEventListener(dom.EventInput, c.handleInput)
	}

	c.state = Idle

	return nil
}

// handleInput runs the update procedure for one input event. Listener
// failures are returned as *NotifyError after the value is committed.
func (c *Control[V]) handleInput(dom.Event) error {
	if c.state == Updating {
		return ErrReentrantUpdate
	}

	c.state = Updating
	defer func() { c.state = Idle }()

	newValue := c.kind.UpdateValue(slices.Clone(c.inputs))

	err := c.notify(UpdateEvent[V]{
		EmittedBy: c.owner,
		OldValue:  c.value,
		NewValue:  newValue,
	})

	c.display.SetTextContent(fmt.Sprint(newValue))
	c.value = newValue
	c.hasValue = true

	return err
}

func (c *Control[V]) notify(ev UpdateEvent[V]) error {
	// Listeners added during notification see the next change only.
	listeners := slices.Clone(c.listeners)

	var failures []ListenerFailure
	for i, l := range listeners {
		if err := safeNotify(l, ev); err != nil {
			failures = append(failures, ListenerFailure{Index: i, Err: err})
		}
	}

	if len(failures) == 0 {
		return nil
	}

	return &NotifyError{Failures: failures}
}

// createControls runs before the fragment is touched, so a failing kind
// leaves the control unmounted and unchanged.
func createControls[V any](kind Kind[V]) (els []*dom.Element, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrKindPanic, r)
		}
	}()

	return kind.CreateControls(), nil
}

func safeNotify[V any](l UpdateListener[V], ev UpdateEvent[V]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrListenerPanic, r)
		}
	}()

	return l.OnUpdate(ev)
}
