// Package document hosts widgets: it instantiates them from a layout,
// mounts each exactly once, delivers input events and publishes every
// value change to observers.
//
// A Document is not safe for concurrent use; callers serialise access, for
// example through an eventloop.Loop.
package document

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alkime/maffie/internal/control"
	"github.com/alkime/maffie/internal/dom"
	"github.com/alkime/maffie/internal/registry"
)

var (
	ErrUnknownWidget = errors.New("unknown widget")
	ErrNoSuchInput   = errors.New("no such input")
)

// Change describes one committed value change, with values rendered as text.
type Change struct {
	WidgetID string    `json:"widget"`
	Tag      string    `json:"tag"`
	Label    string    `json:"label"`
	Old      string    `json:"old"`
	New      string    `json:"new"`
	At       time.Time `json:"at"`
}

// Entry is a widget instance placed in a document.
type Entry struct {
	ID     string
	Tag    string
	Widget control.Widget
}

// Document is a mounted set of widgets.
type Document struct {
	title     string
	entries   []Entry
	byID      map[string]int
	observers []func(Change)
	logger    *slog.Logger
	now       func() time.Time
}

// Build instantiates every widget of layout from reg. Nothing is mounted yet.
func Build(layout Layout, reg *registry.Registry, logger *slog.Logger) (*Document, error) {
	if err := layout.validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	d := &Document{
		title:  layout.Title,
		byID:   make(map[string]int, len(layout.Widgets)),
		logger: logger,
		now:    time.Now,
	}

	for _, spec := range layout.Widgets {
		w, err := reg.Create(spec.Tag, spec.Label, spec.Attrs)
		if err != nil {
			return nil, fmt.Errorf("widget %q: %w", spec.ID, err)
		}

		entry := Entry{ID: spec.ID, Tag: spec.Tag, Widget: w}
		w.Subscribe(func(ch control.Change) error {
			d.publish(entry, ch)
			return nil
		})

		d.byID[spec.ID] = len(d.entries)
		d.entries = append(d.entries, entry)
	}

	return d, nil
}

// Title returns the layout title.
func (d *Document) Title() string {
	return d.title
}

// Entries returns the widgets in layout order.
func (d *Document) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)

	return out
}

// Widget returns the widget with the given id.
func (d *Document) Widget(id string) (control.Widget, bool) {
	i, ok := d.byID[id]
	if !ok {
		return nil, false
	}

	return d.entries[i].Widget, true
}

// Observe registers fn to receive every change published by the document.
// Observers run synchronously inside the update procedure.
func (d *Document) Observe(fn func(Change)) {
	d.observers = append(d.observers, fn)
}

// MountAll mounts every widget in layout order. Widgets already mounted are
// reported but do not stop the others.
func (d *Document) MountAll() error {
	var errs []error

	for _, e := range d.entries {
		if err := e.Widget.Mount(); err != nil {
			errs = append(errs, fmt.Errorf("mount %q: %w", e.ID, err))
			continue
		}

		d.logger.Debug("widget mounted", "widget", e.ID, "tag", e.Tag, "inputs", len(e.Widget.Inputs()))
	}

	return errors.Join(errs...)
}

// SetInput sets the live value of a widget's input and dispatches an input
// event. A *control.NotifyError in the result means the value was committed
// but some listeners failed.
func (d *Document) SetInput(id string, index int, value string) error {
	w, ok := d.Widget(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWidget, id)
	}

	inputs := w.Inputs()
	if index < 0 || index >= len(inputs) {
		return fmt.Errorf("%w: widget %q has %d input(s), got index %d", ErrNoSuchInput, id, len(inputs), index)
	}

	if err := inputs[index].Input(value); err != nil {
		d.logger.Warn("input handling failed", "widget", id, "input", index, "error", err)
		return fmt.Errorf("widget %q: %w", id, err)
	}

	return nil
}

func (d *Document) publish(e Entry, ch control.Change) {
	c := Change{
		WidgetID: e.ID,
		Tag:      e.Tag,
		Label:    e.Widget.Label(),
		Old:      fmt.Sprint(ch.Old),
		New:      fmt.Sprint(ch.New),
		At:       d.now(),
	}

	d.logger.Debug("widget changed", "widget", c.WidgetID, "old", c.Old, "new", c.New)

	for _, fn := range d.observers {
		fn(c)
	}
}

// Render writes every widget as a custom element whose render fragment sits
// in a declarative open shadow root.
func (d *Document) Render(w io.Writer) error {
	for _, e := range d.entries {
		host := dom.NewElement(e.Tag)
		host.SetAttr("id", e.ID)

		root := dom.NewElement("template")
		root.SetAttr("shadowrootmode", "open")
		host.AppendChild(root)

		frag := e.Widget.Fragment().Clone()
		for _, c := range frag.Children() {
			root.AppendChild(c)
		}

		if err := host.Render(w); err != nil {
			return fmt.Errorf("render %q: %w", e.ID, err)
		}
	}

	return nil
}
