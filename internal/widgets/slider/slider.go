// Package slider provides a labeled range control.
package slider

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alkime/maffie/internal/control"
	"github.com/alkime/maffie/internal/dom"
	"github.com/alkime/maffie/internal/registry"
	"github.com/alkime/maffie/pkg/uictl"
)

// Tag is the custom element tag sliders are registered under.
const Tag = "maffie-slider"

var ErrNoValue = errors.New("slider has no value yet")

//nolint:gochecknoinits // widget kinds define themselves like database/sql drivers
func init() {
	registry.MustDefine(Tag, func(label string, attrs map[string]string) (control.Widget, error) {
		s, err := FromAttrs(label, attrs)
		if err != nil {
			return nil, err
		}

		return s, nil
	})
}

// Slider is a control exposing a single range input. Its value is the
// input's text, exactly as the host reports it.
type Slider struct {
	*control.Control[string]

	cfg Config
}

var (
	_ control.Kind[string] = (*Slider)(nil)
	_ control.Widget       = (*Slider)(nil)
	_ uictl.Dial[float64]  = (*Slider)(nil)
)

// New creates an unmounted slider. The config is copied; nothing is validated.
func New(label string, cfg Config) (*Slider, error) {
	s := &Slider{cfg: cfg.clone()}

	c, err := control.New[string](label, s)
	if err != nil {
		return nil, err
	}

	s.Control = c

	return s, nil
}

// FromAttrs creates a slider from declarative string attributes.
func FromAttrs(label string, attrs map[string]string) (*Slider, error) {
	cfg, err := ParseConfig(attrs)
	if err != nil {
		return nil, fmt.Errorf("slider %q: %w", label, err)
	}

	return New(label, cfg)
}

// Config returns a copy of the slider's configuration.
func (s *Slider) Config() Config {
	return s.cfg.clone()
}

// CreateControls returns one range input carrying every configured option.
func (s *Slider) CreateControls() []*dom.Element {
	in := dom.NewElement("input")
	in.SetAttr("type", "range")

	for _, a := range s.cfg.attrs() {
		in.SetAttr(a.name, a.value)
	}

	return []*dom.Element{in}
}

// UpdateValue returns the text of the first input.
func (s *Slider) UpdateValue(inputs []*dom.Element) string {
	if len(inputs) == 0 {
		return ""
	}

	return inputs[0].Value()
}

// Float parses the committed value as a number.
func (s *Slider) Float() (float64, error) {
	if !s.HasValue() {
		return 0, ErrNoValue
	}

	f, err := strconv.ParseFloat(s.Value(), 64)
	if err != nil {
		return 0, fmt.Errorf("slider %q value: %w", s.Label(), err)
	}

	return f, nil
}

// Read returns the committed value as a number, or 0 when unset or malformed.
func (s *Slider) Read() float64 {
	f, _ := s.Float()
	return f
}
