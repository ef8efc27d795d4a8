package document

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidLayout = errors.New("invalid layout")

// WidgetSpec declares one widget instance.
type WidgetSpec struct {
	ID    string            `yaml:"id"`
	Tag   string            `yaml:"tag"`
	Label string            `yaml:"label"`
	Attrs map[string]string `yaml:"attrs,omitempty"`
}

// Layout is the declarative description of a document.
type Layout struct {
	Title   string       `yaml:"title"`
	Widgets []WidgetSpec `yaml:"widgets"`
}

// ParseLayout decodes a YAML layout and checks that ids are present and unique.
func ParseLayout(r io.Reader) (Layout, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var layout Layout
	if err := dec.Decode(&layout); err != nil && !errors.Is(err, io.EOF) {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}

	if err := layout.validate(); err != nil {
		return Layout{}, err
	}

	return layout, nil
}

// LoadLayout reads a layout file.
func LoadLayout(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()

	return ParseLayout(f)
}

func (l Layout) validate() error {
	seen := make(map[string]bool, len(l.Widgets))

	for i, w := range l.Widgets {
		switch {
		case w.ID == "":
			return fmt.Errorf("%w: widget %d has no id", ErrInvalidLayout, i)
		case w.Tag == "":
			return fmt.Errorf("%w: widget %q has no tag", ErrInvalidLayout, w.ID)
		case seen[w.ID]:
			return fmt.Errorf("%w: duplicate widget id %q", ErrInvalidLayout, w.ID)
		}

		seen[w.ID] = true
	}

	return nil
}
