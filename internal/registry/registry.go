// Package registry maps custom element tags to widget factories.
//
// Kinds are defined at startup, usually from an init function, and the
// registry is frozen before hosts start instantiating widgets.
package registry

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/alkime/maffie/internal/control"
)

var (
	ErrDuplicateTag = errors.New("tag already defined")
	ErrInvalidTag   = errors.New("invalid custom element tag")
	ErrFrozen       = errors.New("registry is frozen")
	ErrUnknownTag   = errors.New("unknown tag")
)

// validTag matches custom element names: lowercase, starting with a letter
// and containing at least one hyphen.
var validTag = regexp.MustCompile(`^[a-z][a-z0-9._]*-[a-z0-9._-]*$`)

// Factory builds an unmounted widget from a label and declarative attributes.
type Factory func(label string, attrs map[string]string) (control.Widget, error)

// Registry is a set of widget kinds keyed by tag. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	kinds  map[string]Factory
	frozen bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{kinds: make(map[string]Factory)}
}

// Define registers factory under tag. Each tag can be defined once.
func (r *Registry) Define(tag string, factory Factory) error {
	if !validTag.MatchString(tag) {
		return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}

	if factory == nil {
		return fmt.Errorf("define %q: nil factory", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("define %q: %w", tag, ErrFrozen)
	}

	if _, ok := r.kinds[tag]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}

	r.kinds[tag] = factory

	return nil
}

// Lookup returns the factory defined for tag.
func (r *Registry) Lookup(tag string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.kinds[tag]

	return f, ok
}

// Create instantiates a widget of the given kind.
func (r *Registry) Create(tag, label string, attrs map[string]string) (control.Widget, error) {
	f, ok := r.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}

	w, err := f(label, attrs)
	if err != nil {
		return nil, fmt.Errorf("create %s %q: %w", tag, label, err)
	}

	return w, nil
}

// Tags returns every defined tag in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.kinds))
	for tag := range r.kinds {
		tags = append(tags, tag)
	}

	slices.Sort(tags)

	return tags
}

// Freeze makes the registry read-only. It is idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.frozen
}

// Default is the process-wide registry widget kinds define themselves in.
var Default = New()

// Define registers factory under tag in the Default registry.
func Define(tag string, factory Factory) error {
	return Default.Define(tag, factory)
}

// MustDefine is like Define but panics on error. Intended for init functions.
func MustDefine(tag string, factory Factory) {
	if err := Define(tag, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory for tag from the Default registry.
func Lookup(tag string) (Factory, bool) {
	return Default.Lookup(tag)
}
