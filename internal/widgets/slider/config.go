package slider

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

var (
	ErrUnknownOption = errors.New("unknown slider option")
	ErrNotFinite     = errors.New("number is not finite")
)

// Step is a range increment, or "any" for a continuous slider.
type Step struct {
	Any  bool
	Size float64
}

// AnyStep returns a continuous step.
func AnyStep() *Step {
	return &Step{Any: true}
}

// StepOf returns a fixed increment.
func StepOf(size float64) *Step {
	return &Step{Size: size}
}

func (s Step) String() string {
	if s.Any {
		return "any"
	}

	return formatFloat(s.Size)
}

// Config holds the optional range input options. A nil field is unset and
// the corresponding attribute is omitted; zero values are rendered.
type Config struct {
	Min   *float64
	Max   *float64
	Step  *Step
	Value *float64
	Name  *string
}

// Ptr returns a pointer to v, for filling Config literals.
func Ptr[T any](v T) *T {
	return &v
}

type attr struct {
	name, value string
}

func (c Config) attrs() []attr {
	var out []attr

	if c.Min != nil {
		out = append(out, attr{"min", formatFloat(*c.Min)})
	}

	if c.Max != nil {
		out = append(out, attr{"max", formatFloat(*c.Max)})
	}

	if c.Step != nil {
		out = append(out, attr{"step", c.Step.String()})
	}

	if c.Value != nil {
		out = append(out, attr{"value", formatFloat(*c.Value)})
	}

	if c.Name != nil {
		out = append(out, attr{"name", *c.Name})
	}

	return out
}

func (c Config) clone() Config {
	return Config{
		Min:   clonePtr(c.Min),
		Max:   clonePtr(c.Max),
		Step:  clonePtr(c.Step),
		Value: clonePtr(c.Value),
		Name:  clonePtr(c.Name),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}

// ParseConfig reads a Config from declarative attributes. Present keys are
// set even when empty or zero; unknown keys are rejected. Numbers are
// parsed, so they render normalised ("05" as "5", "1e1" as "10"); NaN and
// infinities are rejected.
func ParseConfig(attrs map[string]string) (Config, error) {
	var cfg Config

	for _, key := range slices.Sorted(maps.Keys(attrs)) {
		raw := attrs[key]

		var err error

		switch key {
		case "min":
			cfg.Min, err = parseFloat(key, raw)
		case "max":
			cfg.Max, err = parseFloat(key, raw)
		case "value":
			cfg.Value, err = parseFloat(key, raw)
		case "step":
			if raw == "any" {
				cfg.Step = AnyStep()
				continue
			}

			var size *float64
			size, err = parseFloat(key, raw)
			if err == nil {
				cfg.Step = StepOf(*size)
			}
		case "name":
			cfg.Name = Ptr(raw)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownOption, key)
		}

		if err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func parseFloat(key, raw string) (*float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("option %s: %w", key, err)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("option %s: %w: %q", key, ErrNotFinite, raw)
	}

	return &f, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
