// Package rangeinput renders and steps <input type="range"> elements in
// the terminal.
package rangeinput

import (
	"math"
	"strconv"

	"github.com/alkime/maffie/internal/dom"
	"github.com/alkime/maffie/internal/tui/style"
	"github.com/alkime/maffie/pkg/uictl"
	"github.com/charmbracelet/bubbles/progress"
)

// Defaults of a range input without min, max or step attributes.
const (
	DefaultMin  = 0.0
	DefaultMax  = 100.0
	DefaultStep = 1.0
)

// Bounds reads the range of el, falling back to the defaults for absent or
// malformed attributes. step="any" yields a continuous range.
func Bounds(el *dom.Element) uictl.Range[float64] {
	r := uictl.Range[float64]{Min: DefaultMin, Max: DefaultMax, Step: DefaultStep}

	if v, ok := attrFloat(el, "min"); ok {
		r.Min = v
	}

	if v, ok := attrFloat(el, "max"); ok {
		r.Max = v
	}

	if s, ok := el.Attr("step"); ok {
		if s == "any" {
			r.Step = 0
		} else if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			r.Step = v
		}
	}

	return r
}

// Current returns the numeric value of el. A missing or malformed value
// sits halfway between the bounds.
func Current(el *dom.Element) float64 {
	r := Bounds(el)

	v, err := strconv.ParseFloat(el.Value(), 64)
	if err != nil {
		return r.Clamp(r.Min + (r.Max-r.Min)/2)
	}

	return r.Clamp(v)
}

// Nudge returns the text value of el moved by steps increments.
func Nudge(el *dom.Element, steps int) string {
	v := Bounds(el).Nudge(Current(el), steps)

	// drop float noise such as 0.30000000000000004
	v = math.Round(v*1e9) / 1e9

	return strconv.FormatFloat(v, 'f', -1, 64)
}

func attrFloat(el *dom.Element, name string) (float64, bool) {
	s, ok := el.Attr(name)
	if !ok {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

// Model draws range inputs as progress bars.
type Model struct {
	bar progress.Model
}

// New creates a renderer whose bars are width cells wide.
func New(width int) Model {
	return Model{
		bar: progress.New(
			progress.WithSolidFill(string(style.Accent)),
			progress.WithWidth(width),
			progress.WithoutPercentage(),
		),
	}
}

// View renders el, marking it when focused.
func (m Model) View(el *dom.Element, focused bool) string {
	marker := "  "
	if focused {
		marker = style.Focus.Render("▸ ")
	}

	r := Bounds(el)
	bounds := style.Muted.Render(
		strconv.FormatFloat(r.Min, 'f', -1, 64) + " … " + strconv.FormatFloat(r.Max, 'f', -1, 64),
	)

	return marker + m.bar.ViewAs(r.Fraction(Current(el))) + " " + bounds
}
