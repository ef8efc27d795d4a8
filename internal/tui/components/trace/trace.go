// Package trace draws the recent history of a widget's value as a block
// chart, oldest on the left and newest on the right.
package trace

import (
	"strings"

	"github.com/alkime/maffie/internal/tui/style"
	"github.com/alkime/maffie/pkg/collections"
)

// Block characters for fill levels (8 levels, bottom to top).
// Index 0 = empty (space), 1-8 = increasing fill levels.
const blockChars = " ▁▂▃▄▅▆▇█"

// Source supplies samples as fractions of a range, oldest first.
type Source interface {
	Read() []float64
}

// Model renders a Source.
type Model struct {
	source Source
	width  int
	height int
}

// New creates a trace width columns wide and height rows tall. Each column
// is one sample; only the newest width samples are drawn.
func New(source Source, width, height int) Model {
	if height < 1 {
		height = 1
	}

	return Model{
		source: source,
		width:  width,
		height: height,
	}
}

// View renders the trace.
func (m Model) View() string {
	if m.source == nil {
		return m.renderEmpty()
	}

	samples := collections.Tail(m.source.Read(), m.width)
	if len(samples) == 0 {
		return m.renderEmpty()
	}

	// right-align so the newest sample sits in the last column
	levels := make([]int, m.width)
	offset := m.width - len(samples)
	for i, s := range samples {
		levels[offset+i] = m.level(s)
	}

	runes := []rune(blockChars)

	var sb strings.Builder

	for row := 0; row < m.height; row++ {
		if row > 0 {
			sb.WriteString("\n")
		}

		var rowSB strings.Builder

		for _, level := range levels {
			rowSB.WriteRune(runes[m.blockIndexForRow(level, row)])
		}

		sb.WriteString(style.Trace.Render(rowSB.String()))
	}

	return sb.String()
}

// level maps a fraction to 0..height*8. Any non-zero sample shows at least
// the lowest block so that the minimum is distinguishable from no data.
func (m Model) level(fraction float64) int {
	maxLevel := m.height * 8

	switch {
	case fraction <= 0:
		return 1
	case fraction >= 1:
		return maxLevel
	}

	return max(1, int(fraction*float64(maxLevel)+0.5))
}

// blockIndexForRow returns the block index (0-8) for a level at a row.
// Row 0 is the top, row (height-1) is the bottom.
func (m Model) blockIndexForRow(level, row int) int {
	rowFromBottom := m.height - 1 - row
	fill := level - rowFromBottom*8

	if fill <= 0 {
		return 0
	}

	if fill >= 8 {
		return 8
	}

	return fill
}

func (m Model) renderEmpty() string {
	var sb strings.Builder

	for row := 0; row < m.height; row++ {
		if row > 0 {
			sb.WriteString("\n")
		}

		fill := " "
		if row == m.height-1 {
			// Bottom row shows baseline
			fill = "·"
		}

		sb.WriteString(style.Muted.Render(strings.Repeat(fill, m.width)))
	}

	return sb.String()
}
