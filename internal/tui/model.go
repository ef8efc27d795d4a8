// Package tui hosts a document in the terminal. Every widget input is
// drawn as a range bar; the focused one is stepped with the arrow keys,
// which feeds input events through the document like a browser would.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alkime/maffie/internal/control"
	"github.com/alkime/maffie/internal/document"
	"github.com/alkime/maffie/internal/tui/components/rangeinput"
	"github.com/alkime/maffie/internal/tui/components/trace"
	"github.com/alkime/maffie/internal/tui/style"
	"github.com/alkime/maffie/pkg/collections"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth     = 30
	historySize  = 64
	coarseFactor = 10
)

// target is one focusable input.
type target struct {
	entry int
	input int
}

// Model is the bubbletea model of a mounted document. It must be the only
// user of the document while the program runs.
type Model struct {
	doc     *document.Document
	entries []document.Entry
	targets []target
	focus   int

	keys KeyMap
	help help.Model
	bar  rangeinput.Model

	history map[string]*collections.Ring[float64]
	last    *document.Change
	failure string
}

// New creates the model for doc, which should already be mounted.
func New(doc *document.Document) *Model {
	m := &Model{
		doc:     doc,
		entries: doc.Entries(),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		bar:     rangeinput.New(barWidth),
		history: make(map[string]*collections.Ring[float64]),
	}

	for i, e := range m.entries {
		m.history[e.ID] = &collections.Ring[float64]{Cap: historySize}
		for j := range e.Widget.Inputs() {
			m.targets = append(m.targets, target{entry: i, input: j})
		}
	}

	doc.Observe(m.record)

	return m
}

// Focused returns the widget id and input index that has focus.
func (m *Model) Focused() (string, int, bool) {
	if len(m.targets) == 0 {
		return "", 0, false
	}

	t := m.targets[m.focus]

	return m.entries[t.entry].ID, t.input, true
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.moveFocus(1)
		case key.Matches(msg, m.keys.Prev):
			m.moveFocus(-1)
		case key.Matches(msg, m.keys.Increase):
			m.step(1)
		case key.Matches(msg, m.keys.Decrease):
			m.step(-1)
		case key.Matches(msg, m.keys.Coarse):
			if msg.String() == "pgdown" {
				m.step(-coarseFactor)
			} else {
				m.step(coarseFactor)
			}
		case msg.String() == "?":
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}

func (m *Model) moveFocus(delta int) {
	if n := len(m.targets); n > 0 {
		m.focus = (m.focus + delta + n) % n
	}
}

func (m *Model) step(steps int) {
	id, index, ok := m.Focused()
	if !ok {
		return
	}

	el := m.entries[m.targets[m.focus].entry].Widget.Inputs()[index]

	m.failure = ""
	if err := m.doc.SetInput(id, index, rangeinput.Nudge(el, steps)); err != nil {
		m.failure = describe(err)
	}
}

// record is the document observer. It runs inside SetInput, so the live
// input value already holds the new value.
func (m *Model) record(c document.Change) {
	m.last = &c

	w, ok := m.doc.Widget(c.WidgetID)
	if !ok || len(w.Inputs()) == 0 {
		return
	}

	el := w.Inputs()[0]
	m.history[c.WidgetID].Push(rangeinput.Bounds(el).Fraction(rangeinput.Current(el)))
}

func describe(err error) string {
	var nerr *control.NotifyError
	if errors.As(err, &nerr) {
		msgs := collections.Apply(nerr.Failures, func(f control.ListenerFailure) string {
			return f.Err.Error()
		})

		return "listener failed: " + strings.Join(msgs, "; ")
	}

	return err.Error()
}

func (m *Model) View() string {
	var sb strings.Builder

	title := m.doc.Title()
	if title == "" {
		title = "maffie"
	}

	sb.WriteString(style.Title.Render(title))
	sb.WriteString("\n\n")

	for i, e := range m.entries {
		sb.WriteString(style.Widget.Render(m.widgetView(i, e)))
		sb.WriteString("\n")
	}

	if m.last != nil {
		sb.WriteString(style.Muted.Render(
			fmt.Sprintf("%s: %s → %s", m.last.Label, orDash(m.last.Old), m.last.New)))
		sb.WriteString("\n")
	}

	if m.failure != "" {
		sb.WriteString(style.Error.Render(m.failure))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

func (m *Model) widgetView(i int, e document.Entry) string {
	lines := []string{style.Label.Render(e.Widget.Label())}

	for j, el := range e.Widget.Inputs() {
		focused := len(m.targets) > 0 && m.targets[m.focus] == target{entry: i, input: j}
		lines = append(lines, m.bar.View(el, focused))
	}

	display := style.Muted.Render("–")
	if text := e.Widget.DisplayText(); text != "" {
		display = style.Display.Render(text)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		append(lines, display+"  "+trace.New(m.history[e.ID], barWidth/2, 1).View())...)
}

func orDash(s string) string {
	if s == "" {
		return "–"
	}

	return s
}
