package tui_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alkime/maffie/internal/control"
	"github.com/alkime/maffie/internal/document"
	"github.com/alkime/maffie/internal/registry"
	"github.com/alkime/maffie/internal/tui"
	"github.com/alkime/maffie/internal/widgets/slider"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

const mixer = `
title: Mixer
widgets:
  - id: volume
    tag: maffie-slider
    label: Volume
    attrs:
      min: "0"
      max: "10"
      step: "1"
      value: "5"
  - id: pan
    tag: maffie-slider
    label: Pan
    attrs:
      min: "-1"
      max: "1"
      step: any
`

func mountedDoc(t *testing.T) *document.Document {
	t.Helper()

	layout, err := document.ParseLayout(strings.NewReader(mixer))
	require.NoError(t, err)

	doc, err := document.Build(layout, registry.Default, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NoError(t, doc.MountAll())

	return doc
}

func waitFor(t *testing.T, tm *teatest.TestModel, substr string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(buf []byte) bool {
		return bytes.Contains(buf, []byte(substr))
	}, teatest.WithCheckInterval(50*time.Millisecond), teatest.WithDuration(3*time.Second))
}

func TestModel_StepsFocusedInput(t *testing.T) {
	doc := mountedDoc(t)

	tm := teatest.NewTestModel(t, tui.New(doc), teatest.WithInitialTermSize(100, 40))
	waitFor(t, tm, "Mixer")

	tm.Send(tea.KeyMsg{Type: tea.KeyRight})
	waitFor(t, tm, "Volume: – → 6")

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyRight})
	waitFor(t, tm, "Pan: – → 0.02")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	volume, err := doc.WidgetState("volume")
	require.NoError(t, err)
	assert.Equal(t, "6", volume.Value)

	pan, err := doc.WidgetState("pan")
	require.NoError(t, err)
	assert.Equal(t, "0.02", pan.Display)
}

func TestModel_Focus(t *testing.T) {
	m := tui.New(mountedDoc(t))

	id, index, ok := m.Focused()
	require.True(t, ok)
	assert.Equal(t, "volume", id)
	assert.Zero(t, index)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	id, _, _ = m.Focused()
	assert.Equal(t, "pan", id)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	id, _, _ = m.Focused()
	assert.Equal(t, "volume", id, "focus wraps around")

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	id, _, _ = m.Focused()
	assert.Equal(t, "pan", id)
}

func TestModel_CoarseStepClamps(t *testing.T) {
	doc := mountedDoc(t)
	m := tui.New(doc)

	m.Update(tea.KeyMsg{Type: tea.KeyPgUp})

	state, err := doc.WidgetState("volume")
	require.NoError(t, err)
	assert.Equal(t, "10", state.Value)

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	state, err = doc.WidgetState("volume")
	require.NoError(t, err)
	assert.Equal(t, "9", state.Value)
}

func TestModel_ListenerFailure(t *testing.T) {
	doc := mountedDoc(t)

	w, ok := doc.Widget("volume")
	require.True(t, ok)
	s, ok := w.(*slider.Slider)
	require.True(t, ok)
	s.AddListener(control.ListenerFunc[string](func(control.UpdateEvent[string]) error {
		return errors.New("boom")
	}))

	m := tui.New(doc)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})

	view := m.View()
	assert.Contains(t, view, "listener failed: boom")
	assert.Contains(t, view, "Volume: – → 6", "the change is still committed")

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Contains(t, m.View(), "listener failed: boom")
}

func TestModel_EmptyDocument(t *testing.T) {
	doc, err := document.Build(document.Layout{}, registry.Default, nil)
	require.NoError(t, err)

	m := tui.New(doc)
	_, _, ok := m.Focused()
	assert.False(t, ok)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "maffie")
}
