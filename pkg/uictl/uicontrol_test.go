package uictl_test

import (
	"testing"

	"github.com/alkime/maffie/pkg/uictl"
	"github.com/stretchr/testify/assert"
)

func TestRange(t *testing.T) {
	r := uictl.Range[float64]{Min: 0, Max: 10, Step: 1}

	t.Run("clamp", func(t *testing.T) {
		assert.InDelta(t, 0.0, r.Clamp(-3), 1e-9)
		assert.InDelta(t, 10.0, r.Clamp(42), 1e-9)
		assert.InDelta(t, 5.5, r.Clamp(5.5), 1e-9)
	})

	t.Run("nudge", func(t *testing.T) {
		assert.InDelta(t, 6.0, r.Nudge(5, 1), 1e-9)
		assert.InDelta(t, 3.0, r.Nudge(5, -2), 1e-9)
		assert.InDelta(t, 10.0, r.Nudge(9, 5), 1e-9)
	})

	t.Run("continuous nudge", func(t *testing.T) {
		c := uictl.Range[float64]{Min: 0, Max: 200}
		assert.InDelta(t, 52.0, c.Nudge(50, 1), 1e-9)
	})

	t.Run("fraction", func(t *testing.T) {
		assert.InDelta(t, 0.5, r.Fraction(5), 1e-9)
		assert.InDelta(t, 1.0, r.Fraction(11), 1e-9)
		assert.InDelta(t, 0.0, uictl.Range[int]{Min: 3, Max: 3}.Fraction(3), 1e-9)
	})

	t.Run("integer range", func(t *testing.T) {
		i := uictl.Range[int]{Min: 0, Max: 100, Step: 5}
		assert.Equal(t, 15, i.Nudge(10, 1))
		assert.Equal(t, 0, i.Nudge(3, -1))
	})

	t.Run("continuous integer range", func(t *testing.T) {
		i := uictl.Range[int]{Min: 0, Max: 10}
		assert.Equal(t, 6, i.Nudge(5, 1))
		assert.Equal(t, 3, i.Nudge(5, -2))
		assert.Equal(t, 10, i.Nudge(10, 1))
	})
}
