package collections_test

import (
	"testing"

	"github.com/alkime/maffie/pkg/collections"

	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	ints := []int{1, 2, 3, 4}
	squared := collections.Apply(ints, func(i int) int {
		return i * i
	})
	require.Equal(t, []int{1, 4, 9, 16}, squared)

	type widget struct {
		ID    string
		Label string
	}

	ids := collections.Apply([]widget{{"gain", "Gain"}, {"pan", "Pan"}}, func(w widget) string {
		return w.ID
	})
	require.Equal(t, []string{"gain", "pan"}, ids)

	require.Empty(t, collections.Apply(nil, func(i int) int { return i }))
}

func TestTail(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	require.Equal(t, []int{4, 5}, collections.Tail(items, 2))
	require.Equal(t, items, collections.Tail(items, 10))
	require.Nil(t, collections.Tail(items, 0))
}

func TestRing(t *testing.T) {
	r := collections.Ring[string]{Cap: 3}
	require.Empty(t, r.Read())

	for _, v := range []string{"a", "b", "c", "d"} {
		r.Push(v)
	}

	require.Equal(t, 3, r.Len())
	require.Equal(t, []string{"b", "c", "d"}, r.Read())

	got := r.Read()
	got[0] = "z"
	require.Equal(t, "b", r.Read()[0], "Read returns a copy")
}
