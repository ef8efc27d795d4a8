package uictl

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

// Dial is a control that can read some value.
type Dial[N Number] interface {
	Read() N
}

// Range describes the bounds and increment of a range control.
// A zero Step means the control is continuous ("any").
type Range[N Number] struct {
	Min  N
	Max  N
	Step N
}

// Clamp restricts v to [Min, Max].
func (r Range[N]) Clamp(v N) N {
	if r.Max < r.Min {
		return r.Min
	}

	return min(max(v, r.Min), r.Max)
}

// Nudge moves v by the given number of steps and clamps the result.
// Continuous ranges move by a hundredth of their span instead, and by at
// least 1 when that rounds to zero for integer N.
func (r Range[N]) Nudge(v N, steps int) N {
	step := r.Step
	if step <= 0 {
		step = (r.Max - r.Min) / 100
	}
	if step <= 0 {
		step = 1
	}

	return r.Clamp(v + step*N(steps))
}

// Fraction reports where v sits between Min and Max, from 0 to 1.
func (r Range[N]) Fraction(v N) float64 {
	span := float64(r.Max) - float64(r.Min)
	if span <= 0 {
		return 0
	}

	return (float64(r.Clamp(v)) - float64(r.Min)) / span
}
