package control

// State is a control's lifecycle state.
type State int

const (
	Unmounted State = iota
	Idle
	Updating
)

func (s State) String() string {
	switch s {
	case Unmounted:
		return "unmounted"
	case Idle:
		return "idle"
	case Updating:
		return "updating"
	default:
		return "unknown"
	}
}
