package operator

// Mode is the operator's top-level state.
type Mode int

const (
	Idle Mode = iota
	Search
	FastRun
	ReturnSetup
	Select
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Search:
		return "search"
	case FastRun:
		return "fast_run"
	case ReturnSetup:
		return "return_setup"
	case Select:
		return "select"
	default:
		return "invalid"
	}
}
