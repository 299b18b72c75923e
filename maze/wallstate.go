package maze

// WallState is the three-valued state of a wall: a wall is
// either Unchecked, or Checked and known to be either absent or present.
// Two bits per wall; once Checked it never reverts to Unchecked (the
// monotonicity invariant is enforced by callers — Store.Update is an
// unconditional write).
type WallState uint8

const (
	Unchecked WallState = iota
	CheckedAbsent
	CheckedPresent
)

// IsChecked reports whether the wall has been observed.
func (s WallState) IsChecked() bool {
	return s == CheckedAbsent || s == CheckedPresent
}

// Passable reports whether a robot can drive through this wall under the
// explorer's optimistic assumption: Unchecked walls are treated as absent.
func (s WallState) Passable() bool {
	return s != CheckedPresent
}

func (s WallState) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case CheckedAbsent:
		return "absent"
	case CheckedPresent:
		return "present"
	default:
		return "invalid"
	}
}
