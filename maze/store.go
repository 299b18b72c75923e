package maze

// Store is the dense, packed wall-state table for a width x width maze.
// Storage is 2 bits per wall, width*width/2 bytes total for the
// 2*width*width addressable walls.
type Store struct {
	width int
	bits  []byte
}

// NewStore allocates an empty store: every wall Unchecked except the
// representable half of the outer perimeter — the top row's top walls and
// the right column's right walls — which are pre-marked CheckedPresent.
// The other half of the perimeter (the left column's left edges and the
// bottom row's bottom edges) has no coordinate in this scheme at all; it
// is enforced implicitly by the explorer never generating a move across
// it.
func NewStore(width int) *Store {
	s := &Store{
		width: width,
		bits:  make([]byte, (width*width)/2+1),
	}
	for x := 0; x < width; x++ {
		s.Update(Coord{X: x, Y: width - 1, IsTop: true}, CheckedPresent)
		s.Update(Coord{X: width - 1, Y: x, IsTop: false}, CheckedPresent)
	}
	return s
}

// Width returns the maze's configured width.
func (s *Store) Width() int { return s.width }

// WallState returns the current state of a wall in constant time.
func (s *Store) WallState(c Coord) WallState {
	idx := c.index(s.width)
	byteIdx, shift := idx/4, uint((idx%4)*2)
	return WallState((s.bits[byteIdx] >> shift) & 0b11)
}

// Update unconditionally writes a wall's state. Callers enforce the
// monotonicity invariant: once Checked, a wall is never
// written back to Unchecked.
func (s *Store) Update(c Coord, state WallState) {
	idx := c.index(s.width)
	byteIdx, shift := idx/4, uint((idx%4)*2)
	s.bits[byteIdx] = (s.bits[byteIdx] &^ (0b11 << shift)) | (byte(state) << shift)
}
