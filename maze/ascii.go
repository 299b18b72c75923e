package maze

import "strings"

// Parse reads the canonical maze ASCII format: two lines per
// row, top-to-bottom. The even line of a row encodes that row's top walls
// at column positions 4k+1 ('-' present, space absent); the odd line
// encodes that row's right walls at column positions 4(k+1) ('|' present,
// space absent). Column 0 and the trailing bottom-border line are not
// read; the store's own construction already accounts for that half of
// the perimeter. The top row's top walls and the right column's right
// walls are always kept present, whatever the text holds there. Parse is
// infallible: a short or malformed line yields absent (space) for any
// position past its end, producing an empty interior rather than an error.
func Parse(width int, ascii string) *Store {
	store := NewStore(width)
	lines := strings.Split(ascii, "\n")

	charAt := func(line string, col int) byte {
		if col < 0 || col >= len(line) {
			return ' '
		}
		return line[col]
	}

	for i := 0; i < width; i++ {
		y := width - 1 - i
		topLine := lineAt(lines, 2*i)
		rightLine := lineAt(lines, 2*i+1)
		for x := 0; x < width; x++ {
			topPresent := y == width-1 || charAt(topLine, 4*x+1) == '-'
			state := CheckedAbsent
			if topPresent {
				state = CheckedPresent
			}
			store.Update(Coord{X: x, Y: y, IsTop: true}, state)

			rightPresent := x == width-1 || charAt(rightLine, 4*(x+1)) == '|'
			state = CheckedAbsent
			if rightPresent {
				state = CheckedPresent
			}
			store.Update(Coord{X: x, Y: y, IsTop: false}, state)
		}
	}
	return store
}

func lineAt(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}

// Format renders the store back into the canonical maze ASCII format.
// Format(Parse(width, s)) == s for any s previously produced by Format,
// because every wall this function reads was itself set by a prior Update
// call with exactly the state Format now reproduces.
func Format(store *Store) string {
	width := store.Width()
	var b strings.Builder

	writeTopLine := func(y int) {
		b.WriteByte('+')
		for x := 0; x < width; x++ {
			if store.WallState(Coord{X: x, Y: y, IsTop: true}) == CheckedPresent {
				b.WriteString("---")
			} else {
				b.WriteString("   ")
			}
			b.WriteByte('+')
		}
		b.WriteByte('\n')
	}

	writeRightLine := func(y int) {
		b.WriteByte(' ')
		for x := 0; x < width; x++ {
			b.WriteString("   ")
			if store.WallState(Coord{X: x, Y: y, IsTop: false}) == CheckedPresent {
				b.WriteByte('|')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}

	for y := width - 1; y >= 0; y-- {
		writeTopLine(y)
		writeRightLine(y)
	}
	// Bottom border: never read back by Parse, always closed.
	b.WriteByte('+')
	for x := 0; x < width; x++ {
		b.WriteString("---+")
	}
	return b.String()
}
