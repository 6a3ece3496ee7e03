package tactics

import "gomoku/game"

// PatternKind enumerates the threat shapes a single placement can create on
// one axis, strongest first.
type PatternKind int

const (
	Five PatternKind = iota
	OpenFour
	FourGap
	ClosedFour
	OpenThree
	OpenThreeGap
	OpenTwo
	OpenTwoGap
	numPatternKinds
)

func (k PatternKind) String() string {
	switch k {
	case Five:
		return "five"
	case OpenFour:
		return "open-four"
	case FourGap:
		return "four-with-gap"
	case ClosedFour:
		return "closed-four"
	case OpenThree:
		return "open-three"
	case OpenThreeGap:
		return "open-three-with-gap"
	case OpenTwo:
		return "open-two"
	case OpenTwoGap:
		return "open-two-with-gap"
	default:
		return "unknown"
	}
}

// PatternVector counts the threats a hypothetical placement would create,
// accumulated over all four board axes. A cell can carry several threats at
// once (a double-three contributes two open-three counts).
type PatternVector [numPatternKinds]int

func (v PatternVector) Count(k PatternKind) int {
	return v[k]
}

func (v PatternVector) Has(k PatternKind) bool {
	return v[k] > 0
}

// FourClass counts threats one fill away from a winning four: open fours,
// gapped fours and closed fours.
func (v PatternVector) FourClass() int {
	return v[OpenFour] + v[FourGap] + v[ClosedFour]
}

// ThreeClass counts open threes, gapped or not.
func (v PatternVector) ThreeClass() int {
	return v[OpenThree] + v[OpenThreeGap]
}

// lineScan is the raw geometry of one axis through a hypothetical stone.
type lineScan struct {
	count  int  // contiguous run through the cell, before any gap
	e1, e2 bool // forward/backward run end immediately followed by empty
	count1 int  // run length past a single empty gap, forward
	count2 int  // run length past a single empty gap, backward
	ee1    bool // cell past the forward gap run empty; == e1 when count1 == 0
	ee2    bool // cell past the backward gap run empty; == e2 when count2 == 0
}

// scanAxis measures the line through m along (dr,dc), assuming a stone of
// side sits at m. The board itself is never touched.
func scanAxis(b *game.Board, m game.Move, side game.Cell, dr, dc int) lineScan {
	s := lineScan{count: 1}
	s.count, s.e1, s.count1, s.ee1 = scanDir(b, m, side, dr, dc, s.count)
	s.count, s.e2, s.count2, s.ee2 = scanDir(b, m, side, -dr, -dc, s.count)
	return s
}

// scanDir walks one direction: contiguous run, then at most one empty gap,
// then the run beyond it, then whether the far end is still open.
func scanDir(b *game.Board, m game.Move, side game.Cell, dr, dc, count int) (int, bool, int, bool) {
	r, c := m.Row+dr, m.Col+dc
	for inBounds(r, c) && b[r][c] == side {
		count++
		r += dr
		c += dc
	}
	if !inBounds(r, c) || b[r][c] != game.Empty {
		return count, false, 0, false
	}
	// Run end is open; look for a broken continuation past the single gap.
	gapRun := 0
	r, c = r+dr, c+dc
	for inBounds(r, c) && b[r][c] == side {
		gapRun++
		r += dr
		c += dc
	}
	if gapRun == 0 {
		// No continuation: the effective end is the gap cell itself.
		return count, true, 0, true
	}
	farOpen := inBounds(r, c) && b[r][c] == game.Empty
	return count, true, gapRun, farOpen
}

func inBounds(r, c int) bool {
	return r >= 0 && r < game.Size && c >= 0 && c < game.Size
}

// Classify assumes a stone of side were placed at m and reports every threat
// shape that placement would create across the four axes. A completed five
// short-circuits: the vector then reports only Five.
func Classify(b *game.Board, m game.Move, side game.Cell) PatternVector {
	var v PatternVector
	for _, axis := range game.Axes {
		s := scanAxis(b, m, side, axis[0], axis[1])
		kind, ok := classifyAxis(s)
		if !ok {
			continue
		}
		if kind == Five {
			var five PatternVector
			five[Five] = 1
			return five
		}
		v[kind]++
	}
	return v
}

// classifyAxis applies the threat decision table to one axis scan. Checked
// strongest first so each axis contributes at most one kind.
func classifyAxis(s lineScan) (PatternKind, bool) {
	if s.count >= game.WinLength {
		return Five, true
	}

	switch {
	case s.count1 == 0 && s.count2 == 0:
		return classifySolid(s)
	case s.count1 > 0 && s.count2 > 0:
		return classifyDoubleGap(s)
	default:
		return classifySingleGap(s)
	}
}

// classifySolid handles an unbroken run: openness of the two ends decides.
func classifySolid(s lineScan) (PatternKind, bool) {
	switch {
	case s.count == 4 && s.e1 && s.e2:
		return OpenFour, true
	case s.count == 4 && (s.e1 != s.e2):
		return ClosedFour, true
	case s.count == 3 && s.e1 && s.e2:
		return OpenThree, true
	case s.count == 2 && (s.e1 || s.e2):
		return OpenTwo, true
	}
	return 0, false
}

// classifySingleGap handles a broken run on exactly one side. The combined
// length counts the core run plus the continuation past the gap.
func classifySingleGap(s lineScan) (PatternKind, bool) {
	gapRun, gapOpen := s.count1, s.ee1
	plainOpen := s.e2
	if s.count2 > 0 {
		gapRun, gapOpen = s.count2, s.ee2
		plainOpen = s.e1
	}
	total := s.count + gapRun

	switch {
	case s.count == 4:
		if plainOpen && gapOpen {
			return OpenFour, true
		}
		return ClosedFour, true
	case total > 3:
		if plainOpen || gapOpen || gapRun == 1 {
			return FourGap, true
		}
		return ClosedFour, true
	case total == 3 && plainOpen && gapOpen:
		return OpenThreeGap, true
	case total == 2 && (plainOpen || gapOpen):
		return OpenTwoGap, true
	}
	return 0, false
}

// classifyDoubleGap handles broken runs on both sides. Both immediate ends
// are gap cells and therefore empty, so openness reads the effective ends
// past the continuations.
func classifyDoubleGap(s lineScan) (PatternKind, bool) {
	fwd := s.count + s.count1
	bwd := s.count + s.count2

	switch {
	case fwd > 3 && bwd > 3:
		return OpenFour, true
	case fwd > 3:
		if s.ee1 {
			return FourGap, true
		}
		return ClosedFour, true
	case bwd > 3:
		if s.ee2 {
			return FourGap, true
		}
		return ClosedFour, true
	case (fwd == 3 || bwd == 3) && s.ee1 && s.ee2:
		return OpenThreeGap, true
	case s.ee1 || s.ee2:
		// count, count1, count2 >= 1 puts both combined lengths at 2+.
		// A three whose effective end is blocked downgrades to this row.
		return OpenTwoGap, true
	}
	return 0, false
}
