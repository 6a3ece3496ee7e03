package tactics

import (
	"testing"

	"gomoku/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// row builds a board from a horizontal fixture on row 7. The pattern string
// is anchored at startCol: 'x' is the classified side, 'o' the opponent,
// '.' empty. The classified cell itself is not part of the pattern string.
func row(side game.Cell, startCol int, pattern string) game.Board {
	var b game.Board
	for i, ch := range pattern {
		m := game.Move{Row: 7, Col: startCol + i}
		switch ch {
		case 'x':
			b.Place(m, side)
		case 'o':
			b.Place(m, side.Opponent())
		}
	}
	return b
}

func TestClassifySolidRuns(t *testing.T) {
	cell := game.Move{Row: 7, Col: 3}

	cases := []struct {
		name    string
		pattern string // anchored at col 0; '-' is the classified cell at col 3
		want    PatternKind
	}{
		{"five short-circuits", "...-xxxx", Five},
		{"open four", "...-xxx.", OpenFour},
		{"closed four, blocked behind", "..o-xxx.", ClosedFour},
		{"closed four, blocked ahead", "...-xxxo", ClosedFour},
		{"open three", "...-xx..", OpenThree},
		{"open two", "...-x...", OpenTwo},
		{"open two with one closed end", "..o-x...", OpenTwo},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// '-' marks the classified cell inside the fixture for
			// readability; it is empty on the board.
			b := row(game.Black, 0, replaceDash(tc.pattern))
			v := Classify(&b, cell, game.Black)
			require.Equal(t, 1, v.Count(tc.want),
				"pattern %q should classify as %s, got %v", tc.pattern, tc.want, v)
		})
	}
}

func TestClassifyDeadShapesScoreNothing(t *testing.T) {
	cell := game.Move{Row: 7, Col: 3}

	cases := []struct {
		name    string
		pattern string
	}{
		{"four blocked on both ends", "..o-xxxo"},
		{"lone stone", "...-...."},
		{"two blocked on both ends", "..o-xo.."},
		{"gapped stones blocked past both gaps", "ox.-.xo."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := row(game.Black, 0, replaceDash(tc.pattern))
			v := Classify(&b, cell, game.Black)
			require.Equal(t, PatternVector{}, v,
				"pattern %q should carry no threat, got %v", tc.pattern, v)
		})
	}
}

func TestClassifyGapRuns(t *testing.T) {
	cell := game.Move{Row: 7, Col: 3}

	cases := []struct {
		name    string
		pattern string
		want    PatternKind
	}{
		{"four with gap, far pair", "...-xx.xx", FourGap},
		{"four with gap, long continuation", "...-x.xxx", FourGap},
		{"contiguous four with open gap extension", "...-xxx.x", OpenFour},
		{"contiguous four with gap, blocked behind", "..o-xxx.x", ClosedFour},
		{"gapped four blocked both ends, single filler", "..o-xx.xo", FourGap},
		{"gapped four blocked both ends, long filler", "..o-xx.xxo", ClosedFour},
		{"open three with gap", "...-x.x..", OpenThreeGap},
		{"open two with gap", "...-.x...", OpenTwoGap},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := row(game.Black, 0, replaceDash(tc.pattern))
			v := Classify(&b, cell, game.Black)
			require.Equal(t, 1, v.Count(tc.want),
				"pattern %q should classify as %s, got %v", tc.pattern, tc.want, v)
		})
	}
}

func TestClassifyDoubleGapRuns(t *testing.T) {
	cell := game.Move{Row: 7, Col: 5}

	cases := []struct {
		name    string
		pattern string // anchored at col 0; '-' is the classified cell at col 5
		want    PatternKind
	}{
		{"long runs past both gaps", ".xxx.-.xxx.", OpenFour},
		{"long run on one side only", ".xxx.-.x...", FourGap},
		{"pair past one gap, single past the other", "..xx.-.x...", OpenThreeGap},
		{"single stones past both gaps", "...x.-.x...", OpenTwoGap},
		{"three with one blocked effective end downgrades", ".oxx.-.x...", OpenTwoGap},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := row(game.Black, 0, replaceDash(tc.pattern))
			v := Classify(&b, cell, game.Black)
			require.Equal(t, 1, v.Count(tc.want),
				"pattern %q should classify as %s, got %v", tc.pattern, tc.want, v)
		})
	}
}

func TestClassifyAccumulatesAcrossAxes(t *testing.T) {
	// Two open threes crossing at (7,7): a double-three.
	var b game.Board
	b.Place(game.Move{Row: 7, Col: 5}, game.Black)
	b.Place(game.Move{Row: 7, Col: 6}, game.Black)
	b.Place(game.Move{Row: 5, Col: 7}, game.Black)
	b.Place(game.Move{Row: 6, Col: 7}, game.Black)

	v := Classify(&b, game.Move{Row: 7, Col: 7}, game.Black)
	require.Equal(t, 2, v.Count(OpenThree), "crossing threes should both be counted")
}

func TestClassifyIsPure(t *testing.T) {
	b := row(game.Black, 0, "...xxx..")
	before := b
	cell := game.Move{Row: 7, Col: 2}

	first := Classify(&b, cell, game.Black)
	second := Classify(&b, cell, game.Black)

	require.Equal(t, first, second, "identical inputs must yield identical vectors")
	require.Equal(t, before, b, "classification must not mutate the board")
}

func TestClassifyFiveAgreesWithWinChecker(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 25; i++ {
		var b game.Board
		side := game.Black
		for placed := 0; placed < 40; placed++ {
			m := game.Move{Row: rng.Intn(game.Size), Col: rng.Intn(game.Size)}
			if b.Occupied(m) {
				continue
			}
			b.Place(m, side)
			side = side.Opponent()
		}

		for r := 0; r < game.Size; r++ {
			for c := 0; c < game.Size; c++ {
				m := game.Move{Row: r, Col: c}
				if b.Occupied(m) {
					continue
				}
				for _, s := range []game.Cell{game.Black, game.White} {
					wins := game.IsWinningMove(&b, m, s)
					classified := Classify(&b, m, s).Has(Five)
					require.Equal(t, wins, classified,
						"five flag must agree with the win checker at %v for %s", m, s)
				}
			}
		}
	}
}

// replaceDash strips the cell marker out of a fixture pattern.
func replaceDash(pattern string) string {
	out := []byte(pattern)
	for i := range out {
		if out[i] == '-' {
			out[i] = '.'
		}
	}
	return string(out)
}
