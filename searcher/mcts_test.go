package searcher

import (
	"testing"
	"time"

	"gomoku/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func testCoordinator(simulations int) *Coordinator {
	return New(
		WithGoroutines(2),
		WithSimulations(simulations),
		WithTimeLimit(5*time.Second),
		WithSeed(7),
	)
}

func TestDecideOpensAtCenter(t *testing.T) {
	var b game.Board

	move, metrics, ok := testCoordinator(20).Decide(b, game.Black, game.White)

	require.True(t, ok)
	require.Equal(t, game.Center, move, "the empty board has exactly one candidate")
	require.Equal(t, 20, metrics.Simulations+metrics.Dropped, "every pass is accounted for")
}

func TestDecideTakesTheWin(t *testing.T) {
	var b game.Board
	for col := 3; col <= 6; col++ {
		b.Place(game.Move{Row: 7, Col: col}, game.Black)
	}

	move, _, ok := testCoordinator(30).Decide(b, game.Black, game.White)

	require.True(t, ok)
	require.Contains(t,
		[]game.Move{{Row: 7, Col: 2}, {Row: 7, Col: 7}}, move,
		"a completion of the open four must be played")
}

func TestDecideBlocksTheOpenFour(t *testing.T) {
	var b game.Board
	for col := 3; col <= 6; col++ {
		b.Place(game.Move{Row: 7, Col: col}, game.Black)
	}

	move, _, ok := testCoordinator(30).Decide(b, game.White, game.Black)

	require.True(t, ok)
	require.Contains(t,
		[]game.Move{{Row: 7, Col: 2}, {Row: 7, Col: 7}}, move,
		"white must block one end of black's open four")
}

func TestDecideZeroSimulations(t *testing.T) {
	var b game.Board
	b.Place(game.Move{Row: 7, Col: 7}, game.Black)

	move, metrics, ok := testCoordinator(0).Decide(b, game.White, game.Black)

	require.True(t, ok, "the fallback chain always yields a move")
	require.True(t, move.InBounds())
	require.False(t, b.Occupied(move), "the fallback move must be an empty cell")
	require.Zero(t, metrics.Simulations)
}

func TestDecideZeroSimulationsStillForced(t *testing.T) {
	// With no votes at all, tactics alone must still find the block.
	var b game.Board
	for col := 3; col <= 6; col++ {
		b.Place(game.Move{Row: 7, Col: col}, game.White)
	}

	move, _, ok := testCoordinator(0).Decide(b, game.Black, game.White)

	require.True(t, ok)
	require.Contains(t,
		[]game.Move{{Row: 7, Col: 2}, {Row: 7, Col: 7}}, move,
		"forced moves do not depend on the vote")
}

func TestDecideFullBoard(t *testing.T) {
	var b game.Board
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			side := game.Black
			if (r/3+c)%2 == 0 {
				side = game.White
			}
			b.Place(game.Move{Row: r, Col: c}, side)
		}
	}

	_, _, ok := testCoordinator(5).Decide(b, game.Black, game.White)

	require.False(t, ok, "a full board has no move to give")
}

func TestDecideDropsPanickingPasses(t *testing.T) {
	original := simulatePass
	defer func() { simulatePass = original }()

	// A single worker keeps the injected failure schedule deterministic.
	passes := 0
	simulatePass = func(root *node, aiSide, opponentSide game.Cell, endTime time.Time, rng *rand.Rand) (game.Move, bool) {
		passes++
		if passes%2 == 0 {
			panic("injected pass failure")
		}
		return original(root, aiSide, opponentSide, endTime, rng)
	}

	var b game.Board
	b.Place(game.Move{Row: 7, Col: 7}, game.Black)

	c := New(
		WithGoroutines(1),
		WithSimulations(10),
		WithTimeLimit(5*time.Second),
		WithSeed(3),
	)
	move, metrics, ok := c.Decide(b, game.White, game.Black)

	require.True(t, ok, "surviving passes must still produce a move")
	require.True(t, move.InBounds())
	require.False(t, b.Occupied(move))
	require.Equal(t, 5, metrics.Dropped, "every panicking pass loses exactly its own vote")
	require.Equal(t, 5, metrics.Simulations, "the other passes keep voting")
}

func TestDecideReportsOverrun(t *testing.T) {
	var b game.Board
	b.Place(game.Move{Row: 7, Col: 7}, game.Black)

	c := New(
		WithGoroutines(2),
		WithSimulations(10),
		WithTimeLimit(time.Nanosecond),
		WithSeed(7),
	)
	move, metrics, ok := c.Decide(b, game.White, game.Black)

	require.True(t, ok, "an expired deadline truncates rollouts, it does not abort the decision")
	require.True(t, move.InBounds())
	require.True(t, metrics.Overrun, "elapsed time past the limit must be flagged")
}

func TestDecideSequentialDeterminism(t *testing.T) {
	var b game.Board
	b.Place(game.Move{Row: 7, Col: 7}, game.Black)
	b.Place(game.Move{Row: 8, Col: 8}, game.White)

	sequential := func() game.Move {
		c := New(
			WithGoroutines(1),
			WithSimulations(15),
			WithTimeLimit(5*time.Second),
			WithSeed(42),
		)
		move, _, ok := c.Decide(b, game.Black, game.White)
		require.True(t, ok)
		return move
	}

	require.Equal(t, sequential(), sequential(),
		"one worker and a fixed seed must reproduce the same move")
}
