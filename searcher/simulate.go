package searcher

import (
	"time"

	"gomoku/game"

	"golang.org/x/exp/rand"
)

// simulate runs one selection/expansion/rollout/backpropagation pass from
// root and returns the move chosen at the expansion step. ok is false when
// the reached node has no candidate to expand (full or dead position).
func simulate(root *node, aiSide, opponentSide game.Cell, endTime time.Time, rng *rand.Rand) (chosen game.Move, ok bool) {
	current := root
	board := root.board // value copy; the pass never aliases node state
	player := current.player

	// Selection: descend through fully expanded nodes via UCB1, replaying
	// each traversed move onto the private board.
	for current.fullyExpanded() && len(current.children) > 0 {
		next := current.bestChild()
		if next == nil {
			break
		}
		board.Place(next.move, player)
		player = player.Opponent()
		current = next
	}

	// Expansion: one uniformly random pruned candidate.
	if len(current.candidates) > 0 {
		chosen = current.candidates[rng.Intn(len(current.candidates))]
		board.Place(chosen, player)
		child, exists := current.children[chosen]
		if !exists {
			child = newNode(board, player.Opponent(), current)
			child.move = chosen
			current.children[chosen] = child
		}
		current = child
		player = player.Opponent()
		ok = true
	}

	winner := rollout(&board, chosen, ok, player, endTime, rng)

	// Backpropagation: from the expansion node up to the root.
	for n := current; n != nil; n = n.parent {
		n.visits++
		switch winner {
		case aiSide:
			n.wins++
		case opponentSide:
			n.wins--
		}
	}

	return chosen, ok
}

// rollout plays uniformly random moves from the unrestricted candidate set
// until somebody wins, the position is dead (draw), or the wall clock passes
// endTime. lastMove is the expansion move already on the board; player is
// the side to move next.
func rollout(board *game.Board, lastMove game.Move, haveMove bool, player game.Cell, endTime time.Time, rng *rand.Rand) game.Cell {
	if haveMove && game.IsWinningMove(board, lastMove, player.Opponent()) {
		return player.Opponent()
	}

	for {
		moves := game.Candidates(board)
		if len(moves) == 0 {
			return game.Empty // draw
		}
		m := moves[rng.Intn(len(moves))]
		board.Place(m, player)
		if game.IsWinningMove(board, m, player) {
			return player
		}
		player = player.Opponent()

		if time.Now().After(endTime) {
			return game.Empty // out of budget, count as no result
		}
	}
}
