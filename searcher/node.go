package searcher

import (
	"math"

	"gomoku/game"
	"gomoku/tactics"
)

// Hyperparameters for MCTS

const cSquared = 2.0 // Exploration constant squared (c = sqrt 2)

// node is one position in the search tree. The tree lives for a single
// Decide call: children are owned through the move map, the parent link is a
// plain back-reference used only by backpropagation.
type node struct {
	board      game.Board
	player     game.Cell   // side to move at this node
	move       game.Move   // move that led here; meaningless at the root
	candidates []game.Move // pruned at construction, fixed for the node's life
	children   map[game.Move]*node
	parent     *node
	visits     int
	wins       int // from the AI's perspective; |wins| <= visits
}

func newNode(board game.Board, player game.Cell, parent *node) *node {
	return &node{
		board:      board,
		player:     player,
		candidates: tactics.GoodMoves(&board, player),
		children:   make(map[game.Move]*node),
		parent:     parent,
	}
}

// fullyExpanded reports whether every pruned candidate has a child.
func (n *node) fullyExpanded() bool {
	return len(n.children) == len(n.candidates)
}

// bestChild applies UCB1 with exploration constant sqrt(2). An unvisited
// child is returned immediately so every explored move gets at least one
// rollout before exploitation kicks in. Tie order follows map iteration and
// is deliberately unspecified.
func (n *node) bestChild() *node {
	c2LnN := cSquared * math.Log(float64(n.visits))
	bestScore := math.Inf(-1)
	var best *node
	for _, child := range n.children {
		if child.visits == 0 {
			return child
		}
		score := float64(child.wins)/float64(child.visits) +
			math.Sqrt(c2LnN/float64(child.visits))
		if score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}
