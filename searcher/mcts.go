package searcher

import (
	"runtime"
	"sync"
	"time"

	"gomoku/game"
	"gomoku/tactics"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(c *Coordinator)

// Coordinator runs the vote-based parallel search: a fixed number of
// independent simulation passes fanned out over worker goroutines, each pass
// against its own copy of the root, with only the expansion-move votes
// merged. Tactics are consulted on the real board and always override the
// plain vote.
type Coordinator struct {
	goroutines  int
	simulations int
	timeLimit   time.Duration
	seed        uint64
}

func WithGoroutines(goroutines int) Option {
	return func(c *Coordinator) {
		if goroutines > 0 {
			c.goroutines = goroutines
		}
	}
}

func WithSimulations(simulations int) Option {
	return func(c *Coordinator) {
		if simulations >= 0 {
			c.simulations = simulations
		}
	}
}

func WithTimeLimit(timeLimit time.Duration) Option {
	return func(c *Coordinator) {
		if timeLimit > 0 {
			c.timeLimit = timeLimit
		}
	}
}

// WithSeed fixes the random source. Together with WithGoroutines(1) this
// makes a whole Decide call deterministic for testing.
func WithSeed(seed uint64) Option {
	return func(c *Coordinator) {
		c.seed = seed
	}
}

func New(options ...Option) *Coordinator {
	c := &Coordinator{ // Default values
		goroutines:  runtime.NumCPU(),
		simulations: 1000,
		timeLimit:   5 * time.Second,
		seed:        uint64(time.Now().UnixNano()),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Decide picks a move for aiSide. It blocks for the whole search and always
// yields a move through the fallback chain (forced move, vote winner, random
// candidate); ok is false only when the board has no candidate cell left.
func (c *Coordinator) Decide(board game.Board, aiSide, opponentSide game.Cell) (game.Move, Metrics, bool) {
	endTime := time.Now().Add(c.timeLimit)
	stats := newCollector()

	votes := c.fanOut(board, aiSide, opponentSide, endTime, stats)

	metrics := stats.complete(c.timeLimit)
	if metrics.Overrun {
		log.Warn().
			Dur("elapsed", metrics.Elapsed).
			Dur("time_limit", c.timeLimit).
			Msg("search exceeded its time budget")
	}

	rng := rand.New(rand.NewSource(c.seed))
	candidates := game.Candidates(&board)
	forced, _ := tactics.ForcedMoves(&board, candidates, aiSide, false)

	// Tactics override the vote: among forced moves prefer the most voted,
	// fall back to a random one if none was ever tallied.
	if len(forced) > 0 {
		best, found := game.Move{}, false
		for _, m := range forced {
			if !found || votes[m] > votes[best] {
				best, found = m, true
			}
		}
		if votes[best] == 0 {
			best = forced[rng.Intn(len(forced))]
		}
		return best, metrics, true
	}

	if len(votes) > 0 {
		// Row-major tie-break keeps sequential seeded runs reproducible.
		best, bestCount := game.Move{}, -1
		for m, count := range votes {
			if count > bestCount || (count == bestCount && rowMajorLess(m, best)) {
				best, bestCount = m, count
			}
		}
		return best, metrics, true
	}

	// Degenerate fallback, e.g. zero simulations requested.
	if len(candidates) == 0 {
		return game.Move{}, metrics, false
	}
	return candidates[rng.Intn(len(candidates))], metrics, true
}

// fanOut distributes the simulation passes over the worker pool and merges
// the expansion-move votes. Each pass rebuilds its own root from the board
// snapshot, so no tree state is shared between passes.
func (c *Coordinator) fanOut(board game.Board, aiSide, opponentSide game.Cell, endTime time.Time, stats *collector) map[game.Move]int {
	tasks := make(chan struct{}, c.simulations)
	for i := 0; i < c.simulations; i++ {
		tasks <- struct{}{}
	}
	close(tasks)

	votes := make(map[game.Move]int)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < c.goroutines; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(c.seed + uint64(worker) + 1))
			for range tasks {
				move, ok := runPass(board, aiSide, opponentSide, endTime, rng)
				if !ok {
					stats.addDropped()
					continue
				}
				stats.addVote()
				mu.Lock()
				votes[move]++
				mu.Unlock()
			}
		}(i)
	}

	wg.Wait()
	return votes
}

func rowMajorLess(a, b game.Move) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// simulatePass is the pass implementation behind runPass; tests swap it to
// inject failing passes.
var simulatePass = simulate

// runPass executes one isolated simulation. A panicking pass loses its vote
// but never takes the search down with it.
func runPass(board game.Board, aiSide, opponentSide game.Cell, endTime time.Time, rng *rand.Rand) (move game.Move, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("simulation pass failed; vote dropped")
			move, ok = game.Move{}, false
		}
	}()

	root := newNode(board, aiSide, nil)
	return simulatePass(root, aiSide, opponentSide, endTime, rng)
}
