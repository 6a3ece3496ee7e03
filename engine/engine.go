package engine

import (
	"time"

	"gomoku/game"
	"gomoku/searcher"
	"gomoku/tactics"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrBoardFull signals that no candidate cell is left to play.
var ErrBoardFull = errors.New("no empty candidate cell left")

// Difficulty selects a simulation budget for the search.
type Difficulty string

const (
	Simple Difficulty = "simple"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Preset is a search budget: simulation count plus wall-clock limit.
type Preset struct {
	Simulations int
	TimeLimit   time.Duration
}

// Presets per difficulty, as the desktop build shipped them.
var presets = map[Difficulty]Preset{
	Simple: {Simulations: 500, TimeLimit: 2 * time.Second},
	Medium: {Simulations: 1000, TimeLimit: 5 * time.Second},
	Hard:   {Simulations: 3000, TimeLimit: 12 * time.Second},
}

func PresetFor(d Difficulty) (Preset, bool) {
	p, ok := presets[d]
	return p, ok
}

type Option func(e *Engine)

// WithGoroutines caps the search worker pool; the default lets the
// coordinator use every CPU.
func WithGoroutines(goroutines int) Option {
	return func(e *Engine) {
		if goroutines > 0 {
			e.goroutines = goroutines
		}
	}
}

// WithSeed fixes the search random source for reproducible runs.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.seeded = true
	}
}

// Engine is the boundary around the decision stack: it validates the
// caller's board once, runs the search, and never lets a failure escape as
// anything but an error value.
type Engine struct {
	goroutines int
	seed       uint64
	seeded     bool
}

func New(options ...Option) *Engine {
	e := &Engine{}
	for _, option := range options {
		option(e)
	}
	return e
}

// Decide returns the move the AI plays for aiSide under the given budget.
// ErrBoardFull means a draw: nothing left to play.
func (e *Engine) Decide(board game.Board, aiSide game.Cell, preset Preset) (game.Move, searcher.Metrics, error) {
	if err := validate(&board, aiSide); err != nil {
		return game.Move{}, searcher.Metrics{}, err
	}

	options := []searcher.Option{
		searcher.WithSimulations(preset.Simulations),
		searcher.WithTimeLimit(preset.TimeLimit),
	}
	if e.goroutines > 0 {
		options = append(options, searcher.WithGoroutines(e.goroutines))
	}
	if e.seeded {
		options = append(options, searcher.WithSeed(e.seed))
	}

	coordinator := searcher.New(options...)
	move, metrics, ok := coordinator.Decide(board, aiSide, aiSide.Opponent())
	if !ok {
		return game.Move{}, metrics, ErrBoardFull
	}

	log.Debug().
		Int("row", move.Row).
		Int("col", move.Col).
		Int("simulations", metrics.Simulations).
		Int("dropped", metrics.Dropped).
		Dur("elapsed", metrics.Elapsed).
		Msg("move decided")
	return move, metrics, nil
}

// Hints returns the advisory annotation feed for a UI layer: cells where
// sideToMove can build threats, cells where their opponent could, and the
// tactical score of every candidate. Decide never consults it.
//
// Callers that track an AI side and a human side separately pass whichever
// of the two is about to move as sideToMove; the extra labels would only
// rename the two output sets, so they are not parameters here. Opportunities
// always belongs to sideToMove and Threats to its opponent.
func (e *Engine) Hints(board game.Board, sideToMove game.Cell) (tactics.Hints, error) {
	if err := validate(&board, sideToMove); err != nil {
		return tactics.Hints{}, err
	}
	return tactics.Annotate(&board, sideToMove), nil
}

// validate enforces the caller contract once at the boundary: a well-formed
// board and a real side. The fixed array type already pins the dimensions.
func validate(board *game.Board, side game.Cell) error {
	if side != game.Black && side != game.White {
		return errors.Errorf("side to move must be black or white, got %d", side)
	}
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			if !board[r][c].Valid() {
				return errors.Errorf("invalid cell value %d at (%d,%d)", board[r][c], r, c)
			}
		}
	}
	return nil
}
