package server

import (
	"sync"
	"time"

	"gomoku/engine"
	"gomoku/game"
	"gomoku/tactics"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNotYourTurn = errors.New("not this side's turn")
	ErrCellTaken   = errors.New("cell is occupied")
	ErrOutOfBounds = errors.New("move out of bounds")
	ErrGameOver    = errors.New("game is over")
	ErrNoUndo      = errors.New("no move to undo")
)

// HistoryEntry is one placed stone, in play order.
type HistoryEntry struct {
	Move      game.Move `json:"move"`
	Side      game.Cell `json:"side"`
	IsAI      bool      `json:"is_ai"`
	ElapsedMs int64     `json:"elapsed_ms"`
}

// Session is one game between a human and the engine. All access goes
// through the mutex; the engine's Decide runs inside it, so a session plays
// strictly one move at a time.
type Session struct {
	mu sync.Mutex

	ID         uuid.UUID
	HumanSide  game.Cell
	AISide     game.Cell
	Difficulty engine.Difficulty

	board   game.Board
	turn    game.Cell
	winner  game.Cell
	draw    bool
	history []HistoryEntry

	subscribers map[chan Event]struct{}
}

// Event is one session update pushed to websocket subscribers.
type Event struct {
	Type   string        `json:"type"` // move, winner, draw, undo
	Move   *HistoryEntry `json:"move,omitempty"`
	Winner game.Cell     `json:"winner,omitempty"`
	Undone int           `json:"undone,omitempty"`
	AtMs   int64         `json:"at_ms"`
}

func NewSession(humanSide game.Cell, difficulty engine.Difficulty) *Session {
	return &Session{
		ID:          uuid.New(),
		HumanSide:   humanSide,
		AISide:      humanSide.Opponent(),
		Difficulty:  difficulty,
		turn:        game.Black, // black always opens
		subscribers: make(map[chan Event]struct{}),
	}
}

// Snapshot returns a copy of the session state for serialization.
func (s *Session) Snapshot() (game.Board, game.Cell, game.Cell, bool, []HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]HistoryEntry, len(s.history))
	copy(history, s.history)
	return s.board, s.turn, s.winner, s.draw, history
}

// PlayHuman applies the human's move, checks for a win, and flips the turn.
func (s *Session) PlayHuman(m game.Move) (HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.winner != game.Empty || s.draw {
		return HistoryEntry{}, ErrGameOver
	}
	if s.turn != s.HumanSide {
		return HistoryEntry{}, ErrNotYourTurn
	}
	if !m.InBounds() {
		return HistoryEntry{}, ErrOutOfBounds
	}
	if s.board.Occupied(m) {
		return HistoryEntry{}, ErrCellTaken
	}

	entry := s.apply(m, s.HumanSide, false, 0)
	return entry, nil
}

// PlayAI asks the engine for the AI's move and applies it.
func (s *Session) PlayAI(e *engine.Engine) (HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.winner != game.Empty || s.draw {
		return HistoryEntry{}, ErrGameOver
	}
	if s.turn != s.AISide {
		return HistoryEntry{}, ErrNotYourTurn
	}

	preset, ok := engine.PresetFor(s.Difficulty)
	if !ok {
		preset, _ = engine.PresetFor(engine.Medium)
	}

	started := time.Now()
	move, _, err := e.Decide(s.board, s.AISide, preset)
	if errors.Is(err, engine.ErrBoardFull) {
		s.draw = true
		s.broadcast(Event{Type: "draw", AtMs: nowMs()})
		return HistoryEntry{}, err
	}
	if err != nil {
		return HistoryEntry{}, err
	}

	entry := s.apply(move, s.AISide, true, time.Since(started).Milliseconds())
	return entry, nil
}

// Undo pops the last human move together with the AI reply that followed it,
// mirroring the desktop build's one-click undo.
func (s *Session) Undo() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) == 0 {
		return 0, ErrNoUndo
	}
	if s.winner != game.Empty {
		return 0, ErrGameOver
	}

	undone := 0
	for len(s.history) > 0 {
		last := s.history[len(s.history)-1]
		s.board.Remove(last.Move)
		s.history = s.history[:len(s.history)-1]
		s.turn = last.Side
		undone++
		if !last.IsAI {
			break
		}
	}
	s.draw = false
	s.broadcast(Event{Type: "undo", Undone: undone, AtMs: nowMs()})
	return undone, nil
}

// Hints returns the engine's advisory feed for the side to move.
func (s *Session) Hints(e *engine.Engine) (tactics.Hints, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return e.Hints(s.board, s.turn)
}

// apply places a stone, records history, checks the win, and notifies
// subscribers. Caller holds the mutex.
func (s *Session) apply(m game.Move, side game.Cell, isAI bool, elapsedMs int64) HistoryEntry {
	s.board.Place(m, side)
	entry := HistoryEntry{Move: m, Side: side, IsAI: isAI, ElapsedMs: elapsedMs}
	s.history = append(s.history, entry)

	if game.IsWinningMove(&s.board, m, side) {
		s.winner = side
		s.broadcast(Event{Type: "move", Move: &entry, AtMs: nowMs()})
		s.broadcast(Event{Type: "winner", Winner: side, AtMs: nowMs()})
	} else {
		s.turn = side.Opponent()
		s.broadcast(Event{Type: "move", Move: &entry, AtMs: nowMs()})
	}
	return entry
}

// Subscribe registers a websocket listener; the returned channel is buffered
// and slow listeners lose events rather than block play.
func (s *Session) Subscribe() chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Event, 16)
	s.subscribers[ch] = struct{}{}
	return ch
}

func (s *Session) Unsubscribe(ch chan Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; ok {
		delete(s.subscribers, ch)
		close(ch)
	}
}

func (s *Session) broadcast(ev Event) {
	for ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}

func nowMs() int64 {
	return time.Now().UnixMilli()
}
