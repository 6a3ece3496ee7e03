package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"gomoku/engine"
	"gomoku/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Server exposes game sessions over HTTP and websockets.
type Server struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	engine          *engine.Engine
	allowAllOrigins bool
}

func New(e *engine.Engine, allowAllOrigins bool) *Server {
	return &Server{
		sessions:        make(map[uuid.UUID]*Session),
		engine:          e,
		allowAllOrigins: allowAllOrigins,
	}
}

// Router builds the chi router for the whole API surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/games", s.handleCreateGame)
	r.Route("/api/games/{id}", func(r chi.Router) {
		r.Get("/", s.handleStatus)
		r.Post("/moves", s.handleHumanMove)
		r.Post("/ai-move", s.handleAIMove)
		r.Post("/undo", s.handleUndo)
		r.Get("/hints", s.handleHints)
	})
	r.Get("/ws/games/{id}", s.handleWebsocket)

	return r
}

type createGameRequest struct {
	HumanSide  string `json:"human_side"` // "black" or "white"
	Difficulty string `json:"difficulty"` // "simple", "medium", "hard"
}

type createGameResponse struct {
	ID         string    `json:"id"`
	HumanSide  game.Cell `json:"human_side"`
	AISide     game.Cell `json:"ai_side"`
	Difficulty string    `json:"difficulty"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "decoding request"))
		return
	}

	humanSide := game.Black
	if req.HumanSide == "white" {
		humanSide = game.White
	}
	difficulty := engine.Difficulty(req.Difficulty)
	if _, ok := engine.PresetFor(difficulty); !ok {
		difficulty = engine.Medium
	}

	session := NewSession(humanSide, difficulty)
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	log.Info().
		Str("game_id", session.ID.String()).
		Str("human_side", humanSide.String()).
		Str("difficulty", string(difficulty)).
		Msg("game created")
	writeJSON(w, http.StatusCreated, createGameResponse{
		ID:         session.ID.String(),
		HumanSide:  humanSide,
		AISide:     humanSide.Opponent(),
		Difficulty: string(difficulty),
	})
}

type statusResponse struct {
	Board   game.Board     `json:"board"`
	Turn    game.Cell      `json:"turn"`
	Winner  game.Cell      `json:"winner"`
	Draw    bool           `json:"draw"`
	History []HistoryEntry `json:"history"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	board, turn, winner, draw, history := session.Snapshot()
	writeJSON(w, http.StatusOK, statusResponse{
		Board:   board,
		Turn:    turn,
		Winner:  winner,
		Draw:    draw,
		History: history,
	})
}

type moveResponse struct {
	Entry  HistoryEntry `json:"entry"`
	Winner game.Cell    `json:"winner"`
}

func (s *Server) handleHumanMove(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var m game.Move
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "decoding move"))
		return
	}

	entry, err := session.PlayHuman(m)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	_, _, winner, _, _ := session.Snapshot()
	writeJSON(w, http.StatusOK, moveResponse{Entry: entry, Winner: winner})
}

func (s *Server) handleAIMove(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	entry, err := session.PlayAI(s.engine)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	_, _, winner, _, _ := session.Snapshot()
	writeJSON(w, http.StatusOK, moveResponse{Entry: entry, Winner: winner})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	undone, err := session.Undo()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"undone": undone})
}

func (s *Server) handleHints(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	hints, err := session.Hints(s.engine)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	scores := make([]cellScore, 0, len(hints.Scores))
	for m, score := range hints.Scores {
		scores = append(scores, cellScore{Move: m, Score: score})
	}
	writeJSON(w, http.StatusOK, hintsResponse{
		Opportunities: hints.Opportunities,
		Threats:       hints.Threats,
		Scores:        scores,
	})
}

type cellScore struct {
	Move  game.Move `json:"move"`
	Score int       `json:"score"`
}

type hintsResponse struct {
	Opportunities []game.Move `json:"opportunities"`
	Threats       []game.Move `json:"threats"`
	Scores        []cellScore `json:"scores"`
}

// session resolves the {id} URL parameter; a miss writes the error response.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "parsing game id"))
		return nil, false
	}
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, errors.Errorf("game %s not found", id))
		return nil, false
	}
	return session, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrOutOfBounds), errors.Is(err, ErrCellTaken):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotYourTurn), errors.Is(err, ErrGameOver),
		errors.Is(err, ErrNoUndo), errors.Is(err, engine.ErrBoardFull):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
