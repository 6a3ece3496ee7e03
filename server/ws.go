package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// handleWebsocket streams session events (moves, winner, undo) to a UI.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	upgrader := websocket.Upgrader{}
	if s.allowAllOrigins {
		upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	events := session.Subscribe()
	done := make(chan struct{})

	// Read pump: we never expect client messages, but reading is how the
	// connection's close is observed.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go func() {
		defer func() {
			session.Unsubscribe(events)
			conn.Close()
		}()
		for {
			select {
			case ev, open := <-events:
				if !open {
					return
				}
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()
}
