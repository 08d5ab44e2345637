// Package bridge maintains the persistent connection to the orchestrator
// and routes frames between it, the conversation transcript, and the
// operation executor.
package bridge

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/adrianariton/cellbridge/internal/logging"
	"github.com/adrianariton/cellbridge/internal/protocol"
)

// ErrSessionNotOpen is returned by Send when the session is not in the
// open state.
var ErrSessionNotOpen = errors.New("session not open")

// State is the session lifecycle phase. Transitions are monotonic:
// connecting → open → closed, never backwards.
type State int

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session owns the single WebSocket connection to the orchestrator.
// There is no reconnect: once the connection drops the session is closed
// for good and a new one must be established by a restart.
type Session struct {
	url              string
	origin           string
	handshakeTimeout time.Duration
	log              *logging.Logger

	mu    sync.Mutex
	conn  *websocket.Conn
	state State
}

// NewSession creates a session in the connecting state. Establish must be
// called before any frame can be sent or read.
func NewSession(url, origin string, handshakeTimeout time.Duration, log *logging.Logger) *Session {
	return &Session{
		url:              url,
		origin:           origin,
		handshakeTimeout: handshakeTimeout,
		log:              log.Sub("session"),
		state:            StateConnecting,
	}
}

// Establish dials the orchestrator once. It may only be called from the
// connecting state; a failed dial closes the session permanently.
func (s *Session) Establish(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateConnecting {
		s.mu.Unlock()
		return errors.New("session already " + s.state.String())
	}
	s.mu.Unlock()

	dialer := websocket.Dialer{HandshakeTimeout: s.handshakeTimeout}
	var header http.Header
	if s.origin != "" {
		header = http.Header{"Origin": []string{s.origin}}
	}

	conn, resp, err := dialer.DialContext(ctx, s.url, header)
	if err != nil {
		s.markClosed()
		if resp != nil {
			s.log.Error().Err(err).Str("url", s.url).Int("status", resp.StatusCode).Msg("dial failed")
		} else {
			s.log.Error().Err(err).Str("url", s.url).Msg("dial failed")
		}
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.state = StateOpen
	s.mu.Unlock()

	s.log.Info().Str("url", s.url).Msg("connected to orchestrator")
	return nil
}

// Send writes a frame to the orchestrator. Thread-safe. Sending on a
// session that is not open is reported but never panics.
func (s *Session) Send(frame protocol.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		s.log.Warn().Str("event", frame.Event).Str("state", s.state.String()).Msg("dropping frame, session not open")
		return ErrSessionNotOpen
	}
	return s.conn.WriteJSON(frame)
}

// ReadMessage blocks for the next raw frame from the orchestrator. It is
// intended to be called from a single reader goroutine.
func (s *Session) ReadMessage() ([]byte, error) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return nil, ErrSessionNotOpen
	}

	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsOpen reports whether frames can currently be sent.
func (s *Session) IsOpen() bool {
	return s.State() == StateOpen
}

// Close tears the connection down. Safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return nil
	}
	s.state = StateClosed
	if s.conn == nil {
		return nil
	}
	s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return s.conn.Close()
}

// markClosed records the terminal state without initiating a close
// handshake. Used when the peer already went away.
func (s *Session) markClosed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return
	}
	s.state = StateClosed
	if s.conn != nil {
		s.conn.Close()
	}
}
