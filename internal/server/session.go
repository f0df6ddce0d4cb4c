package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Session serves one websocket connection. Requests are answered in order.
type Session struct {
	mu     sync.Mutex
	id     string
	server *Server
	conn   *websocket.Conn
	logger zerolog.Logger
}

func NewSession(s *Server, conn *websocket.Conn) *Session {
	id := uuid.NewString()
	return &Session{
		id:     id,
		server: s,
		conn:   conn,
		logger: log.With().Str("session", id).Logger(),
	}
}

// HandleConnection reads messages until the connection closes or ctx ends.
func (s *Session) HandleConnection(ctx context.Context) {
	s.logger.Info().Msg("session opened")
	defer s.logger.Info().Msg("session closed")
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError(msg.RequestId, "bad_request", "invalid json")
			continue
		}
		s.handleMessage(ctx, msg)
	}
}

type ClientMessage struct {
	Type      string       `json:"type"`
	RequestId string       `json:"requestId,omitempty"`
	Position  *PositionDTO `json:"position,omitempty"`
}

type ServerMessage struct {
	Type      string        `json:"type"`
	RequestId string        `json:"requestId,omitempty"`
	Session   string        `json:"session,omitempty"`
	Result    *ResultView   `json:"result,omitempty"`
	Analysis  *AnalysisView `json:"analysis,omitempty"`
	Hint      *HintView     `json:"hint,omitempty"`
	Events    []Event       `json:"events,omitempty"`
	Error     *ErrorView    `json:"error,omitempty"`
}

type HintView struct {
	Card    string `json:"card"`
	Winning bool   `json:"winning"`
}

type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

func (s *Session) handleMessage(ctx context.Context, msg ClientMessage) {
	s.logger.Debug().Str("type", msg.Type).Str("request", msg.RequestId).Msg("message")
	switch msg.Type {
	case "hello":
		s.send(ServerMessage{Type: "welcome", RequestId: msg.RequestId, Session: s.id})
	case "solve":
		view, err := s.server.solve(msg.Position)
		if err != nil {
			s.sendError(msg.RequestId, errorCode(err), err.Error())
			return
		}
		s.send(ServerMessage{Type: "result", RequestId: msg.RequestId, Result: view})
	case "analyze":
		p, results, elapsed, err := s.server.analyze(ctx, msg.Position)
		if err != nil {
			s.sendError(msg.RequestId, errorCode(err), err.Error())
			return
		}
		s.send(ServerMessage{
			Type:      "analysis",
			RequestId: msg.RequestId,
			Analysis:  BuildAnalysisView(p, results, elapsed),
			Events:    buildEvents(p, results),
		})
	case "hint":
		p, results, elapsed, err := s.server.analyze(ctx, msg.Position)
		if err != nil {
			s.sendError(msg.RequestId, errorCode(err), err.Error())
			return
		}
		view := BuildAnalysisView(p, results, elapsed)
		s.send(ServerMessage{Type: "hint", RequestId: msg.RequestId, Hint: &HintView{Card: view.Best, Winning: view.Winning}})
	default:
		s.sendError(msg.RequestId, "unknown_type", "unknown message type")
	}
}

func (s *Session) send(msg ServerMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Warn().Err(err).Msg("write failed")
	}
}

func (s *Session) sendError(requestId, code, message string) {
	s.send(ServerMessage{
		Type:      "error",
		RequestId: requestId,
		Error:     &ErrorView{Code: code, Message: message},
	})
}
