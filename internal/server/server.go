package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"napoleon/internal/config"
	"napoleon/internal/engine"
	"napoleon/internal/solver"
)

var ErrTooLarge = errors.New("position too large")

// Server answers solve and analysis requests over HTTP and websockets.
type Server struct {
	Workers      int
	MaxRemaining int
}

func New(cfg config.Config) *Server {
	return &Server{Workers: cfg.AnalyzeWorkers, MaxRemaining: cfg.MaxRemaining}
}

// Register mounts the solver routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.POST("/solve", s.HandleSolve)
	e.POST("/analyze", s.HandleAnalyze)
	e.GET("/ws", s.HandleWS)
}

func (s *Server) prepare(dto *PositionDTO) (solver.Position, []engine.Cards, error) {
	p, moves, err := dto.ToPosition()
	if err != nil {
		return p, nil, err
	}
	if err := p.Validate(); err != nil {
		return p, nil, err
	}
	if s.MaxRemaining > 0 && p.Remaining() > s.MaxRemaining {
		return p, nil, fmt.Errorf("%w: %d cards held, limit %d", ErrTooLarge, p.Remaining(), s.MaxRemaining)
	}
	return p, moves, nil
}

func (s *Server) solve(dto *PositionDTO) (*ResultView, error) {
	p, moves, err := s.prepare(dto)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	r, err := p.SolveAfter(moves)
	if err != nil {
		return nil, err
	}
	return BuildResultView(r, time.Since(start)), nil
}

func (s *Server) analyze(ctx context.Context, dto *PositionDTO) (solver.Position, []solver.MoveResult, time.Duration, error) {
	p, moves, err := s.prepare(dto)
	if err != nil {
		return p, nil, 0, err
	}
	if len(moves) > 0 {
		return p, nil, 0, fmt.Errorf("%w: analysis takes no moves", solver.ErrInvalidPosition)
	}
	start := time.Now()
	results, err := solver.Analyze(ctx, p, s.Workers)
	if err != nil {
		return p, nil, 0, err
	}
	return p, results, time.Since(start), nil
}

// errorCode maps request errors to the codes sent to clients.
func errorCode(err error) string {
	switch {
	case errors.Is(err, engine.ErrBadCard):
		return "bad_card"
	case errors.Is(err, solver.ErrInvalidMove):
		return "invalid_move"
	case errors.Is(err, solver.ErrInvalidPosition):
		return "invalid_position"
	case errors.Is(err, ErrTooLarge):
		return "too_large"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		log.Error().Err(err).Msg("unexpected solver error")
		return "internal"
	}
}
