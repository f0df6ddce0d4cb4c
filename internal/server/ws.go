package server

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// HandleWS upgrades the request and serves a session until it closes.
func (s *Server) HandleWS(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade")
		return nil
	}
	defer conn.Close()

	NewSession(s, conn).HandleConnection(c.Request().Context())
	return nil
}
